package session

// ResourceRow is one line item of the budget table. Subtotal is derived:
// it always equals Quantity * UnitPrice and is recomputed on every edit of
// either operand, never trusted from input.
type ResourceRow struct {
	Component string  `json:"component"`
	Label     string  `json:"label"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
	Note      string  `json:"note"`
}

// NewResourceRow builds a row with the subtotal already consistent.
func NewResourceRow(component, label string, quantity, unitPrice float64, note string) ResourceRow {
	r := ResourceRow{Component: component, Label: label, Note: note}
	r.Quantity = quantity
	r.UnitPrice = unitPrice
	r.recompute()
	return r
}

// SetQuantity updates the quantity and recomputes the subtotal.
func (r *ResourceRow) SetQuantity(q float64) {
	r.Quantity = q
	r.recompute()
}

// SetUnitPrice updates the unit price and recomputes the subtotal.
func (r *ResourceRow) SetUnitPrice(p float64) {
	r.UnitPrice = p
	r.recompute()
}

func (r *ResourceRow) recompute() {
	r.Subtotal = r.Quantity * r.UnitPrice
}

// Normalize forces the subtotal back in sync. Used after decoding persisted
// or legacy rows, where the stored subtotal is ignored.
func (r *ResourceRow) Normalize() {
	r.recompute()
}

// ResourceTotal sums the subtotals of all rows.
func ResourceTotal(rows []ResourceRow) float64 {
	var total float64
	for _, r := range rows {
		total += r.Subtotal
	}
	return total
}
