package session

import (
	"encoding/json"
	"fmt"

	"github.com/joss/acelera/internal/rubric"
)

// Decode unmarshals a persisted session and migrates its answers to the
// current nested shape. The answers value is re-read as loose JSON so
// legacy flat records survive the typed decode.
func Decode(data []byte, v rubric.Variant) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	var probe struct {
		Answers any `json:"answers"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	s.Answers = Migrate(probe.Answers, v)
	return &s, nil
}

// Legacy flat records stored resource rows under one of these keys.
var legacyResourceKeys = []string{"resources", "recursos", "tabla_recursos"}

// Column aliases for legacy resource rows, earliest listed wins.
var resourceColumnAliases = map[string][]string{
	"component":  {"component", "componente", "rubro"},
	"label":      {"label", "descripcion", "detalle"},
	"quantity":   {"quantity", "cantidad"},
	"unit_price": {"unit_price", "precio_unitario", "costo_unitario"},
	"note":       {"note", "nota", "observacion"},
}

// Migrate normalizes a persisted answers record into the current nested
// shape for the given variant. Records already in the nested shape pass
// through; anything else is treated as a legacy flat record and resolved
// through the variant's alias map. Migrate never fails: absent or malformed
// input yields a structurally complete, empty-valued answer set, which lets
// the rest of the engine assume the nested shape unconditionally.
func Migrate(raw any, v rubric.Variant) Answers {
	out := NewAnswers(v)
	m, ok := raw.(map[string]any)
	if !ok || len(m) == 0 {
		return out
	}

	if criteria := nestedCriteria(m, v); criteria != nil {
		for _, c := range v.Criteria {
			fields, _ := criteria[c.Key].(map[string]any)
			for _, f := range c.Fields {
				out.Criteria[c.Key][f] = asString(fields[f])
			}
		}
		out.Resources = migrateRows(rowsValue(m, criteria))
		return out
	}

	// Legacy flat record: resolve every field through its alias list,
	// first match wins.
	for _, c := range v.Criteria {
		for _, f := range c.Fields {
			for _, alias := range c.Aliases[f] {
				if val, ok := m[alias]; ok {
					out.Criteria[c.Key][f] = asString(val)
					break
				}
			}
		}
	}
	for _, key := range legacyResourceKeys {
		if rows, ok := m[key]; ok {
			out.Resources = migrateRows(rows)
			break
		}
	}
	return out
}

// nestedCriteria returns the criterion map when raw is already in the
// current shape: either wrapped under "criteria" or keyed directly by every
// criterion the variant expects.
func nestedCriteria(m map[string]any, v rubric.Variant) map[string]any {
	if inner, ok := m["criteria"].(map[string]any); ok && hasAllCriteria(inner, v) {
		return inner
	}
	if hasAllCriteria(m, v) {
		return m
	}
	return nil
}

func hasAllCriteria(m map[string]any, v rubric.Variant) bool {
	for _, c := range v.Criteria {
		if _, ok := m[c.Key]; !ok {
			return false
		}
	}
	return len(v.Criteria) > 0
}

// rowsValue picks the resource rows from a nested record. The wrapped shape
// stores them beside the criteria; older nested records kept them inline.
func rowsValue(outer, criteria map[string]any) any {
	if rows, ok := outer["resources"]; ok {
		return rows
	}
	return criteria["resources"]
}

// migrateRows converts any plausible row list into normalized rows. The
// stored subtotal is always discarded and recomputed.
func migrateRows(raw any) []ResourceRow {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	rows := make([]ResourceRow, 0, len(items))
	for _, item := range items {
		rm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		row := ResourceRow{
			Component: lookupString(rm, resourceColumnAliases["component"]),
			Label:     lookupString(rm, resourceColumnAliases["label"]),
			Quantity:  lookupFloat(rm, resourceColumnAliases["quantity"]),
			UnitPrice: lookupFloat(rm, resourceColumnAliases["unit_price"]),
			Note:      lookupString(rm, resourceColumnAliases["note"]),
		}
		row.Normalize()
		rows = append(rows, row)
	}
	return rows
}

func lookupString(m map[string]any, aliases []string) string {
	for _, key := range aliases {
		if v, ok := m[key]; ok {
			return asString(v)
		}
	}
	return ""
}

func lookupFloat(m map[string]any, aliases []string) float64 {
	for _, key := range aliases {
		if v, ok := m[key]; ok {
			return asFloat(v)
		}
	}
	return 0
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
