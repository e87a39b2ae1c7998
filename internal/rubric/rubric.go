// Package rubric defines the per-kind evaluation rubrics.
// Each project kind shares the same four-stage process but carries its own
// criteria set, indicator weights, mandatory fields and legacy key aliases.
package rubric

import (
	"fmt"
	"strings"
)

// Indicator is a scored sub-component of a criterion.
type Indicator struct {
	// Key is the stable internal name.
	Key string
	// PayloadKeys are candidate keys under which the analysis service may
	// report this indicator (the remote shape is not contractually fixed;
	// some deployments decorate keys with emoji).
	PayloadKeys []string
	// Max is the declared maximum score for this indicator.
	Max float64
}

// Criterion is a named rubric dimension with one or more indicators.
type Criterion struct {
	// Key is the stable internal name, also used as the persisted answer key.
	Key string
	// Title is the display name.
	Title string
	// PayloadKeys are candidate keys for this criterion in analysis payloads.
	PayloadKeys []string
	// Fields are the named answer fields for this criterion, in form order.
	Fields []string
	// Mandatory lists the fields that must be non-empty before analysis.
	Mandatory []string
	// Aliases maps each field to historically-used flat record keys,
	// earliest listed wins.
	Aliases map[string][]string
	// Indicators carry the score breakdown returned by the analysis service.
	Indicators []Indicator
	// ResourceTable marks the criterion whose answer is the budget line-item
	// table instead of free text.
	ResourceTable bool
}

// MaxScore returns the declared maximum for the criterion.
func (c Criterion) MaxScore() float64 {
	var sum float64
	for _, ind := range c.Indicators {
		sum += ind.Max
	}
	return sum
}

// Variant is one project-kind configuration.
type Variant struct {
	// Kind is the registry key ("pedagogical", "management", ...).
	Kind string
	// Name is the display name of the project kind.
	Name string
	// Criteria in rubric order.
	Criteria []Criterion
}

// MaxTotal returns the maximum achievable total score.
func (v Variant) MaxTotal() float64 {
	var sum float64
	for _, c := range v.Criteria {
		sum += c.MaxScore()
	}
	return sum
}

// Criterion looks up a criterion by key.
func (v Variant) Criterion(key string) (Criterion, bool) {
	for _, c := range v.Criteria {
		if c.Key == key {
			return c, true
		}
	}
	return Criterion{}, false
}

// CriterionKeys returns the criterion keys in rubric order.
func (v Variant) CriterionKeys() []string {
	keys := make([]string, len(v.Criteria))
	for i, c := range v.Criteria {
		keys[i] = c.Key
	}
	return keys
}

// ResourceCriterion returns the resource-table criterion, if the variant has one.
func (v Variant) ResourceCriterion() (Criterion, bool) {
	for _, c := range v.Criteria {
		if c.ResourceTable {
			return c, true
		}
	}
	return Criterion{}, false
}

// MandatoryFields returns (criterion key, field) pairs that must be filled
// before the analysis stage.
func (v Variant) MandatoryFields() [][2]string {
	var out [][2]string
	for _, c := range v.Criteria {
		for _, f := range c.Mandatory {
			out = append(out, [2]string{c.Key, f})
		}
	}
	return out
}

var registry = map[string]Variant{
	KindPedagogical: Pedagogical,
	KindManagement:  Management,
	KindTechnology:  Technology,
	KindCommunity:   Community,
}

// Get returns the variant for a project kind.
func Get(kind string) (Variant, error) {
	v, ok := registry[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return Variant{}, fmt.Errorf("unknown project kind: %q", kind)
	}
	return v, nil
}

// Kinds returns the registered project kinds in display order.
func Kinds() []string {
	return []string{KindPedagogical, KindManagement, KindTechnology, KindCommunity}
}
