// Package score aggregates rubric scores out of the analysis service's
// loosely-typed payload. The upstream shape is not contractually fixed, so
// every lookup here is tolerant: missing or malformed values count as zero
// and extraction never fails.
package score

import (
	"encoding/json"
	"strings"

	"github.com/joss/acelera/internal/rubric"
)

// Indicator is one normalized score line from the analysis payload.
type Indicator struct {
	Key     string  `json:"key"`
	Score   float64 `json:"score"`
	Max     float64 `json:"max"`
	Level   string  `json:"level"`
	Comment string  `json:"comment"`
}

// Analysis is the narrow internal view of a remote analysis payload. All
// tolerant payload walking happens in Normalize; consumers only see this.
type Analysis struct {
	Criteria map[string][]Indicator `json:"criteria"`
	MaxTotal float64                `json:"max_total"`
}

// Candidate keys for indicator score, level and commentary fields.
var (
	scoreFieldKeys   = []string{"score", "puntaje", "puntos"}
	levelFieldKeys   = []string{"level", "nivel"}
	commentFieldKeys = []string{"comment", "comentario", "feedback", "retroalimentacion"}
)

// ToNumber coerces an indicator score to a float. Numbers pass through;
// strings yield their leading run of digits ("8 / 15 puntos" reads as 8);
// anything unparsable reads as 0.
func ToNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		return leadingDigits(n)
	}
	return 0
}

func leadingDigits(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	var n float64
	for i := 0; i < end; i++ {
		n = n*10 + float64(s[i]-'0')
	}
	return n
}

// Normalize walks a raw analysis payload and extracts every indicator score
// for the variant's rubric. Criterion and indicator keys are matched against
// each configured payload spelling; absent entries yield zero-score
// indicators so the result is always structurally complete.
func Normalize(raw map[string]any, v rubric.Variant) Analysis {
	a := Analysis{
		Criteria: make(map[string][]Indicator, len(v.Criteria)),
		MaxTotal: v.MaxTotal(),
	}
	for _, c := range v.Criteria {
		section, _ := lookupAny(raw, c.PayloadKeys).(map[string]any)
		indicators := make([]Indicator, 0, len(c.Indicators))
		for _, ind := range c.Indicators {
			entry := lookupAny(section, ind.PayloadKeys)
			indicators = append(indicators, normalizeIndicator(ind, entry))
		}
		a.Criteria[c.Key] = indicators
	}
	return a
}

// normalizeIndicator reads one indicator entry, which may be a full record,
// a bare number, or a bare string score.
func normalizeIndicator(ind rubric.Indicator, entry any) Indicator {
	out := Indicator{Key: ind.Key, Max: ind.Max}
	switch e := entry.(type) {
	case map[string]any:
		out.Score = ToNumber(lookupAny(e, scoreFieldKeys))
		out.Level = asString(lookupAny(e, levelFieldKeys))
		out.Comment = asString(lookupAny(e, commentFieldKeys))
	default:
		out.Score = ToNumber(entry)
	}
	return out
}

func lookupAny(m map[string]any, keys []string) any {
	if m == nil {
		return nil
	}
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Total sums every indicator score across all criteria, independent of how
// criteria are grouped for display.
func (a Analysis) Total() float64 {
	var sum float64
	for _, indicators := range a.Criteria {
		for _, ind := range indicators {
			sum += ind.Score
		}
	}
	return sum
}

// Criterion sums the indicator scores of one named criterion.
func (a Analysis) Criterion(key string) float64 {
	var sum float64
	for _, ind := range a.Criteria[key] {
		sum += ind.Score
	}
	return sum
}

// IsMaxed reports whether a criterion reached its declared maximum exactly.
// One point below the maximum is not maxed and still earns follow-up
// questions.
func (a Analysis) IsMaxed(key string, max float64) bool {
	return a.Criterion(key) == max
}

// AllMaxed reports whether every criterion of the variant is at its maximum.
func (a Analysis) AllMaxed(v rubric.Variant) bool {
	for _, c := range v.Criteria {
		if !a.IsMaxed(c.Key, c.MaxScore()) {
			return false
		}
	}
	return true
}
