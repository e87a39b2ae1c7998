package score

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/acelera/internal/rubric"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 7.5, 7.5},
		{"int", 8, 8},
		{"int64", int64(12), 12},
		{"json number", json.Number("9"), 9},
		{"plain string", "8", 8},
		{"score with unit", "8 / 15 puntos", 8},
		{"leading spaces", "  12 pts", 12},
		{"no digits", "excelente", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToNumber(tt.in))
		})
	}
}

func TestNormalizeEmojiPayload(t *testing.T) {
	v, err := rubric.Get(rubric.KindPedagogical)
	require.NoError(t, err)

	raw := map[string]any{
		"🎯 Intencionalidad": map[string]any{
			"📌 Definición del problema": map[string]any{
				"puntaje":    "4 / 5 puntos",
				"nivel":      "bueno",
				"comentario": "bien delimitado",
			},
			"alineacion_objetivos": 5.0,
			"evidencia_necesidad":  "3",
		},
	}

	a := Normalize(raw, v)
	assert.Equal(t, v.MaxTotal(), a.MaxTotal)

	got := a.Criteria["intentionality"]
	require.Len(t, got, 3)
	assert.Equal(t, 4.0, got[0].Score)
	assert.Equal(t, "bueno", got[0].Level)
	assert.Equal(t, "bien delimitado", got[0].Comment)
	assert.Equal(t, 5.0, got[1].Score)
	assert.Equal(t, 3.0, got[2].Score)
	assert.Equal(t, 12.0, a.Criterion("intentionality"))

	// Absent criteria still appear with zero scores.
	require.Len(t, a.Criteria["impact"], 3)
	assert.Equal(t, 0.0, a.Criterion("impact"))
}

func TestNormalizeIsTotal(t *testing.T) {
	v, err := rubric.Get(rubric.KindManagement)
	require.NoError(t, err)

	for _, raw := range []map[string]any{
		nil,
		{},
		{"intencionalidad": "garbage"},
		{"intencionalidad": map[string]any{"definicion_problema": []any{1, 2}}},
	} {
		a := Normalize(raw, v)
		for _, c := range v.Criteria {
			assert.Len(t, a.Criteria[c.Key], len(c.Indicators))
		}
		assert.Equal(t, 0.0, a.Total())
	}
}

func TestIsMaxedExactEquality(t *testing.T) {
	v, err := rubric.Get(rubric.KindPedagogical)
	require.NoError(t, err)

	raw := map[string]any{
		"impacto": map[string]any{
			"resultados_aprendizaje": 5.0,
			"cobertura":              5.0,
			"evidencia_resultados":   4.0,
		},
	}
	a := Normalize(raw, v)

	c, ok := v.Criterion("impact")
	require.True(t, ok)
	assert.False(t, a.IsMaxed("impact", c.MaxScore()), "14 of 15 is not maxed")

	raw["impacto"].(map[string]any)["evidencia_resultados"] = 5.0
	a = Normalize(raw, v)
	assert.True(t, a.IsMaxed("impact", c.MaxScore()))
}

func TestAllMaxed(t *testing.T) {
	v, err := rubric.Get(rubric.KindCommunity)
	require.NoError(t, err)

	raw := map[string]any{}
	for _, c := range v.Criteria {
		section := map[string]any{}
		for _, ind := range c.Indicators {
			section[ind.PayloadKeys[0]] = ind.Max
		}
		raw[c.PayloadKeys[0]] = section
	}

	a := Normalize(raw, v)
	assert.True(t, a.AllMaxed(v))
	assert.Equal(t, v.MaxTotal(), a.Total())

	// One point short anywhere breaks it.
	raw["intentionality"].(map[string]any)["problem_definition"] = 4.0
	a = Normalize(raw, v)
	assert.False(t, a.AllMaxed(v))
}
