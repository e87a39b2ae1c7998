package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/acelera/internal/rubric"
)

func TestMigrateNestedPassthrough(t *testing.T) {
	v := pedagogical(t)
	raw := map[string]any{
		"intentionality": map[string]any{"problem": "low reading scores", "objectives": "raise them"},
		"originality":    map[string]any{"description": "peer tutoring"},
		"impact":         map[string]any{},
		"sustainability": map[string]any{},
		"reflection":     map[string]any{},
		"resources": []any{
			map[string]any{"component": "equipment", "label": "books", "quantity": 10.0, "unit_price": 5.0, "subtotal": 999.0},
		},
	}

	out := Migrate(raw, v)
	assert.Equal(t, "low reading scores", out.Get("intentionality", "problem"))
	assert.Equal(t, "peer tutoring", out.Get("originality", "description"))
	require.Len(t, out.Resources, 1)
	// Stored subtotal is never trusted.
	assert.Equal(t, 50.0, out.Resources[0].Subtotal)
}

func TestMigrateWrappedCriteria(t *testing.T) {
	v := pedagogical(t)
	raw := map[string]any{
		"criteria": map[string]any{
			"intentionality": map[string]any{"problem": "p"},
			"originality":    map[string]any{},
			"impact":         map[string]any{},
			"sustainability": map[string]any{},
			"reflection":     map[string]any{},
		},
		"resources": []any{
			map[string]any{"component": "services", "quantity": 2.0, "unit_price": 30.0},
		},
	}

	out := Migrate(raw, v)
	assert.Equal(t, "p", out.Get("intentionality", "problem"))
	require.Len(t, out.Resources, 1)
	assert.Equal(t, 60.0, out.Resources[0].Subtotal)
}

func TestMigrateLegacyFlatAliases(t *testing.T) {
	v := pedagogical(t)
	raw := map[string]any{
		"descripcion_problema": "students drop out",
		"objetivos":            "keep them enrolled",
		"lecciones_aprendidas": "start earlier",
		"recursos": []any{
			map[string]any{"componente": "equipo", "descripcion": "laptops", "cantidad": 2.0, "precio_unitario": 400.0},
		},
	}

	out := Migrate(raw, v)
	assert.Equal(t, "students drop out", out.Get("intentionality", "problem"))
	assert.Equal(t, "keep them enrolled", out.Get("intentionality", "objectives"))
	assert.Equal(t, "start earlier", out.Get("reflection", "lessons"))
	require.Len(t, out.Resources, 1)
	assert.Equal(t, "equipo", out.Resources[0].Component)
	assert.Equal(t, "laptops", out.Resources[0].Label)
	assert.Equal(t, 800.0, out.Resources[0].Subtotal)
}

func TestMigrateAliasPriority(t *testing.T) {
	v := pedagogical(t)
	// Both spellings present: the earliest listed alias wins.
	raw := map[string]any{
		"intencionalidad_problema": "first",
		"problema":                 "second",
	}
	out := Migrate(raw, v)
	assert.Equal(t, "first", out.Get("intentionality", "problem"))
}

func TestMigrateTotality(t *testing.T) {
	v := pedagogical(t)
	inputs := []any{
		nil,
		"not a map",
		42,
		map[string]any{},
		map[string]any{"resources": "not a list"},
		map[string]any{"recursos": []any{"not a map", 7}},
	}
	for _, raw := range inputs {
		out := Migrate(raw, v)
		// Always structurally complete, never panics.
		for _, c := range v.Criteria {
			_, ok := out.Criteria[c.Key]
			assert.True(t, ok)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	v := pedagogical(t)
	raw := map[string]any{
		"descripcion_problema": "text",
		"recursos": []any{
			map[string]any{"componente": "equipo", "cantidad": 1.0, "precio_unitario": 10.0},
		},
	}

	first := Migrate(raw, v)

	// Round-trip the migrated shape through JSON and migrate again.
	blob, err := json.Marshal(map[string]any{
		"criteria":  first.Criteria,
		"resources": first.Resources,
	})
	require.NoError(t, err)
	var roundTripped map[string]any
	require.NoError(t, json.Unmarshal(blob, &roundTripped))

	second := Migrate(roundTripped, v)
	assert.Equal(t, first, second)
}

func TestDecodeMigratesLegacyAnswers(t *testing.T) {
	v := pedagogical(t)
	blob := []byte(`{
		"project_id": "proj-1",
		"kind": "pedagogical",
		"stage": 1,
		"accelerator": 1,
		"current_step": 1,
		"answers": {"problema": "old flat record"}
	}`)

	s, err := Decode(blob, v)
	require.NoError(t, err)
	assert.Equal(t, "proj-1", s.ProjectID)
	assert.Equal(t, "old flat record", s.Answers.Get("intentionality", "problem"))
}

func TestDecodeNestedAnswers(t *testing.T) {
	v := pedagogical(t)
	s := New("proj-2", v, 1, 1)
	s.Answers.Set("impact", "results", "better attendance")
	blob, err := json.Marshal(s)
	require.NoError(t, err)

	decoded, err := Decode(blob, v)
	require.NoError(t, err)
	assert.Equal(t, "better attendance", decoded.Answers.Get("impact", "results"))
}

func TestMigrateIgnoresUnknownVariant(t *testing.T) {
	// A raw record keyed like one variant migrated under another only
	// picks up shared aliases and stays total.
	v, err := rubric.Get(rubric.KindCommunity)
	require.NoError(t, err)
	out := Migrate(map[string]any{"tecnologia_alcance": "irrelevant"}, v)
	assert.True(t, out.IsEmpty())
}
