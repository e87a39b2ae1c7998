package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/acelera/internal/rubric"
	"github.com/joss/acelera/internal/score"
)

func TestWriterFormatting(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.Section("Impact (impact)")
	w.Item("%-12s %s", "results", "better outcomes")
	w.Line()
	w.Println("Total: %d", 3)
	w.Print("done")

	out := buf.String()
	assert.Contains(t, out, "IMPACT (IMPACT):\n")
	assert.Contains(t, out, "  results      better outcomes\n")
	assert.Contains(t, out, "Total: 3\n")
	assert.True(t, strings.HasSuffix(out, "done"))
}

func TestScoreIcon(t *testing.T) {
	assert.Equal(t, "●", ScoreIcon(15, 15))
	assert.Equal(t, "◐", ScoreIcon(8, 15))
	assert.Equal(t, "○", ScoreIcon(3, 15))
	assert.Equal(t, "•", ScoreIcon(1, 0))
}

func TestScoresShowsIconPerCriterion(t *testing.T) {
	v, err := rubric.Get(rubric.KindPedagogical)
	require.NoError(t, err)

	raw := map[string]any{}
	for _, c := range v.Criteria {
		section := map[string]any{}
		for _, ind := range c.Indicators {
			section[ind.PayloadKeys[0]] = ind.Max
		}
		raw[c.PayloadKeys[0]] = section
	}
	a := score.Normalize(raw, v)

	out := New(false).Scores(a, v)
	assert.Contains(t, out, "● intentionality 15.0/15")
	assert.Contains(t, out, "Total: 75.0 / 75")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "longtex...", Truncate("longtext that keeps going", 10))
	assert.Equal(t, "ab", Truncate("abcd", 2))
}
