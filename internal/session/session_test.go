package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/acelera/internal/rubric"
)

func pedagogical(t *testing.T) rubric.Variant {
	t.Helper()
	v, err := rubric.Get(rubric.KindPedagogical)
	require.NoError(t, err)
	return v
}

func TestNewAnswersStructurallyComplete(t *testing.T) {
	v := pedagogical(t)
	a := NewAnswers(v)

	for _, c := range v.Criteria {
		fields, ok := a.Criteria[c.Key]
		require.True(t, ok, "criterion %s missing", c.Key)
		for _, f := range c.Fields {
			_, ok := fields[f]
			assert.True(t, ok, "field %s.%s missing", c.Key, f)
		}
	}
	assert.True(t, a.IsEmpty())
}

func TestAnswersMissingMandatory(t *testing.T) {
	v := pedagogical(t)
	a := NewAnswers(v)

	all := a.MissingMandatory(v)
	assert.Len(t, all, len(v.MandatoryFields()))

	for _, pair := range v.MandatoryFields() {
		a.Set(pair[0], pair[1], "filled in")
	}
	assert.Empty(t, a.MissingMandatory(v))

	// Whitespace does not count as filled.
	a.Set("intentionality", "problem", "   ")
	missing := a.MissingMandatory(v)
	require.Len(t, missing, 1)
	assert.Equal(t, [2]string{"intentionality", "problem"}, missing[0])
}

func TestMarkCompleteSetSemantics(t *testing.T) {
	v := pedagogical(t)
	s := New("proj-1", v, 1, 1)

	s.MarkComplete(StepAnswers)
	s.MarkComplete(StepAnswers)
	s.MarkComplete(StepAnalysis)
	s.MarkComplete(StepAnswers)

	assert.Equal(t, []int{StepAnswers, StepAnalysis}, s.CompletedSteps)
	assert.True(t, s.IsComplete(StepAnswers))
	assert.False(t, s.IsComplete(StepFollowUp))

	// Out-of-range steps are ignored.
	s.MarkComplete(0)
	s.MarkComplete(5)
	assert.Len(t, s.CompletedSteps, 2)
}

func TestHighestReached(t *testing.T) {
	v := pedagogical(t)
	s := New("proj-1", v, 1, 1)
	assert.Equal(t, StepAnswers, s.HighestReached())

	s.MarkComplete(StepAnswers)
	s.MarkComplete(StepFollowUp)
	assert.Equal(t, StepFollowUp, s.HighestReached())

	s.CurrentStep = StepResult
	assert.Equal(t, StepResult, s.HighestReached())
}

func TestRestart(t *testing.T) {
	v := pedagogical(t)
	s := New("proj-1", v, 1, 2)
	s.Answers.Set("intentionality", "problem", "text")
	s.Analysis = map[string]any{"intentionality": map[string]any{}}
	s.Questions = QuestionSet{"impact": {Questions: []string{"q"}}}
	s.ImprovedText = map[string]map[string]string{"impact": {"results": "better"}}
	s.MarkComplete(StepAnswers)
	s.MarkComplete(StepAnalysis)
	s.CurrentStep = StepResult

	s.Restart(v)

	assert.Equal(t, StepAnswers, s.CurrentStep)
	assert.Empty(t, s.CompletedSteps)
	assert.True(t, s.Answers.IsEmpty())
	assert.False(t, s.HasAnalysis())
	assert.False(t, s.HasQuestions())
	assert.False(t, s.HasImprovedText())
	// Identity fields survive.
	assert.Equal(t, "proj-1", s.ProjectID)
	assert.Equal(t, 2, s.Accelerator)
}

func TestResourceRowSubtotal(t *testing.T) {
	r := NewResourceRow("equipment", "tablets", 3, 250, "")
	assert.Equal(t, 750.0, r.Subtotal)

	r.SetQuantity(4)
	assert.Equal(t, 1000.0, r.Subtotal)

	r.SetUnitPrice(100)
	assert.Equal(t, 400.0, r.Subtotal)

	// A decoded row with a lying subtotal is forced back in sync.
	bad := ResourceRow{Quantity: 2, UnitPrice: 10, Subtotal: 999}
	bad.Normalize()
	assert.Equal(t, 20.0, bad.Subtotal)
}

func TestResourceTotal(t *testing.T) {
	rows := []ResourceRow{
		NewResourceRow("equipment", "tablets", 2, 300, ""),
		NewResourceRow("services", "training", 1, 150, ""),
	}
	assert.Equal(t, 750.0, ResourceTotal(rows))
	assert.Equal(t, 0.0, ResourceTotal(nil))
}
