// Package session defines the persisted record for one project's progress
// through the four-stage self-assessment workflow, plus the migration that
// normalizes legacy flat records into the current nested shape.
package session

import (
	"sort"
	"strings"
	"time"

	"github.com/joss/acelera/internal/rubric"
)

// Workflow steps.
const (
	StepAnswers  = 1 // initial questionnaire
	StepAnalysis = 2 // remote rubric scoring
	StepFollowUp = 3 // supplementary questions
	StepResult   = 4 // improved-text deliverable
)

// CriterionQuestions holds the follow-up questions generated for one criterion.
type CriterionQuestions struct {
	Title     string   `json:"title"`
	Intro     string   `json:"intro"`
	Questions []string `json:"questions"`
}

// QuestionSet maps criterion key to its follow-up questions. Criteria whose
// score already equals the declared maximum are absent.
type QuestionSet map[string]CriterionQuestions

// Answers is the current nested answer shape: free-text fields grouped by
// criterion, plus the resource-table rows for the budget criterion.
type Answers struct {
	Criteria  map[string]map[string]string `json:"criteria"`
	Resources []ResourceRow                `json:"resources"`
}

// NewAnswers returns a structurally complete, empty-valued answer set for a
// variant. Every criterion and field key exists so callers never need to
// check for presence.
func NewAnswers(v rubric.Variant) Answers {
	a := Answers{Criteria: make(map[string]map[string]string, len(v.Criteria))}
	for _, c := range v.Criteria {
		fields := make(map[string]string, len(c.Fields))
		for _, f := range c.Fields {
			fields[f] = ""
		}
		a.Criteria[c.Key] = fields
	}
	return a
}

// Get returns a field value, empty string when absent.
func (a Answers) Get(criterion, field string) string {
	if a.Criteria == nil {
		return ""
	}
	return a.Criteria[criterion][field]
}

// Set stores a field value, creating the criterion map when needed.
func (a *Answers) Set(criterion, field, value string) {
	if a.Criteria == nil {
		a.Criteria = make(map[string]map[string]string)
	}
	if a.Criteria[criterion] == nil {
		a.Criteria[criterion] = make(map[string]string)
	}
	a.Criteria[criterion][field] = value
}

// IsEmpty reports whether no field has content and the resource table is empty.
func (a Answers) IsEmpty() bool {
	for _, fields := range a.Criteria {
		for _, v := range fields {
			if strings.TrimSpace(v) != "" {
				return false
			}
		}
	}
	return len(a.Resources) == 0
}

// MissingMandatory returns the (criterion, field) pairs whose mandatory
// free-text value is empty after trimming.
func (a Answers) MissingMandatory(v rubric.Variant) [][2]string {
	var missing [][2]string
	for _, pair := range v.MandatoryFields() {
		if strings.TrimSpace(a.Get(pair[0], pair[1])) == "" {
			missing = append(missing, pair)
		}
	}
	return missing
}

// Session is the unit of work for one (project, accelerator stage) pair.
type Session struct {
	ProjectID      string                       `json:"project_id"`
	Kind           string                       `json:"kind"`
	Stage          int                          `json:"stage"`
	Accelerator    int                          `json:"accelerator"`
	CurrentStep    int                          `json:"current_step"`
	CompletedSteps []int                        `json:"completed_steps"`
	Answers        Answers                      `json:"answers"`
	Analysis       map[string]any               `json:"analysis,omitempty"`
	Questions      QuestionSet                  `json:"followup_questions,omitempty"`
	FollowUp       map[string]map[string]string `json:"followup_answers,omitempty"`
	ImprovedText   map[string]map[string]string `json:"improved_text,omitempty"`
	LastUpdated    time.Time                    `json:"last_updated"`
}

// New creates an empty session at step 1 for the given project and variant.
func New(projectID string, v rubric.Variant, stage, accelerator int) *Session {
	return &Session{
		ProjectID:   projectID,
		Kind:        v.Kind,
		Stage:       stage,
		Accelerator: accelerator,
		CurrentStep: StepAnswers,
		Answers:     NewAnswers(v),
		LastUpdated: time.Now().UTC(),
	}
}

// HasAnalysis reports whether the analysis payload is present.
func (s *Session) HasAnalysis() bool { return len(s.Analysis) > 0 }

// HasQuestions reports whether follow-up questions are present.
func (s *Session) HasQuestions() bool { return s.Questions != nil }

// HasImprovedText reports whether the final deliverable is present.
func (s *Session) HasImprovedText() bool { return len(s.ImprovedText) > 0 }

// IsComplete reports whether a step is in the completed set.
func (s *Session) IsComplete(step int) bool {
	for _, n := range s.CompletedSteps {
		if n == step {
			return true
		}
	}
	return false
}

// MarkComplete adds a step to the completed set. Set semantics: re-marking a
// completed step is a no-op, so repeated advances never duplicate entries.
func (s *Session) MarkComplete(step int) {
	if step < StepAnswers || step > StepResult || s.IsComplete(step) {
		return
	}
	s.CompletedSteps = append(s.CompletedSteps, step)
	sort.Ints(s.CompletedSteps)
}

// HighestReached returns the furthest step the user may navigate to.
func (s *Session) HighestReached() int {
	highest := s.CurrentStep
	for _, n := range s.CompletedSteps {
		if n > highest {
			highest = n
		}
	}
	return highest
}

// Restart clears all progress back to step 1. This is the only path that
// shrinks the completed set.
func (s *Session) Restart(v rubric.Variant) {
	s.CurrentStep = StepAnswers
	s.CompletedSteps = nil
	s.Answers = NewAnswers(v)
	s.Analysis = nil
	s.Questions = nil
	s.FollowUp = nil
	s.ImprovedText = nil
	s.LastUpdated = time.Now().UTC()
}

// Touch updates the modification timestamp.
func (s *Session) Touch() {
	s.LastUpdated = time.Now().UTC()
}
