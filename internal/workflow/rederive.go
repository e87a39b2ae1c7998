package workflow

import "github.com/joss/acelera/internal/session"

// Rederive reconciles a loaded session's progress markers with its actual
// content. Completed steps are only ever added, never removed: content
// proves a step happened, but absent content never un-happens one that
// was recorded. A present final deliverable additionally forces the
// current step to the result view so the user lands on what they have.
func Rederive(s *session.Session) {
	if !s.Answers.IsEmpty() {
		s.MarkComplete(session.StepAnswers)
	}
	if s.HasAnalysis() {
		s.MarkComplete(session.StepAnalysis)
	}
	if s.HasQuestions() {
		s.MarkComplete(session.StepFollowUp)
	}
	if s.HasImprovedText() {
		s.MarkComplete(session.StepResult)
		s.CurrentStep = session.StepResult
	}

	if s.CurrentStep < session.StepAnswers {
		s.CurrentStep = session.StepAnswers
	}
	if highest := s.HighestReached(); s.CurrentStep > highest {
		s.CurrentStep = highest
	}
}
