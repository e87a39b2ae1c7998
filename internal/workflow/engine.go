// Package workflow drives the four-step assessment state machine. The
// engine owns the active session, guards every forward transition, calls
// the remote services with a bounded context, and persists state after
// each transition. A failed remote call leaves the session exactly as it
// was.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joss/acelera/internal/config"
	"github.com/joss/acelera/internal/logging"
	"github.com/joss/acelera/internal/rubric"
	"github.com/joss/acelera/internal/score"
	"github.com/joss/acelera/internal/service"
	"github.com/joss/acelera/internal/session"
	"github.com/joss/acelera/internal/store"
)

// Guard and state errors.
var (
	ErrNoSession         = errors.New("no session loaded")
	ErrBusy              = errors.New("operation already in progress")
	ErrStepNotReachable  = errors.New("step not reachable yet")
	ErrNoAnalysis        = errors.New("analysis has not run")
	ErrNoQuestions       = errors.New("follow-up questions have not been generated")
	ErrNoFollowUpAnswers = errors.New("no supplementary answers recorded")
)

// MissingFieldsError reports which mandatory answers are still empty.
type MissingFieldsError struct {
	Fields [][2]string
}

func (e *MissingFieldsError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f[0] + "." + f[1]
	}
	return "mandatory answers missing: " + strings.Join(parts, ", ")
}

// AnalysisService scores the answers against the rubric.
type AnalysisService interface {
	Analyze(ctx context.Context, req service.AnalysisRequest) (map[string]any, error)
}

// QuestionService generates follow-up questions for weak criteria.
type QuestionService interface {
	GenerateQuestions(ctx context.Context, req service.QuestionsRequest) (session.QuestionSet, error)
}

// SynthesisService merges original and supplementary answers into the
// improved deliverable text.
type SynthesisService interface {
	Synthesize(ctx context.Context, req service.SynthesisRequest) (map[string]map[string]string, error)
}

// Services bundles the three remote dependencies.
type Services interface {
	AnalysisService
	QuestionService
	SynthesisService
}

var _ Services = (*service.Client)(nil)

// Engine is the state machine for one loaded session.
type Engine struct {
	mu       sync.Mutex
	variant  rubric.Variant
	store    store.SessionStore
	services Services
	timeout  time.Duration
	sess     *session.Session
	log      *logging.Logger

	analyzing  bool
	generating bool
	evaluating bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout overrides the remote-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// NewEngine builds an engine for one rubric variant.
func NewEngine(v rubric.Variant, st store.SessionStore, svcs Services, opts ...Option) *Engine {
	e := &Engine{
		variant:  v,
		store:    st,
		services: svcs,
		timeout:  time.Duration(config.Env().TimeoutSeconds) * time.Second,
		log:      logging.New("workflow"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches or creates the session for the key and reconciles its
// progress markers with its content.
func (e *Engine) Load(ctx context.Context, projectID string, stage, accelerator int) error {
	start := time.Now()
	sess, err := e.store.Load(ctx, projectID, stage, accelerator)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		sess = session.New(projectID, e.variant, stage, accelerator)
	}
	Rederive(sess)

	e.mu.Lock()
	e.sess = sess
	e.mu.Unlock()

	e.log.WithProject(projectID).TimedEvent("session_loaded", start, map[string]interface{}{
		"step":      sess.CurrentStep,
		"completed": len(sess.CompletedSteps),
	})
	return nil
}

// Session returns the active session, nil when none is loaded.
func (e *Engine) Session() *session.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess
}

// Variant returns the rubric variant the engine runs.
func (e *Engine) Variant() rubric.Variant { return e.variant }

// HasSession reports whether a session is loaded.
func (e *Engine) HasSession() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess != nil
}

// IsAnalyzing reports whether the analysis call is in flight.
func (e *Engine) IsAnalyzing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.analyzing
}

// IsGenerating reports whether the question call is in flight.
func (e *Engine) IsGenerating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generating
}

// IsEvaluating reports whether the synthesis call is in flight.
func (e *Engine) IsEvaluating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.evaluating
}

// SetAnswer stores one free-text answer field.
func (e *Engine) SetAnswer(criterion, field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return ErrNoSession
	}
	e.sess.Answers.Set(criterion, field, value)
	e.sess.Touch()
	return nil
}

// SetResources replaces the resource table. Every row's subtotal is
// recomputed; stored subtotals are never trusted.
func (e *Engine) SetResources(rows []session.ResourceRow) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return ErrNoSession
	}
	for i := range rows {
		rows[i].Normalize()
	}
	e.sess.Answers.Resources = rows
	e.sess.Touch()
	return nil
}

// SetFollowUpAnswer stores one supplementary answer.
func (e *Engine) SetFollowUpAnswer(criterion, field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return ErrNoSession
	}
	if e.sess.FollowUp == nil {
		e.sess.FollowUp = make(map[string]map[string]string)
	}
	if e.sess.FollowUp[criterion] == nil {
		e.sess.FollowUp[criterion] = make(map[string]string)
	}
	e.sess.FollowUp[criterion][field] = value
	e.sess.Touch()
	return nil
}

// Analyze submits the initial answers for rubric scoring and advances to
// the analysis step. Mandatory answers must be filled first; the guard
// fails before any network traffic. Re-running replaces the previous
// analysis without duplicating progress markers.
func (e *Engine) Analyze(ctx context.Context) error {
	e.mu.Lock()
	if e.sess == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	if e.analyzing {
		e.mu.Unlock()
		return ErrBusy
	}
	if missing := e.sess.Answers.MissingMandatory(e.variant); len(missing) > 0 {
		e.mu.Unlock()
		return &MissingFieldsError{Fields: missing}
	}
	req := service.AnalysisRequest{
		ProjectID:   e.sess.ProjectID,
		Kind:        e.sess.Kind,
		Stage:       e.sess.Stage,
		Accelerator: e.sess.Accelerator,
		Answers:     e.sess.Answers,
	}
	e.analyzing = true
	e.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	analysis, err := e.services.Analyze(callCtx, req)

	e.mu.Lock()
	e.analyzing = false
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("analyze: %w", err)
	}
	e.sess.Analysis = analysis
	e.sess.MarkComplete(session.StepAnswers)
	e.sess.MarkComplete(session.StepAnalysis)
	e.sess.CurrentStep = session.StepAnalysis
	e.sess.Touch()
	e.mu.Unlock()

	return e.persist(ctx)
}

// GenerateQuestions asks for follow-up questions on every criterion below
// its maximum and advances to the supplementary step. When every criterion
// is already maxed there is nothing to improve: the engine skips the
// remote call, carries the original answers forward as the final text,
// and lands on the result step.
func (e *Engine) GenerateQuestions(ctx context.Context) error {
	e.mu.Lock()
	if e.sess == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	if e.generating {
		e.mu.Unlock()
		return ErrBusy
	}
	if !e.sess.HasAnalysis() {
		e.mu.Unlock()
		return ErrNoAnalysis
	}

	analysis := score.Normalize(e.sess.Analysis, e.variant)
	var pending []string
	for _, c := range e.variant.Criteria {
		if !analysis.IsMaxed(c.Key, c.MaxScore()) {
			pending = append(pending, c.Key)
		}
	}

	if len(pending) == 0 {
		e.sess.Questions = session.QuestionSet{}
		e.sess.ImprovedText = copyCriteria(e.sess.Answers.Criteria)
		e.sess.MarkComplete(session.StepFollowUp)
		e.sess.MarkComplete(session.StepResult)
		e.sess.CurrentStep = session.StepResult
		e.sess.Touch()
		e.mu.Unlock()
		e.log.Info("all_criteria_maxed", nil)
		return e.persist(ctx)
	}

	req := service.QuestionsRequest{
		ProjectID: e.sess.ProjectID,
		Kind:      e.sess.Kind,
		Criteria:  pending,
		Answers:   e.sess.Answers,
		Analysis:  e.sess.Analysis,
	}
	e.generating = true
	e.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	questions, err := e.services.GenerateQuestions(callCtx, req)

	e.mu.Lock()
	e.generating = false
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("generate questions: %w", err)
	}
	e.sess.Questions = questions
	e.sess.MarkComplete(session.StepFollowUp)
	e.sess.CurrentStep = session.StepFollowUp
	e.sess.Touch()
	e.mu.Unlock()

	return e.persist(ctx)
}

// EvaluateFollowUp submits the combined original and supplementary answers
// for synthesis and advances to the result step. Questions must have been
// generated and at least one supplementary answer recorded; both guards
// fail before any network traffic.
func (e *Engine) EvaluateFollowUp(ctx context.Context) error {
	e.mu.Lock()
	if e.sess == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	if e.evaluating {
		e.mu.Unlock()
		return ErrBusy
	}
	if !e.sess.HasQuestions() {
		e.mu.Unlock()
		return ErrNoQuestions
	}
	if len(e.sess.FollowUp) == 0 {
		e.mu.Unlock()
		return ErrNoFollowUpAnswers
	}

	responses := make(map[string]map[string]service.AnswerPair, len(e.sess.FollowUp))
	for criterion, fields := range e.sess.FollowUp {
		pairs := make(map[string]service.AnswerPair, len(fields))
		for field, answer := range fields {
			pairs[field] = service.AnswerPair{
				OriginalAnswer: e.sess.Answers.Get(criterion, field),
				NewAnswer:      answer,
			}
		}
		responses[criterion] = pairs
	}

	req := service.SynthesisRequest{
		ProjectID: e.sess.ProjectID,
		Kind:      e.sess.Kind,
		Answers:   e.sess.Answers,
		Analysis:  e.sess.Analysis,
		Responses: responses,
	}
	e.evaluating = true
	e.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	improved, err := e.services.Synthesize(callCtx, req)

	e.mu.Lock()
	e.evaluating = false
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("evaluate follow-up: %w", err)
	}
	e.sess.ImprovedText = improved
	e.sess.MarkComplete(session.StepResult)
	e.sess.CurrentStep = session.StepResult
	e.sess.Touch()
	e.mu.Unlock()

	return e.persist(ctx)
}

// GoToStep navigates to a step the session has already reached. Backward
// navigation is always allowed; forward only up to the highest reached
// step.
func (e *Engine) GoToStep(step int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return ErrNoSession
	}
	if step < session.StepAnswers || step > session.StepResult {
		return fmt.Errorf("%w: step %d out of range", ErrStepNotReachable, step)
	}
	if step > e.sess.HighestReached() {
		return fmt.Errorf("%w: step %d beyond %d", ErrStepNotReachable, step, e.sess.HighestReached())
	}
	e.sess.CurrentStep = step
	e.sess.Touch()
	return nil
}

// Restart wipes all progress back to step 1 and persists the empty state.
// This is the only operation that shrinks the completed set.
func (e *Engine) Restart(ctx context.Context) error {
	e.mu.Lock()
	if e.sess == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	e.sess.Restart(e.variant)
	e.mu.Unlock()

	e.log.Info("session_restarted", nil)
	return e.persist(ctx)
}

// Scores returns the normalized analysis for the loaded session.
func (e *Engine) Scores() (score.Analysis, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return score.Analysis{}, ErrNoSession
	}
	if !e.sess.HasAnalysis() {
		return score.Analysis{}, ErrNoAnalysis
	}
	return score.Normalize(e.sess.Analysis, e.variant), nil
}

// Save persists the active session immediately.
func (e *Engine) Save(ctx context.Context) error {
	return e.persist(ctx)
}

func (e *Engine) persist(ctx context.Context) error {
	e.mu.Lock()
	sess := e.sess
	e.mu.Unlock()
	if sess == nil {
		return ErrNoSession
	}
	if err := e.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func copyCriteria(src map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(src))
	for k, fields := range src {
		inner := make(map[string]string, len(fields))
		for f, v := range fields {
			inner[f] = v
		}
		out[k] = inner
	}
	return out
}
