// Package service implements the HTTP clients for the three remote
// assessment services: rubric analysis, follow-up question generation,
// and answer synthesis. Each call carries the project context and the
// session content the service needs; responses arrive in a uniform
// success envelope.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joss/acelera/internal/config"
	"github.com/joss/acelera/internal/logging"
	"github.com/joss/acelera/internal/session"
)

// HTTPClient abstracts the HTTP transport for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the three remote assessment endpoints.
type Client struct {
	httpClient   HTTPClient
	analysisURL  string
	questionsURL string
	synthesisURL string
	log          *logging.Logger
}

// NewClient builds a client from the environment configuration.
func NewClient() *Client {
	env := config.Env()
	return NewClientWith(&http.Client{}, env.AnalysisURL, env.QuestionsURL, env.SynthesisURL)
}

// NewClientWith builds a client with an explicit transport and endpoints.
func NewClientWith(hc HTTPClient, analysisURL, questionsURL, synthesisURL string) *Client {
	return &Client{
		httpClient:   hc,
		analysisURL:  analysisURL,
		questionsURL: questionsURL,
		synthesisURL: synthesisURL,
		log:          logging.New("service"),
	}
}

// AnalysisRequest is the payload for the rubric-analysis endpoint.
type AnalysisRequest struct {
	ProjectID   string          `json:"project_id"`
	Kind        string          `json:"kind"`
	Stage       int             `json:"stage"`
	Accelerator int             `json:"accelerator"`
	Answers     session.Answers `json:"answers"`
}

// QuestionsRequest is the payload for the question-generation endpoint.
// Criteria names only the criteria that still need improvement; maxed
// criteria are excluded by the caller.
type QuestionsRequest struct {
	ProjectID string          `json:"project_id"`
	Kind      string          `json:"kind"`
	Criteria  []string        `json:"criteria"`
	Answers   session.Answers `json:"answers"`
	Analysis  map[string]any  `json:"analysis"`
}

// AnswerPair combines the original answer with the supplementary one for
// a single field, so the synthesis service sees both.
type AnswerPair struct {
	OriginalAnswer string `json:"original_answer"`
	NewAnswer      string `json:"new_answer"`
}

// SynthesisRequest is the payload for the answer-synthesis endpoint.
type SynthesisRequest struct {
	ProjectID string                           `json:"project_id"`
	Kind      string                           `json:"kind"`
	Answers   session.Answers                  `json:"answers"`
	Analysis  map[string]any                   `json:"analysis"`
	Responses map[string]map[string]AnswerPair `json:"responses"`
}

// envelope is the uniform response wrapper all three services use.
type envelope struct {
	Success   bool                         `json:"success"`
	Error     string                       `json:"error"`
	Analysis  map[string]any               `json:"analysis"`
	Questions session.QuestionSet          `json:"questions"`
	Improved  map[string]map[string]string `json:"improved_responses"`
}

// Analyze submits the answers for rubric scoring and returns the raw
// analysis payload.
func (c *Client) Analyze(ctx context.Context, req AnalysisRequest) (map[string]any, error) {
	start := time.Now()
	env, err := c.post(ctx, c.analysisURL, req)
	logging.RemoteEvent("analyze", req.ProjectID, err == nil, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if env.Analysis == nil {
		return nil, fmt.Errorf("analysis service returned empty payload")
	}
	return env.Analysis, nil
}

// GenerateQuestions asks for follow-up questions on the listed criteria.
func (c *Client) GenerateQuestions(ctx context.Context, req QuestionsRequest) (session.QuestionSet, error) {
	start := time.Now()
	env, err := c.post(ctx, c.questionsURL, req)
	logging.RemoteEvent("questions", req.ProjectID, err == nil, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if env.Questions == nil {
		return nil, fmt.Errorf("question service returned empty payload")
	}
	return env.Questions, nil
}

// Synthesize submits the combined original and supplementary answers and
// returns the improved text per criterion and field.
func (c *Client) Synthesize(ctx context.Context, req SynthesisRequest) (map[string]map[string]string, error) {
	start := time.Now()
	env, err := c.post(ctx, c.synthesisURL, req)
	logging.RemoteEvent("synthesize", req.ProjectID, err == nil, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if env.Improved == nil {
		return nil, fmt.Errorf("synthesis service returned empty payload")
	}
	return env.Improved, nil
}

// post sends one JSON request and decodes the uniform envelope. Transport
// failures, non-2xx statuses and success=false all surface as errors so
// the engine treats them identically.
func (c *Client) post(ctx context.Context, url string, payload any) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Correlate each remote call with the structured log stream.
	id := logging.RequestID(ctx)
	if id == "" {
		id = logging.NewRequestID()
	}
	req.Header.Set("X-Request-ID", id)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("service returned status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "unspecified service error"
		}
		return nil, fmt.Errorf("service reported failure: %s", msg)
	}
	return &env, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
