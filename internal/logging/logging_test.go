package logging

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"
	"time"
)

func TestLoggerCreation(t *testing.T) {
	os.Setenv("ACELERA_PROJECT", "test-project")
	defer os.Unsetenv("ACELERA_PROJECT")

	logger := New("test-component")

	if logger.component != "test-component" {
		t.Errorf("expected component 'test-component', got '%s'", logger.component)
	}
	if logger.project != "test-project" {
		t.Errorf("expected project 'test-project', got '%s'", logger.project)
	}
}

func TestLoggerWithProject(t *testing.T) {
	logger := New("component").WithProject("my-project")

	if logger.project != "my-project" {
		t.Errorf("expected project 'my-project', got '%s'", logger.project)
	}
	if logger.component != "component" {
		t.Errorf("WithProject must keep the component")
	}
}

func TestLoggerWithStep(t *testing.T) {
	logger := New("workflow").WithStep(3)

	if logger.step != 3 {
		t.Errorf("expected step 3, got %d", logger.step)
	}
}

func TestEventMarshalShape(t *testing.T) {
	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     LevelError,
		Component: "autosave",
		Event:     "save",
		Project:   "proj-1",
		Step:      2,
		Error:     "disk full",
		Extra:     map[string]interface{}{"manual": false},
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"ts", "level", "component", "event", "project", "step", "error", "extra"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("expected key %q in event JSON", key)
		}
	}
	if decoded["level"] != "error" {
		t.Errorf("expected level 'error', got %v", decoded["level"])
	}
}

func TestEventOmitsEmptyFields(t *testing.T) {
	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     LevelInfo,
		Component: "workflow",
		Event:     "session_loaded",
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"project", "step", "duration_ms", "error", "extra"} {
		if _, ok := decoded[key]; ok {
			t.Errorf("expected key %q to be omitted", key)
		}
	}
}

func TestSaveEventShape(t *testing.T) {
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w

	SaveEvent("proj-1", true, 42*time.Millisecond, errors.New("disk full"))

	w.Close()
	os.Stderr = old
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var e map[string]any
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	if e["component"] != "autosave" || e["event"] != "save" {
		t.Errorf("unexpected component/event: %v/%v", e["component"], e["event"])
	}
	if e["level"] != "error" {
		t.Errorf("expected level 'error' on failed save, got %v", e["level"])
	}
	if e["project"] != "proj-1" {
		t.Errorf("expected project 'proj-1', got %v", e["project"])
	}
	if e["duration_ms"] != float64(42) {
		t.Errorf("expected duration_ms 42, got %v", e["duration_ms"])
	}
	extra, _ := e["extra"].(map[string]any)
	if extra["manual"] != true {
		t.Errorf("expected manual=true, got %v", extra["manual"])
	}
}

func TestRequestID(t *testing.T) {
	id := NewRequestID()
	if id == "" || id == NewRequestID() {
		t.Errorf("expected unique non-empty request IDs, got %q", id)
	}

	ctx := WithRequestID(context.Background(), "abc123")
	if got := RequestID(ctx); got != "abc123" {
		t.Errorf("expected 'abc123', got %q", got)
	}

	// Empty id generates a fresh one.
	ctx = WithRequestID(context.Background(), "")
	if RequestID(ctx) == "" {
		t.Error("expected a generated request ID")
	}

	if RequestID(context.Background()) != "" {
		t.Error("expected empty ID on bare context")
	}
}
