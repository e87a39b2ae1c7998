// Package autosave debounces background persistence of the active
// session. Edits schedule a trailing save; only the last schedule within
// the debounce window triggers a write, so a burst of edits costs one
// save. Background failures are logged and swallowed; a manual flush
// surfaces its error to the caller.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/joss/acelera/internal/config"
	"github.com/joss/acelera/internal/logging"
)

// SaveFunc persists the current session state.
type SaveFunc func(ctx context.Context) error

// Controller owns the debounce timer for one session.
type Controller struct {
	mu          sync.Mutex
	delay       time.Duration
	save        SaveFunc
	hasSession  func() bool
	timer       *time.Timer
	primed      bool
	saving      bool
	lastSavedAt time.Time
	project     string
}

// New builds a controller with the configured debounce delay.
func New(save SaveFunc, hasSession func() bool) *Controller {
	return NewWithDelay(save, hasSession, time.Duration(config.Env().AutosaveMillis)*time.Millisecond)
}

// NewWithDelay builds a controller with an explicit debounce delay.
func NewWithDelay(save SaveFunc, hasSession func() bool, delay time.Duration) *Controller {
	return &Controller{
		delay:      delay,
		save:       save,
		hasSession: hasSession,
		project:    config.Env().ProjectID,
	}
}

// Schedule arms the trailing save. Each call resets the single timer, so
// the save fires one delay after the last edit. The very first call after
// construction only primes the controller: it reflects the initial load,
// not a user edit, and must not write. Without a loaded session Schedule
// is a no-op.
func (c *Controller) Schedule() {
	if c.hasSession != nil && !c.hasSession() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.primed {
		c.primed = true
		return
	}

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, c.fire)
}

// fire runs the background save. Errors are logged only; the next edit
// schedules a fresh attempt.
func (c *Controller) fire() {
	c.mu.Lock()
	c.saving = true
	c.mu.Unlock()

	start := time.Now()
	err := c.save(context.Background())

	c.mu.Lock()
	c.saving = false
	if err == nil {
		c.lastSavedAt = time.Now()
	}
	c.mu.Unlock()

	logging.SaveEvent(c.project, false, time.Since(start), err)
}

// Flush cancels any pending timer and saves synchronously. Unlike the
// background path its error is returned to the caller.
func (c *Controller) Flush(ctx context.Context) error {
	if c.hasSession != nil && !c.hasSession() {
		return nil
	}

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.saving = true
	c.mu.Unlock()

	start := time.Now()
	err := c.save(ctx)

	c.mu.Lock()
	c.saving = false
	if err == nil {
		c.lastSavedAt = time.Now()
	}
	c.mu.Unlock()

	logging.SaveEvent(c.project, true, time.Since(start), err)
	return err
}

// Stop cancels any pending save without writing.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// IsSaving reports whether a save is in flight.
func (c *Controller) IsSaving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// LastSavedAt returns the time of the last successful save, zero when
// nothing has been saved yet.
func (c *Controller) LastSavedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSavedAt
}
