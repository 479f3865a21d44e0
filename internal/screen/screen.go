// Package screen holds the per-screen interaction state shared by the list
// controllers: search debouncing, the consecutive-failure tracker, and the
// single in-flight mutation guard.
package screen

import (
	"errors"
	"sync"
	"time"
)

// DefaultSearchDebounce is the delay applied to search input before the
// filter is reapplied
const DefaultSearchDebounce = 500 * time.Millisecond

// DefaultFailureThreshold is the number of consecutive load failures that
// escalates into a blocking recovery prompt
const DefaultFailureThreshold = 3

// Shared controller errors
var (
	// ErrBusy is returned when a mutation is attempted while another is in flight
	ErrBusy = errors.New("another operation is already in progress")
	// ErrRecoveryNeeded signals that repeated load failures require a manual
	// reset or forced reload before continuing
	ErrRecoveryNeeded = errors.New("repeated load failures, recovery required")
)

// Debouncer coalesces rapid calls into a single trailing invocation. Only the
// last function handed to Do within the interval runs.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
}

// NewDebouncer creates a debouncer with the given trailing interval
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultSearchDebounce
	}
	return &Debouncer{interval: interval}
}

// Do schedules fn, cancelling any previously scheduled call
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels any pending invocation
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// ErrorTracker counts consecutive remote failures. When the threshold is
// reached the tracker signals exactly once and resets, so the caller can
// raise a recovery prompt instead of another plain error banner.
type ErrorTracker struct {
	mu        sync.Mutex
	threshold int
	failures  int
}

// NewErrorTracker creates a tracker with the given threshold
func NewErrorTracker(threshold int) *ErrorTracker {
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	return &ErrorTracker{threshold: threshold}
}

// Failure records a failed operation. It returns true when the consecutive
// failure count reaches the threshold; the count then restarts from zero.
func (t *ErrorTracker) Failure() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.failures++
	if t.failures >= t.threshold {
		t.failures = 0
		return true
	}
	return false
}

// Success resets the consecutive failure count
func (t *ErrorTracker) Success() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures = 0
}

// Failures returns the current consecutive failure count
func (t *ErrorTracker) Failures() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failures
}

// Guard serializes mutating operations: repeated submissions while one is in
// flight are rejected rather than queued.
type Guard struct {
	mu         sync.Mutex
	processing bool
}

// Begin acquires the single in-flight slot
func (g *Guard) Begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.processing {
		return ErrBusy
	}
	g.processing = true
	return nil
}

// End releases the in-flight slot
func (g *Guard) End() {
	g.mu.Lock()
	g.processing = false
	g.mu.Unlock()
}
