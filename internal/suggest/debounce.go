// Package suggest coalesces search-as-you-type input into single
// suggestion fetches.
package suggest

import (
	"strings"
	"time"
)

// DefaultDelay is the quiet window after the last keystroke before a
// fetch may fire.
const DefaultDelay = 300 * time.Millisecond

// MinQueryLength is the minimum query length for which suggestions are
// fetched at all.
const MinQueryLength = 3

// Debouncer is a reset-on-input debounce as a pure state machine: every
// Input returns a generation token and the caller schedules a timer (for
// the TUI, a Bubble Tea tick) carrying it; when the timer elapses, Fire
// accepts only the latest generation. Driving the timing externally keeps
// the type free of goroutines and directly testable.
type Debouncer struct {
	delay   time.Duration
	gen     int
	pending string
	stopped bool
}

// NewDebouncer creates a debouncer. delay <= 0 uses DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet window to wait after each Input.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Input records a new query, superseding any earlier pending one, and
// returns the generation the caller's timer must carry.
func (d *Debouncer) Input(query string) int {
	d.gen++
	d.pending = query
	d.stopped = false
	return d.gen
}

// Generation returns the latest token handed out by Input.
func (d *Debouncer) Generation() int { return d.gen }

// Fire is called when the timer for generation gen elapses. It returns the
// pending query and true only when gen is still the latest and the query
// is long enough to fetch suggestions for.
func (d *Debouncer) Fire(gen int) (string, bool) {
	if d.stopped || gen != d.gen {
		return "", false
	}
	if !Eligible(d.pending) {
		return "", false
	}
	return d.pending, true
}

// Stop cancels any pending fire, for view teardown.
func (d *Debouncer) Stop() {
	d.stopped = true
}

// Eligible reports whether a query is long enough to fetch suggestions.
func Eligible(query string) bool {
	return len([]rune(strings.TrimSpace(query))) >= MinQueryLength
}
