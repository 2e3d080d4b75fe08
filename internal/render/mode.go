// Package render decides how a transcript view sources and displays its
// items. Two independent axes live here: the mode selector governs what is
// fetched (full vs paged), the window function governs what is rendered
// from what is already fetched.
package render

import "fmt"

// Mode is the active display strategy for a transcript view.
type Mode int

const (
	// ModeFull renders every item unbounded. The default.
	ModeFull Mode = iota
	// ModePaginated delegates to the pagination controller's fixed pages.
	ModePaginated
	// ModeVirtualized window-renders an already-in-memory item array.
	// Opt-in only, never auto-selected.
	ModeVirtualized
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModePaginated:
		return "paginated"
	case ModeVirtualized:
		return "virtualized"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// DefaultPaginateThreshold is the item count past which a view
// auto-switches from full to paginated display.
const DefaultPaginateThreshold = 100

// Selector picks the mode for one transcript view. Crossing the threshold
// switches to paginated automatically, but a visible manual override lets
// the user switch back: the selector never silently reduces functionality
// without a control.
type Selector struct {
	threshold   int
	override    Mode
	hasOverride bool
}

// NewSelector creates a selector. threshold <= 0 uses
// DefaultPaginateThreshold.
func NewSelector(threshold int) *Selector {
	if threshold <= 0 {
		threshold = DefaultPaginateThreshold
	}
	return &Selector{threshold: threshold}
}

// Resolve returns the active mode for a transcript with totalCount items.
func (s *Selector) Resolve(totalCount int) Mode {
	if s.hasOverride {
		return s.override
	}
	if totalCount > s.threshold {
		return ModePaginated
	}
	return ModeFull
}

// OverrideVisible reports whether the manual mode toggle must be shown.
// It appears exactly when the automatic threshold is crossed.
func (s *Selector) OverrideVisible(totalCount int) bool {
	return totalCount > s.threshold
}

// SetOverride pins the mode to an explicit user choice.
func (s *Selector) SetOverride(m Mode) {
	s.override = m
	s.hasOverride = true
}

// ClearOverride returns the selector to automatic behavior.
func (s *Selector) ClearOverride() {
	s.hasOverride = false
}

// Overridden reports whether a manual override is active.
func (s *Selector) Overridden() bool {
	return s.hasOverride
}

// Threshold returns the automatic switch point.
func (s *Selector) Threshold() int {
	return s.threshold
}
