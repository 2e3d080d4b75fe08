package render

import "github.com/pranavsinghpatil/meshmemory/pkg/kv"

// Tracker records, per chunk id, whether its nested micro-thread list is
// shown. Session-scoped: never persisted, so every process start is all
// collapsed. It sits above the render-mode axis, so expansion survives a
// page navigation or re-windowing within the same session.
type Tracker struct {
	expanded *kv.Store[string, bool]
}

// NewTracker creates an all-collapsed tracker.
func NewTracker() *Tracker {
	return &Tracker{expanded: kv.New[string, bool]()}
}

// Toggle flips exactly the targeted id and returns its new state. All
// other ids are unaffected.
func (t *Tracker) Toggle(id string) bool {
	next := !t.expanded.GetOr(id, false)
	t.expanded.Set(id, next)
	return next
}

// Expanded reports whether the chunk's micro-thread list is shown.
// Unknown ids default to collapsed.
func (t *Tracker) Expanded(id string) bool {
	return t.expanded.GetOr(id, false)
}

// CollapseAll resets every chunk to collapsed.
func (t *Tracker) CollapseAll() {
	t.expanded.Clear()
}

// ExpandedCount returns how many chunks are currently expanded.
func (t *Tracker) ExpandedCount() int {
	count := 0
	for _, id := range t.expanded.Keys() {
		if t.Expanded(id) {
			count++
		}
	}
	return count
}
