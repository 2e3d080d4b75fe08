package tui

import (
	"github.com/pranavsinghpatil/meshmemory/internal/api"
	"github.com/pranavsinghpatil/meshmemory/internal/core/transcript"
	"github.com/pranavsinghpatil/meshmemory/internal/paging"
	"github.com/pranavsinghpatil/meshmemory/internal/render"
)

// Controller manages the transcript view's data and navigation. It is pure
// data logic with no Bubble Tea dependencies: the model feeds it resolved
// fetches and key intents, the view reads it.
type Controller struct {
	pager      *paging.Controller
	selector   *render.Selector
	expansion  *render.Tracker
	itemHeight int
	overscan   int

	// all is the in-memory chunk array used by the full and virtualized
	// modes. Paginated mode never touches it.
	all       []transcript.Chunk
	allLoaded bool

	cursor       int
	scrollOffset int
}

// NewController creates a controller for one transcript view.
func NewController(ref api.ChunkRef, limit, paginateThreshold, itemHeight, overscan int) *Controller {
	if itemHeight < 1 {
		itemHeight = 1
	}
	if overscan < 0 {
		overscan = render.DefaultOverscan
	}
	return &Controller{
		pager:      paging.NewController(ref, limit),
		selector:   render.NewSelector(paginateThreshold),
		expansion:  render.NewTracker(),
		itemHeight: itemHeight,
		overscan:   overscan,
	}
}

// Pager exposes the pagination controller for issuing navigation requests.
func (c *Controller) Pager() *paging.Controller { return c.pager }

// Expansion exposes the per-chunk expansion tracker.
func (c *Controller) Expansion() *render.Tracker { return c.expansion }

// ItemHeight returns the uniform per-item height assumed by windowing.
func (c *Controller) ItemHeight() int { return c.itemHeight }

// TotalCount returns the transcript's total item count as last reported by
// the server, falling back to the in-memory array before the first page
// resolves.
func (c *Controller) TotalCount() int {
	if c.pager.Loaded() {
		return c.pager.Pagination().TotalCount
	}
	return len(c.all)
}

// Mode returns the active render mode for the current total count.
func (c *Controller) Mode() render.Mode {
	return c.selector.Resolve(c.TotalCount())
}

// OverrideVisible reports whether the manual display-mode control is shown.
func (c *Controller) OverrideVisible() bool {
	return c.selector.OverrideVisible(c.TotalCount())
}

// Overridden reports whether a manual display-mode override is active.
func (c *Controller) Overridden() bool {
	return c.selector.Overridden()
}

// CycleMode advances the manual display-mode override:
// automatic -> full -> paginated -> virtualized -> automatic.
func (c *Controller) CycleMode() {
	if !c.selector.Overridden() {
		c.selector.SetOverride(render.ModeFull)
		return
	}
	switch c.selector.Resolve(c.TotalCount()) {
	case render.ModeFull:
		c.selector.SetOverride(render.ModePaginated)
	case render.ModePaginated:
		c.selector.SetOverride(render.ModeVirtualized)
	default:
		c.selector.ClearOverride()
	}
}

// NeedsAll reports whether the current mode wants the full in-memory array
// and it has not been fetched yet.
func (c *Controller) NeedsAll() bool {
	mode := c.Mode()
	return (mode == render.ModeFull || mode == render.ModeVirtualized) && !c.allLoaded
}

// SetAll installs the full in-memory chunk array.
func (c *Controller) SetAll(chunks []transcript.Chunk) {
	c.all = chunks
	c.allLoaded = true
	c.clampCursor()
}

// AppendAll grows the in-memory array in place, e.g. when the transcript
// gained chunks while displayed.
func (c *Controller) AppendAll(chunks []transcript.Chunk) {
	c.all = append(c.all, chunks...)
}

// ApplyPage feeds a resolved page fetch through to the pagination
// controller, resetting the cursor when the page was installed.
func (c *Controller) ApplyPage(res paging.Result) bool {
	if !c.pager.Apply(res) {
		return false
	}
	c.cursor = 0
	c.scrollOffset = 0
	return true
}

// FailPage records a page-fetch failure.
func (c *Controller) FailPage(seq uint64) {
	c.pager.Fail(seq)
}

// items returns the collection the active mode displays. Full and
// virtualized read the in-memory array, paginated reads the current page.
// Before the full array has loaded, the current page doubles as a stand-in.
func (c *Controller) items() []transcript.Chunk {
	if c.Mode() == render.ModePaginated || !c.allLoaded {
		return c.pager.Chunks()
	}
	return c.all
}

// Visible returns the chunks to render for a viewport of the given height
// along with their index range within the active collection. Only the
// virtualized mode windows; full and paginated render their whole
// collection.
func (c *Controller) Visible(viewportHeight int) ([]transcript.Chunk, render.Range) {
	items := c.items()
	if c.Mode() != render.ModeVirtualized {
		return items, render.Range{Start: 0, End: len(items)}
	}

	r := render.Window(len(items), c.scrollOffset, c.itemHeight, viewportHeight, c.overscan)
	return items[r.Start:r.End], r
}

// Cursor returns the selected index within the active collection.
func (c *Controller) Cursor() int { return c.cursor }

// ScrollOffset returns the virtualized scroll position in rows.
func (c *Controller) ScrollOffset() int { return c.scrollOffset }

// MoveUp moves the selection up one chunk.
func (c *Controller) MoveUp(viewportHeight int) {
	if c.cursor > 0 {
		c.cursor--
		c.scrollToCursor(viewportHeight)
	}
}

// MoveDown moves the selection down one chunk.
func (c *Controller) MoveDown(viewportHeight int) {
	if c.cursor < len(c.items())-1 {
		c.cursor++
		c.scrollToCursor(viewportHeight)
	}
}

// Selected returns the chunk under the cursor, nil when the view is empty.
func (c *Controller) Selected() *transcript.Chunk {
	items := c.items()
	if len(items) == 0 || c.cursor >= len(items) {
		return nil
	}
	return &items[c.cursor]
}

// ToggleSelected flips the expansion of the chunk under the cursor and
// returns its id and new state. The empty id means nothing was selected.
func (c *Controller) ToggleSelected() (string, bool) {
	sel := c.Selected()
	if sel == nil {
		return "", false
	}
	return sel.ID, c.expansion.Toggle(sel.ID)
}

func (c *Controller) scrollToCursor(viewportHeight int) {
	if c.Mode() != render.ModeVirtualized || viewportHeight <= 0 {
		return
	}

	top := c.cursor * c.itemHeight
	bottom := top + c.itemHeight
	if top < c.scrollOffset {
		c.scrollOffset = top
	} else if bottom > c.scrollOffset+viewportHeight {
		c.scrollOffset = bottom - viewportHeight
	}
	if c.scrollOffset < 0 {
		c.scrollOffset = 0
	}
}

func (c *Controller) clampCursor() {
	if n := len(c.items()); c.cursor >= n {
		c.cursor = maxInt(n-1, 0)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
