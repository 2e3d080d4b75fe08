// Package paging drives paged fetching of transcript chunks. The Controller
// is pure navigation state with no transport or Bubble Tea dependencies:
// navigation operations return a *Request describing the single fetch to
// perform (or nil for "do not fetch"), and the caller feeds back either
// Apply or Fail with the request's sequence number.
package paging

import (
	"github.com/pranavsinghpatil/meshmemory/internal/api"
	"github.com/pranavsinghpatil/meshmemory/internal/core/transcript"
)

// AllowedLimits are the only accepted page sizes.
var AllowedLimits = []int{25, 50, 100}

// DefaultLimit is used when a caller supplies a limit outside AllowedLimits.
const DefaultLimit = 50

// LoadErrorMessage is the generic user-facing failure text. The previous
// page stays on screen; the user retries manually.
const LoadErrorMessage = "failed to load transcript"

// Request describes exactly one fetch the caller should perform.
type Request struct {
	Ref   api.ChunkRef
	Page  int
	Limit int
	Seq   uint64
}

// Result is a resolved fetch, tagged with the sequence number of the
// request that produced it.
type Result struct {
	Seq  uint64
	Page api.ChunksPage
}

// Controller holds the pagination state for one transcript view.
type Controller struct {
	ref   api.ChunkRef
	limit int

	chunks []transcript.Chunk
	pag    transcript.PaginationInfo
	loaded bool

	seq     uint64 // latest issued request
	loading bool
	errMsg  string
	lastReq Request
}

// NewController creates a controller for the referenced transcript. A limit
// outside AllowedLimits falls back to DefaultLimit.
func NewController(ref api.ChunkRef, limit int) *Controller {
	if !limitAllowed(limit) {
		limit = DefaultLimit
	}
	return &Controller{ref: ref, limit: limit}
}

// Ref returns the transcript reference this controller pages through.
func (c *Controller) Ref() api.ChunkRef { return c.ref }

// Chunks returns the currently displayed page of chunks.
func (c *Controller) Chunks() []transcript.Chunk { return c.chunks }

// Pagination returns the pagination info of the currently displayed page.
func (c *Controller) Pagination() transcript.PaginationInfo { return c.pag }

// Page returns the currently displayed page number, 0 before the first
// page has been applied.
func (c *Controller) Page() int { return c.pag.Page }

// Limit returns the active page size.
func (c *Controller) Limit() int { return c.limit }

// Loaded reports whether any page has been applied yet.
func (c *Controller) Loaded() bool { return c.loaded }

// Loading reports whether the latest issued request is still outstanding.
func (c *Controller) Loading() bool { return c.loading }

// Err returns the user-facing failure message, empty when the last fetch
// succeeded.
func (c *Controller) Err() string { return c.errMsg }

// Load issues the initial fetch of page 1. Also used to refresh after the
// underlying transcript changed.
func (c *Controller) Load() *Request {
	return c.issue(1)
}

// JumpTo navigates to page p. Returns nil (zero network calls) when p is
// outside [1, totalPages] or equals the currently displayed page.
func (c *Controller) JumpTo(p int) *Request {
	if !c.loaded {
		return nil
	}
	if p < 1 || p > c.pag.TotalPages {
		return nil
	}
	if p == c.pag.Page {
		return nil
	}
	return c.issue(p)
}

// First navigates to the first page.
func (c *Controller) First() *Request { return c.JumpTo(1) }

// Prev navigates to the previous page.
func (c *Controller) Prev() *Request { return c.JumpTo(c.pag.Page - 1) }

// Next navigates to the next page.
func (c *Controller) Next() *Request { return c.JumpTo(c.pag.Page + 1) }

// Last navigates to the last page.
func (c *Controller) Last() *Request { return c.JumpTo(c.pag.TotalPages) }

// SetLimit changes the page size. A page number is only meaningful relative
// to the limit that produced it, so any limit change resets to page 1 and
// issues exactly one fresh fetch. Unknown limits and no-op changes return
// nil.
func (c *Controller) SetLimit(limit int) *Request {
	if !limitAllowed(limit) || limit == c.limit {
		return nil
	}
	c.limit = limit
	return c.issue(1)
}

// Apply installs a resolved fetch. Results whose sequence number is not the
// latest issued are stale and discarded; Apply reports whether the result
// was installed.
func (c *Controller) Apply(res Result) bool {
	if res.Seq != c.seq {
		return false
	}
	c.chunks = res.Page.Chunks
	c.pag = res.Page.Pagination
	c.loaded = true
	c.loading = false
	c.errMsg = ""
	return true
}

// Fail records a fetch failure. The previously displayed chunks and
// pagination info stay untouched; Retry re-issues the identical request.
// Failures of superseded requests are ignored.
func (c *Controller) Fail(seq uint64) {
	if seq != c.seq {
		return
	}
	c.loading = false
	c.errMsg = LoadErrorMessage
}

// Retry re-issues the exact request that last failed, with a fresh
// sequence number. Returns nil when there is nothing to retry.
func (c *Controller) Retry() *Request {
	if c.errMsg == "" {
		return nil
	}
	return c.issue(c.lastReq.Page)
}

func (c *Controller) issue(page int) *Request {
	c.seq++
	c.loading = true
	c.lastReq = Request{Ref: c.ref, Page: page, Limit: c.limit, Seq: c.seq}
	req := c.lastReq
	return &req
}

func limitAllowed(limit int) bool {
	for _, l := range AllowedLimits {
		if limit == l {
			return true
		}
	}
	return false
}
