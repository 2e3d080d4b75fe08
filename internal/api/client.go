// Package api is the HTTP client for the MeshMemory REST backend. It only
// consumes endpoints; the backend defines them.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/pranavsinghpatil/meshmemory/internal/core/logging"
	"github.com/pranavsinghpatil/meshmemory/internal/core/transcript"
)

// DefaultTimeout bounds every request when the config does not override it.
const DefaultTimeout = 10 * time.Second

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s returned status %d", e.URL, e.StatusCode)
}

// ChunkRef identifies the transcript to page through: either an imported
// source or a thread. The two are mutually exclusive; when both are set the
// source id takes priority.
type ChunkRef struct {
	SourceID string
	ThreadID string
}

// IsZero reports whether the ref identifies nothing.
func (r ChunkRef) IsZero() bool {
	return r.SourceID == "" && r.ThreadID == ""
}

// withContext attaches the ref's ids so the logging context hook can stamp
// them onto every event emitted during the fetch.
func (r ChunkRef) withContext(ctx context.Context) context.Context {
	if r.SourceID != "" {
		return logging.WithSourceID(ctx, r.SourceID)
	}
	if r.ThreadID != "" {
		return logging.WithThreadID(ctx, r.ThreadID)
	}
	return ctx
}

func (r ChunkRef) path() (string, error) {
	switch {
	case r.SourceID != "":
		return "/sources/" + url.PathEscape(r.SourceID) + "/chunks", nil
	case r.ThreadID != "":
		return "/threads/" + url.PathEscape(r.ThreadID) + "/chunks", nil
	default:
		return "", errors.New("api: chunk ref has neither source nor thread id")
	}
}

// ChunksPage is the paged-chunks response body.
type ChunksPage struct {
	Chunks     []transcript.Chunk        `json:"chunks"`
	Pagination transcript.PaginationInfo `json:"pagination"`
}

// Client talks to one MeshMemory backend.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger
}

// NewClient creates a client for the given base URL. timeout <= 0 uses
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api: base url %q must be absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
		log:  logging.Component("api"),
	}, nil
}

// FetchChunks requests one page of chunks for the referenced transcript.
func (c *Client) FetchChunks(ctx context.Context, ref ChunkRef, page, limit int) (ChunksPage, error) {
	path, err := ref.path()
	if err != nil {
		return ChunksPage{}, err
	}
	ctx = ref.withContext(ctx)

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var out ChunksPage
	if err := c.getJSON(ctx, path, query, &out); err != nil {
		return ChunksPage{}, err
	}

	if err := out.Pagination.Validate(); err != nil {
		// Surface inconsistent server payloads in the log but hand the
		// page through untouched.
		c.log.Warn().Ctx(ctx).Err(err).Str("path", path).Msg("inconsistent pagination payload")
	}
	return out, nil
}

// FetchAllChunks walks every page for the referenced transcript and returns
// the full in-memory array, for use by the full and virtualized render
// modes. limit is the page size used while walking.
func (c *Client) FetchAllChunks(ctx context.Context, ref ChunkRef, limit int) ([]transcript.Chunk, error) {
	var all []transcript.Chunk
	page := 1
	for {
		res, err := c.FetchChunks(ctx, ref, page, limit)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Chunks...)
		if !res.Pagination.HasNext {
			return all, nil
		}
		page = res.Pagination.Page + 1
	}
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// FetchSuggestions requests search suggestions for a query prefix. Callers
// gate on query length and debounce; the client just performs the request.
func (c *Client) FetchSuggestions(ctx context.Context, q string, limit int) ([]string, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("limit", strconv.Itoa(limit))

	var out suggestionsResponse
	if err := c.getJSON(ctx, "/search/suggest", query, &out); err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	u := *c.base
	u.Path, _ = url.JoinPath(c.base.Path, path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "meshmemory-client")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Debug().Err(err).Str("path", path).Msg("close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, URL: u.String()}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
