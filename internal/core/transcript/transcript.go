// Package transcript defines the shared data model for imported
// AI-conversation transcripts.
package transcript

import (
	"fmt"
	"time"
)

// Chunk is one turn within a conversation transcript. Chunks are immutable
// once imported except for append-only growth of MicroThreads.
type Chunk struct {
	ID           string        `json:"id"`
	Text         string        `json:"textContent"`
	Participant  string        `json:"participantLabel"`
	Timestamp    time.Time     `json:"timestampUtc"`
	Model        string        `json:"modelName"`
	MicroThreads []MicroThread `json:"microThreads,omitempty"`
}

// MicroThread is a follow-up question/answer nested under a chunk,
// ordered by creation time.
type MicroThread struct {
	ID                string    `json:"id"`
	UserPrompt        string    `json:"userPrompt"`
	AssistantResponse string    `json:"assistantResponse"`
	Model             string    `json:"modelUsed"`
	CreatedAt         time.Time `json:"createdAt"`
}

// PaginationInfo describes one server-determined page of chunks.
type PaginationInfo struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalCount int  `json:"totalCount"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPaginationInfo derives the dependent fields from page, limit and total
// count. Page is clamped to [1, max(totalPages, 1)].
func NewPaginationInfo(page, limit, totalCount int) PaginationInfo {
	if limit < 1 {
		limit = 1
	}
	totalPages := (totalCount + limit - 1) / limit

	if page < 1 {
		page = 1
	}
	if max := maxInt(totalPages, 1); page > max {
		page = max
	}

	return PaginationInfo{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Validate reports whether the pagination fields are mutually consistent.
// Server payloads are expected to satisfy this; callers log violations
// rather than failing.
func (p PaginationInfo) Validate() error {
	if p.Limit < 1 {
		return fmt.Errorf("pagination: limit %d is not positive", p.Limit)
	}
	if want := (p.TotalCount + p.Limit - 1) / p.Limit; p.TotalPages != want {
		return fmt.Errorf("pagination: totalPages %d, want %d for %d items at limit %d", p.TotalPages, want, p.TotalCount, p.Limit)
	}
	if p.Page < 1 || p.Page > maxInt(p.TotalPages, 1) {
		return fmt.Errorf("pagination: page %d outside [1, %d]", p.Page, maxInt(p.TotalPages, 1))
	}
	if p.HasNext != (p.Page < p.TotalPages) {
		return fmt.Errorf("pagination: hasNext %v inconsistent with page %d of %d", p.HasNext, p.Page, p.TotalPages)
	}
	if p.HasPrev != (p.Page > 1) {
		return fmt.Errorf("pagination: hasPrev %v inconsistent with page %d", p.HasPrev, p.Page)
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
