package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		totalCount int
		want       PaginationInfo
	}{
		{
			name: "first of three pages",
			page: 1, limit: 50, totalCount: 120,
			want: PaginationInfo{Page: 1, Limit: 50, TotalCount: 120, TotalPages: 3, HasNext: true, HasPrev: false},
		},
		{
			name: "middle page",
			page: 2, limit: 50, totalCount: 120,
			want: PaginationInfo{Page: 2, Limit: 50, TotalCount: 120, TotalPages: 3, HasNext: true, HasPrev: true},
		},
		{
			name: "last page",
			page: 3, limit: 50, totalCount: 120,
			want: PaginationInfo{Page: 3, Limit: 50, TotalCount: 120, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "exact multiple of limit",
			page: 4, limit: 25, totalCount: 100,
			want: PaginationInfo{Page: 4, Limit: 25, TotalCount: 100, TotalPages: 4, HasNext: false, HasPrev: true},
		},
		{
			name: "empty result set keeps page 1",
			page: 1, limit: 25, totalCount: 0,
			want: PaginationInfo{Page: 1, Limit: 25, TotalCount: 0, TotalPages: 0, HasNext: false, HasPrev: false},
		},
		{
			name: "page clamped to last",
			page: 9, limit: 50, totalCount: 120,
			want: PaginationInfo{Page: 3, Limit: 50, TotalCount: 120, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "page clamped to first",
			page: 0, limit: 50, totalCount: 120,
			want: PaginationInfo{Page: 1, Limit: 50, TotalCount: 120, TotalPages: 3, HasNext: true, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPaginationInfo(tt.page, tt.limit, tt.totalCount)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestPaginationInfo_Validate(t *testing.T) {
	t.Run("accepts consistent payload", func(t *testing.T) {
		p := PaginationInfo{Page: 2, Limit: 25, TotalCount: 60, TotalPages: 3, HasNext: true, HasPrev: true}
		require.NoError(t, p.Validate())
	})

	t.Run("rejects wrong totalPages", func(t *testing.T) {
		p := PaginationInfo{Page: 1, Limit: 25, TotalCount: 60, TotalPages: 2, HasNext: true}
		assert.Error(t, p.Validate())
	})

	t.Run("rejects inconsistent hasNext", func(t *testing.T) {
		p := PaginationInfo{Page: 3, Limit: 25, TotalCount: 60, TotalPages: 3, HasNext: true, HasPrev: true}
		assert.Error(t, p.Validate())
	})

	t.Run("rejects inconsistent hasPrev", func(t *testing.T) {
		p := PaginationInfo{Page: 2, Limit: 25, TotalCount: 60, TotalPages: 3, HasNext: true, HasPrev: false}
		assert.Error(t, p.Validate())
	})

	t.Run("rejects out of range page", func(t *testing.T) {
		p := PaginationInfo{Page: 4, Limit: 25, TotalCount: 60, TotalPages: 3, HasPrev: true}
		assert.Error(t, p.Validate())
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		p := PaginationInfo{Page: 1, Limit: 0}
		assert.Error(t, p.Validate())
	})
}
