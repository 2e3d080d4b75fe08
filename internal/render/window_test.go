package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name           string
		n              int
		scrollOffset   int
		itemHeight     int
		viewportHeight int
		overscan       int
		want           Range
	}{
		{
			name: "top of a long list",
			n:    1000, scrollOffset: 0, itemHeight: 2, viewportHeight: 20, overscan: 3,
			want: Range{Start: 0, End: 13},
		},
		{
			name: "mid scroll includes overscan both sides",
			n:    1000, scrollOffset: 100, itemHeight: 2, viewportHeight: 20, overscan: 3,
			want: Range{Start: 47, End: 63},
		},
		{
			name: "end of list clamps",
			n:    60, scrollOffset: 100, itemHeight: 2, viewportHeight: 20, overscan: 3,
			want: Range{Start: 47, End: 60},
		},
		{
			name: "fewer items than viewport",
			n:    4, scrollOffset: 0, itemHeight: 2, viewportHeight: 20, overscan: 3,
			want: Range{Start: 0, End: 4},
		},
		{
			name: "empty list",
			n:    0, scrollOffset: 50, itemHeight: 2, viewportHeight: 20, overscan: 3,
			want: Range{},
		},
		{
			name: "scrolled far past the end",
			n:    10, scrollOffset: 900, itemHeight: 2, viewportHeight: 20, overscan: 3,
			want: Range{Start: 10, End: 10},
		},
		{
			name: "zero overscan",
			n:    100, scrollOffset: 10, itemHeight: 1, viewportHeight: 10, overscan: 0,
			want: Range{Start: 10, End: 20},
		},
		{
			name: "negative inputs are clamped",
			n:    100, scrollOffset: -5, itemHeight: 0, viewportHeight: 10, overscan: -1,
			want: Range{Start: 0, End: 10},
		},
		{
			name: "viewport not a multiple of item height rounds up",
			n:    100, scrollOffset: 0, itemHeight: 3, viewportHeight: 10, overscan: 0,
			want: Range{Start: 0, End: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(tt.n, tt.scrollOffset, tt.itemHeight, tt.viewportHeight, tt.overscan)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindow_BoundedFootprint(t *testing.T) {
	// The rendered item count is bounded by ceil(V/H) + 2*overscan no
	// matter how large the list is.
	const (
		itemHeight     = 2
		viewportHeight = 25
		overscan       = 3
	)
	bound := (viewportHeight+itemHeight-1)/itemHeight + 2*overscan

	for _, n := range []int{0, 1, 10, 1000, 1_000_000} {
		for _, offset := range []int{0, 7, 500, n * itemHeight / 2, n * itemHeight} {
			r := Window(n, offset, itemHeight, viewportHeight, overscan)
			assert.LessOrEqual(t, r.Len(), bound, "n=%d offset=%d", n, offset)
			assert.GreaterOrEqual(t, r.Start, 0)
			assert.LessOrEqual(t, r.End, n)
		}
	}
}

func TestWindow_AppendNearEndIsStable(t *testing.T) {
	// Growing n while the user sits near the end must not shift Start;
	// new items only extend End (no re-windowing glitch).
	const (
		itemHeight     = 2
		viewportHeight = 20
		overscan       = 3
	)

	n := 80
	offset := (n - 5) * itemHeight

	before := Window(n, offset, itemHeight, viewportHeight, overscan)
	after := Window(n+21, offset, itemHeight, viewportHeight, overscan)

	assert.Equal(t, before.Start, after.Start)
	assert.GreaterOrEqual(t, after.End, before.End)
}

func TestRange(t *testing.T) {
	r := Range{Start: 3, End: 7}

	assert.Equal(t, 4, r.Len())
	assert.False(t, r.Empty())
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(6))
	assert.False(t, r.Contains(7))

	assert.True(t, Range{}.Empty())
}
