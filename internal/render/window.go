package render

// DefaultOverscan is the number of extra items rendered on each side of
// the visible range to mask scroll latency.
const DefaultOverscan = 3

// Range is a half-open index interval [Start, End) into an item array.
type Range struct {
	Start int
	End   int
}

// Len returns the number of items in the range.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range contains no items.
func (r Range) Empty() bool { return r.Len() <= 0 }

// Contains reports whether index i falls inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// Window computes the contiguous index range of an n-item list that
// intersects a viewport of height viewportHeight scrolled to scrollOffset,
// plus overscan extra items on each side. Heights are in the same unit as
// the offset (rows).
//
// Every item is assumed to occupy exactly itemHeight; content whose
// rendered height varies will misalign the computed range. That is a
// constraint of this design, not a defect: variable-height support needs a
// measured-height cache, which this renderer does not carry.
//
// The returned range length is bounded by ceil(viewportHeight/itemHeight)
// + 2*overscan for any n, and items appended past End while the caller is
// scrolled near the end leave the range's Start untouched.
func Window(n, scrollOffset, itemHeight, viewportHeight, overscan int) Range {
	if n <= 0 {
		return Range{}
	}
	if itemHeight < 1 {
		itemHeight = 1
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	first := scrollOffset / itemHeight
	visible := (viewportHeight + itemHeight - 1) / itemHeight

	start := first - overscan
	if start < 0 {
		start = 0
	}
	end := first + visible + overscan
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}

	return Range{Start: start, End: end}
}
