package domain

// Window is the contiguous half-open index range [Start, End) that must be
// materialized in the rendering surface.
type Window struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the window
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether the index falls inside the window
func (w Window) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

// ComputeWindow returns the minimal index range (plus overscan rows on each
// side) that covers the viewport at the given scroll offset. The size of the
// range depends only on viewportHeight, rowHeight, and overscan, never on
// total, so the rendering surface stays bounded as the collection grows.
func ComputeWindow(scrollOffset, viewportHeight, rowHeight, overscan, total int) Window {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if total < 0 {
		total = 0
	}

	first := scrollOffset / rowHeight
	visible := (viewportHeight + rowHeight - 1) / rowHeight

	start := first - overscan
	if start < 0 {
		start = 0
	}
	end := first + visible + overscan
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return Window{Start: start, End: end}
}

// Extent returns the total scrollable extent for the collection. Growing the
// extent when new records arrive must not reset the caller's scroll offset;
// ClampOffset exists for the opposite case, when the collection shrinks.
func Extent(total, rowHeight int) int {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	if total < 0 {
		total = 0
	}
	return total * rowHeight
}

// ClampOffset keeps a scroll offset within the valid range for the current
// extent and viewport.
func ClampOffset(offset, total, rowHeight, viewportHeight int) int {
	max := Extent(total, rowHeight) - viewportHeight
	if max < 0 {
		max = 0
	}
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
