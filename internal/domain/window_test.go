package domain

import (
	"testing"

	"pgregory.net/rapid"
)

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		viewport  int
		rowHeight int
		overscan  int
		total     int
		want      Window
	}{
		{
			name:     "top of list",
			offset:   0,
			viewport: 600, rowHeight: 72, overscan: 5, total: 500,
			want: Window{Start: 0, End: 14}, // ceil(600/72)=9 + 5 overscan
		},
		{
			name:   "mid scroll",
			offset: 720, // exactly 10 rows down
			viewport: 600, rowHeight: 72, overscan: 5, total: 500,
			want: Window{Start: 5, End: 24},
		},
		{
			name:   "end of list clamps",
			offset: 500*72 - 600,
			viewport: 600, rowHeight: 72, overscan: 5, total: 500,
			want: Window{Start: 486, End: 500},
		},
		{
			name:     "fewer rows than viewport",
			offset:   0,
			viewport: 600, rowHeight: 72, overscan: 5, total: 3,
			want: Window{Start: 0, End: 3},
		},
		{
			name:     "empty collection",
			offset:   144,
			viewport: 600, rowHeight: 72, overscan: 5, total: 0,
			want: Window{Start: 0, End: 0},
		},
		{
			name:     "terminal rows of height one",
			offset:   10,
			viewport: 20, rowHeight: 1, overscan: 2, total: 100,
			want: Window{Start: 8, End: 32},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWindow(tt.offset, tt.viewport, tt.rowHeight, tt.overscan, tt.total)
			if got != tt.want {
				t.Errorf("ComputeWindow() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// The number of materialized rows is bounded by the viewport geometry alone:
// ceil(viewport/rowHeight) + 2*overscan + 1 partial row, regardless of total.
func TestComputeWindowBoundedByViewport(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rowHeight := rapid.IntRange(1, 200).Draw(t, "row_height")
		viewport := rapid.IntRange(0, 4000).Draw(t, "viewport")
		overscan := rapid.IntRange(0, 20).Draw(t, "overscan")
		total := rapid.IntRange(0, 1_000_000).Draw(t, "total")
		offset := rapid.IntRange(0, 100_000_000).Draw(t, "offset")

		w := ComputeWindow(offset, viewport, rowHeight, overscan, total)

		if w.Start < 0 || w.End < w.Start || w.End > total {
			t.Fatalf("invalid window %+v for total %d", w, total)
		}

		bound := (viewport+rowHeight-1)/rowHeight + 2*overscan + 1
		if w.Len() > bound {
			t.Fatalf("window spans %d rows, bound is %d (viewport=%d rowHeight=%d overscan=%d)",
				w.Len(), bound, viewport, rowHeight, overscan)
		}
	})
}

// 500 rows of 72px in a 600px viewport with overscan 5 must never
// materialize more than 19 rows, at any scroll position.
func TestComputeWindowDeviceBrowserBound(t *testing.T) {
	for offset := 0; offset <= 500*72; offset += 7 {
		w := ComputeWindow(offset, 600, 72, 5, 500)
		if w.Len() > 19 {
			t.Fatalf("offset %d: window spans %d rows, want <= 19", offset, w.Len())
		}
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: 5, End: 24}
	for i, want := range map[int]bool{4: false, 5: true, 23: true, 24: false} {
		if got := w.Contains(i); got != want {
			t.Errorf("Contains(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestExtentAndClampOffset(t *testing.T) {
	if got := Extent(500, 72); got != 36000 {
		t.Errorf("Extent(500, 72) = %d, want 36000", got)
	}
	if got := Extent(-1, 72); got != 0 {
		t.Errorf("Extent(-1, 72) = %d, want 0", got)
	}

	// Growth must not move a valid offset.
	offset := 720
	if got := ClampOffset(offset, 600, 72, 600); got != offset {
		t.Errorf("ClampOffset moved a valid offset: got %d, want %d", got, offset)
	}

	// Shrink clamps to the new maximum.
	if got := ClampOffset(36000, 10, 72, 600); got != 120 {
		t.Errorf("ClampOffset(36000, 10, 72, 600) = %d, want 120", got)
	}
	if got := ClampOffset(500, 2, 72, 600); got != 0 {
		t.Errorf("ClampOffset(500, 2, 72, 600) = %d, want 0", got)
	}
}
