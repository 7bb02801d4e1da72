package domain

import "strings"

// Compose filters records by a free-text search term and an optional
// category, preserving the relative order of the input. The term matches
// case-insensitively as a substring of the package ID or display name;
// CategoryUnknown means no category filter. The input is expected to be
// ID-sorted already, so filtering never needs a re-sort.
func Compose(records []Package, term string, filter Category) []Package {
	if term == "" && filter == CategoryUnknown {
		return records
	}

	needle := strings.ToLower(term)
	out := make([]Package, 0, len(records))
	for _, p := range records {
		if filter != CategoryUnknown && p.Category != filter {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.ID), needle) &&
			!strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Composer memoizes Compose on the triple (records slice identity, term,
// filter) so a render pass that changes none of the three reuses the prior
// result slice. Stable result identity is what lets the virtualization
// window treat the composed view as unchanged between frames.
type Composer struct {
	records []Package
	term    string
	filter  Category
	result  []Package
	valid   bool
}

// Compose returns the filtered view, recomputing only when an input changed.
func (c *Composer) Compose(records []Package, term string, filter Category) []Package {
	if c.valid && c.term == term && c.filter == filter && sameSlice(c.records, records) {
		return c.result
	}
	c.records = records
	c.term = term
	c.filter = filter
	c.result = Compose(records, term, filter)
	c.valid = true
	return c.result
}

// Invalidate discards the memoized result
func (c *Composer) Invalidate() {
	c.valid = false
}

// sameSlice reports whether two slices share length and backing array start.
func sameSlice(a, b []Package) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
