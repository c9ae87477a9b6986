package store

import (
	"slices"
	"strings"
	"time"
)

// Pagination bounds. Requests outside these are clamped, never rejected.
const (
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100
)

// PageParams selects a window of a list result.
type PageParams struct {
	Limit  int
	Offset int
}

// Clamp normalizes the parameters into their legal ranges.
// A zero Limit becomes the default; out-of-range values are pulled to
// the nearest bound rather than rejected.
func (p *PageParams) Clamp() {
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < MinLimit {
		p.Limit = MinLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Page is a window of a filtered list along with its paging metadata.
// Total counts everything that matched the filters, not just this window.
type Page[T any] struct {
	Items   []*T `json:"items"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// Timestamped is satisfied by any domain type embedding Record.
type Timestamped interface {
	Created() (time.Time, string)
}

// sortByCreated orders items oldest-first, breaking timestamp ties by ID
// so the order is stable across requests.
func sortByCreated[T Timestamped](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		at, aid := a.Created()
		bt, bid := b.Created()
		if c := at.Compare(bt); c != 0 {
			return c
		}
		return strings.Compare(aid, bid)
	})
}

// sortByCreatedDesc orders items newest-first.
func sortByCreatedDesc[T Timestamped](items []T) {
	sortByCreated(items)
	slices.Reverse(items)
}

// paginate slices the already-filtered, already-sorted items into a Page.
// The params must be clamped by the caller.
func paginate[T any](items []*T, p PageParams) *Page[T] {
	total := len(items)

	start := p.Offset
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}

	window := make([]*T, end-start)
	copy(window, items[start:end])

	return &Page[T]{
		Items:   window,
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: end < total,
	}
}

// matchSubstring reports whether haystack contains needle, ignoring case.
// An empty needle matches everything.
func matchSubstring(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
