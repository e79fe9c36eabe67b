package view

import (
	"fmt"

	"github.com/lawwatch/lawwatch/internal/classify"
)

// DefaultChunkSize is how many results each pagination step reveals.
const DefaultChunkSize = 21

// Session owns the mutable filter state and the incremental pagination
// window over one classified document set. It is single-threaded by design:
// each input event runs to completion before the next.
type Session struct {
	docs         []classify.Document
	filters      Filters
	filtered     []classify.Document
	chunkSize    int
	visibleCount int
}

// NewSession builds a session with default filters over docs.
func NewSession(docs []classify.Document, chunkSize int) *Session {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	s := &Session{
		docs:      docs,
		filters:   DefaultFilters(),
		chunkSize: chunkSize,
	}
	s.refresh(false)
	return s
}

// Filters returns a copy of the current filter state.
func (s *Session) Filters() Filters {
	return s.filters.Clone()
}

// FilteredCount is the size of the current result set.
func (s *Session) FilteredCount() int {
	return len(s.filtered)
}

// Visible returns the currently revealed slice of the result set.
func (s *Session) Visible() []classify.Document {
	return s.filtered[:s.visibleCount]
}

// HasMore reports whether undisclosed results remain, i.e. whether the
// load-more sentinel should stay visible.
func (s *Session) HasMore() bool {
	return s.visibleCount < len(s.filtered)
}

// LoadMore reveals one more chunk. Once everything is visible it is a no-op.
func (s *Session) LoadMore() {
	if !s.HasMore() {
		return
	}
	s.visibleCount = min(len(s.filtered), s.visibleCount+s.chunkSize)
}

// SetSearch updates the free-text query and resets pagination.
func (s *Session) SetSearch(query string) {
	s.filters.Search = query
	s.refresh(false)
}

// SetSort changes only the ordering: the revealed count is preserved,
// clamped to the result length and never below one chunk.
func (s *Session) SetSort(mode Sort) error {
	if !ValidSort(mode) {
		return fmt.Errorf("unknown sort mode %q", mode)
	}
	s.filters.Sort = mode
	s.refresh(true)
	return nil
}

// SetStatus checks or unchecks one status filter. Unchecking the last
// checked status is rejected so the result set can never be filtered down
// by an empty status set; the caller keeps the box checked.
func (s *Session) SetStatus(category classify.Category, checked bool) error {
	if !classify.ValidCategory(category) {
		return fmt.Errorf("unknown status %q", category)
	}
	if !checked && s.checkedStatuses() == 1 && s.filters.Statuses[category] {
		return fmt.Errorf("at least one status must stay selected")
	}
	s.filters.Statuses[category] = checked
	s.refresh(false)
	return nil
}

// SetRegion updates the region predicate and resets pagination.
func (s *Session) SetRegion(region string) error {
	if region != RegionAll && !classify.ValidRegion(classify.Region(region)) {
		return fmt.Errorf("unknown region %q", region)
	}
	s.filters.Region = region
	s.refresh(false)
	return nil
}

// SetTimeRange updates the issued-within bucket and resets pagination.
func (s *Session) SetTimeRange(r TimeRange) error {
	if !ValidTimeRange(r) {
		return fmt.Errorf("unknown time range %q", r)
	}
	s.filters.TimeRange = r
	s.refresh(false)
	return nil
}

// SetSimpleView toggles the compact display mode. Display-only: the result
// set and pagination are untouched.
func (s *Session) SetSimpleView(enabled bool) {
	s.filters.SimpleView = enabled
}

// Reset restores every filter to its default. When nothing differs from the
// defaults it reports false and leaves the session untouched.
func (s *Session) Reset() bool {
	if s.filters.IsDefault() {
		return false
	}
	s.filters = DefaultFilters()
	s.refresh(false)
	return true
}

func (s *Session) checkedStatuses() int {
	n := 0
	for _, checked := range s.filters.Statuses {
		if checked {
			n++
		}
	}
	return n
}

func (s *Session) refresh(preservePagination bool) {
	s.filtered = Apply(s.docs, s.filters)
	if !preservePagination {
		s.visibleCount = min(len(s.filtered), s.chunkSize)
		return
	}
	s.visibleCount = min(len(s.filtered), max(s.visibleCount, s.chunkSize))
}
