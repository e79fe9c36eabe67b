// Package view implements the filter, sort, and incremental pagination
// engine over the classified document set.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lawwatch/lawwatch/internal/classify"
)

// Sort selects the view ordering.
type Sort string

// Sort modes.
const (
	SortDateDesc   Sort = "date-desc"
	SortDateAsc    Sort = "date-asc"
	SortSerialAsc  Sort = "serial-asc"
	SortSerialDesc Sort = "serial-desc"
)

// ValidSort reports whether s is a known sort mode.
func ValidSort(s Sort) bool {
	switch s {
	case SortDateDesc, SortDateAsc, SortSerialAsc, SortSerialDesc:
		return true
	}
	return false
}

// TimeRange buckets records by days since issue.
type TimeRange string

// Time range values.
const (
	RangeThreeMonths TimeRange = "3m"
	RangeOneYear     TimeRange = "1y"
	RangeOverOneYear TimeRange = "gt1y"
	RangeAll         TimeRange = "all"
)

// ValidTimeRange reports whether r is a known time range.
func ValidTimeRange(r TimeRange) bool {
	switch r {
	case RangeThreeMonths, RangeOneYear, RangeOverOneYear, RangeAll:
		return true
	}
	return false
}

// RegionAll disables the region predicate.
const RegionAll = "all"

// Filters is the complete filter and sort configuration. It is treated as
// immutable by Apply; mutation happens only through Session methods.
type Filters struct {
	Search     string
	Sort       Sort
	Statuses   map[classify.Category]bool
	Region     string
	TimeRange  TimeRange
	SimpleView bool
}

// DefaultFilters returns the reset state: every status selected, newest
// first, all regions, last three months.
func DefaultFilters() Filters {
	statuses := make(map[classify.Category]bool, len(classify.Categories))
	for _, c := range classify.Categories {
		statuses[c] = true
	}
	return Filters{
		Sort:      SortDateDesc,
		Statuses:  statuses,
		Region:    RegionAll,
		TimeRange: RangeThreeMonths,
	}
}

// Clone deep-copies the filters.
func (f Filters) Clone() Filters {
	cp := f
	cp.Statuses = make(map[classify.Category]bool, len(f.Statuses))
	for k, v := range f.Statuses {
		cp.Statuses[k] = v
	}
	return cp
}

// IsDefault reports whether every field matches DefaultFilters.
func (f Filters) IsDefault() bool {
	def := DefaultFilters()
	if f.Search != def.Search || f.Sort != def.Sort || f.Region != def.Region ||
		f.TimeRange != def.TimeRange || f.SimpleView != def.SimpleView {
		return false
	}
	for _, c := range classify.Categories {
		if !f.Statuses[c] {
			return false
		}
	}
	return true
}

// Apply filters and sorts the documents. All predicates are conjunctive and
// each is a no-op at its "don't filter" value. The input is never mutated.
func Apply(docs []classify.Document, f Filters) []classify.Document {
	results := make([]classify.Document, 0, len(docs))
	query := strings.ToLower(strings.TrimSpace(f.Search))

	for _, doc := range docs {
		if query != "" && !matchesSearch(doc, query) {
			continue
		}
		if len(f.Statuses) > 0 && !f.Statuses[doc.DeadlineCategory] {
			continue
		}
		if f.Region != "" && f.Region != RegionAll && string(doc.Region) != f.Region {
			continue
		}
		if !matchesTimeRange(doc, f.TimeRange) {
			continue
		}
		results = append(results, doc)
	}

	sortDocuments(results, f.Sort)
	return results
}

// matchesSearch ORs the case-insensitive substring query across every
// searchable field of the record.
func matchesSearch(doc classify.Document, query string) bool {
	fields := []string{
		doc.Subject,
		doc.SubjectURL,
		doc.Category,
		doc.Issuer,
		doc.DocumentNumber,
		doc.ArticleNumber,
		doc.Serial,
		doc.Content,
		doc.Date,
		doc.Deadline,
	}
	for _, link := range doc.Attachments {
		fields = append(fields, link.Label, link.URL)
	}
	for _, link := range doc.RelatedLinks {
		fields = append(fields, link.Label, link.URL)
	}
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// matchesTimeRange buckets on days since issue; records without a usable
// issue date fail any active bucket.
func matchesTimeRange(doc classify.Document, r TimeRange) bool {
	if r == "" || r == RangeAll {
		return true
	}
	if doc.DaysSinceIssued == nil {
		return false
	}
	days := *doc.DaysSinceIssued
	switch r {
	case RangeThreeMonths:
		return days <= 90
	case RangeOneYear:
		return days <= 365
	case RangeOverOneYear:
		return days > 365
	default:
		return true
	}
}

func sortDocuments(docs []classify.Document, mode Sort) {
	switch mode {
	case SortDateAsc:
		sort.SliceStable(docs, func(i, j int) bool {
			return compareIssued(docs[i], docs[j], true)
		})
	case SortSerialAsc, SortSerialDesc:
		// The collator keeps internal buffers, so build one per sort rather
		// than sharing it across goroutines.
		collator := collate.New(language.TraditionalChinese, collate.Numeric, collate.IgnoreCase)
		desc := mode == SortSerialDesc
		sort.SliceStable(docs, func(i, j int) bool {
			cmp := collator.CompareString(serialKey(docs[i]), serialKey(docs[j]))
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	case SortDateDesc:
		fallthrough
	default:
		sort.SliceStable(docs, func(i, j int) bool {
			return compareIssued(docs[i], docs[j], false)
		})
	}
}

// compareIssued orders by issue date with nil dates last in both directions.
func compareIssued(a, b classify.Document, asc bool) bool {
	if a.IssuedDate == nil {
		return false
	}
	if b.IssuedDate == nil {
		return true
	}
	at, bt := a.IssuedDate.Time(), b.IssuedDate.Time()
	if asc {
		return at.Before(bt)
	}
	return at.After(bt)
}

func serialKey(doc classify.Document) string {
	if doc.ArticleNumber != "" {
		return doc.ArticleNumber
	}
	return doc.Serial
}
