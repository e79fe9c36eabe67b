// Package classify derives deadline-urgency categories and region tags for
// crawled notice records.
package classify

import (
	"github.com/lawwatch/lawwatch/internal/dates"
	"github.com/lawwatch/lawwatch/internal/notice"
)

// Category is the deadline-urgency classification of a record.
type Category string

// Category values. NoDeadline is reserved for records with no usable date at
// all; records whose deadline has passed, or that were issued more than
// activeIssuedDays ago, are Expired.
const (
	DueSoon    Category = "due-soon"
	Active     Category = "active"
	Expired    Category = "expired"
	NoDeadline Category = "no-deadline"
)

// Classification day boundaries.
const (
	deadlineSoonDays = 7
	recentIssuedDays = 14
	activeIssuedDays = 90
)

// Categories lists every category in display order.
var Categories = []Category{DueSoon, Active, Expired, NoDeadline}

// ValidCategory reports whether c is a known category.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Document is a raw notice record enriched with derived classification
// fields. Created once during normalization and never mutated afterwards.
type Document struct {
	notice.Document

	IssuedDate        *dates.Date `json:"issuedDate,omitempty"`
	DeadlineDate      *dates.Date `json:"deadlineDate,omitempty"`
	DeadlineCategory  Category    `json:"deadlineCategory"`
	DaysUntilDeadline *int        `json:"daysUntilDeadline,omitempty"`
	DaysSinceIssued   *int        `json:"daysSinceIssued,omitempty"`
	Region            Region      `json:"region"`
	PriorityIssuer    string      `json:"priorityIssuer,omitempty"`
}

// Categorize computes the urgency category from the dates at hand. Exactly
// one of the returned day counters is non-nil when a usable date exists: the
// days-until counter when a deadline is present, the days-since counter
// (clamped to >= 0) when only an issue date is.
func Categorize(today dates.Date, issued, deadline *dates.Date) (Category, *int, *int) {
	if deadline != nil {
		diff := today.DaysUntil(*deadline)
		switch {
		case diff < 0:
			return Expired, &diff, nil
		case diff <= deadlineSoonDays:
			return DueSoon, &diff, nil
		default:
			return Active, &diff, nil
		}
	}

	if issued != nil {
		diff := issued.DaysUntil(today)
		if diff < 0 {
			diff = 0
		}
		switch {
		case diff <= recentIssuedDays:
			return DueSoon, nil, &diff
		case diff <= activeIssuedDays:
			return Active, nil, &diff
		default:
			return Expired, nil, &diff
		}
	}

	return NoDeadline, nil, nil
}

// Enrich builds the classified view of every raw document against the given
// calendar day. The input slice is never mutated.
func Enrich(docs []notice.Document, today dates.Date) []Document {
	out := make([]Document, len(docs))
	for i, doc := range docs {
		out[i] = enrichOne(doc, today)
	}
	return out
}

func enrichOne(doc notice.Document, today dates.Date) Document {
	issued := resolveOptional(doc.Date)
	deadline := resolveOptional(doc.Deadline)

	category, daysUntil, daysSince := Categorize(today, issued, deadline)

	return Document{
		Document:          doc,
		IssuedDate:        issued,
		DeadlineDate:      deadline,
		DeadlineCategory:  category,
		DaysUntilDeadline: daysUntil,
		DaysSinceIssued:   daysSince,
		Region:            DetectRegion(doc.Issuer, doc.Subject),
		PriorityIssuer:    PriorityIssuer(doc.Issuer),
	}
}

func resolveOptional(raw string) *dates.Date {
	if raw == "" {
		return nil
	}
	d, ok := dates.Resolve(raw)
	if !ok {
		return nil
	}
	return &d
}
