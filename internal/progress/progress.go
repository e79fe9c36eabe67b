// Package progress fans pipeline milestones out to registered sinks so the
// crawl stages stay agnostic about logging and metrics.
package progress

import (
	"time"
)

// Stage denotes the milestone represented by an Event.
type Stage string

// Supported progress stages.
const (
	StageListSummary Stage = "LIST_SUMMARY"
	StageListPage    Stage = "LIST_PAGE"
	StageListSkip    Stage = "LIST_SKIP"
	StageDetailDone  Stage = "DETAIL_DONE"
	StageDetailSkip  Stage = "DETAIL_SKIP"
	StageDetailStub  Stage = "DETAIL_STUB"
	StageMilestone   Stage = "MILESTONE"
)

// Event captures a single pipeline milestone.
type Event struct {
	Stage Stage
	// Page is the listing page number for list events.
	Page int
	// TotalPages is the listing's reported page count, when known.
	TotalPages int
	// Processed/Total track enrichment progress for detail events.
	Processed int
	Total     int
	// Records is the row count extracted from a listing page.
	Records int
	URL     string
	Dur     time.Duration
	Note    string
}

// Sink consumes events. Implementations must tolerate concurrent calls; the
// enrichment pool emits from multiple workers.
type Sink interface {
	Observe(evt Event)
}

// Fanout forwards each event to every registered sink in order.
type Fanout []Sink

// Observe implements Sink.
func (f Fanout) Observe(evt Event) {
	for _, s := range f {
		if s != nil {
			s.Observe(evt)
		}
	}
}
