package detail

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lawwatch/lawwatch/internal/fetch"
	"github.com/lawwatch/lawwatch/internal/notice"
	"github.com/lawwatch/lawwatch/internal/progress"
)

// milestoneEvery controls how often the pool reports bulk progress.
const milestoneEvery = 100

// Config controls the enrichment pool.
type Config struct {
	// Concurrency is the worker count; it is capped at the input length.
	Concurrency int
	// PerRequestDelay is how long each worker sleeps after a claim before
	// claiming again. Effective request rate scales with worker count.
	PerRequestDelay time.Duration
}

// Enricher merges each summary with its parsed detail page.
type Enricher struct {
	fetcher  fetch.Fetcher
	cfg      Config
	logger   *zap.Logger
	reporter progress.Sink
}

// NewEnricher constructs an Enricher.
func NewEnricher(fetcher fetch.Fetcher, cfg Config, logger *zap.Logger, reporter progress.Sink) *Enricher {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = progress.Fanout(nil)
	}
	return &Enricher{fetcher: fetcher, cfg: cfg, logger: logger, reporter: reporter}
}

// EnrichAll fetches each summary's detail page and returns merged documents
// with results[i] corresponding to summaries[i]. Workers share a single
// atomically advancing cursor and each writes only its own output slot, so
// no further locking is needed. A failed or missing detail page yields the
// empty stub and never aborts the batch.
func (e *Enricher) EnrichAll(ctx context.Context, summaries []notice.Summary) []notice.Document {
	results := make([]notice.Document, len(summaries))
	if len(summaries) == 0 {
		return results
	}

	workers := e.cfg.Concurrency
	if workers > len(summaries) {
		workers = len(summaries)
	}

	var (
		cursor    atomic.Int64
		processed atomic.Int64
		wg        sync.WaitGroup
	)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(cursor.Add(1)) - 1
				if idx >= len(summaries) {
					return
				}

				results[idx] = e.enrichOne(ctx, summaries[idx])

				done := processed.Add(1)
				if done%milestoneEvery == 0 {
					e.reporter.Observe(progress.Event{
						Stage:     progress.StageMilestone,
						Processed: int(done),
						Total:     len(summaries),
					})
				}

				if e.cfg.PerRequestDelay > 0 {
					select {
					case <-ctx.Done():
						// Keep draining claims so every slot is filled; the
						// stub path below is cheap once the context is gone.
					case <-time.After(e.cfg.PerRequestDelay):
					}
				}
			}
		}()
	}
	wg.Wait()

	return results
}

func (e *Enricher) enrichOne(ctx context.Context, s notice.Summary) notice.Document {
	if s.SubjectURL == "" {
		e.reporter.Observe(progress.Event{Stage: progress.StageDetailStub})
		return notice.Merge(s, notice.EmptyDetail())
	}

	start := time.Now()
	html, err := e.fetcher.Fetch(ctx, s.SubjectURL)
	if err != nil {
		e.logger.Warn("detail page unavailable",
			zap.String("url", s.SubjectURL),
			zap.Error(err),
		)
		e.reporter.Observe(progress.Event{
			Stage: progress.StageDetailSkip,
			URL:   s.SubjectURL,
			Dur:   time.Since(start),
			Note:  err.Error(),
		})
		return notice.Merge(s, notice.EmptyDetail())
	}

	parsed, err := ParseDetail(html, s.SubjectURL)
	if err != nil {
		e.logger.Warn("detail page unparsable",
			zap.String("url", s.SubjectURL),
			zap.Error(err),
		)
		e.reporter.Observe(progress.Event{
			Stage: progress.StageDetailSkip,
			URL:   s.SubjectURL,
			Dur:   time.Since(start),
			Note:  err.Error(),
		})
		return notice.Merge(s, notice.EmptyDetail())
	}

	e.reporter.Observe(progress.Event{
		Stage: progress.StageDetailDone,
		URL:   s.SubjectURL,
		Dur:   time.Since(start),
	})
	return notice.Merge(s, parsed)
}
