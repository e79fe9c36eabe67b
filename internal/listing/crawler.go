package listing

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lawwatch/lawwatch/internal/fetch"
	"github.com/lawwatch/lawwatch/internal/notice"
	"github.com/lawwatch/lawwatch/internal/progress"
)

// Crawler walks the paginated listing sequentially. Pages cannot be fetched
// in parallel because each page's pagination summary decides whether to
// continue.
type Crawler struct {
	fetcher  fetch.Fetcher
	listURL  string
	logger   *zap.Logger
	reporter progress.Sink
}

// New constructs a Crawler. listURL is the page-1 listing endpoint.
func New(fetcher fetch.Fetcher, listURL string, logger *zap.Logger, reporter progress.Sink) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = progress.Fanout(nil)
	}
	return &Crawler{fetcher: fetcher, listURL: listURL, logger: logger, reporter: reporter}
}

// Crawl fetches listing pages starting at page 1 until the reported page
// count is exhausted or pageCap is reached (pageCap <= 0 means unbounded).
// A page whose fetch or parse fails is logged and skipped; the crawl
// continues with the previously known page count. The returned int is the
// listing's reported total record count.
func (c *Crawler) Crawl(ctx context.Context, pageCap int) ([]notice.Summary, int, error) {
	var summaries []notice.Summary
	totalPages := 1
	totalRecords := 0

	for page := 1; page <= totalPages; page++ {
		if pageCap > 0 && page > pageCap {
			c.logger.Info("reached page cap, stopping early", zap.Int("page_cap", pageCap))
			break
		}
		if err := ctx.Err(); err != nil {
			return summaries, totalRecords, fmt.Errorf("crawl canceled: %w", err)
		}

		pageURL := c.pageURL(page)
		start := time.Now()

		parsed, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			c.logger.Warn("skip listing page",
				zap.Int("page", page),
				zap.String("url", pageURL),
				zap.Error(err),
			)
			c.reporter.Observe(progress.Event{
				Stage: progress.StageListSkip,
				Page:  page,
				URL:   pageURL,
				Note:  err.Error(),
			})
			continue
		}

		if page == 1 && parsed.Pagination.TotalRecords > 0 {
			c.reporter.Observe(progress.Event{
				Stage:      progress.StageListSummary,
				Page:       page,
				TotalPages: parsed.Pagination.TotalPages,
				Records:    parsed.Pagination.TotalRecords,
			})
		}

		// The reported page count is not trusted to be stable; refresh it
		// from every page that parses.
		if parsed.Pagination.TotalPages > 0 {
			totalPages = parsed.Pagination.TotalPages
		}
		if parsed.Pagination.TotalRecords > 0 {
			totalRecords = parsed.Pagination.TotalRecords
		}

		summaries = append(summaries, parsed.Summaries...)
		c.reporter.Observe(progress.Event{
			Stage:      progress.StageListPage,
			Page:       page,
			TotalPages: totalPages,
			Records:    len(parsed.Summaries),
			URL:        pageURL,
			Dur:        time.Since(start),
		})
	}

	return summaries, totalRecords, nil
}

func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (Page, error) {
	html, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return Page{}, fmt.Errorf("page unavailable: %w", err)
	}
	parsed, err := ParsePage(html, c.listURL)
	if err != nil {
		return Page{}, fmt.Errorf("page unavailable: %w", err)
	}
	return parsed, nil
}

// pageURL builds the listing URL for a page number; page 1 is the bare
// endpoint, later pages add the b query parameter.
func (c *Crawler) pageURL(page int) string {
	if page <= 1 {
		return c.listURL
	}
	u, err := url.Parse(c.listURL)
	if err != nil {
		return c.listURL
	}
	q := u.Query()
	q.Set("b", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
