package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lawwatch/lawwatch/internal/dataset"
	"github.com/lawwatch/lawwatch/internal/detail"
	"github.com/lawwatch/lawwatch/internal/fetch"
	"github.com/lawwatch/lawwatch/internal/listing"
	"github.com/lawwatch/lawwatch/internal/metrics"
	"github.com/lawwatch/lawwatch/internal/progress"
)

// newCrawlCmd creates the 'crawl' subcommand. It walks the whole listing,
// enriches every entry from its detail page, and writes the dataset artifact.
func newCrawlCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "crawl",
		Short: "Crawl the announcement listing and write the dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCrawl(cmd, rt)
		},
	}
}

func runCrawl(cmd *cobra.Command, rt *runtime) error {
	ctx := cmd.Context()
	cfg := rt.cfg
	logger := rt.logger

	fetcher := fetch.New(fetch.Config{
		UserAgent: cfg.Crawler.UserAgent,
		Referer:   cfg.Crawler.Referer,
		Timeout:   cfg.FetchTimeout(),
	})
	reporter := progress.Fanout{
		progress.NewLogSink(logger),
		progress.NewMetricsSink(),
	}

	start := time.Now()
	crawler := listing.New(fetcher, cfg.Crawler.BaseURL, logger.Named("listing"), reporter)
	summaries, totalRecords, err := crawler.Crawl(ctx, cfg.Crawler.MaxPages)
	if err != nil {
		return fmt.Errorf("crawl listing: %w", err)
	}
	logger.Info("listing crawl complete",
		zap.Int("entries", len(summaries)),
		zap.Int("total_records", totalRecords),
		zap.Duration("elapsed", time.Since(start)),
	)

	enricher := detail.NewEnricher(fetcher, detail.Config{
		Concurrency:     cfg.Crawler.Concurrency,
		PerRequestDelay: cfg.RequestDelay(),
	}, logger.Named("detail"), reporter)
	documents := enricher.EnrichAll(ctx, summaries)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("enrichment interrupted: %w", err)
	}

	ds := dataset.New(documents, totalRecords, time.Now())
	if err := dataset.Write(cfg.Dataset.Path, ds); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	metrics.SetDatasetStats(len(ds.Documents), ds.UpdatedAt)

	logger.Info("dataset written",
		zap.String("path", cfg.Dataset.Path),
		zap.Int("documents", len(ds.Documents)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
