// Package metrics exposes Prometheus collectors for the ingestion pipeline
// and the serve API.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch and page outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

var (
	listingPagesTotal    *prometheus.CounterVec
	detailFetchesTotal   *prometheus.CounterVec
	fetchDurationSeconds *prometheus.HistogramVec
	datasetDocuments     prometheus.Gauge
	datasetLastUpdated   prometheus.Gauge

	once sync.Once
)

// Init registers the collectors on the default registry. Safe to call more
// than once.
func Init() {
	once.Do(func() {
		listingPagesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lawwatch_listing_pages_total",
				Help: "Listing pages processed, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		detailFetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lawwatch_detail_fetches_total",
				Help: "Detail page fetches, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lawwatch_fetch_duration_seconds",
				Help:    "Page fetch latency, labeled by stage.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		)

		datasetDocuments = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lawwatch_dataset_documents",
			Help: "Number of documents in the last written dataset.",
		})

		datasetLastUpdated = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lawwatch_dataset_last_updated_seconds",
			Help: "Unix time of the last dataset write.",
		})
	})
}

// ObserveListingPage records one listing page outcome.
func ObserveListingPage(outcome string) {
	if listingPagesTotal == nil {
		return
	}
	listingPagesTotal.WithLabelValues(outcome).Inc()
}

// ObserveDetailFetch records one detail fetch outcome and its latency.
func ObserveDetailFetch(outcome string, dur time.Duration) {
	if detailFetchesTotal == nil {
		return
	}
	detailFetchesTotal.WithLabelValues(outcome).Inc()
	fetchDurationSeconds.WithLabelValues("detail").Observe(dur.Seconds())
}

// ObserveListingFetch records listing page latency.
func ObserveListingFetch(dur time.Duration) {
	if fetchDurationSeconds == nil {
		return
	}
	fetchDurationSeconds.WithLabelValues("listing").Observe(dur.Seconds())
}

// SetDatasetStats records the size and write time of the dataset artifact.
func SetDatasetStats(documents int, writtenAt time.Time) {
	if datasetDocuments == nil {
		return
	}
	datasetDocuments.Set(float64(documents))
	datasetLastUpdated.Set(float64(writtenAt.Unix()))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
