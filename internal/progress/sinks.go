package progress

import (
	"go.uber.org/zap"

	"github.com/lawwatch/lawwatch/internal/metrics"
)

// LogSink emits structured logs for pipeline milestones.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wires a zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Observe logs the event with structured fields.
func (s *LogSink) Observe(evt Event) {
	fields := []zap.Field{zap.String("stage", string(evt.Stage))}
	if evt.Page > 0 {
		fields = append(fields, zap.Int("page", evt.Page), zap.Int("total_pages", evt.TotalPages))
	}
	if evt.Total > 0 {
		fields = append(fields, zap.Int("processed", evt.Processed), zap.Int("total", evt.Total))
	}
	if evt.Records > 0 {
		fields = append(fields, zap.Int("records", evt.Records))
	}
	if evt.URL != "" {
		fields = append(fields, zap.String("url", evt.URL))
	}
	if evt.Dur > 0 {
		fields = append(fields, zap.Duration("dur", evt.Dur))
	}
	if evt.Note != "" {
		fields = append(fields, zap.String("note", evt.Note))
	}

	switch evt.Stage {
	case StageListSkip, StageDetailSkip:
		s.logger.Warn("pipeline progress", fields...)
	default:
		s.logger.Info("pipeline progress", fields...)
	}
}

// MetricsSink forwards events to the Prometheus collectors.
type MetricsSink struct{}

// NewMetricsSink ensures the collectors are registered and returns a sink.
func NewMetricsSink() *MetricsSink {
	metrics.Init()
	return &MetricsSink{}
}

// Observe updates the counters matching the event stage.
func (s *MetricsSink) Observe(evt Event) {
	switch evt.Stage {
	case StageListPage:
		metrics.ObserveListingPage(metrics.OutcomeOK)
		metrics.ObserveListingFetch(evt.Dur)
	case StageListSkip:
		metrics.ObserveListingPage(metrics.OutcomeFailed)
	case StageDetailDone:
		metrics.ObserveDetailFetch(metrics.OutcomeOK, evt.Dur)
	case StageDetailSkip:
		metrics.ObserveDetailFetch(metrics.OutcomeFailed, evt.Dur)
	case StageDetailStub:
		metrics.ObserveDetailFetch(metrics.OutcomeSkipped, evt.Dur)
	case StageListSummary, StageMilestone:
	}
}
