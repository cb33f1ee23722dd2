package observability

import (
	"context"

	"meangate/domain/core"
	"meangate/domain/verdict"
	"meangate/internal"
	"meangate/internal/metrics"
)

// TraceLogger writes verdict traces to the application log and counts them
type TraceLogger struct {
	logger *internal.Logger
}

// NewTraceLogger creates a trace observer backed by logger
func NewTraceLogger(logger *internal.Logger) *TraceLogger {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TraceLogger{logger: logger}
}

// ObserveTrace implements ports.TraceObserverPort
func (t *TraceLogger) ObserveTrace(ctx context.Context, trace verdict.Trace) {
	log := t.logger.With("sample", trace.SampleHash.Short(), "n", trace.SampleSize)
	if id, ok := core.RequestIDFromContext(ctx); ok {
		log = log.With("request_id", id.String())
	}

	log = log.With(
		"sample_mean", trace.SampleMean,
		"reference_mean", trace.ReferenceMean,
		"p_normal", trace.PNormal,
	)

	switch trace.Kind {
	case verdict.KindNonNormal:
		log.Info("sample is not normal, t-test skipped")
	case verdict.KindCompared:
		log = log.With("t", trace.Statistic)
		if trace.PComparison != nil {
			log = log.With("p_t", *trace.PComparison, "rejected", trace.RejectedNull)
		}
		log.Info("t-test done")
	}

	metrics.RecordVerdict(string(trace.Kind), trace.RejectedNull, trace.SampleSize)
}
