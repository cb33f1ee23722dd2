package app

import (
	"context"

	"meangate/domain/stats"
	"meangate/domain/verdict"
	"meangate/ports"
)

// VerdictComposer turns test outcomes into a Verdict and its wire report
type VerdictComposer struct {
	config   stats.Config
	observer ports.TraceObserverPort
}

// NewVerdictComposer creates a composer; a nil observer discards traces
func NewVerdictComposer(config stats.Config, observer ports.TraceObserverPort) *VerdictComposer {
	if observer == nil {
		observer = ports.NopTraceObserver{}
	}
	return &VerdictComposer{
		config:   config,
		observer: observer,
	}
}

// ComposeNonNormal builds the terminal verdict for a sample that failed the normality gate
func (c *VerdictComposer) ComposeNonNormal(ctx context.Context, sample stats.Sample, normality stats.NormalityOutcome, stages []verdict.Stage) *verdict.Verdict {
	v := &verdict.Verdict{
		Kind:       verdict.KindNonNormal,
		PNormal:    normality.PValue,
		Stages:     append(stages, verdict.StageComposed),
		SampleSize: sample.Len(),
		SampleHash: sample.Fingerprint(),
		Report:     verdict.NonNormalReport(normality.PValue),
	}

	c.emit(ctx, verdict.Trace{
		Kind:          v.Kind,
		SampleMean:    normality.Mean,
		ReferenceMean: c.config.ReferenceMean,
		PNormal:       normality.PValue,
		SampleSize:    v.SampleSize,
		SampleHash:    v.SampleHash,
	})

	return v
}

// ComposeCompared builds the verdict for a sample that went through the mean comparison
func (c *VerdictComposer) ComposeCompared(ctx context.Context, sample stats.Sample, normality stats.NormalityOutcome, comparison stats.ComparisonOutcome, stages []verdict.Stage) *verdict.Verdict {
	pRounded := verdict.RoundPValue(comparison.PValue)
	rejected := pRounded < c.config.SignificanceThreshold

	v := &verdict.Verdict{
		Kind:    verdict.KindCompared,
		PNormal: normality.PValue,
		Comparison: &verdict.Comparison{
			Statistic:    comparison.Statistic,
			PValue:       pRounded,
			RejectedNull: rejected,
		},
		Stages:     append(stages, verdict.StageComposed),
		SampleSize: sample.Len(),
		SampleHash: sample.Fingerprint(),
		Report:     verdict.ComparedReport(normality.PValue, pRounded, rejected),
	}

	pRaw := comparison.PValue
	c.emit(ctx, verdict.Trace{
		Kind:          v.Kind,
		SampleMean:    normality.Mean,
		ReferenceMean: c.config.ReferenceMean,
		PNormal:       normality.PValue,
		Statistic:     comparison.Statistic,
		PComparison:   &pRaw,
		RejectedNull:  rejected,
		SampleSize:    v.SampleSize,
		SampleHash:    v.SampleHash,
	})

	return v
}

// emit hands the trace to the observer; a misbehaving observer cannot affect the verdict
func (c *VerdictComposer) emit(ctx context.Context, trace verdict.Trace) {
	defer func() {
		_ = recover()
	}()
	c.observer.ObserveTrace(ctx, trace)
}
