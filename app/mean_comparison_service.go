package app

import (
	"context"

	"meangate/domain/core"
	"meangate/domain/stats"
	"meangate/domain/verdict"
	"meangate/internal/errors"
	"meangate/ports"
)

// MeanComparisonService runs the two-stage decision pipeline:
// normality screen, gate, then (only if normal) the one-sided mean comparison.
//
// The service holds no mutable state; Evaluate is safe for concurrent use.
type MeanComparisonService struct {
	config     stats.Config
	screener   ports.NormalityScreenerPort
	comparator ports.MeanComparatorPort
	composer   *VerdictComposer
}

// NewMeanComparisonService creates a new pipeline service
func NewMeanComparisonService(
	config stats.Config,
	screener ports.NormalityScreenerPort,
	comparator ports.MeanComparatorPort,
	observer ports.TraceObserverPort,
) *MeanComparisonService {
	return &MeanComparisonService{
		config:     config,
		screener:   screener,
		comparator: comparator,
		composer:   NewVerdictComposer(config, observer),
	}
}

// Config returns the statistical configuration the service was built with
func (s *MeanComparisonService) Config() stats.Config {
	return s.config
}

// Evaluate decides whether the sample mean exceeds the reference mean.
// It returns either a verdict or an error, never both.
func (s *MeanComparisonService) Evaluate(ctx context.Context, sample stats.Sample) (*verdict.Verdict, error) {
	stages := []verdict.Stage{verdict.StageStart}

	normality, err := s.screener.Screen(sample)
	if err != nil {
		return nil, stageError(s.screener.Name(), err)
	}
	stages = append(stages, verdict.StageNormalityChecked)

	if RouteNormality(normality.PValue, s.config.SignificanceThreshold) == RouteHalt {
		stages = append(stages, verdict.StageHalted)
		return s.composer.ComposeNonNormal(ctx, sample, normality, stages), nil
	}

	comparison, err := s.comparator.Compare(sample, s.config.ReferenceMean)
	if err != nil {
		return nil, stageError(s.comparator.Name(), err)
	}
	stages = append(stages, verdict.StageCompared)

	return s.composer.ComposeCompared(ctx, sample, normality, comparison, stages), nil
}

func stageError(test string, err error) error {
	if core.IsDegenerateSample(err) {
		return errors.DegenerateSample(test, err)
	}
	return errors.Wrapf(err, "%s failed", test)
}
