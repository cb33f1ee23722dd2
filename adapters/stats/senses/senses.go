package senses

import (
	"math"

	"meangate/domain/core"
	domainStats "meangate/domain/stats"

	"github.com/montanaflynn/stats"
)

// Sense names, reported in outcomes and logs
const (
	senseKolmogorovSmirnov = "kolmogorov_smirnov"
	senseOneSampleTTest    = "one_sample_ttest_greater"
)

// fitNormal estimates the normal parameters of a sample: mean and sample standard deviation (n-1)
func fitNormal(sample domainStats.Sample) (mean, stdDev float64, err error) {
	if err := sample.Validate(); err != nil {
		return 0, 0, err
	}

	data := []float64(sample)

	mean, err = stats.Mean(data)
	if err != nil {
		return 0, 0, err
	}

	stdDev, err = stats.StandardDeviationSample(data)
	if err != nil {
		return 0, 0, err
	}

	// Finite inputs can still overflow the running sums
	if !isFinite(mean) || !isFinite(stdDev) {
		return 0, 0, core.ErrNonFinite
	}
	if stdDev <= 0 {
		return 0, 0, core.ErrZeroVariance
	}

	return mean, stdDev, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// clampProbability pins numerical noise back into [0,1]
func clampProbability(p float64) float64 {
	if math.IsNaN(p) {
		return 1.0
	}
	return math.Max(0, math.Min(1, p))
}
