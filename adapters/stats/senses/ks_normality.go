package senses

import (
	"math"
	"sort"

	domainStats "meangate/domain/stats"

	"gonum.org/v1/gonum/stat/distuv"
)

// KSNormalitySense screens a sample for normality with a one-sample
// Kolmogorov-Smirnov test against N(mean, sd) fitted from the same sample.
//
// Fitting the reference distribution from the data makes the test
// conservative (p-values are biased upward). That coupling is intentional and
// no Lilliefors correction is applied.
type KSNormalitySense struct{}

// NewKSNormalitySense creates a new Kolmogorov-Smirnov normality sense
func NewKSNormalitySense() *KSNormalitySense {
	return &KSNormalitySense{}
}

// Name returns the sense name
func (s *KSNormalitySense) Name() string {
	return senseKolmogorovSmirnov
}

// Description returns a human-readable description
func (s *KSNormalitySense) Description() string {
	return "Kolmogorov-Smirnov goodness of fit against a normal distribution fitted to the sample"
}

// Screen runs the normality test and returns its p-value
func (s *KSNormalitySense) Screen(sample domainStats.Sample) (domainStats.NormalityOutcome, error) {
	mean, stdDev, err := fitNormal(sample)
	if err != nil {
		return domainStats.NormalityOutcome{}, err
	}

	reference := distuv.Normal{Mu: mean, Sigma: stdDev}
	d := ksStatistic(sample, reference.CDF)
	p := clampProbability(1 - kolmogorovCDF(sample.Len(), d))

	return domainStats.NormalityOutcome{
		TestName:   s.Name(),
		Statistic:  d,
		PValue:     p,
		Mean:       mean,
		StdDev:     stdDev,
		SampleSize: sample.Len(),
	}, nil
}

// ksStatistic computes D = sup|F_n(x) - F(x)| over the sorted sample
func ksStatistic(sample domainStats.Sample, cdf func(float64) float64) float64 {
	sorted := sample.Values()
	sort.Float64s(sorted)

	n := float64(len(sorted))
	d := 0.0
	for i, x := range sorted {
		f := cdf(x)
		dPlus := float64(i+1)/n - f
		dMinus := f - float64(i)/n
		d = math.Max(d, math.Max(dPlus, dMinus))
	}
	return d
}
