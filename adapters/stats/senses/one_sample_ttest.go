package senses

import (
	"math"

	domainStats "meangate/domain/stats"

	"gonum.org/v1/gonum/stat/distuv"
)

// OneSampleTTestSense tests H0: mean <= reference against H1: mean > reference
type OneSampleTTestSense struct{}

// NewOneSampleTTestSense creates a new upper-tail one-sample t-test sense
func NewOneSampleTTestSense() *OneSampleTTestSense {
	return &OneSampleTTestSense{}
}

// Name returns the sense name
func (s *OneSampleTTestSense) Name() string {
	return senseOneSampleTTest
}

// Description returns a human-readable description
func (s *OneSampleTTestSense) Description() string {
	return "Student's one-sample t-test, one-sided (sample mean greater than reference)"
}

// Compare computes the t statistic and its upper-tail p-value
func (s *OneSampleTTestSense) Compare(sample domainStats.Sample, referenceMean float64) (domainStats.ComparisonOutcome, error) {
	mean, stdDev, err := fitNormal(sample)
	if err != nil {
		return domainStats.ComparisonOutcome{}, err
	}

	n := float64(sample.Len())
	df := n - 1
	tStat := (mean - referenceMean) / (stdDev / math.Sqrt(n))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := clampProbability(tDist.Survival(tStat))

	return domainStats.ComparisonOutcome{
		TestName:         s.Name(),
		Statistic:        tStat,
		PValue:           p,
		DegreesOfFreedom: df,
		ReferenceMean:    referenceMean,
	}, nil
}
