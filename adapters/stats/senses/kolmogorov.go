package senses

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// Above this n the exact matrix method gets expensive; Stephens' corrected limit is accurate there
	kolmogorovExactMaxN = 1000

	kolmogorovScale    = 1e140
	kolmogorovScaleExp = 140
)

// kolmogorovCDF returns P(D_n < d) for the two-sided one-sample Kolmogorov statistic.
// Marsaglia, Tsang & Wang (2003), "Evaluating Kolmogorov's Distribution".
func kolmogorovCDF(n int, d float64) float64 {
	if n <= 0 || math.IsNaN(d) || d <= 0 {
		return 0
	}
	if d >= 1 {
		return 1
	}

	nf := float64(n)
	s := d * d * nf

	// MTW right-tail shortcut, accurate to ~7 digits where it applies
	if s > 7.24 || (s > 3.76 && n > 99) {
		return 1 - 2*math.Exp(-(2.000071+0.331/math.Sqrt(nf)+1.409/nf)*s)
	}

	if n > kolmogorovExactMaxN {
		return kolmogorovLimitCDF(d * (math.Sqrt(nf) + 0.12 + 0.11/math.Sqrt(nf)))
	}

	k := int(nf*d) + 1
	m := 2*k - 1
	h := float64(k) - nf*d

	hm := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			if i-j+1 >= 0 {
				hm.Set(i, j, 1)
			}
		}
	}
	for i := 0; i < m; i++ {
		hm.Set(i, 0, hm.At(i, 0)-math.Pow(h, float64(i+1)))
		hm.Set(m-1, i, hm.At(m-1, i)-math.Pow(h, float64(m-i)))
	}
	if 2*h-1 > 0 {
		hm.Set(m-1, 0, hm.At(m-1, 0)+math.Pow(2*h-1, float64(m)))
	}
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			if i-j+1 > 0 {
				v := hm.At(i, j)
				for g := 2; g <= i-j+1; g++ {
					v /= float64(g)
				}
				hm.Set(i, j, v)
			}
		}
	}

	q, eq := kolmogorovPower(hm, 0, n)

	p := q.At(k-1, k-1)
	for i := 1; i <= n; i++ {
		p = p * float64(i) / nf
		if p < 1/kolmogorovScale {
			p *= kolmogorovScale
			eq -= kolmogorovScaleExp
		}
	}

	return p * math.Pow(10, float64(eq))
}

// kolmogorovPower raises a to the n-th power by squaring, tracking a decimal
// exponent so intermediate entries stay within float64 range
func kolmogorovPower(a *mat.Dense, ea, n int) (*mat.Dense, int) {
	if n == 1 {
		return mat.DenseCopyOf(a), ea
	}

	v, ev := kolmogorovPower(a, ea, n/2)

	b := new(mat.Dense)
	b.Mul(v, v)
	eb := 2 * ev

	if n%2 == 1 {
		c := new(mat.Dense)
		c.Mul(a, b)
		b, eb = c, ea+eb
	}

	m, _ := b.Dims()
	if b.At(m/2, m/2) > kolmogorovScale {
		b.Scale(1/kolmogorovScale, b)
		eb += kolmogorovScaleExp
	}

	return b, eb
}

// kolmogorovLimitCDF is the limiting Kolmogorov distribution P(K <= x)
func kolmogorovLimitCDF(x float64) float64 {
	if x <= 0 {
		return 0
	}

	if x < 1.18 {
		// Jacobi theta form converges fast for small x
		y := -math.Pi * math.Pi / (8 * x * x)
		sum := 0.0
		for k := 1; k <= 20; k++ {
			odd := float64(2*k - 1)
			sum += math.Exp(odd * odd * y)
		}
		return math.Sqrt(2*math.Pi) / x * sum
	}

	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		kf := float64(k)
		term := math.Exp(-2 * kf * kf * x * x)
		sum += sign * term
		if term < 1e-16 {
			break
		}
		sign = -sign
	}
	return 1 - 2*sum
}
