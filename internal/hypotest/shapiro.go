package hypotest

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"tabscope/internal/errors"
)

// ShapiroWilk computes the Shapiro-Wilk W statistic and its p-value using
// Royston's AS R94 approximation. Valid for n >= 3; callers wanting bounded
// cost on large columns subsample before calling.
func ShapiroWilk(values []float64) (w, p float64, err error) {
	n := len(values)
	if n < 3 {
		return 0, 0, errors.InvalidInput("shapiro-wilk requires at least 3 values")
	}

	x := make([]float64, n)
	copy(x, values)
	sort.Float64s(x)
	if x[n-1] == x[0] {
		return 0, 0, errors.InvalidInput("shapiro-wilk is undefined for constant data")
	}

	a := swCoefficients(n)

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	var num, den float64
	for i, v := range x {
		num += a[i] * v
		d := v - mean
		den += d * d
	}
	w = num * num / den
	if w > 1 {
		w = 1
	}

	return w, swPValue(w, n), nil
}

// swCoefficients builds the weight vector a from expected normal order
// statistics, with Royston's polynomial corrections for the tail weights.
// n=3 is the exact closed form; the general construction degenerates there
// (the middle order statistic is 0, making phi 0/0).
func swCoefficients(n int) []float64 {
	if n == 3 {
		sqrtHalf := math.Sqrt(0.5)
		return []float64{-sqrtHalf, 0, sqrtHalf}
	}

	norm := distuv.UnitNormal

	m := make([]float64, n)
	var ssm float64
	for i := 0; i < n; i++ {
		m[i] = norm.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		ssm += m[i] * m[i]
	}

	a := make([]float64, n)
	rsn := 1.0 / math.Sqrt(float64(n))
	c := make([]float64, n)
	sqrtSSM := math.Sqrt(ssm)
	for i := range m {
		c[i] = m[i] / sqrtSSM
	}

	a[n-1] = poly(rsn, -2.706056, 4.434685, -2.071190, -0.147981, 0.221157, c[n-1])

	if n > 5 {
		a[n-2] = poly(rsn, -3.582633, 5.682633, -1.752461, -0.293762, 0.042981, c[n-2])
		phi := (ssm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) /
			(1 - 2*a[n-1]*a[n-1] - 2*a[n-2]*a[n-2])
		sqrtPhi := math.Sqrt(phi)
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / sqrtPhi
		}
		a[0] = -a[n-1]
		a[1] = -a[n-2]
	} else {
		phi := (ssm - 2*m[n-1]*m[n-1]) / (1 - 2*a[n-1]*a[n-1])
		sqrtPhi := math.Sqrt(phi)
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / sqrtPhi
		}
		a[0] = -a[n-1]
	}
	return a
}

// poly evaluates Royston's quintic correction c5*u^5 + ... + c1*u + c0.
func poly(u, c5, c4, c3, c2, c1, c0 float64) float64 {
	return ((((c5*u+c4)*u+c3)*u+c2)*u+c1)*u + c0
}

// swPValue maps W to a p-value via the n-banded normalizing transforms of
// AS R94.
func swPValue(w float64, n int) float64 {
	norm := distuv.UnitNormal
	fn := float64(n)

	switch {
	case n == 3:
		// Exact small-sample result.
		const (
			pi6  = 1.90985931710274 // 6/pi
			stqr = 1.04719755119660 // asin(sqrt(3/4))
		)
		p := pi6 * (math.Asin(math.Sqrt(w)) - stqr)
		return clamp01(p)
	case n <= 11:
		g := -2.273 + 0.459*fn
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		z := (-math.Log(g-math.Log(1-w)) - mu) / sigma
		return clamp01(norm.Survival(z))
	default:
		ln := math.Log(fn)
		mu := -1.5861 - 0.31082*ln - 0.083751*ln*ln + 0.0038915*ln*ln*ln
		sigma := math.Exp(-0.4803 - 0.082676*ln + 0.0030302*ln*ln)
		z := (math.Log(1-w) - mu) / sigma
		return clamp01(norm.Survival(z))
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
