package describe

import (
	"math"
	"sort"
)

// Quantile computes the p-quantile of values with linear interpolation
// between order statistics (the R-7 rule, h = p*(n-1)). Neither
// montanaflynn/stats nor gonum exposes this interpolation, and the quantile
// rule feeds the IQR outlier fences, so it lives here.
//
// values need not be sorted; p is clamped to [0, 1]. NaN for empty input.
func Quantile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return values[0]
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	h := p * float64(n-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
