package describe

import (
	"math"

	"github.com/montanaflynn/stats"

	"tabscope/domain/analysis"
)

// Numeric computes the descriptive summary of one numeric column from its
// coerced values. Returns false for an empty slice (the column is skipped,
// not an error). The outlier list is attached by the caller.
func Numeric(name string, values []float64) (analysis.NumericSummary, bool) {
	if len(values) == 0 {
		return analysis.NumericSummary{}, false
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return analysis.NumericSummary{}, false
	}
	std, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return analysis.NumericSummary{}, false
	}
	min, err := stats.Min(values)
	if err != nil {
		return analysis.NumericSummary{}, false
	}
	max, err := stats.Max(values)
	if err != nil {
		return analysis.NumericSummary{}, false
	}

	q1 := Quantile(values, 0.25)
	median := Quantile(values, 0.5)
	q3 := Quantile(values, 0.75)

	return analysis.NumericSummary{
		Column:   name,
		Count:    len(values),
		Mean:     mean,
		Std:      std,
		Min:      min,
		Q1:       q1,
		Median:   median,
		Q3:       q3,
		Max:      max,
		Skewness: Skewness(values),
		Kurtosis: Kurtosis(values),
		IQR:      q3 - q1,
	}, true
}

// Skewness computes the adjusted Fisher-Pearson coefficient of skewness.
// Zero for fewer than 3 values or a constant column.
func Skewness(values []float64) float64 {
	n := float64(len(values))
	if n < 3 {
		return 0
	}
	_, m2, m3, _ := centralMoments(values)
	if m2 == 0 {
		return 0
	}
	g1 := m3 / math.Pow(m2, 1.5)
	return g1 * math.Sqrt(n*(n-1)) / (n - 2)
}

// Kurtosis computes bias-corrected excess kurtosis. Zero for fewer than 4
// values or a constant column.
func Kurtosis(values []float64) float64 {
	n := float64(len(values))
	if n < 4 {
		return 0
	}
	_, m2, _, m4 := centralMoments(values)
	if m2 == 0 {
		return 0
	}
	g2 := m4/(m2*m2) - 3
	return ((n+1)*g2 + 6) * (n - 1) / ((n - 2) * (n - 3))
}

// centralMoments returns the mean and the 2nd, 3rd, and 4th central sample
// moments (normalized by n).
func centralMoments(values []float64) (mean, m2, m3, m4 float64) {
	n := float64(len(values))
	for _, v := range values {
		mean += v
	}
	mean /= n
	for _, v := range values {
		d := v - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	m2 /= n
	m3 /= n
	m4 /= n
	return mean, m2, m3, m4
}
