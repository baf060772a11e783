package outliers

import (
	"github.com/montanaflynn/stats"

	"tabscope/internal/describe"
	"tabscope/internal/errors"
)

// Method selects the outlier detection rule.
type Method string

const (
	MethodIQR    Method = "iqr"
	MethodZScore Method = "zscore"
)

// iqrFence is the IQR multiplier for the Tukey fences.
const iqrFence = 1.5

// zScoreLimit is the |z| threshold for the z-score rule.
const zScoreLimit = 3.0

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodIQR:
		return MethodIQR, nil
	case MethodZScore:
		return MethodZScore, nil
	}
	return "", errors.ConfigInvalid("unknown outlier method: " + s)
}

// Detect returns the values outside the fence implied by the method, in
// input order. Callers decide truncation; the full list is returned.
func Detect(values []float64, method Method) ([]float64, error) {
	switch method {
	case MethodIQR:
		return detectIQR(values), nil
	case MethodZScore:
		return detectZScore(values), nil
	}
	return nil, errors.ConfigInvalid("unknown outlier method: " + string(method))
}

// detectIQR flags values outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR].
func detectIQR(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	q1 := describe.Quantile(values, 0.25)
	q3 := describe.Quantile(values, 0.75)
	iqr := q3 - q1
	lower := q1 - iqrFence*iqr
	upper := q3 + iqrFence*iqr

	var out []float64
	for _, v := range values {
		if v < lower || v > upper {
			out = append(out, v)
		}
	}
	return out
}

// detectZScore flags values with |z| > 3 under population mean and std.
func detectZScore(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	std, err := stats.StandardDeviationPopulation(values)
	if err != nil || std == 0 {
		return nil
	}

	var out []float64
	for _, v := range values {
		z := (v - mean) / std
		if z > zScoreLimit || z < -zScoreLimit {
			out = append(out, v)
		}
	}
	return out
}
