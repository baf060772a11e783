// Package hypotest runs the engine's hypothesis tests: Shapiro-Wilk
// normality per numeric column and chi-square independence per categorical
// pair. A column or pair that cannot be tested is omitted from the results
// rather than failing the batch.
package hypotest

import (
	"fmt"
	"math/rand"

	"tabscope/domain/analysis"
	"tabscope/domain/dataset"
	"tabscope/internal/describe"
)

// normalitySampleCap bounds the cost of the normality test on large columns.
const normalitySampleCap = 5000

// minNormalityValues is the exclusive lower bound on non-null values for
// normality testing.
const minNormalityValues = 3

// Runner executes both test families against a classified table.
type Runner struct {
	// Significance is the p-value threshold that marks a result
	// significant.
	Significance float64
	// SampleSeed fixes the subsample drawn for oversized normality tests.
	SampleSeed int64
}

// Run produces the test results for every eligible column and pair, in
// table order: normality tests first, then independence tests.
func (r *Runner) Run(t *dataset.Table, types map[string]dataset.ColumnType) []analysis.TestResult {
	var results []analysis.TestResult
	results = append(results, r.normalityTests(t, types)...)
	results = append(results, r.independenceTests(t, types)...)
	return results
}

func (r *Runner) normalityTests(t *dataset.Table, types map[string]dataset.ColumnType) []analysis.TestResult {
	var results []analysis.TestResult
	for i := range t.Columns {
		col := &t.Columns[i]
		if types[col.Name] != dataset.TypeNumeric {
			continue
		}
		values := describe.CoerceNumeric(col.NonNull())
		if len(values) <= minNormalityValues {
			continue
		}
		w, p, err := ShapiroWilk(r.subsample(values))
		if err != nil {
			continue
		}
		significant := p < r.Significance
		interpretation := "Data is normally distributed"
		if significant {
			interpretation = "Data is not normally distributed"
		}
		results = append(results, analysis.TestResult{
			TestName:       fmt.Sprintf("Shapiro-Wilk Normality Test (%s)", col.Name),
			Statistic:      w,
			PValue:         p,
			Significant:    significant,
			Interpretation: interpretation,
		})
	}
	return results
}

func (r *Runner) independenceTests(t *dataset.Table, types map[string]dataset.ColumnType) []analysis.TestResult {
	var catCols []*dataset.Column
	for i := range t.Columns {
		if types[t.Columns[i].Name] == dataset.TypeCategorical {
			catCols = append(catCols, &t.Columns[i])
		}
	}
	if len(catCols) < 2 {
		return nil
	}

	var results []analysis.TestResult
	for i := 0; i < len(catCols); i++ {
		for j := i + 1; j < len(catCols); j++ {
			chi2, p, err := ChiSquareIndependence(catCols[i], catCols[j])
			if err != nil {
				continue
			}
			significant := p < r.Significance
			// Phrasing matches the long-standing output downstream
			// consumers key on.
			interpretation := "Variables are not independent"
			if significant {
				interpretation = "Variables are independent"
			}
			results = append(results, analysis.TestResult{
				TestName:       fmt.Sprintf("Chi-square Independence Test (%s vs %s)", catCols[i].Name, catCols[j].Name),
				Statistic:      chi2,
				PValue:         p,
				Significant:    significant,
				Interpretation: interpretation,
			})
		}
	}
	return results
}

// subsample draws a seeded sample of at most normalitySampleCap values.
func (r *Runner) subsample(values []float64) []float64 {
	if len(values) <= normalitySampleCap {
		return values
	}
	rng := rand.New(rand.NewSource(r.SampleSeed))
	idx := rng.Perm(len(values))[:normalitySampleCap]
	out := make([]float64, normalitySampleCap)
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}
