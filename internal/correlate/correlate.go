package correlate

import (
	"math"

	"github.com/montanaflynn/stats"

	"tabscope/domain/analysis"
	"tabscope/domain/dataset"
	"tabscope/internal/describe"
)

// strongThreshold is the |r| above which a pair is reported as strong.
const strongThreshold = 0.7

// Matrix computes the Pearson correlation matrix over the given numeric
// columns using pairwise complete observations. Returns nil when fewer than
// two numeric columns are available; this is a skip, not an error.
//
// Degenerate pairs (under two complete observations, or a constant column)
// get coefficient 0 and never appear in the strong list.
func Matrix(t *dataset.Table, numericCols []string) *analysis.CorrelationResult {
	if len(numericCols) < 2 {
		return nil
	}

	vectors := make(map[string][]float64, len(numericCols))
	for _, name := range numericCols {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		vectors[name] = alignedValues(col)
	}
	names := make([]string, 0, len(numericCols))
	for _, name := range numericCols {
		if _, ok := vectors[name]; ok {
			names = append(names, name)
		}
	}
	if len(names) < 2 {
		return nil
	}

	matrix := make(map[string]map[string]float64, len(names))
	for _, name := range names {
		matrix[name] = make(map[string]float64, len(names))
		matrix[name][name] = 1.0
	}

	var strong []analysis.StrongCorrelation
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			r := pairwisePearson(vectors[names[i]], vectors[names[j]])
			matrix[names[i]][names[j]] = r
			matrix[names[j]][names[i]] = r

			if math.Abs(r) > strongThreshold {
				strength := "strong positive"
				if r < 0 {
					strength = "strong negative"
				}
				strong = append(strong, analysis.StrongCorrelation{
					Column1:     names[i],
					Column2:     names[j],
					Correlation: math.Round(r*1000) / 1000,
					Strength:    strength,
				})
			}
		}
	}

	return &analysis.CorrelationResult{
		Method:             "pearson",
		Matrix:             matrix,
		StrongCorrelations: strong,
	}
}

// alignedValues returns one float per row, with NaN marking nulls and
// unparseable cells so that row alignment survives coercion.
func alignedValues(col *dataset.Column) []float64 {
	vec := make([]float64, len(col.Cells))
	for i, cell := range col.Cells {
		if cell.Null {
			vec[i] = math.NaN()
			continue
		}
		v, ok := describe.ParseNumeric(cell.Raw)
		if !ok {
			vec[i] = math.NaN()
			continue
		}
		vec[i] = v
	}
	return vec
}

// pairwisePearson correlates two aligned vectors over the rows where both
// are observed.
func pairwisePearson(x, y []float64) float64 {
	var xs, ys []float64
	for i := range x {
		if i >= len(y) {
			break
		}
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return 0
	}
	r, err := stats.Pearson(xs, ys)
	if err != nil || math.IsNaN(r) {
		return 0
	}
	return r
}
