package hypotest

import (
	"gonum.org/v1/gonum/stat/distuv"

	"tabscope/domain/dataset"
	"tabscope/internal/errors"
)

// contingency is an observed-frequency table over two categorical columns.
type contingency struct {
	counts [][]float64
	total  float64
}

// buildContingency crosses two aligned columns over the rows where both are
// non-null. Row/column category order is first-encountered.
func buildContingency(a, b *dataset.Column) contingency {
	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	type pair struct{ r, c string }
	var pairs []pair

	limit := len(a.Cells)
	if len(b.Cells) < limit {
		limit = len(b.Cells)
	}
	for i := 0; i < limit; i++ {
		if a.Cells[i].Null || b.Cells[i].Null {
			continue
		}
		r, c := a.Cells[i].Raw, b.Cells[i].Raw
		if _, ok := rowIdx[r]; !ok {
			rowIdx[r] = len(rowIdx)
		}
		if _, ok := colIdx[c]; !ok {
			colIdx[c] = len(colIdx)
		}
		pairs = append(pairs, pair{r, c})
	}

	ct := contingency{counts: make([][]float64, len(rowIdx))}
	for i := range ct.counts {
		ct.counts[i] = make([]float64, len(colIdx))
	}
	for _, p := range pairs {
		ct.counts[rowIdx[p.r]][colIdx[p.c]]++
		ct.total++
	}
	return ct
}

func (ct contingency) rows() int { return len(ct.counts) }

func (ct contingency) cols() int {
	if len(ct.counts) == 0 {
		return 0
	}
	return len(ct.counts[0])
}

// ChiSquareIndependence tests independence of two categorical columns.
// Degenerate tables (under 2x2, or tables with zero expected counts) return
// an error the runner folds into a silent skip.
func ChiSquareIndependence(a, b *dataset.Column) (stat, p float64, err error) {
	ct := buildContingency(a, b)
	rows, cols := ct.rows(), ct.cols()
	if rows < 2 || cols < 2 {
		return 0, 0, errors.InvalidInput("contingency table must be at least 2x2")
	}

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rowTotals[i] += ct.counts[i][j]
			colTotals[j] += ct.counts[i][j]
		}
	}

	var chi2 float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			expected := rowTotals[i] * colTotals[j] / ct.total
			if expected == 0 {
				return 0, 0, errors.InvalidInput("contingency table has a zero expected frequency")
			}
			d := ct.counts[i][j] - expected
			chi2 += d * d / expected
		}
	}

	df := float64((rows - 1) * (cols - 1))
	dist := distuv.ChiSquared{K: df}
	return chi2, clamp01(dist.Survival(chi2)), nil
}
