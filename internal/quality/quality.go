// Package quality aggregates classifier and table findings into a 0-100
// data quality score with actionable recommendations.
package quality

import (
	"fmt"
	"math"
	"strings"

	"tabscope/domain/analysis"
	"tabscope/domain/dataset"
)

// Penalty weights.
const (
	missingFlagPenalty  = 15
	missingWarnPenalty  = 5
	duplicatePenaltyCap = 20
	varietyPenalty      = 10
	smallDataPenalty    = 15
	minTypeVariety      = 3
	minRowCount         = 100
)

// Scorer derives the quality assessment. Thresholds are explicit so callers
// thread configuration rather than relying on globals.
type Scorer struct {
	// MissingWarnThreshold is the missing fraction that costs 5 points.
	MissingWarnThreshold float64
	// MissingFlagThreshold is the missing fraction that costs 15 points.
	MissingFlagThreshold float64
}

// Score starts at 100, subtracts penalties for missing data, duplicate
// rows, low type variety, and small row counts, and clamps to [0, 100].
// A closing holistic remark is keyed by the final score band.
func (s *Scorer) Score(t *dataset.Table, types map[string]dataset.ColumnType) analysis.QualityAssessment {
	score := 100.0
	var recommendations []string

	rows := t.RowCount()
	for i := range t.Columns {
		col := &t.Columns[i]
		if rows == 0 {
			continue
		}
		missingPct := float64(col.NullCount()) / float64(rows) * 100
		if missingPct > s.MissingFlagThreshold*100 {
			score -= missingFlagPenalty
			recommendations = append(recommendations, fmt.Sprintf(
				"Column '%s' has %.1f%% missing values - consider imputation or removal", col.Name, missingPct))
		} else if missingPct > s.MissingWarnThreshold*100 {
			score -= missingWarnPenalty
			recommendations = append(recommendations, fmt.Sprintf(
				"Column '%s' has %.1f%% missing values - review data collection", col.Name, missingPct))
		}
	}

	if dupes := duplicateRows(t); dupes > 0 {
		dupePct := float64(dupes) / float64(rows) * 100
		score -= math.Min(duplicatePenaltyCap, dupePct)
		recommendations = append(recommendations, fmt.Sprintf(
			"Found %d duplicate rows (%.1f%%) - consider removing duplicates", dupes, dupePct))
	}

	if distinctTypes(types) < minTypeVariety {
		score -= varietyPenalty
		recommendations = append(recommendations,
			"Dataset has limited column variety - consider adding more features")
	}

	if rows < minRowCount {
		score -= smallDataPenalty
		recommendations = append(recommendations,
			"Small dataset size - results may not be statistically significant")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	switch {
	case score > 80:
		recommendations = append(recommendations, "Overall good data quality - ready for analysis")
	case score > 60:
		recommendations = append(recommendations, "Moderate data quality - some improvements recommended")
	default:
		recommendations = append(recommendations, "Data quality needs improvement before reliable analysis")
	}

	return analysis.QualityAssessment{
		Score:           math.Round(score*10) / 10,
		Recommendations: recommendations,
	}
}

// duplicateRows counts rows identical to an earlier row across all columns,
// nulls included.
func duplicateRows(t *dataset.Table) int {
	rows := t.RowCount()
	if rows == 0 || len(t.Columns) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, rows)
	dupes := 0
	var b strings.Builder
	for r := 0; r < rows; r++ {
		b.Reset()
		for c := range t.Columns {
			cell := t.Columns[c].Cells[r]
			if cell.Null {
				b.WriteString("\x00")
			} else {
				b.WriteString(cell.Raw)
			}
			b.WriteString("\x1f")
		}
		key := b.String()
		if _, ok := seen[key]; ok {
			dupes++
		} else {
			seen[key] = struct{}{}
		}
	}
	return dupes
}

func distinctTypes(types map[string]dataset.ColumnType) int {
	set := make(map[dataset.ColumnType]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return len(set)
}
