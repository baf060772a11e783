// Package chartrec scores chart-type fitness per column and per column
// combination from classifier output. The requirement table lives in
// rules.go as data; scoring folds the rule checks into a capped score.
package chartrec

import (
	"fmt"
	"sort"

	"tabscope/domain/charts"
	"tabscope/domain/dataset"
)

// Scorer recommends chart types for classified tables.
type Scorer struct{}

// New creates a chart suitability scorer.
func New() *Scorer {
	return &Scorer{}
}

// ScoreColumn scores every chart type against one column, dropping zero
// scores and sorting descending. A column with no non-null values yields no
// recommendations.
func (s *Scorer) ScoreColumn(col *dataset.Column, colType dataset.ColumnType) []charts.Recommendation {
	nonNull := len(col.Cells) - col.NullCount()
	if nonNull == 0 {
		return nil
	}
	unique := col.DistinctCount()

	var recs []charts.Recommendation
	for _, chartType := range ruleOrder {
		rule := rules[chartType]
		score := scoreRule(chartType, rule, colType, unique, nonNull)
		if score <= 0 {
			continue
		}
		recs = append(recs, charts.Recommendation{
			ChartType:   chartType,
			Columns:     []string{col.Name},
			Score:       score,
			Suitable:    score >= charts.SuitabilityThreshold,
			Description: rule.Description,
			Reason:      reason(chartType, colType, unique),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	return recs
}

// scoreRule accumulates the weighted checks: required type, distinct-count
// bounds (the upper bound only counts once the lower bound passes), sample
// size, and a small shape bonus. Capped at 1.0.
func scoreRule(chartType charts.ChartType, rule charts.Rule, colType dataset.ColumnType, unique, sample int) float64 {
	score := 0.0

	if rule.Accepts(colType) {
		score += typeWeight
	}
	if unique >= rule.MinUnique {
		score += minUniqueWeight
		if rule.MaxUnique == 0 || unique <= rule.MaxUnique {
			score += maxUniqueWeight
		}
	}
	if sample >= rule.MinSample {
		score += sampleWeight
	}
	score += bonus(chartType, colType, unique)

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// bonus rewards well-known favorable shapes for specific chart types.
func bonus(chartType charts.ChartType, colType dataset.ColumnType, unique int) float64 {
	switch chartType {
	case charts.Histogram:
		if colType == dataset.TypeNumeric && unique > 5 {
			return shapeBonus
		}
	case charts.BarChart:
		if colType == dataset.TypeCategorical && unique <= 20 {
			return shapeBonus
		}
	case charts.PieChart:
		if colType == dataset.TypeCategorical && unique <= 8 {
			return shapeBonus
		}
	case charts.LineChart:
		if colType == dataset.TypeDatetime {
			return shapeBonus
		}
	}
	return 0
}

// reason renders the human-readable explanation for one recommendation.
func reason(chartType charts.ChartType, colType dataset.ColumnType, unique int) string {
	switch chartType {
	case charts.Histogram:
		return fmt.Sprintf("Shows distribution of %s data with %d unique values", colType, unique)
	case charts.BarChart:
		return fmt.Sprintf("Compares %d categories in %s data", unique, colType)
	case charts.LineChart:
		return fmt.Sprintf("Shows trends over %s data", colType)
	case charts.ScatterPlot:
		return fmt.Sprintf("Analyzes relationships in %s data", colType)
	case charts.BoxPlot:
		return fmt.Sprintf("Shows distribution and outliers in %s data", colType)
	case charts.PieChart:
		return fmt.Sprintf("Shows proportions of %d categories", unique)
	case charts.Heatmap:
		return fmt.Sprintf("Visualizes correlations in %s data", colType)
	case charts.ViolinPlot:
		return fmt.Sprintf("Shows distribution comparison in %s data", colType)
	case charts.DensityPlot:
		return fmt.Sprintf("Shows probability density of %s data", colType)
	}
	return fmt.Sprintf("Suitable for %s data analysis", colType)
}
