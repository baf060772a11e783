package chartrec

import (
	"fmt"

	"tabscope/domain/charts"
	"tabscope/domain/dataset"
	"tabscope/internal/describe"
)

// Recommend builds the full recommendation set for a classified table:
// per-column scores plus the pairwise and groupwise structural rules.
func (s *Scorer) Recommend(t *dataset.Table, types map[string]dataset.ColumnType) *charts.RecommendationSet {
	set := &charts.RecommendationSet{
		SingleColumn: make(map[string][]charts.Recommendation, len(t.Columns)),
	}

	for i := range t.Columns {
		col := &t.Columns[i]
		set.SingleColumn[col.Name] = s.ScoreColumn(col, types[col.Name])
	}

	numeric := columnsOfType(t, types, dataset.TypeNumeric)
	categorical := columnsOfType(t, types, dataset.TypeCategorical)
	datetime := columnsOfType(t, types, dataset.TypeDatetime)

	set.TwoColumn = append(set.TwoColumn, scatterPairs(numeric)...)
	set.TwoColumn = append(set.TwoColumn, groupedBarPairs(categorical, numeric)...)
	set.TwoColumn = append(set.TwoColumn, timeSeriesPairs(datetime, numeric)...)
	set.MultiColumn = heatmapGroup(numeric)

	return set
}

// columnsOfType returns pointers to the table's columns of one type, in
// table order.
func columnsOfType(t *dataset.Table, types map[string]dataset.ColumnType, want dataset.ColumnType) []*dataset.Column {
	var cols []*dataset.Column
	for i := range t.Columns {
		if types[t.Columns[i].Name] == want {
			cols = append(cols, &t.Columns[i])
		}
	}
	return cols
}

// scatterPairs recommends scatter plots for numeric pairs where both sides
// have enough observed, coercible values.
func scatterPairs(numeric []*dataset.Column) []charts.Recommendation {
	var recs []charts.Recommendation
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			if !suitableForScatter(numeric[i], numeric[j]) {
				continue
			}
			recs = append(recs, combination(charts.ScatterPlot, scatterPairScore,
				[]string{numeric[i].Name, numeric[j].Name},
				fmt.Sprintf("Relationship between %s and %s", numeric[i].Name, numeric[j].Name),
				"Two numerical variables suitable for correlation analysis"))
		}
	}
	return recs
}

// groupedBarPairs recommends grouped bars for low-cardinality categorical
// columns against numeric columns. Only the first few of each side are
// considered to bound the combination count.
func groupedBarPairs(categorical, numeric []*dataset.Column) []charts.Recommendation {
	if len(categorical) > maxCategoricalPairs {
		categorical = categorical[:maxCategoricalPairs]
	}
	if len(numeric) > maxNumericPairs {
		numeric = numeric[:maxNumericPairs]
	}

	var recs []charts.Recommendation
	for _, cat := range categorical {
		if cat.DistinctCount() > groupedBarMaxGroups {
			continue
		}
		for _, num := range numeric {
			recs = append(recs, combination(charts.GroupedBar, groupedBarScore,
				[]string{cat.Name, num.Name},
				fmt.Sprintf("%s by %s", num.Name, cat.Name),
				"Categorical vs numerical comparison"))
		}
	}
	return recs
}

// timeSeriesPairs recommends line charts for every datetime-numeric pair.
func timeSeriesPairs(datetime, numeric []*dataset.Column) []charts.Recommendation {
	var recs []charts.Recommendation
	for _, dt := range datetime {
		for _, num := range numeric {
			recs = append(recs, combination(charts.LineChart, timeSeriesScore,
				[]string{dt.Name, num.Name},
				fmt.Sprintf("%s over time (%s)", num.Name, dt.Name),
				"Time series analysis"))
		}
	}
	return recs
}

// heatmapGroup recommends one correlation heatmap over all numeric columns
// when at least three exist.
func heatmapGroup(numeric []*dataset.Column) []charts.Recommendation {
	if len(numeric) < heatmapMinNumeric {
		return nil
	}
	names := make([]string, len(numeric))
	for i, col := range numeric {
		names[i] = col.Name
	}
	return []charts.Recommendation{combination(charts.Heatmap, heatmapScore,
		names, "Correlation matrix", "Multiple numerical variables for correlation analysis")}
}

func suitableForScatter(a, b *dataset.Column) bool {
	av, bv := a.NonNull(), b.NonNull()
	if len(av) < scatterMinNonNull || len(bv) < scatterMinNonNull {
		return false
	}
	return describe.AllNumeric(av) && describe.AllNumeric(bv)
}

func combination(chartType charts.ChartType, score float64, columns []string, description, reason string) charts.Recommendation {
	return charts.Recommendation{
		ChartType:   chartType,
		Columns:     columns,
		Score:       score,
		Suitable:    score >= charts.SuitabilityThreshold,
		Description: description,
		Reason:      reason,
	}
}
