package chartrec

import (
	"tabscope/domain/charts"
	"tabscope/domain/dataset"
)

// ruleOrder fixes the evaluation order of the rule table so recommendation
// lists are deterministic before sorting.
var ruleOrder = []charts.ChartType{
	charts.Histogram,
	charts.BarChart,
	charts.LineChart,
	charts.ScatterPlot,
	charts.BoxPlot,
	charts.PieChart,
	charts.Heatmap,
	charts.ViolinPlot,
	charts.DensityPlot,
}

// rules is the static requirement table for single-column chart scoring.
// MaxUnique 0 means unbounded.
var rules = map[charts.ChartType]charts.Rule{
	charts.Histogram: {
		Types:       []dataset.ColumnType{dataset.TypeNumeric},
		MinUnique:   5,
		MinSample:   10,
		Description: "Distribution of numerical data",
	},
	charts.BarChart: {
		Types:       []dataset.ColumnType{dataset.TypeCategorical},
		MinUnique:   2,
		MaxUnique:   20,
		MinSample:   5,
		Description: "Comparison of categorical data",
	},
	charts.LineChart: {
		Types:       []dataset.ColumnType{dataset.TypeDatetime, dataset.TypeNumeric},
		MinUnique:   3,
		MinSample:   10,
		Description: "Trends over time or continuous variables",
	},
	charts.ScatterPlot: {
		Types:       []dataset.ColumnType{dataset.TypeNumeric},
		MinUnique:   10,
		MinSample:   20,
		Description: "Relationship between two numerical variables",
	},
	charts.BoxPlot: {
		Types:       []dataset.ColumnType{dataset.TypeNumeric},
		MinUnique:   5,
		MinSample:   10,
		Description: "Distribution and outliers of numerical data",
	},
	charts.PieChart: {
		Types:       []dataset.ColumnType{dataset.TypeCategorical},
		MinUnique:   2,
		MaxUnique:   8,
		MinSample:   5,
		Description: "Proportions of categorical data",
	},
	charts.Heatmap: {
		Types:       []dataset.ColumnType{dataset.TypeNumeric, dataset.TypeCategorical},
		MinUnique:   3,
		MaxUnique:   50,
		MinSample:   10,
		Description: "Correlation matrix or categorical relationships",
	},
	charts.ViolinPlot: {
		Types:       []dataset.ColumnType{dataset.TypeNumeric},
		MinUnique:   5,
		MinSample:   15,
		Description: "Distribution comparison across categories",
	},
	charts.DensityPlot: {
		Types:       []dataset.ColumnType{dataset.TypeNumeric},
		MinUnique:   10,
		MinSample:   20,
		Description: "Probability density of numerical data",
	},
}

// Scoring weights for the single-column formula.
const (
	typeWeight      = 0.4
	minUniqueWeight = 0.2
	maxUniqueWeight = 0.2
	sampleWeight    = 0.2
	shapeBonus      = 0.1
)

// Fixed scores and caps for combination rules; combination fit is closer to
// a binary structural property than a graded one.
const (
	scatterPairScore    = 0.9
	groupedBarScore     = 0.8
	timeSeriesScore     = 0.85
	heatmapScore        = 0.9
	scatterMinNonNull   = 10
	groupedBarMaxGroups = 15
	maxCategoricalPairs = 5
	maxNumericPairs     = 3
	heatmapMinNumeric   = 3
)
