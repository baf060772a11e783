package charts

import "tabscope/domain/dataset"

// ChartType enumerates the chart families the suitability scorer knows about.
type ChartType string

const (
	Histogram   ChartType = "histogram"
	BarChart    ChartType = "bar_chart"
	LineChart   ChartType = "line_chart"
	ScatterPlot ChartType = "scatter_plot"
	BoxPlot     ChartType = "box_plot"
	PieChart    ChartType = "pie_chart"
	Heatmap     ChartType = "heatmap"
	ViolinPlot  ChartType = "violin_plot"
	DensityPlot ChartType = "density_plot"
	GroupedBar  ChartType = "grouped_bar"
)

// Rule describes the data requirements of one chart type. MaxUnique of 0
// means no upper bound.
type Rule struct {
	Types       []dataset.ColumnType `json:"types"`
	MinUnique   int                  `json:"min_unique"`
	MaxUnique   int                  `json:"max_unique"`
	MinSample   int                  `json:"min_sample"`
	Description string               `json:"description"`
}

// Accepts reports whether the rule's required type set contains t.
func (r Rule) Accepts(t dataset.ColumnType) bool {
	for _, rt := range r.Types {
		if rt == t {
			return true
		}
	}
	return false
}

// SuitabilityThreshold is the score at or above which a chart is marked
// suitable.
const SuitabilityThreshold = 0.7

// Recommendation scores one chart type against one column or column group.
type Recommendation struct {
	ChartType   ChartType `json:"chart_type"`
	Columns     []string  `json:"columns,omitempty"`
	Score       float64   `json:"score"`
	Suitable    bool      `json:"suitable"`
	Description string    `json:"description"`
	Reason      string    `json:"reason"`
}

// RecommendationSet is the secondary output of an analysis: chart fitness
// per single column, per column pair, and per column group.
type RecommendationSet struct {
	SingleColumn map[string][]Recommendation `json:"single_column"`
	TwoColumn    []Recommendation            `json:"two_column"`
	MultiColumn  []Recommendation            `json:"multi_column"`
}
