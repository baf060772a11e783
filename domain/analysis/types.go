package analysis

import (
	"tabscope/domain/core"
	"tabscope/domain/dataset"
)

// NumericSummary holds descriptive statistics for one numeric column.
// Quantiles use linear interpolation; Std is the population deviation.
type NumericSummary struct {
	Column   string    `json:"column"`
	Count    int       `json:"count"`
	Mean     float64   `json:"mean"`
	Std      float64   `json:"std"`
	Min      float64   `json:"min"`
	Q1       float64   `json:"q1"`
	Median   float64   `json:"median"`
	Q3       float64   `json:"q3"`
	Max      float64   `json:"max"`
	Skewness float64   `json:"skewness"`
	Kurtosis float64   `json:"kurtosis"`
	IQR      float64   `json:"iqr"`
	Outliers []float64 `json:"outliers,omitempty"`
}

// CategoricalSummary holds the frequency profile of one categorical or
// boolean column.
type CategoricalSummary struct {
	Column       string       `json:"column"`
	Count        int          `json:"count"`
	Unique       int          `json:"unique"`
	Top          string       `json:"top"`
	Freq         int          `json:"freq"`
	Distribution []ValueCount `json:"distribution"`
}

// ValueCount is one entry of a frequency table. Order is descending by
// count with first-encountered values winning ties.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// StrongCorrelation is an unordered column pair with |r| > 0.7.
type StrongCorrelation struct {
	Column1     string  `json:"column1"`
	Column2     string  `json:"column2"`
	Correlation float64 `json:"correlation"`
	Strength    string  `json:"strength"` // "strong positive" or "strong negative"
}

// CorrelationResult is the Pearson matrix over numeric columns plus the
// extracted strong pairs. Nil when fewer than two numeric columns exist.
type CorrelationResult struct {
	Method             string                        `json:"method"`
	Matrix             map[string]map[string]float64 `json:"matrix"`
	StrongCorrelations []StrongCorrelation           `json:"strong_correlations"`
}

// TestResult is the outcome of one hypothesis test.
type TestResult struct {
	TestName       string  `json:"test_name"`
	Statistic      float64 `json:"statistic"`
	PValue         float64 `json:"p_value"`
	Significant    bool    `json:"significant"`
	Interpretation string  `json:"interpretation"`
}

// QualityAssessment is the 0-100 data quality score with its findings.
type QualityAssessment struct {
	Score           float64  `json:"score"`
	Recommendations []string `json:"recommendations"`
}

// Result is the primary output of one analysis invocation. All fields are
// immutable once the invocation returns; optional stages leave their fields
// nil rather than failing.
type Result struct {
	ID          core.AnalysisID               `json:"id"`
	Dataset     dataset.Info                  `json:"dataset_info"`
	ColumnTypes map[string]dataset.ColumnType `json:"column_types"`
	Columns     []dataset.ColumnProfile       `json:"columns_info"`
	Numeric     []NumericSummary              `json:"numerical_stats"`
	Categorical []CategoricalSummary          `json:"categorical_stats"`
	Correlation *CorrelationResult            `json:"correlation_analysis,omitempty"`
	Outliers    map[string][]float64          `json:"outlier_analysis,omitempty"`
	Tests       []TestResult                  `json:"statistical_tests,omitempty"`
	Quality     QualityAssessment             `json:"data_quality"`
	Warnings    []string                      `json:"warnings,omitempty"`
}
