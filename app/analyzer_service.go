// Package app composes the profiling engine behind a single configurable
// entry point. Stages run sequentially per invocation; each invocation owns
// its table and result graph, so concurrent invocations need no
// coordination.
package app

import (
	"io"

	"tabscope/adapters/tabular"
	"tabscope/domain/analysis"
	"tabscope/domain/charts"
	"tabscope/domain/core"
	"tabscope/domain/dataset"
	"tabscope/internal"
	"tabscope/internal/chartrec"
	"tabscope/internal/classify"
	"tabscope/internal/config"
	"tabscope/internal/correlate"
	"tabscope/internal/describe"
	"tabscope/internal/errors"
	"tabscope/internal/hypotest"
	"tabscope/internal/outliers"
	"tabscope/internal/quality"
)

// maxReportedOutliers caps the outlier list carried in a numeric summary.
const maxReportedOutliers = 10

// maxSampleValues caps the sample values carried in a column profile.
const maxSampleValues = 5

// Options selects which optional stages run and overrides per-request
// thresholds. Zero values fall back to the analyzer configuration.
type Options struct {
	IncludeCorrelation      bool
	IncludeOutliers         bool
	IncludeStatisticalTests bool
	// OutlierMethod overrides the configured method ("iqr" or "zscore").
	OutlierMethod string
	// SignificanceLevel overrides the configured test threshold.
	SignificanceLevel float64
	// Columns restricts the analysis to a subset; at least two must match.
	Columns []string
	// TypeOverrides forces columns to caller-chosen types after automatic
	// classification.
	TypeOverrides map[string]dataset.ColumnType
}

// DefaultOptions mirrors the default analysis request: correlation and
// outliers on, statistical tests opt-in.
func DefaultOptions() Options {
	return Options{
		IncludeCorrelation: true,
		IncludeOutliers:    true,
	}
}

// Analyzer is the orchestrating service over loader, classifier,
// statistics, tests, quality, and chart scoring.
type Analyzer struct {
	cfg        config.Analysis
	log        *internal.Logger
	loader     *tabular.Loader
	classifier *classify.Classifier
	quality    *quality.Scorer
	charts     *chartrec.Scorer
}

// NewAnalyzer validates the configuration and wires the pipeline.
func NewAnalyzer(cfg config.Analysis, logger *internal.Logger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = internal.NewDefaultLogger("analyzer")
	}
	return &Analyzer{
		cfg:        cfg,
		log:        logger,
		loader:     tabular.NewLoader(cfg, logger.WithComponent("loader")),
		classifier: classify.New(cfg.MaxCategories, cfg.SampleSeed),
		quality: &quality.Scorer{
			MissingWarnThreshold: cfg.MissingWarnThreshold,
			MissingFlagThreshold: cfg.MissingFlagThreshold,
		},
		charts: chartrec.New(),
	}, nil
}

// AnalyzeReader loads delimited input and analyzes it. Loading is the only
// fatal stage; afterwards the engine returns best-effort partial results.
func (a *Analyzer) AnalyzeReader(r io.Reader, opts Options) (*analysis.Result, error) {
	table, warnings, err := a.loader.LoadCSV(r)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeTable(table, warnings, opts)
}

// AnalyzeFile loads a CSV or XLSX file and analyzes it.
func (a *Analyzer) AnalyzeFile(path string, opts Options) (*analysis.Result, error) {
	table, warnings, err := a.loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeTable(table, warnings, opts)
}

// AnalyzeTable runs the full pipeline over a loaded table.
func (a *Analyzer) AnalyzeTable(t *dataset.Table, warnings []string, opts Options) (*analysis.Result, error) {
	method, significance, err := a.resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	if len(opts.Columns) > 0 {
		sub := t.Select(opts.Columns)
		if sub.ColumnCount() < 2 {
			return nil, errors.ConfigInvalid("column restriction must leave at least 2 valid columns")
		}
		t = sub
	}

	types := a.classifier.ClassifyTable(t)
	classify.ApplyOverrides(t, types, opts.TypeOverrides)

	result := &analysis.Result{
		ID:          core.NewAnalysisID(),
		Dataset:     datasetInfo(t, types),
		ColumnTypes: types,
		Columns:     columnProfiles(t, types),
		Warnings:    warnings,
	}

	numericValues := make(map[string][]float64)
	for i := range t.Columns {
		col := &t.Columns[i]
		switch types[col.Name] {
		case dataset.TypeNumeric:
			values := describe.CoerceNumeric(col.NonNull())
			numericValues[col.Name] = values
			summary, ok := describe.Numeric(col.Name, values)
			if !ok {
				a.log.Debug("skipping numeric summary for empty column %q", col.Name)
				continue
			}
			outs, err := outliers.Detect(values, method)
			if err == nil && len(outs) > maxReportedOutliers {
				outs = outs[:maxReportedOutliers]
			}
			summary.Outliers = outs
			result.Numeric = append(result.Numeric, summary)
		case dataset.TypeCategorical, dataset.TypeBoolean:
			summary, ok := describe.Categorical(col.Name, col.NonNull())
			if !ok {
				a.log.Debug("skipping categorical summary for empty column %q", col.Name)
				continue
			}
			result.Categorical = append(result.Categorical, summary)
		}
	}

	if opts.IncludeCorrelation {
		result.Correlation = correlate.Matrix(t, numericColumns(t, types))
	}

	if opts.IncludeOutliers {
		outlierMap := make(map[string][]float64)
		for _, name := range numericColumns(t, types) {
			outs, err := outliers.Detect(numericValues[name], method)
			if err != nil || len(outs) == 0 {
				continue
			}
			outlierMap[name] = outs
		}
		if len(outlierMap) > 0 {
			result.Outliers = outlierMap
		}
	}

	if opts.IncludeStatisticalTests {
		runner := &hypotest.Runner{Significance: significance, SampleSeed: a.cfg.SampleSeed}
		result.Tests = runner.Run(t, types)
	}

	result.Quality = a.quality.Score(t, types)
	return result, nil
}

// RecommendCharts produces the secondary output: chart fitness for a table
// that was already classified (types from a prior AnalyzeTable call, or a
// fresh classification when nil).
func (a *Analyzer) RecommendCharts(t *dataset.Table, types map[string]dataset.ColumnType) *charts.RecommendationSet {
	if types == nil {
		types = a.classifier.ClassifyTable(t)
	}
	return a.charts.Recommend(t, types)
}

// RecommendChartsForFile loads a file and scores chart suitability without
// running the full analysis pipeline.
func (a *Analyzer) RecommendChartsForFile(path string) (*charts.RecommendationSet, error) {
	table, _, err := a.loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return a.RecommendCharts(table, nil), nil
}

// resolveOptions folds request overrides into the configured defaults.
func (a *Analyzer) resolveOptions(opts Options) (outliers.Method, float64, error) {
	methodName := opts.OutlierMethod
	if methodName == "" {
		methodName = a.cfg.OutlierMethod
	}
	method, err := outliers.ParseMethod(methodName)
	if err != nil {
		return "", 0, err
	}

	significance := opts.SignificanceLevel
	if significance == 0 {
		significance = a.cfg.SignificanceLevel
	}
	if significance <= 0 || significance >= 1 {
		return "", 0, errors.ConfigInvalid("significance level must be in (0, 1)")
	}
	return method, significance, nil
}

func datasetInfo(t *dataset.Table, types map[string]dataset.ColumnType) dataset.Info {
	counts := make(map[dataset.ColumnType]int, len(dataset.AllColumnTypes))
	for _, ct := range dataset.AllColumnTypes {
		counts[ct] = 0
	}
	for _, ct := range types {
		counts[ct]++
	}
	return dataset.Info{
		Rows:       t.RowCount(),
		Columns:    t.ColumnCount(),
		TypeCounts: counts,
	}
}

func columnProfiles(t *dataset.Table, types map[string]dataset.ColumnType) []dataset.ColumnProfile {
	profiles := make([]dataset.ColumnProfile, 0, len(t.Columns))
	for i := range t.Columns {
		col := &t.Columns[i]
		nonNull := col.NonNull()
		samples := nonNull
		if len(samples) > maxSampleValues {
			samples = samples[:maxSampleValues]
		}
		profiles = append(profiles, dataset.ColumnProfile{
			Name:         col.Name,
			Type:         types[col.Name],
			NonNull:      len(nonNull),
			Nulls:        col.NullCount(),
			Unique:       col.DistinctCount(),
			SampleValues: samples,
		})
	}
	return profiles
}

func numericColumns(t *dataset.Table, types map[string]dataset.ColumnType) []string {
	var names []string
	for i := range t.Columns {
		if types[t.Columns[i].Name] == dataset.TypeNumeric {
			names = append(names, t.Columns[i].Name)
		}
	}
	return names
}
