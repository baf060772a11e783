package app

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabscope/domain/dataset"
	"tabscope/internal/config"
	"tabscope/internal/errors"
)

// sampleCSV builds a dataset with one column of every interesting type and
// one planted outlier in the amount column.
func sampleCSV(rows int) string {
	var b strings.Builder
	b.WriteString("amount,category,active,signup,notes\n")
	for i := 0; i < rows; i++ {
		amount := fmt.Sprintf("%d", i%40+10)
		if i == rows-1 {
			amount = "100000"
		}
		fmt.Fprintf(&b, "%s,%s,%s,20%02d-0%d-15,note %d\n",
			amount,
			[]string{"red", "green", "blue"}[i%3],
			[]string{"yes", "no"}[i%2],
			i%10+15, i%9+1, i)
	}
	return b.String()
}

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(config.Default(), nil)
	require.NoError(t, err)
	return a
}

func TestAnalyzeReader_FullPipeline(t *testing.T) {
	a := newTestAnalyzer(t)
	result, err := a.AnalyzeReader(strings.NewReader(sampleCSV(200)), DefaultOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, string(result.ID))
	assert.Equal(t, 200, result.Dataset.Rows)
	assert.Equal(t, 5, result.Dataset.Columns)

	assert.Equal(t, dataset.TypeNumeric, result.ColumnTypes["amount"])
	assert.Equal(t, dataset.TypeCategorical, result.ColumnTypes["category"])
	assert.Equal(t, dataset.TypeBoolean, result.ColumnTypes["active"])
	assert.Equal(t, dataset.TypeDatetime, result.ColumnTypes["signup"])
	assert.Equal(t, dataset.TypeText, result.ColumnTypes["notes"])

	require.Len(t, result.Columns, 5)
	assert.LessOrEqual(t, len(result.Columns[0].SampleValues), 5)

	require.Len(t, result.Numeric, 1)
	num := result.Numeric[0]
	assert.Equal(t, "amount", num.Column)
	assert.Equal(t, 200, num.Count)
	assert.Contains(t, num.Outliers, 100000.0)

	// category and active both get frequency summaries.
	require.Len(t, result.Categorical, 2)

	// One numeric column: correlation is a silent skip.
	assert.Nil(t, result.Correlation)

	require.Contains(t, result.Outliers, "amount")
	assert.Contains(t, result.Outliers["amount"], 100000.0)

	// Tests are opt-in and off by default.
	assert.Empty(t, result.Tests)

	assert.GreaterOrEqual(t, result.Quality.Score, 0.0)
	assert.LessOrEqual(t, result.Quality.Score, 100.0)
	assert.NotEmpty(t, result.Quality.Recommendations)
}

func TestAnalyzeReader_WithTests(t *testing.T) {
	a := newTestAnalyzer(t)
	opts := DefaultOptions()
	opts.IncludeStatisticalTests = true

	result, err := a.AnalyzeReader(strings.NewReader(sampleCSV(200)), opts)
	require.NoError(t, err)
	require.NotEmpty(t, result.Tests)
	assert.Equal(t, "Shapiro-Wilk Normality Test (amount)", result.Tests[0].TestName)
}

func TestAnalyzeReader_StagesDisabled(t *testing.T) {
	a := newTestAnalyzer(t)
	opts := DefaultOptions()
	opts.IncludeCorrelation = false
	opts.IncludeOutliers = false

	result, err := a.AnalyzeReader(strings.NewReader(sampleCSV(50)), opts)
	require.NoError(t, err)
	assert.Nil(t, result.Correlation)
	assert.Nil(t, result.Outliers)
}

func TestAnalyzeReader_CorrelationAcrossColumns(t *testing.T) {
	var b strings.Builder
	b.WriteString("x,y\n")
	for i := 1; i <= 50; i++ {
		fmt.Fprintf(&b, "%d,%d\n", i, i*3)
	}

	a := newTestAnalyzer(t)
	result, err := a.AnalyzeReader(strings.NewReader(b.String()), DefaultOptions())
	require.NoError(t, err)

	require.NotNil(t, result.Correlation)
	assert.Equal(t, "pearson", result.Correlation.Method)
	require.Len(t, result.Correlation.StrongCorrelations, 1)
	assert.Equal(t, "strong positive", result.Correlation.StrongCorrelations[0].Strength)
}

func TestAnalyzeTable_ColumnRestriction(t *testing.T) {
	a := newTestAnalyzer(t)
	opts := DefaultOptions()
	opts.Columns = []string{"amount", "category"}

	result, err := a.AnalyzeReader(strings.NewReader(sampleCSV(60)), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Dataset.Columns)
	assert.NotContains(t, result.ColumnTypes, "notes")
}

func TestAnalyzeTable_RestrictionTooNarrow(t *testing.T) {
	a := newTestAnalyzer(t)
	opts := DefaultOptions()
	opts.Columns = []string{"amount", "no_such_column"}

	_, err := a.AnalyzeReader(strings.NewReader(sampleCSV(60)), opts)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
}

func TestAnalyzeTable_TypeOverride(t *testing.T) {
	a := newTestAnalyzer(t)
	opts := DefaultOptions()
	opts.TypeOverrides = map[string]dataset.ColumnType{
		"amount": dataset.TypeCategorical,
	}

	result, err := a.AnalyzeReader(strings.NewReader(sampleCSV(60)), opts)
	require.NoError(t, err)
	assert.Equal(t, dataset.TypeCategorical, result.ColumnTypes["amount"])
	assert.Empty(t, result.Numeric)
}

func TestAnalyzeReader_BadOptions(t *testing.T) {
	a := newTestAnalyzer(t)

	opts := DefaultOptions()
	opts.OutlierMethod = "mad"
	_, err := a.AnalyzeReader(strings.NewReader(sampleCSV(10)), opts)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))

	opts = DefaultOptions()
	opts.SignificanceLevel = 1.5
	_, err = a.AnalyzeReader(strings.NewReader(sampleCSV(10)), opts)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
}

func TestAnalyzeReader_LoadFailureIsFatal(t *testing.T) {
	a := newTestAnalyzer(t)
	_, err := a.AnalyzeReader(strings.NewReader("single\n1\n"), DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
}

func TestAnalyzeReader_TruncationWarningPropagates(t *testing.T) {
	cfg := config.Default()
	cfg.MaxRows = 20
	a, err := NewAnalyzer(cfg, nil)
	require.NoError(t, err)

	result, err := a.AnalyzeReader(strings.NewReader(sampleCSV(50)), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 20, result.Dataset.Rows)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "truncating")
}

func TestNewAnalyzer_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MinColumns = 0
	_, err := NewAnalyzer(cfg, nil)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
}

func TestRecommendCharts(t *testing.T) {
	var b strings.Builder
	b.WriteString("x,y,z\n")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "%d,%d,%d\n", i, i*2, 90-i)
	}

	a := newTestAnalyzer(t)
	table, _, err := a.loader.LoadCSV(strings.NewReader(b.String()))
	require.NoError(t, err)

	set := a.RecommendCharts(table, nil)
	require.NotNil(t, set)
	assert.Len(t, set.SingleColumn, 3)
	assert.NotEmpty(t, set.TwoColumn)
	require.Len(t, set.MultiColumn, 1)
	assert.Equal(t, []string{"x", "y", "z"}, set.MultiColumn[0].Columns)
}
