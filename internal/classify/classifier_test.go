package classify

import (
	"fmt"
	"testing"

	"tabscope/domain/dataset"
)

func column(name string, raw ...string) dataset.Column {
	cells := make([]dataset.Cell, len(raw))
	for i, v := range raw {
		cells[i] = dataset.Cell{Raw: v, Null: v == ""}
	}
	return dataset.Column{Name: name, Cells: cells}
}

func classifyOne(t *testing.T, c *Classifier, values ...string) dataset.ColumnType {
	t.Helper()
	col := column("col", values...)
	return c.Classify(&col)
}

// TestClassify_BooleanBeforeNumeric verifies {0, 1} columns classify as
// boolean even though every value parses as a number.
func TestClassify_BooleanBeforeNumeric(t *testing.T) {
	c := New(50, 1)
	got := classifyOne(t, c, "0", "1", "1", "0", "1")
	if got != dataset.TypeBoolean {
		t.Fatalf("expected boolean for {0,1} column, got %s", got)
	}
}

func TestClassify_BooleanPairs(t *testing.T) {
	c := New(50, 1)
	cases := [][]string{
		{"yes", "no", "yes", "no"},
		{"Yes", "No", "YES", "no"},
		{"true", "false", "true"},
		{"on", "off", "on"},
		{"y", "n", "y"},
	}
	for _, values := range cases {
		if got := classifyOne(t, c, values...); got != dataset.TypeBoolean {
			t.Errorf("expected boolean for %v, got %s", values, got)
		}
	}
}

// t/f is not a canonical pair; two distinct non-pair values fall through
// the chain like any other strings.
func TestClassify_SingleLetterTFNotBoolean(t *testing.T) {
	c := New(50, 1)
	if got := classifyOne(t, c, "T", "F", "t", "f"); got == dataset.TypeBoolean {
		t.Fatal("t/f must not classify as boolean")
	}
}

// Two distinct values that are not a canonical pair stay categorical.
func TestClassify_TwoValuesNotBoolean(t *testing.T) {
	c := New(50, 1)
	got := classifyOne(t, c, "cat", "dog", "cat", "dog", "cat")
	if got != dataset.TypeCategorical {
		t.Fatalf("expected categorical for cat/dog, got %s", got)
	}
}

func TestClassify_Numeric(t *testing.T) {
	c := New(50, 1)
	got := classifyOne(t, c, "1.5", "-2", "3e4", "  7 ", "0.001")
	if got != dataset.TypeNumeric {
		t.Fatalf("expected numeric, got %s", got)
	}
}

func TestClassify_NumericWithNulls(t *testing.T) {
	c := New(50, 1)
	got := classifyOne(t, c, "1", "", "3", "", "5")
	if got != dataset.TypeNumeric {
		t.Fatalf("expected numeric with nulls skipped, got %s", got)
	}
}

func TestClassify_Datetime(t *testing.T) {
	c := New(50, 1)
	got := classifyOne(t, c,
		"2021-01-15", "2022-03-02", "2023-07-09", "2021-11-30", "2022-12-25")
	if got != dataset.TypeDatetime {
		t.Fatalf("expected datetime, got %s", got)
	}
}

// A column of identical years fails the distinct-year guard and falls
// through to categorical or text.
func TestClassify_SingleYearNotDatetime(t *testing.T) {
	c := New(50, 1)
	got := classifyOne(t, c,
		"2020-01-01", "2020-02-01", "2020-03-01", "2020-04-01")
	if got == dataset.TypeDatetime {
		t.Fatal("column with one distinct year should not classify as datetime")
	}
}

func TestClassify_OutOfRangeYearNotDatetime(t *testing.T) {
	c := New(50, 1)
	got := classifyOne(t, c, "1850-01-01", "2150-06-15", "1899-12-31")
	if got == dataset.TypeDatetime {
		t.Fatal("years outside [1900, 2030] should not classify as datetime")
	}
}

func TestClassify_Categorical(t *testing.T) {
	c := New(50, 1)
	got := classifyOne(t, c, "red", "green", "blue", "red", "green", "red", "blue")
	if got != dataset.TypeCategorical {
		t.Fatalf("expected categorical, got %s", got)
	}
}

// The ratio bound is strict: exactly half distinct is not categorical.
func TestClassify_HalfDistinctFallsThrough(t *testing.T) {
	c := New(50, 1)
	got := classifyOne(t, c, "red", "green", "blue", "red", "green", "blue")
	if got != dataset.TypeText {
		t.Fatalf("expected text at the 0.5 distinct ratio boundary, got %s", got)
	}
}

// High-cardinality string columns become text, not categorical.
func TestClassify_HighCardinalityText(t *testing.T) {
	c := New(50, 1)
	values := make([]string, 200)
	for i := range values {
		values[i] = fmt.Sprintf("free text value %d", i)
	}
	if got := classifyOne(t, c, values...); got != dataset.TypeText {
		t.Fatalf("expected text for high-cardinality column, got %s", got)
	}
}

func TestClassify_AllNullIsText(t *testing.T) {
	c := New(50, 1)
	if got := classifyOne(t, c, "", "", ""); got != dataset.TypeText {
		t.Fatalf("expected text for all-null column, got %s", got)
	}
}

// Classification must be deterministic across repeated calls: the sampler
// reseeds per invocation, so results never depend on call order.
func TestClassify_Deterministic(t *testing.T) {
	c := New(50, 7)
	values := make([]string, 500)
	for i := range values {
		values[i] = fmt.Sprintf("20%02d-%02d-%02d", i%10+10, i%12+1, i%28+1)
	}
	col := column("dates", values...)

	first := c.Classify(&col)
	if first != dataset.TypeDatetime {
		t.Fatalf("expected datetime for multi-year date column, got %s", first)
	}
	for i := 0; i < 10; i++ {
		if got := c.Classify(&col); got != first {
			t.Fatalf("classification changed on call %d: %s vs %s", i, got, first)
		}
	}
}

func TestClassifyTable(t *testing.T) {
	table := &dataset.Table{Columns: []dataset.Column{
		column("amount", "10", "20", "30", "40", "50"),
		column("active", "yes", "no", "yes", "no", "yes"),
		column("city", "Oslo", "Lima", "Oslo", "Oslo", "Lima"),
	}}
	c := New(50, 1)
	types := c.ClassifyTable(table)

	want := map[string]dataset.ColumnType{
		"amount": dataset.TypeNumeric,
		"active": dataset.TypeBoolean,
		"city":   dataset.TypeCategorical,
	}
	for name, wt := range want {
		if types[name] != wt {
			t.Errorf("column %q: expected %s, got %s", name, wt, types[name])
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	table := &dataset.Table{Columns: []dataset.Column{
		column("code", "1", "2", "3"),
	}}
	c := New(50, 1)
	types := c.ClassifyTable(table)
	if types["code"] != dataset.TypeNumeric {
		t.Fatalf("precondition: expected numeric, got %s", types["code"])
	}

	ApplyOverrides(table, types, map[string]dataset.ColumnType{
		"code":    dataset.TypeCategorical,
		"missing": dataset.TypeText, // unknown columns are ignored
	})

	if types["code"] != dataset.TypeCategorical {
		t.Errorf("override not applied: got %s", types["code"])
	}
	if _, ok := types["missing"]; ok {
		t.Error("override for unknown column should not add an entry")
	}
}
