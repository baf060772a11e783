package correlate

import (
	"math"
	"testing"

	"tabscope/domain/dataset"
)

func numColumn(name string, raw ...string) dataset.Column {
	cells := make([]dataset.Cell, len(raw))
	for i, v := range raw {
		cells[i] = dataset.Cell{Raw: v, Null: v == ""}
	}
	return dataset.Column{Name: name, Cells: cells}
}

func TestMatrix_PerfectNegative(t *testing.T) {
	table := &dataset.Table{Columns: []dataset.Column{
		numColumn("x", "1", "2", "3", "4", "5"),
		numColumn("y", "10", "8", "6", "4", "2"),
	}}

	result := Matrix(table, []string{"x", "y"})
	if result == nil {
		t.Fatal("expected a correlation result")
	}
	if result.Method != "pearson" {
		t.Errorf("method: got %q", result.Method)
	}
	if r := result.Matrix["x"]["y"]; math.Abs(r+1) > 1e-9 {
		t.Errorf("expected r = -1, got %v", r)
	}

	if len(result.StrongCorrelations) != 1 {
		t.Fatalf("expected one strong pair, got %d", len(result.StrongCorrelations))
	}
	sc := result.StrongCorrelations[0]
	if sc.Strength != "strong negative" {
		t.Errorf("strength: got %q", sc.Strength)
	}
	if sc.Correlation != -1 {
		t.Errorf("rounded coefficient: got %v", sc.Correlation)
	}
}

func TestMatrix_SymmetryAndDiagonal(t *testing.T) {
	table := &dataset.Table{Columns: []dataset.Column{
		numColumn("a", "1", "2", "3", "4"),
		numColumn("b", "2", "1", "4", "3"),
		numColumn("c", "5", "5", "6", "8"),
	}}

	result := Matrix(table, []string{"a", "b", "c"})
	if result == nil {
		t.Fatal("expected a correlation result")
	}
	names := []string{"a", "b", "c"}
	for _, n := range names {
		if result.Matrix[n][n] != 1.0 {
			t.Errorf("diagonal %q: got %v", n, result.Matrix[n][n])
		}
	}
	for _, p := range names {
		for _, q := range names {
			if result.Matrix[p][q] != result.Matrix[q][p] {
				t.Errorf("asymmetry at (%s, %s): %v vs %v", p, q, result.Matrix[p][q], result.Matrix[q][p])
			}
		}
	}
}

func TestMatrix_FewerThanTwoColumns(t *testing.T) {
	table := &dataset.Table{Columns: []dataset.Column{
		numColumn("x", "1", "2", "3"),
	}}
	if result := Matrix(table, []string{"x"}); result != nil {
		t.Fatal("expected nil for a single numeric column")
	}
	if result := Matrix(table, nil); result != nil {
		t.Fatal("expected nil for no numeric columns")
	}
}

// Rows where either value is missing are dropped pairwise, not listwise.
func TestMatrix_PairwiseComplete(t *testing.T) {
	table := &dataset.Table{Columns: []dataset.Column{
		numColumn("x", "1", "", "3", "4", "5"),
		numColumn("y", "2", "9", "6", "8", "10"),
	}}

	result := Matrix(table, []string{"x", "y"})
	if result == nil {
		t.Fatal("expected a correlation result")
	}
	// Complete pairs: (1,2) (3,6) (4,8) (5,10) -> exact proportionality.
	if r := result.Matrix["x"]["y"]; math.Abs(r-1) > 1e-9 {
		t.Errorf("expected r = 1 over complete pairs, got %v", r)
	}
}

// A constant column has zero variance; the pair gets 0 and never reaches
// the strong list.
func TestMatrix_ConstantColumn(t *testing.T) {
	table := &dataset.Table{Columns: []dataset.Column{
		numColumn("x", "1", "2", "3", "4"),
		numColumn("k", "7", "7", "7", "7"),
	}}

	result := Matrix(table, []string{"x", "k"})
	if result == nil {
		t.Fatal("expected a correlation result")
	}
	if r := result.Matrix["x"]["k"]; r != 0 {
		t.Errorf("degenerate pair: expected 0, got %v", r)
	}
	if len(result.StrongCorrelations) != 0 {
		t.Errorf("degenerate pair must not be strong: %+v", result.StrongCorrelations)
	}
}

func TestMatrix_WeakPairNotStrong(t *testing.T) {
	table := &dataset.Table{Columns: []dataset.Column{
		numColumn("x", "1", "2", "3", "4", "5", "6"),
		numColumn("y", "3", "1", "4", "1", "5", "2"),
	}}

	result := Matrix(table, []string{"x", "y"})
	if result == nil {
		t.Fatal("expected a correlation result")
	}
	if r := result.Matrix["x"]["y"]; math.Abs(r) > 0.5 {
		t.Fatalf("fixture should correlate weakly, got r = %v", r)
	}
	if len(result.StrongCorrelations) != 0 {
		t.Errorf("weak pair reported as strong: %+v", result.StrongCorrelations)
	}
}
