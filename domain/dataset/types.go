package dataset

// ColumnType is the semantic type assigned to a column by the classifier.
// Every column maps to exactly one ColumnType.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeDatetime    ColumnType = "datetime"
	TypeBoolean     ColumnType = "boolean"
	TypeText        ColumnType = "text"
)

// AllColumnTypes lists every semantic type in a stable order.
var AllColumnTypes = []ColumnType{
	TypeNumeric, TypeCategorical, TypeDatetime, TypeBoolean, TypeText,
}

// Valid reports whether t is one of the known column types.
func (t ColumnType) Valid() bool {
	switch t {
	case TypeNumeric, TypeCategorical, TypeDatetime, TypeBoolean, TypeText:
		return true
	}
	return false
}

// Cell is a single nullable scalar value held as its raw textual form.
type Cell struct {
	Raw  string `json:"raw"`
	Null bool   `json:"null"`
}

// Column is an ordered sequence of cells under one name.
type Column struct {
	Name  string `json:"name"`
	Cells []Cell `json:"cells"`
}

// NonNull returns the raw values of all non-null cells, in row order.
func (c *Column) NonNull() []string {
	out := make([]string, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Null {
			out = append(out, cell.Raw)
		}
	}
	return out
}

// NullCount returns the number of null cells.
func (c *Column) NullCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Null {
			n++
		}
	}
	return n
}

// DistinctCount returns the number of distinct non-null raw values.
func (c *Column) DistinctCount() int {
	seen := make(map[string]struct{}, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Null {
			seen[cell.Raw] = struct{}{}
		}
	}
	return len(seen)
}

// Table is an ordered collection of named columns sharing one row count.
type Table struct {
	Columns []Column `json:"columns"`
}

// RowCount returns the shared row count of all columns.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// ColumnNames returns column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i := range t.Columns {
		names[i] = t.Columns[i].Name
	}
	return names
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Select returns a new table holding only the named columns, in the given
// order. Unknown names are ignored; rows are shared, not copied.
func (t *Table) Select(names []string) *Table {
	sub := &Table{}
	for _, name := range names {
		if col, ok := t.Column(name); ok {
			sub.Columns = append(sub.Columns, *col)
		}
	}
	return sub
}

// Truncate caps the table at max rows. A no-op when already within bounds.
func (t *Table) Truncate(max int) {
	if max <= 0 || t.RowCount() <= max {
		return
	}
	for i := range t.Columns {
		t.Columns[i].Cells = t.Columns[i].Cells[:max]
	}
}

// ColumnProfile is the per-column metadata block of an analysis result.
type ColumnProfile struct {
	Name         string     `json:"name"`
	Type         ColumnType `json:"dtype"`
	NonNull      int        `json:"non_null"`
	Nulls        int        `json:"nulls"`
	Unique       int        `json:"unique"`
	SampleValues []string   `json:"sample_values"`
}

// Info summarizes the loaded table.
type Info struct {
	Rows       int                `json:"rows"`
	Columns    int                `json:"columns"`
	TypeCounts map[ColumnType]int `json:"column_types_summary"`
}
