package tabular

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tabscope/internal/errors"
)

func workbookBytes(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLoadWorkbook(t *testing.T) {
	buf := workbookBytes(t, [][]interface{}{
		{"name", "score"},
		{"alice", 91},
		{"bob", 84},
	})

	table, warnings, err := testLoader(nil).LoadWorkbook(buf)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"name", "score"}, table.ColumnNames())
	assert.Equal(t, 2, table.RowCount())

	score, ok := table.Column("score")
	require.True(t, ok)
	assert.Equal(t, []string{"91", "84"}, score.NonNull())
}

// excelize trims trailing empty cells; ragged rows must come back null.
func TestLoadWorkbook_RaggedRows(t *testing.T) {
	buf := workbookBytes(t, [][]interface{}{
		{"a", "b", "c"},
		{"1", "2", "3"},
		{"4"},
	})

	table, _, err := testLoader(nil).LoadWorkbook(buf)
	require.NoError(t, err)

	c, ok := table.Column("c")
	require.True(t, ok)
	assert.Equal(t, 1, c.NullCount())
}

func TestLoadWorkbook_NotAWorkbook(t *testing.T) {
	_, _, err := testLoader(nil).LoadWorkbook(bytes.NewBufferString("a,b\n1,2\n"))
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
}
