package tabular

import (
	"io"

	"github.com/xuri/excelize/v2"

	"tabscope/domain/dataset"
	"tabscope/internal/errors"
)

// LoadWorkbook reads the first sheet of an XLSX workbook through the same
// table builder and guards as delimited input.
func (l *Loader) LoadWorkbook(r io.Reader) (*dataset.Table, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(errors.LoadError("failed to open workbook"), err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.LoadError("workbook contains no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, errors.Wrap(errors.LoadError("failed to read workbook rows"), err.Error())
	}

	return l.buildTable(padRecords(records))
}

// padRecords right-pads ragged rows to the header width; excelize trims
// trailing empty cells per row.
func padRecords(records [][]string) [][]string {
	if len(records) == 0 {
		return records
	}
	width := len(records[0])
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	for i, rec := range records {
		for len(rec) < width {
			rec = append(rec, "")
		}
		records[i] = rec
	}
	return records
}
