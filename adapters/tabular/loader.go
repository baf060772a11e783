// Package tabular loads delimited or spreadsheet input into an in-memory
// table, with encoding fallback and size guards. Loading is the only fatal
// stage of an analysis.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"tabscope/domain/dataset"
	"tabscope/internal"
	"tabscope/internal/config"
	"tabscope/internal/errors"
)

// nullTokens are the cell values treated as missing, compared lowercase
// and trimmed.
var nullTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
}

// utf8BOM is stripped before decoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodingAttempt is one entry of the ordered decode fallback chain.
type encodingAttempt struct {
	name   string
	decode func([]byte) (string, error)
}

// encodings is tried in order; the first successful decode wins and the
// decoded text goes to the CSV parser exactly once.
var encodings = []encodingAttempt{
	{"utf-8", decodeUTF8},
	{"latin-1", decodeCharmap(charmap.ISO8859_1)},
	{"cp1252", decodeCharmap(charmap.Windows1252)},
	{"iso-8859-1", decodeCharmap(charmap.ISO8859_1)},
}

// Loader reads raw input into dataset tables under the configured guards.
type Loader struct {
	cfg config.Analysis
	log *internal.Logger
}

// NewLoader creates a loader with the given analysis configuration.
func NewLoader(cfg config.Analysis, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.NewDefaultLogger("loader")
	}
	return &Loader{cfg: cfg, log: logger}
}

// LoadCSV reads comma-delimited text from r. Returns the table plus any
// non-fatal warnings (currently only row truncation). Failures are
// LOAD_ERROR.
func (l *Loader) LoadCSV(r io.Reader) (*dataset.Table, []string, error) {
	return l.loadDelimited(r, ',')
}

// LoadTSV reads tab-delimited text from r.
func (l *Loader) LoadTSV(r io.Reader) (*dataset.Table, []string, error) {
	return l.loadDelimited(r, '\t')
}

func (l *Loader) loadDelimited(r io.Reader, comma rune) (*dataset.Table, []string, error) {
	raw, err := l.readAll(r)
	if err != nil {
		return nil, nil, err
	}

	text, err := decodeText(raw)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(errors.LoadError("failed to parse delimited input"), err.Error())
	}

	return l.buildTable(records)
}

// LoadFile loads a CSV or XLSX file by extension.
func (l *Loader) LoadFile(path string) (*dataset.Table, []string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, errors.Wrapf(errors.LoadError("cannot open input file"), "%s", path)
		}
		defer f.Close()
		return l.LoadCSV(f)
	case ".tsv":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, errors.Wrapf(errors.LoadError("cannot open input file"), "%s", path)
		}
		defer f.Close()
		return l.LoadTSV(f)
	case ".xlsx", ".xlsm":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, errors.Wrapf(errors.LoadError("cannot open input file"), "%s", path)
		}
		defer f.Close()
		return l.LoadWorkbook(f)
	}
	return nil, nil, errors.LoadError(fmt.Sprintf("unsupported input format: %s", filepath.Ext(path)))
}

// readAll slurps the stream under the file-size guard.
func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	limit := l.cfg.MaxFileSize
	if limit <= 0 {
		limit = config.Default().MaxFileSize
	}
	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(errors.LoadError("failed to read input stream"), err.Error())
	}
	if int64(len(raw)) > limit {
		return nil, errors.LoadError(fmt.Sprintf("input exceeds maximum size of %d bytes", limit))
	}
	return bytes.TrimPrefix(raw, utf8BOM), nil
}

// buildTable converts parsed records into a table and applies the row and
// column guards. The first record is the header.
func (l *Loader) buildTable(records [][]string) (*dataset.Table, []string, error) {
	if len(records) == 0 {
		return nil, nil, errors.LoadError("input contains no data")
	}
	header := dedupeNames(records[0])
	rows := records[1:]

	if len(rows) == 0 {
		return nil, nil, errors.LoadError("input contains a header but no data rows")
	}
	if len(header) < l.cfg.MinColumns {
		return nil, nil, errors.LoadError(fmt.Sprintf(
			"input must have at least %d columns, got %d", l.cfg.MinColumns, len(header)))
	}

	var warnings []string
	if len(rows) > l.cfg.MaxRows {
		msg := fmt.Sprintf("dataset has %d rows; truncating to %d for analysis", len(rows), l.cfg.MaxRows)
		l.log.Warn("%s", msg)
		warnings = append(warnings, msg)
		rows = rows[:l.cfg.MaxRows]
	}

	table := &dataset.Table{Columns: make([]dataset.Column, len(header))}
	for c, name := range header {
		cells := make([]dataset.Cell, len(rows))
		for r, record := range rows {
			var raw string
			if c < len(record) {
				raw = record[c]
			}
			cells[r] = makeCell(raw)
		}
		table.Columns[c] = dataset.Column{Name: name, Cells: cells}
	}
	return table, warnings, nil
}

// makeCell marks null tokens as missing and keeps everything else raw.
func makeCell(raw string) dataset.Cell {
	if _, ok := nullTokens[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return dataset.Cell{Null: true}
	}
	return dataset.Cell{Raw: raw}
}

// dedupeNames disambiguates repeated header names with positional suffixes.
func dedupeNames(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		}
		if _, ok := seen[name]; !ok {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}

// decodeText walks the encoding fallback chain.
func decodeText(raw []byte) (string, error) {
	for _, enc := range encodings {
		text, err := enc.decode(raw)
		if err != nil {
			continue
		}
		return text, nil
	}
	return "", errors.LoadError("could not decode input with any supported encoding")
}

func decodeUTF8(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("invalid utf-8 byte sequence")
	}
	return string(raw), nil
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) (string, error) {
	return func(raw []byte) (string, error) {
		out, err := cm.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}
