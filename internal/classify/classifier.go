// Package classify assigns exactly one semantic type to every column using
// an ordered chain of detectors. The order is a system invariant: boolean
// before numeric keeps 0/1 flags out of the numeric bucket, and numeric
// before datetime keeps integer-coded columns from being read as dates.
package classify

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"tabscope/domain/dataset"
	"tabscope/internal/describe"
)

// datetimeSampleSize caps how many values the datetime detector parses.
const datetimeSampleSize = 10

// booleanPairs are the canonical value pairs a boolean column's distinct
// values must be a subset of, after lowercasing.
var booleanPairs = [][2]string{
	{"true", "false"},
	{"yes", "no"},
	{"y", "n"},
	{"1", "0"},
	{"on", "off"},
}

// datetimeFormats are tried in order when parsing candidate date values.
var datetimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
	"01/02/2006 15:04",
}

// dateMarkers are the lexical hints a raw sample must show before the
// datetime hypothesis is accepted.
var dateMarkers = []string{
	"/", "-", ":",
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// Year bounds for plausibly-dated data.
const (
	minPlausibleYear = 1900
	maxPlausibleYear = 2030
)

// detector is one ordered entry of the heuristic chain.
type detector struct {
	columnType dataset.ColumnType
	match      func(values []string) bool
}

// Classifier runs the detector chain. Classification is a pure function of
// the column content and the configured seed.
type Classifier struct {
	maxCategories int
	seed          int64
	detectors     []detector
}

// New builds a classifier. maxCategories bounds the categorical detector;
// seed fixes the datetime detector's sampling.
func New(maxCategories int, seed int64) *Classifier {
	c := &Classifier{maxCategories: maxCategories, seed: seed}
	c.detectors = []detector{
		{dataset.TypeBoolean, isBoolean},
		{dataset.TypeNumeric, describe.AllNumeric},
		{dataset.TypeDatetime, c.isDatetime},
		{dataset.TypeCategorical, c.isCategorical},
	}
	return c
}

// Classify returns the semantic type of one column. All-null columns are
// text; otherwise the first matching detector wins.
func (c *Classifier) Classify(col *dataset.Column) dataset.ColumnType {
	values := col.NonNull()
	if len(values) == 0 {
		return dataset.TypeText
	}
	for _, d := range c.detectors {
		if d.match(values) {
			return d.columnType
		}
	}
	return dataset.TypeText
}

// ClassifyTable classifies every column of the table.
func (c *Classifier) ClassifyTable(t *dataset.Table) map[string]dataset.ColumnType {
	types := make(map[string]dataset.ColumnType, len(t.Columns))
	for i := range t.Columns {
		types[t.Columns[i].Name] = c.Classify(&t.Columns[i])
	}
	return types
}

// ApplyOverrides forces specific columns to caller-chosen types after
// automatic classification. Overrides for unknown columns or invalid types
// are ignored.
func ApplyOverrides(t *dataset.Table, types map[string]dataset.ColumnType, overrides map[string]dataset.ColumnType) {
	for name, forced := range overrides {
		if !forced.Valid() {
			continue
		}
		if _, ok := t.Column(name); !ok {
			continue
		}
		types[name] = forced
	}
}

// isBoolean checks whether the distinct lowercased values are a subset of
// one canonical pair.
func isBoolean(values []string) bool {
	distinct := make(map[string]struct{}, 2)
	for _, v := range values {
		distinct[strings.ToLower(v)] = struct{}{}
		if len(distinct) > 2 {
			return false
		}
	}
	for _, pair := range booleanPairs {
		if subsetOfPair(distinct, pair) {
			return true
		}
	}
	return false
}

func subsetOfPair(distinct map[string]struct{}, pair [2]string) bool {
	for v := range distinct {
		if v != pair[0] && v != pair[1] {
			return false
		}
	}
	return true
}

// isDatetime samples up to 10 values and accepts the datetime hypothesis
// only when every sampled value parses and all guard conditions hold:
// more than one distinct year, years within [1900, 2030], and at least one
// date-like lexical marker in the raw sample.
func (c *Classifier) isDatetime(values []string) bool {
	sample := c.sample(values, datetimeSampleSize)

	years := make(map[int]struct{}, len(sample))
	minYear, maxYear := maxPlausibleYear+1, minPlausibleYear-1
	for _, v := range sample {
		t, ok := parseDate(v)
		if !ok {
			return false
		}
		y := t.Year()
		years[y] = struct{}{}
		if y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}

	if len(years) <= 1 {
		return false
	}
	if minYear < minPlausibleYear || maxYear > maxPlausibleYear {
		return false
	}

	joined := strings.ToLower(strings.Join(sample, " "))
	for _, marker := range dateMarkers {
		if strings.Contains(joined, marker) {
			return true
		}
	}
	return false
}

// isCategorical accepts columns with a bounded distinct count that is also
// under half the non-null total. A column can fail both bounds and fall
// through to text even when it looks categorical; that asymmetry is kept
// as inherited behavior.
func (c *Classifier) isCategorical(values []string) bool {
	distinct := make(map[string]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}
	unique := len(distinct)
	return unique <= c.maxCategories && float64(unique)/float64(len(values)) < 0.5
}

// sample picks up to n values without replacement using the fixed seed, so
// repeated classification of the same column is deterministic.
func (c *Classifier) sample(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	rng := rand.New(rand.NewSource(c.seed))
	idx := rng.Perm(len(values))[:n]
	sort.Ints(idx)
	out := make([]string, n)
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}

// parseDate tries each supported layout in order.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range datetimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
