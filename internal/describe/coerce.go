package describe

import (
	"strconv"
	"strings"
)

// ParseNumeric attempts strict numeric conversion of a raw cell value.
func ParseNumeric(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CoerceNumeric converts raw values to floats, dropping ones that fail to
// parse. Row alignment is not preserved.
func CoerceNumeric(values []string) []float64 {
	out := make([]float64, 0, len(values))
	for _, s := range values {
		if v, ok := ParseNumeric(s); ok {
			out = append(out, v)
		}
	}
	return out
}

// AllNumeric reports whether every value parses as a number. False for an
// empty slice.
func AllNumeric(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, s := range values {
		if _, ok := ParseNumeric(s); !ok {
			return false
		}
	}
	return true
}
