package describe

import (
	"sort"

	"tabscope/domain/analysis"
)

// topCategories caps the frequency table carried in a categorical summary.
const topCategories = 20

// Categorical computes the frequency profile of one categorical or boolean
// column from its non-null values. Returns false for an empty slice.
// Ties are broken by first-encountered order.
func Categorical(name string, values []string) (analysis.CategoricalSummary, bool) {
	if len(values) == 0 {
		return analysis.CategoricalSummary{}, false
	}

	counts := make(map[string]int, len(values))
	firstSeen := make(map[string]int, len(values))
	order := make([]string, 0, len(values))
	for i, v := range values {
		if _, ok := counts[v]; !ok {
			firstSeen[v] = i
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		ci, cj := counts[order[i]], counts[order[j]]
		if ci != cj {
			return ci > cj
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	dist := make([]analysis.ValueCount, 0, topCategories)
	for _, v := range order {
		if len(dist) == topCategories {
			break
		}
		dist = append(dist, analysis.ValueCount{Value: v, Count: counts[v]})
	}

	return analysis.CategoricalSummary{
		Column:       name,
		Count:        len(values),
		Unique:       len(counts),
		Top:          order[0],
		Freq:         counts[order[0]],
		Distribution: dist,
	}, true
}
