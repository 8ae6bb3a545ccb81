package topo

import "sort"

// medianOrZero computes the median of values, averaging the two middle
// elements for even counts. Empty input yields 0 so degenerate datasets
// surface as zero-valued aggregates rather than NaN.
func medianOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
