package advisor

import "sort"

// quantile computes the p-quantile of xs with linear interpolation between
// the two closest order statistics (rank p*(n-1)). This matches the numpy
// default the gold pipeline's test vectors were produced with; gonum's
// stat.Quantile cumulant kinds use a different rank convention at small n.
func quantile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
