package advisor

import (
	"sort"

	"github.com/bakewatt/bakewatt/core/model"
)

// RankExtremes returns the n cheapest hours ascending and the n priciest
// descending. The sort is stable: hours with equal prices keep their original
// time order. n is clamped to [1, MaxTopN] and to the slice length.
func RankExtremes(slice []model.PricePoint, n int) (cheapest, priciest []model.PricePoint) {
	if n < 1 {
		n = 1
	}
	if n > MaxTopN {
		n = MaxTopN
	}
	if n > len(slice) {
		n = len(slice)
	}

	asc := make([]model.PricePoint, len(slice))
	copy(asc, slice)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].Price < asc[j].Price })

	desc := make([]model.PricePoint, len(slice))
	copy(desc, slice)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].Price > desc[j].Price })

	return asc[:n], desc[:n]
}
