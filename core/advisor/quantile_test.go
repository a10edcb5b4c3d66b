package advisor

import (
	"math"
	"testing"
)

func TestQuantileLinearInterpolation(t *testing.T) {
	cases := []struct {
		name string
		xs   []float64
		p    float64
		want float64
	}{
		{"median even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"median odd", []float64{1, 2, 3}, 0.5, 2},
		{"p33 of four", []float64{1, 2, 3, 4}, 0.33, 1.99},
		{"p66 of four", []float64{1, 2, 3, 4}, 0.66, 2.98},
		{"zero", []float64{3, 1, 2}, 0, 1},
		{"one", []float64{3, 1, 2}, 1, 3},
		{"single", []float64{42}, 0.33, 42},
		{"unsorted input", []float64{4, 1, 3, 2}, 0.5, 2.5},
	}
	for _, tc := range cases {
		if got := quantile(tc.xs, tc.p); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: quantile = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestQuantileDoesNotMutateInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	quantile(xs, 0.5)
	if xs[0] != 3 || xs[1] != 1 || xs[2] != 2 {
		t.Fatalf("input mutated: %v", xs)
	}
}

func TestQuantileEmpty(t *testing.T) {
	if got := quantile(nil, 0.5); got != 0 {
		t.Fatalf("empty quantile = %v", got)
	}
}
