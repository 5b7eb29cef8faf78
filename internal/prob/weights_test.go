package prob

import (
	"math"
	"testing"
)

func TestLogChoose(t *testing.T) {
	testCases := []struct {
		n, k int
		want float64
	}{
		{0, 0, 1},
		{5, 0, 1},
		{5, 5, 1},
		{5, 2, 10},
		{10, 3, 120},
		{52, 5, 2598960},
	}
	for _, test := range testCases {
		got := math.Exp(logChoose(test.n, test.k))
		if math.Abs(got-test.want) > test.want*1e-9 {
			t.Errorf("C(%d,%d) = %v, want %v", test.n, test.k, got, test.want)
		}
	}
	if !math.IsInf(logChoose(3, 4), -1) {
		t.Error("C(3,4) should be impossible")
	}
	if !math.IsInf(logChoose(3, -1), -1) {
		t.Error("C(3,-1) should be impossible")
	}
}

func TestPolyMul(t *testing.T) {
	got := polyMul([]float64{1, 1}, []float64{1, 2, 1})
	want := []float64{1, 3, 3, 1}
	if len(got) != len(want) {
		t.Fatalf("polyMul returned %d coefficients, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("coefficient %d: have %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProducts(t *testing.T) {
	polys := [][]float64{{1, 1}, {2}, {0, 3}}
	rest, full := products(polys)

	if want := []float64{0, 6, 6}; !equalPoly(full, want) {
		t.Errorf("full product: have %v, want %v", full, want)
	}
	wants := [][]float64{{0, 6}, {0, 3, 3}, {2, 2}}
	for i := range polys {
		if !equalPoly(rest[i], wants[i]) {
			t.Errorf("rest[%d]: have %v, want %v", i, rest[i], wants[i])
		}
	}
}

func equalPoly(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
