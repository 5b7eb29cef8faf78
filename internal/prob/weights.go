package prob

import "math"

// logChoose returns ln C(n, k), or -Inf when the term is impossible.
// Binomials over the interior region overflow float64 well before any
// interesting board does, so all weighting runs in log space.
func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}

// polyMul multiplies two mine-count polynomials: coefficient i holds the
// number of ways to place exactly i mines.
func polyMul(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		if av == 0 {
			continue
		}
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// products returns for every index i the product of all polynomials
// except polys[i], plus the product over all of them. Computed from
// prefix and suffix runs so each entry comes out in one multiplication.
func products(polys [][]float64) (rest [][]float64, full []float64) {
	n := len(polys)
	one := []float64{1}
	prefix := make([][]float64, n+1)
	suffix := make([][]float64, n+1)
	prefix[0], suffix[n] = one, one
	for i := range n {
		prefix[i+1] = polyMul(prefix[i], polys[i])
		suffix[n-1-i] = polyMul(polys[n-1-i], suffix[n-i])
	}
	rest = make([][]float64, n)
	for i := range n {
		rest[i] = polyMul(prefix[i], suffix[i+1])
	}
	return rest, prefix[n]
}
