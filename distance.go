package nabo

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SquaredDistance returns the squared Euclidean distance between a and b.
// It preserves the ordering of the true Euclidean distance without the
// square root, so every search in this package ranks by it.
//
// a and b must have the same length; SquaredDistance panics with
// mat.ErrShape otherwise.
func SquaredDistance(a, b mat.Vector) float64 {
	var diff mat.VecDense
	diff.SubVec(a, b)
	return mat.Dot(&diff, &diff)
}

// sqDist is the slice form of SquaredDistance used on the query hot path.
func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// isSelfMatch reports whether point p, at squared distance d2 from q, has
// the same coordinates as q. A distinct point can still round to d2 == 0.
func isSelfMatch(q, p []float64, d2 float64) bool {
	return d2 == 0 && floats.Equal(q, p)
}
