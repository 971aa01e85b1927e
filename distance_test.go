package nabo

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const floatTol = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSquaredDistance_IdenticalVectors(t *testing.T) {
	a := mat.NewVecDense(3, []float64{1, 2, 3})
	d := SquaredDistance(a, a)
	if d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestSquaredDistance_HandComputed(t *testing.T) {
	a := mat.NewVecDense(3, []float64{1, 2, 3})
	b := mat.NewVecDense(3, []float64{4, 6, 3})
	// (4-1)^2 + (6-2)^2 + (3-3)^2 = 9+16+0 = 25
	d := SquaredDistance(a, b)
	if !almostEqual(d, 25, floatTol) {
		t.Errorf("expected 25, got %v", d)
	}
}

func TestSquaredDistance_Symmetric(t *testing.T) {
	a := mat.NewVecDense(2, []float64{-1.5, 7})
	b := mat.NewVecDense(2, []float64{3, -2})
	if SquaredDistance(a, b) != SquaredDistance(b, a) {
		t.Errorf("SquaredDistance not symmetric: %v vs %v", SquaredDistance(a, b), SquaredDistance(b, a))
	}
}

func TestSquaredDistance_MismatchedLengthPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for vectors of different length")
		}
	}()
	SquaredDistance(mat.NewVecDense(2, nil), mat.NewVecDense(3, nil))
}

func TestSqDist_MatchesSquaredDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		dims := 1 + rng.Intn(8)
		a := make([]float64, dims)
		b := make([]float64, dims)
		for j := range a {
			a[j] = rng.NormFloat64() * 10
			b[j] = rng.NormFloat64() * 10
		}
		want := SquaredDistance(mat.NewVecDense(dims, a), mat.NewVecDense(dims, b))
		got := sqDist(a, b)
		if !almostEqual(got, want, 1e-9) {
			t.Errorf("trial %d: sqDist = %v, SquaredDistance = %v", trial, got, want)
		}
	}
}

func TestSqDist_Exact(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{3, 4}
	if got := sqDist(a, b); got != 25 {
		t.Errorf("sqDist = %v, want 25", got)
	}
}
