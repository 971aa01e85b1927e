package nabo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBruteForce_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	points := randomPoints(rng, 120, 4)
	bf, err := NewBruteForce(cloudFromPoints(points))
	require.NoError(t, err)

	for q := 0; q < 25; q++ {
		query := points[rng.Intn(len(points))]
		for _, k := range []int{1, 5, 119, 500} {
			for _, self := range []bool{false, true} {
				got, err := bf.KnnNeighbors(mat.NewVecDense(4, query), k, self)
				require.NoError(t, err)
				assert.Equal(t, bruteForceKNN(points, query, k, self), got, "k=%d self=%v", k, self)
			}
		}
	}
}

func TestBruteForce_TiesBrokenByIndex(t *testing.T) {
	// Four points at squared distance 1 from the origin, out of index order
	// geometrically.
	points := [][]float64{{0, -1}, {1, 0}, {-1, 0}, {0, 1}, {9, 9}}
	bf, err := NewBruteForce(cloudFromPoints(points))
	require.NoError(t, err)

	got, err := bf.Knn(mat.NewVecDense(2, []float64{0, 0}), 3, false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestBruteForce_VisitCount(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {0, 0}, {3, 3}}
	bf, err := NewBruteForce(cloudFromPoints(points))
	require.NoError(t, err)
	query := mat.NewVecDense(2, []float64{0, 0})

	_, err = bf.Knn(query, 1, true)
	require.NoError(t, err)
	assert.Equal(t, 4, bf.Statistics().LastQueryVisitCount)

	// The two self matches are skipped, not scanned.
	_, err = bf.Knn(query, 1, false)
	require.NoError(t, err)
	assert.Equal(t, Statistics{LastQueryVisitCount: 2, TotalVisitCount: 6}, bf.Statistics())
}

func TestBruteForce_SelfMatchExcluded(t *testing.T) {
	points := [][]float64{{2, 2}, {3, 2}, {2, 4}}
	bf, err := NewBruteForce(cloudFromPoints(points))
	require.NoError(t, err)

	got, err := bf.Knn(mat.NewVecDense(2, []float64{2, 2}), 10, false)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	got, err = bf.Knn(mat.NewVecDense(2, []float64{2, 2}), 10, true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, got)
}
