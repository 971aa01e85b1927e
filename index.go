package nabo

import (
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Index is the read interface shared by BruteForce and KDTree.
//
// An index keeps a reference to the cloud it was built from. The cloud
// must not be modified while the index is in use.
type Index interface {
	// Knn returns the indices (cloud columns) of the k points nearest to
	// query, ordered by non-decreasing squared distance. Equal distances
	// are ordered by ascending index. Fewer than k indices are returned
	// when fewer candidates exist.
	//
	// When allowSelfMatch is false, cloud points at distance exactly zero
	// from query are excluded.
	Knn(query mat.Vector, k int, allowSelfMatch bool) ([]int, error)

	// KnnNeighbors is Knn with the squared distance of each result.
	KnnNeighbors(query mat.Vector, k int, allowSelfMatch bool) ([]Neighbor, error)

	// Dim returns the dimensionality of the cloud.
	Dim() int

	// Len returns the number of points in the cloud.
	Len() int

	// Bounds returns copies of the per-dimension minimum and maximum over
	// the cloud.
	Bounds() (min, max []float64)

	// Statistics returns a snapshot of the visit counters.
	Statistics() Statistics
}

// Neighbor is a single k-NN result.
type Neighbor struct {
	Index int     // column of the cloud
	Dist2 float64 // squared Euclidean distance to the query
}

// Statistics counts the work done by queries on one index. What a visit is
// depends on the index: a scanned column for BruteForce, a node popped from
// the traversal queue for KDTree.
type Statistics struct {
	LastQueryVisitCount int
	TotalVisitCount     int
}

// cloudIndex holds what every index keeps about its cloud.
type cloudIndex struct {
	cloud    mat.Matrix
	dim      int
	n        int
	minBound []float64
	maxBound []float64

	mu    sync.Mutex
	stats Statistics
}

// init validates cloud and computes its bounding box.
func (c *cloudIndex) init(cloud mat.Matrix) error {
	if cloud == nil {
		return ErrEmptyCloud
	}
	dim, n := cloud.Dims()
	if dim == 0 || n == 0 {
		return ErrEmptyCloud
	}

	c.cloud = cloud
	c.dim = dim
	c.n = n
	c.minBound = make([]float64, dim)
	c.maxBound = make([]float64, dim)
	row := make([]float64, n)
	for j := 0; j < dim; j++ {
		mat.Row(row, j, cloud)
		c.minBound[j] = floats.Min(row)
		c.maxBound[j] = floats.Max(row)
	}
	return nil
}

func (c *cloudIndex) Dim() int { return c.dim }
func (c *cloudIndex) Len() int { return c.n }

func (c *cloudIndex) Bounds() (min, max []float64) {
	return append([]float64(nil), c.minBound...), append([]float64(nil), c.maxBound...)
}

func (c *cloudIndex) Statistics() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// prepare checks the query arguments and returns the query coordinates.
// Nothing is recorded when it fails.
func (c *cloudIndex) prepare(query mat.Vector, k int) ([]float64, error) {
	if query == nil {
		return nil, &DimensionMismatchError{Expected: c.dim, Actual: 0}
	}
	if query.Len() != c.dim {
		return nil, &DimensionMismatchError{Expected: c.dim, Actual: query.Len()}
	}
	if k < 1 {
		return nil, invalidK(k)
	}
	return mat.Col(nil, 0, query), nil
}

// record stores the visit count of a finished query.
func (c *cloudIndex) record(visits int) {
	c.mu.Lock()
	c.stats.LastQueryVisitCount = visits
	c.stats.TotalVisitCount += visits
	c.mu.Unlock()
}

// neighborIndices strips the distances from a result.
func neighborIndices(neighbors []Neighbor) []int {
	idx := make([]int, len(neighbors))
	for i, nb := range neighbors {
		idx[i] = nb.Index
	}
	return idx
}
