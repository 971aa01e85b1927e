package nabo

import "gonum.org/v1/gonum/mat"

// BruteForce answers queries by scanning every point of the cloud. It has
// no build cost and serves both as the reference for KDTree and as the
// better choice for small clouds.
type BruteForce struct {
	cloudIndex
}

var _ Index = (*BruteForce)(nil)

// NewBruteForce returns a brute-force index over the columns of cloud.
func NewBruteForce(cloud mat.Matrix) (*BruteForce, error) {
	b := &BruteForce{}
	if err := b.init(cloud); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BruteForce) Knn(query mat.Vector, k int, allowSelfMatch bool) ([]int, error) {
	neighbors, err := b.KnnNeighbors(query, k, allowSelfMatch)
	if err != nil {
		return nil, err
	}
	return neighborIndices(neighbors), nil
}

func (b *BruteForce) KnnNeighbors(query mat.Vector, k int, allowSelfMatch bool) ([]Neighbor, error) {
	q, err := b.prepare(query, k)
	if err != nil {
		return nil, err
	}

	best := newCandidates(k)
	col := make([]float64, b.dim)
	visits := 0
	for i := 0; i < b.n; i++ {
		mat.Col(col, i, b.cloud)
		d := sqDist(q, col)
		if !allowSelfMatch && isSelfMatch(q, col, d) {
			continue
		}
		visits++
		// Columns arrive in index order, so a tie never displaces the k-th.
		if !best.full() || d < best.worst() {
			best.offer(i, d)
		}
	}

	b.record(visits)
	return best.sorted(), nil
}
