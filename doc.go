// Package nabo implements k-nearest-neighbour search over a fixed point
// cloud in d-dimensional Euclidean space.
//
// The cloud is a gonum matrix with one row per dimension and one column per
// point. An index is built once and then answers any number of queries;
// results are cloud column indices ordered by increasing distance.
//
// Basic usage:
//
//	cloud := mat.NewDense(3, n, coords) // 3-D points, one per column
//	idx, err := nabo.NewIndex(cloud, nabo.KindKDTree)
//	neighbors, err := idx.Knn(mat.NewVecDense(3, []float64{x, y, z}), 5, false)
//	// neighbors[0] is the column of the closest point that is not the query itself
//
// # Index kinds
//
// KindKDTree builds a k-d tree stored as an implicit array (node p has
// children 2p+1 and 2p+2). Each node splits on the dimension of widest
// spread at the median point, and queries expand subtrees best-first,
// stopping as soon as no pending subtree can beat the current k-th
// neighbour. KindBruteForce scans the cloud on every query; it needs no
// build and is the reference the tree is tested against.
//
// # Self matches
//
// With allowSelfMatch false, points at distance exactly zero from the
// query are not candidates. This is what registration-style callers want
// when they query with points taken from the cloud itself.
//
// # Statistics
//
// Every index counts visits (scanned columns or expanded tree nodes) for
// the last query and in total. The counters are guarded by a mutex, so
// queries may run concurrently; see [KnnBatch].
package nabo
