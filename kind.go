package nabo

import "gonum.org/v1/gonum/mat"

// Kind selects the search strategy of an index.
type Kind string

const (
	KindAuto       Kind = "auto"
	KindBruteForce Kind = "brute_force"
	KindKDTree     Kind = "kdtree"
)

const (
	// autoBruteForceMaxPoints is the cloud size up to which KindAuto skips
	// the tree: a scan of this many points costs about as much as the
	// traversal bookkeeping.
	autoBruteForceMaxPoints = 32

	// autoKDTreeMaxDims is the dimensionality above which KindAuto skips
	// the tree: median splits stop pruning and queries visit most nodes.
	autoKDTreeMaxDims = 60
)

// selectKind resolves KindAuto into a concrete kind from the shape of the
// cloud. Other kinds are returned unchanged.
func selectKind(kind Kind, cloud mat.Matrix) Kind {
	if kind != KindAuto || cloud == nil {
		return kind
	}
	dims, n := cloud.Dims()
	if n <= autoBruteForceMaxPoints || dims > autoKDTreeMaxDims {
		return KindBruteForce
	}
	return KindKDTree
}
