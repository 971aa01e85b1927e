package nabo

import (
	"container/heap"
	"fmt"
	"io"
	"math/bits"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/kdtree"
)

const (
	leafDim    = -1 // node holds a point and has no children
	invalidDim = -2 // unused slot
)

// KDTree is a k-d tree index with one cloud point per node.
//
// The tree is stored as a complete binary tree in array form:
//   - node p has children at 2*p+1 and 2*p+2, and its parent at (p-1)/2
//   - each internal node splits on the dimension of largest spread among
//     the points below it, at their median
//
// A KDTree is immutable once built. Queries may run concurrently.
type KDTree struct {
	cloudIndex

	coords []float64 // flat copy of the cloud, column after column
	nodes  []node
}

var _ Index = (*KDTree)(nil)

type node struct {
	pos      []float64 // coordinates, a view into KDTree.coords
	splitDim int       // split dimension, leafDim or invalidDim
	index    int       // column of the cloud
}

// buildPoint pairs a point with its cloud column during construction.
type buildPoint struct {
	pos   []float64
	index int
}

// buildPlane orders build points along one dimension. It satisfies
// kdtree.SortSlicer so gonum's selection can partition it in place.
type buildPlane struct {
	points []buildPoint
	dim    int
}

func (p buildPlane) Len() int           { return len(p.points) }
func (p buildPlane) Less(i, j int) bool { return p.points[i].pos[p.dim] < p.points[j].pos[p.dim] }
func (p buildPlane) Swap(i, j int)      { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p buildPlane) Slice(start, end int) kdtree.SortSlicer {
	return buildPlane{points: p.points[start:end], dim: p.dim}
}

func childLeft(pos int) int  { return 2*pos + 1 }
func childRight(pos int) int { return 2*pos + 2 }
func parent(pos int) int     { return (pos - 1) / 2 }

// treeSize returns the number of slots of a complete tree one level deeper
// than the depth reached when n points are split at their median. The
// deepest level is never filled, so up to half the slots stay invalid.
func treeSize(n int) int {
	return 1<<(bits.Len(uint(n-1))+1) - 1
}

// NewKDTree builds a k-d tree over the columns of cloud.
func NewKDTree(cloud mat.Matrix) (*KDTree, error) {
	t := &KDTree{}
	if err := t.init(cloud); err != nil {
		return nil, err
	}

	t.coords = make([]float64, t.n*t.dim)
	points := make([]buildPoint, t.n)
	for i := range points {
		pos := t.coords[i*t.dim : (i+1)*t.dim : (i+1)*t.dim]
		mat.Col(pos, i, cloud)
		points[i] = buildPoint{pos: pos, index: i}
	}

	t.nodes = make([]node, treeSize(t.n))
	for i := range t.nodes {
		t.nodes[i].splitDim = invalidDim
	}

	b := builder{
		tree:   t,
		lo:     make([]float64, t.dim),
		hi:     make([]float64, t.dim),
		spread: make([]float64, t.dim),
	}
	b.buildNodes(points, 0)
	return t, nil
}

// builder carries scratch space reused across the recursive build.
type builder struct {
	tree           *KDTree
	lo, hi, spread []float64
}

// buildNodes stores points in the subtree rooted at slot pos.
func (b *builder) buildNodes(points []buildPoint, pos int) {
	t := b.tree
	if pos >= len(t.nodes) {
		panic(fmt.Sprintf("nabo: slot %d past tree of %d slots", pos, len(t.nodes)))
	}

	switch len(points) {
	case 0:
		t.nodes[pos] = node{splitDim: invalidDim}
		return
	case 1:
		t.nodes[pos] = node{pos: points[0].pos, splitDim: leafDim, index: points[0].index}
		return
	}

	splitDim := b.widestDim(points)
	mid := len(points) / 2
	kdtree.Select(buildPlane{points: points, dim: splitDim}, mid)

	t.nodes[pos] = node{pos: points[mid].pos, splitDim: splitDim, index: points[mid].index}
	b.buildNodes(points[:mid], childLeft(pos))
	b.buildNodes(points[mid+1:], childRight(pos))
}

// widestDim returns the dimension with the largest max-min range over
// points. Ties go to the lowest dimension.
func (b *builder) widestDim(points []buildPoint) int {
	copy(b.lo, points[0].pos)
	copy(b.hi, points[0].pos)
	for _, p := range points[1:] {
		for d, v := range p.pos {
			if v < b.lo[d] {
				b.lo[d] = v
			}
			if v > b.hi[d] {
				b.hi[d] = v
			}
		}
	}
	floats.SubTo(b.spread, b.hi, b.lo)
	return floats.MaxIdx(b.spread)
}

// NumNodes returns the number of slots holding a point, which is always
// the number of points in the cloud.
func (t *KDTree) NumNodes() int {
	count := 0
	for _, nd := range t.nodes {
		if nd.splitDim != invalidDim {
			count++
		}
	}
	return count
}

func (t *KDTree) Knn(query mat.Vector, k int, allowSelfMatch bool) ([]int, error) {
	neighbors, err := t.KnnNeighbors(query, k, allowSelfMatch)
	if err != nil {
		return nil, err
	}
	return neighborIndices(neighbors), nil
}

func (t *KDTree) KnnNeighbors(query mat.Vector, k int, allowSelfMatch bool) ([]Neighbor, error) {
	q, err := t.prepare(query, k)
	if err != nil {
		return nil, err
	}
	neighbors, visits := t.search(q, k, allowSelfMatch)
	t.record(visits)
	return neighbors, nil
}

// search runs a best-first traversal: subtrees are expanded in order of a
// lower bound on their distance to q, and the search stops once the next
// bound is past the current k-th neighbour. Subtrees whose bound equals the
// k-th distance are still expanded, since a tied point with a lower index
// may sit below them.
func (t *KDTree) search(q []float64, k int, allowSelfMatch bool) ([]Neighbor, int) {
	best := newCandidates(k)
	queue := searchQueue{{pos: 0, minDist: 0}}
	visits := 0

	for queue.Len() > 0 {
		e := heap.Pop(&queue).(searchElement)
		visits++
		if best.full() && e.minDist > best.worst() {
			break
		}

		nd := &t.nodes[e.pos]
		d := sqDist(q, nd.pos)
		if (allowSelfMatch || !isSelfMatch(q, nd.pos, d)) && (!best.full() || d <= best.worst()) {
			best.offer(nd.index, d)
		}
		if nd.splitDim == leafDim {
			continue
		}

		// Points equal to the split value may sit on either side, so the
		// near side takes the parent's bound and the far side at least the
		// squared distance to the split plane.
		off := q[nd.splitDim] - nd.pos[nd.splitDim]
		near, far := childLeft(e.pos), childRight(e.pos)
		if off >= 0 {
			near, far = far, near
		}
		t.push(&queue, near, e.minDist)
		t.push(&queue, far, max(e.minDist, off*off))
	}

	return best.sorted(), visits
}

func (t *KDTree) push(queue *searchQueue, pos int, minDist float64) {
	if pos >= len(t.nodes) || t.nodes[pos].splitDim == invalidDim {
		return
	}
	heap.Push(queue, searchElement{pos: pos, minDist: minDist})
}

// Dump writes the tree to w, one node per line, indented by depth. Each
// line shows the node's point and the cell of space its subtree covers.
func (t *KDTree) Dump(w io.Writer) error {
	ew := &errWriter{w: w}
	lo, hi := t.Bounds()
	t.dump(ew, lo, hi, 0, 0)
	return ew.err
}

func (t *KDTree) dump(w *errWriter, lo, hi []float64, pos, depth int) {
	if pos >= len(t.nodes) || t.nodes[pos].splitDim == invalidDim {
		return
	}
	nd := t.nodes[pos]
	indent := strings.Repeat("  ", depth)
	if nd.splitDim == leafDim {
		w.printf("%sleaf #%d %v cell %v-%v\n", indent, nd.index, nd.pos, lo, hi)
		return
	}

	split := nd.pos[nd.splitDim]
	w.printf("%ssplit dim %d at %g: #%d %v cell %v-%v\n", indent, nd.splitDim, split, nd.index, nd.pos, lo, hi)

	leftHi := append([]float64(nil), hi...)
	leftHi[nd.splitDim] = split
	t.dump(w, lo, leftHi, childLeft(pos), depth+1)

	rightLo := append([]float64(nil), lo...)
	rightLo[nd.splitDim] = split
	t.dump(w, rightLo, hi, childRight(pos), depth+1)
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
