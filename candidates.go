package nabo

import (
	"container/heap"
	"math"
)

// candidates keeps the k best neighbours seen so far in a max-heap, worst
// on top. Neighbours are ordered by (Dist2, Index), so eviction is
// deterministic when distances tie.
type candidates struct {
	k    int
	heap knnHeap
}

func newCandidates(k int) *candidates {
	// k may be far larger than the cloud; the heap grows on demand.
	return &candidates{k: k, heap: make(knnHeap, 0, min(k, 64))}
}

func (c *candidates) full() bool { return len(c.heap) >= c.k }

// worst returns the distance a new point has to beat, +Inf until the set
// holds k neighbours.
func (c *candidates) worst() float64 {
	if !c.full() {
		return math.Inf(1)
	}
	return c.heap[0].Dist2
}

// offer inserts the point if it belongs in the current k best.
func (c *candidates) offer(index int, dist2 float64) {
	nb := Neighbor{Index: index, Dist2: dist2}
	if !c.full() {
		heap.Push(&c.heap, nb)
		return
	}
	if neighborLess(nb, c.heap[0]) {
		c.heap[0] = nb
		heap.Fix(&c.heap, 0)
	}
}

// sorted drains the set in ascending order.
func (c *candidates) sorted() []Neighbor {
	out := make([]Neighbor, len(c.heap))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&c.heap).(Neighbor)
	}
	return out
}

func neighborLess(a, b Neighbor) bool {
	if a.Dist2 != b.Dist2 {
		return a.Dist2 < b.Dist2
	}
	return a.Index < b.Index
}

// knnHeap is a max-heap of Neighbor (largest on top).
type knnHeap []Neighbor

func (h knnHeap) Len() int            { return len(h) }
func (h knnHeap) Less(i, j int) bool  { return neighborLess(h[j], h[i]) } // max-heap
func (h knnHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x interface{}) { *h = append(*h, x.(Neighbor)) }
func (h *knnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// searchElement is a pending subtree: the node slot and a lower bound on
// the squared distance from the query to anything stored below it.
type searchElement struct {
	pos     int
	minDist float64
}

// searchQueue is a min-heap of pending subtrees, smallest bound on top.
type searchQueue []searchElement

func (q searchQueue) Len() int { return len(q) }
func (q searchQueue) Less(i, j int) bool {
	if q[i].minDist != q[j].minDist {
		return q[i].minDist < q[j].minDist
	}
	return q[i].pos < q[j].pos
}
func (q searchQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *searchQueue) Push(x interface{}) { *q = append(*q, x.(searchElement)) }
func (q *searchQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
