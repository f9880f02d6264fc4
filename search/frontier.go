package search

import (
	"container/heap"

	"github.com/katalvlaran/mazechase/maze"
)

// Entry is one item of a Frontier.
type Entry struct {
	Node   *maze.Node
	Parent *maze.Node
	// Cost is the accumulated edge cost from the origin.
	Cost int
	// Priority orders the frontier; smaller pops first.
	Priority int

	seq uint64
}

// Frontier is a min-priority queue of entries. Equal priorities pop in
// insertion order, so searches built on it are deterministic.
//
// Decrease-key is lazy: callers push a better entry and skip stale ones when
// they pop an already closed node.
type Frontier struct {
	items entryHeap
	seq   uint64
}

// NewFrontier returns an empty frontier with room for capacity entries.
func NewFrontier(capacity int) *Frontier {
	return &Frontier{items: make(entryHeap, 0, capacity)}
}

// Push adds e. O(log n).
func (f *Frontier) Push(e Entry) {
	f.seq++
	e.seq = f.seq
	heap.Push(&f.items, e)
}

// Pop removes and returns the entry with the smallest priority.
// It panics on an empty frontier.
func (f *Frontier) Pop() Entry { return heap.Pop(&f.items).(Entry) }

// Len returns the number of queued entries, stale ones included.
func (f *Frontier) Len() int { return len(f.items) }

// entryHeap implements heap.Interface ordered by (Priority, seq).
type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(Entry)) }

func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
