package search

import (
	"container/heap"
	"github.com/gomlx/exceptions"
)

// Frontier holds the discovered but not yet expanded nodes (by their arena index), and
// decides which one comes out next.
type Frontier interface {
	// Push node index with the given priority. Only priority based frontiers use it.
	Push(nodeIdx int, priority float64)

	// Pop removes and returns the "best" node index. It panics if the frontier is empty.
	Pop() int

	// IsEmpty returns whether there is nothing else to pop.
	IsEmpty() bool

	// Len returns the number of nodes in the frontier.
	Len() int
}

// NewStack returns a last-in first-out Frontier, used by depth-first search.
func NewStack() Frontier { return &stack{} }

// NewQueue returns a first-in first-out Frontier, used by breadth-first search.
func NewQueue() Frontier { return &queue{} }

// NewPriorityQueue returns a Frontier that pops the lowest priority first, used by
// uniform-cost and A* searches. Equal priorities come out in insertion order.
func NewPriorityQueue() Frontier { return &priorityQueue{} }

type stack struct {
	items []int
}

func (s *stack) Push(nodeIdx int, _ float64) { s.items = append(s.items, nodeIdx) }
func (s *stack) IsEmpty() bool               { return len(s.items) == 0 }
func (s *stack) Len() int                    { return len(s.items) }

func (s *stack) Pop() int {
	if s.IsEmpty() {
		exceptions.Panicf("search: Pop() on empty stack")
	}
	last := len(s.items) - 1
	nodeIdx := s.items[last]
	s.items = s.items[:last]
	return nodeIdx
}

// queue keeps popped items in the front of the slice until they are more than half of it.
type queue struct {
	items []int
	head  int
}

func (q *queue) Push(nodeIdx int, _ float64) { q.items = append(q.items, nodeIdx) }
func (q *queue) IsEmpty() bool               { return q.head == len(q.items) }
func (q *queue) Len() int                    { return len(q.items) - q.head }

func (q *queue) Pop() int {
	if q.IsEmpty() {
		exceptions.Panicf("search: Pop() on empty queue")
	}
	nodeIdx := q.items[q.head]
	q.head++
	if q.head >= 64 && q.head*2 >= len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return nodeIdx
}

type pqItem struct {
	nodeIdx  int
	priority float64
	seq      int // Insertion order, to break ties.
}

// pqHeap implements heap.Interface.
type pqHeap []pqItem

func (h pqHeap) Len() int { return len(h) }
func (h pqHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h pqHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pqHeap) Push(x any)   { *h = append(*h, x.(pqItem)) }
func (h *pqHeap) Pop() any {
	old := *h
	last := len(old) - 1
	item := old[last]
	*h = old[:last]
	return item
}

type priorityQueue struct {
	items   pqHeap
	nextSeq int
}

func (pq *priorityQueue) Push(nodeIdx int, priority float64) {
	heap.Push(&pq.items, pqItem{nodeIdx: nodeIdx, priority: priority, seq: pq.nextSeq})
	pq.nextSeq++
}

func (pq *priorityQueue) Pop() int {
	if pq.IsEmpty() {
		exceptions.Panicf("search: Pop() on empty priority queue")
	}
	return heap.Pop(&pq.items).(pqItem).nodeIdx
}

func (pq *priorityQueue) IsEmpty() bool { return len(pq.items) == 0 }
func (pq *priorityQueue) Len() int      { return len(pq.items) }
