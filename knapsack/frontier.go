package knapsack

import (
	"container/heap"
	"sync"
)

// nodePQ is a max-heap of *Node ordered by (Bound desc, Seq asc).
// Each node is pushed at most once and removed exactly once, on pop.
type nodePQ []*Node

// Len returns the number of live nodes.
func (pq nodePQ) Len() int { return len(pq) }

// Less gives higher priority to larger bounds; equal bounds pop in creation order.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].Bound == pq[j].Bound {
		return pq[i].Seq < pq[j].Seq
	}

	return pq[i].Bound > pq[j].Bound
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push is called by heap.Push; x must be a *Node.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*Node)) }

// Pop is called by heap.Pop.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // release the reference for GC
	*pq = old[:n-1]

	return item
}

// frontier is the single-threaded priority queue of live nodes.
type frontier struct {
	pq nodePQ
}

func newFrontier(capHint int) *frontier {
	f := &frontier{pq: make(nodePQ, 0, capHint)}
	heap.Init(&f.pq)

	return f
}

func (f *frontier) push(n *Node) { heap.Push(&f.pq, n) }
func (f *frontier) pop() *Node   { return heap.Pop(&f.pq).(*Node) }
func (f *frontier) len() int     { return f.pq.Len() }

// peek returns the highest-priority node without removing it, or nil.
func (f *frontier) peek() *Node {
	if len(f.pq) == 0 {
		return nil
	}

	return f.pq[0]
}

// sharedFrontier is a frontier safe for concurrent workers.
//
// Termination barrier: take blocks while the queue is empty and another worker is
// still expanding (it may push more nodes); it reports done once the queue is empty
// and no worker is active, or after close.
type sharedFrontier struct {
	mu     sync.Mutex
	cond   *sync.Cond
	f      *frontier
	active int  // workers between take and release
	closed bool // set on budget exhaustion, cancellation or failure
	peak   int
}

func newSharedFrontier(capHint int) *sharedFrontier {
	s := &sharedFrontier{f: newFrontier(capHint)}
	s.cond = sync.NewCond(&s.mu)

	return s
}

// pushAll admits nodes produced by one expansion under a single lock.
func (s *sharedFrontier) pushAll(nodes ...*Node) {
	s.mu.Lock()
	var n *Node
	for _, n = range nodes {
		if n != nil {
			s.f.push(n)
		}
	}
	if l := s.f.len(); l > s.peak {
		s.peak = l
	}
	s.mu.Unlock()
	s.cond.Broadcast()
}

// take pops the best node and marks the caller active. ok=false means the search is over.
func (s *sharedFrontier) take() (n *Node, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.closed && s.f.len() == 0 && s.active > 0 {
		s.cond.Wait()
	}
	if s.closed || s.f.len() == 0 {
		// Wake the remaining waiters so they observe the same condition.
		s.cond.Broadcast()
		return nil, false
	}
	s.active++

	return s.f.pop(), true
}

// release marks the caller idle after an expansion.
func (s *sharedFrontier) release() {
	s.mu.Lock()
	s.active--
	s.mu.Unlock()
	s.cond.Broadcast()
}

// close stops all workers; remaining nodes stay queued for inspection.
func (s *sharedFrontier) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cond.Broadcast()
}

// top returns the best remaining bound and whether any node remains.
func (s *sharedFrontier) top() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := s.f.peek(); n != nil {
		return n.Bound, true
	}

	return 0, false
}
