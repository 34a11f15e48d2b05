package knapsack

// Test bridge exposing unexported kernels to package knapsack_test only.

// CheckBound exposes checkBound.
var CheckBound = checkBound

// TestFrontier wraps the single-threaded frontier.
type TestFrontier struct{ f *frontier }

// NewTestFrontier returns an empty frontier.
func NewTestFrontier() *TestFrontier { return &TestFrontier{f: newFrontier(0)} }

// Push adds n.
func (t *TestFrontier) Push(n *Node) { t.f.push(n) }

// Pop removes the highest-priority node.
func (t *TestFrontier) Pop() *Node { return t.f.pop() }

// Len returns the number of live nodes.
func (t *TestFrontier) Len() int { return t.f.len() }

// Peek returns the highest-priority node or nil.
func (t *TestFrontier) Peek() *Node { return t.f.peek() }
