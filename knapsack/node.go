package knapsack

import "sort"

// Node is an immutable partial-assignment snapshot.
//
// Items ordered[0..Level] have been decided; Level == -1 only for the root and every
// expansion increases Level by exactly one. Weight never exceeds capacity for a node
// admitted to the frontier, and Bound >= Value always.
//
// Seq is a creation counter used solely as a deterministic tie-break.
type Node struct {
	Level  int
	Weight float64
	Value  float64
	Bound  float64
	Seq    uint64

	// parent is a back-reference only; a node never owns or mutates its parent.
	parent   *Node
	included bool // decision on ordered[Level]
}

// newRoot returns the root node (nothing decided).
func newRoot(seq uint64) *Node {
	return &Node{Level: -1, Seq: seq}
}

// child derives the node deciding ordered[parent.Level+1].
func (n *Node) child(it PreparedItem, include bool, seq uint64) *Node {
	c := &Node{
		Level:    n.Level + 1,
		Weight:   n.Weight,
		Value:    n.Value,
		Seq:      seq,
		parent:   n,
		included: include,
	}
	if include {
		c.Weight += it.Weight
		c.Value += it.Value
	}

	return c
}

// Selection walks the decision path to the root and returns the original indices
// of the included items, ascending. The result is never nil.
//
// Complexity: O(depth + k log k), k = number of included items.
func (n *Node) Selection(ordered []PreparedItem) []int {
	out := make([]int, 0)
	var cur *Node
	for cur = n; cur != nil && cur.Level >= 0; cur = cur.parent {
		if cur.included {
			out = append(out, ordered[cur.Level].Index)
		}
	}
	sort.Ints(out)

	return out
}
