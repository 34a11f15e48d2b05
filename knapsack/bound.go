// Package knapsack - fractional-relaxation upper bound.
//
// Starting from the node's accumulated (value, weight), walk the ranked items after
// node.Level, adding whole items while they fit. The first item that no longer fits
// contributes value·(capacity − weight)/weight and the walk stops. Because items are
// ranked by density, this equals the optimum of the continuous relaxation of the
// remaining subproblem, which dominates every integral completion: pruning a node
// with Bound <= incumbent never discards the true optimum.
package knapsack

import "math"

// Bound returns an admissible upper bound on the best value reachable from n.
//
// Contracts:
//   - ordered must come from Prepare (density-descending).
//   - If no items remain after n.Level, the bound equals n.Value exactly.
//   - If n.Weight > capacity, the node is infeasible and the bound is 0.
//   - The solvers pass capacity already widened by Options.Epsilon.
//
// Complexity: O(n) time, O(1) space.
func Bound(n Node, ordered []PreparedItem, capacity float64) float64 {
	if n.Weight > capacity {
		return 0
	}
	var (
		value  = n.Value
		weight = n.Weight
		j      int
		it     PreparedItem
	)
	for j = n.Level + 1; j < len(ordered); j++ {
		it = ordered[j]
		if weight+it.Weight <= capacity {
			weight += it.Weight
			value += it.Value
			continue
		}
		// Fractional share of the first item that does not fit whole. The share is
		// below one, so the product stays under it.Value and cannot overflow.
		value += it.Value * ((capacity - weight) / it.Weight)
		break
	}

	return value
}

// checkBound verifies the admissibility preconditions the driver relies on.
// A violation means Bound is defective and the search must abort.
func checkBound(n *Node) error {
	b := n.Bound
	if math.IsNaN(b) || math.IsInf(b, 0) || b < 0 || b < n.Value {
		return &InvariantError{Level: n.Level, Seq: n.Seq, Value: n.Value, Bound: b}
	}

	return nil
}
