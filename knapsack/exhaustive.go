package knapsack

import (
	"fmt"
	"time"
)

// MaxExhaustiveItems bounds SolveExhaustive: 2²⁵ leaves is already ~33M subsets.
const MaxExhaustiveItems = 25

// exhaustiveRunner enumerates every subset by include/exclude recursion in input order.
type exhaustiveRunner struct {
	items   []Item
	limit   float64
	chosen  []bool
	best    float64
	bestSel []bool
	leaves  int
}

func (r *exhaustiveRunner) walk(i int, weight, value float64) {
	if i == len(r.items) {
		r.leaves++
		if value > r.best {
			r.best = value
			copy(r.bestSel, r.chosen)
		}
		return
	}
	it := r.items[i]
	if weight+it.Weight <= r.limit {
		r.chosen[i] = true
		r.walk(i+1, weight+it.Weight, value+it.Value)
		r.chosen[i] = false
	}
	r.walk(i+1, weight, value)
}

// SolveExhaustive returns the exact optimum by enumerating all feasible subsets.
// It is the reference oracle for the Branch-and-Bound solvers and the verify command.
//
// Ties are resolved in favour of the first optimum met in include-first order.
// Only WithEpsilon affects the enumeration; other options are ignored.
//
// Errors: the validation errors of Solve, plus ErrTooManyItems for n > MaxExhaustiveItems.
//
// Complexity: O(2ⁿ) time, O(n) space.
func SolveExhaustive(items []Item, capacity float64, opts ...Option) (Result, error) {
	cfg := buildOptions(opts)
	if _, err := prepareSearch(items, capacity); err != nil {
		return Result{}, err
	}
	if len(items) > MaxExhaustiveItems {
		return Result{}, fmt.Errorf("%w: n=%d > %d", ErrTooManyItems, len(items), MaxExhaustiveItems)
	}

	start := time.Now()
	r := &exhaustiveRunner{
		items:   items,
		limit:   cfg.capacityLimit(capacity),
		chosen:  make([]bool, len(items)),
		bestSel: make([]bool, len(items)),
	}
	r.walk(0, 0, 0)

	sel := []int{}
	var i int
	for i = range r.bestSel {
		if r.bestSel[i] {
			sel = append(sel, i)
		}
	}

	return Result{
		Value:     r.best,
		Selection: sel,
		Status:    Converged,
		Stats:     Stats{Leaves: r.leaves, Elapsed: time.Since(start)},
	}, nil
}
