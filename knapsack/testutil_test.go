// Package knapsack_test provides small helpers shared across *_test.go files.
package knapsack_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvbnb/knapsack"
)

const (
	// epsTiny is the tolerance for comparing float objectives built from integers.
	epsTiny = 1e-9

	// seedDet is the base seed for randomized property tests.
	seedDet = int64(20240917)

	// smallN bounds instance sizes checked against the exhaustive oracle.
	smallN = 20
)

// classic returns the textbook instance: optimum 220 with items {1, 2}.
func classic() ([]knapsack.Item, float64) {
	return []knapsack.Item{
		{Value: 60, Weight: 10},
		{Value: 100, Weight: 20},
		{Value: 120, Weight: 30},
	}, 50
}

// randomItems draws n integer-valued items with weights in [1, maxW] and values in [0, maxV].
func randomItems(r *rand.Rand, n, maxW, maxV int) []knapsack.Item {
	out := make([]knapsack.Item, n)
	var i int
	for i = range out {
		out[i] = knapsack.Item{
			Value:  float64(r.Intn(maxV + 1)),
			Weight: float64(1 + r.Intn(maxW)),
		}
	}

	return out
}

// decimalItems draws n items with weights in {0.1, ..., 1.0} and values in {0, 0.1, ..., 1.0}.
func decimalItems(r *rand.Rand, n int) []knapsack.Item {
	out := make([]knapsack.Item, n)
	var i int
	for i = range out {
		out[i] = knapsack.Item{
			Value:  float64(r.Intn(11)) / 10,
			Weight: float64(1+r.Intn(10)) / 10,
		}
	}

	return out
}

// totalWeight sums weights.
func totalWeight(items []knapsack.Item) float64 {
	var s float64
	for _, it := range items {
		s += it.Weight
	}

	return s
}

// mustFeasible asserts that sel is a valid selection whose value matches want.
func mustFeasible(t *testing.T, items []knapsack.Item, capacity float64, sel []int, want float64) {
	t.Helper()
	var w, v float64
	seen := make(map[int]bool, len(sel))
	for i, idx := range sel {
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, len(items))
		require.False(t, seen[idx], "duplicate index %d", idx)
		if i > 0 {
			require.Less(t, sel[i-1], idx, "selection must be ascending")
		}
		seen[idx] = true
		w += items[idx].Weight
		v += items[idx].Value
	}
	require.LessOrEqual(t, w, capacity+epsTiny, "selection exceeds capacity")
	require.InDelta(t, want, v, epsTiny, "selection value mismatch")
}

// Repeat runs fn n times as subtests to surface nondeterminism.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	for i := 0; i < n; i++ {
		t.Run("", fn)
	}
}
