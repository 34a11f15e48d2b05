// Package knapsack - validation utilities shared by the exact solvers.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(n) worst case; no hidden allocations.
package knapsack

import "math"

// validateCapacity rejects NaN, ±Inf and negative capacities.
//
// Complexity: O(1).
func validateCapacity(capacity float64) error {
	if math.IsNaN(capacity) || math.IsInf(capacity, 0) {
		return ErrNonFinite
	}
	if capacity < 0 {
		return ErrNegativeCapacity
	}

	return nil
}

// validateItem checks one (value, weight) pair; idx is used for error context only.
//
// Complexity: O(1).
func validateItem(idx int, it Item) error {
	var err error
	switch {
	case math.IsNaN(it.Value) || math.IsInf(it.Value, 0),
		math.IsNaN(it.Weight) || math.IsInf(it.Weight, 0):
		err = ErrNonFinite
	case it.Weight <= 0:
		err = ErrNonPositiveWeight
	case it.Value < 0:
		err = ErrNegativeValue
	default:
		return nil
	}

	return &ItemError{Index: idx, Value: it.Value, Weight: it.Weight, Err: err}
}

// validateItems scans all items and returns the first failure. Finite values whose
// sum overflows are rejected too: every node value and bound is such a partial sum.
//
// Complexity: O(n).
func validateItems(items []Item) error {
	var (
		total float64
		i     int
	)
	for i = range items {
		if err := validateItem(i, items[i]); err != nil {
			return err
		}
		total += items[i].Value
	}
	if math.IsInf(total, 0) {
		return ErrValueOverflow
	}

	return nil
}
