// Package gen builds deterministic 0/1 knapsack instances for tests, benchmarks and
// the CLI.
//
// Instance classes (Pisinger's standard families; R is the data range):
//
//   - Uncorrelated:              w, v ~ U[1, R] independently.
//   - WeaklyCorrelated:          w ~ U[1, R], v = w + U[−R/10, R/10], v ≥ 1.
//   - StronglyCorrelated:        w ~ U[1, R], v = w + R/10.
//   - InverseStronglyCorrelated: v ~ U[1, R], w = v + R/10.
//   - AlmostStronglyCorrelated:  w ~ U[1, R], v = w + R/10 + U[−R/500, R/500].
//   - SubsetSum:                 w ~ U[1, R], v = w.
//
// Capacity is floor(ratio · Σw), at least 1 for non-empty instances.
//
// Determinism: the same class, n and options always yield the same instance.
// WithSeed(0) and the default both use a fixed seed; no time-based randomness.
//
// Option constructors validate and PANIC on meaningless inputs; Generate itself
// returns sentinel errors only.
package gen
