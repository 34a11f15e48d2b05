// Package gen - RNG utilities.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
//   - Batches seed every instance separately through DeriveSeed.
package gen

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// golden is 2⁶⁴/φ, the SplitMix64 increment.
const golden uint64 = 0x9e3779b97f4a7c15

// mix64 is the SplitMix64 output function.
func mix64(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb

	return x ^ (x >> 31)
}

// DeriveSeed returns the seed of instance stream of a batch rooted at parent.
// GenerateBatch uses it so that instance i does not depend on how many came before.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	return int64(mix64(uint64(parent) + (stream+1)*golden))
}

// uniform returns an integer in [lo, hi] as float64; hi < lo collapses to lo.
func uniform(r *rand.Rand, lo, hi int) float64 {
	if hi <= lo {
		return float64(lo)
	}

	return float64(lo + r.Intn(hi-lo+1))
}
