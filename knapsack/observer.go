package knapsack

import "sync/atomic"

// Observer receives aggregated search telemetry.
// Implement it to bridge into a monitoring system (see internal/telemetry for Prometheus).
//
// Calls are made from the goroutine running the search; SolveParallel serializes
// RecordImprovement under the incumbent lock and calls RecordSolve once.
type Observer interface {
	// RecordImprovement is called on every strict incumbent improvement.
	RecordImprovement(value float64)

	// RecordSolve is called once per solve, after the search stops.
	// err is non-nil only for invariant violations.
	RecordSolve(stats Stats, status Status, err error)
}

// NoopObserver discards everything.
type NoopObserver struct{}

func (NoopObserver) RecordImprovement(float64)        {}
func (NoopObserver) RecordSolve(Stats, Status, error) {}

// BasicObserver keeps simple in-memory totals across solves.
// Safe for concurrent use.
type BasicObserver struct {
	Solves       atomic.Int64
	Converged    atomic.Int64
	Exceeded     atomic.Int64
	Failures     atomic.Int64
	Expanded     atomic.Int64
	Pruned       atomic.Int64
	Improvements atomic.Int64
}

// RecordImprovement implements Observer.
func (b *BasicObserver) RecordImprovement(float64) {
	b.Improvements.Add(1)
}

// RecordSolve implements Observer.
func (b *BasicObserver) RecordSolve(stats Stats, status Status, err error) {
	b.Solves.Add(1)
	if err != nil {
		b.Failures.Add(1)
		return
	}
	switch status {
	case Converged:
		b.Converged.Add(1)
	case BudgetExceeded:
		b.Exceeded.Add(1)
	}
	b.Expanded.Add(int64(stats.Expanded))
	b.Pruned.Add(int64(stats.PrunedAtPush + stats.PrunedAtPop))
}
