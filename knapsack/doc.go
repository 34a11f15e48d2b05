// Package knapsack provides an exact best-first Branch-and-Bound (BnB) solver for
// 0/1 selection problems with a single separable capacity constraint.
//
// Overview:
//
//   - Items are ranked once by value density (Value/Weight, descending; ties by
//     original index) and stay read-only for the whole search.
//   - Every partial assignment is a Node carrying an admissible upper bound computed
//     by the fractional (LP) relaxation: greedy whole items, then a fractional share
//     of the first item that no longer fits.
//   - A max-priority Frontier always expands the node with the most optimistic bound;
//     equal bounds are popped in creation order, so runs are fully reproducible.
//   - Nodes whose bound cannot beat the incumbent are pruned at pop time (always) and
//     at push time (optimization, can be disabled for testing).
//
// Complexity:
//
//   - Time:  worst case O(2ⁿ · n) (exact search); O(n log n) for the initial ranking.
//     Each generated child costs one O(n) bound walk and one O(log F) heap push.
//   - Space: O(F) live nodes, where F ≤ number of generated nodes. Nodes keep only a
//     parent back-reference and one decision bit; selections are rebuilt lazily.
//
// Entry points:
//
//	func Solve(items []Item, capacity float64, opts ...Option) (Result, error)
//	func SolveContext(ctx context.Context, items []Item, capacity float64, opts ...Option) (Result, error)
//	func SolveArrays(values, weights []float64, capacity float64, opts ...Option) (Result, error)
//	func SolveParallel(ctx context.Context, items []Item, capacity float64, workers int, opts ...Option) (Result, error)
//	func SolveExhaustive(items []Item, capacity float64, opts ...Option) (Result, error)
//
// Options:
//
//   - WithNodeBudget(n):        stop after n expanded nodes (Status=BudgetExceeded).
//   - WithTimeBudget(d):        stop after wall-clock d (Status=BudgetExceeded).
//   - WithOnImprovement(fn):    synchronous callback on every strict incumbent improvement.
//   - WithoutPushPruning():     push every generated child (result is unchanged; slower).
//   - WithEpsilon(eps):         relative feasibility tolerance (default DefaultEpsilon = 1e-9).
//   - WithObserver(o):          receive aggregated search statistics.
//   - WithLogger(l):            structured Debug-level lifecycle records.
//
// Error handling (sentinel errors):
//
//   - ErrInvalidInput and its refinements (ErrNegativeCapacity, ErrMismatchedLength,
//     ErrNonPositiveWeight, ErrNegativeValue, ErrNonFinite, ErrValueOverflow) are
//     returned before any search state exists.
//   - ErrInvariantViolation (as *InvariantError) signals a defective bound and is fatal.
//   - An exhausted budget is NOT an error: the best incumbent is returned with
//     PossiblySuboptimal=true.
//
// Thread safety:
//
//   - Solve and SolveContext are single-threaded and share no state between calls.
//   - SolveParallel runs several workers against one shared Frontier and one shared
//     incumbent; the returned Value equals the sequential optimum, while Selection may
//     be any of several equal-valued optima.
package knapsack
