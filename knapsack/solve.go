// Package knapsack - best-first Branch-and-Bound driver.
//
// State machine: Idle → Running → {Converged, BudgetExceeded}.
//
//  1. Idle → Running: capacity and items are validated; on failure the caller gets an
//     ErrInvalidInput-class error and no search state is created.
//  2. Items are ranked (Prepare), the root {Level:-1} is bounded and pushed, and the
//     incumbent starts at {0, ∅}.
//  3. While the frontier is non-empty and no budget is exhausted:
//     a. pop the node u with the highest (Bound, −Seq);
//     b. prune u if u.Bound <= best (the incumbent may have improved since the push);
//     c. if u decides the last item, it is a complete assignment: commit it iff strictly better;
//     d. otherwise generate include (only if it fits) and exclude children, bound them,
//     and push those whose bound beats the incumbent (push-pruning is an optimization).
//  4. Empty frontier ⇒ Converged. A budget stop ⇒ BudgetExceeded, PossiblySuboptimal=true,
//     unless the best remaining bound is already <= best, which certifies the optimum.
//
// Feasibility: every fit test compares against capacity widened by Options.Epsilon, so
// the float rounding of a running weight sum cannot reject a selection that fits.
//
// Budgets: the node budget counts expanded nodes; the time budget and context are
// checked once per loop iteration, the clock sparsely (every 64 iterations).

package knapsack

import (
	"context"
	"log/slog"
	"time"
)

// timeCheckMask controls how often the wall clock is read.
const timeCheckMask = 63

// incumbent is the best complete assignment found so far. Value only increases.
type incumbent struct {
	value float64
	leaf  *Node // nil while the incumbent is the empty selection
}

// bnbEngine holds the state of one sequential search.
type bnbEngine struct {
	// Configuration / policy
	ctx     context.Context
	opts    Options
	limit   float64 // capacity widened by opts.Epsilon; used for every fit test
	ordered []PreparedItem
	n       int

	// Budget
	useDeadline bool
	deadline    time.Time
	steps       int

	// Search state
	front  *frontier
	seq    uint64
	best   incumbent
	status Status
	stats  Stats
}

// nextSeq returns a fresh creation stamp.
func (e *bnbEngine) nextSeq() uint64 {
	s := e.seq
	e.seq++

	return s
}

// budgetExhausted reports whether the search must stop early.
func (e *bnbEngine) budgetExhausted() bool {
	if e.opts.NodeBudget > 0 && e.stats.Expanded >= e.opts.NodeBudget {
		return true
	}
	if e.ctx.Err() != nil {
		return true
	}
	e.steps++
	if !e.useDeadline || ((e.steps-1)&timeCheckMask) != 0 {
		return false
	}

	return time.Now().After(e.deadline)
}

// bound computes and checks n.Bound.
func (e *bnbEngine) bound(n *Node) error {
	n.Bound = Bound(*n, e.ordered, e.limit)

	return checkBound(n)
}

// commit records leaf as the new incumbent and fires the improvement hooks.
func (e *bnbEngine) commit(leaf *Node) {
	e.best = incumbent{value: leaf.Value, leaf: leaf}
	e.stats.Improvements++
	e.opts.Observer.RecordImprovement(leaf.Value)
	e.opts.Logger.Debug("incumbent improved",
		slog.Float64("value", leaf.Value),
		slog.Uint64("seq", leaf.Seq),
		slog.Int("expanded", e.stats.Expanded))
	if e.opts.OnImprovement != nil {
		e.opts.OnImprovement(leaf.Value, leaf.Selection(e.ordered))
	}
}

// offer bounds a generated child and pushes it unless push-pruning drops it.
func (e *bnbEngine) offer(c *Node) error {
	e.stats.Generated++
	if err := e.bound(c); err != nil {
		return err
	}
	if e.opts.PushPruning && c.Bound <= e.best.value {
		e.stats.PrunedAtPush++
		return nil
	}
	e.front.push(c)
	e.stats.Pushed++
	if l := e.front.len(); l > e.stats.MaxFrontier {
		e.stats.MaxFrontier = l
	}

	return nil
}

// expand generates the include/exclude children of u (include first).
func (e *bnbEngine) expand(u *Node) error {
	it := e.ordered[u.Level+1]
	if u.Weight+it.Weight <= e.limit {
		if err := e.offer(u.child(it, true, e.nextSeq())); err != nil {
			return err
		}
	} else {
		// Computed and discarded at generation time; never pushed.
		e.stats.Generated++
		e.stats.Infeasible++
	}

	return e.offer(u.child(it, false, e.nextSeq()))
}

// run executes the best-first loop until convergence, a budget stop, or a failure.
func (e *bnbEngine) run() error {
	root := newRoot(e.nextSeq())
	if err := e.bound(root); err != nil {
		return err
	}
	e.front.push(root)
	e.stats.Pushed++
	e.stats.MaxFrontier = 1
	e.status = Running

	var u *Node
	for e.front.len() > 0 {
		if e.budgetExhausted() {
			e.status = BudgetExceeded
			break
		}
		u = e.front.pop()
		if u.Bound <= e.best.value {
			e.stats.PrunedAtPop++
			continue
		}
		e.stats.Expanded++
		if u.Level == e.n-1 {
			e.stats.Leaves++
			if u.Value > e.best.value {
				e.commit(u)
			}
			continue
		}
		if err := e.expand(u); err != nil {
			return err
		}
	}

	if e.status == BudgetExceeded {
		// The frontier is bound-ordered: if its best bound cannot beat the
		// incumbent, nothing left can, and the optimum is certified.
		if top := e.front.peek(); top == nil || top.Bound <= e.best.value {
			e.status = Converged
		}
	} else {
		e.status = Converged
	}

	return nil
}

// result assembles the public Result from the engine state.
func (e *bnbEngine) result() Result {
	sel := []int{}
	if e.best.leaf != nil {
		sel = e.best.leaf.Selection(e.ordered)
	}

	return Result{
		Value:              e.best.value,
		Selection:          sel,
		Status:             e.status,
		PossiblySuboptimal: e.status != Converged,
		Stats:              e.stats,
	}
}

// prepareSearch validates the input and ranks the items.
// It is the Idle → Running gate shared by all drivers.
func prepareSearch(items []Item, capacity float64) ([]PreparedItem, error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}

	return Prepare(items)
}

// Solve runs the best-first Branch-and-Bound search to completion (or budget).
// See SolveContext.
func Solve(items []Item, capacity float64, opts ...Option) (Result, error) {
	return SolveContext(context.Background(), items, capacity, opts...)
}

// SolveArrays is Solve over parallel value/weight arrays.
//
// Errors: ErrMismatchedLength in addition to those of Solve.
func SolveArrays(values, weights []float64, capacity float64, opts ...Option) (Result, error) {
	items, err := NewItems(values, weights)
	if err != nil {
		return Result{}, err
	}

	return Solve(items, capacity, opts...)
}

// SolveContext runs the best-first search on items under capacity.
// Cancellation of ctx stops the search like an exhausted budget: the incumbent is
// returned with Status=BudgetExceeded and PossiblySuboptimal=true, and err is nil.
//
// Returns:
//   - Result.Value: best objective; Result.Selection: original indices, ascending.
//   - error: an ErrInvalidInput-class error before the search starts, or an
//     *InvariantError (ErrInvariantViolation) if a bound check fails.
//
// Complexity: worst case O(2ⁿ · n) time; see package doc.
func SolveContext(ctx context.Context, items []Item, capacity float64, opts ...Option) (Result, error) {
	cfg := buildOptions(opts)
	ordered, err := prepareSearch(items, capacity)
	if err != nil {
		return Result{}, err
	}

	return solveOrdered(ctx, ordered, capacity, cfg)
}

// solveOrdered runs the sequential search on already validated and ranked items.
func solveOrdered(ctx context.Context, ordered []PreparedItem, capacity float64, cfg Options) (Result, error) {
	e := &bnbEngine{
		ctx:     ctx,
		opts:    cfg,
		limit:   cfg.capacityLimit(capacity),
		ordered: ordered,
		n:       len(ordered),
		front:   newFrontier(2 * len(ordered)),
		status:  Idle,
	}
	if cfg.TimeBudget > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(cfg.TimeBudget)
	}

	cfg.Logger.Debug("search started",
		slog.Int("items", e.n),
		slog.Float64("capacity", capacity),
		slog.Int("node_budget", cfg.NodeBudget),
		slog.Duration("time_budget", cfg.TimeBudget))

	start := time.Now()
	err := e.run()
	e.stats.Elapsed = time.Since(start)
	if err != nil {
		cfg.Logger.Error("search aborted", slog.Any("error", err))
		cfg.Observer.RecordSolve(e.stats, e.status, err)
		return Result{}, err
	}

	res := e.result()
	cfg.Observer.RecordSolve(res.Stats, res.Status, nil)
	cfg.Logger.Debug("search finished",
		slog.String("status", res.Status.String()),
		slog.Float64("value", res.Value),
		slog.Int("expanded", res.Stats.Expanded),
		slog.Int("pruned", res.Stats.PrunedAtPush+res.Stats.PrunedAtPop),
		slog.Duration("elapsed", res.Stats.Elapsed))

	return res, nil
}
