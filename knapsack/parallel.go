// Package knapsack - parallel best-first Branch-and-Bound.
//
// Several workers share one frontier and one incumbent:
//   - The frontier is a mutex-guarded heap; take/pushAll are linearizable.
//   - The incumbent is updated only by a monotonic compare-and-update (iff strictly
//     greater) under a mutex. Workers read it lock-free through an atomic copy; a stale
//     (lower) read only causes extra, still-correct exploration.
//   - Nodes are immutable once pushed, so concurrent reads are safe.
//   - Termination: the queue is empty and no worker is mid-expansion (see sharedFrontier).
//
// The node budget is checked before each take, so workers may overshoot it by at most
// workers−1 expansions.

package knapsack

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// sharedIncumbent is the incumbent shared by parallel workers.
type sharedIncumbent struct {
	bits atomic.Uint64 // math.Float64bits(value) for lock-free reads

	mu    sync.Mutex
	value float64
	leaf  *Node
}

// load returns a possibly stale lower bound on the optimum.
func (s *sharedIncumbent) load() float64 { return math.Float64frombits(s.bits.Load()) }

// offer commits leaf iff it is strictly better; onImprove runs under the lock so the
// sequence of reported values is strictly increasing.
func (s *sharedIncumbent) offer(leaf *Node, onImprove func(*Node)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if leaf.Value <= s.value {
		return false
	}
	s.value = leaf.Value
	s.leaf = leaf
	s.bits.Store(math.Float64bits(leaf.Value))
	onImprove(leaf)

	return true
}

// parallelSearch holds state shared by all workers of one SolveParallel call.
type parallelSearch struct {
	ctx     context.Context
	opts    Options
	limit   float64 // capacity widened by opts.Epsilon
	ordered []PreparedItem
	n       int

	front    *sharedFrontier
	best     sharedIncumbent
	seq      atomic.Uint64
	expanded atomic.Int64
	stats    []Stats // one slot per worker
}

func (p *parallelSearch) nextSeq() uint64 { return p.seq.Add(1) - 1 }

func (p *parallelSearch) exhausted() bool {
	if p.opts.NodeBudget > 0 && p.expanded.Load() >= int64(p.opts.NodeBudget) {
		return true
	}

	return p.ctx.Err() != nil
}

func (p *parallelSearch) improved(leaf *Node) {
	p.opts.Observer.RecordImprovement(leaf.Value)
	p.opts.Logger.Debug("incumbent improved",
		slog.Float64("value", leaf.Value),
		slog.Uint64("seq", leaf.Seq))
	if p.opts.OnImprovement != nil {
		p.opts.OnImprovement(leaf.Value, leaf.Selection(p.ordered))
	}
}

// child bounds a generated node and decides whether it should be pushed.
func (p *parallelSearch) child(st *Stats, c *Node) (*Node, error) {
	st.Generated++
	c.Bound = Bound(*c, p.ordered, p.limit)
	if err := checkBound(c); err != nil {
		return nil, err
	}
	if p.opts.PushPruning && c.Bound <= p.best.load() {
		st.PrunedAtPush++
		return nil, nil
	}
	st.Pushed++

	return c, nil
}

// process handles one popped node: prune, commit a leaf, or expand.
func (p *parallelSearch) process(st *Stats, u *Node) error {
	if u.Bound <= p.best.load() {
		st.PrunedAtPop++
		return nil
	}
	st.Expanded++
	p.expanded.Add(1)
	if u.Level == p.n-1 {
		st.Leaves++
		if p.best.offer(u, p.improved) {
			st.Improvements++
		}
		return nil
	}

	var (
		it      = p.ordered[u.Level+1]
		inc, ex *Node
		err     error
	)
	if u.Weight+it.Weight <= p.limit {
		if inc, err = p.child(st, u.child(it, true, p.nextSeq())); err != nil {
			return err
		}
	} else {
		st.Generated++
		st.Infeasible++
	}
	if ex, err = p.child(st, u.child(it, false, p.nextSeq())); err != nil {
		return err
	}
	p.front.pushAll(inc, ex)

	return nil
}

// worker is the per-goroutine search loop.
func (p *parallelSearch) worker(id int) error {
	st := &p.stats[id]
	for {
		if p.exhausted() {
			p.front.close()
			return nil
		}
		u, ok := p.front.take()
		if !ok {
			return nil
		}
		err := p.process(st, u)
		p.front.release()
		if err != nil {
			return err
		}
	}
}

// SolveParallel runs the search with several workers sharing one frontier and one
// incumbent. workers <= 0 means runtime.GOMAXPROCS(0).
//
// Result.Value equals the sequential optimum on convergence; Result.Selection is one
// of the optimal selections (which one may vary between runs when optima tie).
// Budgets and cancellation behave as in SolveContext.
//
// Errors: the same as SolveContext.
func SolveParallel(ctx context.Context, items []Item, capacity float64, workers int, opts ...Option) (Result, error) {
	cfg := buildOptions(opts)
	ordered, err := prepareSearch(items, capacity)
	if err != nil {
		return Result{}, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return solveParallelOrdered(ctx, ordered, capacity, workers, cfg)
}

// solveParallelOrdered runs the parallel search on already validated and ranked items.
func solveParallelOrdered(ctx context.Context, ordered []PreparedItem, capacity float64, workers int, cfg Options) (Result, error) {
	runCtx := ctx
	if cfg.TimeBudget > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.TimeBudget)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(runCtx)
	p := &parallelSearch{
		ctx:     gctx,
		opts:    cfg,
		limit:   cfg.capacityLimit(capacity),
		ordered: ordered,
		n:       len(ordered),
		front:   newSharedFrontier(2 * len(ordered)),
		stats:   make([]Stats, workers),
	}

	root := newRoot(p.nextSeq())
	root.Bound = Bound(*root, ordered, p.limit)
	if err := checkBound(root); err != nil {
		cfg.Observer.RecordSolve(Stats{}, Running, err)
		return Result{}, err
	}
	p.front.pushAll(root)

	cfg.Logger.Debug("parallel search started",
		slog.Int("items", p.n),
		slog.Float64("capacity", capacity),
		slog.Int("workers", workers))

	// Wake blocked workers on cancellation, timeout, or a worker failure.
	stop := context.AfterFunc(gctx, p.front.close)
	defer stop()

	start := time.Now()
	var i int
	for i = 0; i < workers; i++ {
		id := i
		g.Go(func() error { return p.worker(id) })
	}
	err := g.Wait()

	stats := Stats{Pushed: 1, MaxFrontier: p.front.peak, Elapsed: time.Since(start)}
	for i = range p.stats {
		mergeStats(&stats, p.stats[i])
	}
	if err != nil {
		cfg.Logger.Error("parallel search aborted", slog.Any("error", err))
		cfg.Observer.RecordSolve(stats, Running, err)
		return Result{}, err
	}

	res := Result{Value: p.best.value, Selection: []int{}, Status: Converged, Stats: stats}
	if p.best.leaf != nil {
		res.Selection = p.best.leaf.Selection(ordered)
	}
	if top, ok := p.front.top(); ok && top > p.best.value {
		res.Status = BudgetExceeded
		res.PossiblySuboptimal = true
	}
	cfg.Observer.RecordSolve(res.Stats, res.Status, nil)
	cfg.Logger.Debug("parallel search finished",
		slog.String("status", res.Status.String()),
		slog.Float64("value", res.Value),
		slog.Int("expanded", res.Stats.Expanded),
		slog.Duration("elapsed", res.Stats.Elapsed))

	return res, nil
}

// mergeStats adds the counters of src into dst (MaxFrontier and Elapsed are kept).
func mergeStats(dst *Stats, src Stats) {
	dst.Generated += src.Generated
	dst.Pushed += src.Pushed
	dst.Expanded += src.Expanded
	dst.PrunedAtPush += src.PrunedAtPush
	dst.PrunedAtPop += src.PrunedAtPop
	dst.Infeasible += src.Infeasible
	dst.Leaves += src.Leaves
	dst.Improvements += src.Improvements
}
