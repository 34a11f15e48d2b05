package knapsack

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// ErrInvalidInput is the root sentinel for malformed solver input.
// All validation errors below wrap it, so errors.Is(err, ErrInvalidInput) holds for each.
var ErrInvalidInput = errors.New("knapsack: invalid input")

var (
	// ErrNegativeCapacity indicates capacity < 0.
	ErrNegativeCapacity = fmt.Errorf("%w: negative capacity", ErrInvalidInput)

	// ErrMismatchedLength indicates that parallel value/weight arrays differ in length.
	ErrMismatchedLength = fmt.Errorf("%w: values and weights differ in length", ErrInvalidInput)

	// ErrNonPositiveWeight indicates an item with Weight <= 0.
	ErrNonPositiveWeight = fmt.Errorf("%w: non-positive weight", ErrInvalidInput)

	// ErrNegativeValue indicates an item with Value < 0.
	ErrNegativeValue = fmt.Errorf("%w: negative value", ErrInvalidInput)

	// ErrNonFinite indicates NaN or ±Inf in capacity, a value, or a weight.
	ErrNonFinite = fmt.Errorf("%w: non-finite number", ErrInvalidInput)

	// ErrValueOverflow indicates that the total value of all items is not representable.
	ErrValueOverflow = fmt.Errorf("%w: total value overflows float64", ErrInvalidInput)

	// ErrTooManyItems is returned by SolveExhaustive when n exceeds MaxExhaustiveItems.
	ErrTooManyItems = fmt.Errorf("%w: too many items for exhaustive enumeration", ErrInvalidInput)
)

// ErrInvariantViolation signals that a computed bound is negative, non-finite, or below
// the node's own value. It means the bound function is defective; callers must not
// recover from it.
var ErrInvariantViolation = errors.New("knapsack: internal invariant violation")

// ItemError reports which item failed validation.
type ItemError struct {
	Index  int
	Value  float64
	Weight float64
	Err    error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d (value=%g weight=%g): %v", e.Index, e.Value, e.Weight, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// InvariantError describes the node on which a bound check failed.
type InvariantError struct {
	Level int
	Seq   uint64
	Value float64
	Bound float64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: node level=%d seq=%d value=%g bound=%g",
		ErrInvariantViolation, e.Level, e.Seq, e.Value, e.Bound)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

// Item is a caller-facing (value, weight) pair.
type Item struct {
	Value  float64
	Weight float64
}

// PreparedItem is an immutable ranked item: Ratio = Value/Weight and Index is the
// item's position in the caller's slice.
type PreparedItem struct {
	Item
	Ratio float64
	Index int
}

// Status is the state of one search.
type Status int

const (
	// Idle: no search has started (zero value).
	Idle Status = iota
	// Running: the best-first loop is active.
	Running
	// Converged: the frontier drained; the incumbent is a certified optimum.
	Converged
	// BudgetExceeded: a node/time budget or context stopped the search early.
	BudgetExceeded
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Converged:
		return "converged"
	case BudgetExceeded:
		return "budget_exceeded"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Stats aggregates counters of one search.
type Stats struct {
	Generated    int // children computed (including infeasible ones)
	Pushed       int // nodes admitted to the frontier (root included)
	Expanded     int // popped nodes that survived the pop-time prune
	PrunedAtPush int // feasible children dropped because bound <= incumbent
	PrunedAtPop  int // popped nodes dropped because bound <= incumbent
	Infeasible   int // include-children discarded for exceeding capacity
	Leaves       int // complete assignments reached
	Improvements int // strict incumbent improvements
	MaxFrontier  int // peak frontier size
	Elapsed      time.Duration
}

// Result is the outcome of a solve.
type Result struct {
	// Value is the best objective found.
	Value float64

	// Selection lists the original indices of the chosen items, ascending.
	// It is non-nil (possibly empty) on success.
	Selection []int

	// Status is Converged or BudgetExceeded.
	Status Status

	// PossiblySuboptimal is true when the search stopped before certifying optimality.
	PossiblySuboptimal bool

	Stats Stats
}

// IsOptimal reports whether Value is a certified optimum.
func (r Result) IsOptimal() bool { return r.Status == Converged }

// ImprovementFunc is invoked synchronously on every strict incumbent improvement.
// The selection slice is owned by the callee; it must not call back into the solver.
type ImprovementFunc func(value float64, selection []int)

// Options configures a solve.
//
// NodeBudget   – maximum number of expanded nodes; 0 means unlimited.
// TimeBudget   – wall-clock budget; 0 means unlimited.
// PushPruning  – drop children with bound <= incumbent before pushing (default true).
// Epsilon      – relative feasibility tolerance; a selection fits when its weight is
// at most capacity + Epsilon·max(1, capacity).
type Options struct {
	NodeBudget    int
	TimeBudget    time.Duration
	PushPruning   bool
	Epsilon       float64
	OnImprovement ImprovementFunc
	Observer      Observer
	Logger        *slog.Logger
}

// Option represents a functional option for configuring a solve.
type Option func(*Options)

// WithNodeBudget caps the number of expanded nodes. Panics on n < 0.
func WithNodeBudget(n int) Option {
	if n < 0 {
		panic("knapsack: WithNodeBudget(n<0)")
	}
	return func(o *Options) {
		o.NodeBudget = n
	}
}

// WithTimeBudget caps wall-clock search time. Panics on d < 0.
func WithTimeBudget(d time.Duration) Option {
	if d < 0 {
		panic("knapsack: WithTimeBudget(d<0)")
	}
	return func(o *Options) {
		o.TimeBudget = d
	}
}

// WithEpsilon sets the relative feasibility tolerance. Summing float weights in a
// different order can land one ulp above capacity; the tolerance absorbs that.
// Panics on eps < 0 or NaN/Inf.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic("knapsack: WithEpsilon(eps<0 or non-finite)")
	}
	return func(o *Options) {
		o.Epsilon = eps
	}
}

// WithOnImprovement registers an anytime callback. Panics on nil.
func WithOnImprovement(fn ImprovementFunc) Option {
	if fn == nil {
		panic("knapsack: WithOnImprovement(nil)")
	}
	return func(o *Options) {
		o.OnImprovement = fn
	}
}

// WithoutPushPruning pushes every feasible child regardless of its bound.
// The optimum is unaffected; only the frontier grows.
func WithoutPushPruning() Option {
	return func(o *Options) {
		o.PushPruning = false
	}
}

// WithObserver attaches a statistics observer. Panics on nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic("knapsack: WithObserver(nil)")
	}
	return func(o *Options) {
		o.Observer = obs
	}
}

// WithLogger attaches a structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("knapsack: WithLogger(nil)")
	}
	return func(o *Options) {
		o.Logger = l
	}
}

// DefaultEpsilon is the default relative feasibility tolerance.
const DefaultEpsilon = 1e-9

// DefaultOptions returns the defaults: no budgets, push-pruning on, DefaultEpsilon,
// no callback, NoopObserver and a discarding logger.
func DefaultOptions() Options {
	return Options{
		PushPruning: true,
		Epsilon:     DefaultEpsilon,
		Observer:    NoopObserver{},
		Logger:      slog.New(slog.DiscardHandler),
	}
}

// capacityLimit widens capacity by the feasibility tolerance.
func (o Options) capacityLimit(capacity float64) float64 {
	return capacity + o.Epsilon*math.Max(1, capacity)
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
