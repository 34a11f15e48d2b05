package gen

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvbnb/knapsack"
)

// Class selects an instance family.
type Class int

const (
	Uncorrelated Class = iota
	WeaklyCorrelated
	StronglyCorrelated
	InverseStronglyCorrelated
	AlmostStronglyCorrelated
	SubsetSum
)

var classNames = map[Class]string{
	Uncorrelated:              "uncorrelated",
	WeaklyCorrelated:          "weak",
	StronglyCorrelated:        "strong",
	InverseStronglyCorrelated: "inverse-strong",
	AlmostStronglyCorrelated:  "almost-strong",
	SubsetSum:                 "subset-sum",
}

func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}

	return fmt.Sprintf("class(%d)", int(c))
}

// ParseClass maps a class name (as printed by String) back to a Class.
func ParseClass(s string) (Class, error) {
	for c, name := range classNames {
		if name == s {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// Instance is a generated problem.
type Instance struct {
	Class    Class
	Items    []knapsack.Item
	Capacity float64
}

// Generate builds an n-item instance of the given class.
//
// Errors: ErrTooFewItems (n < 0), ErrUnknownClass.
//
// Complexity: O(n) time and space.
func Generate(class Class, n int, opts ...Option) (Instance, error) {
	if n < 0 {
		return Instance{}, ErrTooFewItems
	}
	if _, ok := classNames[class]; !ok {
		return Instance{}, ErrUnknownClass
	}
	c := newConfig(opts)

	var (
		R     = c.dataRange
		tenth = max(R/10, 1)
		small = max(R/500, 1)
		items = make([]knapsack.Item, n)
		total float64
		w, v  float64
		i     int
	)
	for i = 0; i < n; i++ {
		switch class {
		case Uncorrelated:
			w = uniform(c.rng, 1, R)
			v = uniform(c.rng, 1, R)
		case WeaklyCorrelated:
			w = uniform(c.rng, 1, R)
			v = math.Max(1, w+uniform(c.rng, -tenth, tenth))
		case StronglyCorrelated:
			w = uniform(c.rng, 1, R)
			v = w + float64(tenth)
		case InverseStronglyCorrelated:
			v = uniform(c.rng, 1, R)
			w = v + float64(tenth)
		case AlmostStronglyCorrelated:
			w = uniform(c.rng, 1, R)
			v = w + float64(tenth) + uniform(c.rng, -small, small)
		case SubsetSum:
			w = uniform(c.rng, 1, R)
			v = w
		}
		items[i] = knapsack.Item{Value: v, Weight: w}
		total += w
	}

	capacity := math.Floor(c.capacityRatio * total)
	if n > 0 && capacity < 1 {
		capacity = 1
	}

	return Instance{Class: class, Items: items, Capacity: capacity}, nil
}

// GenerateBatch builds count instances of the same class and size. Instance i is
// generated with WithSeed(DeriveSeed(seed, i)), which overrides any seed or RNG in opts,
// so a batch is reproducible from (seed, i) alone.
//
// Errors: ErrBadCount (count < 1) and those of Generate.
func GenerateBatch(class Class, n, count int, seed int64, opts ...Option) ([]Instance, error) {
	if count < 1 {
		return nil, ErrBadCount
	}
	out := make([]Instance, count)
	perInstance := make([]Option, len(opts), len(opts)+1)
	copy(perInstance, opts)
	var (
		i   int
		err error
	)
	for i = range out {
		if out[i], err = Generate(class, n, append(perInstance, WithSeed(DeriveSeed(seed, uint64(i))))...); err != nil {
			return nil, err
		}
	}

	return out, nil
}
