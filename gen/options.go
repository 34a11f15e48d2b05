package gen

import "math/rand"

// Deterministic defaults.
const (
	defaultRange         = 1000
	defaultCapacityRatio = 0.5
)

// config aggregates all generator knobs.
type config struct {
	rng           *rand.Rand
	dataRange     int
	capacityRatio float64
}

// Option customizes Generate.
type Option func(*config)

// WithSeed creates a new deterministic RNG; seed 0 uses the package default seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rngFromSeed(seed)
	}
}

// WithRand supplies an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("gen: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// WithRange sets the data range R (weights and base values are drawn from [1, R]).
// Panics on R < 1.
func WithRange(r int) Option {
	if r < 1 {
		panic("gen: WithRange(r<1)")
	}
	return func(c *config) {
		c.dataRange = r
	}
}

// WithCapacityRatio sets capacity as a fraction of the total weight. Panics unless 0 < ratio <= 1.
func WithCapacityRatio(ratio float64) Option {
	if !(ratio > 0 && ratio <= 1) {
		panic("gen: WithCapacityRatio out of (0,1]")
	}
	return func(c *config) {
		c.capacityRatio = ratio
	}
}

func newConfig(opts []Option) config {
	c := config{dataRange: defaultRange, capacityRatio: defaultCapacityRatio}
	for _, opt := range opts {
		opt(&c)
	}
	if c.rng == nil {
		c.rng = rngFromSeed(0)
	}

	return c
}
