// Package telemetry exports solver activity to Prometheus and OpenTelemetry.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/lvbnb/knapsack"
)

const namespace = "lvbnb"

// Collector is a knapsack.Observer backed by Prometheus metrics.
type Collector struct {
	solves       *prometheus.CounterVec
	expanded     prometheus.Counter
	pruned       *prometheus.CounterVec
	improvements prometheus.Counter
	duration     prometheus.Histogram
	frontierPeak prometheus.Gauge
}

var _ knapsack.Observer = (*Collector)(nil)

// NewCollector registers the solver metrics on reg.
// It panics if the metrics are already registered there.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)

	return &Collector{
		solves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Finished solves by outcome (converged, budget_exceeded, error).",
		}, []string{"status"}),
		expanded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_expanded_total",
			Help:      "Nodes expanded across all solves.",
		}),
		pruned: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_pruned_total",
			Help:      "Nodes pruned by bound, by stage (push, pop).",
		}, []string{"stage"}),
		improvements: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "improvements_total",
			Help:      "Incumbent improvements across all solves.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of a solve.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		frontierPeak: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frontier_peak",
			Help:      "Largest frontier size seen by the most recent solve.",
		}),
	}
}

// RecordImprovement implements knapsack.Observer.
func (c *Collector) RecordImprovement(float64) { c.improvements.Inc() }

// RecordSolve implements knapsack.Observer.
func (c *Collector) RecordSolve(st knapsack.Stats, status knapsack.Status, err error) {
	label := status.String()
	if err != nil {
		label = "error"
	}
	c.solves.WithLabelValues(label).Inc()
	c.expanded.Add(float64(st.Expanded))
	c.pruned.WithLabelValues("push").Add(float64(st.PrunedAtPush))
	c.pruned.WithLabelValues("pop").Add(float64(st.PrunedAtPop))
	c.duration.Observe(st.Elapsed.Seconds())
	c.frontierPeak.Set(float64(st.MaxFrontier))
}
