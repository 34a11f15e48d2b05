// Package lvbnb is an exact 0/1 knapsack toolkit built around a best-first
// Branch-and-Bound search.
//
// What is inside?
//
//	• knapsack: the solver. Density ranking, fractional-relaxation bounds,
//	  a (Bound desc, Seq asc) frontier, node and time budgets, a parallel
//	  variant, and an exhaustive reference oracle for small instances.
//	• gen: reproducible benchmark instances (uncorrelated, weakly/strongly
//	  correlated, inverse-strong, almost-strong, subset-sum).
//	• cmd/lvbnb: a CLI to generate, solve and cross-check instance files,
//	  with a result cache, Prometheus metrics and OpenTelemetry spans.
//
// Layout:
//
//	knapsack/           Item, Bound, Node, Frontier, Solve*, Options, Stats
//	gen/                instance generators
//	internal/instance/  YAML instance files, validation, fingerprints
//	internal/store/     BadgerDB cache of certified optima
//	internal/telemetry/ Prometheus collector, tracing helpers
//	internal/logging/   slog handlers for the CLI
//	cmd/lvbnb/          command-line front end
//	examples/cargo/     runnable scenario
//
// Quick example:
//
//	res, _ := knapsack.SolveArrays(
//		[]float64{60, 100, 120}, // values
//		[]float64{10, 20, 30},   // weights
//		50)                      // capacity
//	fmt.Println(res.Value, res.Selection, res.Status) // 220 [1 2] converged
//
//	go get github.com/katalvlaran/lvbnb/knapsack
package lvbnb
