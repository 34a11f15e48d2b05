package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvbnb/internal/instance"
	"github.com/katalvlaran/lvbnb/knapsack"
)

// errDisagree is returned when the solvers do not agree on the optimum.
var errDisagree = errors.New("branch-and-bound and exhaustive optimum differ")

func newVerifyCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "verify FILE",
		Short: "Cross-check Branch-and-Bound against exhaustive enumeration",
		Long: fmt.Sprintf("Solves FILE with the sequential and parallel Branch-and-Bound solvers and with\n"+
			"exhaustive enumeration (at most %d items) and fails if the optima differ.", knapsack.MaxExhaustiveItems),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.verify(cmd.Context(), cmd.OutOrStdout(), args[0], workers)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "workers for the parallel run (0 = GOMAXPROCS)")

	return cmd
}

func (a *app) verify(ctx context.Context, w io.Writer, path string, workers int) error {
	file, err := instance.Load(path)
	if err != nil {
		return err
	}
	items := file.KnapsackItems()

	want, err := knapsack.SolveExhaustive(items, file.Capacity)
	if err != nil {
		return err
	}
	seq, err := knapsack.Solve(items, file.Capacity, knapsack.WithLogger(a.logger))
	if err != nil {
		return err
	}
	par, err := knapsack.SolveParallel(ctx, items, file.Capacity, workers, knapsack.WithLogger(a.logger))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "exhaustive: %g %v (%d leaves)\n", want.Value, want.Selection, want.Stats.Leaves)
	fmt.Fprintf(w, "sequential: %g %v (%d expanded)\n", seq.Value, seq.Selection, seq.Stats.Expanded)
	fmt.Fprintf(w, "parallel:   %g %v (%d expanded)\n", par.Value, par.Selection, par.Stats.Expanded)

	for _, got := range []struct {
		name string
		res  knapsack.Result
	}{{"sequential", seq}, {"parallel", par}} {
		if !sameValue(got.res.Value, want.Value) {
			a.logger.Error("optimum mismatch",
				slog.String("solver", got.name),
				slog.Float64("got", got.res.Value),
				slog.Float64("want", want.Value))
			return fmt.Errorf("%w: %s=%g exhaustive=%g", errDisagree, got.name, got.res.Value, want.Value)
		}
		if err = checkSelection(items, file.Capacity, got.res); err != nil {
			return fmt.Errorf("%s: %w", got.name, err)
		}
	}
	fmt.Fprintln(w, "ok")

	return nil
}

// checkSelection recomputes value and weight of the reported selection.
func checkSelection(items []knapsack.Item, capacity float64, res knapsack.Result) error {
	var value, weight float64
	for _, i := range res.Selection {
		value += items[i].Value
		weight += items[i].Weight
	}
	if weight > capacity && !sameValue(weight, capacity) {
		return fmt.Errorf("selection weight %g exceeds capacity %g", weight, capacity)
	}
	if !sameValue(value, res.Value) {
		return fmt.Errorf("selection value %g does not match reported %g", value, res.Value)
	}

	return nil
}

func sameValue(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
