package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvbnb/internal/instance"
	"github.com/katalvlaran/lvbnb/internal/store"
	"github.com/katalvlaran/lvbnb/internal/telemetry"
	"github.com/katalvlaran/lvbnb/knapsack"
)

type solveFlags struct {
	nodeBudget  int
	timeBudget  time.Duration
	workers     int
	noPushPrune bool
	cacheDir    string
	metricsAddr string
	trace       bool
	output      string
}

// report is the printed outcome of a solve.
type report struct {
	RunID              string   `yaml:"run_id"`
	Name               string   `yaml:"name"`
	Fingerprint        string   `yaml:"fingerprint"`
	Value              float64  `yaml:"value"`
	Selection          []int    `yaml:"selection"`
	Labels             []string `yaml:"labels,omitempty"`
	Status             string   `yaml:"status"`
	PossiblySuboptimal bool     `yaml:"possibly_suboptimal"`
	Cached             bool     `yaml:"cached"`
	Stats              *stats   `yaml:"stats,omitempty"`
}

type stats struct {
	Generated    int    `yaml:"generated"`
	Pushed       int    `yaml:"pushed"`
	Expanded     int    `yaml:"expanded"`
	PrunedAtPush int    `yaml:"pruned_at_push"`
	PrunedAtPop  int    `yaml:"pruned_at_pop"`
	Infeasible   int    `yaml:"infeasible"`
	Leaves       int    `yaml:"leaves"`
	Improvements int    `yaml:"improvements"`
	MaxFrontier  int    `yaml:"max_frontier"`
	Elapsed      string `yaml:"elapsed"`
}

func newSolveCmd(a *app) *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve an instance file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.output != "text" && f.output != "yaml" {
				return fmt.Errorf("unknown output %q (want text or yaml)", f.output)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.solve(ctx, cmd.OutOrStdout(), args[0], f)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.nodeBudget, "node-budget", 0, "stop after this many expanded nodes (0 = unlimited)")
	fl.DurationVar(&f.timeBudget, "time-budget", 0, "stop after this wall time (0 = unlimited)")
	fl.IntVar(&f.workers, "workers", 1, "parallel workers (1 = sequential, 0 = GOMAXPROCS)")
	fl.BoolVar(&f.noPushPrune, "no-push-prune", false, "disable pruning of children at push time")
	fl.StringVar(&f.cacheDir, "cache-dir", "", "cache certified optima in this directory")
	fl.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while solving")
	fl.BoolVar(&f.trace, "trace", false, "print an OpenTelemetry span for the solve to stderr")
	fl.StringVar(&f.output, "output", "text", "output format: text, yaml")

	return cmd
}

func (a *app) solve(ctx context.Context, w io.Writer, path string, f solveFlags) error {
	file, err := instance.Load(path)
	if err != nil {
		return err
	}
	fp := file.Fingerprint()
	log := a.logger.With(slog.String("instance", file.Name), slog.String("fingerprint", fmt.Sprintf("%016x", fp)))

	var cache *store.Store
	if f.cacheDir != "" {
		if cache, err = store.Open(store.Config{Path: f.cacheDir, Logger: log}); err != nil {
			return err
		}
		defer cache.Close()

		rec, ok, err := cache.Get(fp)
		if err != nil {
			return err
		}
		if ok {
			log.Info("cache hit", slog.Time("solved_at", rec.SolvedAt))
			return printReport(w, f.output, report{
				RunID:       a.runID,
				Name:        file.Name,
				Fingerprint: fmt.Sprintf("%016x", fp),
				Value:       rec.Value,
				Selection:   rec.Selection,
				Labels:      labels(file, rec.Selection),
				Status:      knapsack.Converged.String(),
				Cached:      true,
			})
		}
	}

	opts := []knapsack.Option{
		knapsack.WithLogger(log),
		knapsack.WithOnImprovement(progressLogger(log)),
	}
	if f.nodeBudget > 0 {
		opts = append(opts, knapsack.WithNodeBudget(f.nodeBudget))
	}
	if f.timeBudget > 0 {
		opts = append(opts, knapsack.WithTimeBudget(f.timeBudget))
	}
	if f.noPushPrune {
		opts = append(opts, knapsack.WithoutPushPruning())
	}
	if f.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, knapsack.WithObserver(telemetry.NewCollector(reg)))
		shutdown, err := serveMetrics(f.metricsAddr, reg, log)
		if err != nil {
			return err
		}
		defer shutdown()
	}
	if f.trace {
		shutdown, err := telemetry.SetupStdoutTracing(os.Stderr)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn("trace shutdown", slog.Any("error", err))
			}
		}()
	}

	items := file.KnapsackItems()
	spanCtx, span := telemetry.StartSolveSpan(ctx, a.runID, len(items), file.Capacity, f.workers)
	var res knapsack.Result
	if f.workers == 1 {
		res, err = knapsack.SolveContext(spanCtx, items, file.Capacity, opts...)
	} else {
		res, err = knapsack.SolveParallel(spanCtx, items, file.Capacity, f.workers, opts...)
	}
	telemetry.EndSolveSpan(span, res, err)
	if err != nil {
		return err
	}

	if cache != nil && res.Status == knapsack.Converged {
		rec, err := store.FromResult(res, len(items), file.Capacity)
		if err == nil {
			err = cache.Put(fp, rec)
		}
		if err != nil {
			log.Warn("cache write failed", slog.Any("error", err))
		}
	}
	if res.PossiblySuboptimal {
		log.Warn("budget exhausted before the optimum was certified", slog.Float64("value", res.Value))
	}

	return printReport(w, f.output, report{
		RunID:              a.runID,
		Name:               file.Name,
		Fingerprint:        fmt.Sprintf("%016x", fp),
		Value:              res.Value,
		Selection:          res.Selection,
		Labels:             labels(file, res.Selection),
		Status:             res.Status.String(),
		PossiblySuboptimal: res.PossiblySuboptimal,
		Stats:              statsOf(res.Stats),
	})
}

// progressLogger reports improvements at most once a second.
func progressLogger(log *slog.Logger) knapsack.ImprovementFunc {
	every := &rate.Sometimes{First: 1, Interval: time.Second}

	return func(value float64, selection []int) {
		every.Do(func() {
			log.Info("incumbent improved", slog.Float64("value", value), slog.Int("selected", len(selection)))
		})
	}
}

// serveMetrics exposes reg over HTTP until the returned function is called.
func serveMetrics(addr string, reg *prometheus.Registry, log *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", slog.Any("error", err))
		}
	}()
	log.Info("serving metrics", slog.String("addr", ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

func labels(f instance.File, selection []int) []string {
	var out []string
	for _, i := range selection {
		if i < len(f.Items) && f.Items[i].Label != "" {
			out = append(out, f.Items[i].Label)
		}
	}

	return out
}

func statsOf(s knapsack.Stats) *stats {
	return &stats{
		Generated:    s.Generated,
		Pushed:       s.Pushed,
		Expanded:     s.Expanded,
		PrunedAtPush: s.PrunedAtPush,
		PrunedAtPop:  s.PrunedAtPop,
		Infeasible:   s.Infeasible,
		Leaves:       s.Leaves,
		Improvements: s.Improvements,
		MaxFrontier:  s.MaxFrontier,
		Elapsed:      s.Elapsed.String(),
	}
}

func printReport(w io.Writer, format string, r report) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}

		return enc.Close()
	}

	fmt.Fprintf(w, "instance:  %s (%s)\n", r.Name, r.Fingerprint)
	fmt.Fprintf(w, "status:    %s", r.Status)
	if r.Cached {
		fmt.Fprint(w, " (cached)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "value:     %g\n", r.Value)
	fmt.Fprintf(w, "selection: %v\n", r.Selection)
	if len(r.Labels) > 0 {
		fmt.Fprintf(w, "labels:    %v\n", r.Labels)
	}
	if r.Stats != nil {
		fmt.Fprintf(w, "expanded:  %d  pruned: %d  frontier peak: %d  elapsed: %s\n",
			r.Stats.Expanded, r.Stats.PrunedAtPush+r.Stats.PrunedAtPop, r.Stats.MaxFrontier, r.Stats.Elapsed)
	}

	return nil
}
