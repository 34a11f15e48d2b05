package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvbnb/gen"
	"github.com/katalvlaran/lvbnb/internal/instance"
)

type genFlags struct {
	class    string
	n        int
	valRange int
	ratio    float64
	seed     int64
	count    int
	name     string
	out      string
}

func newGenCmd(a *app) *cobra.Command {
	var f genFlags
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a benchmark instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.gen(cmd.OutOrStdout(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.class, "class", gen.Uncorrelated.String(),
		"instance class: uncorrelated, weak, strong, inverse-strong, almost-strong, subset-sum")
	fl.IntVarP(&f.n, "items", "n", 20, "number of items")
	fl.IntVar(&f.valRange, "range", 1000, "coefficient range R (weights in [1,R])")
	fl.Float64Var(&f.ratio, "capacity-ratio", 0.5, "capacity as a fraction of the total weight, in (0,1]")
	fl.Int64Var(&f.seed, "seed", 1, "random seed")
	fl.IntVar(&f.count, "count", 1, "number of instances; each gets a seed derived from --seed")
	fl.StringVar(&f.name, "name", "", "instance name (default <class>-<n>)")
	fl.StringVarP(&f.out, "output", "o", "",
		"write to this file instead of stdout (with --count > 1, FILE-<i>.ext per instance)")

	return cmd
}

func (a *app) gen(stdout io.Writer, f genFlags) error {
	class, err := gen.ParseClass(f.class)
	if err != nil {
		return err
	}
	if f.valRange < 1 {
		return fmt.Errorf("--range must be >= 1, got %d", f.valRange)
	}
	if f.ratio <= 0 || f.ratio > 1 {
		return fmt.Errorf("--capacity-ratio must be in (0,1], got %g", f.ratio)
	}
	opts := []gen.Option{gen.WithRange(f.valRange), gen.WithCapacityRatio(f.ratio)}
	name := f.name
	if name == "" {
		name = fmt.Sprintf("%s-%d", class, f.n)
	}

	if f.count == 1 {
		g, err := gen.Generate(class, f.n, append(opts, gen.WithSeed(f.seed))...)
		if err != nil {
			return err
		}
		return a.writeInstance(stdout, f.out, instance.FromGenerated(name, g))
	}

	batch, err := gen.GenerateBatch(class, f.n, f.count, f.seed, opts...)
	if err != nil {
		return err
	}
	ext := filepath.Ext(f.out)
	base := strings.TrimSuffix(f.out, ext)
	for i, g := range batch {
		file := instance.FromGenerated(fmt.Sprintf("%s-%d", name, i), g)
		if f.out != "" {
			err = a.writeInstance(stdout, fmt.Sprintf("%s-%d%s", base, i, ext), file)
		} else {
			if i > 0 {
				fmt.Fprintln(stdout, "---")
			}
			err = a.writeInstance(stdout, "", file)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// writeInstance writes file to path, or to stdout when path is empty.
func (a *app) writeInstance(stdout io.Writer, path string, file instance.File) error {
	w := stdout
	if path != "" {
		fh, err := os.Create(path)
		if err != nil {
			return err
		}
		defer fh.Close()
		w = fh
	}
	if err := instance.Write(w, file); err != nil {
		return err
	}
	a.logger.Debug("instance generated",
		slog.String("name", file.Name),
		slog.Int("items", len(file.Items)),
		slog.Float64("capacity", file.Capacity),
		slog.String("fingerprint", fmt.Sprintf("%016x", file.Fingerprint())))

	return nil
}
