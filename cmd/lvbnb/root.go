package main

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvbnb/internal/logging"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	logLevel  string
	logFormat string

	runID  string
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "lvbnb",
		Short:         "Best-first Branch-and-Bound 0/1 knapsack solver",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logging.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			format, err := logging.ParseFormat(a.logFormat)
			if err != nil {
				return err
			}
			a.runID = uuid.NewString()
			a.logger = logging.New(cmd.ErrOrStderr(), level, format).With(slog.String("run_id", a.runID))

			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "auto", "log format: auto, text, json")

	root.AddCommand(newSolveCmd(a), newGenCmd(a), newVerifyCmd(a))

	return root
}
