package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/signalnine/graphbench/internal/backend"
	"github.com/signalnine/graphbench/internal/backend/gonumgraph"
	"github.com/signalnine/graphbench/internal/backend/native"
	"github.com/signalnine/graphbench/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "graphbench",
		Short:        "Benchmark harness comparing graph libraries",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.LoadOrDefault(cfgFile, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), c.Log)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			cfg = c
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "graphbench.yaml", "config file path")
	root.AddCommand(newPathCmd())
	root.AddCommand(newIsoCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateCmd())
	return root
}

func newLogger(w io.Writer, lc config.Log) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// newRegistry lists every backend this build can benchmark.
func newRegistry() *backend.Registry {
	return backend.NewRegistry(native.New(), gonumgraph.New())
}
