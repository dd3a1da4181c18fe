package cmd

import (
	"log/slog"
	"path/filepath"

	"github.com/signalnine/graphbench/internal/bench"
	"github.com/signalnine/graphbench/internal/config"
	"github.com/signalnine/graphbench/internal/format"
	"github.com/signalnine/graphbench/internal/metrics"
	"github.com/signalnine/graphbench/internal/result"
	"github.com/signalnine/graphbench/internal/runner"
	"github.com/spf13/cobra"
)

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <gr-file>",
		Short: "Time construction and shortest paths over a road network",
		Long: "Parse a DIMACS .gr file (plain, .gz or .zst) and time graph creation, single source,\n" +
			"all pairs and distance matrix operations for every selected backend. Each backend\n" +
			"writes <backend>_<dataset>.csv to the results directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cfg, args[0], slog.Default())
		},
	}
}

func guardsFrom(c *config.Config) bench.Guards {
	return bench.Guards{
		AllPairsMaxNodes:          c.Guards.AllPairsMaxNodes,
		DistanceMatrixBudgetBytes: c.Guards.DistanceMatrixBudgetBytes,
	}
}

func runPath(c *config.Config, input string, logger *slog.Logger) error {
	backends, err := newRegistry().Select(c.Backends)
	if err != nil {
		return err
	}
	m := metrics.New()
	err = func() error {
		for _, b := range backends {
			// A description feeds exactly one builder, so every backend
			// parses its own copy.
			d, err := format.Parse(input, true)
			if err != nil {
				return err
			}
			blog := logger.With(slog.String("backend", b.Name()))
			suite := &bench.PathSuite{
				Backend: b,
				Runner: &runner.Runner{
					Repetitions: c.Trials,
					Logger:      blog,
					Observer:    m.ForBackend(b.Name()),
				},
				Guards: guardsFrom(c),
				Logger: blog,
			}
			rows, err := suite.Run(d)
			if err != nil {
				return err
			}
			out := filepath.Join(c.Results.Dir, result.PathFileName(b.Name(), input))
			if err := result.Write(out, nil, rows); err != nil {
				return err
			}
			blog.Info("results written", slog.String("file", out), slog.Int("rows", len(rows)))
		}
		return nil
	}()
	return finishMetrics(m, c.Metrics.Textfile, logger, err)
}

// finishMetrics writes the textfile, if configured, even when the run
// failed. The run's error wins over a metrics error.
func finishMetrics(m *metrics.Metrics, path string, logger *slog.Logger, runErr error) error {
	if path == "" {
		return runErr
	}
	if err := m.WriteTextfile(path); err != nil {
		if runErr != nil {
			logger.Error("metrics not written", slog.String("file", path), slog.Any("error", err))
			return runErr
		}
		return err
	}
	logger.Info("metrics written", slog.String("file", path))
	return runErr
}
