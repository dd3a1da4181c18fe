package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/signalnine/graphbench/internal/backend"
	"github.com/signalnine/graphbench/internal/bench"
	"github.com/signalnine/graphbench/internal/config"
	"github.com/signalnine/graphbench/internal/metrics"
	"github.com/signalnine/graphbench/internal/result"
	"github.com/spf13/cobra"
)

var errNoMatcher = errors.New("no selected backend supports subgraph isomorphism")

func newIsoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "iso <corpus-dir>",
		Short: "Time subgraph isomorphism over the ARG Database",
		Long: "Walk <corpus-dir>/<prefix>/<group>/<type>/ for pattern (A) and target (B) fixture pairs\n" +
			"and time one subgraph isomorphism test per pair for every selected backend that\n" +
			"supports it. Each backend writes <backend>_subgraph_iso.csv to the results directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIso(cfg, args[0], slog.Default())
		},
	}
}

func runIso(c *config.Config, root string, logger *slog.Logger) error {
	backends, err := newRegistry().Select(c.Backends)
	if err != nil {
		return err
	}
	layout := bench.Layout{Prefixes: c.Isomorphism.Prefixes, Groups: c.Isomorphism.Groups}
	m := metrics.New()
	err = func() error {
		ran := 0
		for _, b := range backends {
			blog := logger.With(slog.String("backend", b.Name()))
			if _, ok := b.(backend.SubgraphMatcher); !ok {
				blog.Warn("skipping backend", slog.String("reason", bench.SkipUnsupported))
				continue
			}
			suite := &bench.IsoSuite{
				Backend:     b,
				Repetitions: c.Trials,
				Layout:      layout,
				Logger:      blog,
				Observer:    m.ForBackend(b.Name()),
			}
			rows, err := suite.Run(root)
			if err != nil {
				return err
			}
			out := filepath.Join(c.Results.Dir, result.IsoFileName(b.Name()))
			if err := result.Write(out, result.IsoHeader, rows); err != nil {
				return err
			}
			blog.Info("results written", slog.String("file", out), slog.Int("rows", len(rows)))
			ran++
		}
		if ran == 0 {
			return errNoMatcher
		}
		return nil
	}()
	return finishMetrics(m, c.Metrics.Textfile, logger, err)
}
