package cmd

import (
	"fmt"
	"log/slog"

	"github.com/signalnine/graphbench/internal/report"
	"github.com/spf13/cobra"
)

var flagFormat string

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [results-dir]",
		Short: "Compare stored results across backends",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.Results.Dir
			if len(args) > 0 {
				dir = args[0]
			}
			chartsDir := cfg.Report.ChartsDir
			if chartsDir == "" {
				chartsDir = dir
			}
			format := cfg.Report.Format
			if cmd.Flags().Changed("format") {
				switch flagFormat {
				case "table", "markdown", "json":
				default:
					return fmt.Errorf("unknown format %q (table, markdown, json)", flagFormat)
				}
				format = flagFormat
			}
			backends, err := newRegistry().Select(cfg.Backends)
			if err != nil {
				return err
			}
			names := make([]string, len(backends))
			for i, b := range backends {
				names[i] = b.Name()
			}
			agg := &report.Aggregator{
				Dir:      dir,
				Backends: names,
				Datasets: cfg.Report.PathFiles,
				Options: report.Options{
					Theme:     cfg.Report.Theme,
					TexExport: cfg.Report.TexExport,
					Charts:    cfg.Report.Charts,
					ChartsDir: chartsDir,
					Format:    format,
				},
				Logger: slog.Default(),
			}
			return agg.Generate(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	return cmd
}
