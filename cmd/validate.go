package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/signalnine/graphbench/internal/bench"
	"github.com/signalnine/graphbench/internal/format"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <graph-file>",
		Short: "Parse a graph file and summarize it without timing anything",
		Long: "Parse a DIMACS .gr or ARG Database file the way the benchmarks would and report its\n" +
			"shape and which guarded operations a path benchmark would run on it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateFile(cmd.OutOrStdout(), args[0], guardsFrom(cfg))
		},
	}
}

func validateFile(w io.Writer, path string, guards bench.Guards) error {
	kind := format.Detect(path)
	// Road networks are benchmarked directed, isomorphism fixtures undirected.
	d, err := format.Parse(path, kind == format.KindDIMACS)
	if err != nil {
		return err
	}
	st := d.Stats()

	verdict := func(skip string) string {
		if skip == "" {
			return "runs"
		}
		return "skipped: " + skip
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "file:\t%s\n", path)
	fmt.Fprintf(tw, "format:\t%s\n", kind)
	fmt.Fprintf(tw, "directed:\t%t\n", d.Directed)
	fmt.Fprintf(tw, "nodes:\t%s\n", humanize.Comma(int64(st.Nodes)))
	fmt.Fprintf(tw, "edges:\t%s\n", humanize.Comma(int64(st.Edges)))
	fmt.Fprintf(tw, "self-loops:\t%s\n", humanize.Comma(int64(st.SelfLoops)))
	fmt.Fprintf(tw, "parallel edges:\t%s\n", humanize.Comma(int64(st.ParallelEdges)))
	fmt.Fprintf(tw, "all pairs:\t%s\n", verdict(guards.AllPairsSkip(st.Nodes)))
	fmt.Fprintf(tw, "distance matrix:\t%s\n", verdict(guards.DistanceMatrixSkip(st.Nodes)))
	return tw.Flush()
}
