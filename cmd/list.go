package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/signalnine/graphbench/internal/backend"
	"github.com/signalnine/graphbench/internal/config"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backends, their capabilities and the size guards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printList(cmd.OutOrStdout(), cfg, newRegistry())
		},
	}
}

func printList(w io.Writer, c *config.Config, reg *backend.Registry) error {
	selected, err := reg.Select(c.Backends)
	if err != nil {
		return err
	}
	enabled := map[string]bool{}
	for _, b := range selected {
		enabled[b.Name()] = true
	}

	fmt.Fprintln(w, "Backends:")
	for _, b := range reg.All() {
		mark := ""
		if !enabled[b.Name()] {
			mark = " [disabled]"
		}
		fmt.Fprintf(w, "  - %s (%s)%s\n", b.Name(), strings.Join(backend.Capabilities(b), ", "), mark)
	}
	fmt.Fprintf(w, "\nTrials: %d per operation\n", c.Trials)
	fmt.Fprintln(w, "\nGuards:")
	fmt.Fprintf(w, "  - all pairs: fewer than %s nodes\n", humanize.Comma(int64(c.Guards.AllPairsMaxNodes)))
	fmt.Fprintf(w, "  - distance matrix: projected size under %s\n", humanize.Bytes(uint64(c.Guards.DistanceMatrixBudgetBytes)))
	return nil
}
