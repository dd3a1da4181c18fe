package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// IsoTitle heads the isomorphism comparison.
const IsoTitle = "Subgraph Isomorphism (sum of runtime)"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16858E"))
)

// grid is one comparison table: a label column followed by one column per
// backend.
type grid struct {
	Title  string
	Header []string
	Rows   [][]string
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func grids(s *Summary) []grid {
	var out []grid
	for _, op := range Operations {
		g := grid{Title: op, Header: append([]string{"Dataset"}, s.Backends...)}
		for _, ds := range s.Datasets {
			row := []string{ds}
			found := false
			for _, b := range s.Backends {
				if v, ok := s.Mean(op, ds, b); ok {
					row = append(row, seconds(v))
					found = true
				} else {
					row = append(row, "-")
				}
			}
			if found {
				g.Rows = append(g.Rows, row)
			}
		}
		if len(g.Rows) > 0 {
			out = append(out, g)
		}
	}

	if len(s.Isomorphism) == 0 {
		return out
	}
	col := make(map[string]int, len(s.Backends))
	for i, b := range s.Backends {
		col[b] = i + 1
	}
	g := grid{Title: IsoTitle, Header: append([]string{"Graph"}, s.Backends...)}
	at := map[string]int{}
	for _, sum := range s.Isomorphism {
		i, ok := at[sum.Prefix]
		if !ok {
			row := make([]string, len(s.Backends)+1)
			row[0] = sum.Prefix
			for c := 1; c < len(row); c++ {
				row[c] = "-"
			}
			i = len(g.Rows)
			at[sum.Prefix] = i
			g.Rows = append(g.Rows, row)
		}
		g.Rows[i][col[sum.Backend]] = seconds(sum.Seconds)
	}
	return append(out, g)
}

// Render writes the summary in opts.Format.
func Render(w io.Writer, s *Summary, opts Options) error {
	if opts.Format == "json" {
		return writeJSON(s, w)
	}
	gs := grids(s)
	if len(gs) == 0 {
		_, err := fmt.Fprintln(w, "no results found")
		return err
	}
	switch {
	case opts.Format == "markdown":
		return writeMarkdown(gs, w)
	case opts.Theme == "plain":
		return writeTable(gs, w)
	default:
		return writeStyled(gs, w)
	}
}

func writeTable(gs []grid, w io.Writer) error {
	for i, g := range gs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, strings.ToUpper(g.Title))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(g.Header, "\t"))
		fmt.Fprintln(tw, strings.Repeat("-", 60))
		for _, r := range g.Rows {
			fmt.Fprintln(tw, strings.Join(r, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func writeStyled(gs []grid, w io.Writer) error {
	for _, g := range gs {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers(g.Header...).
			Rows(g.Rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if col > 0 {
					return cellStyle.Align(lipgloss.Right)
				}
				return cellStyle
			})
		if _, err := fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render(g.Title), t.Render()); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdown(gs []grid, w io.Writer) error {
	for i, g := range gs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "### %s\n\n", g.Title)
		fmt.Fprintf(w, "| %s |\n", strings.Join(g.Header, " | "))
		fmt.Fprintf(w, "|%s\n", strings.Repeat("---|", len(g.Header)))
		for _, r := range g.Rows {
			fmt.Fprintf(w, "| %s |\n", strings.Join(r, " | "))
		}
	}
	return nil
}

func writeJSON(s *Summary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
