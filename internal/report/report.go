// Package report aggregates stored result files into cross-backend
// comparisons: summary tables on a writer and, optionally, charts on disk.
package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/signalnine/graphbench/internal/result"
)

// Operations compared across backends, in display order.
var Operations = []string{
	result.LabelCreation,
	result.LabelSingleSource,
	result.LabelAllPairs,
	result.LabelDistanceMatrix,
}

// Options control presentation. They are fixed when the Aggregator is built.
type Options struct {
	// Theme is "default" (styled tables) or "plain".
	Theme string
	// TexExport writes a .tex rendering next to every chart.
	TexExport bool
	Charts    bool
	ChartsDir string
	// Format is table, markdown or json.
	Format string
}

// Aggregator reads the result files of Backends over Datasets from Dir.
type Aggregator struct {
	Dir      string
	Backends []string
	Datasets []string
	Options  Options
	Logger   *slog.Logger
}

// Measurement is the mean duration of one operation.
type Measurement struct {
	Operation string  `json:"operation"`
	Dataset   string  `json:"dataset"`
	Backend   string  `json:"backend"`
	Mean      float64 `json:"mean_seconds"`
}

// IsoSum is the summed mean duration of every fixture sharing a label
// prefix.
type IsoSum struct {
	IsoLabel
	Backend string  `json:"backend"`
	Seconds float64 `json:"sum_seconds"`
}

type Summary struct {
	Backends    []string      `json:"backends"`
	Datasets    []string      `json:"datasets"`
	Path        []Measurement `json:"path"`
	Isomorphism []IsoSum      `json:"isomorphism"`
}

// Mean looks up one path measurement.
func (s *Summary) Mean(operation, dataset, backend string) (float64, bool) {
	for _, m := range s.Path {
		if m.Operation == operation && m.Dataset == dataset && m.Backend == backend {
			return m.Mean, true
		}
	}
	return 0, false
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// Collect reads every result file the aggregator knows about. Missing files
// are logged and skipped; unreadable ones fail the report.
func (a *Aggregator) Collect() (*Summary, error) {
	s := &Summary{Backends: a.Backends, Datasets: a.Datasets}
	for _, ds := range a.Datasets {
		for _, b := range a.Backends {
			path := filepath.Join(a.Dir, result.PathFileName(b, ds))
			f, err := result.Read(path, false)
			if errors.Is(err, fs.ErrNotExist) {
				a.logger().Warn("result file missing", slog.String("file", path))
				continue
			}
			if err != nil {
				return nil, err
			}
			for _, op := range Operations {
				row, ok := f.Find(op)
				if !ok || len(row.Values) == 0 {
					continue
				}
				s.Path = append(s.Path, Measurement{Operation: op, Dataset: ds, Backend: b, Mean: row.Mean()})
			}
		}
	}

	rank := make(map[string]int, len(a.Backends))
	for i, b := range a.Backends {
		rank[b] = i
		path := filepath.Join(a.Dir, result.IsoFileName(b))
		f, err := result.Read(path, true)
		if errors.Is(err, fs.ErrNotExist) {
			a.logger().Warn("result file missing", slog.String("file", path))
			continue
		}
		if err != nil {
			return nil, err
		}
		sums, err := sumIso(b, f.Rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		s.Isomorphism = append(s.Isomorphism, sums...)
	}
	sort.SliceStable(s.Isomorphism, func(i, j int) bool {
		x, y := s.Isomorphism[i], s.Isomorphism[j]
		if !x.sameClass(y.IsoLabel) {
			return x.before(y.IsoLabel)
		}
		if x.Index != y.Index {
			return x.Index < y.Index
		}
		return rank[x.Backend] < rank[y.Backend]
	})
	return s, nil
}

// Generate collects, renders the summary to w and draws charts when they
// are enabled.
func (a *Aggregator) Generate(w io.Writer) error {
	s, err := a.Collect()
	if err != nil {
		return err
	}
	if err := Render(w, s, a.Options); err != nil {
		return err
	}
	if !a.Options.Charts {
		return nil
	}
	written, err := WriteCharts(s, a.Options)
	if err != nil {
		return err
	}
	for _, f := range written {
		a.logger().Info("chart written", slog.String("file", f))
	}
	return nil
}
