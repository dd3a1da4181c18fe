package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
	barWidth    = vg.Length(14)
)

type barSpec struct {
	File      string
	Operation string
	Title     string
	Datasets  func(string) bool
}

// Continental road networks dwarf the regional ones, so single-source
// timings get a chart per scale.
func continental(ds string) bool { return strings.HasSuffix(ds, ".USA") }
func regional(ds string) bool    { return !continental(ds) }
func anyDataset(string) bool     { return true }

var barCharts = []barSpec{
	{"creation", Operations[0], "Time to create a weighted directed graph", continental},
	{"single_source_shortest_path", Operations[1], "Single Source Shortest path between 2 nodes", continental},
	{"single_source_shortest_path_2", Operations[1], "Single Source Shortest path between 2 nodes", regional},
	{"all_pairs", Operations[2], "All Pairs Shortest Path Length", anyDataset},
	{"distance_matrix", Operations[3], "Distance Matrix", anyDataset},
}

// WriteCharts draws every chart with data behind it into opts.ChartsDir
// and returns the files written.
func WriteCharts(s *Summary, opts Options) ([]string, error) {
	dir := opts.ChartsDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating charts dir: %w", err)
	}

	var written []string
	save := func(p *plot.Plot, name string) error {
		exts := []string{".png"}
		if opts.TexExport {
			exts = append(exts, ".tex")
		}
		for _, ext := range exts {
			path := filepath.Join(dir, name+ext)
			if err := p.Save(chartWidth, chartHeight, path); err != nil {
				return fmt.Errorf("saving chart %s: %w", path, err)
			}
			written = append(written, path)
		}
		return nil
	}

	for _, bc := range barCharts {
		var datasets []string
		for _, ds := range s.Datasets {
			if !bc.Datasets(ds) {
				continue
			}
			for _, b := range s.Backends {
				if _, ok := s.Mean(bc.Operation, ds, b); ok {
					datasets = append(datasets, ds)
					break
				}
			}
		}
		if len(datasets) == 0 {
			continue
		}
		p, err := barChart(s, bc, datasets)
		if err != nil {
			return written, err
		}
		if err := save(p, bc.File); err != nil {
			return written, err
		}
	}

	for _, class := range isoClasses(s) {
		p, ok, err := isoChart(s, class)
		if err != nil {
			return written, err
		}
		if !ok {
			continue
		}
		if err := save(p, fmt.Sprintf("subgraph_isomorphism_%s_%s", class.Size, class.Valence)); err != nil {
			return written, err
		}
	}
	return written, nil
}

func barChart(s *Summary, bc barSpec, datasets []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = bc.Title
	p.X.Label.Text = "Data File"
	p.Y.Label.Text = "Runtime (sec.)"

	n := len(s.Backends)
	for i, b := range s.Backends {
		values := make(plotter.Values, len(datasets))
		for j, ds := range datasets {
			values[j], _ = s.Mean(bc.Operation, ds, b)
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", bc.File, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = barWidth * vg.Length(2*i-n+1) / 2
		p.Add(bars)
		p.Legend.Add(b, bars)
	}
	p.Legend.Top = true
	p.NominalX(datasets...)
	return p, nil
}

// isoClasses lists the distinct size/valence classes in summary order.
func isoClasses(s *Summary) []IsoLabel {
	var classes []IsoLabel
	for _, sum := range s.Isomorphism {
		if len(classes) == 0 || !classes[len(classes)-1].sameClass(sum.IsoLabel) {
			classes = append(classes, IsoLabel{Size: sum.Size, Valence: sum.Valence})
		}
	}
	return classes
}

// isoChart plots summed runtime against instance index on a log scale, one
// line per backend. Non-positive sums cannot be placed on the axis and are
// left out; ok is false when nothing remains.
func isoChart(s *Summary, class IsoLabel) (*plot.Plot, bool, error) {
	var indices []int
	pos := map[int]int{}
	for _, sum := range s.Isomorphism {
		if !sum.sameClass(class) {
			continue
		}
		if _, seen := pos[sum.Index]; !seen {
			pos[sum.Index] = len(indices)
			indices = append(indices, sum.Index)
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Subgraph is %d%% of graph size, valence = %d", class.SizePercent(), class.ValenceDegree())
	p.X.Label.Text = "Number of graph nodes"
	p.Y.Label.Text = "Sum of Runtime (sec.)"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	ticks := make([]plot.Tick, len(indices))
	for i, idx := range indices {
		ticks[i] = plot.Tick{Value: float64(i), Label: strconv.Itoa(idx)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	lines := 0
	lo, hi := 0.0, 0.0
	for i, b := range s.Backends {
		var xys plotter.XYs
		for _, sum := range s.Isomorphism {
			if sum.Backend != b || !sum.sameClass(class) || sum.Seconds <= 0 {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(pos[sum.Index]), Y: sum.Seconds})
			if lo == 0 || sum.Seconds < lo {
				lo = sum.Seconds
			}
			if sum.Seconds > hi {
				hi = sum.Seconds
			}
		}
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, false, err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(b, line)
		lines++
	}
	// Pad by a factor of two either side; a flat range would otherwise be
	// widened linearly to include zero.
	p.Y.Min, p.Y.Max = lo/2, hi*2
	return p, lines > 0, nil
}
