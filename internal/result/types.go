// Package result defines the timing schema shared by every benchmark and the
// flat CSV files it is persisted to.
package result

import "gonum.org/v1/gonum/stat"

// Row labels of the path benchmarks. The aggregator matches on these exact
// strings.
const (
	LabelCreation       = "Creation"
	LabelSingleSource   = "Single Source"
	LabelAllPairs       = "All Pairs Shortest Path Length"
	LabelDistanceMatrix = "Distance Matrix"
)

// IsoHeader is the header row of isomorphism suite files.
var IsoHeader = []string{"Graph", "avg_time"}

// TrialResult holds the wall-clock seconds of every repetition of one
// operation.
type TrialResult struct {
	Operation string
	Durations []float64
}

// Row converts t to its serialized form.
func (t TrialResult) Row() Row {
	return Row{Label: t.Operation, Values: append([]float64(nil), t.Durations...)}
}

// Row is one line of a result file: a label followed by its values.
type Row struct {
	Label  string
	Values []float64
}

// Mean of the row's values; zero for an empty row.
func (r Row) Mean() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	return stat.Mean(r.Values, nil)
}

// Accumulator collects durations under a label across repeated runs and
// averages them only when rows are requested.
type Accumulator struct {
	order   []string
	samples map[string][]float64
}

func NewAccumulator() *Accumulator {
	return &Accumulator{samples: make(map[string][]float64)}
}

// Add appends durations to label.
func (a *Accumulator) Add(label string, durations ...float64) {
	if _, ok := a.samples[label]; !ok {
		a.order = append(a.order, label)
	}
	a.samples[label] = append(a.samples[label], durations...)
}

// Samples returns the durations recorded for label.
func (a *Accumulator) Samples(label string) []float64 {
	return a.samples[label]
}

// Rows returns one row per label in first-seen order, valued with the mean
// of its samples.
func (a *Accumulator) Rows() []Row {
	rows := make([]Row, 0, len(a.order))
	for _, label := range a.order {
		mean := Row{Values: a.samples[label]}.Mean()
		rows = append(rows, Row{Label: label, Values: []float64{mean}})
	}
	return rows
}
