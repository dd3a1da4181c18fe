package cmd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/graphbench/internal/backend"
	"github.com/signalnine/graphbench/internal/config"
	"github.com/signalnine/graphbench/internal/format"
	"github.com/signalnine/graphbench/internal/result"
)

const roadGR = `c tiny road network
p sp 4 5
a 1 2 3
a 2 4 4
a 1 3 1
a 3 4 9
a 4 1 2
`

// execute runs the root command with a config written into dir.
func execute(t *testing.T, dir, yaml string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(dir, "graphbench.yaml")
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func argBytes(adj [][]uint16) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint16(len(adj)))
	for _, targets := range adj {
		binary.Write(&buf, binary.LittleEndian, uint16(len(targets)))
		for _, v := range targets {
			binary.Write(&buf, binary.LittleEndian, v)
		}
	}
	return buf.Bytes()
}

func TestPathCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "road.gr")
	writeFile(t, input, []byte(roadGR))
	results := filepath.Join(dir, "results")
	prom := filepath.Join(dir, "graphbench.prom")

	_, err := execute(t, dir, "trials: 2\nresults:\n  dir: "+results+"\nmetrics:\n  textfile: "+prom+"\n", "path", input)
	if err != nil {
		t.Fatalf("path: %v", err)
	}

	want := []string{result.LabelCreation, result.LabelSingleSource, result.LabelAllPairs, result.LabelDistanceMatrix}
	for _, name := range []string{"native", "gonum"} {
		f, err := result.Read(filepath.Join(results, name+"_road.gr.csv"), false)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(f.Rows) != len(want) {
			t.Fatalf("%s: got %d rows, want %d", name, len(f.Rows), len(want))
		}
		for i, r := range f.Rows {
			if r.Label != want[i] {
				t.Errorf("%s row %d: got %q, want %q", name, i, r.Label, want[i])
			}
			if len(r.Values) != 2 {
				t.Errorf("%s %s: got %d values, want 2", name, r.Label, len(r.Values))
			}
		}
	}

	data, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("metrics textfile: %v", err)
	}
	if !strings.Contains(string(data), `graphbench_trials_total{backend="native",operation="Creation"} 2`) {
		t.Errorf("metrics textfile missing native creation count:\n%s", data)
	}
}

func TestPathCommandGuards(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "road.gr")
	writeFile(t, input, []byte(roadGR))

	cfg := "trials: 1\nbackends: [native]\nguards:\n  all_pairs_max_nodes: 4\n  distance_matrix_budget_bytes: 128\nresults:\n  dir: " + dir + "\n"
	if _, err := execute(t, dir, cfg, "path", input); err != nil {
		t.Fatalf("path: %v", err)
	}
	f, err := result.Read(filepath.Join(dir, "native_road.gr.csv"), false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Find(result.LabelAllPairs); ok {
		t.Error("all pairs ran on a graph at the node limit")
	}
	if _, ok := f.Find(result.LabelDistanceMatrix); ok {
		t.Error("distance matrix ran with 4*4*8 bytes against a 128 byte budget")
	}
	if _, err := os.Stat(filepath.Join(dir, "gonum_road.gr.csv")); !os.IsNotExist(err) {
		t.Error("unselected backend wrote results")
	}
}

func TestPathCommandMalformedInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.gr")
	writeFile(t, input, []byte("a 1 2 3\np sp 2 1\n"))

	_, err := execute(t, dir, "results:\n  dir: "+dir+"\n", "path", input)
	var fe *format.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want a FormatError", err)
	}
	if fe.Msg != format.MsgMissingProblemLine {
		t.Errorf("got %q, want %q", fe.Msg, format.MsgMissingProblemLine)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.csv"))
	if len(matches) != 0 {
		t.Errorf("partial results written: %v", matches)
	}
}

func TestPathCommandNegativeWeight(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "neg.gr")
	writeFile(t, input, []byte("p sp 3 2\na 1 2 -1\na 2 3 2\n"))
	prom := filepath.Join(dir, "graphbench.prom")

	_, err := execute(t, dir, "results:\n  dir: "+dir+"\nmetrics:\n  textfile: "+prom+"\n", "path", input)
	if !errors.Is(err, backend.ErrNegativeWeight) {
		t.Fatalf("got %v, want %v", err, backend.ErrNegativeWeight)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.csv"))
	if len(matches) != 0 {
		t.Errorf("results written for a failed run: %v", matches)
	}
	if _, err := os.Stat(prom); err != nil {
		t.Errorf("metrics textfile not written after failure: %v", err)
	}
}

func TestPathCommandArgs(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, dir, "", "path"); err == nil {
		t.Error("expected an error without an input file")
	}
	if _, err := execute(t, dir, "", "path", "a.gr", "b.gr"); err == nil {
		t.Error("expected an error with two input files")
	}
}

func TestIsoCommand(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "graphsdb")
	fixtures := filepath.Join(corpus, "si2", "bvg", "b03")
	writeFile(t, filepath.Join(fixtures, "si2_b03_m3.A00"), argBytes([][]uint16{{1}, {}}))
	writeFile(t, filepath.Join(fixtures, "si2_b03_m3.B00"), argBytes([][]uint16{{1, 2}, {2}, {}}))
	results := filepath.Join(dir, "results")

	cfg := "trials: 3\nresults:\n  dir: " + results + "\nisomorphism:\n  prefixes: [si2]\n  groups:\n    bvg: [b03]\n"
	if _, err := execute(t, dir, cfg, "iso", corpus); err != nil {
		t.Fatalf("iso: %v", err)
	}
	f, err := result.Read(filepath.Join(results, "native_subgraph_iso.csv"), true)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(f.Header, ",") != "Graph,avg_time" {
		t.Errorf("header: got %v", f.Header)
	}
	if len(f.Rows) != 1 || f.Rows[0].Label != "si2_b03_m3.A00" || len(f.Rows[0].Values) != 1 {
		t.Errorf("rows: got %+v", f.Rows)
	}
	if _, err := os.Stat(filepath.Join(results, "gonum_subgraph_iso.csv")); !os.IsNotExist(err) {
		t.Error("backend without a matcher wrote isomorphism results")
	}
}

func TestIsoCommandNoMatcher(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "backends: [gonum]\n", "iso", dir)
	if !errors.Is(err, errNoMatcher) {
		t.Errorf("got %v, want %v", err, errNoMatcher)
	}
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "road.gr")
	writeFile(t, input, []byte(roadGR))
	cfg := "trials: 2\nresults:\n  dir: " + dir + "\nreport:\n  path_files: [road.gr]\n"
	if _, err := execute(t, dir, cfg, "path", input); err != nil {
		t.Fatalf("path: %v", err)
	}

	out, err := execute(t, dir, cfg, "report", "--format", "markdown")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"### Creation", "### Distance Matrix", "| Dataset | native | gonum |", "| road.gr |"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, dir, cfg, "report", "--format", "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestReportChartsFollowResultsDir(t *testing.T) {
	dir := t.TempDir()
	results := filepath.Join(dir, "results")
	input := filepath.Join(dir, "road.gr")
	writeFile(t, input, []byte(roadGR))
	if _, err := execute(t, dir, "trials: 1\nresults:\n  dir: "+results+"\n", "path", input); err != nil {
		t.Fatalf("path: %v", err)
	}

	cfg := "results:\n  dir: " + dir + "\nreport:\n  charts: true\n  path_files: [road.gr]\n"
	if _, err := execute(t, dir, cfg, "report", results); err != nil {
		t.Fatalf("report: %v", err)
	}
	if _, err := os.Stat(filepath.Join(results, "all_pairs.png")); err != nil {
		t.Errorf("chart not drawn next to the reported results: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "all_pairs.png")); !os.IsNotExist(err) {
		t.Error("chart drawn into the configured results dir instead of the argument")
	}
}

func TestPrintList(t *testing.T) {
	var buf bytes.Buffer
	c := config.Default()
	c.Backends = []string{"native"}
	if err := printList(&buf, c, newRegistry()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"native (build, shortest-path, all-pairs, distance-matrix, subgraph-isomorphism)\n",
		"gonum (build, shortest-path, all-pairs, distance-matrix) [disabled]\n",
		"fewer than 100,000 nodes",
		"under 126 GB",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	c.Backends = []string{"networkx"}
	if err := printList(&buf, c, newRegistry()); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "road.gr")
	writeFile(t, input, []byte(roadGR+"a 4 4 1\na 1 2 7\n"))

	var buf bytes.Buffer
	g := guardsFrom(config.Default())
	if err := validateFile(&buf, input, g); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"format:", "dimacs", "nodes:", "edges:", "7\n", "self-loops:", "all pairs:", "runs"} {
		if !strings.Contains(out, want) {
			t.Errorf("validate output missing %q:\n%s", want, out)
		}
	}

	fixture := filepath.Join(dir, "si2_b03_m3.A00")
	writeFile(t, fixture, argBytes([][]uint16{{1}, {}})[:3])
	if err := validateFile(&buf, fixture, g); err == nil {
		t.Error("expected an error for a truncated fixture")
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "list"})
	if err := root.Execute(); err == nil {
		t.Error("expected an error for a missing explicit config")
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		log     config.Log
		wantErr bool
	}{
		{"text", config.Log{Level: "info", Format: "text"}, false},
		{"json", config.Log{Level: "debug", Format: "json"}, false},
		{"bad level", config.Log{Level: "loud", Format: "text"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLogger(io.Discard, tt.log)
			if (err != nil) != tt.wantErr {
				t.Errorf("newLogger(%+v) error = %v, wantErr %v", tt.log, err, tt.wantErr)
			}
		})
	}
}
