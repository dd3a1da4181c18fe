package result

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Stem derives the dataset name used in result file names: the first two
// dot-separated parts of the input's base name, so USA-road-d.NY.gr.gz
// becomes USA-road-d.NY and rome99.gr stays rome99.gr.
func Stem(inputPath string) string {
	parts := strings.Split(filepath.Base(inputPath), ".")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, ".")
}

// PathFileName is the result file of a path benchmark.
func PathFileName(backend, inputPath string) string {
	return fmt.Sprintf("%s_%s.csv", backend, Stem(inputPath))
}

// IsoFileName is the result file of an isomorphism suite run.
func IsoFileName(backend string) string {
	return backend + "_subgraph_iso.csv"
}

// FormatValue renders v with the fewest digits that parse back to v.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Write replaces path with header (if any) followed by rows, in order. The
// file is written beside path and renamed into place, so a failed write
// never leaves a partial result behind.
func Write(path string, header []string, rows []Row) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating results dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".graphbench-*.csv")
	if err != nil {
		return fmt.Errorf("creating result file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			tmp.Close()
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for _, r := range rows {
		record := make([]string, 0, len(r.Values)+1)
		record = append(record, r.Label)
		for _, v := range r.Values {
			record = append(record, FormatValue(v))
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return fmt.Errorf("writing row %q: %w", r.Label, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// File is a result file read back from disk.
type File struct {
	Header []string
	Rows   []Row
}

// Find returns the first row labelled label.
func (f *File) Find(label string) (Row, bool) {
	for _, r := range f.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return Row{}, false
}

// Read parses a result file. When header is true the first record is kept
// apart from the rows.
func Read(path string, header bool) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	defer fd.Close()

	r := csv.NewReader(fd)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f := &File{}
	if header && len(records) > 0 {
		f.Header = records[0]
		records = records[1:]
	}
	for i, rec := range records {
		if len(rec) == 0 {
			continue
		}
		row := Row{Label: rec[0], Values: make([]float64, 0, len(rec)-1)}
		for _, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %s record %d: %w", path, i+1, err)
			}
			row.Values = append(row.Values, v)
		}
		f.Rows = append(f.Rows, row)
	}
	return f, nil
}
