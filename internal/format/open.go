package format

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Open returns a reader over the decompressed contents of path. The codec is
// picked from the suffix: .gz is gzip, .zst is zstd, anything else is read
// as-is.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip stream %s: %w", path, err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening zstd stream %s: %w", path, err)
		}
		rc := zr.IOReadCloser()
		return &stackedReader{Reader: rc, closers: []io.Closer{rc, f}}, nil
	default:
		return f, nil
	}
}

// stackedReader closes a decoder and the file underneath it.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Kind identifies an on-disk graph encoding.
type Kind string

const (
	KindDIMACS Kind = "dimacs"
	KindARG    Kind = "arg"
)

// Detect guesses the encoding from the file name. DIMACS files carry a .gr
// component or a compression suffix; ARG Database files use bare names such
// as si2_b03_m200.A00.
func Detect(path string) Kind {
	base := filepath.Base(path)
	base = strings.TrimSuffix(strings.TrimSuffix(base, ".gz"), ".zst")
	if base != filepath.Base(path) {
		return KindDIMACS
	}
	for _, part := range strings.Split(base, ".")[1:] {
		if part == "gr" {
			return KindDIMACS
		}
	}
	return KindARG
}
