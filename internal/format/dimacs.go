// Package format decodes graph corpora into backend-neutral descriptions.
//
// Two encodings are supported: the line-oriented .gr format of the 9th
// DIMACS implementation challenge (optionally gzip or zstd compressed) and
// the unlabeled binary format of the ARG Database.
package format

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signalnine/graphbench/internal/graph"
)

// maxEdgeHint caps the capacity reserved from a problem line so a corrupt
// header cannot force a huge allocation up front.
const maxEdgeHint = 1 << 26

// ParseGR reads a DIMACS .gr file. The directed flag only tags the result;
// arcs are always recorded as written.
func ParseGR(path string, directed bool) (*graph.Description, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	d, err := ParseGRReader(rc, directed)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
			return nil, fe
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return d, nil
}

// ParseGRReader is ParseGR over an already decompressed stream.
func ParseGRReader(r io.Reader, directed bool) (*graph.Description, error) {
	d := graph.New(directed)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	declared := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "c"):
			continue
		case strings.HasPrefix(line, "p"):
			if declared {
				return nil, &FormatError{Line: lineNo, Msg: MsgDuplicateProblemLine}
			}
			fields := strings.Fields(line)
			if len(fields) < 3 {
				return nil, &FormatError{Line: lineNo, Msg: MsgMalformedProblemLine}
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, &FormatError{Line: lineNo, Msg: MsgMalformedProblemLine, Err: err}
			}
			d.AddNodes(n)
			if len(fields) > 3 {
				if m, err := strconv.Atoi(fields[3]); err == nil && m > 0 {
					d.Edges = make([]graph.Edge, 0, min(m, maxEdgeHint))
				}
			}
			declared = true
		case strings.HasPrefix(line, "a"):
			if !declared {
				return nil, &FormatError{Line: lineNo, Msg: MsgMissingProblemLine}
			}
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, &FormatError{Line: lineNo, Msg: MsgMalformedArcLine}
			}
			u, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, &FormatError{Line: lineNo, Msg: MsgMalformedArcLine, Err: err}
			}
			v, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, &FormatError{Line: lineNo, Msg: MsgMalformedArcLine, Err: err}
			}
			// Weights past float64 range parse as infinities.
			w, err := strconv.ParseFloat(fields[3], 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return nil, &FormatError{Line: lineNo, Msg: MsgMalformedArcLine, Err: err}
			}
			// File node numbers are 1-based.
			if err := d.AddEdge(u-1, v-1, w); err != nil {
				return nil, &FormatError{Line: lineNo, Msg: MsgNodeOutOfRange, Err: err}
			}
		default:
			return nil, &FormatError{Line: lineNo, Msg: MsgUnrecognizedToken}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return d, nil
}
