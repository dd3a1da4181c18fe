package format

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signalnine/graphbench/internal/graph"
)

// ParseARG reads an unlabeled ARG Database graph. Every field is a
// little-endian uint16: the node count, then for each node its out-degree
// followed by that many target indices. The format has no weights, so every
// edge weighs 1. Edges are recorded as stored; an undirected reading is left
// to the consumer.
func ParseARG(path string, directed bool) (*graph.Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	d, err := ParseARGReader(f, directed)
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

// ParseARGReader is ParseARG over a stream.
func ParseARGReader(r io.Reader, directed bool) (*graph.Description, error) {
	br := bufio.NewReader(r)
	var buf [2]byte
	next := func() (int, error) {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return 0, &FormatError{Msg: MsgTruncatedBinaryGraph, Err: err}
			}
			return 0, err
		}
		return int(binary.LittleEndian.Uint16(buf[:])), nil
	}

	d := graph.New(directed)
	n, err := next()
	if err != nil {
		return nil, err
	}
	d.AddNodes(n)
	for i := 0; i < n; i++ {
		degree, err := next()
		if err != nil {
			return nil, err
		}
		for j := 0; j < degree; j++ {
			target, err := next()
			if err != nil {
				return nil, err
			}
			if err := d.AddEdge(i, target, 1); err != nil {
				return nil, &FormatError{Msg: MsgNodeOutOfRange, Err: err}
			}
		}
	}
	return d, nil
}

// Parse dispatches on Detect.
func Parse(path string, directed bool) (*graph.Description, error) {
	if Detect(path) == KindDIMACS {
		return ParseGR(path, directed)
	}
	return ParseARG(path, directed)
}
