package format_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/signalnine/graphbench/internal/format"
	"github.com/signalnine/graphbench/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// argBytes encodes adjacency lists in the unlabeled ARG layout.
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

func TestParseARGExact(t *testing.T) {
	data := argBytes([][]uint16{{1}, {}, {0, 2}})
	d, err := format.ParseARGReader(bytes.NewReader(data), true)
	require.NoError(t, err)

	assert.Equal(t, 3, d.NodeCount)
	assert.Equal(t, []graph.Edge{
		{Source: 0, Target: 1, Weight: 1},
		{Source: 2, Target: 0, Weight: 1},
		{Source: 2, Target: 2, Weight: 1},
	}, d.Edges)
}

func TestParseARGFromFile(t *testing.T) {
	path := writeFile(t, "si2_b03_m200.A00", argBytes([][]uint16{{1, 2}, {2}, {}}))
	d, err := format.Parse(path, false)
	require.NoError(t, err)
	assert.False(t, d.Directed)
	assert.Len(t, d.Edges, 3)
}

func TestParseARGEmptyGraph(t *testing.T) {
	d, err := format.ParseARGReader(bytes.NewReader([]byte{0, 0}), true)
	require.NoError(t, err)
	assert.Equal(t, 0, d.NodeCount)
	assert.Empty(t, d.Edges)
}

func TestParseARGTruncated(t *testing.T) {
	full := argBytes([][]uint16{{1}, {}, {0, 2}})
	for cut := 0; cut < len(full); cut++ {
		_, err := format.ParseARGReader(bytes.NewReader(full[:cut]), true)
		var fe *format.FormatError
		require.True(t, errors.As(err, &fe), "cut at %d: %v", cut, err)
		assert.Equal(t, format.MsgTruncatedBinaryGraph, fe.Msg)
	}
}

func TestParseARGTargetOutOfRange(t *testing.T) {
	_, err := format.ParseARGReader(bytes.NewReader(argBytes([][]uint16{{5}})), true)
	var fe *format.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, format.MsgNodeOutOfRange, fe.Msg)
}

func TestParseARGTruncatedFileNamesPath(t *testing.T) {
	path := writeFile(t, "si4_b06_m400.A01", []byte{3, 0, 1})
	_, err := format.ParseARG(path, true)
	var fe *format.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, path, fe.Path)
	assert.Contains(t, err.Error(), "truncated binary graph")
}
