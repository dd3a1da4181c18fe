package graph_test

import (
	"testing"

	"github.com/signalnine/graphbench/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEdgeRequiresDeclaredNodes(t *testing.T) {
	d := graph.New(true)
	require.Error(t, d.AddEdge(0, 0, 1))

	first := d.AddNodes(3)
	assert.Equal(t, 0, first)
	require.NoError(t, d.AddEdge(0, 2, 1.5))
	assert.Error(t, d.AddEdge(3, 0, 1))
	assert.Error(t, d.AddEdge(0, -1, 1))

	assert.Equal(t, 3, d.AddNodes(0))
	assert.Equal(t, []graph.Edge{{Source: 0, Target: 2, Weight: 1.5}}, d.Edges)
}

func TestStats(t *testing.T) {
	tests := []struct {
		name     string
		directed bool
		edges    [][2]int
		want     graph.Stats
	}{
		{"empty", true, nil, graph.Stats{Nodes: 3}},
		{"self loop", true, [][2]int{{1, 1}}, graph.Stats{Nodes: 3, Edges: 1, SelfLoops: 1}},
		{"directed reverse is not parallel", true, [][2]int{{0, 1}, {1, 0}}, graph.Stats{Nodes: 3, Edges: 2}},
		{"undirected reverse is parallel", false, [][2]int{{0, 1}, {1, 0}}, graph.Stats{Nodes: 3, Edges: 2, ParallelEdges: 1}},
		{"duplicate", true, [][2]int{{0, 2}, {0, 2}, {0, 2}}, graph.Stats{Nodes: 3, Edges: 3, ParallelEdges: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := graph.New(tt.directed)
			d.AddNodes(3)
			for _, e := range tt.edges {
				require.NoError(t, d.AddEdge(e[0], e[1], 1))
			}
			assert.Equal(t, tt.want, d.Stats())
		})
	}
}
