// Package backendtest is a conformance suite every backend runs from its
// own tests.
package backendtest

import (
	"math"
	"testing"

	"github.com/signalnine/graphbench/internal/backend"
	"github.com/signalnine/graphbench/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Road returns a small weighted road network. The shortest 0->4 route is
// 0-2-1-3-4 with length 7; 0->1 carries a heavier parallel arc and a
// self-loop sits on node 3.
func Road(directed bool) *graph.Description {
	d := graph.New(directed)
	d.AddNodes(5)
	for _, e := range []graph.Edge{
		{Source: 0, Target: 1, Weight: 10},
		{Source: 0, Target: 2, Weight: 1},
		{Source: 2, Target: 1, Weight: 2},
		{Source: 1, Target: 3, Weight: 1},
		{Source: 2, Target: 3, Weight: 5},
		{Source: 3, Target: 3, Weight: 0.25},
		{Source: 3, Target: 4, Weight: 3},
		{Source: 0, Target: 1, Weight: 4},
	} {
		if err := d.AddEdge(e.Source, e.Target, e.Weight); err != nil {
			panic(err)
		}
	}
	return d
}

type foreignGraph struct{}

func (foreignGraph) NodeCount() int { return 1 }
func (foreignGraph) Directed() bool { return true }

// Run exercises b against the backend contract.
func Run(t *testing.T, b backend.Backend) {
	t.Run("build", func(t *testing.T) {
		g, err := backend.Build(b, Road(true))
		require.NoError(t, err)
		assert.Equal(t, 5, g.NodeCount())
		assert.True(t, g.Directed())
	})

	t.Run("build empty", func(t *testing.T) {
		g, err := backend.Build(b, graph.New(true))
		require.NoError(t, err)
		assert.Equal(t, 0, g.NodeCount())
	})

	t.Run("builder rejects undeclared nodes", func(t *testing.T) {
		bld := b.NewBuilder(true, 2, 1)
		bld.AddNodes(2)
		assert.Error(t, bld.AddEdge(0, 2, 1))
		assert.Error(t, bld.AddEdge(-1, 0, 1))
		assert.NoError(t, bld.AddEdge(1, 0, 1))
	})

	t.Run("shortest path directed", func(t *testing.T) {
		g, err := backend.Build(b, Road(true))
		require.NoError(t, err)

		d, err := b.ShortestPath(g, 0, 4)
		require.NoError(t, err)
		assert.InDelta(t, 7, d, 1e-12)

		d, err = b.ShortestPath(g, 0, 1)
		require.NoError(t, err)
		assert.InDelta(t, 3, d, 1e-12)

		d, err = b.ShortestPath(g, 4, 0)
		require.NoError(t, err)
		assert.True(t, math.IsInf(d, 1), "got %v", d)

		_, err = b.ShortestPath(g, 0, 5)
		assert.Error(t, err)
	})

	t.Run("shortest path undirected", func(t *testing.T) {
		g, err := backend.Build(b, Road(false))
		require.NoError(t, err)
		assert.False(t, g.Directed())

		d, err := b.ShortestPath(g, 4, 0)
		require.NoError(t, err)
		assert.InDelta(t, 7, d, 1e-12)
	})

	t.Run("parallel arc uses lightest weight", func(t *testing.T) {
		d := graph.New(true)
		d.AddNodes(2)
		require.NoError(t, d.AddEdge(0, 1, 9))
		require.NoError(t, d.AddEdge(0, 1, 2))
		require.NoError(t, d.AddEdge(0, 1, 5))
		g, err := backend.Build(b, d)
		require.NoError(t, err)
		got, err := b.ShortestPath(g, 0, 1)
		require.NoError(t, err)
		assert.InDelta(t, 2, got, 1e-12)
	})

	t.Run("optional capabilities", func(t *testing.T) {
		g, err := backend.Build(b, Road(true))
		require.NoError(t, err)
		if ap, ok := b.(backend.AllPairsSolver); ok {
			assert.NoError(t, ap.AllPairs(g))
			assert.Error(t, ap.AllPairs(foreignGraph{}))
		}
		if dm, ok := b.(backend.DistanceMatrixSolver); ok {
			assert.NoError(t, dm.DistanceMatrix(g))
			empty, err := backend.Build(b, graph.New(true))
			require.NoError(t, err)
			assert.NoError(t, dm.DistanceMatrix(empty))
		}
	})

	t.Run("negative weights refuse weighted paths", func(t *testing.T) {
		for _, w := range []float64{-1, math.NaN()} {
			d := graph.New(true)
			d.AddNodes(3)
			require.NoError(t, d.AddEdge(0, 1, w))
			require.NoError(t, d.AddEdge(1, 2, 2))
			g, err := backend.Build(b, d)
			require.NoError(t, err, "building stays possible")

			_, err = b.ShortestPath(g, 0, 2)
			assert.ErrorIs(t, err, backend.ErrNegativeWeight)
			assert.ErrorIs(t, err, backend.ErrUnsupported)
			if ap, ok := b.(backend.AllPairsSolver); ok {
				assert.ErrorIs(t, ap.AllPairs(g), backend.ErrNegativeWeight)
			}
			if dm, ok := b.(backend.DistanceMatrixSolver); ok {
				assert.NoError(t, dm.DistanceMatrix(g), "hop counts ignore weights")
			}
		}
	})

	t.Run("foreign graph", func(t *testing.T) {
		_, err := b.ShortestPath(foreignGraph{}, 0, 0)
		assert.Error(t, err)
	})
}
