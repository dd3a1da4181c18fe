package gonumgraph_test

import (
	"math"
	"testing"

	"github.com/signalnine/graphbench/internal/backend"
	"github.com/signalnine/graphbench/internal/backend/backendtest"
	"github.com/signalnine/graphbench/internal/backend/gonumgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConformance(t *testing.T) {
	backendtest.Run(t, gonumgraph.New())
}

func TestHopDistances(t *testing.T) {
	g, err := backend.Build(gonumgraph.New(), backendtest.Road(true))
	require.NoError(t, err)

	m := gonumgraph.HopDistances(g.(*gonumgraph.Graph))
	r, c := m.Dims()
	require.Equal(t, 5, r)
	require.Equal(t, 5, c)

	assert.Equal(t, 0.0, m.At(0, 0))
	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, 2.0, m.At(0, 3))
	assert.Equal(t, 3.0, m.At(0, 4))
	assert.True(t, math.IsInf(m.At(4, 0), 1))
}

func TestCapabilities(t *testing.T) {
	assert.Equal(t, []string{"build", "shortest-path", "all-pairs", "distance-matrix"},
		backend.Capabilities(gonumgraph.New()))
}
