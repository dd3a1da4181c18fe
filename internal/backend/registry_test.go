package backend_test

import (
	"testing"

	"github.com/signalnine/graphbench/internal/backend"
	"github.com/signalnine/graphbench/internal/backend/gonumgraph"
	"github.com/signalnine/graphbench/internal/backend/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := backend.NewRegistry(native.New(), gonumgraph.New())

	b, ok := r.Lookup("gonum")
	require.True(t, ok)
	assert.Equal(t, "gonum", b.Name())

	_, ok = r.Lookup("networkx")
	assert.False(t, ok)
}

func TestRegistrySelect(t *testing.T) {
	r := backend.NewRegistry(native.New(), gonumgraph.New())
	assert.Equal(t, []string{"native", "gonum"}, r.Names())

	all, err := r.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	picked, err := r.Select([]string{"gonum", "native"})
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, "gonum", picked[0].Name())
	assert.Equal(t, "native", picked[1].Name())

	_, err = r.Select([]string{"native", "networkx"})
	assert.ErrorContains(t, err, `unknown backend "networkx" (known: native, gonum)`)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() { backend.NewRegistry(native.New(), native.New()) })
}
