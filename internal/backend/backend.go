// Package backend defines the contract a graph library implements to be
// benchmarked, and replays parsed descriptions into it.
package backend

import (
	"errors"
	"fmt"

	"github.com/signalnine/graphbench/internal/graph"
)

// ErrUnsupported is returned when a backend lacks a capability.
var ErrUnsupported = errors.New("operation not supported by backend")

// ErrNegativeWeight is returned by weighted path operations on a graph with
// a negative or NaN edge weight. Dijkstra needs non-negative weights.
var ErrNegativeWeight = fmt.Errorf("negative edge weight: %w", ErrUnsupported)

// Graph is a graph materialized by a backend.
type Graph interface {
	NodeCount() int
	Directed() bool
}

// Builder materializes one graph. Nodes must be declared before edges that
// reference them.
type Builder interface {
	AddNodes(n int)
	AddEdge(source, target int, weight float64) error
	Graph() Graph
}

// Backend is a graph library under comparison.
type Backend interface {
	Name() string
	NewBuilder(directed bool, nodeHint, edgeHint int) Builder
	// ShortestPath returns the weighted distance from source to target,
	// +Inf when target is unreachable.
	ShortestPath(g Graph, source, target int) (float64, error)
}

// AllPairsSolver computes every shortest path length.
type AllPairsSolver interface {
	AllPairs(g Graph) error
}

// DistanceMatrixSolver materializes the dense hop-count distance matrix.
type DistanceMatrixSolver interface {
	DistanceMatrix(g Graph) error
}

// SubgraphMatcher decides whether target has an induced subgraph
// isomorphic to pattern.
type SubgraphMatcher interface {
	SubgraphIsomorphic(target, pattern Graph) (bool, error)
}

// Capabilities lists the optional operations b implements.
func Capabilities(b Backend) []string {
	caps := []string{"build", "shortest-path"}
	if _, ok := b.(AllPairsSolver); ok {
		caps = append(caps, "all-pairs")
	}
	if _, ok := b.(DistanceMatrixSolver); ok {
		caps = append(caps, "distance-matrix")
	}
	if _, ok := b.(SubgraphMatcher); ok {
		caps = append(caps, "subgraph-isomorphism")
	}
	return caps
}

// Build replays d into a fresh graph owned by b, preserving edge order.
func Build(b Backend, d *graph.Description) (Graph, error) {
	bld := b.NewBuilder(d.Directed, d.NodeCount, len(d.Edges))
	bld.AddNodes(d.NodeCount)
	for i, e := range d.Edges {
		if err := bld.AddEdge(e.Source, e.Target, e.Weight); err != nil {
			return nil, fmt.Errorf("%s: adding edge %d (%d->%d): %w", b.Name(), i, e.Source, e.Target, err)
		}
	}
	return bld.Graph(), nil
}
