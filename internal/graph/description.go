// Package graph holds the backend-neutral description of a parsed input file.
package graph

import "fmt"

// Edge is one directed arc in file order.
type Edge struct {
	Source int
	Target int
	Weight float64
}

// Description is a parsed graph: nodes are the contiguous range
// [0, NodeCount) and edges keep the order they were read in. Parallel
// edges and self-loops are kept as-is.
type Description struct {
	NodeCount int
	Directed  bool
	Edges     []Edge
}

// New returns an empty description.
func New(directed bool) *Description {
	return &Description{Directed: directed}
}

// AddNodes declares n more nodes and returns the index of the first one.
func (d *Description) AddNodes(n int) int {
	first := d.NodeCount
	d.NodeCount += n
	return first
}

// AddEdge appends an edge. Both endpoints must already be declared.
func (d *Description) AddEdge(source, target int, weight float64) error {
	if source < 0 || source >= d.NodeCount {
		return fmt.Errorf("source %d outside [0, %d)", source, d.NodeCount)
	}
	if target < 0 || target >= d.NodeCount {
		return fmt.Errorf("target %d outside [0, %d)", target, d.NodeCount)
	}
	d.Edges = append(d.Edges, Edge{Source: source, Target: target, Weight: weight})
	return nil
}

// Stats summarises the shape of a description.
type Stats struct {
	Nodes         int
	Edges         int
	SelfLoops     int
	ParallelEdges int
}

// Stats walks the edge list once. An edge counts as parallel when an earlier
// edge has the same endpoints.
func (d *Description) Stats() Stats {
	s := Stats{Nodes: d.NodeCount, Edges: len(d.Edges)}
	seen := make(map[[2]int]struct{}, len(d.Edges))
	for _, e := range d.Edges {
		if e.Source == e.Target {
			s.SelfLoops++
		}
		key := [2]int{e.Source, e.Target}
		if !d.Directed && key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if _, ok := seen[key]; ok {
			s.ParallelEdges++
			continue
		}
		seen[key] = struct{}{}
	}
	return s
}
