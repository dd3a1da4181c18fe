// Package native is a dependency-free backend over a compressed sparse row
// adjacency. It is the reference point the library backends are compared
// against and the only backend with a subgraph isomorphism test.
package native

import (
	"fmt"
	"math"

	"github.com/signalnine/graphbench/internal/backend"
)

// Name is the backend name used in result file names.
const Name = "native"

// Backend implements backend.Backend and every optional capability.
type Backend struct{}

func New() *Backend { return &Backend{} }

func (*Backend) Name() string { return Name }

// Graph stores out-arcs of node u at targets[offsets[u]:offsets[u+1]], in
// insertion order. Undirected graphs store both directions of every edge.
type Graph struct {
	directed bool
	negative bool
	offsets  []int
	targets  []int32
	weights  []float64
}

func (g *Graph) NodeCount() int { return len(g.offsets) - 1 }
func (g *Graph) Directed() bool { return g.directed }

// OutDegree returns the number of arcs leaving u.
func (g *Graph) OutDegree(u int) int { return g.offsets[u+1] - g.offsets[u] }

type builder struct {
	directed bool
	n        int
	src, dst []int32
	w        []float64
	negative bool
}

func (*Backend) NewBuilder(directed bool, nodeHint, edgeHint int) backend.Builder {
	return &builder{
		directed: directed,
		src:      make([]int32, 0, edgeHint),
		dst:      make([]int32, 0, edgeHint),
		w:        make([]float64, 0, edgeHint),
	}
}

func (b *builder) AddNodes(n int) { b.n += n }

func (b *builder) AddEdge(source, target int, weight float64) error {
	if source < 0 || source >= b.n || target < 0 || target >= b.n {
		return fmt.Errorf("edge %d->%d outside [0, %d)", source, target, b.n)
	}
	if b.n > math.MaxInt32 {
		return fmt.Errorf("%d nodes exceed int32 indexing", b.n)
	}
	b.src = append(b.src, int32(source))
	b.dst = append(b.dst, int32(target))
	b.w = append(b.w, weight)
	if !(weight >= 0) {
		b.negative = true
	}
	return nil
}

// Graph lays the collected arcs out in CSR form with a stable counting sort.
func (b *builder) Graph() backend.Graph {
	g := &Graph{directed: b.directed, negative: b.negative, offsets: make([]int, b.n+1)}
	arcs := len(b.src)
	if !b.directed {
		for i := range b.src {
			if b.src[i] != b.dst[i] {
				arcs++
			}
		}
	}
	for i := range b.src {
		g.offsets[b.src[i]+1]++
		if !b.directed && b.src[i] != b.dst[i] {
			g.offsets[b.dst[i]+1]++
		}
	}
	for u := 0; u < b.n; u++ {
		g.offsets[u+1] += g.offsets[u]
	}
	g.targets = make([]int32, arcs)
	g.weights = make([]float64, arcs)
	next := append([]int(nil), g.offsets[:b.n]...)
	place := func(u, v int32, w float64) {
		g.targets[next[u]] = v
		g.weights[next[u]] = w
		next[u]++
	}
	for i := range b.src {
		place(b.src[i], b.dst[i], b.w[i])
		if !b.directed && b.src[i] != b.dst[i] {
			place(b.dst[i], b.src[i], b.w[i])
		}
	}
	return g
}

func asGraph(g backend.Graph) (*Graph, error) {
	ng, ok := g.(*Graph)
	if !ok {
		return nil, fmt.Errorf("native: foreign graph type %T", g)
	}
	return ng, nil
}
