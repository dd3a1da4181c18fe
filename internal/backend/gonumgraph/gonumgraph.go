// Package gonumgraph benchmarks the gonum graph packages. Graphs are gonum
// multigraphs so the parallel arcs and self-loops present in raw corpus
// files survive construction.
package gonumgraph

import (
	"fmt"
	"math"

	"github.com/signalnine/graphbench/internal/backend"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/traverse"
	"gonum.org/v1/gonum/mat"
)

// Name is the backend name used in result file names.
const Name = "gonum"

// Backend implements backend.Backend, AllPairsSolver and
// DistanceMatrixSolver.
type Backend struct{}

func New() *Backend { return &Backend{} }

func (*Backend) Name() string { return Name }

type weightedMultigraph interface {
	graph.Graph
	graph.Weighted
	AddNode(graph.Node)
	NewWeightedLine(from, to graph.Node, weight float64) graph.WeightedLine
	SetWeightedLine(graph.WeightedLine)
}

// Graph wraps a gonum weighted multigraph.
type Graph struct {
	g        weightedMultigraph
	n        int
	directed bool
	negative bool
}

func (g *Graph) NodeCount() int { return g.n }
func (g *Graph) Directed() bool { return g.directed }

// lightestLine makes the effective weight between two nodes the cheapest of
// their parallel lines, which is what a shortest path would use.
func lightestLine(lines graph.WeightedLines) float64 {
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	w := math.Inf(1)
	for lines.Next() {
		w = math.Min(w, lines.WeightedLine().Weight())
	}
	lines.Reset()
	return w
}

type builder struct {
	graph *Graph
}

func (*Backend) NewBuilder(directed bool, nodeHint, edgeHint int) backend.Builder {
	var g weightedMultigraph
	if directed {
		dg := multi.NewWeightedDirectedGraph()
		dg.EdgeWeightFunc = lightestLine
		g = dg
	} else {
		ug := multi.NewWeightedUndirectedGraph()
		ug.EdgeWeightFunc = lightestLine
		g = ug
	}
	return &builder{graph: &Graph{g: g, directed: directed}}
}

func (b *builder) AddNodes(n int) {
	for i := 0; i < n; i++ {
		b.graph.g.AddNode(multi.Node(b.graph.n))
		b.graph.n++
	}
}

func (b *builder) AddEdge(source, target int, weight float64) error {
	if source < 0 || source >= b.graph.n || target < 0 || target >= b.graph.n {
		return fmt.Errorf("edge %d->%d outside [0, %d)", source, target, b.graph.n)
	}
	if !(weight >= 0) {
		b.graph.negative = true
	}
	g := b.graph.g
	g.SetWeightedLine(g.NewWeightedLine(multi.Node(source), multi.Node(target), weight))
	return nil
}

func (b *builder) Graph() backend.Graph { return b.graph }

func asGraph(g backend.Graph) (*Graph, error) {
	gg, ok := g.(*Graph)
	if !ok {
		return nil, fmt.Errorf("gonum: foreign graph type %T", g)
	}
	return gg, nil
}

func (*Backend) ShortestPath(bg backend.Graph, source, target int) (float64, error) {
	g, err := asGraph(bg)
	if err != nil {
		return 0, err
	}
	if g.negative {
		return 0, fmt.Errorf("gonum: %w", backend.ErrNegativeWeight)
	}
	if source < 0 || source >= g.n || target < 0 || target >= g.n {
		return 0, fmt.Errorf("gonum: path %d->%d outside [0, %d)", source, target, g.n)
	}
	_, w := path.DijkstraFromTo(multi.Node(source), multi.Node(target), g.g)
	return w, nil
}

func (*Backend) AllPairs(bg backend.Graph) error {
	g, err := asGraph(bg)
	if err != nil {
		return err
	}
	if g.negative {
		return fmt.Errorf("gonum: %w", backend.ErrNegativeWeight)
	}
	path.DijkstraAllPaths(g.g)
	return nil
}

func (*Backend) DistanceMatrix(bg backend.Graph) error {
	g, err := asGraph(bg)
	if err != nil {
		return err
	}
	HopDistances(g)
	return nil
}

// HopDistances returns the unweighted hop-count matrix of g, +Inf where no
// path exists. A graph without nodes yields nil.
func HopDistances(g *Graph) *mat.Dense {
	if g.n == 0 {
		return nil
	}
	data := make([]float64, g.n*g.n)
	for i := range data {
		data[i] = math.Inf(1)
	}
	m := mat.NewDense(g.n, g.n, data)
	var bf traverse.BreadthFirst
	for s := 0; s < g.n; s++ {
		bf.Walk(g.g, multi.Node(s), func(n graph.Node, depth int) bool {
			m.Set(s, int(n.ID()), float64(depth))
			return false
		})
		bf.Reset()
	}
	return m
}
