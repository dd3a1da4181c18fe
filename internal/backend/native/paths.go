package native

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/signalnine/graphbench/internal/backend"
)

type entry struct {
	node int32
	dist float64
}

type distHeap []entry

func (h distHeap) Len() int           { return len(h) }
func (h distHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any)        { *h = append(*h, x.(entry)) }
func (h *distHeap) Pop() any {
	old := *h
	e := old[len(old)-1]
	*h = old[:len(old)-1]
	return e
}

// dijkstra fills dist from source and stops early once target is settled.
// A negative target settles every reachable node.
func (g *Graph) dijkstra(source, target int, dist []float64, h *distHeap) float64 {
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	*h = (*h)[:0]
	dist[source] = 0
	heap.Push(h, entry{node: int32(source)})
	for h.Len() > 0 {
		e := heap.Pop(h).(entry)
		u := int(e.node)
		if e.dist > dist[u] {
			continue
		}
		if u == target {
			return e.dist
		}
		for i := g.offsets[u]; i < g.offsets[u+1]; i++ {
			v := g.targets[i]
			if d := e.dist + g.weights[i]; d < dist[v] {
				dist[v] = d
				heap.Push(h, entry{node: v, dist: d})
			}
		}
	}
	if target >= 0 {
		return dist[target]
	}
	return 0
}

func (*Backend) ShortestPath(bg backend.Graph, source, target int) (float64, error) {
	g, err := asGraph(bg)
	if err != nil {
		return 0, err
	}
	if g.negative {
		return 0, fmt.Errorf("native: %w", backend.ErrNegativeWeight)
	}
	n := g.NodeCount()
	if source < 0 || source >= n || target < 0 || target >= n {
		return 0, fmt.Errorf("native: path %d->%d outside [0, %d)", source, target, n)
	}
	var h distHeap
	return g.dijkstra(source, target, make([]float64, n), &h), nil
}

// AllPairs runs Dijkstra from every node. Distances are discarded row by row;
// the work done is what is being timed.
func (*Backend) AllPairs(bg backend.Graph) error {
	g, err := asGraph(bg)
	if err != nil {
		return err
	}
	if g.negative {
		return fmt.Errorf("native: %w", backend.ErrNegativeWeight)
	}
	n := g.NodeCount()
	dist := make([]float64, n)
	var h distHeap
	for s := 0; s < n; s++ {
		g.dijkstra(s, -1, dist, &h)
	}
	return nil
}

// HopDistances returns the dense row-major matrix of unweighted hop counts,
// +Inf where no path exists.
func (g *Graph) HopDistances() []float64 {
	n := g.NodeCount()
	m := make([]float64, n*n)
	for i := range m {
		m[i] = math.Inf(1)
	}
	queue := make([]int32, 0, n)
	for s := 0; s < n; s++ {
		row := m[s*n : (s+1)*n]
		row[s] = 0
		queue = append(queue[:0], int32(s))
		for head := 0; head < len(queue); head++ {
			u := queue[head]
			for i := g.offsets[u]; i < g.offsets[u+1]; i++ {
				v := g.targets[i]
				if math.IsInf(row[v], 1) {
					row[v] = row[u] + 1
					queue = append(queue, v)
				}
			}
		}
	}
	return m
}

func (*Backend) DistanceMatrix(bg backend.Graph) error {
	g, err := asGraph(bg)
	if err != nil {
		return err
	}
	g.HopDistances()
	return nil
}
