package native

import (
	"fmt"
	"math"
	"slices"

	"github.com/signalnine/graphbench/internal/backend"
)

// walkBudget bounds the work spent on closed walk signatures, roughly
// nodes * degree^levels.
const walkBudget = 1 << 25

// adjacency is a sorted, deduplicated view of a Graph used for constant
// shape queries while matching.
type adjacency struct {
	out  [][]int32
	in   [][]int32
	nbr  [][]int32
	loop []bool
	// walks[u][k-3] counts closed walks of length k through u in the
	// underlying simple undirected graph.
	walks [][]int64
}

func newAdjacency(g *Graph) *adjacency {
	n := g.NodeCount()
	a := &adjacency{
		out:  make([][]int32, n),
		in:   make([][]int32, n),
		nbr:  make([][]int32, n),
		loop: make([]bool, n),
	}
	for u := 0; u < n; u++ {
		for i := g.offsets[u]; i < g.offsets[u+1]; i++ {
			v := g.targets[i]
			if int(v) == u {
				a.loop[u] = true
			}
			a.out[u] = append(a.out[u], v)
			a.in[v] = append(a.in[v], int32(u))
		}
	}
	for u := 0; u < n; u++ {
		a.out[u] = sortedSet(a.out[u])
		a.in[u] = sortedSet(a.in[u])
		a.nbr[u] = sortedSet(append(append([]int32(nil), a.out[u]...), a.in[u]...))
	}
	return a
}

func sortedSet(s []int32) []int32 {
	slices.Sort(s)
	return slices.Compact(s)
}

func (a *adjacency) has(u, v int) bool {
	_, ok := slices.BinarySearch(a.out[u], int32(v))
	return ok
}

// walkLevels returns how many neighborhood levels fit in walkBudget, from 2
// to 4, or 0 when even two levels do not.
func (a *adjacency) walkLevels() int {
	n := len(a.nbr)
	if n == 0 {
		return 0
	}
	arcs := 0
	for _, ns := range a.nbr {
		arcs += len(ns)
	}
	d := math.Max(float64(arcs)/float64(n), 1)
	levels := 0
	for h := 2; h <= 4; h++ {
		if float64(n)*math.Pow(d, float64(h)) > walkBudget {
			break
		}
		levels = h
	}
	return levels
}

// countWalks fills walks with closed walk counts of length 3 to 2*levels.
// Self-loops are left out; they are compared separately.
func (a *adjacency) countWalks(levels int) {
	n := len(a.nbr)
	a.walks = make([][]int64, n)
	if levels < 2 {
		return
	}
	// counts[j][w] is the number of walks of length j from the current
	// node to w; touched[j] lists the w with a nonzero count.
	counts := make([][]int64, levels+1)
	touched := make([][]int32, levels+1)
	for j := range counts {
		counts[j] = make([]int64, n)
	}
	for v := 0; v < n; v++ {
		counts[0][v] = 1
		touched[0] = append(touched[0][:0], int32(v))
		for j := 1; j <= levels; j++ {
			touched[j] = touched[j][:0]
			for _, u := range touched[j-1] {
				c := counts[j-1][u]
				for _, w := range a.nbr[u] {
					if w == u {
						continue
					}
					if counts[j][w] == 0 {
						touched[j] = append(touched[j], w)
					}
					counts[j][w] += c
				}
			}
		}
		sig := make([]int64, 0, 2*levels-2)
		for k := 3; k <= 2*levels; k++ {
			// A^k[v][v] is the sum over w of A^i[v][w] * A^(k-i)[w][v].
			i := k / 2
			var s int64
			for _, w := range touched[i] {
				s += counts[i][w] * counts[k-i][w]
			}
			sig = append(sig, s)
		}
		a.walks[v] = sig
		for j := range touched {
			for _, w := range touched[j] {
				counts[j][w] = 0
			}
		}
	}
}

// matcher searches for an induced embedding of p into t with VF2 style
// backtracking. Candidates come from the target neighbors of an already
// mapped pattern neighbor, and terminal set counts cut branches that cannot
// be completed.
type matcher struct {
	p, t   *adjacency
	order  []int
	parent []int
	core   []int  // pattern node -> target node, -1 while unmapped
	used   []bool // target node is the image of a mapped pattern node
	// termP and termT hold depth+1 of the step that put a node next to the
	// mapping, 0 while it is not adjacent to any mapped node.
	termP []int
	termT []int
}

func newMatcher(t, p *Graph) *matcher {
	m := &matcher{
		p:     newAdjacency(p),
		t:     newAdjacency(t),
		core:  make([]int, p.NodeCount()),
		used:  make([]bool, t.NodeCount()),
		termP: make([]int, p.NodeCount()),
		termT: make([]int, t.NodeCount()),
	}
	for i := range m.core {
		m.core[i] = -1
	}
	levels := min(m.p.walkLevels(), m.t.walkLevels())
	m.p.countWalks(levels)
	m.t.countWalks(levels)
	m.order, m.parent = m.searchOrder()
	return m
}

// compatible checks the parts of feasibility that do not depend on the
// mapping. An embedding maps distinct closed walks to distinct closed
// walks, so a target node never has fewer than its pattern node.
func (m *matcher) compatible(pu, tv int) bool {
	if m.p.loop[pu] != m.t.loop[tv] {
		return false
	}
	if len(m.p.out[pu]) > len(m.t.out[tv]) || len(m.p.in[pu]) > len(m.t.in[tv]) {
		return false
	}
	for i, w := range m.p.walks[pu] {
		if w > m.t.walks[tv][i] {
			return false
		}
	}
	return true
}

// searchOrder repeatedly takes the pattern node with the most already
// ordered neighbors, then the fewest compatible target nodes, then the
// highest degree, so every step is as constrained as possible. parent[i] is
// the earliest ordered neighbor of order[i], or -1 when order[i] starts a
// new component.
func (m *matcher) searchOrder() (order, parent []int) {
	n := len(m.p.nbr)
	candidates := make([]int, n)
	for u := range candidates {
		for tv := range m.t.nbr {
			if m.compatible(u, tv) {
				candidates[u]++
			}
		}
	}
	pos := make([]int, n)
	for i := range pos {
		pos[i] = -1
	}
	conn := make([]int, n)
	better := func(u, v int) bool {
		if conn[u] != conn[v] {
			return conn[u] > conn[v]
		}
		if candidates[u] != candidates[v] {
			return candidates[u] < candidates[v]
		}
		return len(m.p.nbr[u]) > len(m.p.nbr[v])
	}
	for len(order) < n {
		best := -1
		for u := 0; u < n; u++ {
			if pos[u] < 0 && (best < 0 || better(u, best)) {
				best = u
			}
		}
		from := -1
		for _, v := range m.p.nbr[best] {
			if pv := pos[v]; pv >= 0 && (from < 0 || pv < pos[from]) {
				from = int(v)
			}
		}
		pos[best] = len(order)
		order = append(order, best)
		parent = append(parent, from)
		for _, v := range m.p.nbr[best] {
			conn[v]++
		}
	}
	return order, parent
}

// mappedArcs counts the arcs in arcs whose other end is already mapped.
func mappedArcs(arcs []int32, mapped func(int32) bool) int {
	c := 0
	for _, w := range arcs {
		if mapped(w) {
			c++
		}
	}
	return c
}

func (m *matcher) feasible(pu, tv int) bool {
	if m.used[tv] || !m.compatible(pu, tv) {
		return false
	}

	// Arcs to mapped nodes must correspond one to one in both directions.
	for _, pw := range m.p.out[pu] {
		if tw := m.core[pw]; tw >= 0 && !m.t.has(tv, tw) {
			return false
		}
	}
	for _, pw := range m.p.in[pu] {
		if tw := m.core[pw]; tw >= 0 && !m.t.has(tw, tv) {
			return false
		}
	}
	pMapped := func(w int32) bool { return m.core[w] >= 0 }
	tMapped := func(w int32) bool { return m.used[w] }
	if mappedArcs(m.p.out[pu], pMapped) != mappedArcs(m.t.out[tv], tMapped) ||
		mappedArcs(m.p.in[pu], pMapped) != mappedArcs(m.t.in[tv], tMapped) {
		return false
	}

	// One step look-ahead: unmapped neighbors of pu that touch the mapping
	// must land on unmapped neighbors of tv that touch it too, and the rest
	// on neighbors that do not.
	var pTerm, pNew, tTerm, tNew int
	for _, pw := range m.p.nbr[pu] {
		if int(pw) == pu || m.core[pw] >= 0 {
			continue
		}
		if m.termP[pw] > 0 {
			pTerm++
		} else {
			pNew++
		}
	}
	for _, tw := range m.t.nbr[tv] {
		if int(tw) == tv || m.used[tw] {
			continue
		}
		if m.termT[tw] > 0 {
			tTerm++
		} else {
			tNew++
		}
	}
	return pTerm <= tTerm && pNew <= tNew
}

func (m *matcher) push(depth, pu, tv int) {
	m.core[pu] = tv
	m.used[tv] = true
	for _, w := range m.p.nbr[pu] {
		if m.termP[w] == 0 {
			m.termP[w] = depth + 1
		}
	}
	for _, w := range m.t.nbr[tv] {
		if m.termT[w] == 0 {
			m.termT[w] = depth + 1
		}
	}
}

func (m *matcher) pop(depth, pu, tv int) {
	for _, w := range m.p.nbr[pu] {
		if m.termP[w] == depth+1 {
			m.termP[w] = 0
		}
	}
	for _, w := range m.t.nbr[tv] {
		if m.termT[w] == depth+1 {
			m.termT[w] = 0
		}
	}
	m.core[pu] = -1
	m.used[tv] = false
}

// placeable reports whether, with pu mapped to tv, every unmapped neighbor
// of pu still has a feasible image among the neighbors of tv.
func (m *matcher) placeable(pu, tv int) bool {
	for _, pw := range m.p.nbr[pu] {
		if m.core[pw] >= 0 {
			continue
		}
		found := false
		for _, tw := range m.t.nbr[tv] {
			if m.feasible(int(pw), int(tw)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *matcher) match(depth int) bool {
	if depth == len(m.order) {
		return true
	}
	pu := m.order[depth]
	try := func(tv int) bool {
		if !m.feasible(pu, tv) {
			return false
		}
		m.push(depth, pu, tv)
		if m.placeable(pu, tv) && m.match(depth+1) {
			return true
		}
		m.pop(depth, pu, tv)
		return false
	}
	if parent := m.parent[depth]; parent >= 0 {
		for _, tv := range m.t.nbr[m.core[parent]] {
			if try(int(tv)) {
				return true
			}
		}
		return false
	}
	for tv := range m.used {
		if try(tv) {
			return true
		}
	}
	return false
}

// SubgraphIsomorphic reports whether target contains an induced subgraph
// isomorphic to pattern.
func (*Backend) SubgraphIsomorphic(target, pattern backend.Graph) (bool, error) {
	t, err := asGraph(target)
	if err != nil {
		return false, err
	}
	p, err := asGraph(pattern)
	if err != nil {
		return false, err
	}
	if t.Directed() != p.Directed() {
		return false, fmt.Errorf("native: cannot match directed against undirected graph")
	}
	if p.NodeCount() > t.NodeCount() {
		return false, nil
	}
	return newMatcher(t, p).match(0), nil
}
