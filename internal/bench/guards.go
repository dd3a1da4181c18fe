// Package bench wires parsed graphs, backends and the trial runner into the
// two benchmark suites: path algorithms over road networks and subgraph
// isomorphism over the ARG Database.
package bench

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Skip reasons. A skipped operation leaves no row in the result file.
const (
	SkipEmptyGraph  = "graph has no nodes"
	SkipUnsupported = "not supported by backend"
)

// Guards hold the size thresholds checked before an expensive operation.
type Guards struct {
	AllPairsMaxNodes          int
	DistanceMatrixBudgetBytes float64
}

// MatrixBytes is the projected size of a dense float64 matrix over n nodes.
func MatrixBytes(n int) float64 {
	return float64(n) * float64(n) * 8
}

// AllPairsSkip returns why all-pairs must not run on n nodes, or "".
func (g Guards) AllPairsSkip(n int) string {
	if n >= g.AllPairsMaxNodes {
		return fmt.Sprintf("%s nodes is not below the %s node limit",
			humanize.Comma(int64(n)), humanize.Comma(int64(g.AllPairsMaxNodes)))
	}
	return ""
}

// DistanceMatrixSkip returns why the distance matrix must not run on n
// nodes, or "".
func (g Guards) DistanceMatrixSkip(n int) string {
	if need := MatrixBytes(n); need >= g.DistanceMatrixBudgetBytes {
		return fmt.Sprintf("projected matrix of %s does not fit the %s budget",
			humanize.Bytes(uint64(need)), humanize.Bytes(uint64(g.DistanceMatrixBudgetBytes)))
	}
	return ""
}
