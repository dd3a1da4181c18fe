package bench

import (
	"fmt"
	"log/slog"

	"github.com/signalnine/graphbench/internal/backend"
	"github.com/signalnine/graphbench/internal/graph"
	"github.com/signalnine/graphbench/internal/result"
	"github.com/signalnine/graphbench/internal/runner"
)

// PathSuite times graph construction and shortest path queries for one
// backend over one parsed road network.
type PathSuite struct {
	Backend backend.Backend
	Runner  *runner.Runner
	Guards  Guards
	Logger  *slog.Logger
}

// Plan lays out the operations in the order they run. The Creation step
// builds a fresh graph every repetition; later steps use the graph built by
// the last one.
func (s *PathSuite) Plan(d *graph.Description) []runner.Step {
	b := s.Backend
	n := d.NodeCount
	var g backend.Graph

	steps := []runner.Step{{
		Name: result.LabelCreation,
		Op: func() error {
			built, err := backend.Build(b, d)
			if err != nil {
				return err
			}
			g = built
			return nil
		},
	}}

	single := runner.Step{
		Name: result.LabelSingleSource,
		Op: func() error {
			_, err := b.ShortestPath(g, 0, n-1)
			return err
		},
	}
	if n == 0 {
		single.Skip = SkipEmptyGraph
	}
	steps = append(steps, single)

	allPairs := runner.Step{Name: result.LabelAllPairs}
	if ap, ok := b.(backend.AllPairsSolver); !ok {
		allPairs.Skip = SkipUnsupported
	} else {
		allPairs.Skip = s.Guards.AllPairsSkip(n)
		allPairs.Op = func() error { return ap.AllPairs(g) }
	}
	steps = append(steps, allPairs)

	matrix := runner.Step{Name: result.LabelDistanceMatrix}
	if dm, ok := b.(backend.DistanceMatrixSolver); !ok {
		matrix.Skip = SkipUnsupported
	} else {
		matrix.Skip = s.Guards.DistanceMatrixSkip(n)
		matrix.Op = func() error { return dm.DistanceMatrix(g) }
	}
	return append(steps, matrix)
}

// Run executes the plan and returns one row per operation that ran.
func (s *PathSuite) Run(d *graph.Description) ([]result.Row, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("starting path suite",
		slog.String("backend", s.Backend.Name()),
		slog.Int("nodes", d.NodeCount),
		slog.Int("edges", len(d.Edges)),
		slog.Bool("directed", d.Directed))

	trials, err := s.Runner.Run(s.Plan(d))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Backend.Name(), err)
	}
	rows := make([]result.Row, len(trials))
	for i, t := range trials {
		rows[i] = t.Row()
	}
	return rows, nil
}
