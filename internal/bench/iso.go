package bench

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/signalnine/graphbench/internal/backend"
	"github.com/signalnine/graphbench/internal/format"
	"github.com/signalnine/graphbench/internal/graph"
	"github.com/signalnine/graphbench/internal/result"
	"github.com/signalnine/graphbench/internal/runner"
)

// OperationIsomorphism labels isomorphism trials in logs and metrics. Rows
// in the result file are labelled by fixture instead.
const OperationIsomorphism = "Subgraph Isomorphism"

// IntegrityError means a fixture pair that must be isomorphic was reported
// as not isomorphic. It points at broken fixtures or a broken backend, never
// at a transient condition.
type IntegrityError struct {
	Backend string
	Target  string
	Pattern string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("expected isomorphic pair reported false: %s: %s %s", e.Backend, e.Target, e.Pattern)
}

// Layout is the directory shape of an ARG Database corpus:
// <root>/<prefix>/<group>/<type>/<files>.
type Layout struct {
	Prefixes []string
	Groups   map[string][]string
}

// Pair is one pattern file and the target file that must contain it.
type Pair struct {
	Label   string
	Pattern string
	Target  string
}

// Discover lists the fixture pairs under root in layout order. Pattern files
// carry an A in their name and their target is the same name with A
// replaced by B; B files are never listed on their own. Missing type
// directories are skipped.
func (l Layout) Discover(root string) ([]Pair, error) {
	groups := make([]string, 0, len(l.Groups))
	for g := range l.Groups {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var pairs []Pair
	for _, prefix := range l.Prefixes {
		for _, group := range groups {
			for _, typ := range l.Groups[group] {
				dir := filepath.Join(root, prefix, group, typ)
				if info, err := os.Stat(dir); err != nil || !info.IsDir() {
					continue
				}
				entries, err := os.ReadDir(dir)
				if err != nil {
					return nil, fmt.Errorf("listing %s: %w", dir, err)
				}
				for _, e := range entries {
					name := e.Name()
					if e.IsDir() || strings.Contains(name, "B") {
						continue
					}
					pairs = append(pairs, Pair{
						Label:   name,
						Pattern: filepath.Join(dir, name),
						Target:  filepath.Join(dir, strings.ReplaceAll(name, "A", "B")),
					})
				}
			}
		}
	}
	return pairs, nil
}

// IsoObserver receives isomorphism trial events.
type IsoObserver interface {
	runner.Observer
	IntegrityFailure()
}

// IsoSuite times subgraph isomorphism tests for one backend.
type IsoSuite struct {
	Backend     backend.Backend
	Repetitions int
	Clock       runner.Clock
	Layout      Layout
	Logger      *slog.Logger
	Observer    IsoObserver
}

// Run times every pair under root and returns one row per fixture label,
// valued with the mean of all repetitions recorded under that label.
func (s *IsoSuite) Run(root string) ([]result.Row, error) {
	matcher, ok := s.Backend.(backend.SubgraphMatcher)
	if !ok {
		return nil, fmt.Errorf("%s: subgraph isomorphism: %w", s.Backend.Name(), backend.ErrUnsupported)
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pairs, err := s.Layout.Discover(root)
	if err != nil {
		return nil, err
	}
	logger.Info("starting isomorphism suite", slog.String("backend", s.Backend.Name()), slog.Int("pairs", len(pairs)))

	// Parse every fixture before timing anything so a bad file fails the
	// run up front.
	type parsed struct{ target, pattern *graph.Description }
	inputs := make([]parsed, len(pairs))
	for i, p := range pairs {
		if inputs[i].target, err = format.ParseARG(p.Target, false); err != nil {
			return nil, err
		}
		if inputs[i].pattern, err = format.ParseARG(p.Pattern, false); err != nil {
			return nil, err
		}
	}

	acc := result.NewAccumulator()
	for i, p := range pairs {
		target, err := backend.Build(s.Backend, inputs[i].target)
		if err != nil {
			return nil, err
		}
		pattern, err := backend.Build(s.Backend, inputs[i].pattern)
		if err != nil {
			return nil, err
		}
		durations, err := runner.Time(s.Clock, func() error {
			found, err := matcher.SubgraphIsomorphic(target, pattern)
			if err != nil {
				return err
			}
			if !found {
				if s.Observer != nil {
					s.Observer.IntegrityFailure()
				}
				return &IntegrityError{Backend: s.Backend.Name(), Target: p.Target, Pattern: p.Pattern}
			}
			return nil
		}, s.Repetitions)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Label, err)
		}
		if s.Observer != nil {
			for _, d := range durations {
				s.Observer.Trial(OperationIsomorphism, d)
			}
		}
		acc.Add(p.Label, durations...)
		logger.Debug("pair timed", slog.String("graph", p.Label), slog.Any("durations", durations))
	}
	return acc.Rows(), nil
}
