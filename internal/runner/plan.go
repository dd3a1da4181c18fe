package runner

import (
	"fmt"
	"log/slog"

	"github.com/signalnine/graphbench/internal/result"
)

// Step is one named operation in a benchmark plan.
type Step struct {
	Name string
	// Skip, when set, is the reason the step is left out. Skipped steps
	// produce no row.
	Skip string
	Op   Operation
}

// Observer is told about every timed repetition and every skipped step.
type Observer interface {
	Trial(step string, seconds float64)
	Skipped(step, reason string)
}

// Runner executes plans one step at a time on the calling goroutine.
// Running steps concurrently would distort the timings being collected.
type Runner struct {
	Repetitions int
	Clock       Clock
	Logger      *slog.Logger
	Observer    Observer
}

// Run executes steps in order and returns one TrialResult per step that was
// not skipped. The first failing step aborts the plan and no results are
// returned.
func (r *Runner) Run(steps []Step) ([]result.TrialResult, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var results []result.TrialResult
	for _, s := range steps {
		if s.Skip != "" {
			logger.Info("skipping operation", slog.String("operation", s.Name), slog.String("reason", s.Skip))
			if r.Observer != nil {
				r.Observer.Skipped(s.Name, s.Skip)
			}
			continue
		}
		logger.Info("starting operation", slog.String("operation", s.Name), slog.Int("repetitions", r.Repetitions))
		durations, err := Time(r.Clock, s.Op, r.Repetitions)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		if r.Observer != nil {
			for _, d := range durations {
				r.Observer.Trial(s.Name, d)
			}
		}
		logger.Debug("operation finished", slog.String("operation", s.Name), slog.Any("durations", durations))
		results = append(results, result.TrialResult{Operation: s.Name, Durations: durations})
	}
	return results, nil
}
