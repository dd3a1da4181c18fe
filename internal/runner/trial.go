// Package runner times benchmark operations.
package runner

import (
	"fmt"
	"time"
)

// Operation is one invocation of the work being timed.
type Operation func() error

// Clock returns the current time. time.Now carries a monotonic reading, so
// differences between two calls are immune to wall-clock adjustments.
type Clock func() time.Time

// Time runs op repetitions times in sequence and returns the elapsed seconds
// of each run. Nothing is discarded as warm-up. If any run fails the
// durations collected so far are dropped and the error is returned.
func Time(clock Clock, op Operation, repetitions int) ([]float64, error) {
	if repetitions < 1 {
		return nil, fmt.Errorf("repetitions must be at least 1, got %d", repetitions)
	}
	if clock == nil {
		clock = time.Now
	}
	durations := make([]float64, 0, repetitions)
	for i := 0; i < repetitions; i++ {
		start := clock()
		err := op()
		elapsed := clock().Sub(start)
		if err != nil {
			return nil, fmt.Errorf("repetition %d of %d: %w", i+1, repetitions, err)
		}
		durations = append(durations, elapsed.Seconds())
	}
	return durations, nil
}
