package runner_test

import (
	"errors"
	"testing"
	"time"

	"github.com/signalnine/graphbench/internal/runner"
)

// stepClock advances by step on every reading.
func stepClock(step time.Duration) runner.Clock {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimeReturnsOneDurationPerRepetition(t *testing.T) {
	calls := 0
	got, err := runner.Time(stepClock(250*time.Microsecond), func() error {
		calls++
		return nil
	}, 5)
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	if calls != 5 {
		t.Errorf("operation ran %d times, want 5", calls)
	}
	if len(got) != 5 {
		t.Fatalf("got %d durations, want 5", len(got))
	}
	for i, d := range got {
		if d != 0.00025 {
			t.Errorf("duration %d = %v, want 0.00025", i, d)
		}
	}
}

func TestTimeDiscardsPartialResults(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	got, err := runner.Time(nil, func() error {
		calls++
		if calls == 3 {
			return boom
		}
		return nil
	}, 5)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no durations, got %v", got)
	}
	if calls != 3 {
		t.Errorf("expected remaining repetitions to be abandoned, ran %d", calls)
	}
}

func TestTimeRealClockIsNonNegative(t *testing.T) {
	got, err := runner.Time(nil, func() error { return nil }, 3)
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	for _, d := range got {
		if d < 0 {
			t.Errorf("negative duration %v", d)
		}
	}
}

func TestTimeRejectsZeroRepetitions(t *testing.T) {
	if _, err := runner.Time(nil, func() error { return nil }, 0); err == nil {
		t.Error("expected error for zero repetitions")
	}
}
