package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signalnine/graphbench/internal/result"
)

// IsoLabel is the structure encoded in an ARG Database fixture name such as
// si2_b03_m200.A00: size class si2, valence class b03, instance index 200.
type IsoLabel struct {
	// Prefix is the label up to its first dot; fixtures sharing it are
	// summed together.
	Prefix  string `json:"graph"`
	Size    string `json:"size_class"`
	Valence string `json:"valence"`
	Index   int    `json:"index"`
}

// ParseIsoLabel splits a fixture label into its classes.
func ParseIsoLabel(label string) (IsoLabel, error) {
	prefix, _, _ := strings.Cut(label, ".")
	parts := strings.Split(prefix, "_")
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" {
		return IsoLabel{}, fmt.Errorf("isomorphism label %q: want <size>_<valence>_<index>", label)
	}
	last := parts[len(parts)-1]
	if len(last) < 2 {
		return IsoLabel{}, fmt.Errorf("isomorphism label %q: missing instance index", label)
	}
	idx, err := strconv.Atoi(last[1:])
	if err != nil {
		return IsoLabel{}, fmt.Errorf("isomorphism label %q: instance index: %w", label, err)
	}
	return IsoLabel{Prefix: prefix, Size: parts[0], Valence: parts[1], Index: idx}, nil
}

// SizePercent is the pattern size as a percentage of the target, read from
// the last digit of the size class (si2 is 20%).
func (l IsoLabel) SizePercent() int {
	return 10 * trailingDigit(l.Size)
}

// ValenceDegree is the bounded valence, read from the last digit of the
// valence class (b03 is 3).
func (l IsoLabel) ValenceDegree() int {
	return trailingDigit(l.Valence)
}

func trailingDigit(s string) int {
	if s == "" {
		return 0
	}
	d := s[len(s)-1]
	if d < '0' || d > '9' {
		return 0
	}
	return int(d - '0')
}

func (l IsoLabel) sameClass(o IsoLabel) bool {
	return l.Size == o.Size && l.Valence == o.Valence
}

func (l IsoLabel) before(o IsoLabel) bool {
	if l.Size != o.Size {
		return l.Size < o.Size
	}
	return l.Valence < o.Valence
}

// sumIso adds up the mean of every row per label prefix, keeping the order
// in which prefixes first appear.
func sumIso(backend string, rows []result.Row) ([]IsoSum, error) {
	var sums []IsoSum
	at := map[string]int{}
	for _, r := range rows {
		if len(r.Values) == 0 {
			return nil, fmt.Errorf("row %q has no value", r.Label)
		}
		l, err := ParseIsoLabel(r.Label)
		if err != nil {
			return nil, err
		}
		i, ok := at[l.Prefix]
		if !ok {
			i = len(sums)
			at[l.Prefix] = i
			sums = append(sums, IsoSum{IsoLabel: l, Backend: backend})
		}
		sums[i].Seconds += r.Values[0]
	}
	return sums, nil
}
