package format

import (
	"fmt"
	"strings"
)

// Messages carried by FormatError.
const (
	MsgMissingProblemLine   = "missing problem line"
	MsgUnrecognizedToken    = "unrecognized line token"
	MsgTruncatedBinaryGraph = "truncated binary graph"
	MsgMalformedProblemLine = "malformed problem line"
	MsgMalformedArcLine     = "malformed arc line"
	MsgDuplicateProblemLine = "duplicate problem line"
	MsgNodeOutOfRange       = "node index out of range"
)

// FormatError reports malformed or out-of-order input. Line is 1-based for
// text formats and zero for binary ones.
type FormatError struct {
	Path string
	Line int
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	} else if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.Err }
