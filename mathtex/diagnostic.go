package mathtex

import (
	"fmt"
	"strings"
)

// Severity of a diagnostic
type Severity int

const (
	// Info is for notices that need no action
	Info Severity = iota
	// Warning is for constructs that were left in place unconverted
	Warning
)

// String returns the lowercase name of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a notice produced during conversion. Diagnostics never stop
// a conversion; the caller decides how to surface them.
type Diagnostic struct {
	Severity Severity
	Stage    string // name of the pass that produced the diagnostic
	Message  string
	// Positions are character (rune) offsets into the output of the stage
	// that produced the diagnostic
	Positions []int
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s", d.Severity, d.Stage, d.Message)
	if len(d.Positions) > 0 {
		fmt.Fprintf(&sb, " at positions %v", d.Positions)
	}
	return sb.String()
}

// runeOffsets converts byte offsets in s into rune offsets. The byte offsets
// must be sorted in increasing order.
func runeOffsets(s string, byteOffsets []int) []int {
	if len(byteOffsets) == 0 {
		return nil
	}
	out := make([]int, 0, len(byteOffsets))
	var n, next int
	for i := range s {
		for next < len(byteOffsets) && byteOffsets[next] == i {
			out = append(out, n)
			next++
		}
		if next == len(byteOffsets) {
			break
		}
		n++
	}
	return out
}
