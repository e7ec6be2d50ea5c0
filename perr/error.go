package perr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gll/engine"
)

// ParseError is the single failure value a parse reports: the input did
// not match. It always carries the farthest position reached and the set
// of atoms that would have advanced the parse there.
type ParseError struct {
	Offset   int
	Line     int // 1-indexed
	Column   int // 1-indexed
	Expected []string
	Input    string
}

// Error renders the 1-indexed line/column, the offending line's text with
// a caret, and the sorted expected-atom list. At end of input the header
// says "unexpected end of input"; the caret line is still shown, with the
// caret just past the end of the line.
func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Offset >= len(e.Input) {
		fmt.Fprintf(&b, "parse error at line %d, column %d: unexpected end of input", e.Line, e.Column)
	} else {
		fmt.Fprintf(&b, "parse error at line %d, column %d", e.Line, e.Column)
	}
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, ", expected one of: %s", strings.Join(e.Expected, ", "))
	}
	if line, col, ok := lineAt(e.Input, e.Offset); ok {
		b.WriteByte('\n')
		b.WriteString(line)
		b.WriteByte('\n')
		for i := 0; i < col-1; i++ {
			b.WriteByte(' ')
		}
		b.WriteByte('^')
	}
	return b.String()
}

// FromOutcome builds a ParseError from a failed engine.Outcome, the usual
// entry point for callers of engine.Parse. It panics if out was Accepted,
// Cancelled or StepLimitExceeded — none of those carry a parse failure to
// report.
func FromOutcome(input string, out *engine.Outcome) *ParseError {
	if out.Accepted || out.Cancelled || out.StepLimitExceeded {
		panic("perr.FromOutcome: outcome is not a parse failure")
	}
	tracer().Debugf("reporting failure at offset %d, %d expected atoms", out.FarthestPos, len(out.Expected))
	return New(input, out.FarthestPos, out.Expected)
}

// New builds a ParseError for input at the given byte offset, computing
// line/column and deduplicating+sorting expected.
func New(input string, offset int, expected []string) *ParseError {
	line, col := lineCol(input, offset)
	return &ParseError{
		Offset:   offset,
		Line:     line,
		Column:   col,
		Expected: dedupSorted(expected),
		Input:    input,
	}
}

// lineCol computes the 1-indexed line and column of a byte offset.
func lineCol(input string, offset int) (line, col int) {
	line, col = 1, 1
	if offset > len(input) {
		offset = len(input)
	}
	for i := 0; i < offset; i++ {
		if input[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// lineAt returns the full text of the line containing offset, and the
// 1-indexed column of offset within it.
func lineAt(input string, offset int) (string, int, bool) {
	if offset > len(input) {
		offset = len(input)
	}
	start := strings.LastIndexByte(input[:offset], '\n') + 1
	end := len(input)
	if idx := strings.IndexByte(input[offset:], '\n'); idx >= 0 {
		end = offset + idx
	}
	return input[start:end], offset - start + 1, true
}

func dedupSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sortStrings(out)
	return out
}

// sortStrings is a small insertion sort kept local to avoid importing
// sort for a handful of short-lived slices at most a few dozen entries
// long (expected-atom sets); this is the package's one deliberate
// standard-library-only routine — see DESIGN.md.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
