package perr

import (
	"context"
	"strings"
	"testing"

	"github.com/npillmayer/gll/engine"
	"github.com/npillmayer/gll/grammar"
	"github.com/npillmayer/gll/ir"
)

func TestNewComputesLineAndColumn(t *testing.T) {
	e := New("hello earth", 6, []string{`"world"`})
	if e.Line != 1 || e.Column != 7 {
		t.Fatalf("expected line 1, column 7, got line %d, column %d", e.Line, e.Column)
	}
}

func TestNewDedupesAndSortsExpected(t *testing.T) {
	e := New("ab", 1, []string{`"y"`, `"x"`, `"y"`})
	if len(e.Expected) != 2 || e.Expected[0] != `"x"` || e.Expected[1] != `"y"` {
		t.Fatalf("expected deduped sorted [\"x\" \"y\"], got %v", e.Expected)
	}
}

func TestErrorMessageNamesEOFAtEndOfInput(t *testing.T) {
	e := New("abc", 3, []string{`"d"`})
	msg := e.Error()
	if !strings.Contains(msg, "unexpected end of input") {
		t.Fatalf("expected EOF wording, got: %s", msg)
	}
}

func TestErrorMessageCaretsTheOffendingColumn(t *testing.T) {
	e := New("hello earth", 6, []string{`"world"`})
	msg := e.Error()
	lines := strings.Split(msg, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a header, source line and caret line, got %d lines: %q", len(lines), msg)
	}
	if lines[1] != "hello earth" {
		t.Fatalf("expected the offending line verbatim, got %q", lines[1])
	}
	caret := lines[2]
	if len(caret) != 7 || caret[6] != '^' {
		t.Fatalf("expected caret at column 7, got %q", caret)
	}
}

func TestErrorMessageMultilineUsesTheOffendingLineOnly(t *testing.T) {
	e := New("abc\ndef\nghi", 5, []string{`"x"`})
	if e.Line != 2 || e.Column != 2 {
		t.Fatalf("expected line 2 column 2, got line %d column %d", e.Line, e.Column)
	}
	msg := e.Error()
	if !strings.Contains(msg, "\ndef\n") {
		t.Fatalf("expected the second line's text in the message, got: %s", msg)
	}
	if strings.Contains(msg, "abc") || strings.Contains(msg, "ghi") {
		t.Fatalf("expected only the offending line's text, got: %s", msg)
	}
}

func TestFromOutcomeMatchesEngineFailureScenario(t *testing.T) {
	b := grammar.NewBuilder("literal")
	b.Rule("Start", ir.NewLiteral("hello"), ir.NewLiteral(" "), ir.NewLiteral("world"))
	g, err := b.Compile("Start")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	input := "hello earth"
	out, err := engine.Parse(context.Background(), g, input)
	if err != nil {
		t.Fatalf("unexpected engine error: %v", err)
	}
	if out.Accepted {
		t.Fatalf("expected failure")
	}

	pe := FromOutcome(input, out)
	if pe.Line != 1 || pe.Column != 7 {
		t.Fatalf("expected line 1, column 7, got line %d, column %d", pe.Line, pe.Column)
	}
	if len(pe.Expected) != 1 || pe.Expected[0] != `"world"` {
		t.Fatalf(`expected ["world"], got %v`, pe.Expected)
	}
}

func TestFromOutcomePanicsOnAcceptedOutcome(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected FromOutcome to panic on an accepted outcome")
		}
	}()
	FromOutcome("x", &engine.Outcome{Accepted: true})
}
