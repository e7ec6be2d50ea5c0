package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/npillmayer/gll/charclass"
	"github.com/npillmayer/gll/disambig"
	"github.com/npillmayer/gll/engine"
	"github.com/npillmayer/gll/grammar"
	"github.com/npillmayer/gll/ir"
)

// node is a minimal Listener.Rule/Terminal result used only by these
// tests, standing in for whatever richer tree a real DSL surface builds.
type node struct {
	Rule     string
	Span     Span
	Captures map[string][]interface{}
	Children []interface{}
}

type testListener struct{}

func (testListener) Rule(name string, span Span, captures []Capture, children []interface{}) interface{} {
	caps := make(map[string][]interface{}, len(captures))
	for _, c := range captures {
		caps[c.Name] = c.Values
	}
	return &node{Rule: name, Span: span, Captures: caps, Children: children}
}

func (testListener) Terminal(text string, span Span) interface{} {
	return text
}

func lettersClass() ir.CharClass {
	ranges, negated, err := charclass.Parse("a-zA-Z")
	if err != nil {
		panic(err)
	}
	return ir.NewCharClass(ranges, negated)
}

func digitsClass() ir.CharClass {
	ranges, negated, err := charclass.Parse("0-9")
	if err != nil {
		panic(err)
	}
	return ir.NewCharClass(ranges, negated)
}

func parseAndExtract(t *testing.T, g *grammar.Compiled, input string) *node {
	t.Helper()
	out, err := engine.Parse(context.Background(), g, input)
	if err != nil {
		t.Fatalf("unexpected engine error: %v", err)
	}
	if !out.Accepted {
		t.Fatalf("expected %q to be accepted", input)
	}
	disambig.Resolve(g, out.Root)
	return Extract(g, out.Root, testListener{}).(*node)
}

func TestExtractFlattensRepeatCaptureInOrder(t *testing.T) {
	b := grammar.NewBuilder("greeting")
	b.Rule("Greeting",
		ir.NewLiteral("Hello, "),
		ir.NewRepeat(lettersClass(), 1, ir.Unbounded, nil).Captured("name"),
		ir.NewLiteral("!"),
	)
	g, err := b.Compile("Greeting")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	root := parseAndExtract(t, g, "Hello, World!")

	if root.Rule != "Greeting" {
		t.Fatalf("expected rule Greeting, got %s", root.Rule)
	}
	if root.Span != (Span{0, len("Hello, World!")}) {
		t.Fatalf("expected span covering the whole input, got %+v", root.Span)
	}
	letters, ok := root.Captures["name"]
	if !ok {
		t.Fatalf("expected a \"name\" capture")
	}
	var sb strings.Builder
	for _, l := range letters {
		sb.WriteString(l.(string))
	}
	if sb.String() != "World" {
		t.Fatalf(`expected captured letters to spell "World", got %q (%d entries)`, sb.String(), len(letters))
	}
}

func TestExtractCapturesEmptyListForUnmatchedOptional(t *testing.T) {
	b := grammar.NewBuilder("opt")
	b.Rule("Start", ir.NewOptional(ir.NewLiteral("x")).Captured("x"))
	g, err := b.Compile("Start")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	root := parseAndExtract(t, g, "")
	vals, ok := root.Captures["x"]
	if !ok {
		t.Fatalf("expected a capture named \"x\" even when the optional did not match")
	}
	if len(vals) != 0 {
		t.Fatalf("expected an empty capture for an unmatched optional, got %v", vals)
	}
}

func TestExtractPreservesRuleNameThroughUnionAlternation(t *testing.T) {
	b := grammar.NewBuilder("arith")
	b.Rule("Add", ir.NewRef("E").Captured("left"), ir.NewLiteral("+"), ir.NewRef("E").Captured("right"))
	b.Rule("Mul", ir.NewRef("E").Captured("left"), ir.NewLiteral("*"), ir.NewRef("E").Captured("right"))
	b.Rule("Num", ir.NewRepeat(digitsClass(), 1, ir.Unbounded, nil).Captured("digits"))
	b.RegisterUnion("E", []string{"Mul", "Add", "Num"}, grammar.AssocNone, "<test>", 0)
	b.WithAssoc("Add", grammar.AssocLeft)
	b.WithAssoc("Mul", grammar.AssocLeft)
	b.WithPriority("Mul", "Add")
	g, err := b.Compile("E")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	root := parseAndExtract(t, g, "1+2*3")

	if root.Rule != "E" {
		t.Fatalf("expected top-level rule E, got %s", root.Rule)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected E to forward exactly one child, got %d", len(root.Children))
	}
	add, ok := root.Children[0].(*node)
	if !ok || add.Rule != "Add" {
		t.Fatalf("expected priority to select Add as the outer rule, got %+v", root.Children[0])
	}
	rightVal := add.Captures["right"]
	if len(rightVal) != 1 {
		t.Fatalf("expected exactly one \"right\" capture, got %d", len(rightVal))
	}
	rightE, ok := rightVal[0].(*node)
	if !ok || rightE.Rule != "E" || len(rightE.Children) != 1 {
		t.Fatalf("expected Add's right operand to be an E forwarding one child, got %+v", rightVal[0])
	}
	mul, ok := rightE.Children[0].(*node)
	if !ok || mul.Rule != "Mul" {
		t.Fatalf("expected Mul nested as Add's right operand, got %+v", rightVal[0])
	}
}

func TestExtractCallsRuleOncePerConcreteRule(t *testing.T) {
	b := grammar.NewBuilder("greeting")
	b.Rule("Greeting",
		ir.NewLiteral("Hello, "),
		ir.NewRepeat(lettersClass(), 1, ir.Unbounded, nil).Captured("name"),
		ir.NewLiteral("!"),
	)
	g, err := b.Compile("Greeting")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	out, err := engine.Parse(context.Background(), g, "Hello, Bob!")
	if err != nil {
		t.Fatalf("unexpected engine error: %v", err)
	}
	disambig.Resolve(g, out.Root)

	calls := 0
	counting := countingListener{inner: testListener{}, calls: &calls}
	Extract(g, out.Root, counting)
	if calls != 1 {
		t.Fatalf("expected exactly one Rule call (Greeting), got %d", calls)
	}
}

type countingListener struct {
	inner testListener
	calls *int
}

func (c countingListener) Rule(name string, span Span, captures []Capture, children []interface{}) interface{} {
	*c.calls++
	return c.inner.Rule(name, span, captures, children)
}

func (c countingListener) Terminal(text string, span Span) interface{} {
	return c.inner.Terminal(text, span)
}
