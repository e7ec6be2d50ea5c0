package disambig

import (
	"context"
	"testing"

	"github.com/npillmayer/gll/charclass"
	"github.com/npillmayer/gll/engine"
	"github.com/npillmayer/gll/grammar"
	"github.com/npillmayer/gll/ir"
	"github.com/npillmayer/gll/sppf"
)

func digitsClass() ir.CharClass {
	ranges, negated, err := charclass.Parse("0-9")
	if err != nil {
		panic(err)
	}
	return ir.NewCharClass(ranges, negated)
}

// arithGrammar builds E = E[+-]E | E[*/]E | [0-9]+ with priority
// [Mul, Add], both left-associative. Each tier is one rule taking its
// operator from a two-character class, not two separately-ranked rules
// (one per operator) — the latter would give the priority filter two
// distinct ranks for what's supposed to be a single precedence level.
func arithGrammar(t *testing.T) *grammar.Compiled {
	b := grammar.NewBuilder("arith")
	b.Rule("Add", ir.NewRef("E").Captured("left"), ir.MustCharClass("+-").Captured("op"), ir.NewRef("E").Captured("right"))
	b.Rule("Mul", ir.NewRef("E").Captured("left"), ir.MustCharClass("*/").Captured("op"), ir.NewRef("E").Captured("right"))
	b.Rule("Num", ir.NewRepeat(digitsClass(), 1, ir.Unbounded, nil).Captured("digits"))
	b.RegisterUnion("E", []string{"Mul", "Add", "Num"}, grammar.AssocNone, "<test>", 0)
	b.WithAssoc("Add", grammar.AssocLeft)
	b.WithAssoc("Mul", grammar.AssocLeft)
	b.WithPriority("Mul", "Add")
	g, err := b.Compile("E")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return g
}

func parseArith(t *testing.T, g *grammar.Compiled, input string) *sppf.SymbolNode {
	out, err := engine.Parse(context.Background(), g, input)
	if err != nil {
		t.Fatalf("unexpected engine error: %v", err)
	}
	if !out.Accepted {
		t.Fatalf("expected %q to be accepted", input)
	}
	return out.Root
}

// ruleOf unwraps a resolved (single-packed) symbol node down to its
// concrete rule name, mirroring resolver.effectiveRule for assertions.
func ruleOf(n sppf.Node) string {
	sn, ok := n.(*sppf.SymbolNode)
	if !ok {
		return ""
	}
	if len(sn.Packed) != 1 {
		return sn.Sym.Name
	}
	p := sn.Packed[0]
	if sn.Sym.Name == "E" && p.Left == nil && p.Right != nil {
		return ruleOf(p.Right)
	}
	return sn.Sym.Name
}

func childOf(n sppf.Node) (left, right sppf.Node) {
	sn := n.(*sppf.SymbolNode)
	for sn.Sym.Name == "E" {
		sn = sn.Packed[0].Right.(*sppf.SymbolNode)
	}
	p := sn.Packed[0]
	return firstOperand(p.Left), p.Right
}

func TestResolvePriorityPutsLooserOperatorOutermost(t *testing.T) {
	g := arithGrammar(t)
	root := parseArith(t, g, "1+2*3")
	_, diags := Resolve(g, root)

	if ruleOf(root) != "Add" {
		t.Fatalf("expected Add as the outer rule, got %s", ruleOf(root))
	}
	_, right := childOf(root)
	if ruleOf(right) != "Mul" {
		t.Fatalf("expected Mul nested on the right, got %s", ruleOf(right))
	}
	if len(diags) != 1 || diags[0].Reason != "priority" {
		t.Fatalf("expected one priority diagnostic, got %v", diags)
	}
}

func TestResolveAssociativityGroupsLeftAssocLeftward(t *testing.T) {
	g := arithGrammar(t)
	root := parseArith(t, g, "1+2+3")
	_, diags := Resolve(g, root)

	if ruleOf(root) != "Add" {
		t.Fatalf("expected Add, got %s", ruleOf(root))
	}
	left, right := childOf(root)
	if ruleOf(left) != "Add" {
		t.Fatalf("expected left-associative grouping (left child is Add), got %s", ruleOf(left))
	}
	if ruleOf(right) != "Num" {
		t.Fatalf("expected the rightmost operand alone on the right, got %s", ruleOf(right))
	}
	if len(diags) != 1 || diags[0].Reason != "associativity" {
		t.Fatalf("expected one associativity diagnostic, got %v", diags)
	}
}

// A chain mixing both of a tier's operators ("-" then "+", both bound to
// the one Add rule) must still associate left: "(1-2)+3", not "1-(2+3)".
// Splitting a tier's operators into separately-ranked rules instead of
// one rule per tier would make the priority filter, not associativity,
// decide this case, and decide it wrong.
func TestResolveMixedSameTierOperatorsAssociateLeft(t *testing.T) {
	g := arithGrammar(t)
	root := parseArith(t, g, "1-2+3")
	_, diags := Resolve(g, root)

	if ruleOf(root) != "Add" {
		t.Fatalf("expected Add (the merged +/- tier), got %s", ruleOf(root))
	}
	left, right := childOf(root)
	if ruleOf(left) != "Add" {
		t.Fatalf("expected left-associative grouping (left child is Add), got %s", ruleOf(left))
	}
	if ruleOf(right) != "Num" {
		t.Fatalf("expected the rightmost operand alone on the right, got %s", ruleOf(right))
	}
	if len(diags) != 1 || diags[0].Reason != "associativity" {
		t.Fatalf("expected one associativity diagnostic, got %v", diags)
	}
}

func TestResolveParenthesizedPriorityScenario(t *testing.T) {
	b := grammar.NewBuilder("arith-paren")
	b.Rule("Add", ir.NewRef("E").Captured("left"), ir.MustCharClass("+-").Captured("op"), ir.NewRef("E").Captured("right"))
	b.Rule("Mul", ir.NewRef("E").Captured("left"), ir.MustCharClass("*/").Captured("op"), ir.NewRef("E").Captured("right"))
	b.Rule("Num", ir.NewRepeat(digitsClass(), 1, ir.Unbounded, nil).Captured("digits"))
	b.Rule("Paren", ir.NewLiteral("("), ir.NewRef("E").Captured("inner"), ir.NewLiteral(")"))
	b.RegisterUnion("E", []string{"Mul", "Add", "Paren", "Num"}, grammar.AssocNone, "<test>", 0)
	b.WithAssoc("Add", grammar.AssocLeft)
	b.WithAssoc("Mul", grammar.AssocLeft)
	b.WithPriority("Mul", "Add")
	g, err := b.Compile("E")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	root := parseArith(t, g, "(1+2)*3")
	Resolve(g, root)
	if ruleOf(root) != "Mul" {
		t.Fatalf("expected Mul as the outer rule once parenthesized, got %s", ruleOf(root))
	}
	left, right := childOf(root)
	if ruleOf(left) != "Paren" {
		t.Fatalf("expected Paren on the left, got %s", ruleOf(left))
	}
	if ruleOf(right) != "Num" {
		t.Fatalf("expected Num on the right, got %s", ruleOf(right))
	}
}

func TestResolveUnambiguousInputProducesNoDiagnostics(t *testing.T) {
	g := arithGrammar(t)
	root := parseArith(t, g, "42")
	_, diags := Resolve(g, root)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics for a trivially unambiguous parse, got %v", diags)
	}
}
