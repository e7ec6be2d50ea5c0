package sppf

import (
	"github.com/cnf/structhash"

	"github.com/npillmayer/gll/grammar"
)

// Forest is a per-parse arena owning every node created during one parse
// invocation; edges between nodes are non-owning references back into
// this arena. The zero value is not usable; use NewForest.
type Forest struct {
	symbols       map[string]*SymbolNode
	intermediates map[string]*IntermediateNode
	terminals     map[string]*TerminalNode
	Root          *SymbolNode
}

// NewForest returns an empty arena.
func NewForest() *Forest {
	return &Forest{
		symbols:       make(map[string]*SymbolNode),
		intermediates: make(map[string]*IntermediateNode),
		terminals:     make(map[string]*TerminalNode),
	}
}

func mustHash(v interface{}) string {
	h, err := structhash.Hash(v, 1)
	if err != nil {
		panic(err)
	}
	return h
}

func symbolKey(sym *grammar.Symbol, left, right int) string {
	return mustHash(struct {
		SymID int
		Left  int
		Right int
	}{sym.ID, left, right})
}

// Symbol returns the forest's node for (sym, left, right), creating it if
// this is the first derivation reaching that key. Reports whether the
// node was newly created.
func (f *Forest) Symbol(sym *grammar.Symbol, left, right int) (*SymbolNode, bool) {
	key := symbolKey(sym, left, right)
	if n, ok := f.symbols[key]; ok {
		return n, false
	}
	n := &SymbolNode{Sym: sym, left: left, right: right}
	f.symbols[key] = n
	tracer().Debugf("sppf: new symbol node %s", n)
	return n, true
}

func intermediateKey(prod *grammar.Production, dot, left, right int) string {
	return mustHash(struct {
		ProdID int
		Dot    int
		Left   int
		Right  int
	}{prod.ID, dot, left, right})
}

// Intermediate returns the forest's node for (prod, dot, left, right),
// creating it if absent. Reports whether the node was newly created.
func (f *Forest) Intermediate(prod *grammar.Production, dot, left, right int) (*IntermediateNode, bool) {
	key := intermediateKey(prod, dot, left, right)
	if n, ok := f.intermediates[key]; ok {
		return n, false
	}
	n := &IntermediateNode{Prod: prod, Dot: dot, left: left, right: right}
	f.intermediates[key] = n
	return n, true
}

// Terminal returns the forest's leaf node for a matched literal or
// character-class atom spanning [left,right), creating it if absent.
func (f *Forest) Terminal(text string, left, right int) *TerminalNode {
	key := mustHash(struct {
		Text  string
		Left  int
		Right int
	}{text, left, right})
	if n, ok := f.terminals[key]; ok {
		return n
	}
	n := &TerminalNode{Text: text, left: left, right: right}
	f.terminals[key] = n
	return n
}

// AddPacked attaches a packed derivation (pivot, left, right) to sym,
// deduplicating against any packed child already recorded with the same
// three fields. Reports whether a new packed child was added — a symbol
// or intermediate node left with more than one packed child is
// ambiguous.
func (sn *SymbolNode) AddPacked(pivot int, left, right Node, prod *grammar.Production) (*PackedNode, bool) {
	for _, p := range sn.Packed {
		if p.Pivot == pivot && p.Left == left && p.Right == right {
			return p, false
		}
	}
	p := &PackedNode{Pivot: pivot, Left: left, Right: right, Prod: prod}
	sn.Packed = append(sn.Packed, p)
	return p, true
}

// AddPacked attaches a packed derivation to an intermediate node, with the
// same dedup semantics as SymbolNode.AddPacked.
func (in *IntermediateNode) AddPacked(pivot int, left, right Node) (*PackedNode, bool) {
	for _, p := range in.Packed {
		if p.Pivot == pivot && p.Left == left && p.Right == right {
			return p, false
		}
	}
	p := &PackedNode{Pivot: pivot, Left: left, Right: right, Prod: in.Prod}
	in.Packed = append(in.Packed, p)
	return p, true
}

// Ambiguous reports whether n has more than one packed derivation.
func Ambiguous(n Node) bool {
	switch t := n.(type) {
	case *SymbolNode:
		return len(t.Packed) > 1
	case *IntermediateNode:
		return len(t.Packed) > 1
	default:
		return false
	}
}
