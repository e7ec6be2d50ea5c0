package sppf

import (
	"fmt"

	"github.com/npillmayer/gll/grammar"
)

// Node is any node that can stand as a packed node's left or right child,
// or be the label carried on a GSS return edge: a Terminal, Symbol or
// Intermediate node.
type Node interface {
	Left() int
	Right() int
	fmt.Stringer
	sealed()
}

// TerminalNode is a leaf: a single matched literal or character-class atom.
// Terminal nodes are never ambiguous and carry no packed children.
type TerminalNode struct {
	Text  string
	left  int
	right int
}

func (n *TerminalNode) Left() int  { return n.left }
func (n *TerminalNode) Right() int { return n.right }
func (n *TerminalNode) String() string {
	return fmt.Sprintf("%q(%d,%d)", n.Text, n.left, n.right)
}
func (n *TerminalNode) sealed() {}

// SymbolNode represents "sym derives input[left:right]". If Packed has more
// than one entry the derivation is ambiguous at this node.
type SymbolNode struct {
	Sym    *grammar.Symbol
	left   int
	right  int
	Packed []*PackedNode
}

func (n *SymbolNode) Left() int  { return n.left }
func (n *SymbolNode) Right() int { return n.right }
func (n *SymbolNode) String() string {
	return fmt.Sprintf("%s(%d,%d)", n.Sym.Name, n.left, n.right)
}
func (n *SymbolNode) sealed() {}

// IntermediateNode represents a partial match of Prod up to Dot, spanning
// [left,right). An intermediate node records the match after each atom of
// a production except the last; completing the last atom yields a
// SymbolNode, so a production with exactly one atom reduces its match
// directly to a SymbolNode without an intermediate step.
type IntermediateNode struct {
	Prod   *grammar.Production
	Dot    int
	left   int
	right  int
	Packed []*PackedNode
}

func (n *IntermediateNode) Left() int  { return n.left }
func (n *IntermediateNode) Right() int { return n.right }
func (n *IntermediateNode) String() string {
	return fmt.Sprintf("[%s:%d](%d,%d)", n.Prod.LHS.Name, n.Dot, n.left, n.right)
}
func (n *IntermediateNode) sealed() {}

// PackedNode is one derivation of a Symbol or Intermediate node: a pivot
// position splitting the span between Left and Right children. Left is nil
// when the node's production has matched its first atom only (there is no
// left sibling yet); symmetrically Right is never nil. Prod names the
// production that produced this particular derivation — redundant with
// Prod on an IntermediateNode, but a SymbolNode's packed children can each
// come from a different production of the same non-terminal (e.g. rival
// union alternatives), so the extractor needs it recorded per packed
// child rather than per node.
type PackedNode struct {
	Pivot int
	Left  Node
	Right Node
	Prod  *grammar.Production
}

func (p *PackedNode) String() string {
	if p.Left == nil {
		return fmt.Sprintf("(%d: ·, %s)", p.Pivot, p.Right)
	}
	return fmt.Sprintf("(%d: %s, %s)", p.Pivot, p.Left, p.Right)
}
