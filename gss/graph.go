package gss

import (
	"fmt"

	"github.com/npillmayer/gll/grammar"
	"github.com/npillmayer/gll/sppf"
)

// Slot is a continuation point: the production to resume scanning and the
// dot index (slot) to resume at. The zero Slot (nil Production, dot 0) is
// the sentinel "accept" slot used for the root GSS node — popping it means
// the whole parse is done, not that some caller should be resumed.
type Slot struct {
	Prod *grammar.Production
	Dot  int
}

func (s Slot) String() string {
	if s.Prod == nil {
		return "⊥"
	}
	return fmt.Sprintf("%s:%d", s.Prod.LHS.Name, s.Dot)
}

// IsRoot reports whether s is the sentinel root/accept slot.
func (s Slot) IsRoot() bool { return s.Prod == nil }

// Edge is a directed, SPPF-labeled return edge from a callee node back to
// the caller node it should resume.
type Edge struct {
	Target *Node
	Label  sppf.Node
}

// Node is one GSS node: a (slot, position) pair, its outgoing return
// edges, and its own table of completed pops.
type Node struct {
	Slot Slot
	Pos  int

	edges   []*Edge
	edgeIdx map[edgeKey]*Edge

	popOrder []int
	popped   map[int]sppf.Node
}

type edgeKey struct {
	target *Node
	label  sppf.Node
}

func newNode(slot Slot, pos int) *Node {
	return &Node{
		Slot:    slot,
		Pos:     pos,
		edgeIdx: make(map[edgeKey]*Edge),
		popped:  make(map[int]sppf.Node),
	}
}

// AddEdge records a return edge from n to parent labeled with w, if it is
// not already present. Reports whether the edge was newly added — callers
// use this to decide whether to enqueue descriptors for X's alternates.
func (n *Node) AddEdge(parent *Node, label sppf.Node) (*Edge, bool) {
	key := edgeKey{target: parent, label: label}
	if e, ok := n.edgeIdx[key]; ok {
		return e, false
	}
	e := &Edge{Target: parent, Label: label}
	n.edges = append(n.edges, e)
	n.edgeIdx[key] = e
	return e, true
}

// Edges returns n's outgoing return edges in the order they were added.
func (n *Node) Edges() []*Edge {
	return n.edges
}

// RecordPop records that n's production completed at input position pos
// with the accumulated derivation label. Reports whether this is the
// first pop recorded at pos — SPPF nodes are deduplicated by (symbol,
// left, right), so at most one label per pos is ever recorded here.
func (n *Node) RecordPop(pos int, label sppf.Node) bool {
	if _, ok := n.popped[pos]; ok {
		return false
	}
	n.popped[pos] = label
	n.popOrder = append(n.popOrder, pos)
	return true
}

// PoppedAt returns the label recorded for pos, if any.
func (n *Node) PoppedAt(pos int) (sppf.Node, bool) {
	l, ok := n.popped[pos]
	return l, ok
}

// EachPop calls f for every recorded pop, in the order the pops were
// first recorded (insertion order, not position order) — used to replay
// already-completed derivations along a newly added edge.
func (n *Node) EachPop(f func(pos int, label sppf.Node)) {
	for _, pos := range n.popOrder {
		f(pos, n.popped[pos])
	}
}

// Graph is the node table for one parse invocation: every GSS node
// created during the parse, deduplicated by (Slot, Pos).
type Graph struct {
	nodes map[Slot]map[int]*Node
	order []*Node // creation order, for deterministic diagnostics/dumps
}

// NewGraph returns an empty GSS node table.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[Slot]map[int]*Node)}
}

// GetOrCreate returns the existing node for (slot, pos), creating it if
// absent. Reports whether the node was newly created.
func (g *Graph) GetOrCreate(slot Slot, pos int) (*Node, bool) {
	byPos, ok := g.nodes[slot]
	if !ok {
		byPos = make(map[int]*Node)
		g.nodes[slot] = byPos
	}
	if n, ok := byPos[pos]; ok {
		return n, false
	}
	n := newNode(slot, pos)
	byPos[pos] = n
	g.order = append(g.order, n)
	tracer().Debugf("gss: created node %s@%d", slot, pos)
	return n, true
}

// Lookup returns the existing node for (slot, pos) without creating one.
func (g *Graph) Lookup(slot Slot, pos int) (*Node, bool) {
	byPos, ok := g.nodes[slot]
	if !ok {
		return nil, false
	}
	n, ok := byPos[pos]
	return n, ok
}

// Nodes returns every node created in this graph, in creation order.
func (g *Graph) Nodes() []*Node {
	return g.order
}
