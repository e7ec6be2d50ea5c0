package engine

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/emirpasic/gods/queue/linkedlistqueue"

	"github.com/npillmayer/gll/grammar"
	"github.com/npillmayer/gll/gss"
	"github.com/npillmayer/gll/internal/iterset"
	"github.com/npillmayer/gll/sppf"
)

// Outcome is what one Parse call produces: at most one of Accepted,
// Cancelled or StepLimitExceeded is true; all three are false for a
// failed parse.
type Outcome struct {
	Accepted bool
	Root     *sppf.SymbolNode
	Forest   *sppf.Forest

	Cancelled         bool
	StepLimitExceeded bool

	// Failure diagnostics (meaningful when !Accepted).
	FarthestPos int
	Expected    []string
}

// InternalInvariantError reports a violated core invariant — e.g. a
// production that completed without a symbol-node label, or an atom of
// unknown kind. Its existence signals an implementation bug, not a
// malformed grammar or input.
type InternalInvariantError struct {
	Msg string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("engine: internal invariant violated: %s", e.Msg)
}

type parseState struct {
	g       *grammar.Compiled
	input   string
	graph   *gss.Graph
	forest  *sppf.Forest
	queue   *linkedlistqueue.Queue
	seen    *iterset.Set[string]
	options Options

	farthest int
	expected map[string]bool
}

// Parse runs the GLL core over g starting from its start symbol against
// input. ctx is polled once per descriptor pop, so a long parse can be
// cancelled promptly; pass context.Background() for an uncancellable
// parse.
func Parse(ctx context.Context, g *grammar.Compiled, input string, opts ...Option) (*Outcome, error) {
	ps := &parseState{
		g:        g,
		input:    input,
		graph:    gss.NewGraph(),
		forest:   sppf.NewForest(),
		queue:    linkedlistqueue.New(),
		seen:     iterset.NewSet[string](),
		options:  buildOptions(opts),
		expected: make(map[string]bool),
	}

	root, _ := ps.graph.GetOrCreate(gss.Slot{}, 0)
	for _, p := range ps.g.Alternates(ps.g.Start) {
		ps.enqueue(descriptor{Prod: p, Dot: 0, Node: root, Pos: 0})
	}

	steps := 0
	for !ps.queue.Empty() {
		if err := ctx.Err(); err != nil {
			return &Outcome{Cancelled: true, Forest: ps.forest}, nil
		}
		if ps.options.MaxSteps > 0 && steps >= ps.options.MaxSteps {
			return &Outcome{StepLimitExceeded: true, Forest: ps.forest}, nil
		}
		steps++

		v, _ := ps.queue.Dequeue()
		d := v.(descriptor)
		if err := ps.step(d); err != nil {
			return nil, err
		}
	}

	out := &Outcome{Forest: ps.forest, FarthestPos: ps.farthest}
	if label, ok := root.PoppedAt(len(input)); ok {
		out.Accepted = true
		out.Root = label.(*sppf.SymbolNode)
	} else {
		out.Expected = sortedKeys(ps.expected)
	}
	return out, nil
}

func (ps *parseState) enqueue(d descriptor) {
	k := d.key()
	if ps.seen.Contains(k) {
		return
	}
	ps.seen.Add(k)
	ps.queue.Enqueue(d)
}

func (ps *parseState) step(d descriptor) error {
	atoms := d.Prod.Atoms
	if d.Dot >= len(atoms) {
		return ps.pop(d)
	}
	atom := atoms[d.Dot]
	switch atom.Kind {
	case grammar.AtomLiteral:
		return ps.scanLiteral(d, atom)
	case grammar.AtomCharClass:
		return ps.scanCharClass(d, atom)
	case grammar.AtomNonTerminal:
		return ps.create(d, atom)
	default:
		return &InternalInvariantError{Msg: fmt.Sprintf("unknown atom kind %v", atom.Kind)}
	}
}

func (ps *parseState) scanLiteral(d descriptor, atom grammar.Atom) error {
	text := atom.Literal
	end := d.Pos + len(text)
	if end <= len(ps.input) && ps.input[d.Pos:end] == text {
		term := ps.forest.Terminal(text, d.Pos, end)
		combined := ps.combine(d.Prod, d.Dot+1, d.SPPFNode, term, d.leftStart(), d.Pos, end)
		ps.enqueue(descriptor{Prod: d.Prod, Dot: d.Dot + 1, Node: d.Node, Pos: end, SPPFNode: combined})
		return nil
	}
	ps.recordFailure(d.Pos, atom.String())
	return nil
}

func (ps *parseState) scanCharClass(d descriptor, atom grammar.Atom) error {
	if d.Pos < len(ps.input) {
		r, size := utf8.DecodeRuneInString(ps.input[d.Pos:])
		if r != utf8.RuneError && atom.Class.Match(r) {
			end := d.Pos + size
			term := ps.forest.Terminal(ps.input[d.Pos:end], d.Pos, end)
			combined := ps.combine(d.Prod, d.Dot+1, d.SPPFNode, term, d.leftStart(), d.Pos, end)
			ps.enqueue(descriptor{Prod: d.Prod, Dot: d.Dot + 1, Node: d.Node, Pos: end, SPPFNode: combined})
			return nil
		}
	}
	ps.recordFailure(d.Pos, atom.String())
	return nil
}

// create performs the GSS "create" operation for a non-terminal atom.
func (ps *parseState) create(d descriptor, atom grammar.Atom) error {
	x := atom.Sym
	slotAfter := gss.Slot{Prod: d.Prod, Dot: d.Dot + 1}
	v, _ := ps.graph.GetOrCreate(slotAfter, d.Pos)
	_, edgeNew := v.AddEdge(d.Node, d.SPPFNode)
	if !edgeNew {
		return nil
	}
	for _, p := range ps.g.Alternates(x) {
		ps.enqueue(descriptor{Prod: p, Dot: 0, Node: v, Pos: d.Pos})
	}
	var stepErr error
	v.EachPop(func(poppedPos int, label sppf.Node) {
		if stepErr != nil {
			return
		}
		combined := ps.combine(d.Prod, d.Dot+1, d.SPPFNode, label, d.leftStart(), d.Pos, poppedPos)
		ps.enqueue(descriptor{Prod: d.Prod, Dot: d.Dot + 1, Node: d.Node, Pos: poppedPos, SPPFNode: combined})
	})
	return stepErr
}

// pop performs the GSS "pop" operation: a production has matched in full.
func (ps *parseState) pop(d descriptor) error {
	var symNode *sppf.SymbolNode
	if len(d.Prod.Atoms) == 0 {
		symNode, _ = ps.forest.Symbol(d.Prod.LHS, d.Pos, d.Pos)
		eps := ps.forest.Terminal("", d.Pos, d.Pos)
		symNode.AddPacked(d.Pos, nil, eps, d.Prod)
	} else {
		sn, ok := d.SPPFNode.(*sppf.SymbolNode)
		if !ok {
			return &InternalInvariantError{Msg: fmt.Sprintf(
				"production %s completed without a symbol-node label", d.Prod.LHS.Name)}
		}
		symNode = sn
	}
	d.Node.RecordPop(d.Pos, symNode)

	if d.Node.Slot.IsRoot() {
		return nil
	}
	parentProd, parentDot := d.Node.Slot.Prod, d.Node.Slot.Dot
	for _, e := range d.Node.Edges() {
		leftStart := d.Node.Pos
		if e.Label != nil {
			leftStart = e.Label.Left()
		}
		combined := ps.combine(parentProd, parentDot, e.Label, symNode, leftStart, d.Node.Pos, d.Pos)
		ps.enqueue(descriptor{Prod: parentProd, Dot: parentDot, Node: e.Target, Pos: d.Pos, SPPFNode: combined})
	}
	return nil
}

// combine applies the SPPF construction rule: combining a left
// child (spanning (leftStart,pivot)) and a right child (spanning
// (pivot,rightEnd)) under grammar slot (prod, dot) produces an
// intermediate node, or — when dot is the production's final slot — the
// production's own symbol node, with a fresh packed child recorded (or
// reused, if this exact derivation was already seen).
func (ps *parseState) combine(prod *grammar.Production, dot int, left, right sppf.Node, leftStart, pivot, rightEnd int) sppf.Node {
	if dot == prod.NumSlots()-1 {
		sn, _ := ps.forest.Symbol(prod.LHS, leftStart, rightEnd)
		sn.AddPacked(pivot, left, right, prod)
		return sn
	}
	in, _ := ps.forest.Intermediate(prod, dot, leftStart, rightEnd)
	in.AddPacked(pivot, left, right)
	return in
}

func (ps *parseState) recordFailure(pos int, expected string) {
	if pos > ps.farthest {
		ps.farthest = pos
		ps.expected = map[string]bool{expected: true}
		return
	}
	if pos == ps.farthest {
		ps.expected[expected] = true
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
