package extract

import (
	"fmt"

	"github.com/npillmayer/gll/grammar"
	"github.com/npillmayer/gll/sppf"
)

// Span is a node's input extent, in byte offsets.
type Span struct {
	From int
	To   int
}

// Capture is one named capture's ordered values. Values has more than one
// entry only for a repetition capture, reflecting input order; everywhere
// else it has exactly one.
type Capture struct {
	Name   string
	Values []interface{}
}

// Listener is the external builder the DSL surface supplies, called once
// per concrete user rule and once per scanned terminal. Modeled after
// gorgo's lr/earley Listener (Reduce/Terminal), narrowed to a plain
// (name, span, captures, children) shape.
type Listener interface {
	// Rule is called once for every node of a user-named grammar rule
	// (anonymous lowering artifacts are never passed here — their
	// captures and children are already folded into their nearest
	// named ancestor's lists).
	Rule(name string, span Span, captures []Capture, children []interface{}) interface{}
	// Terminal is called once for every matched literal or
	// character-class atom.
	Terminal(text string, span Span) interface{}
}

// Extract walks a disambiguated SPPF (every node already reduced to a
// single packed child — see package disambig) rooted at root and returns
// whatever the listener's top-level Rule call produced.
func Extract(g *grammar.Compiled, root *sppf.SymbolNode, listener Listener) interface{} {
	w := &walker{g: g, l: listener, cache: make(map[*sppf.SymbolNode]interface{})}
	return w.walkRule(root)
}

type walker struct {
	g     *grammar.Compiled
	l     Listener
	cache map[*sppf.SymbolNode]interface{}
}

// atomNodes reconstructs, in left-to-right order, the per-atom SPPF node
// a production's resolved final node (always a *sppf.SymbolNode, since
// the final combine of any production always targets a symbol node)
// matched each of its atoms against. It unwinds the chain of
// IntermediateNodes the engine built up on the left while accumulating
// prior atoms, the same technique package disambig uses to find an
// operator's first operand.
func atomNodes(prod *grammar.Production, final *sppf.SymbolNode) []sppf.Node {
	n := len(prod.Atoms)
	nodes := make([]sppf.Node, n)
	if n == 0 {
		return nodes
	}
	if len(final.Packed) == 0 {
		panic(fmt.Sprintf("extract: rule %s has no packed derivation", prod.LHS.Name))
	}
	p := final.Packed[0]
	nodes[n-1] = p.Right
	cur := p.Left
	for i := n - 2; i >= 0; i-- {
		in, ok := cur.(*sppf.IntermediateNode)
		if !ok {
			nodes[i] = cur
			cur = nil
			continue
		}
		ip := in.Packed[0]
		nodes[i] = ip.Right
		cur = ip.Left
	}
	return nodes
}

// walkRule hydrates a named user rule's symbol node, memoized so a node
// shared between two parents is only built once and only calls the
// listener's Rule hook once.
func (w *walker) walkRule(sn *sppf.SymbolNode) interface{} {
	if v, ok := w.cache[sn]; ok {
		return v
	}
	if len(sn.Packed) == 0 {
		panic(fmt.Sprintf("extract: rule %s has no packed derivation", sn.Sym.Name))
	}
	prod := sn.Packed[0].Prod
	caps, children := w.walkProduction(prod, sn)
	v := w.l.Rule(sn.Sym.Name, Span{sn.Left(), sn.Right()}, caps, children)
	w.cache[sn] = v
	return v
}

// walkTransparent hydrates an anonymous non-repeat symbol (a Sequence
// grouping or inline Choice the compiler lowered) without calling the
// listener: its captures and children are returned for the caller to
// fold into its own lists.
func (w *walker) walkTransparent(sn *sppf.SymbolNode) ([]Capture, []interface{}) {
	if len(sn.Packed) == 0 {
		panic(fmt.Sprintf("extract: anonymous rule %s has no packed derivation", sn.Sym.Name))
	}
	return w.walkProduction(sn.Packed[0].Prod, sn)
}

// walkProduction decomposes one production's matched atoms into ordered
// captures and anonymous children.
func (w *walker) walkProduction(prod *grammar.Production, final *sppf.SymbolNode) ([]Capture, []interface{}) {
	nodes := atomNodes(prod, final)
	var order []string
	byName := make(map[string]*Capture)
	var children []interface{}

	addCapture := func(name string, val interface{}) {
		c, ok := byName[name]
		if !ok {
			c = &Capture{Name: name}
			byName[name] = c
			order = append(order, name)
		}
		c.Values = append(c.Values, val)
	}

	for i, atom := range prod.Atoms {
		node := nodes[i]
		switch atom.Kind {
		case grammar.AtomLiteral, grammar.AtomCharClass:
			term := node.(*sppf.TerminalNode)
			val := w.l.Terminal(term.Text, Span{term.Left(), term.Right()})
			if atom.Capture != "" {
				addCapture(atom.Capture, val)
			} else {
				children = append(children, val)
			}
		case grammar.AtomNonTerminal:
			if !atom.Sym.Anonymous {
				val := w.walkRule(node.(*sppf.SymbolNode))
				if atom.Capture != "" {
					addCapture(atom.Capture, val)
				} else {
					children = append(children, val)
				}
				continue
			}
			if w.g.RepeatGroup(atom.Sym) != 0 {
				vals := w.flattenRepeat(node)
				if atom.Capture != "" {
					c := &Capture{Name: atom.Capture, Values: vals}
					byName[atom.Capture] = c
					order = append(order, atom.Capture)
				} else {
					children = append(children, vals)
				}
				continue
			}
			innerCaps, innerChildren := w.walkTransparent(node.(*sppf.SymbolNode))
			if atom.Capture != "" {
				addCapture(atom.Capture, collapse(innerCaps, innerChildren))
				continue
			}
			for _, c := range innerCaps {
				for _, v := range c.Values {
					addCapture(c.Name, v)
				}
			}
			children = append(children, innerChildren...)
		}
	}

	caps := make([]Capture, 0, len(order))
	for _, name := range order {
		caps = append(caps, *byName[name])
	}
	return caps, children
}

// flattenRepeat walks a lowered Repeat/Optional's right-recursive chain
// of anonymous continuation symbols and returns one value per matched
// body occurrence, in input order, regardless of how many anonymous
// symbols the lowering used to express the repetition.
func (w *walker) flattenRepeat(node sppf.Node) []interface{} {
	sn, ok := node.(*sppf.SymbolNode)
	if !ok || len(sn.Packed) == 0 {
		return nil
	}
	prod := sn.Packed[0].Prod
	if len(prod.Atoms) == 0 {
		return nil
	}
	nodes := atomNodes(prod, sn)
	var out []interface{}
	for i, atom := range prod.Atoms {
		switch atom.Role {
		case grammar.RoleRepeatBody:
			out = append(out, w.hydrateAtom(atom, nodes[i]))
		case grammar.RoleRepeatContinuation:
			out = append(out, w.flattenRepeat(nodes[i])...)
		}
	}
	return out
}

// hydrateAtom resolves a single atom's value irrespective of its own
// capture (used for repetition body elements, where the enclosing
// repeat's capture governs list membership rather than the atom's own).
func (w *walker) hydrateAtom(atom grammar.Atom, node sppf.Node) interface{} {
	switch atom.Kind {
	case grammar.AtomLiteral, grammar.AtomCharClass:
		t := node.(*sppf.TerminalNode)
		return w.l.Terminal(t.Text, Span{t.Left(), t.Right()})
	case grammar.AtomNonTerminal:
		if !atom.Sym.Anonymous {
			return w.walkRule(node.(*sppf.SymbolNode))
		}
		if w.g.RepeatGroup(atom.Sym) != 0 {
			return w.flattenRepeat(node)
		}
		caps, children := w.walkTransparent(node.(*sppf.SymbolNode))
		return collapse(caps, children)
	}
	return nil
}

// collapse folds a transparent (anonymous, non-repeat) subtree's
// captures and children down to a single value for a captured Choice or
// grouping atom: the common case (a Choice of plain rule references) has
// exactly one child and no captures, so the rule's own hydrated value is
// returned directly, preserving its rule name. A grouping with its own
// nested captures has no single natural scalar, so its children are
// returned as a slice instead.
func collapse(caps []Capture, children []interface{}) interface{} {
	if len(caps) == 0 && len(children) == 1 {
		return children[0]
	}
	if len(caps) == 0 {
		return children
	}
	out := append([]interface{}{}, children...)
	for _, c := range caps {
		out = append(out, c.Values...)
	}
	return out
}
