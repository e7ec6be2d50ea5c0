package disambig

import (
	"github.com/npillmayer/gll/grammar"
	"github.com/npillmayer/gll/sppf"
)

// Diagnostic records one ambiguous node that Resolve collapsed and the
// filter that settled it. Diagnostics with Reason "longest-match" or
// "document-order" are ties broken beyond the declared priority and
// associativity rules; callers may downgrade those to a warning (the
// default) or promote them to an error.
type Diagnostic struct {
	RuleName   string
	Left       int
	Right      int
	Reason     string // "priority", "associativity", "longest-match" or "document-order"
	Candidates int     // number of packed children before this node's tie was broken
}

// Resolve collapses every ambiguous node reachable from root to a single
// packed child, applying the priority, associativity, longest-match and
// document-order filters in order, and returns the (now unambiguous)
// root along with one diagnostic per collapsed node, whose Reason names
// the last filter that removed candidates there. An empty diagnostic
// slice means the parse had a single derivation throughout.
//
// Resolve mutates the packed-child slices of the nodes it visits; it is
// meant to be called once per parse, on the SPPF the engine just built.
func Resolve(g *grammar.Compiled, root *sppf.SymbolNode) (*sppf.SymbolNode, []Diagnostic) {
	r := &resolver{g: g, done: make(map[sppf.Node]bool)}
	r.resolve(root)
	return root, r.diags
}

type resolver struct {
	g     *grammar.Compiled
	done  map[sppf.Node]bool
	diags []Diagnostic
}

func (r *resolver) resolve(n sppf.Node) {
	if n == nil || r.done[n] {
		return
	}
	r.done[n] = true
	switch t := n.(type) {
	case *sppf.TerminalNode:
		return
	case *sppf.SymbolNode:
		for _, p := range t.Packed {
			r.resolve(p.Left)
			r.resolve(p.Right)
		}
		r.collapse(t.Sym.Name, t.Left(), t.Right(), &t.Packed)
	case *sppf.IntermediateNode:
		for _, p := range t.Packed {
			r.resolve(p.Left)
			r.resolve(p.Right)
		}
		r.collapse(t.Prod.LHS.Name, t.Left(), t.Right(), &t.Packed)
	}
}

// effectiveRule reports the concrete (non-union) rule name that produced
// n, unwrapping pure union-forwarding symbol nodes — a production with a
// single non-terminal atom and no preceding atoms — so that a check like
// "is this operand itself an Add" sees through the E->Add wrapper that
// RegisterUnion introduces. Returns "" for anything that isn't a
// (resolved) symbol node.
func (r *resolver) effectiveRule(n sppf.Node) string {
	for i := 0; i < 64; i++ {
		sn, ok := n.(*sppf.SymbolNode)
		if !ok {
			return ""
		}
		if len(sn.Packed) != 1 {
			return sn.Sym.Name
		}
		p := sn.Packed[0]
		if _, isUnion := r.g.UnionSpec(sn.Sym.Name); isUnion && p.Left == nil && p.Right != nil {
			n = p.Right
			continue
		}
		return sn.Sym.Name
	}
	return ""
}

// firstOperand unwraps the intermediate-node chain a multi-atom
// production's accumulated "everything matched so far" builds up on its
// left side, returning the very first atom's own resolved node. The
// rightmost atom of a production is always attached directly as a
// packed child's Right with no such wrapping, so only Left-side lookups
// need this.
func firstOperand(n sppf.Node) sppf.Node {
	for {
		in, ok := n.(*sppf.IntermediateNode)
		if !ok || len(in.Packed) == 0 {
			return n
		}
		p := in.Packed[0]
		if p.Left == nil {
			return p.Right
		}
		n = p.Left
	}
}

// priorityRank returns name's position in the highest-first priority
// list, or the list's length (lowest priority) if name is unlisted. An
// empty name (a node that is not a resolved symbol node) ranks -1.
func (r *resolver) priorityRank(name string) int {
	if name == "" {
		return -1
	}
	for i, n := range r.g.Priority() {
		if n == name {
			return i
		}
	}
	return len(r.g.Priority())
}

func (r *resolver) collapse(ruleName string, left, right int, packed *[]*sppf.PackedNode) {
	cands := *packed
	total := len(cands)
	if total <= 1 {
		return
	}
	var reason string

	// 1. Priority rule: at a union node, when candidates carry distinct
	// outer rule identities, the one binding loosest (highest rank in the
	// highest-first priority list) is the correct outer node. Same-rule
	// nesting below a union is left to the associativity rule.
	names := map[string]bool{}
	if _, isUnion := r.g.UnionSpec(ruleName); isUnion {
		for _, c := range cands {
			names[r.effectiveRule(c.Right)] = true
		}
	}
	if len(names) > 1 {
		bestRank := r.priorityRank(r.effectiveRule(cands[0].Right))
		for _, c := range cands[1:] {
			if rank := r.priorityRank(r.effectiveRule(c.Right)); rank > bestRank {
				bestRank = rank
			}
		}
		var kept []*sppf.PackedNode
		for _, c := range cands {
			if r.priorityRank(r.effectiveRule(c.Right)) == bestRank {
				kept = append(kept, c)
			}
		}
		if len(kept) < len(cands) {
			reason = "priority"
		}
		cands = kept
	}

	// 2. Associativity rule: reject derivations that re-nest ruleName on
	// the disallowed side of itself.
	if len(cands) > 1 {
		assoc := r.g.Associativity(ruleName)
		if assoc == grammar.AssocNone {
			assoc = r.g.AssocOf(ruleName)
		}
		if assoc != grammar.AssocNone {
			var kept []*sppf.PackedNode
			for _, c := range cands {
				switch assoc {
				case grammar.AssocLeft:
					if r.effectiveRule(c.Right) == ruleName {
						continue
					}
				case grammar.AssocRight:
					if r.effectiveRule(firstOperand(c.Left)) == ruleName {
						continue
					}
				case grammar.AssocNone:
					if r.effectiveRule(firstOperand(c.Left)) == ruleName || r.effectiveRule(c.Right) == ruleName {
						continue
					}
				}
				kept = append(kept, c)
			}
			if len(kept) > 0 && len(kept) < len(cands) {
				reason = "associativity"
				cands = kept
			}
		}
	}

	// 3. Longest-match rule: tie-break among repetition splits by
	// preferring the candidate whose left portion extends furthest.
	if len(cands) > 1 {
		bestPivot := cands[0].Pivot
		for _, c := range cands[1:] {
			if c.Pivot > bestPivot {
				bestPivot = c.Pivot
			}
		}
		var kept []*sppf.PackedNode
		for _, c := range cands {
			if c.Pivot == bestPivot {
				kept = append(kept, c)
			}
		}
		if len(kept) < len(cands) {
			reason = "longest-match"
		}
		cands = kept
	}

	// 4. Final tie-break: first in document order.
	if len(cands) > 1 {
		reason = "document-order"
		cands = cands[:1]
	}

	if reason != "" {
		tracer().Debugf("resolved ambiguity at %s(%d,%d): %d candidates, kept via %s",
			ruleName, left, right, total, reason)
		r.diags = append(r.diags, Diagnostic{
			RuleName: ruleName, Left: left, Right: right,
			Reason: reason, Candidates: total,
		})
	}
	*packed = cands
}
