package grammar

import (
	"fmt"

	"github.com/npillmayer/gll/charclass"
)

// Symbol identifies a non-terminal (named by a rule, or anonymous,
// synthesized while lowering an inline Repeat/Optional/Choice). Every
// production's LHS is a Symbol; every non-terminal atom references one.
type Symbol struct {
	ID        int
	Name      string
	Anonymous bool
}

func (s *Symbol) String() string {
	return s.Name
}

// AtomKind tags what an Atom matches.
type AtomKind int

const (
	AtomLiteral AtomKind = iota
	AtomCharClass
	AtomNonTerminal
)

// AtomRole distinguishes the part a repetition-lowered atom plays, so the
// tree extractor can flatten a repeat's internal nonterminal chain back
// into one ordered capture list instead of exposing the lowering's
// internal shape to callers.
type AtomRole int

const (
	RoleNormal AtomRole = iota
	RoleRepeatBody
	RoleRepeatSeparator
	RoleRepeatContinuation
)

// Atom is one position in a flattened production's right-hand side.
type Atom struct {
	Kind    AtomKind
	Literal string                 // for AtomLiteral
	Class   *charclass.Matcher     // for AtomCharClass
	Sym     *Symbol                // for AtomNonTerminal
	Capture string                 // capture name bound at this position, if any
	Role    AtomRole
}

func (a Atom) String() string {
	switch a.Kind {
	case AtomLiteral:
		return fmt.Sprintf("%q", a.Literal)
	case AtomCharClass:
		return a.Class.String()
	case AtomNonTerminal:
		return a.Sym.Name
	default:
		return "?"
	}
}

// Production is one flat alternate of a non-terminal's body.
type Production struct {
	ID    int
	LHS   *Symbol
	Atoms []Atom
	// Capture is not set by the compiler and not read by the extractor;
	// a Choice's own capture travels on the Atom that references the
	// Choice's lowered symbol.
	Capture string
}

// NumSlots is the number of slots in the production: one more than the
// number of atoms (slot 0 is before the first atom).
func (p *Production) NumSlots() int {
	return len(p.Atoms) + 1
}
