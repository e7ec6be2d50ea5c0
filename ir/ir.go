package ir

import "github.com/npillmayer/gll/charclass"

// Unbounded marks a Repeat's at_most bound as infinite (∞).
const Unbounded = -1

// Kind tags the variant of an IR node.
type Kind int

const (
	KindLiteral Kind = iota
	KindCharClass
	KindRef
	KindChoice
	KindSequence
	KindRepeat
	KindOptional
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindCharClass:
		return "CharClass"
	case KindRef:
		return "Ref"
	case KindChoice:
		return "Choice"
	case KindSequence:
		return "Sequence"
	case KindRepeat:
		return "Repeat"
	case KindOptional:
		return "Optional"
	default:
		return "?"
	}
}

// Node is an immutable grammar IR node. Concrete node types below all
// implement it.
type Node interface {
	Kind() Kind
	Capture() string
	// Children returns the node's direct sub-nodes, in order, for
	// traversal (empty for Literal, CharClass and Ref).
	Children() []Node
}

// Literal matches an exact substring.
type Literal struct {
	Text    string
	capture string
}

func NewLiteral(text string) Literal { return Literal{Text: text} }

func (n Literal) Kind() Kind        { return KindLiteral }
func (n Literal) Capture() string   { return n.capture }
func (n Literal) Children() []Node  { return nil }
func (n Literal) Captured(name string) Literal {
	n.capture = name
	return n
}

// CharClass matches one code point against a set of ranges.
type CharClass struct {
	Ranges  []charclass.Range
	Negated bool
	capture string
}

// NewCharClass builds a CharClass node from already-parsed ranges (see
// package charclass for parsing the surface syntax into ranges).
func NewCharClass(ranges []charclass.Range, negated bool) CharClass {
	return CharClass{Ranges: ranges, Negated: negated}
}

// MustCharClass parses spec with charclass.Parse and panics on error; meant
// for grammar builders assembling rules from Go source, where a malformed
// literal class spec is a programmer error caught immediately.
func MustCharClass(spec string) CharClass {
	ranges, negated, err := charclass.Parse(spec)
	if err != nil {
		panic(err)
	}
	return NewCharClass(ranges, negated)
}

func (n CharClass) Kind() Kind       { return KindCharClass }
func (n CharClass) Capture() string  { return n.capture }
func (n CharClass) Children() []Node { return nil }
func (n CharClass) Captured(name string) CharClass {
	n.capture = name
	return n
}

// Ref is a reference to a named non-terminal, resolved at compile time.
type Ref struct {
	Name       string
	SourceFile string
	Line       int
	capture    string
}

func NewRef(name string) Ref { return Ref{Name: name} }

func (n Ref) At(sourceFile string, line int) Ref {
	n.SourceFile, n.Line = sourceFile, line
	return n
}

func (n Ref) Kind() Kind       { return KindRef }
func (n Ref) Capture() string  { return n.capture }
func (n Ref) Children() []Node { return nil }
func (n Ref) Captured(name string) Ref {
	n.capture = name
	return n
}

// Choice matches any one alternative, tried in order; order is preserved
// and used as the final disambiguation tie-breaker (document order).
type Choice struct {
	Alts    []Node
	capture string
}

func NewChoice(alts ...Node) Choice { return Choice{Alts: append([]Node{}, alts...)} }

func (n Choice) Kind() Kind       { return KindChoice }
func (n Choice) Capture() string  { return n.capture }
func (n Choice) Children() []Node { return n.Alts }
func (n Choice) Captured(name string) Choice {
	n.capture = name
	return n
}

// Sequence matches each part in order.
type Sequence struct {
	Parts   []Node
	capture string
}

func NewSequence(parts ...Node) Sequence { return Sequence{Parts: append([]Node{}, parts...)} }

func (n Sequence) Kind() Kind       { return KindSequence }
func (n Sequence) Capture() string  { return n.capture }
func (n Sequence) Children() []Node { return n.Parts }
func (n Sequence) Captured(name string) Sequence {
	n.capture = name
	return n
}

// Repeat matches Body between AtLeast and AtMost (or Unbounded) times, with
// an optional Separator required strictly between occurrences, never
// trailing.
type Repeat struct {
	Body      Node
	AtLeast   int
	AtMost    int // Unbounded for ∞
	Separator Node // nil if none
	capture   string
}

func NewRepeat(body Node, atLeast, atMost int, separator Node) Repeat {
	return Repeat{Body: body, AtLeast: atLeast, AtMost: atMost, Separator: separator}
}

func (n Repeat) Kind() Kind { return KindRepeat }
func (n Repeat) Capture() string { return n.capture }
func (n Repeat) Children() []Node {
	if n.Separator != nil {
		return []Node{n.Body, n.Separator}
	}
	return []Node{n.Body}
}
func (n Repeat) Captured(name string) Repeat {
	n.capture = name
	return n
}

// Optional is sugar for Repeat(body, 0, 1, nil); it is kept as a distinct
// node kind per the data model, but carries no extra semantics the
// extractor needs to special-case beyond those of a 0..1 Repeat.
type Optional struct {
	Body    Node
	capture string
}

func NewOptional(body Node) Optional { return Optional{Body: body} }

func (n Optional) Kind() Kind       { return KindOptional }
func (n Optional) Capture() string  { return n.capture }
func (n Optional) Children() []Node { return []Node{n.Body} }
func (n Optional) Captured(name string) Optional {
	n.capture = name
	return n
}

// AsRepeat desugars an Optional into its equivalent Repeat(0, 1, nil),
// preserving the capture name.
func (n Optional) AsRepeat() Repeat {
	return Repeat{Body: n.Body, AtLeast: 0, AtMost: 1, capture: n.capture}
}

// RuleDef is a named grammar rule definition, as submitted by the DSL
// surface (or, in this module, by a grammar.Builder).
type RuleDef struct {
	Name       string
	SourceFile string
	Line       int
	Body       Node
}

// Walk calls visit for n and then recursively for every descendant, in
// document order (depth-first, children in Children() order). Used by the
// grammar compiler to collect captures.
func Walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children() {
		Walk(c, visit)
	}
}
