package grammar

import (
	"fmt"

	"github.com/npillmayer/gll/ir"
)

// Assoc is a rule's declared associativity for disambiguation.
type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
)

func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	default:
		return "none"
	}
}

// UnionSpec is the disambiguation configuration registered for a named
// choice via Builder.RegisterUnion, the disambiguation filter's input.
type UnionSpec struct {
	Name         string
	Alternatives []string
	SourceFile   string
	Line         int
}

// Builder is the Go-native surface for submitting grammar rule
// definitions to the compiler, modeled after gorgo's lr.NewGrammarBuilder.
// It is the one producer this module's own tests and cmd/gllcheck use;
// a richer DSL surface (host-language reflection, a textual grammar file
// format) is left to callers to build on top of it.
type Builder struct {
	name    string
	rules   map[string]ir.RuleDef
	order   []string // registration order, for diagnostics only
	unions  map[string]UnionSpec
	priority []string         // ordered, highest-first, aggregated across RegisterUnion calls
	assoc    map[string]Assoc // rule name -> associativity
	err      error            // first error encountered, sticky
}

// NewBuilder creates an empty grammar builder named name (used only in
// diagnostics).
func NewBuilder(name string) *Builder {
	return &Builder{
		name:   name,
		rules:  make(map[string]ir.RuleDef),
		unions: make(map[string]UnionSpec),
		assoc:  make(map[string]Assoc),
	}
}

// RegisterRule adds a rule definition. It is idempotent under identical
// bodies; a conflicting redefinition (same name, different body) is an
// error surfaced at Compile.
func (b *Builder) RegisterRule(name, sourceFile string, line int, body ir.Node) *Builder {
	def := ir.RuleDef{Name: name, SourceFile: sourceFile, Line: line, Body: body}
	if existing, ok := b.rules[name]; ok {
		if !sameBody(existing.Body, body) {
			b.fail(fmt.Errorf("grammar: conflicting redefinition of rule %q (first at %s:%d, again at %s:%d)",
				name, existing.SourceFile, existing.Line, sourceFile, line))
		}
		return b
	}
	b.rules[name] = def
	b.order = append(b.order, name)
	return b
}

// Rule is sugar for RegisterRule with source location "<builder>", 0 and a
// Sequence of parts (or the single part itself if only one is given).
func (b *Builder) Rule(name string, parts ...ir.Node) *Builder {
	var body ir.Node
	switch len(parts) {
	case 0:
		body = ir.NewSequence()
	case 1:
		body = parts[0]
	default:
		body = ir.NewSequence(parts...)
	}
	return b.RegisterRule(name, "<builder>", 0, body)
}

// RegisterUnion registers a named choice over existing rule names with
// disambiguation metadata: name itself is appended to the default,
// registration-order priority list (which WithPriority replaces), and
// associativity applies to name itself. See DESIGN.md for how this Go signature resolves the
// spec's informally-described register_union(name, alts, precedence,
// associativity, ...) operation.
func (b *Builder) RegisterUnion(name string, alternatives []string, associativity Assoc, sourceFile string, line int) *Builder {
	if _, ok := b.unions[name]; ok {
		b.fail(fmt.Errorf("grammar: union %q already registered", name))
		return b
	}
	spec := UnionSpec{Name: name, Alternatives: append([]string{}, alternatives...), SourceFile: sourceFile, Line: line}
	b.unions[name] = spec
	b.assoc[name] = associativity
	b.priority = append(b.priority, name)
	alts := make([]ir.Node, len(alternatives))
	for i, alt := range alternatives {
		alts[i] = ir.NewRef(alt)
	}
	b.RegisterRule(name, sourceFile, line, ir.NewChoice(alts...))
	return b
}

// WithPriority overrides the default registration-order priority list
// with an explicit ordered list of rule names, highest first. Rule names
// not mentioned are treated as lowest priority.
func (b *Builder) WithPriority(names ...string) *Builder {
	b.priority = append([]string{}, names...)
	return b
}

// WithAssoc declares an associativity for rule name, independent of
// RegisterUnion (useful when the rule was defined with RegisterRule
// directly rather than through RegisterUnion).
func (b *Builder) WithAssoc(name string, a Assoc) *Builder {
	b.assoc[name] = a
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func sameBody(a, b ir.Node) bool {
	// Structural equality is approximated by kind + capture + recursive
	// equality of children; literal text / ranges / ref names are
	// compared via each concrete type's fields through a type switch.
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.Capture() != b.Capture() {
		return false
	}
	switch x := a.(type) {
	case ir.Literal:
		y := b.(ir.Literal)
		return x.Text == y.Text
	case ir.CharClass:
		y := b.(ir.CharClass)
		if x.Negated != y.Negated || len(x.Ranges) != len(y.Ranges) {
			return false
		}
		for i := range x.Ranges {
			if x.Ranges[i] != y.Ranges[i] {
				return false
			}
		}
		return true
	case ir.Ref:
		y := b.(ir.Ref)
		return x.Name == y.Name
	case ir.Repeat:
		y := b.(ir.Repeat)
		if x.AtLeast != y.AtLeast || x.AtMost != y.AtMost {
			return false
		}
		if !sameBody(x.Separator, y.Separator) {
			return false
		}
		return sameBody(x.Body, y.Body)
	case ir.Optional:
		y := b.(ir.Optional)
		return sameBody(x.Body, y.Body)
	default:
		ca, cb := a.Children(), b.Children()
		if len(ca) != len(cb) {
			return false
		}
		for i := range ca {
			if !sameBody(ca[i], cb[i]) {
				return false
			}
		}
		return true
	}
}
