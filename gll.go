package gll

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/gll/disambig"
	"github.com/npillmayer/gll/engine"
	"github.com/npillmayer/gll/extract"
	"github.com/npillmayer/gll/grammar"
	"github.com/npillmayer/gll/ir"
	"github.com/npillmayer/gll/perr"
)

// Assoc and its constants re-export package grammar's associativity enum,
// so a DSL surface built on top of this package never needs to import
// grammar directly just to declare AssocLeft/AssocRight/AssocNone.
type Assoc = grammar.Assoc

const (
	AssocNone  = grammar.AssocNone
	AssocLeft  = grammar.AssocLeft
	AssocRight = grammar.AssocRight
)

// Grammar accumulates rule and union registrations for one DSL: register
// rules, register disambiguation unions, then compile. Registration is
// not safe for concurrent use; Compile's result is.
type Grammar struct {
	b *grammar.Builder
}

// NewGrammar starts a fresh, empty grammar named name (used only for
// diagnostics and tracing).
func NewGrammar(name string) *Grammar {
	return &Grammar{b: grammar.NewBuilder(name)}
}

// RegisterRule adds (or, if body is identical to an existing registration
// for name, idempotently confirms) a named rule. sourceFile and line are
// carried through into GrammarError for conflicting redefinitions.
func (g *Grammar) RegisterRule(name, sourceFile string, line int, body ir.Node) *Grammar {
	g.b.RegisterRule(name, sourceFile, line, body)
	return g
}

// Rule is RegisterRule's convenience form for DSL surfaces built entirely
// in Go source: it sequences parts into an implicit Sequence body and
// registers it with source "<builder>" and line 0.
func (g *Grammar) Rule(name string, parts ...ir.Node) *Grammar {
	g.b.Rule(name, parts...)
	return g
}

// RegisterUnion declares name as a disambiguated choice among
// alternatives, carrying a shared associativity for the group.
// Per-alternative priority ranking is declared separately via
// WithPriority, since a single union call rarely spans every precedence
// level of an operator grammar at once — see DESIGN.md.
func (g *Grammar) RegisterUnion(name string, alternatives []string, assoc Assoc, sourceFile string, line int) *Grammar {
	g.b.RegisterUnion(name, alternatives, assoc, sourceFile, line)
	return g
}

// WithPriority declares the tightest-to-loosest binding order among
// operator rule names: an ordered list of rule names, highest precedence
// (tightest-binding) first.
func (g *Grammar) WithPriority(names ...string) *Grammar {
	g.b.WithPriority(names...)
	return g
}

// WithAssoc declares a single rule's associativity directly, taking
// precedence over any associativity inherited from a union it belongs to
// (see grammar.Compiled.AssocOf).
func (g *Grammar) WithAssoc(name string, a Assoc) *Grammar {
	g.b.WithAssoc(name, a)
	return g
}

// Compile freezes the grammar. The returned CompiledGrammar is immutable
// and safe for concurrent Parse calls.
func (g *Grammar) Compile(startSymbol string) (*CompiledGrammar, error) {
	c, err := g.b.Compile(startSymbol)
	if err != nil {
		tracer().Debugf("compile failed: %v", err)
		return nil, err
	}
	return &CompiledGrammar{compiled: c}, nil
}

// CompiledGrammar is an immutable, analyzed grammar ready to parse input.
type CompiledGrammar struct {
	compiled *grammar.Compiled
}

// Grammar exposes the underlying compiled grammar for callers that need
// package grammar's introspection surface directly (e.g. a CLI printing
// nullable sets or FIRST sets for diagnostics).
func (cg *CompiledGrammar) Grammar() *grammar.Compiled {
	return cg.compiled
}

// ResultKind discriminates the four outcomes a parse can produce:
// Success, Failure, Ambiguous or Cancelled.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultFailure
	ResultAmbiguous
	ResultCancelled
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultFailure:
		return "failure"
	case ResultAmbiguous:
		return "ambiguous"
	case ResultCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Parse call, selected by Kind: Tree is set
// for Success and Ambiguous, Diagnostics only for Ambiguous, Err only for
// Failure, and a Cancelled result carries none of them.
type Result struct {
	Kind        ResultKind
	Tree        interface{}
	Err         *perr.ParseError
	Diagnostics []disambig.Diagnostic
}

// AmbiguityError reports that a parse succeeded but the disambiguation
// filter had to break one or more ties beyond the declared priority and
// associativity rules. Returned only when PromoteAmbiguity is set.
type AmbiguityError struct {
	Diagnostics []disambig.Diagnostic
}

func (e *AmbiguityError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ambiguous parse: %d tie-break(s) beyond declared rules", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		fmt.Fprintf(&sb, "\n  %s at (%d,%d): %d candidates, resolved by %s", d.RuleName, d.Left, d.Right, d.Candidates, d.Reason)
	}
	return sb.String()
}

// ParseOptions configures one Parse call beyond the engine's own
// descriptor-count safety net.
type ParseOptions struct {
	// MaxSteps bounds the engine's descriptor work-list, see
	// engine.WithMaxSteps.
	MaxSteps int
	// PromoteAmbiguity turns a successful-but-ambiguous parse into an
	// error instead of a ResultAmbiguous value. Default is to continue
	// with a warning-level diagnostic, i.e. this is false.
	PromoteAmbiguity bool
}

// ParseOption mutates a ParseOptions value.
type ParseOption func(*ParseOptions)

// WithMaxSteps bounds the number of descriptors the engine pops before
// giving up, surfaced here as ResultCancelled.
func WithMaxSteps(n int) ParseOption {
	return func(o *ParseOptions) { o.MaxSteps = n }
}

// WithPromoteAmbiguity makes Parse return an *AmbiguityError instead of a
// ResultAmbiguous Result whenever disambiguation has to break a tie.
func WithPromoteAmbiguity() ParseOption {
	return func(o *ParseOptions) { o.PromoteAmbiguity = true }
}

// Parse runs the GLL core against input, resolves any ambiguity, and
// hydrates the resulting parse tree through listener. The start symbol
// is fixed at Compile time rather than re-specified here.
//
// ctx's cancellation is polled at each descriptor pop; a cancelled or
// step-bounded parse surfaces as ResultCancelled with no partial tree.
func (cg *CompiledGrammar) Parse(ctx context.Context, input string, listener extract.Listener, opts ...ParseOption) (*Result, error) {
	var o ParseOptions
	for _, f := range opts {
		f(&o)
	}
	var engineOpts []engine.Option
	if o.MaxSteps > 0 {
		engineOpts = append(engineOpts, engine.WithMaxSteps(o.MaxSteps))
	}

	out, err := engine.Parse(ctx, cg.compiled, input, engineOpts...)
	if err != nil {
		return nil, err
	}
	if out.Cancelled || out.StepLimitExceeded {
		tracer().Debugf("parse cancelled (cancelled=%v stepLimitExceeded=%v)", out.Cancelled, out.StepLimitExceeded)
		return &Result{Kind: ResultCancelled}, nil
	}
	if !out.Accepted {
		return &Result{Kind: ResultFailure, Err: perr.FromOutcome(input, out)}, nil
	}

	_, resolved := disambig.Resolve(cg.compiled, out.Root)
	tree := extract.Extract(cg.compiled, out.Root, listener)
	// Resolutions by priority and associativity are the declared rules at
	// work; only ties broken beyond them are reported.
	var diags []disambig.Diagnostic
	for _, d := range resolved {
		if d.Reason != "priority" && d.Reason != "associativity" {
			diags = append(diags, d)
		}
	}
	if len(diags) == 0 {
		return &Result{Kind: ResultSuccess, Tree: tree}, nil
	}
	diags = sortDiagnostics(diags)
	if o.PromoteAmbiguity {
		return nil, &AmbiguityError{Diagnostics: diags}
	}
	return &Result{Kind: ResultAmbiguous, Tree: tree, Diagnostics: diags}, nil
}

// sortDiagnostics orders diagnostics by input position, for callers
// (e.g. cmd/gllcheck) that want stable, reproducible output across runs
// regardless of the resolver's internal traversal order.
func sortDiagnostics(diags []disambig.Diagnostic) []disambig.Diagnostic {
	out := append([]disambig.Diagnostic{}, diags...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Left != out[j].Left {
			return out[i].Left < out[j].Left
		}
		return out[i].Right < out[j].Right
	})
	return out
}
