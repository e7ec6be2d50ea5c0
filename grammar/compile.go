package grammar

import (
	"fmt"
	"sort"

	"github.com/npillmayer/gll/charclass"
	"github.com/npillmayer/gll/ir"
)

// Compiled is an immutable, analyzed grammar. Safe for concurrent use by
// multiple engine.Parse calls.
type Compiled struct {
	Start          *Symbol
	symbols        map[string]*Symbol
	bySymbolID     []*Symbol
	alternates     map[int][]*Production // by LHS symbol ID
	allProductions []*Production
	nullable       map[int]bool
	first          map[int][]Atom
	repeatGroup    map[int]int // symbol ID -> repeat-group ID (0 = none)
	unions         map[string]UnionSpec
	priority       []string
	assoc          map[string]Assoc
}

// Symbol looks up a non-terminal by name.
func (g *Compiled) Symbol(name string) (*Symbol, bool) {
	s, ok := g.symbols[name]
	return s, ok
}

// Alternates returns the ordered list of productions for a non-terminal.
func (g *Compiled) Alternates(sym *Symbol) []*Production {
	return g.alternates[sym.ID]
}

// Production looks up a production by its stable integer id.
func (g *Compiled) Production(id int) *Production {
	return g.allProductions[id]
}

// Nullable reports whether sym can derive the empty string.
func (g *Compiled) Nullable(sym *Symbol) bool {
	return g.nullable[sym.ID]
}

// First returns the precomputed FIRST set (terminal atoms) for sym. It is
// an optimization hint, not required for correctness.
func (g *Compiled) First(sym *Symbol) []Atom {
	return g.first[sym.ID]
}

// RepeatGroup returns the repeat-lowering group id a symbol belongs to, or
// 0 if sym is not part of a lowered Repeat/Optional.
func (g *Compiled) RepeatGroup(sym *Symbol) int {
	return g.repeatGroup[sym.ID]
}

// UnionSpec returns the disambiguation registration for a union rule name,
// if any.
func (g *Compiled) UnionSpec(name string) (UnionSpec, bool) {
	u, ok := g.unions[name]
	return u, ok
}

// Priority returns the global priority list, highest-first: the list given
// to the last WithPriority call, or, if there was none, the union names in
// RegisterUnion order.
func (g *Compiled) Priority() []string {
	return append([]string{}, g.priority...)
}

// Associativity returns the declared associativity for rule name, or
// AssocNone if undeclared.
func (g *Compiled) Associativity(name string) Assoc {
	return g.assoc[name]
}

// AssocOf returns the associativity declared for the union that lists
// altName among its alternatives (RegisterUnion attaches associativity to
// the union's own name, not to each alternative individually — see
// DESIGN.md), or AssocNone if altName belongs to no registered union.
func (g *Compiled) AssocOf(altName string) Assoc {
	for _, u := range g.unions {
		for _, alt := range u.Alternatives {
			if alt == altName {
				return g.assoc[u.Name]
			}
		}
	}
	return AssocNone
}

type compileCtx struct {
	rules       map[string]ir.RuleDef
	symbols     map[string]*Symbol
	anonOf      map[string]bool
	anonCounter map[string]int
	alternates  map[string][]*Production
	repeatGroup map[string]int
	nextGroup   int
	errs        []error
}

// Compile freezes all registered rules into an immutable grammar rooted at
// startSymbol.
func (b *Builder) Compile(startSymbol string) (*Compiled, error) {
	if b.err != nil {
		return nil, b.err
	}
	if _, ok := b.rules[startSymbol]; !ok {
		return nil, errUnresolvedRef(startSymbol)
	}
	ctx := &compileCtx{
		rules:       b.rules,
		symbols:     make(map[string]*Symbol),
		anonOf:      make(map[string]bool),
		anonCounter: make(map[string]int),
		alternates:  make(map[string][]*Production),
		repeatGroup: make(map[string]int),
	}

	// Validate captures per rule before lowering.
	for name, def := range b.rules {
		if err := validateCaptures(name, def.Body); err != nil {
			ctx.errs = append(ctx.errs, err)
		}
	}

	// Topologically enumerate reachable non-terminals from the start
	// symbol, lowering each rule's body as it is discovered.
	visited := map[string]bool{}
	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		def, ok := ctx.rules[name]
		if !ok {
			ctx.errs = append(ctx.errs, errUnresolvedRef(name))
			return
		}
		ctx.lowerRuleBody(name, def.Body)
		// Discover further references introduced by this rule's own
		// (already-lowered) productions and any anonymous helper
		// non-terminals it created along the way.
	}
	visit(startSymbol)
	// lowerRuleBody / lowerPart register referenced rule names as they go
	// (via getOrCreateSymbol); walk the alternates repeatedly until no new
	// named rule is discovered, lowering each newly reached one.
	for {
		progressed := false
		for name := range ctx.symbols {
			if ctx.anonOf[name] {
				continue
			}
			if visited[name] {
				continue
			}
			visit(name)
			progressed = true
		}
		if !progressed {
			break
		}
	}

	if len(ctx.errs) > 0 {
		return nil, ctx.errs[0]
	}

	// Assign stable, deterministic symbol IDs: sorted by name, independent
	// of registration or discovery order (testable property: compile is
	// invariant under registration order of distinct rules).
	names := make([]string, 0, len(ctx.symbols))
	for name := range ctx.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	bySymbolID := make([]*Symbol, len(names))
	for i, name := range names {
		ctx.symbols[name].ID = i
		bySymbolID[i] = ctx.symbols[name]
	}

	g := &Compiled{
		Start:       ctx.symbols[startSymbol],
		symbols:     ctx.symbols,
		bySymbolID:  bySymbolID,
		alternates:  make(map[int][]*Production),
		nullable:    make(map[int]bool),
		first:       make(map[int][]Atom),
		repeatGroup: make(map[int]int),
		unions:      b.unions,
		priority:    dedupPreserveOrder(b.priority),
		assoc:       b.assoc,
	}
	id := 0
	for _, name := range names {
		sym := ctx.symbols[name]
		prods := ctx.alternates[name]
		for _, p := range prods {
			p.ID = id
			p.LHS = sym
			g.allProductions = append(g.allProductions, p)
			id++
		}
		g.alternates[sym.ID] = prods
		if gid, ok := ctx.repeatGroup[name]; ok {
			g.repeatGroup[sym.ID] = gid
		}
	}

	computeNullable(g)
	computeFirst(g)

	tracer().Debugf("grammar %q compiled: %d symbols, %d productions, start=%s",
		b.name, len(names), len(g.allProductions), startSymbol)
	return g, nil
}

func dedupPreserveOrder(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func validateCaptures(rule string, body ir.Node) error {
	seen := map[string]bool{}
	var err error
	ir.Walk(body, func(n ir.Node) {
		if err != nil {
			return
		}
		c := n.Capture()
		if c == "" {
			return
		}
		if seen[c] {
			err = errDuplicateCapture(rule, c)
			return
		}
		seen[c] = true
	})
	return err
}

func (ctx *compileCtx) getOrCreateSymbol(name string, anonymous bool) *Symbol {
	if s, ok := ctx.symbols[name]; ok {
		return s
	}
	s := &Symbol{Name: name, Anonymous: anonymous}
	ctx.symbols[name] = s
	ctx.anonOf[name] = anonymous
	return s
}

func (ctx *compileCtx) freshAnonName(origin string) string {
	ctx.anonCounter[origin]++
	return fmt.Sprintf("%s·%d", origin, ctx.anonCounter[origin])
}

// lowerRuleBody lowers a named (or anonymous) non-terminal's body into one
// or more flat productions.
func (ctx *compileCtx) lowerRuleBody(name string, body ir.Node) {
	sym := ctx.getOrCreateSymbol(name, ctx.anonOf[name])
	_ = sym
	if choice, ok := body.(ir.Choice); ok {
		var prods []*Production
		for _, alt := range choice.Alts {
			prods = append(prods, &Production{Atoms: ctx.lowerParts(name, partsOf(alt))})
		}
		ctx.alternates[name] = prods
		return
	}
	ctx.alternates[name] = []*Production{{Atoms: ctx.lowerParts(name, partsOf(body))}}
}

// partsOf returns the top-level parts of a node as a Sequence would: the
// node's own Parts if it is a Sequence with no capture of its own (a bare
// grouping), or the single node itself otherwise.
func partsOf(n ir.Node) []ir.Node {
	if seq, ok := n.(ir.Sequence); ok && seq.Capture() == "" {
		return seq.Parts
	}
	return []ir.Node{n}
}

func (ctx *compileCtx) lowerParts(origin string, parts []ir.Node) []Atom {
	var atoms []Atom
	for _, part := range parts {
		if seq, ok := part.(ir.Sequence); ok && seq.Capture() == "" {
			atoms = append(atoms, ctx.lowerParts(origin, seq.Parts)...)
			continue
		}
		atoms = append(atoms, ctx.lowerPart(origin, part))
	}
	return atoms
}

func (ctx *compileCtx) lowerPart(origin string, part ir.Node) Atom {
	switch n := part.(type) {
	case ir.Literal:
		return Atom{Kind: AtomLiteral, Literal: n.Text, Capture: n.Capture()}
	case ir.CharClass:
		return Atom{Kind: AtomCharClass, Class: charclass.Compile(n.Ranges, n.Negated), Capture: n.Capture()}
	case ir.Ref:
		sym := ctx.getOrCreateSymbol(n.Name, false)
		return Atom{Kind: AtomNonTerminal, Sym: sym, Capture: n.Capture()}
	case ir.Sequence:
		anon := ctx.freshAnonName(origin)
		ctx.alternates[anon] = []*Production{{Atoms: ctx.lowerParts(anon, n.Parts)}}
		sym := ctx.getOrCreateSymbol(anon, true)
		return Atom{Kind: AtomNonTerminal, Sym: sym, Capture: n.Capture()}
	case ir.Choice:
		anon := ctx.freshAnonName(origin)
		ctx.getOrCreateSymbol(anon, true)
		ctx.lowerRuleBody(anon, n)
		sym := ctx.symbols[anon]
		return Atom{Kind: AtomNonTerminal, Sym: sym, Capture: n.Capture()}
	case ir.Repeat:
		sym := ctx.lowerRepeat(origin, n)
		return Atom{Kind: AtomNonTerminal, Sym: sym, Capture: n.Capture()}
	case ir.Optional:
		sym := ctx.lowerRepeat(origin, n.AsRepeat())
		return Atom{Kind: AtomNonTerminal, Sym: sym, Capture: n.Capture()}
	default:
		panic(fmt.Sprintf("grammar: unknown ir.Node kind %v", part.Kind()))
	}
}

// lowerRepeat rewrites Repeat(body, m, M, sep) into an equivalent
// right-recursive grammar on fresh anonymous non-terminals. Returns the
// root non-terminal symbol standing for the whole repetition.
func (ctx *compileCtx) lowerRepeat(origin string, rep ir.Repeat) *Symbol {
	ctx.nextGroup++
	group := ctx.nextGroup

	rootName := ctx.freshAnonName(origin)
	rootSym := ctx.getOrCreateSymbol(rootName, true)
	ctx.repeatGroup[rootName] = group

	bodyAtom := ctx.lowerPart(origin, rep.Body)
	bodyAtom.Role = RoleRepeatBody
	var sepAtom *Atom
	if rep.Separator != nil {
		a := ctx.lowerPart(origin, rep.Separator)
		a.Role = RoleRepeatSeparator
		sepAtom = &a
	}

	m := rep.AtLeast
	M := rep.AtMost

	// With m == 0 and a separator, the first occurrence takes no leading
	// separator: root is eps | body tail, the tail covering the rest.
	leadOpt := m == 0 && sepAtom != nil && M != 0
	extraFrom := m
	if leadOpt {
		extraFrom = 1
	}

	var tailSym *Symbol
	switch {
	case M == ir.Unbounded:
		tailSym = ctx.makeInfiniteTail(origin, bodyAtom, sepAtom, group)
	case M > extraFrom:
		tailSym = ctx.makeBoundedTail(origin, bodyAtom, sepAtom, group, M-extraFrom)
	}

	if leadOpt {
		first := []Atom{bodyAtom}
		if tailSym != nil {
			first = append(first, Atom{Kind: AtomNonTerminal, Sym: tailSym, Role: RoleRepeatContinuation})
		}
		ctx.alternates[rootName] = []*Production{{Atoms: nil}, {Atoms: first}}
		return rootSym
	}

	var atoms []Atom
	for k := 0; k < m; k++ {
		if k > 0 && sepAtom != nil {
			atoms = append(atoms, *sepAtom)
		}
		atoms = append(atoms, bodyAtom)
	}
	if tailSym != nil {
		atoms = append(atoms, Atom{Kind: AtomNonTerminal, Sym: tailSym, Role: RoleRepeatContinuation})
	}
	ctx.alternates[rootName] = []*Production{{Atoms: atoms}}
	return rootSym
}

func (ctx *compileCtx) makeInfiniteTail(origin string, bodyAtom Atom, sepAtom *Atom, group int) *Symbol {
	name := ctx.freshAnonName(origin)
	sym := ctx.getOrCreateSymbol(name, true)
	ctx.repeatGroup[name] = group

	var more []Atom
	if sepAtom != nil {
		more = append(more, *sepAtom)
	}
	more = append(more, bodyAtom)
	more = append(more, Atom{Kind: AtomNonTerminal, Sym: sym, Role: RoleRepeatContinuation})

	ctx.alternates[name] = []*Production{
		{Atoms: nil},
		{Atoms: more},
	}
	return sym
}

func (ctx *compileCtx) makeBoundedTail(origin string, bodyAtom Atom, sepAtom *Atom, group, extra int) *Symbol {
	var prev *Symbol
	for k := 0; k <= extra; k++ {
		name := ctx.freshAnonName(origin)
		sym := ctx.getOrCreateSymbol(name, true)
		ctx.repeatGroup[name] = group

		prods := []*Production{{Atoms: nil}}
		if k > 0 {
			var atoms []Atom
			if sepAtom != nil {
				atoms = append(atoms, *sepAtom)
			}
			atoms = append(atoms, bodyAtom)
			atoms = append(atoms, Atom{Kind: AtomNonTerminal, Sym: prev, Role: RoleRepeatContinuation})
			prods = append(prods, &Production{Atoms: atoms})
		}
		ctx.alternates[name] = prods
		prev = sym
	}
	return prev
}

func computeNullable(g *Compiled) {
	changed := true
	for changed {
		changed = false
		for _, sym := range g.bySymbolID {
			if g.nullable[sym.ID] {
				continue
			}
			for _, p := range g.alternates[sym.ID] {
				if allAtomsNullable(g, p.Atoms) {
					g.nullable[sym.ID] = true
					changed = true
					break
				}
			}
		}
	}
}

func allAtomsNullable(g *Compiled, atoms []Atom) bool {
	for _, a := range atoms {
		switch a.Kind {
		case AtomLiteral:
			if a.Literal != "" {
				return false
			}
		case AtomCharClass:
			return false
		case AtomNonTerminal:
			if !g.nullable[a.Sym.ID] {
				return false
			}
		}
	}
	return true
}

func computeFirst(g *Compiled) {
	maxPasses := len(g.bySymbolID)*2 + 10
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, sym := range g.bySymbolID {
			for _, p := range g.alternates[sym.ID] {
				seq := firstOfSeq(g, p.Atoms)
				for _, a := range seq {
					if addFirst(g, sym.ID, a) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}
}

func firstOfSeq(g *Compiled, atoms []Atom) []Atom {
	var out []Atom
	for _, a := range atoms {
		switch a.Kind {
		case AtomLiteral:
			if a.Literal == "" {
				continue
			}
			out = append(out, a)
			return out
		case AtomCharClass:
			out = append(out, a)
			return out
		case AtomNonTerminal:
			out = append(out, g.first[a.Sym.ID]...)
			if !g.nullable[a.Sym.ID] {
				return out
			}
		}
	}
	return out
}

func addFirst(g *Compiled, symID int, a Atom) bool {
	for _, existing := range g.first[symID] {
		if atomEqualKey(existing) == atomEqualKey(a) {
			return false
		}
	}
	g.first[symID] = append(g.first[symID], a)
	return true
}

func atomEqualKey(a Atom) string {
	switch a.Kind {
	case AtomLiteral:
		return "L:" + a.Literal
	case AtomCharClass:
		return fmt.Sprintf("C:%p", a.Class)
	case AtomNonTerminal:
		return fmt.Sprintf("N:%d", a.Sym.ID)
	}
	return ""
}
