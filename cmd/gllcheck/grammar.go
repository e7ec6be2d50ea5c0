package main

import (
	"fmt"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/ir"
)

// grammars lists every demonstration grammar this binary can compile and
// parse against, keyed by the name --grammar selects.
var grammars = map[string]func() (*gll.CompiledGrammar, string){
	"arith":  arithGrammar,
	"semver": semverGrammar,
}

func digits() ir.CharClass { return ir.MustCharClass("0-9") }

// arithGrammar is a left-recursive, ambiguity-laden expression grammar
// disambiguated by priority (Mul tighter than Add) and left-associativity.
// Each tier is one rule taking its operator from a two-character class
// rather than two separately-ranked rules (one per operator): splitting
// "+" and "-" into distinct rules would give the priority filter two
// distinct ranks for what's supposed to be one precedence level, mis-
// nesting a same-tier chain like "1-2+3" as "1-(2+3)" instead of the
// correct "(1-2)+3".
func arithGrammar() (*gll.CompiledGrammar, string) {
	g := gll.NewGrammar("arith")
	g.Rule("Add", ir.NewRef("E").Captured("left"), ir.MustCharClass("+-").Captured("op"), ir.NewRef("E").Captured("right"))
	g.Rule("Mul", ir.NewRef("E").Captured("left"), ir.MustCharClass("*/").Captured("op"), ir.NewRef("E").Captured("right"))
	g.Rule("Paren", ir.NewLiteral("("), ir.NewRef("E").Captured("inner"), ir.NewLiteral(")"))
	g.Rule("Num", ir.NewRepeat(digits(), 1, ir.Unbounded, nil).Captured("digits"))
	g.RegisterUnion("E", []string{"Add", "Mul", "Paren", "Num"}, gll.AssocNone, "<gllcheck>", 0)
	g.WithAssoc("Add", gll.AssocLeft)
	g.WithAssoc("Mul", gll.AssocLeft)
	g.WithPriority("Mul", "Add")
	cg, err := g.Compile("E")
	if err != nil {
		panic(fmt.Sprintf("gllcheck: built-in arith grammar failed to compile: %v", err))
	}
	return cg, "E"
}

// semverGrammar recognizes a semantic-version string (MAJOR.MINOR.PATCH
// with optional -prerelease and +build metadata).
func semverGrammar() (*gll.CompiledGrammar, string) {
	g := gll.NewGrammar("semver")
	g.Rule("Id", ir.NewRepeat(ir.NewRef("IdChar"), 1, ir.Unbounded, nil).Captured("id"))
	g.Rule("IdChar", ir.MustCharClass("a-zA-Z0-9-"))
	g.Rule("Pre", ir.NewLiteral("-"), ir.NewRepeat(ir.NewRef("Id"), 1, ir.Unbounded, ir.NewLiteral(".")).Captured("pre"))
	g.Rule("Build", ir.NewLiteral("+"), ir.NewRepeat(ir.NewRef("Id"), 1, ir.Unbounded, ir.NewLiteral(".")).Captured("build"))
	g.Rule("SemVer",
		ir.NewRepeat(digits(), 1, ir.Unbounded, nil).Captured("major"),
		ir.NewLiteral("."),
		ir.NewRepeat(digits(), 1, ir.Unbounded, nil).Captured("minor"),
		ir.NewLiteral("."),
		ir.NewRepeat(digits(), 1, ir.Unbounded, nil).Captured("patch"),
		ir.NewOptional(ir.NewRef("Pre")).Captured("pre"),
		ir.NewOptional(ir.NewRef("Build")).Captured("build"),
	)
	cg, err := g.Compile("SemVer")
	if err != nil {
		panic(fmt.Sprintf("gllcheck: built-in semver grammar failed to compile: %v", err))
	}
	return cg, "SemVer"
}
