/*
Package grammar implements the grammar compiler: component B of the parser
engine. It normalizes a set of ir.RuleDef bodies into a Compiled grammar —
a flat table of non-terminals, productions and alternates, every
production body a flat sequence of atoms (literals, char-class matchers,
non-terminal references), with per-slot indices the GLL core keys SPPF
intermediate nodes on.

Building a Grammar

Grammars are assembled with a Builder, mirroring gorgo's
lr.NewGrammarBuilder fluent style:

	b := grammar.NewBuilder("G")
	b.Rule("Greeting", ir.NewLiteral("Hello, "), ir.NewRef("Name").Captured("name"), ir.NewLiteral("!"))
	g, err := b.Compile("Greeting")

Repetition lowering rewrites Repeat(body, m, M, sep) into an equivalent
right-recursive grammar on fresh anonymous non-terminals: the mandatory
first m occurrences are emitted directly into the production's atom
sequence, and the remaining occurrences (up to M, or unbounded) are
emitted as a tail chain of anonymous non-terminals the tree extractor
recognizes and flattens back into one ordered capture list.

Left recursion, direct or indirect, is not rewritten — it is not an error
for this compiler. The GLL core (package engine) handles it natively via
the graph-structured stack.
*/
package grammar
