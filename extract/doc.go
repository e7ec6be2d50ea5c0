/*
Package extract implements the tree extractor and hydrator. Given a
disambiguated SPPF (every node reduced to a single packed child) it
walks the derivation and calls an external Listener once per concrete
user rule, with the rule's input span, its named captures (in declaration
order, each with one value per match — more than one only for a
repetition capture) and its anonymous (uncaptured) children.

Anonymous non-terminals introduced by lowering — Sequence groupings,
inline Choice, and the right-recursive chains Repeat/Optional compile
down to — never reach the Listener themselves; their captures and
children are lifted into the nearest enclosing concrete rule. A
repetition's internal chain of anonymous continuation symbols
(grammar.Compiled.RepeatGroup) is flattened back into one ordered list
per captured position, regardless of how many anonymous symbols the
lowering used to express it.

Grounded on gorgo's lr/earley/parsetree.go Listener/Reduce/Terminal
split (WalkDerivation calls Terminal for scanned tokens and Reduce once
per completed rule, handing back an opaque interface{} "value" the
caller's TreeBuilder assembles into sppf.SymbolNode); this package keeps
that separation of concerns but narrows Reduce's signature to a plain
(name, span, captures, children) contract instead of gorgo's raw RHS
node list, since flattening repetitions requires grammar-level metadata
TreeBuilder never needed.
*/
package extract
