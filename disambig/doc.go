/*
Package disambig implements the disambiguation filter. It walks an
accepted parse's SPPF and, at every symbol or intermediate node with more
than one packed child, applies four filters in order — priority,
associativity, longest-match, first-in-document-order — until exactly one
packed child survives.

The filters run bottom-up (children before parents) so that, by the time
a self-recursive operator rule's own ambiguity is resolved, its operand
children have already collapsed to a single derivation each — which is
what lets the associativity filter ask "is this operand itself an R" with
a plain rule-name comparison rather than a search over a still-ambiguous
subtree.

This has no direct analogue in gorgo: lr/glr and lr/earley report
ambiguity (or fork stacks) but neither declares precedence/associativity
or collapses a forest to one tree, so the filter's structure is this
package's own, grounded only in sppf's existing notion of a "packed"
child (lr/sppf/sppf.go) for what "ambiguous" means.
*/
package disambig
