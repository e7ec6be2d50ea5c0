/*
Package sppf implements the shared packed parse forest: the GLL core's
output structure, generalizing gorgo's lr/sppf.Forest (a binarized SPPF for
LR-style grammars) to a GLL parse's three node kinds.

A forest holds three kinds of node, each deduplicated by its key triple so
that a parse invocation builds at most one node per distinct key:

  - Symbol nodes (symbol, left, right) — "this symbol derives input[left..right]".
  - Intermediate nodes (production, dot, left, right) — a partial match
    mid-production, keyed on the grammar slot rather than a whole symbol.
  - Packed nodes, children of a symbol or intermediate node, each storing
    one derivation (pivot, left child, right child). A node with more than
    one packed child is ambiguous; package disambig picks among them.

Deduplication keys are built with cnf/structhash, the same library gorgo's
lr/earley uses to hash its backlink table, rather than gorgo's sppf
package's own hand-rolled two-level map-of-sets search tree — the
bookkeeping this package needs (three kinds of key tuple: symbol,
intermediate and terminal)
makes a uniform hash-keyed map a better fit than growing gorgo's searchTree
to a third dimension.
*/
package sppf
