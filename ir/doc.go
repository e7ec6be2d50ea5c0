/*
Package ir implements the grammar intermediate representation: component A
of the parser engine. A grammar rule's body is a tagged, immutable tree of
IR nodes (Literal, CharClass, Ref, Choice, Sequence, Repeat, Optional).
Cycles between rules exist only through named Ref nodes; the IR itself is
a DAG.

Each node carries an optional capture name, binding the substring or
sub-tree it matches to a field name for the tree extractor (package
extract) to pick up later. A capture on a Repeat yields an ordered list of
captured items; a capture on a scalar node yields one value.

This package does no grammar analysis (non-terminal resolution,
nullability, lowering of repetitions) — that is package grammar's job.
*/
package ir
