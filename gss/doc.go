/*
Package gss implements the graph-structured stack: the shared call/return
bookkeeping the GLL core (package engine) uses to represent every pending
production return compactly, instead of one stack per ambiguous derivation
path.

A Node is identified by the pair (return Slot, input position). Nodes
are deduplicated by that pair's identity; a node may have many outgoing
edges (many call sites sharing
the same return point) and many recorded pops (completed derivations at
different end positions). Edges are labeled with an sppf.Node, carrying
the accumulated derivation at the call site forward to the resumed
continuation.

This generalizes the shape of gorgo's lr/dss stack combinator (a DAG that
forks when two parse stacks diverge and rejoins when they agree again) to
GLL's descriptor scheduling: gorgo's dss keys nodes on (LR state, symbol);
gss keys nodes on (return slot, input position), and edge labels carry
SPPF nodes rather than bare grammar symbols.
*/
package gss
