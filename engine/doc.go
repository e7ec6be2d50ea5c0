/*
Package engine implements the GLL core: component D of the parser engine,
the generalized-LL parsing algorithm with RNGLR-style packed-node
creation, generalized from gorgo's lr/earley.Parser. Where earley.go
drives a sequence of Earley sets with a scan/predict/complete inner loop,
Parse drives a single descriptor work-list over a graph-structured stack
(package gss) and a shared packed parse forest (package sppf), which is
what lets it handle left recursion — direct, indirect or hidden — without
rewriting the grammar.

State kept for one parse invocation:

  - a descriptor work-list: a github.com/emirpasic/gods/queue/linkedlistqueue
    FIFO paired with an internal/iterset.Set for the seen-test, so no
    descriptor is ever processed twice (the termination guarantee behind
    GLL's O(n³) bound);
  - a gss.Graph of every GSS node created so far;
  - an sppf.Forest owning every SPPF node created so far;
  - a farthest-position tracker for error reporting when the parse fails.

Parse returns an Outcome rather than a raw SPPF pointer, distinguishing
acceptance, failure-with-diagnostics, step-limit exhaustion and
cancellation — the root gll package turns an Outcome into its public
Result variants.
*/
package engine
