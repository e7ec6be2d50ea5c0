/*
Package gll is a generalized context-free parsing toolbox.

It compiles a grammar assembled from package ir's combinators into a
GLL (Generalized LL) recognizer, producing a Shared Packed Parse Forest
(SPPF) that represents every derivation of an ambiguous or
left-recursive grammar in polynomial space. A declarative disambiguation
pass (package disambig) then collapses that forest to a single
derivation using per-rule priority and associativity, and a tree
extractor (package extract) hydrates the result through an
application-supplied builder. Package structure is as follows:

■ ir: the grammar intermediate representation — literals, character
classes, sequences, choices and repetitions, assembled with
package grammar's Builder.

■ grammar: compiles a Builder's registered rules into an immutable
Compiled grammar — symbol/production tables, FIRST and nullable sets,
lowered repetitions, and the registered priority/associativity profile.

■ charclass: parses the character-class surface syntax (ranges,
negation, backslash escapes) into ir.CharClass ranges.

■ engine: the GLL core — GSS-backed descriptor scheduling producing an
SPPF.

■ gss: the Graph-Structured Stack the engine schedules descriptors over.

■ sppf: the Shared Packed Parse Forest arena and node types the engine
builds into.

■ disambig: the disambiguation filter, collapsing an SPPF's ambiguous
nodes to a single packed child by priority, associativity and
longest-match.

■ extract: the tree extractor and hydrator, walking a disambiguated
SPPF into application values via an external builder.

■ perr: formats a failed parse's diagnostics (farthest position,
expected set) into a line/column ParseError.

The base package ties these into the external interface: Grammar and
CompiledGrammar for registration and compilation, and
CompiledGrammar.Parse for running input through a compiled grammar and
getting back a Result.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gll
