/*
Package hammer is a parser-combinator toolbox.

Grammars are built as a graph of small combinator nodes (package grammar):
literals, character classes, sequences, choices, repetitions and semantic
actions. A grammar is then handed to one of several interchangeable parsing
backends — packrat (package packrat), LL(k) (package llk), LALR(1) (package
lalr) or GLR (package glr) — each trading expressive power for performance
differently. All backends but packrat share a normalized context-free
grammar intermediate representation (package cfg), desugared from the
combinator graph.

Package structure:

■ allocator: pluggable allocation and a bump-style arena used for parse-time
state.

■ grammar: the user-facing combinator graph (the "user IR").

■ cfg: the normalized sum-of-products grammar, together with nullability,
FIRST and FOLLOW analyses.

■ backend: the fixed dispatch table binding a backend identity to
{compile, parse, free}.

■ packrat, llk, lalr, glr: the four parsing backends.

■ gss, sppf: supporting data structures for the GLR backend — a
graph-structured stack and a shared packed parse forest.

■ tree: the parse-tree/parse-forest node types and semantic action wiring.

■ cursor: a byte/bit cursor over a contiguous input buffer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package hammer
