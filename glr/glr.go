// Package glr implements the GLR backend: a generalized LR parser that
// explores every viable LR stack configuration in parallel over a
// graph-structured stack, tolerating grammars whose LALR(1) tables carry
// shift/reduce or reduce/reduce conflicts.
//
// The driver follows a reduce-then-shift-per-token loop, forking a stack on
// every table conflict and merging stacks that converge on the same state,
// using package gss for the stack graph and package sppf for packing
// ambiguous derivations. Rather than building its own LR(1) tables from
// scratch, this backend reuses package lalr's CFSM/ACTION/GOTO construction
// via lalr.CompileAmbiguous: GLR tables are LALR(1) tables that tolerate
// conflicts instead of rejecting them, resolved at parse time by forking.
package glr

import (
	"github.com/TJamesCorcoran/hammer/cfg"
	"github.com/TJamesCorcoran/hammer/grammar"
	"github.com/TJamesCorcoran/hammer/lalr"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("hammer.glr")
}

// Parser holds the compiled tables a Parse run drives.
type Parser struct {
	tables *lalr.Tables
}

// Compile desugars g's combinator graph into a CFG and builds LALR(1)
// tables that tolerate conflicts, per CompileAmbiguous.
func Compile(g *grammar.Grammar) (*Parser, error) {
	cg, err := cfg.Desugar(g)
	if err != nil {
		return nil, err
	}
	tables, err := lalr.CompileAmbiguous(cg)
	if err != nil {
		return nil, err
	}
	return &Parser{tables: tables}, nil
}
