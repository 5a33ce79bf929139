// Package sppf implements a shared packed parse forest: a store of parse
// results keyed by (symbol, input span) so that a GLR driver can detect when
// two stack branches have derived the same non-terminal over the same input
// range and pack them into one ambiguity node instead of duplicating the
// subtree for every surviving branch.
//
// A classic SPPF binarizes RHS-nodes and tracks explicit and/or edges; this
// package flattens that down to what the GLR driver in this module actually
// needs — one packed node per (symbol, span) holding the set of alternative
// already-built *tree.Node derivations — since a derivation's children are
// already represented directly as a tree.Node rather than via a separate
// RHS-node layer.
package sppf

import "github.com/TJamesCorcoran/hammer/tree"

type key struct {
	symbol int32
	start  int
	end    int
}

// Forest packs alternative derivations of the same (symbol, span) together.
type Forest struct {
	nodes map[key]*packed
}

type packed struct {
	alternatives []*tree.Node
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{nodes: make(map[key]*packed)}
}

// Add records one derivation of symbol over [start,end) and returns the
// tree the caller should use going forward: the derivation itself if it is
// the only one seen so far for this (symbol, span), or a *tree.Node built by
// tree.NewAmbig over every alternative seen so far if more than one
// derivation has now converged here.
func (f *Forest) Add(symbol int32, start, end int, derivation *tree.Node) *tree.Node {
	k := key{symbol: symbol, start: start, end: end}
	p, ok := f.nodes[k]
	if !ok {
		p = &packed{alternatives: []*tree.Node{derivation}}
		f.nodes[k] = p
		return derivation
	}
	if !containsEquivalent(p.alternatives, derivation) {
		p.alternatives = append(p.alternatives, derivation)
	}
	if len(p.alternatives) == 1 {
		return p.alternatives[0]
	}
	return tree.NewAmbig(p.alternatives)
}

// containsEquivalent treats two derivations as the same alternative when
// they are pointer-identical — packing is keyed on (symbol, span), so
// distinct derivations landing in the same slot are only worth deduplicating
// when the driver handed back the exact same already-built subtree (e.g. via
// prefix sharing in the GSS).
func containsEquivalent(alts []*tree.Node, n *tree.Node) bool {
	for _, a := range alts {
		if a == n {
			return true
		}
	}
	return false
}

// Lookup returns the packed result, if any, previously recorded for
// (symbol, start, end).
func (f *Forest) Lookup(symbol int32, start, end int) (*tree.Node, bool) {
	p, ok := f.nodes[key{symbol: symbol, start: start, end: end}]
	if !ok {
		return nil, false
	}
	if len(p.alternatives) == 1 {
		return p.alternatives[0], true
	}
	return tree.NewAmbig(p.alternatives), true
}
