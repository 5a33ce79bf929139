package cfg

import (
	"fmt"

	"github.com/TJamesCorcoran/hammer/grammar"
)

// DesugarError reports a user-IR node that cannot be expressed as a CFG
// production: a compile error in the CFG-based backends.
type DesugarError struct {
	NodeKind grammar.Kind
	Detail   string
}

func (e *DesugarError) Error() string {
	return fmt.Sprintf("cfg: cannot desugar %s node: %s", e.NodeKind, e.Detail)
}

// desugarer converts a grammar.Grammar's user IR into a normalized Grammar,
// memoized on node identity so that shared subgraphs (DAG sharing, or a
// recursive Indirect target) collapse onto one non-terminal.
type desugarer struct {
	src     *grammar.Grammar
	dst     *Grammar
	memo    map[int32]*Symbol
	actions map[int32]grammar.ActionFunc
	attrs   map[int32]grammar.AttrFunc
}

// Desugar builds the normalized sum-of-products CFG for g, augmenting the
// start symbol with `S' -> S #eof` as rule 0.
func Desugar(g *grammar.Grammar) (*Grammar, error) {
	if name := g.CheckUnbound(); name != "" {
		return nil, &DesugarError{NodeKind: grammar.KIndirect, Detail: "indirect " + name + " was never bound"}
	}
	d := &desugarer{
		src:     g,
		dst:     NewGrammar("G"),
		memo:    make(map[int32]*Symbol),
		actions: make(map[int32]grammar.ActionFunc),
		attrs:   make(map[int32]grammar.AttrFunc),
	}
	startSym, err := d.convert(g.Start)
	if err != nil {
		return nil, err
	}
	augStart := d.dst.Intern("S'")
	eof := d.dst.Terminal(EOF, "#eof")
	d.dst.rules = append([]*Rule{{Serial: 0, LHS: augStart, RHS: []*Symbol{startSym, eof}}}, d.dst.rules...)
	for i, r := range d.dst.rules {
		r.Serial = i
	}
	return d.dst, nil
}

// freshNonTerminal allocates a non-terminal for node n's desugared
// expansion, named for debugging from its kind and id.
func (d *desugarer) freshNonTerminal(n *grammar.Node) *Symbol {
	name := fmt.Sprintf("%s_%d", n.Kind, n.ID())
	return d.dst.Intern(name)
}

// convert returns the non-terminal (or terminal, for a bare byte match)
// symbol standing in for node n, desugaring it on first visit and reusing
// the memoized symbol on every subsequent visit — this is what makes
// shared subgraphs and Indirect-bound recursion collapse onto one symbol.
func (d *desugarer) convert(n *grammar.Node) (*Symbol, error) {
	if n == nil {
		return nil, fmt.Errorf("cfg: nil grammar node")
	}
	if sy, ok := d.memo[n.ID()]; ok {
		return sy, nil
	}

	switch n.Kind {
	case grammar.KToken:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A // register before recursing, for self-reference safety
		rhs := make([]*Symbol, 0, len(n.Name))
		for i := 0; i < len(n.Name); i++ {
			rhs = append(rhs, d.dst.Terminal(int32(n.Name[i]), fmt.Sprintf("%q", n.Name[i])))
		}
		d.dst.AddRule(A, rhs, nil)
		return A, nil

	case grammar.KCharSet:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A
		for b := 0; b < 256; b++ {
			if n.Chars.Contains(byte(b)) {
				d.dst.AddRule(A, []*Symbol{d.dst.Terminal(int32(b), fmt.Sprintf("%q", byte(b)))}, nil)
			}
		}
		return A, nil

	case grammar.KAnything:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A
		for b := 0; b < 256; b++ {
			d.dst.AddRule(A, []*Symbol{d.dst.Terminal(int32(b), fmt.Sprintf("%q", byte(b)))}, nil)
		}
		return A, nil

	case grammar.KEnd:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A
		d.dst.AddRule(A, []*Symbol{d.dst.Terminal(EOF, "#eof")}, nil)
		return A, nil

	case grammar.KEpsilon:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A
		d.dst.AddRule(A, nil, nil)
		return A, nil

	case grammar.KNothing:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A
		// no productions at all: A can never be derived
		return A, nil

	case grammar.KSequence:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A
		rhs := make([]*Symbol, 0, len(n.Children))
		for _, c := range n.Children {
			csym, err := d.convert(c)
			if err != nil {
				return nil, err
			}
			rhs = append(rhs, csym)
		}
		d.dst.AddRule(A, rhs, nil)
		return A, nil

	case grammar.KChoice:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A
		for _, c := range n.Children {
			csym, err := d.convert(c)
			if err != nil {
				return nil, err
			}
			d.dst.AddRule(A, []*Symbol{csym}, nil)
		}
		return A, nil

	case grammar.KOptional:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A
		csym, err := d.convert(n.Child)
		if err != nil {
			return nil, err
		}
		d.dst.AddRule(A, []*Symbol{csym}, nil)
		d.dst.AddRule(A, nil, nil)
		return A, nil

	case grammar.KMany:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A
		csym, err := d.convert(n.Child)
		if err != nil {
			return nil, err
		}
		d.dst.AddRule(A, []*Symbol{csym, A}, nil) // A -> C A
		d.dst.AddRule(A, nil, nil)                // A -> epsilon
		return A, nil

	case grammar.KMany1:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A
		csym, err := d.convert(n.Child)
		if err != nil {
			return nil, err
		}
		many := d.dst.Intern(fmt.Sprintf("Many_%d", n.ID()))
		d.dst.AddRule(many, []*Symbol{csym, many}, nil)
		d.dst.AddRule(many, nil, nil)
		d.dst.AddRule(A, []*Symbol{csym, many}, nil) // A -> C Many (Many is nullable, so A also derives C alone)
		return A, nil

	case grammar.KSepBy, grammar.KSepBy1:
		A := d.freshNonTerminal(n)
		d.memo[n.ID()] = A
		csym, err := d.convert(n.Child)
		if err != nil {
			return nil, err
		}
		ssym, err := d.convert(n.Separator)
		if err != nil {
			return nil, err
		}
		// Tail -> S C Tail | epsilon
		tail := d.dst.Intern(fmt.Sprintf("SepTail_%d", n.ID()))
		d.dst.AddRule(tail, []*Symbol{ssym, csym, tail}, nil)
		d.dst.AddRule(tail, nil, nil)
		// Rep -> C Tail (one-or-more, separated)
		rep := d.dst.Intern(fmt.Sprintf("SepRep_%d", n.ID()))
		d.dst.AddRule(rep, []*Symbol{csym, tail}, nil)
		if n.Kind == grammar.KSepBy1 {
			d.dst.AddRule(A, []*Symbol{rep}, nil)
		} else {
			d.dst.AddRule(A, []*Symbol{rep}, nil)
			d.dst.AddRule(A, nil, nil)
		}
		return A, nil

	case grammar.KNotFollowedBy, grammar.KFollowedBy:
		return nil, &DesugarError{NodeKind: n.Kind, Detail: "PEG-only zero-width lookahead has no CFG production; use the packrat backend"}

	case grammar.KIndirect:
		if n.Bound == nil {
			return nil, &DesugarError{NodeKind: n.Kind, Detail: "indirect " + n.Name + " was never bound"}
		}
		// Reuse the already-assigned non-terminal of the bound target,
		// rather than introducing a fresh indirection symbol.
		target, err := d.convert(n.Bound)
		if err != nil {
			return nil, err
		}
		d.memo[n.ID()] = target
		return target, nil

	case grammar.KAction:
		csym, err := d.convert(n.Child)
		if err != nil {
			return nil, err
		}
		d.memo[n.ID()] = csym
		d.actions[csym.ID()] = n.Action
		d.attachAction(csym, n.Action)
		return csym, nil

	case grammar.KAttr:
		csym, err := d.convert(n.Child)
		if err != nil {
			return nil, err
		}
		d.memo[n.ID()] = csym
		d.attrs[csym.ID()] = n.Attr
		d.attachAttr(csym, n.Attr)
		return csym, nil

	case grammar.KIgnore:
		csym, err := d.convert(n.Child)
		if err != nil {
			return nil, err
		}
		d.memo[n.ID()] = csym
		return csym, nil
	}
	return nil, &DesugarError{NodeKind: n.Kind, Detail: "unrecognized node kind"}
}

// attachAction installs f as the reduce-time action for every rule whose
// LHS is csym. Annotations attach to the non-terminal.
func (d *desugarer) attachAction(csym *Symbol, f grammar.ActionFunc) {
	for _, r := range d.dst.rules {
		if r.LHS == csym {
			r.Action = func(children []interface{}) (interface{}, bool) {
				var childValue interface{}
				if len(children) == 1 {
					childValue = children[0]
				} else {
					childValue = children
				}
				return f(childValue)
			}
		}
	}
}

// attachAttr installs f as a rejecting predicate for every rule whose LHS is
// csym: the rule's action becomes "pass the reduced value through iff f
// accepts it".
func (d *desugarer) attachAttr(csym *Symbol, f grammar.AttrFunc) {
	for _, r := range d.dst.rules {
		if r.LHS == csym {
			r.Action = func(children []interface{}) (interface{}, bool) {
				var childValue interface{}
				if len(children) == 1 {
					childValue = children[0]
				} else {
					childValue = children
				}
				if !f(childValue) {
					return nil, false
				}
				return childValue, true
			}
		}
	}
}
