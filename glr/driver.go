package glr

import (
	"fmt"

	"github.com/TJamesCorcoran/hammer"
	"github.com/TJamesCorcoran/hammer/cfg"
	"github.com/TJamesCorcoran/hammer/cursor"
	"github.com/TJamesCorcoran/hammer/gss"
	"github.com/TJamesCorcoran/hammer/lalr"
	"github.com/TJamesCorcoran/hammer/sppf"
	"github.com/TJamesCorcoran/hammer/tree"
)

// Parse drives the GLR algorithm over input: at each token, every live
// stack top performs every reduction enabled for it (cascading, since a
// reduce changes the top state and may itself enable further reduces),
// forking the stack whenever more than one action is enabled; once no
// stack has a pending reduce, every surviving top shifts the token
// together. Stacks with no enabled action die. Parsing fails only when
// every stack has died; it accepts when any stack reaches the augmented
// rule's accept action at end of input.
func (p *Parser) Parse(input []byte) (*tree.Node, error) {
	root := gss.NewRoot("glr", cfg.EOF)
	start := gss.NewStack(root)
	start.Push(p.tables.StartState(), 0, nil)

	forest := sppf.NewForest()
	g := p.tables.Grammar()
	pos := 0
	cur := cursor.New(input)

	terminalAt := func(i int) *cfg.Symbol {
		cur.Seek(i)
		b, ok := cur.PeekByte()
		if !ok {
			return g.Terminal(cfg.EOF, "#eof")
		}
		return g.Terminal(int32(b), fmt.Sprintf("%q", b))
	}

	var accepted []*tree.Node
	for {
		term := terminalAt(pos)
		frontier := root.ActiveStacks()
		if len(frontier) == 0 {
			return nil, &hammer.ParseError{Kind: hammer.ParseFailed, Position: uint64(pos)}
		}

		var shiftSet []*gss.Stack
		for _, s := range frontier {
			acc := p.reduceAndCollectShifts(s, term, pos, forest, &shiftSet)
			if acc != nil {
				accepted = append(accepted, acc)
			}
		}

		if term.Value() == cfg.EOF {
			if len(accepted) == 0 {
				return nil, &hammer.ParseError{Kind: hammer.ParseFailed, Position: uint64(pos)}
			}
			if len(accepted) == 1 {
				return accepted[0], nil
			}
			return tree.NewAmbig(accepted), nil
		}

		node := tree.NewBytes(input, pos, pos+1)
		for _, s := range shiftSet {
			target := p.tables.GotoState(topState(s), term)
			s.Push(uint(target), pos+1, node)
		}
		pos++
	}
}

func topState(s *gss.Stack) uint {
	state, _ := s.Peek()
	return state
}

// reduceAndCollectShifts processes every action enabled for stack s on
// term, cascading through reduces, and appends every resulting stack that
// reaches a shift action to *shiftSet. It returns the accepted tree if an
// accept action was reached on this stack.
func (p *Parser) reduceAndCollectShifts(s *gss.Stack, term *cfg.Symbol, pos int, forest *sppf.Forest, shiftSet *[]*gss.Stack) *tree.Node {
	var accepted *tree.Node
	pending := []*gss.Stack{s}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		state, _ := cur.Peek()
		a1, a2 := p.tables.Actions(state, term)
		if a1 == p.tables.NullValue() {
			cur.Die()
			continue
		}

		branches := []*gss.Stack{cur}
		actions := []int32{a1}
		if a2 != p.tables.NullValue() {
			branches = append(branches, cur.Fork())
			actions = append(actions, a2)
		}

		for i, act := range actions {
			switch {
			case act == lalr.AcceptAction:
				_, top := branches[i].Peek()
				accepted, _ = top.(*tree.Node)
			case act == lalr.ShiftAction:
				*shiftSet = append(*shiftSet, branches[i])
			default:
				rule := p.tables.Grammar().Rule(int(act))
				for _, path := range branches[i].Reduce(len(rule.RHS)) {
					value, ok := p.buildReduction(rule, path.Values, pos, forest)
					if !ok {
						continue // this branch's action rejected the reduction
					}
					baseState, _ := path.Base.Peek()
					target := p.tables.GotoState(baseState, rule.LHS)
					next := path.Base.Push(uint(target), pos, value)
					pending = append(pending, next)
				}
				// branches[i]'s role in the frontier is now played by the
				// freshly grown continuation(s) above, not by branches[i]
				// itself.
				branches[i].Retire()
			}
		}
	}
	return accepted
}

// buildReduction assembles the tree for one reduction, applying the rule's
// semantic action if present (else building a plain Sequence), then packs
// it into the forest keyed by (LHS symbol, span) so that a second,
// independent derivation of the same non-terminal over the same input
// range is merged into an ambiguity node rather than kept as a separate
// branch value.
func (p *Parser) buildReduction(rule *cfg.Rule, values []interface{}, pos int, forest *sppf.Forest) (*tree.Node, bool) {
	children := make([]*tree.Node, len(values))
	start, end := pos, pos
	for i, v := range values {
		n, _ := v.(*tree.Node)
		children[i] = n
		if n == nil {
			continue
		}
		if i == 0 || n.Span.Start < start {
			start = n.Span.Start
		}
		if n.Span.End > end {
			end = n.Span.End
		}
	}
	var value *tree.Node
	if rule.Action != nil {
		v, ok := rule.Action(values)
		if !ok {
			return nil, false
		}
		value = wrapValue(v)
	} else {
		value = tree.NewSequence(children)
	}
	if value.Span.Start == 0 && value.Span.End == 0 && (start != 0 || end != 0) {
		value.Span = tree.Span{Start: start, End: end}
	}
	return forest.Add(rule.LHS.ID(), start, end, value), true
}

func wrapValue(v interface{}) *tree.Node {
	switch x := v.(type) {
	case *tree.Node:
		return x
	case uint64:
		return tree.NewUint(x, tree.Span{})
	case int64:
		return tree.NewSint(x, tree.Span{})
	default:
		return tree.NewUser(v, tree.Span{})
	}
}
