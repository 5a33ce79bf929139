package lalr

import (
	"fmt"

	"github.com/TJamesCorcoran/hammer"
	"github.com/TJamesCorcoran/hammer/cfg"
	"github.com/TJamesCorcoran/hammer/cursor"
	"github.com/TJamesCorcoran/hammer/tree"
)

// stackItem is one (state, parse-tree value) pair on the shift/reduce
// driver's stack.
type stackItem struct {
	state uint
	value *tree.Node
}

// Parse drives the shift/reduce automaton over input, starting in the
// CFSM's start state and consuming bytes as terminals (this library is
// lexer-less: a "token" is just the current input byte).
func (t *Tables) Parse(input []byte) (*tree.Node, error) {
	stack := []stackItem{{state: t.cfsm.s0.id}}
	pos := 0
	cur := cursor.New(input)

	curTerminal := func() *cfg.Symbol {
		cur.Seek(pos)
		b, ok := cur.PeekByte()
		if !ok {
			return t.g.Terminal(cfg.EOF, "#eof")
		}
		return t.g.Terminal(int32(b), fmt.Sprintf("%q", b))
	}

	for {
		top := stack[len(stack)-1]
		term := curTerminal()
		idx := tokenIndex(term)
		a1, a2 := t.action.Values(int(top.state), idx)
		if a1 == t.action.NullValue() {
			return nil, &hammer.ParseError{
				Kind:     hammer.ParseFailed,
				Position: uint64(pos),
				Expected: t.expectedAt(top.state),
			}
		}
		if a2 != t.action.NullValue() {
			return nil, &hammer.CompileError{
				Kind:    hammer.GrammarAmbiguous,
				Message: fmt.Sprintf("runtime conflict in state %d on %s", top.state, term),
				State:   top.state,
			}
		}

		switch {
		case a1 == AcceptAction:
			return top.value, nil

		case a1 == ShiftAction:
			var node *tree.Node
			if pos < len(input) {
				node = tree.NewBytes(input, pos, pos+1)
			} else {
				node = tree.NewBytes(input, pos, pos)
			}
			targetIdx := tokenIndex(term)
			gotoState := t.goto_.Value(int(top.state), targetIdx)
			if gotoState == t.goto_.NullValue() {
				return nil, &hammer.ParseError{Kind: hammer.ParseFailed, Position: uint64(pos)}
			}
			stack = append(stack, stackItem{state: uint(gotoState), value: node})
			pos++

		default: // reduce rule[a1]
			rule := t.g.Rule(int(a1))
			n := len(rule.RHS)
			popped := stack[len(stack)-n:]
			stack = stack[:len(stack)-n]

			children := make([]*tree.Node, n)
			for i, si := range popped {
				children[i] = si.value
			}
			var value *tree.Node
			if rule.Action != nil {
				vals := make([]interface{}, n)
				for i, c := range children {
					vals[i] = c
				}
				v, ok := rule.Action(vals)
				if !ok {
					return nil, &hammer.ParseError{Kind: hammer.ParseFailed, Position: uint64(pos)}
				}
				value = wrapReduceValue(v)
			} else {
				value = tree.NewSequence(children)
			}

			back := stack[len(stack)-1]
			gotoIdx := tokenIndex(rule.LHS)
			gotoState := t.goto_.Value(int(back.state), gotoIdx)
			if gotoState == t.goto_.NullValue() {
				return nil, &hammer.ParseError{Kind: hammer.ParseFailed, Position: uint64(pos)}
			}
			stack = append(stack, stackItem{state: uint(gotoState), value: value})
		}
	}
}

func wrapReduceValue(v interface{}) *tree.Node {
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

// expectedAt describes, for error reporting, every terminal with a non-null
// ACTION entry in state s.
func (t *Tables) expectedAt(s uint) []string {
	var out []string
	t.g.EachSymbol(func(sy *cfg.Symbol) {
		if !sy.IsTerminal() {
			return
		}
		if v := t.action.Value(int(s), tokenIndex(sy)); v != t.action.NullValue() {
			out = append(out, sy.String())
		}
	})
	return out
}
