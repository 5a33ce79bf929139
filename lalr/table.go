package lalr

import (
	"fmt"

	"github.com/TJamesCorcoran/hammer"
	"github.com/TJamesCorcoran/hammer/cfg"
	"github.com/TJamesCorcoran/hammer/sparse"
)

// Shift/reduce/accept action encodings: a reduce entry stores the rule's
// serial number (always >= 0, since serial 0 is reserved for the augmented
// start rule and is only ever an accept, never a reduce target).
const (
	ShiftAction  int32 = -1
	AcceptAction int32 = -2
)

// Tables holds the compiled ACTION/GOTO matrices plus the CFSM they were
// derived from, bound together because the driver needs both the symbol
// set (to map a byte to its terminal's token value) and the tables
// themselves.
type Tables struct {
	cfsm   *cfsm
	action *sparse.IntMatrix
	goto_  *sparse.IntMatrix
	g      *cfg.Grammar
}

// Compile builds the LALR(1) CFSM and ACTION/GOTO tables for g. Returns a
// *hammer.CompileError with Kind GrammarAmbiguous on any shift/reduce or
// reduce/reduce conflict — this backend never silently resolves one.
func Compile(g *cfg.Grammar) (*Tables, error) {
	return compile(g, true)
}

// CompileAmbiguous builds the same CFSM and ACTION/GOTO tables as Compile,
// but tolerates shift/reduce and reduce/reduce conflicts instead of failing
// on the first one: ambiguity in the table is not a compile error for the
// GLR backend, which resolves conflicts at parse time by forking stacks
// rather than rejecting the grammar at compile time. A cell can still
// record at most two conflicting actions (the sparse table's capacity); a
// third distinct action landing in the same cell remains a hard compile
// error.
func CompileAmbiguous(g *cfg.Grammar) (*Tables, error) {
	return compile(g, false)
}

func compile(g *cfg.Grammar, strict bool) (*Tables, error) {
	ga := cfg.Analyze(g)
	c := buildCFSM(g, ga)
	lt := computeLookaheads(c, g, ga)

	statescnt := len(c.states)
	action := sparse.NewIntMatrix(statescnt, tokenExtent(g), sparse.DefaultNullValue)
	goto_ := sparse.NewIntMatrix(statescnt, tokenExtent(g), sparse.DefaultNullValue)

	// GOTO stores the target state for every CFSM edge, terminal-labeled
	// (shift targets) and non-terminal-labeled (post-reduce goto targets)
	// alike.
	for _, s := range c.states {
		for _, e := range c.edgesFrom(s) {
			goto_.Set(int(s.id), tokenIndex(e.label), int32(e.to.id))
		}
	}

	for _, s := range c.states {
		itemLAs := itemLookaheadsForState(s, g, ga, lt)
		for _, x := range s.items.Values() {
			i := x.(cfg.Item)
			if A := i.PeekSymbol(); A != nil && A.IsTerminal() {
				target := findGotoState(c, s, A)
				if target == nil {
					continue
				}
				val := ShiftAction
				if A.Value() == cfg.EOF {
					val = AcceptAction
				}
				if err := setAction(action, s, A, val, strict); err != nil {
					return nil, err
				}
				continue
			}
			if i.Complete() {
				rule, serial := g.MatchesRHS(i.Rule().LHS, i.Prefix())
				if serial < 0 {
					continue
				}
				las := itemLAs[i]
				for la := range las {
					term := g.Terminal(la, fmt.Sprintf("%d", la))
					val := int32(serial)
					if rule.Serial == 0 {
						val = AcceptAction
					}
					if err := setAction(action, s, term, val, strict); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return &Tables{cfsm: c, action: action, goto_: goto_, g: g}, nil
}

func setAction(action *sparse.IntMatrix, s *state, term *cfg.Symbol, val int32, strict bool) error {
	idx := tokenIndex(term)
	a1, a2 := action.Values(int(s.id), idx)
	if a1 == action.NullValue() {
		action.Set(int(s.id), idx, val)
		return nil
	}
	if a1 == val {
		return nil // same action already recorded, not a conflict
	}
	if a2 == action.NullValue() {
		action.Add(int(s.id), idx, val)
		if !strict {
			return nil
		}
		return &hammer.CompileError{
			Kind:    hammer.GrammarAmbiguous,
			Message: fmt.Sprintf("state %d has conflicting actions on %s: %s vs %s", s.id, term, describeAction(a1), describeAction(val)),
			State:   s.id,
			Items:   []string{term.String()},
		}
	}
	if a2 == val {
		return nil // same conflicting action already recorded
	}
	return &hammer.CompileError{
		Kind:    hammer.GrammarAmbiguous,
		Message: fmt.Sprintf("state %d has more than 2 conflicting actions on %s", s.id, term),
		State:   s.id,
	}
}

// Actions returns the (up to two) conflicting action values recorded for
// state on term, and NullValue returns the sentinel marking "no action
// recorded" — exported so package glr can drive its own GSS-based frontier
// over the same tables this package's deterministic driver uses.
func (t *Tables) Actions(state uint, term *cfg.Symbol) (int32, int32) {
	return t.action.Values(int(state), tokenIndex(term))
}

// GotoState returns the target state recorded for (state, sym), or
// NullValue if none exists.
func (t *Tables) GotoState(state uint, sym *cfg.Symbol) int32 {
	return t.goto_.Value(int(state), tokenIndex(sym))
}

// NullValue is the sentinel Actions/GotoState use to mean "no entry".
func (t *Tables) NullValue() int32 { return t.action.NullValue() }

// StartState returns the CFSM's initial state id.
func (t *Tables) StartState() uint { return t.cfsm.s0.id }

// Grammar returns the desugared CFG these tables were compiled from.
func (t *Tables) Grammar() *cfg.Grammar { return t.g }

func describeAction(v int32) string {
	switch v {
	case ShiftAction:
		return "shift"
	case AcceptAction:
		return "accept"
	default:
		return fmt.Sprintf("reduce %d", v)
	}
}

// tokenExtent and tokenIndex give every terminal and non-terminal symbol a
// dense column index into the sparse tables: terminals by their byte/EOF
// value (offset so EOF maps to 0), non-terminals by their grammar-wide ID
// continuing after the terminal range.
func tokenExtent(g *cfg.Grammar) int {
	max := 0
	g.EachSymbol(func(sy *cfg.Symbol) {
		if idx := tokenIndex(sy); int(idx) >= max {
			max = int(idx) + 1
		}
	})
	return max
}

func tokenIndex(sy *cfg.Symbol) int {
	if sy.IsTerminal() {
		if sy.Value() == cfg.EOF {
			return 0
		}
		return int(sy.Value()) + 1 // bytes 0..255 -> columns 1..256
	}
	return 257 + int(sy.ID())
}
