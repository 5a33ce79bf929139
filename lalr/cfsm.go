/*
Package lalr implements the LALR(1) backend: LR(0) item-set (CFSM)
construction, LALR(1) lookahead computation by propagation over the goto
graph, ACTION/GOTO table construction, and the shift/reduce driver.

Item-set closure/goto construction and ACTION/GOTO table layout follow the
classic LR(0)-automaton-plus-SLR(1)-action-table shape, generalized from
plain SLR(1) FOLLOW-set lookaheads to true LALR(1) lookaheads: kernel items
get "spontaneous"
lookaheads from within their own closure, plus lookaheads "propagated" along
goto edges from the predecessor state, computed to a fixed point exactly the
way DeRemer & Pennello describe it.

Shift/reduce and reduce/reduce conflicts are not resolved — Compile reports
them as a *hammer.CompileError with Kind GrammarAmbiguous, naming the
offending state and items, per the module's design notes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lalr

import (
	"fmt"

	"github.com/TJamesCorcoran/hammer/cfg"
	"github.com/TJamesCorcoran/hammer/iteratable"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'hammer.lalr'.
func tracer() tracing.Trace {
	return tracing.Select("hammer.lalr")
}

// state is one node of the CFSM: an LR(0) item set (the transitions out of
// it are kept in the cfsm's edge list).
type state struct {
	id      uint
	items   *iteratable.Set // of cfg.Item
	isStart bool
}

func (s *state) String() string { return fmt.Sprintf("s%d", s.id) }

type edge struct {
	from, to *state
	label    *cfg.Symbol
}

// cfsm is the characteristic finite state machine for a grammar.
type cfsm struct {
	states []*state
	byKey  map[string]*state // keyed by a canonical item-set signature
	edges  []*edge
	s0     *state
}

func itemSetKey(items *iteratable.Set) string {
	// A cheap, deterministic signature: sort each item's string form.
	vals := items.Values()
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = fmt.Sprintf("%v", v)
	}
	// simple insertion sort; item sets are small
	for i := 1; i < len(strs); i++ {
		for j := i; j > 0 && strs[j-1] > strs[j]; j-- {
			strs[j-1], strs[j] = strs[j], strs[j-1]
		}
	}
	key := ""
	for _, s := range strs {
		key += s + "|"
	}
	return key
}

func newCFSM() *cfsm {
	return &cfsm{byKey: make(map[string]*state)}
}

func (c *cfsm) addState(items *iteratable.Set) (*state, bool) {
	key := itemSetKey(items)
	if s, ok := c.byKey[key]; ok {
		return s, false
	}
	s := &state{id: uint(len(c.states)), items: items}
	c.states = append(c.states, s)
	c.byKey[key] = s
	return s, true
}

func (c *cfsm) addEdge(from, to *state, sym *cfg.Symbol) {
	c.edges = append(c.edges, &edge{from: from, to: to, label: sym})
}

func (c *cfsm) edgesFrom(s *state) []*edge {
	var out []*edge
	for _, e := range c.edges {
		if e.from == s {
			out = append(out, e)
		}
	}
	return out
}

// buildCFSM constructs the LR(0) automaton for g.
func buildCFSM(g *cfg.Grammar, ga *cfg.LRAnalysis) *cfsm {
	c := newCFSM()
	start, _ := cfg.StartItem(g.Rule(0))
	closure0 := ga.Closure(start)
	c.s0, _ = c.addState(closure0)
	c.s0.isStart = true

	worklist := []*state{c.s0}
	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		g.EachSymbol(func(A *cfg.Symbol) {
			gotoset := ga.GotoSetClosure(s.items, A)
			if gotoset.Empty() {
				return
			}
			snew, isNew := c.addState(gotoset)
			c.addEdge(s, snew, A)
			if isNew {
				worklist = append(worklist, snew)
			}
		})
	}
	tracer().Debugf("lalr: built CFSM with %d states", len(c.states))
	return c
}
