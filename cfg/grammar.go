package cfg

import "github.com/TJamesCorcoran/hammer/iteratable"

// Rule is one production `LHS -> RHS...` of the normalized grammar. Serial 0
// is always the augmented start rule `S' -> S #eof`.
type Rule struct {
	Serial int
	LHS    *Symbol
	RHS    []*Symbol

	// Action, if non-nil, is invoked with the reduced children's values when
	// this rule is reduced by a CFG backend; nil means "build a Sequence
	// parse-tree node from the children" (spec's default reduce action).
	Action func(children []interface{}) (interface{}, bool)
}

func (r *Rule) String() string {
	s := r.LHS.String() + " ::="
	for _, sy := range r.RHS {
		s += " " + sy.String()
	}
	return s
}

// Grammar is the normalized CFG produced by desugaring a grammar.Grammar.
// Rule 0 is always the augmented start rule.
type Grammar struct {
	Name         string
	rules        []*Rule
	nonterminals map[string]*Symbol
	terminals    map[int32]*Symbol
	nextSymID    int32
}

// NewGrammar creates an empty, named Grammar container.
func NewGrammar(name string) *Grammar {
	return &Grammar{
		Name:         name,
		nonterminals: make(map[string]*Symbol),
		terminals:    make(map[int32]*Symbol),
	}
}

// Intern returns the non-terminal symbol named name, creating it if this is
// its first mention.
func (g *Grammar) Intern(name string) *Symbol {
	if sy, ok := g.nonterminals[name]; ok {
		return sy
	}
	sy := &Symbol{id: g.nextSymID, Name: name}
	g.nextSymID++
	g.nonterminals[name] = sy
	return sy
}

// Terminal returns the terminal symbol for token value v, creating it (with
// display name label) if this is its first mention.
func (g *Grammar) Terminal(v int32, label string) *Symbol {
	if sy, ok := g.terminals[v]; ok {
		return sy
	}
	sy := &Symbol{id: g.nextSymID, Name: label, terminal: true, value: v}
	g.nextSymID++
	g.terminals[v] = sy
	return sy
}

// AddRule appends a production to the grammar and assigns it the next
// serial number.
func (g *Grammar) AddRule(lhs *Symbol, rhs []*Symbol, action func([]interface{}) (interface{}, bool)) *Rule {
	r := &Rule{Serial: len(g.rules), LHS: lhs, RHS: rhs, Action: action}
	g.rules = append(g.rules, r)
	return r
}

// Rules returns every production, rule 0 first.
func (g *Grammar) Rules() []*Rule { return g.rules }

// Rule returns the rule with the given serial number.
func (g *Grammar) Rule(serial int) *Rule { return g.rules[serial] }

// NumRules returns the number of productions in the grammar.
func (g *Grammar) NumRules() int { return len(g.rules) }

// EachSymbol calls f once for every terminal and non-terminal symbol.
func (g *Grammar) EachSymbol(f func(*Symbol)) {
	for _, sy := range g.terminals {
		f(sy)
	}
	for _, sy := range g.nonterminals {
		f(sy)
	}
}

// EachNonTerminal calls f once for every non-terminal symbol.
func (g *Grammar) EachNonTerminal(f func(*Symbol)) {
	for _, sy := range g.nonterminals {
		f(sy)
	}
}

// RulesFor returns every rule whose LHS is A.
func (g *Grammar) RulesFor(A *Symbol) []*Rule {
	var rs []*Rule
	for _, r := range g.rules {
		if r.LHS == A {
			rs = append(rs, r)
		}
	}
	return rs
}

// FindNonTermRules returns the closure-contribution item set for A: one
// start-of-rule Item per production of A, each i = (A -> ·β, lookahead
// unset). withLookahead is accepted for symmetry with a typical closure()
// signature but this package computes lookaheads separately (package
// lalr), so it is currently unused here.
func (g *Grammar) FindNonTermRules(A *Symbol, withLookahead bool) *iteratable.Set {
	S := iteratable.NewSet(4)
	for _, r := range g.rules {
		if r.LHS == A {
			S.Add(Item{rule: r, dot: 0})
		}
	}
	return S
}

// MatchesRHS finds the rule with the given LHS and RHS (by symbol identity),
// returning it and its serial, or (nil, -1) if none match. Used when
// completing an item at reduce time.
func (g *Grammar) MatchesRHS(lhs *Symbol, rhs []*Symbol) (*Rule, int) {
	for _, r := range g.rules {
		if r.LHS != lhs || len(r.RHS) != len(rhs) {
			continue
		}
		ok := true
		for i := range rhs {
			if r.RHS[i] != rhs[i] {
				ok = false
				break
			}
		}
		if ok {
			return r, r.Serial
		}
	}
	return nil, -1
}

// StartItem returns the initial dotted item for rule r (dot before its
// first RHS symbol) and the symbol immediately after the dot, if any.
func StartItem(r *Rule) (Item, *Symbol) {
	i := Item{rule: r, dot: 0}
	return i, i.PeekSymbol()
}
