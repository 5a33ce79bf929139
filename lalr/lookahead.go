package lalr

import (
	"github.com/TJamesCorcoran/hammer/cfg"
	"github.com/TJamesCorcoran/hammer/iteratable"
)

// propagateSentinel is the placeholder lookahead '#' of the DeRemer–Pennello
// algorithm: a lookahead computed from it in a closure indicates the
// lookahead must be propagated from the originating kernel item, rather
// than having been spontaneously generated.
const propagateSentinel int32 = -1 << 30

// laItem pairs an LR(0) item with one lookahead terminal during LALR
// closure computation.
type laItem struct {
	item cfg.Item
	la   int32
}

// closureLA computes the LR(1)-style closure of a single (item, lookahead)
// pair: for every item [A -> α·Bβ, la] in the closure, production B -> γ
// contributes [B -> ·γ, b] for every b in FIRST(β·la).
func closureLA(ga *cfg.LRAnalysis, g *cfg.Grammar, seed laItem) []laItem {
	seen := make(map[laItem]bool)
	queue := []laItem{seed}
	seen[seed] = true
	var out []laItem
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		A := cur.item.PeekSymbol()
		if A == nil || A.IsTerminal() {
			continue
		}
		suffix := afterDot(cur.item)
		las := lookaheadsFor(ga, suffix, cur.la)
		for _, r := range g.RulesFor(A) {
			start := cfg.Item{}
			start, _ = cfg.StartItem(r)
			for la := range las {
				ni := laItem{item: start, la: la}
				if !seen[ni] {
					seen[ni] = true
					queue = append(queue, ni)
				}
			}
		}
	}
	return out
}

// afterDot returns the RHS symbols strictly after the symbol the dot
// currently precedes (i.e. β in A -> α·Bβ).
func afterDot(i cfg.Item) []*cfg.Symbol {
	rhs := i.Rule().RHS
	dot := i.Dot()
	if dot+1 >= len(rhs) {
		return nil
	}
	return rhs[dot+1:]
}

// lookaheadsFor computes FIRST(beta . la): FIRST(beta) if beta is
// non-nullable, plus la itself if beta is nullable (or empty).
func lookaheadsFor(ga *cfg.LRAnalysis, beta []*cfg.Symbol, la int32) map[int32]bool {
	out := make(map[int32]bool)
	for _, v := range ga.FirstOfSeq(beta).Values() {
		out[v.(int32)] = true
	}
	if seqNullable(ga, beta) {
		out[la] = true
	}
	return out
}

func seqNullable(ga *cfg.LRAnalysis, seq []*cfg.Symbol) bool {
	for _, sy := range seq {
		if sy.IsTerminal() || !ga.Nullable(sy) {
			return false
		}
	}
	return true
}

// lookaheadTable computes, for every (state, kernel item) pair, the final
// LALR(1) lookahead set, by the spontaneous-generation-plus-propagation
// method: each kernel item is closed with the sentinel lookahead; closure
// items whose dot-symbol leads via a goto edge receive either a spontaneous
// lookahead (anything but the sentinel) or a propagation edge (sentinel),
// and propagation edges are then followed to a fixed point.
type lookaheadTable struct {
	sets map[kernelKey]map[int32]bool
}

type kernelKey struct {
	state uint
	item  cfg.Item
}

func computeLookaheads(c *cfsm, g *cfg.Grammar, ga *cfg.LRAnalysis) *lookaheadTable {
	lt := &lookaheadTable{sets: make(map[kernelKey]map[int32]bool)}

	type propEdge struct{ from, to kernelKey }
	var edges []propEdge

	for _, s := range c.states {
		for _, k := range kernelItemsOf(s.items, s.isStart) {
			key := kernelKey{state: s.id, item: k}
			if lt.sets[key] == nil {
				lt.sets[key] = make(map[int32]bool)
			}
			if s.isStart && k.Dot() == 0 && k.Rule().Serial == 0 {
				lt.sets[key][cfg.EOF] = true
			}
			closed := closureLA(ga, g, laItem{item: k, la: propagateSentinel})
			for _, ci := range closed {
				A := ci.item.PeekSymbol()
				if A == nil {
					continue
				}
				target := findGotoState(c, s, A)
				if target == nil {
					continue
				}
				advanced := ci.item.Advance()
				tkey := kernelKey{state: target.id, item: advanced}
				if lt.sets[tkey] == nil {
					lt.sets[tkey] = make(map[int32]bool)
				}
				if ci.la == propagateSentinel {
					edges = append(edges, propEdge{from: key, to: tkey})
				} else {
					lt.sets[tkey][ci.la] = true
				}
			}
		}
	}

	changed := true
	for changed {
		changed = false
		for _, e := range edges {
			for la := range lt.sets[e.from] {
				if !lt.sets[e.to][la] {
					lt.sets[e.to][la] = true
					changed = true
				}
			}
		}
	}
	return lt
}

// kernelItemsOf returns the kernel items of an item set: dot>0 items, plus
// (for the start state only) the augmented start item itself.
func kernelItemsOf(items *iteratable.Set, isStart bool) []cfg.Item {
	var out []cfg.Item
	for _, x := range items.Values() {
		i := x.(cfg.Item)
		if i.Dot() > 0 || (isStart && i.Rule().Serial == 0 && i.Dot() == 0) {
			out = append(out, i)
		}
	}
	return out
}

func findGotoState(c *cfsm, from *state, sym *cfg.Symbol) *state {
	for _, e := range c.edgesFrom(from) {
		if e.label == sym {
			return e.to
		}
	}
	return nil
}

// itemLookaheadsForState expands a state's kernel lookahead sets (as
// computed by computeLookaheads) into a full item -> lookahead-set mapping
// covering every item in the state, kernel or closure-derived. This is what
// buildActionTable consults: a completed (reduce-candidate) item's
// lookahead set determines which terminals get a reduce entry, generalizing
// the plain SLR(1) "reduce for every terminal in FOLLOW(LHS)" rule to
// per-item LALR(1) lookaheads.
func itemLookaheadsForState(s *state, g *cfg.Grammar, ga *cfg.LRAnalysis, lt *lookaheadTable) map[cfg.Item]map[int32]bool {
	result := make(map[cfg.Item]map[int32]bool)
	merge := func(i cfg.Item, la int32) {
		if result[i] == nil {
			result[i] = make(map[int32]bool)
		}
		result[i][la] = true
	}
	for _, k := range kernelItemsOf(s.items, s.isStart) {
		las, _ := lt.lookaheadsOf(s, k)
		for la := range las {
			for _, ci := range closureLA(ga, g, laItem{item: k, la: la}) {
				merge(ci.item, ci.la)
			}
		}
	}
	return result
}

// lookaheadsOf returns the settled LALR(1) lookahead set for item i in
// state s.id, and false if i is not a kernel item of s (closure items get
// their lookaheads from itemLookaheadsForState instead).
func (lt *lookaheadTable) lookaheadsOf(s *state, i cfg.Item) (map[int32]bool, bool) {
	set, ok := lt.sets[kernelKey{state: s.id, item: i}]
	return set, ok
}
