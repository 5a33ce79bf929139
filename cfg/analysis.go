package cfg

import "github.com/TJamesCorcoran/hammer/iteratable"

// LRAnalysis holds the fixed-point analyses (NULLABLE, FIRST, FOLLOW) for a
// Grammar, plus the closure/goto operations used by CFSM construction
// (package lalr, whose tables package glr reuses).
type LRAnalysis struct {
	g        *Grammar
	nullable map[*Symbol]bool
	first    map[*Symbol]*iteratable.Set
	follow   map[*Symbol]*iteratable.Set
}

// Analyze computes NULLABLE, FIRST and FOLLOW for g by fixed-point
// iteration and returns the completed analysis.
func Analyze(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:        g,
		nullable: make(map[*Symbol]bool),
		first:    make(map[*Symbol]*iteratable.Set),
		follow:   make(map[*Symbol]*iteratable.Set),
	}
	g.EachNonTerminal(func(A *Symbol) {
		ga.first[A] = iteratable.NewSet(4)
		ga.follow[A] = iteratable.NewSet(4)
	})
	ga.computeNullable()
	ga.computeFirst()
	ga.computeFollow()
	return ga
}

// Grammar returns the grammar this analysis was computed for.
func (ga *LRAnalysis) Grammar() *Grammar { return ga.g }

// Nullable reports whether A can derive the empty string.
func (ga *LRAnalysis) Nullable(A *Symbol) bool {
	if A.IsTerminal() {
		return false
	}
	return ga.nullable[A]
}

// First returns FIRST(A): the set of terminal token values (int32) that can
// begin some derivation of A. It never contains Epsilon; use Nullable to
// ask whether A derives the empty string.
func (ga *LRAnalysis) First(A *Symbol) *iteratable.Set {
	if A.IsTerminal() {
		s := iteratable.NewSet(1)
		s.Add(A.Value())
		return s
	}
	return ga.first[A]
}

// Follow returns FOLLOW(A): the set of terminal token values that may
// immediately follow A in some sentential form derived from the start
// symbol.
func (ga *LRAnalysis) Follow(A *Symbol) *iteratable.Set {
	return ga.follow[A]
}

func (ga *LRAnalysis) computeNullable() {
	changed := true
	for changed {
		changed = false
		for _, r := range ga.g.rules {
			if ga.nullable[r.LHS] {
				continue
			}
			allNullable := true
			for _, sy := range r.RHS {
				if sy.IsTerminal() || !ga.nullable[sy] {
					allNullable = false
					break
				}
			}
			if allNullable {
				ga.nullable[r.LHS] = true
				changed = true
			}
		}
	}
}

// FirstOfSeq computes FIRST(X1...Xn) from already-settled FIRST sets,
// stopping at the first non-nullable symbol — exported for the LALR
// lookahead-propagation algorithm (package lalr), which needs FIRST of an
// item's post-dot suffix rather than of a whole rule's RHS.
func (ga *LRAnalysis) FirstOfSeq(seq []*Symbol) *iteratable.Set {
	return ga.firstOfSeq(seq)
}

// firstOfSeq computes FIRST(X1...Xn) from already-settled FIRST sets,
// stopping at the first non-nullable symbol.
func (ga *LRAnalysis) firstOfSeq(seq []*Symbol) *iteratable.Set {
	s := iteratable.NewSet(4)
	for _, sy := range seq {
		s.Union(ga.First(sy))
		if !ga.Nullable(sy) {
			return s
		}
	}
	return s
}

func (ga *LRAnalysis) computeFirst() {
	changed := true
	for changed {
		changed = false
		for _, r := range ga.g.rules {
			add := ga.firstOfSeq(r.RHS)
			target := ga.first[r.LHS]
			before := target.Size()
			target.Union(add)
			if target.Size() != before {
				changed = true
			}
		}
	}
}

func (ga *LRAnalysis) computeFollow() {
	start := ga.g.rules[0].LHS
	ga.follow[start].Add(EOF)
	changed := true
	for changed {
		changed = false
		for _, r := range ga.g.rules {
			for i, B := range r.RHS {
				if B.IsTerminal() {
					continue
				}
				rest := r.RHS[i+1:]
				firstRest := ga.firstOfSeq(rest)
				target := ga.follow[B]
				before := target.Size()
				target.Union(firstRest)
				if allNullable(ga, rest) {
					target.Union(ga.follow[r.LHS])
				}
				if target.Size() != before {
					changed = true
				}
			}
		}
	}
}

func allNullable(ga *LRAnalysis, seq []*Symbol) bool {
	for _, sy := range seq {
		if sy.IsTerminal() || !ga.Nullable(sy) {
			return false
		}
	}
	return true
}

// === Closure and goto operations, mirroring lr/tables.go ===================

// Closure computes the closure of a single item.
func (ga *LRAnalysis) Closure(i Item) *iteratable.Set {
	S := newItemSet()
	S.Add(i)
	return ga.ClosureSet(S)
}

// ClosureSet computes the closure of an item set: repeatedly add, for every
// item with a non-terminal A immediately after the dot, all of A's
// start-items, until no more items are added. Uses the worklist semantics
// of iteratable.Set.IterateOnce/Next so each newly added item is itself
// visited without restarting the scan.
func (ga *LRAnalysis) ClosureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy()
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		A := item.PeekSymbol()
		if A != nil && !A.IsTerminal() {
			R := ga.g.FindNonTermRules(A, true)
			if New := C.Difference(R); !New.Empty() {
				C.Union(New)
			}
		}
	}
	return C
}

// GotoSet advances every item in closure that has A immediately after the
// dot, without re-closing the result.
func (ga *LRAnalysis) GotoSet(closure *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			gotoset.Add(i.Advance())
		}
	}
	return gotoset
}

// GotoSetClosure computes goto(closure, A) and then closes the result —
// the CFSM transition function.
func (ga *LRAnalysis) GotoSetClosure(closure *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := ga.GotoSet(closure, A)
	return ga.ClosureSet(gotoset)
}
