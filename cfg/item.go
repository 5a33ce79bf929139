package cfg

import (
	"fmt"

	"github.com/TJamesCorcoran/hammer/iteratable"
)

// Item is a dotted production `A -> β·γ` (an LR(0) configuration), the unit
// of work during CFSM construction (package lalr).
type Item struct {
	rule *Rule
	dot  int
}

// Rule returns the production this item is dotted into.
func (i Item) Rule() *Rule { return i.rule }

// Dot returns the dot's position (number of RHS symbols already consumed).
func (i Item) Dot() int { return i.dot }

// PeekSymbol returns the RHS symbol immediately after the dot, or nil if the
// dot is at the end of the production (a completed item).
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.RHS) {
		return nil
	}
	return i.rule.RHS[i.dot]
}

// Advance returns the item with the dot moved one symbol to the right.
// Panics if called on a completed item.
func (i Item) Advance() Item {
	if i.dot >= len(i.rule.RHS) {
		panic("cfg: Advance on a completed item")
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// Prefix returns the RHS symbols already consumed by the dot.
func (i Item) Prefix() []*Symbol {
	return i.rule.RHS[:i.dot]
}

// Complete reports whether the dot has reached the end of the production.
func (i Item) Complete() bool { return i.dot >= len(i.rule.RHS) }

func (i Item) String() string {
	s := i.rule.LHS.String() + " ::="
	for k, sy := range i.rule.RHS {
		if k == i.dot {
			s += " ·"
		}
		s += " " + sy.String()
	}
	if i.dot == len(i.rule.RHS) {
		s += " ·"
	}
	return s
}

// asItem narrows an interface{} pulled out of an iteratable.Set back to an
// Item. Panics on a type mismatch — a programmer error, since only this
// package ever populates item sets.
func asItem(x interface{}) Item {
	i, ok := x.(Item)
	if !ok {
		panic(fmt.Sprintf("cfg: expected Item in item set, got %T", x))
	}
	return i
}

// newItemSet creates an empty item set, sized for a typical CFSM state.
func newItemSet() *iteratable.Set { return iteratable.NewSet(8) }
