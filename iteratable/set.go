package iteratable

import "sort"

// Set is an unordered collection of comparable-by-equality items, used
// throughout the grammar analyses (nullable/FIRST/FOLLOW fixed points),
// and LALR item-set and CFSM-state construction.
//
// Equality of items is structural Go equality (==) unless the item is a
// pointer, in which case it is pointer identity — both are used elsewhere
// in this module, deliberately.
type Set struct {
	items []interface{}
	// iteration cursor; -1 means "no iteration in progress"
	cursor int
}

// NewSet creates an empty set. The capacity hint sizes the backing slice.
func NewSet(capacityHint int) *Set {
	return &Set{items: make([]interface{}, 0, capacityHint), cursor: -1}
}

// Size returns the number of items in the set.
func (s *Set) Size() int { return len(s.items) }

// Empty reports whether the set has no items.
func (s *Set) Empty() bool { return len(s.items) == 0 }

// Contains reports whether item is already a member.
func (s *Set) Contains(item interface{}) bool {
	for _, x := range s.items {
		if x == item {
			return true
		}
	}
	return false
}

// Add inserts item if not already present. Returns the set for chaining.
func (s *Set) Add(item interface{}) *Set {
	if !s.Contains(item) {
		s.items = append(s.items, item)
	}
	return s
}

// Remove deletes item if present. Returns the set for chaining.
func (s *Set) Remove(item interface{}) *Set {
	for i, x := range s.items {
		if x == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return s
}

// Values returns a snapshot slice of the set's members, in no particular
// order (but stable for a given set state).
func (s *Set) Values() []interface{} {
	out := make([]interface{}, len(s.items))
	copy(out, s.items)
	return out
}

// AppendTo appends the set's members onto dst and returns the result.
func (s *Set) AppendTo(dst []interface{}) []interface{} {
	return append(dst, s.items...)
}

// Copy returns a shallow copy of the set.
func (s *Set) Copy() *Set {
	c := NewSet(len(s.items))
	c.items = append(c.items, s.items...)
	return c
}

// Union merges other's members into s destructively. Returns s.
func (s *Set) Union(other *Set) *Set {
	for _, x := range other.items {
		s.Add(x)
	}
	return s
}

// Difference returns a new set containing the members of other that are not
// already in s (i.e. other \ s), without modifying either operand.
func (s *Set) Difference(other *Set) *Set {
	d := NewSet(other.Size())
	for _, x := range other.items {
		if !s.Contains(x) {
			d.Add(x)
		}
	}
	return d
}

// Subset returns a new set with exactly the members of s for which
// predicate returns true.
func (s *Set) Subset(predicate func(interface{}) bool) *Set {
	r := NewSet(0)
	for _, x := range s.items {
		if predicate(x) {
			r.Add(x)
		}
	}
	return r
}

// Equals reports whether s and other contain the same members,
// irrespective of order.
func (s *Set) Equals(other *Set) bool {
	if other == nil || len(s.items) != len(other.items) {
		return false
	}
	return other.Subset(func(x interface{}) bool { return !s.Contains(x) }).Empty()
}

// FirstMatch returns the first member satisfying predicate, or nil.
func (s *Set) FirstMatch(predicate func(interface{}) bool) interface{} {
	for _, x := range s.items {
		if predicate(x) {
			return x
		}
	}
	return nil
}

// Each calls f once for every member of the set, in iteration order at the
// time of the call.
func (s *Set) Each(f func(interface{})) {
	for _, x := range s.items {
		f(x)
	}
}

// Sort orders the set's backing storage using less, so that subsequent
// iteration and Values() calls observe the new order.
func (s *Set) Sort(less func(a, b interface{}) bool) {
	sort.Slice(s.items, func(i, j int) bool { return less(s.items[i], s.items[j]) })
}

// --- Single-pass iteration protocol ----------------------------------------
//
// IterateOnce begins a worklist-style traversal: items Added to the set
// while a traversal is in progress are still visited once the cursor
// reaches them. This is deliberate — the item-set closure in package cfg
// relies on exactly this to avoid re-scanning from the start after every
// Union.

// IterateOnce resets the iteration cursor for traversal via Next/Item.
func (s *Set) IterateOnce() {
	s.cursor = -1
}

// Next advances the iteration cursor. Returns false once exhausted.
func (s *Set) Next() bool {
	s.cursor++
	return s.cursor < len(s.items)
}

// Item returns the item at the current iteration cursor.
func (s *Set) Item() interface{} {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return nil
	}
	return s.items[s.cursor]
}
