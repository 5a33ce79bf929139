package grammar

import "fmt"

// Grammar owns a user IR graph: every Node reachable from Start was created
// through this Grammar's constructors, which assign each node a stable,
// monotonically increasing identity as it is built (spec's "arena-assigned
// integer index" design note) — consumers never need to hash a *Node
// pointer to use it as a map key.
type Grammar struct {
	nodes     []*Node
	indirects map[string]*Node
	Start     *Node
	Compiled  interface{} // set by a backend's Compile; opaque here
}

// New creates an empty Grammar ready to accept constructor calls.
func New() *Grammar {
	return &Grammar{indirects: make(map[string]*Node)}
}

func (g *Grammar) alloc(n *Node) *Node {
	n.id = int32(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return n
}

// NodeCount returns the number of nodes allocated by this grammar so far.
func (g *Grammar) NodeCount() int { return len(g.nodes) }

// Token matches the literal byte string s.
func (g *Grammar) Token(s string) *Node {
	return g.alloc(&Node{Kind: KToken, Name: s})
}

// Chars matches a single byte drawn from cs.
func (g *Grammar) Chars(cs CharSet) *Node {
	return g.alloc(&Node{Kind: KCharSet, Chars: cs})
}

// Anything matches exactly one arbitrary byte.
func (g *Grammar) Anything() *Node {
	return g.alloc(&Node{Kind: KAnything})
}

// End matches only at end-of-input.
func (g *Grammar) End() *Node {
	return g.alloc(&Node{Kind: KEnd})
}

// Nothing never matches.
func (g *Grammar) Nothing() *Node {
	return g.alloc(&Node{Kind: KNothing})
}

// Epsilon matches the empty string.
func (g *Grammar) Epsilon() *Node {
	return g.alloc(&Node{Kind: KEpsilon})
}

// Sequence matches children in order.
func (g *Grammar) Sequence(children ...*Node) *Node {
	return g.alloc(&Node{Kind: KSequence, Children: children})
}

// Choice matches the first alternative that succeeds under packrat, or any
// of them under the CFG backends.
func (g *Grammar) Choice(alternatives ...*Node) *Node {
	return g.alloc(&Node{Kind: KChoice, Children: alternatives})
}

// Optional matches child zero or one times.
func (g *Grammar) Optional(child *Node) *Node {
	return g.alloc(&Node{Kind: KOptional, Child: child})
}

// Many matches child zero or more times.
func (g *Grammar) Many(child *Node) *Node {
	return g.alloc(&Node{Kind: KMany, Child: child})
}

// Many1 matches child one or more times.
func (g *Grammar) Many1(child *Node) *Node {
	return g.alloc(&Node{Kind: KMany1, Child: child})
}

// SepBy matches zero or more child, separated by sep.
func (g *Grammar) SepBy(child, sep *Node) *Node {
	return g.alloc(&Node{Kind: KSepBy, Child: child, Separator: sep})
}

// SepBy1 matches one or more child, separated by sep.
func (g *Grammar) SepBy1(child, sep *Node) *Node {
	return g.alloc(&Node{Kind: KSepBy1, Child: child, Separator: sep})
}

// NotFollowedBy succeeds with zero-width consumption iff child fails.
// Rejected by the CFG backends at compile time (PEG-only construct).
func (g *Grammar) NotFollowedBy(child *Node) *Node {
	return g.alloc(&Node{Kind: KNotFollowedBy, Child: child})
}

// FollowedBy succeeds with zero-width consumption iff child succeeds.
// Rejected by the CFG backends at compile time.
func (g *Grammar) FollowedBy(child *Node) *Node {
	return g.alloc(&Node{Kind: KFollowedBy, Child: child})
}

// Indirect creates a late-bindable named reference, enabling recursive
// grammars. Bind must be called exactly once on the returned node before
// the grammar is compiled.
func (g *Grammar) Indirect(name string) *Node {
	n := g.alloc(&Node{Kind: KIndirect, Name: name})
	g.indirects[name] = n
	return n
}

// Bind ties an Indirect node to its recursive target. Calling Bind twice on
// the same node panics — the user IR is meant to be immutable once built.
func (ind *Node) Bind(target *Node) {
	if ind.Kind != KIndirect {
		panic(fmt.Sprintf("grammar: Bind called on a %s node, not Indirect", ind.Kind))
	}
	if ind.Bound != nil {
		panic("grammar: Indirect " + ind.Name + " already bound")
	}
	ind.Bound = target
}

// CheckUnbound returns the name of the first Indirect node in the grammar
// that was never bound, or "" if all are bound.
func (g *Grammar) CheckUnbound() string {
	for _, n := range g.nodes {
		if n.Kind == KIndirect && n.Bound == nil {
			return n.Name
		}
	}
	return ""
}

// Action wraps child so that, on success, f transforms its value.
func (g *Grammar) Action(child *Node, f ActionFunc) *Node {
	return g.alloc(&Node{Kind: KAction, Child: child, Action: f})
}

// Attr wraps child with a boolean predicate over its result; a false
// predicate turns the match into a failure.
func (g *Grammar) Attr(child *Node, f AttrFunc) *Node {
	return g.alloc(&Node{Kind: KAttr, Child: child, Attr: f})
}

// Ignore wraps child so that its result is discarded by enclosing Sequence
// builders.
func (g *Grammar) Ignore(child *Node) *Node {
	return g.alloc(&Node{Kind: KIgnore, Child: child})
}
