/*
Package packrat implements a memoizing recursive-descent PEG backend,
executed directly over the grammar package's user IR — no CFG desugaring
pass is needed, so Compile is a no-op beyond validating Indirect bindings.

Choice is ordered: the first alternative that succeeds wins, exactly as PEG
specifies, regardless of what the CFG backends would treat as equally valid
alternatives. Many/Many1/SepBy/SepBy1 are greedy: they take the longest run
of repeated matches the grammar allows. Left recursion (direct or indirect,
through Indirect nodes) is handled by seeding the memo table with a failure
sentinel and iterating to a fixed point, each pass required to consume
strictly more input than the last.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package packrat

import (
	"fmt"

	"github.com/TJamesCorcoran/hammer/cursor"
	"github.com/TJamesCorcoran/hammer/grammar"
	"github.com/TJamesCorcoran/hammer/tree"
)

// result is what a memo-table slot holds: either a matched node and the
// cursor position just past it, or a recorded failure.
type result struct {
	ok       bool
	node     *tree.Node
	pos      int
	growing  bool // left-recursion seed currently being computed
	lastSize int  // input consumed by the previous pass, for growth checks
}

type memoKey struct {
	node int32
	pos  int
}

// Parser holds the compiled (validated) grammar and drives Parse calls.
type Parser struct {
	g *grammar.Grammar
}

// Compile validates that every Indirect in g is bound. Returns an error
// otherwise; packrat needs nothing more from compile.
func Compile(g *grammar.Grammar) (*Parser, error) {
	if name := g.CheckUnbound(); name != "" {
		return nil, fmt.Errorf("packrat: indirect %q was never bound", name)
	}
	return &Parser{g: g}, nil
}

// state is per-Parse-call mutable data: the input cursor and the memo
// table. A fresh state is created for every Parse call, mirroring the
// module's rule that every value produced by a call is confined to that
// call's own allocation scope.
type state struct {
	input []byte
	cur   *cursor.Cursor
	memo  map[memoKey]*result
}

// Result is what a successful Parse call returns.
type Result struct {
	Tree      *tree.Node
	Consumed  int
}

// Failure reports the furthest point recognition failed at, the classic
// packrat "rightmost error" heuristic.
type Failure struct {
	Position int
}

func (f *Failure) Error() string {
	return fmt.Sprintf("packrat: parse failed at position %d", f.Position)
}

// Parse runs the parser's grammar against input, starting from g.Start.
func (p *Parser) Parse(input []byte) (*Result, error) {
	st := &state{
		input: input,
		cur:   cursor.New(input),
		memo:  make(map[memoKey]*result),
	}
	r := p.eval(st, p.g.Start, 0)
	if !r.ok {
		return nil, &Failure{Position: furthest(st)}
	}
	return &Result{Tree: r.node, Consumed: r.pos}, nil
}

// furthest is a coarse rightmost-failure estimate: the greatest position any
// memoized attempt reached, successful or not.
func furthest(st *state) int {
	max := 0
	for k, r := range st.memo {
		if r.ok && r.pos > max {
			max = r.pos
		} else if !r.ok && k.pos > max {
			max = k.pos
		}
	}
	return max
}

func fail() *result { return &result{ok: false} }

func succeed(n *tree.Node, pos int) *result { return &result{ok: true, node: n, pos: pos} }

// eval recognizes n starting at byte offset pos, consulting and populating
// the memo table, and handling left-recursive seeding.
func (p *Parser) eval(st *state, n *grammar.Node, pos int) *result {
	key := memoKey{node: n.ID(), pos: pos}
	if cached, ok := st.memo[key]; ok {
		if cached.growing {
			// Mid-computation re-entry: this is the left-recursion case.
			// Treat as failure for this pass; the outer growth loop will
			// retry with whatever this pass already committed.
			return fail()
		}
		return cached
	}
	seed := &result{ok: false, growing: true}
	st.memo[key] = seed
	r := p.evalOnce(st, n, pos)
	st.memo[key] = r

	// Left-recursion growth: if evalOnce's recursive calls bottomed out on
	// our own seed (because it's directly or indirectly left-recursive) and
	// still produced a successful match, try again seeded with that match;
	// repeat until a pass fails to consume more than the last.
	if r.ok {
		for {
			next := p.evalOnce(st, n, pos)
			if !next.ok || next.pos <= r.pos {
				break
			}
			r = next
			st.memo[key] = r
		}
	}
	return r
}

// evalOnce dispatches on node kind and performs exactly one recognition
// attempt (which may itself recurse through eval).
func (p *Parser) evalOnce(st *state, n *grammar.Node, pos int) *result {
	switch n.Kind {
	case grammar.KToken:
		lit := n.Name
		st.cur.Seek(pos)
		for i := 0; i < len(lit); i++ {
			b, ok := st.cur.NextByte()
			if !ok || b != lit[i] {
				return fail()
			}
		}
		return succeed(tree.NewToken([]byte(lit), pos, pos+len(lit)), pos+len(lit))

	case grammar.KCharSet:
		st.cur.Seek(pos)
		b, ok := st.cur.NextByte()
		if !ok || !n.Chars.Contains(b) {
			return fail()
		}
		return succeed(tree.NewBytes(st.input, pos, pos+1), pos+1)

	case grammar.KAnything:
		st.cur.Seek(pos)
		if _, ok := st.cur.NextByte(); !ok {
			return fail()
		}
		return succeed(tree.NewBytes(st.input, pos, pos+1), pos+1)

	case grammar.KEnd:
		st.cur.Seek(pos)
		if !st.cur.AtEnd() {
			return fail()
		}
		return succeed(tree.NewBytes(st.input, pos, pos), pos)

	case grammar.KEpsilon:
		return succeed(tree.NewBytes(st.input, pos, pos), pos)

	case grammar.KNothing:
		return fail()

	case grammar.KSequence:
		children := make([]*tree.Node, 0, len(n.Children))
		cursorPos := pos
		for _, c := range n.Children {
			r := p.eval(st, c, cursorPos)
			if !r.ok {
				return fail()
			}
			children = append(children, r.node)
			cursorPos = r.pos
		}
		return succeed(tree.NewSequence(children), cursorPos)

	case grammar.KChoice:
		for _, c := range n.Children {
			if r := p.eval(st, c, pos); r.ok {
				return succeed(r.node, r.pos)
			}
		}
		return fail()

	case grammar.KOptional:
		if r := p.eval(st, n.Child, pos); r.ok {
			return succeed(r.node, r.pos)
		}
		return succeed(tree.NewBytes(st.input, pos, pos), pos)

	case grammar.KMany, grammar.KMany1:
		var children []*tree.Node
		cursorPos := pos
		for {
			r := p.eval(st, n.Child, cursorPos)
			if !r.ok || r.pos == cursorPos {
				break // stop on failure or zero-width match (avoid infinite loop)
			}
			children = append(children, r.node)
			cursorPos = r.pos
		}
		if n.Kind == grammar.KMany1 && len(children) == 0 {
			return fail()
		}
		return succeed(tree.NewSequence(children), cursorPos)

	case grammar.KSepBy, grammar.KSepBy1:
		var children []*tree.Node
		cursorPos := pos
		first := p.eval(st, n.Child, cursorPos)
		if !first.ok {
			if n.Kind == grammar.KSepBy1 {
				return fail()
			}
			return succeed(tree.NewSequence(nil), cursorPos)
		}
		children = append(children, first.node)
		cursorPos = first.pos
		for {
			sep := p.eval(st, n.Separator, cursorPos)
			if !sep.ok {
				break
			}
			item := p.eval(st, n.Child, sep.pos)
			if !item.ok {
				break
			}
			children = append(children, item.node)
			cursorPos = item.pos
		}
		return succeed(tree.NewSequence(children), cursorPos)

	case grammar.KNotFollowedBy:
		r := p.eval(st, n.Child, pos)
		if r.ok {
			return fail()
		}
		return succeed(tree.NewBytes(st.input, pos, pos), pos)

	case grammar.KFollowedBy:
		r := p.eval(st, n.Child, pos)
		if !r.ok {
			return fail()
		}
		return succeed(tree.NewBytes(st.input, pos, pos), pos)

	case grammar.KIndirect:
		return p.eval(st, n.Bound, pos)

	case grammar.KAction:
		r := p.eval(st, n.Child, pos)
		if !r.ok {
			return fail()
		}
		v, ok := n.Action(valueOf(r.node))
		if !ok {
			return fail()
		}
		return succeed(wrapActionResult(v, r.node.Span), r.pos)

	case grammar.KAttr:
		r := p.eval(st, n.Child, pos)
		if !r.ok {
			return fail()
		}
		if !n.Attr(valueOf(r.node)) {
			return fail()
		}
		return succeed(r.node, r.pos)

	case grammar.KIgnore:
		r := p.eval(st, n.Child, pos)
		if !r.ok {
			return fail()
		}
		return succeed(r.node.Ignore(), r.pos)
	}
	panic(fmt.Sprintf("packrat: unhandled node kind %s", n.Kind))
}

// valueOf extracts the Go value a semantic action should see for node: the
// node itself for structural kinds, or the unwrapped scalar for Uint/Sint/
// User leaves produced by a previous action.
func valueOf(n *tree.Node) interface{} {
	switch n.Kind {
	case tree.KUint:
		return n.Uint
	case tree.KSint:
		return n.Sint
	case tree.KUser:
		return n.User
	default:
		return n
	}
}

// wrapActionResult stores an action's return value in whichever tree.Node
// variant fits its Go type.
func wrapActionResult(v interface{}, span tree.Span) *tree.Node {
	switch x := v.(type) {
	case uint64:
		return tree.NewUint(x, span)
	case int64:
		return tree.NewSint(x, span)
	default:
		return tree.NewUser(v, span)
	}
}
