// Package gss implements a graph-structured stack (GSS), the data structure
// a GLR driver uses to run many LR stacks in parallel while sharing common
// prefixes and merging stacks that converge on the same automaton state at
// the same input position.
//
// A graph-structured stack of this shape is consumed directly by a GLR
// driver ("NewRoot", "NewStack", stack.Push(...).Push(...), stack.Peek(),
// stack.Fork(), stack.Reduce(handle), stack.Die()). It carries arbitrary
// parse values (interface{}, holding *tree.Node in practice).
package gss

// nodeKey identifies a GSS node by the pair that must agree for two stack
// tops to merge: the LR automaton state they landed in, and the input
// position they landed at. State alone is not enough — a recursive grammar
// can revisit the same state number at different input offsets, and those
// occurrences must stay distinct nodes.
type nodeKey struct {
	state uint
	pos   int
}

// predEdge is one incoming edge to a Node: the predecessor node, and the
// value this Node's owner carried when it arrived from that particular
// predecessor. A Node reached via more than one predecessor (a join) can
// legitimately carry a different value per arrival path — a single
// Node-wide value field cannot represent that, which is why value lives on
// the edge rather than on the node.
type predEdge struct {
	node  *Node
	value interface{}
}

// Node is one vertex of the graph-structured stack: an LR automaton state
// at a given input position. Two stack branches that reach the same (State,
// Pos) merge into the same Node, recording both incoming edges — this is
// what lets a GLR parser share common stack suffixes instead of duplicating
// them per branch.
type Node struct {
	State   uint
	Pos     int
	preds   []predEdge
	succs   []*Node
	pathcnt int
}

// PredecessorCount reports how many distinct predecessor edges point into n.
// More than one marks n as a join point where separate stack histories
// converged.
func (n *Node) PredecessorCount() int { return len(n.preds) }

func (n *Node) isInverseJoin() bool { return len(n.preds) > 1 }
func (n *Node) isInverseFork() bool { return len(n.succs) > 1 }

func (n *Node) findPredEdge(pred *Node) int {
	for i, e := range n.preds {
		if e.node == pred {
			return i
		}
	}
	return -1
}

func containsNode(list []*Node, n *Node) bool {
	for _, x := range list {
		if x == n {
			return true
		}
	}
	return false
}

func sumPathcnt(preds []predEdge) int {
	total := 0
	for _, p := range preds {
		total += p.node.pathcnt
	}
	return total
}

// Root owns the shared node graph for one parse run: every stack created
// from the same Root can merge nodes with every other.
type Root struct {
	Name     string
	Epsilon  int32
	byState  map[nodeKey]*Node
	sentinel *Node
	active   []*Stack
}

// NewRoot creates an empty GSS graph. epsilon is stored in Root.Epsilon for
// callers; this package does not interpret it (Peek on an empty stack
// returns the zero state and nil).
func NewRoot(name string, epsilon int32) *Root {
	return &Root{
		Name:     name,
		Epsilon:  epsilon,
		byState:  make(map[nodeKey]*Node),
		sentinel: &Node{Pos: -1, pathcnt: 1},
	}
}

// ActiveStacks returns the stacks currently tracked as live. NewStack and
// Fork add to this set; Die removes from it.
func (r *Root) ActiveStacks() []*Stack {
	out := make([]*Stack, len(r.active))
	copy(out, r.active)
	return out
}

func (r *Root) untrack(s *Stack) {
	for i, x := range r.active {
		if x == s {
			r.active = append(r.active[:i], r.active[i+1:]...)
			return
		}
	}
}

// Stack is one head (top-of-stack pointer) into a Root's shared node graph.
// Distinct Stacks may point at the same Node — that is precisely how prefix
// sharing is represented. value caches this head's own current top-of-stack
// content directly, since a shared, joined Node can carry more than one
// value (one per predecessor edge) and only the stack that pushed a given
// edge knows which one is its own.
type Stack struct {
	root  *Root
	tos   *Node
	value interface{}
	dead  bool
}

// NewStack creates a new, empty stack head rooted at r's sentinel bottom.
func NewStack(r *Root) *Stack {
	s := &Stack{root: r, tos: r.sentinel}
	r.active = append(r.active, s)
	return s
}

// Peek returns the state and value at the top of the stack. Calling it on
// an empty stack (nothing pushed yet) returns the zero state and nil.
func (s *Stack) Peek() (uint, interface{}) {
	if s.tos == s.root.sentinel {
		return 0, nil
	}
	return s.tos.State, s.value
}

// Pop removes the top frame and returns its value, following the top node's
// first-recorded predecessor edge; at a join that need not be the edge this
// stack arrived by (callers that need to walk multiple predecessor paths at
// a join should use Reduce instead). Pop on an empty stack returns nil.
func (s *Stack) Pop() interface{} {
	if s.tos == s.root.sentinel {
		return nil
	}
	v := s.value
	if len(s.tos.preds) > 0 {
		pred := s.tos.preds[0].node
		s.tos = pred
		s.value = nil
		if len(pred.preds) > 0 {
			s.value = pred.preds[0].value
		}
	} else {
		s.tos = s.root.sentinel
		s.value = nil
	}
	return v
}

// Push moves the stack's top to the node for (state, pos), creating it if no
// node for that key exists yet, or adding a new predecessor edge (and
// recomputing pathcnt) if one does and this stack's previous top is not
// already among its predecessors. pos is the input position the parser sits
// at after this push lands (the position shift/reduce actions key node
// identity on, per the merge rule: two stack tops merge only when they
// converge on the same state at the same input position). Returns s, so
// pushes chain: s.Push(1, 0, a).Push(2, 1, b).
func (s *Stack) Push(state uint, pos int, value interface{}) *Stack {
	pred := s.tos
	key := nodeKey{state: state, pos: pos}
	node, exists := s.root.byState[key]
	if !exists {
		node = &Node{State: state, Pos: pos, preds: []predEdge{{node: pred, value: value}}, pathcnt: pred.pathcnt}
		s.root.byState[key] = node
		pred.succs = append(pred.succs, node)
	} else {
		if i := node.findPredEdge(pred); i >= 0 {
			node.preds[i].value = value
		} else {
			node.preds = append(node.preds, predEdge{node: pred, value: value})
			node.pathcnt = sumPathcnt(node.preds)
		}
		if !containsNode(pred.succs, node) {
			pred.succs = append(pred.succs, node)
		}
	}
	s.tos = node
	s.value = value
	return s
}

// Fork creates a second, independent stack head pointing at the same node
// (and caching the same top value) as s — used when a single stack top has
// more than one enabled action (a shift/reduce or reduce/reduce conflict)
// and each must be pursued.
func (s *Stack) Fork() *Stack {
	f := &Stack{root: s.root, tos: s.tos, value: s.value}
	s.root.active = append(s.root.active, f)
	return f
}

// Die marks s as no longer viable (no enabled action for the current
// token) and removes it from the root's active set.
func (s *Stack) Die() {
	s.dead = true
	s.root.untrack(s)
}

// Dead reports whether Die has been called on s.
func (s *Stack) Dead() bool { return s.dead }

// Retire removes s from the root's active set without marking it dead: used
// when a stack's frontier role has been superseded by one or more new
// stacks grown from a reduction, rather than by a failed match.
func (s *Stack) Retire() {
	s.root.untrack(s)
}

// ReducePath is one way of popping a handle of a fixed length off of a
// stack: the sequence of popped values, in left-to-right (RHS) order, and
// the base node reached below the handle (where GOTO pushes the new
// left-hand-side frame).
type ReducePath struct {
	Base   *Stack
	Values []interface{}
}

// Reduce enumerates every distinct way of popping length frames off of s,
// following every predecessor edge encountered along the way. A single
// path is returned when the handle's prefix has not joined with any other
// stack; more than one is returned when it has, mirroring how a GLR driver
// must reduce along every convergent path at a join point. Each edge along
// a walk contributes its own value (the value the owning node carried when
// reached via that particular predecessor), not a single node-wide value,
// so joined nodes with distinct per-path histories reduce correctly.
func (s *Stack) Reduce(length int) []ReducePath {
	var out []ReducePath
	var walk func(n *Node, remaining int, acc []interface{})
	walk = func(n *Node, remaining int, acc []interface{}) {
		if remaining == 0 {
			values := make([]interface{}, len(acc))
			for i, v := range acc {
				values[len(acc)-1-i] = v
			}
			out = append(out, ReducePath{Base: &Stack{root: s.root, tos: n}, Values: values})
			return
		}
		if len(n.preds) == 0 {
			return
		}
		for _, e := range n.preds {
			next := make([]interface{}, len(acc)+1)
			copy(next, acc)
			next[len(acc)] = e.value
			walk(e.node, remaining-1, next)
		}
	}
	walk(s.tos, length, nil)
	return out
}
