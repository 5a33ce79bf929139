/*
Package tree implements the parse-tree node produced by every backend:
tagged by Kind (mirroring the grammar package's variant style) and carrying a
byte range into the input. Node also has Path and Producer fields, which no
constructor here and no backend sets.

Node shape is grounded on dhamidi-sai's ebnf/parse.Node (Kind/Children/Span/
error convention), adapted to the tagged Bytes/Sequence/Token/Uint/Sint/User
variant list of the module's data model.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package tree

import "fmt"

// Kind tags the variant a Node holds.
type Kind uint8

const (
	KBytes Kind = iota
	KSequence
	KToken
	KUint
	KSint
	KUser
	KAmbig
)

func (k Kind) String() string {
	switch k {
	case KBytes:
		return "Bytes"
	case KSequence:
		return "Sequence"
	case KToken:
		return "Token"
	case KUint:
		return "Uint"
	case KSint:
		return "Sint"
	case KUser:
		return "User"
	case KAmbig:
		return "Ambig"
	}
	return "?Kind"
}

// Span is a half-open byte range [Start, End) into the input buffer that
// this node's match consumed.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes this node's match consumed.
func (s Span) Len() int { return s.End - s.Start }

// Node is one node of a parse tree, produced by a successful recognition of
// a grammar node (or, for the CFG backends, a reduced rule).
type Node struct {
	Kind     Kind
	Span     Span
	Children []*Node // Sequence

	Bytes []byte      // Bytes, Token
	Uint  uint64      // Uint
	Sint  int64       // Sint
	User  interface{} // User

	// Path holds an index path from the tree root (Path[0] is the root's
	// child index the first-level ancestor of this node sits at). No
	// constructor in this package and no backend fills it in, so it is nil
	// on every node they produce.
	Path []int

	// Producer holds an ID of the grammar node or CFG symbol responsible
	// for this match, opaque to this package (an int32 ID from package
	// grammar or package cfg). No constructor in this package and no
	// backend sets it, so it is zero on every node they produce.
	Producer int32

	// ignored marks a node produced under an Ignore combinator; NewSequence
	// skips such children when assembling its Children slice.
	ignored bool
}

// NewBytes creates a leaf node over the raw input slice [start,end).
func NewBytes(input []byte, start, end int) *Node {
	return &Node{Kind: KBytes, Span: Span{Start: start, End: end}, Bytes: input[start:end]}
}

// NewToken creates a leaf node for a matched literal.
func NewToken(literal []byte, start, end int) *Node {
	return &Node{Kind: KToken, Span: Span{Start: start, End: end}, Bytes: literal}
}

// NewSequence creates an interior node from already-built children, with a
// span that is the union of its children's spans. Children tagged as
// ignored (see IsIgnored) are skipped, per the module's Ignore combinator
// semantics.
func NewSequence(children []*Node) *Node {
	n := &Node{Kind: KSequence}
	for _, c := range children {
		if c == nil || c.ignored {
			continue
		}
		n.Children = append(n.Children, c)
	}
	if len(n.Children) > 0 {
		n.Span.Start = n.Children[0].Span.Start
		n.Span.End = n.Children[len(n.Children)-1].Span.End
	}
	return n
}

// NewUint creates a leaf carrying an unsigned integer semantic-action
// result.
func NewUint(v uint64, span Span) *Node {
	return &Node{Kind: KUint, Uint: v, Span: span}
}

// NewSint creates a leaf carrying a signed integer semantic-action result.
func NewSint(v int64, span Span) *Node {
	return &Node{Kind: KSint, Sint: v, Span: span}
}

// NewUser creates a leaf wrapping an opaque user value produced by a
// semantic action.
func NewUser(v interface{}, span Span) *Node {
	return &Node{Kind: KUser, User: v, Span: span}
}

// NewAmbig wraps multiple alternative derivations of the same span into a
// single ambiguity node, per the GLR backend's "merged ambiguity nodes
// preserve all branches" rule: sppf.Forest produces one when two derivations
// share the same (symbol, span), and the GLR driver produces one when more
// than one stack accepts at end of input. Alternatives must be non-empty; a span of one already
// covers the non-ambiguous case and callers should not wrap it.
func NewAmbig(alternatives []*Node) *Node {
	n := &Node{Kind: KAmbig, Children: alternatives}
	if len(alternatives) > 0 {
		n.Span.Start = alternatives[0].Span.Start
		n.Span.End = alternatives[0].Span.End
	}
	return n
}

// Ignore returns a copy of n marked to be skipped by enclosing
// NewSequence calls.
func (n *Node) Ignore() *Node {
	cp := *n
	cp.ignored = true
	return &cp
}

func (n *Node) String() string {
	switch n.Kind {
	case KBytes, KToken:
		return fmt.Sprintf("%s(%q)", n.Kind, n.Bytes)
	case KUint:
		return fmt.Sprintf("Uint(%d)", n.Uint)
	case KSint:
		return fmt.Sprintf("Sint(%d)", n.Sint)
	case KUser:
		return fmt.Sprintf("User(%v)", n.User)
	default:
		return fmt.Sprintf("%s[%d children]", n.Kind, len(n.Children))
	}
}
