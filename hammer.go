package hammer

import "fmt"

// Span captures a half-open byte range [From, To) within an input buffer.
// Parse-tree nodes carry their own tree.Span instead; the backends do not
// use this type.
type Span [2]uint64

// From returns the start offset of a span.
func (s Span) From() uint64 { return s[0] }

// To returns the offset just behind the end of a span.
func (s Span) To() uint64 { return s[1] }

// Len returns the number of bytes covered by a span.
func (s Span) Len() uint64 { return s[1] - s[0] }

// IsNull reports whether a span is the zero span, as produced by an
// epsilon match.
func (s Span) IsNull() bool { return s == Span{} }

// Extend grows s so that it also covers other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// ErrorKind enumerates the permanent, synchronous error categories a grammar
// compile or a parse run may fail with.
type ErrorKind int

const (
	// NoError is the zero value; never returned as part of an actual error.
	NoError ErrorKind = iota
	// GrammarNotLLK is returned by an LL(k) compile when two productions of
	// the same non-terminal have overlapping FIRST_k(lookahead) sets.
	GrammarNotLLK
	// GrammarAmbiguous is returned by an LALR(1) compile on a shift/reduce
	// or reduce/reduce conflict.
	GrammarAmbiguous
	// UnboundIndirect names the case of an Indirect node that was never
	// bound before compile. No backend returns it in a CompileError:
	// cfg.Desugar reports the case as a *cfg.DesugarError, and packrat's
	// Compile as a plain error.
	UnboundIndirect
	// PEGOnlyConstructInCFG names the case of a NotFollowedBy/FollowedBy
	// node reaching a CFG-based backend (LL(k), LALR, GLR). No backend
	// returns it in a CompileError: cfg.Desugar reports the case as a
	// *cfg.DesugarError.
	PEGOnlyConstructInCFG
	// ParseFailed is returned by a parse call that could not recognize the
	// input; it carries a position and an expected-terminal set.
	ParseFailed
	// AmbiguousResult names the case of more than one parse tree surviving
	// where a unique one is wanted. No backend returns it: the GLR backend
	// has no unique-result option and returns a tree.KAmbig node instead.
	AmbiguousResult
	// AllocationFailed names an allocation failure. No backend returns it,
	// since no backend allocates through an allocator.Allocator.
	AllocationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case GrammarNotLLK:
		return "GRAMMAR_NOT_LLK"
	case GrammarAmbiguous:
		return "GRAMMAR_AMBIGUOUS"
	case UnboundIndirect:
		return "UNBOUND_INDIRECT"
	case PEGOnlyConstructInCFG:
		return "PEG_ONLY_CONSTRUCT_IN_CFG"
	case ParseFailed:
		return "PARSE_FAILED"
	case AmbiguousResult:
		return "AMBIGUOUS_RESULT"
	case AllocationFailed:
		return "ALLOCATION_FAILED"
	default:
		return "NO_ERROR"
	}
}

// CompileError is returned synchronously from a backend's Compile function.
// It never mutates the parser beyond leaving it uncompiled.
type CompileError struct {
	Kind    ErrorKind
	Message string
	// State and Items are populated for GrammarAmbiguous: the CFSM state
	// number and a description of the conflicting items.
	State uint
	Items []string
	// Name holds the name of a dangling node for UnboundIndirect; no code in
	// this module sets it (see UnboundIndirect).
	Name string
}

func (e *CompileError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

// ParseError is returned from a backend's Parse function on recognition
// failure. It is self-contained: no global state is consulted or mutated.
type ParseError struct {
	Kind     ErrorKind // ParseFailed or AmbiguousResult
	Position uint64
	Expected []string // human-readable description of the expected terminals
}

func (e *ParseError) Error() string {
	if e.Kind == AmbiguousResult {
		return fmt.Sprintf("ambiguous result at position %d", e.Position)
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("parse failed at position %d", e.Position)
	}
	return fmt.Sprintf("parse failed at position %d, expected one of %v", e.Position, e.Expected)
}
