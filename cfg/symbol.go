/*
Package cfg implements the normalized "sum-of-products" context-free grammar
IR that sits between the user-facing combinator graph (package grammar) and
the parsing backends (packrat excepted, which operates directly on the
combinator graph).

Symbol, Rule, Grammar, Item and LRAnalysis follow the classic LR
table-generation data model, adapted from "terminal = pre-scanned token" to
"terminal = decomposed byte class", since this library has no separate
lexer: CharSet and Token combinator nodes are decomposed directly into
singleton-byte terminals during desugaring (a byte range becomes a choice
over one terminal per byte).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package cfg

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'hammer.cfg'.
func tracer() tracing.Trace {
	return tracing.Select("hammer.cfg")
}

// EOF is the distinguished end-of-input terminal's token value.
const EOF int32 = -1

// Epsilon is the distinguished empty-derivation pseudo-terminal's token
// value. LRAnalysis does not place it in FIRST sets; nullability is
// reported by LRAnalysis.Nullable instead.
const Epsilon int32 = -2

// Symbol is either a terminal (a byte class, identified by a small integer
// token value) or a non-terminal (identified by name) of the normalized
// grammar.
type Symbol struct {
	id       int32
	Name     string
	terminal bool
	value    int32 // terminal token value; meaningless for non-terminals
}

// IsTerminal reports whether sy is a terminal symbol.
func (sy *Symbol) IsTerminal() bool { return sy.terminal }

// Value returns the terminal's token value (a byte class id, EOF, or, for
// Epsilon bookkeeping, the Epsilon sentinel). Meaningless for non-terminals.
func (sy *Symbol) Value() int32 { return sy.value }

// ID returns the symbol's stable small-integer identity.
func (sy *Symbol) ID() int32 { return sy.id }

func (sy *Symbol) String() string {
	if sy.terminal {
		if sy.value == EOF {
			return "#eof"
		}
		return fmt.Sprintf("%q", sy.Name)
	}
	return sy.Name
}
