/*
Package backend defines the polymorphic dispatch table binding a backend
identity to its {compile, parse, free} operations.

The registry is a fixed map, initialized once and never mutated afterward,
indexed by a small stable BackendID — the module's own analogue of the
database/sql driver-registration idiom, keeping packrat, LL(k), LALR and
GLR as sibling packages behind one common contract rather than one
monolithic parser type.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package backend

import (
	"fmt"

	"github.com/TJamesCorcoran/hammer/grammar"
)

// ID is a small, stable backend identifier; numeric values are part of the
// module's external interface and never renumbered across releases.
type ID int

const (
	PACKRAT ID = iota
	REGULAR
	LLK
	LALR
	GLR
)

func (id ID) String() string {
	switch id {
	case PACKRAT:
		return "PACKRAT"
	case REGULAR:
		return "REGULAR"
	case LLK:
		return "LLK"
	case LALR:
		return "LALR"
	case GLR:
		return "GLR"
	}
	return fmt.Sprintf("ID(%d)", int(id))
}

// Options carries backend-specific compile-time knobs (e.g. LL(k)'s k).
type Options struct {
	K int // lookahead depth for LLK; ignored by other backends
}

// Backend is the vtable a compiled grammar is bound to: function values for
// compile/parse/free, plus an optional ParseStart hook for chunked/resumable
// parsing — exercised by no backend in this module yet, so it is always nil
// here.
type Backend struct {
	ID         ID
	Compile    func(g *grammar.Grammar, opts Options) (state interface{}, err error)
	Parse      func(state interface{}, input []byte) (tree interface{}, err error)
	Free       func(state interface{})
	ParseStart func(state interface{}) (resumer interface{}, err error)
}

var registry = map[ID]*Backend{}

// Register installs b in the fixed backend table. Called only from each
// backend package's init(); calling it after program init is a programmer
// error and panics on a duplicate ID.
func Register(b *Backend) {
	if _, exists := registry[b.ID]; exists {
		panic(fmt.Sprintf("backend: %s already registered", b.ID))
	}
	registry[b.ID] = b
}

// Lookup returns the registered Backend for id, or an error if id was never
// registered (no package registers REGULAR, so Lookup(REGULAR) always fails).
func Lookup(id ID) (*Backend, error) {
	b, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("backend: %s is not implemented", id)
	}
	return b, nil
}

// Default is the backend a grammar with no explicit compile call uses: a
// parser with no backend attached defaults to packrat.
const Default = PACKRAT
