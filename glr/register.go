package glr

import (
	"github.com/TJamesCorcoran/hammer/backend"
	"github.com/TJamesCorcoran/hammer/grammar"
)

func init() {
	backend.Register(&backend.Backend{
		ID: backend.GLR,
		Compile: func(g *grammar.Grammar, _ backend.Options) (interface{}, error) {
			return Compile(g)
		},
		Parse: func(state interface{}, input []byte) (interface{}, error) {
			return state.(*Parser).Parse(input)
		},
		Free: func(state interface{}) {},
	})
}
