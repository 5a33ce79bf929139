package lalr

import (
	"github.com/TJamesCorcoran/hammer/backend"
	"github.com/TJamesCorcoran/hammer/cfg"
	"github.com/TJamesCorcoran/hammer/grammar"
)

func init() {
	backend.Register(&backend.Backend{
		ID: backend.LALR,
		Compile: func(g *grammar.Grammar, _ backend.Options) (interface{}, error) {
			cg, err := cfg.Desugar(g)
			if err != nil {
				return nil, err
			}
			return Compile(cg)
		},
		Parse: func(state interface{}, input []byte) (interface{}, error) {
			return state.(*Tables).Parse(input)
		},
		Free: func(state interface{}) {},
	})
}
