package llk

import (
	"github.com/TJamesCorcoran/hammer/backend"
	"github.com/TJamesCorcoran/hammer/cfg"
	"github.com/TJamesCorcoran/hammer/grammar"
)

func init() {
	backend.Register(&backend.Backend{
		ID: backend.LLK,
		Compile: func(g *grammar.Grammar, opts backend.Options) (interface{}, error) {
			cg, err := cfg.Desugar(g)
			if err != nil {
				return nil, err
			}
			return Compile(cg, opts.K)
		},
		Parse: func(state interface{}, input []byte) (interface{}, error) {
			return state.(*Parser).Parse(input)
		},
		Free: func(state interface{}) {},
	})
}
