package llk

import (
	"testing"

	"github.com/TJamesCorcoran/hammer/cfg"
	"github.com/TJamesCorcoran/hammer/grammar"
)

func compileGrammar(t *testing.T, build func(g *grammar.Grammar) *grammar.Node) *cfg.Grammar {
	t.Helper()
	g := grammar.New()
	g.Start = build(g)
	cg, err := cfg.Desugar(g)
	if err != nil {
		t.Fatal(err)
	}
	return cg
}

func TestSimpleTokenGrammarParses(t *testing.T) {
	cg := compileGrammar(t, func(g *grammar.Grammar) *grammar.Node {
		return g.Token("ab")
	})
	p, err := Compile(cg, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse([]byte("ab")); err != nil {
		t.Fatal(err)
	}
}

func TestOverlappingFirstSetsRejectedAsNotLLK(t *testing.T) {
	// choice(sequence(A,B), sequence(A,C)) with equal FIRST1(A)
	cg := compileGrammar(t, func(g *grammar.Grammar) *grammar.Node {
		a := g.Token("a")
		b := g.Token("b")
		c := g.Token("c")
		return g.Choice(g.Sequence(a, b), g.Sequence(a, c))
	})
	if _, err := Compile(cg, 1); err == nil {
		t.Fatal("expected GRAMMAR_NOT_LLK for overlapping predict sets")
	}
}

func TestDistinctFirstSetsCompileFine(t *testing.T) {
	cg := compileGrammar(t, func(g *grammar.Grammar) *grammar.Node {
		return g.Choice(g.Token("x"), g.Token("y"))
	})
	if _, err := Compile(cg, 1); err != nil {
		t.Fatalf("expected distinct-FIRST grammar to compile as LL(1): %v", err)
	}
}
