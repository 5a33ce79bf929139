package cfg

import (
	"testing"

	"github.com/TJamesCorcoran/hammer/grammar"
)

func TestDesugarTokenProducesByteSequence(t *testing.T) {
	g := grammar.New()
	g.Start = g.Token("ab")
	cg, err := Desugar(g)
	if err != nil {
		t.Fatal(err)
	}
	if cg.NumRules() == 0 {
		t.Fatal("expected at least one rule")
	}
	if cg.Rule(0).LHS.Name != "S'" {
		t.Fatalf("expected augmented start rule at serial 0, got %v", cg.Rule(0))
	}
}

func TestDesugarRejectsUnboundIndirect(t *testing.T) {
	g := grammar.New()
	g.Start = g.Indirect("expr")
	if _, err := Desugar(g); err == nil {
		t.Fatal("expected desugar error for unbound indirect")
	}
}

func TestDesugarRejectsLookaheadNodes(t *testing.T) {
	g := grammar.New()
	g.Start = g.NotFollowedBy(g.Token("x"))
	if _, err := Desugar(g); err == nil {
		t.Fatal("expected desugar error for NotFollowedBy under a CFG backend")
	}
}

func TestNullableFirstFollowOnSimpleGrammar(t *testing.T) {
	// S -> a S | epsilon   (nullable S, FIRST(S) = {a}, FOLLOW(S) = {#eof})
	g := grammar.New()
	aNode := g.Token("a")
	ind := g.Indirect("S")
	seq := g.Sequence(aNode, ind)
	choice := g.Choice(seq, g.Epsilon())
	ind.Bind(choice)
	g.Start = ind

	cg, err := Desugar(g)
	if err != nil {
		t.Fatal(err)
	}
	ga := Analyze(cg)

	startRule := cg.Rule(0)
	S := startRule.RHS[0]
	if !ga.Nullable(S) {
		t.Fatal("expected S to be nullable")
	}
	if ga.Follow(S).Empty() {
		t.Fatal("expected FOLLOW(S) to contain #eof")
	}
}

func TestReanalysisIsAFixedPoint(t *testing.T) {
	g := grammar.New()
	aNode := g.Token("a")
	ind := g.Indirect("S")
	seq := g.Sequence(aNode, ind)
	choice := g.Choice(seq, g.Epsilon())
	ind.Bind(choice)
	g.Start = ind

	cg, err := Desugar(g)
	if err != nil {
		t.Fatal(err)
	}
	ga1 := Analyze(cg)
	ga2 := Analyze(cg)

	cg.EachNonTerminal(func(A *Symbol) {
		if ga1.First(A).Size() != ga2.First(A).Size() {
			t.Fatalf("FIRST(%s) grew on re-analysis", A)
		}
		if ga1.Follow(A).Size() != ga2.Follow(A).Size() {
			t.Fatalf("FOLLOW(%s) grew on re-analysis", A)
		}
	})
}
