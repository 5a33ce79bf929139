package glr

import (
	"testing"

	"github.com/TJamesCorcoran/hammer/grammar"
	"github.com/TJamesCorcoran/hammer/tree"
)

// buildDanglingElseGrammar constructs the classic dangling-else ambiguous
// grammar S -> i S | i S e S | x, the same construction lalr's tests use to
// exercise conflict detection — except here the conflict is expected to
// compile fine, since GLR tolerates it by forking stacks at parse time.
func buildDanglingElseGrammar() *grammar.Grammar {
	g := grammar.New()
	s := g.Indirect("S")
	i := g.Token("i")
	e := g.Token("e")
	x := g.Token("x")
	opt1 := g.Sequence(i, s)
	opt2 := g.Sequence(i, s, e, s)
	s.Bind(g.Choice(opt1, opt2, x))
	g.Start = s
	return g
}

func TestDanglingElseGrammarCompilesUnderGLR(t *testing.T) {
	g := buildDanglingElseGrammar()
	if _, err := Compile(g); err != nil {
		t.Fatalf("expected GLR to tolerate the shift/reduce conflict, got: %v", err)
	}
}

func TestAmbiguousInputYieldsAmbigForest(t *testing.T) {
	g := buildDanglingElseGrammar()
	p, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	// "iixex": the inner "e" can bind to either the first or second "i",
	// the textbook dangling-else ambiguity — both derivations consume the
	// whole input.
	got, err := p.Parse([]byte("iixex"))
	if err != nil {
		t.Fatalf("expected a successful (ambiguous) parse: %v", err)
	}
	if got.Kind != tree.KAmbig {
		t.Fatalf("expected an ambiguity node for a genuinely ambiguous input, got %s", got.Kind)
	}
	if len(got.Children) < 2 {
		t.Fatalf("expected at least 2 packed alternatives, got %d", len(got.Children))
	}
}

func TestUnambiguousInputYieldsSingleTree(t *testing.T) {
	g := buildDanglingElseGrammar()
	p, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	got, err := p.Parse([]byte("ix"))
	if err != nil {
		t.Fatalf("expected a successful parse: %v", err)
	}
	if got.Kind == tree.KAmbig {
		t.Fatal("expected a single unambiguous parse for 'ix'")
	}
}

func TestMalformedInputFailsEveryStack(t *testing.T) {
	g := buildDanglingElseGrammar()
	p, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse([]byte("ie")); err == nil {
		t.Fatal("expected parse failure on malformed input")
	}
}
