package lalr

import (
	"testing"

	"github.com/TJamesCorcoran/hammer/cfg"
	"github.com/TJamesCorcoran/hammer/grammar"
)

// buildArithmeticGrammar constructs:
//
//	E -> E '+' T | T
//	T -> T '*' F | F
//	F -> '(' E ')' | digit
//
// using Indirect nodes for the left-recursive E/T, matching scenario 4 of
// the module's testable properties.
func buildArithmeticGrammar() *grammar.Grammar {
	g := grammar.New()
	digit := g.Chars(grammar.CharRange('0', '9'))

	e := g.Indirect("E")
	t := g.Indirect("T")
	f := g.Indirect("F")

	eRec := g.Sequence(e, g.Token("+"), t)
	e.Bind(g.Choice(eRec, t))

	tRec := g.Sequence(t, g.Token("*"), f)
	t.Bind(g.Choice(tRec, f))

	paren := g.Sequence(g.Token("("), e, g.Token(")"))
	f.Bind(g.Choice(paren, digit))

	g.Start = e
	return g
}

func TestArithmeticGrammarCompilesWithoutConflicts(t *testing.T) {
	g := buildArithmeticGrammar()
	cg, err := cfg.Desugar(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Compile(cg); err != nil {
		t.Fatalf("expected arithmetic grammar to compile under LALR(1): %v", err)
	}
}

func TestArithmeticGrammarParsesSimpleSum(t *testing.T) {
	g := buildArithmeticGrammar()
	cg, err := cfg.Desugar(g)
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := Compile(cg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Parse([]byte("1+2*3")); err != nil {
		t.Fatalf("expected successful parse: %v", err)
	}
}

func TestMalformedArithmeticInputFails(t *testing.T) {
	g := buildArithmeticGrammar()
	cg, err := cfg.Desugar(g)
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := Compile(cg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Parse([]byte("1++2")); err == nil {
		t.Fatal("expected parse failure on malformed input")
	}
}

func TestDanglingElseGrammarReportsShiftReduceConflict(t *testing.T) {
	// S' -> S #eof ; S -> i S | i S e S | x
	// (classic dangling-else shift/reduce conflict), built directly at the
	// cfg level (rule 0 must be the augmented start rule, as Desugar would
	// produce) to exercise conflict detection independent of desugaring.
	cg := cfg.NewGrammar("dangling-else")
	sAug := cg.Intern("S'")
	s := cg.Intern("S")
	eof := cg.Terminal(cfg.EOF, "#eof")
	i := cg.Terminal(int32('i'), "i")
	e := cg.Terminal(int32('e'), "e")
	x := cg.Terminal(int32('x'), "x")
	cg.AddRule(sAug, []*cfg.Symbol{s, eof}, nil)
	cg.AddRule(s, []*cfg.Symbol{i, s}, nil)
	cg.AddRule(s, []*cfg.Symbol{i, s, e, s}, nil)
	cg.AddRule(s, []*cfg.Symbol{x}, nil)

	if _, err := Compile(cg); err == nil {
		t.Fatal("expected dangling-else grammar to report a shift/reduce conflict")
	}
}
