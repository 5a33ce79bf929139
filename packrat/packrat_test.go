package packrat

import (
	"testing"

	"github.com/TJamesCorcoran/hammer/grammar"
)

func TestLiteralMatchConsumesPrefix(t *testing.T) {
	g := grammar.New()
	g.Start = g.Token("abc")
	p, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	r, err := p.Parse([]byte("abcde"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Consumed != 3 {
		t.Fatalf("expected 3 bytes consumed, got %d", r.Consumed)
	}
}

func TestChoiceOrderPrefersFirstAlternative(t *testing.T) {
	g := grammar.New()
	g.Start = g.Choice(g.Token("if"), g.Token("ifx"))
	p, _ := Compile(g)
	r, err := p.Parse([]byte("ifx"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Consumed != 2 {
		t.Fatalf("expected ordered choice to stop at 'if' (2 bytes), got %d", r.Consumed)
	}
}

func TestManyIsGreedyOverDigitRun(t *testing.T) {
	g := grammar.New()
	digit := g.Chars(grammar.CharRange('0', '9'))
	g.Start = g.Many(digit)
	p, _ := Compile(g)
	r, err := p.Parse([]byte("42a"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Consumed != 2 {
		t.Fatalf("expected 2 digits consumed, got %d", r.Consumed)
	}
}

func TestEndSucceedsOnlyOnEmptyInput(t *testing.T) {
	g := grammar.New()
	g.Start = g.End()
	p, _ := Compile(g)

	if _, err := p.Parse(nil); err != nil {
		t.Fatalf("expected End to succeed on empty input: %v", err)
	}
	if _, err := p.Parse([]byte("x")); err == nil {
		t.Fatal("expected End to fail on non-empty input")
	}
}

func TestLeftRecursiveSumGrammarParsesLongestChain(t *testing.T) {
	// Sum -> Sum '+' digit | digit
	g := grammar.New()
	digit := g.Chars(grammar.CharRange('0', '9'))
	sum := g.Indirect("Sum")
	recurse := g.Sequence(sum, g.Token("+"), digit)
	sum.Bind(g.Choice(recurse, digit))
	g.Start = sum

	p, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	r, err := p.Parse([]byte("1+2+3"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Consumed != 5 {
		t.Fatalf("expected full left-recursive chain consumed (5 bytes), got %d", r.Consumed)
	}
}

func TestActionCanRejectMatch(t *testing.T) {
	g := grammar.New()
	digit := g.Chars(grammar.CharRange('0', '9'))
	g.Start = g.Action(digit, func(v interface{}) (interface{}, bool) {
		return nil, false // always reject
	})
	p, _ := Compile(g)
	if _, err := p.Parse([]byte("5")); err == nil {
		t.Fatal("expected action rejection to fail the parse")
	}
}
