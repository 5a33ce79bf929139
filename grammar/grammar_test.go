package grammar

import "testing"

func TestNodeIdentityIsStableAndMonotonic(t *testing.T) {
	g := New()
	a := g.Token("a")
	b := g.Token("b")
	if a.ID() == b.ID() {
		t.Fatal("distinct nodes must receive distinct ids")
	}
	if b.ID() != a.ID()+1 {
		t.Fatalf("expected monotonic ids, got %d then %d", a.ID(), b.ID())
	}
}

func TestIndirectBindOnce(t *testing.T) {
	g := New()
	ind := g.Indirect("expr")
	target := g.Token("x")
	ind.Bind(target)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double Bind")
		}
	}()
	ind.Bind(target)
}

func TestCheckUnboundReportsMissingBinding(t *testing.T) {
	g := New()
	g.Indirect("expr")
	if name := g.CheckUnbound(); name != "expr" {
		t.Fatalf("expected %q reported unbound, got %q", "expr", name)
	}
}

func TestCheckUnboundClearsAfterBind(t *testing.T) {
	g := New()
	ind := g.Indirect("expr")
	ind.Bind(g.Token("x"))
	if name := g.CheckUnbound(); name != "" {
		t.Fatalf("expected no unbound indirects, got %q", name)
	}
}

func TestCharSetRangeMembership(t *testing.T) {
	digits := CharRange('0', '9')
	if !digits.Contains('5') {
		t.Fatal("expected '5' in digit range")
	}
	if digits.Contains('a') {
		t.Fatal("did not expect 'a' in digit range")
	}
}

func TestSequenceAndChoiceRetainChildren(t *testing.T) {
	g := New()
	a, b := g.Token("a"), g.Token("b")
	seq := g.Sequence(a, b)
	if len(seq.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(seq.Children))
	}
	choice := g.Choice(a, b)
	if choice.Kind != KChoice || len(choice.Children) != 2 {
		t.Fatal("choice node malformed")
	}
}
