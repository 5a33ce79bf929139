package tree

import "testing"

func TestNewBytesSlicesInput(t *testing.T) {
	input := []byte("hello world")
	n := NewBytes(input, 0, 5)
	if string(n.Bytes) != "hello" {
		t.Fatalf("expected %q, got %q", "hello", n.Bytes)
	}
}

func TestSequenceSpanUnionsChildren(t *testing.T) {
	input := []byte("abcdef")
	a := NewBytes(input, 0, 2)
	b := NewBytes(input, 2, 6)
	seq := NewSequence([]*Node{a, b})
	if seq.Span.Start != 0 || seq.Span.End != 6 {
		t.Fatalf("expected span [0,6), got [%d,%d)", seq.Span.Start, seq.Span.End)
	}
}

func TestSequenceSkipsIgnoredChildren(t *testing.T) {
	input := []byte("abc")
	a := NewBytes(input, 0, 1)
	b := NewBytes(input, 1, 2).Ignore()
	c := NewBytes(input, 2, 3)
	seq := NewSequence([]*Node{a, b, c})
	if len(seq.Children) != 2 {
		t.Fatalf("expected 2 surviving children, got %d", len(seq.Children))
	}
}

func TestNewAmbigCarriesAllAlternatives(t *testing.T) {
	a := NewToken([]byte("if"), 0, 2)
	b := NewToken([]byte("ifx"), 0, 3)
	amb := NewAmbig([]*Node{a, b})
	if amb.Kind != KAmbig || len(amb.Children) != 2 {
		t.Fatalf("expected an ambiguity node with 2 alternatives, got %v", amb)
	}
	if amb.Span.Start != 0 || amb.Span.End != 2 {
		t.Fatalf("expected span taken from the first alternative, got [%d,%d)", amb.Span.Start, amb.Span.End)
	}
}
