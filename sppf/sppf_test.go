package sppf

import (
	"testing"

	"github.com/TJamesCorcoran/hammer/tree"
)

func TestFirstDerivationPassesThroughUnwrapped(t *testing.T) {
	f := NewForest()
	d := tree.NewToken([]byte("if"), 0, 2)
	out := f.Add(1, 0, 2, d)
	if out != d {
		t.Fatal("expected the sole derivation to be returned unwrapped")
	}
}

func TestSecondDerivationOverSameSpanPacksAmbiguity(t *testing.T) {
	f := NewForest()
	a := tree.NewToken([]byte("if"), 0, 2)
	b := tree.NewToken([]byte("ifx"), 0, 2)
	f.Add(1, 0, 2, a)
	out := f.Add(1, 0, 2, b)
	if out.Kind != tree.KAmbig || len(out.Children) != 2 {
		t.Fatalf("expected a 2-alternative ambiguity node, got %v", out)
	}
}

func TestDifferentSpansDoNotMerge(t *testing.T) {
	f := NewForest()
	a := tree.NewToken([]byte("if"), 0, 2)
	b := tree.NewToken([]byte("x"), 2, 3)
	f.Add(1, 0, 2, a)
	out := f.Add(1, 2, 3, b)
	if out != b {
		t.Fatal("expected a derivation over a distinct span to stay unpacked")
	}
}

func TestLookupReturnsPackedResult(t *testing.T) {
	f := NewForest()
	d := tree.NewToken([]byte("x"), 0, 1)
	f.Add(2, 0, 1, d)
	out, ok := f.Lookup(2, 0, 1)
	if !ok || out != d {
		t.Fatal("expected lookup to find the recorded derivation")
	}
	if _, ok := f.Lookup(2, 0, 2); ok {
		t.Fatal("expected lookup for an unrecorded span to miss")
	}
}
