package cursor

import "testing"

func TestNextByteAdvancesPosition(t *testing.T) {
	c := New([]byte("ab"))
	b, ok := c.NextByte()
	if !ok || b != 'a' {
		t.Fatalf("expected 'a', got %q ok=%v", b, ok)
	}
	if c.Pos() != 1 {
		t.Fatalf("expected pos 1, got %d", c.Pos())
	}
}

func TestEmptyInputAtEndImmediately(t *testing.T) {
	c := New(nil)
	if !c.AtEnd() {
		t.Fatal("expected empty cursor to be at end")
	}
	if _, ok := c.NextByte(); ok {
		t.Fatal("expected NextByte to fail on empty input")
	}
}

func TestNextBitIsMSBFirst(t *testing.T) {
	c := New([]byte{0x80}) // 1000_0000
	for i, want := range []uint8{1, 0, 0, 0, 0, 0, 0, 0} {
		bit, ok := c.NextBit()
		if !ok {
			t.Fatalf("bit %d: unexpected end", i)
		}
		if bit != want {
			t.Fatalf("bit %d: want %d, got %d", i, want, bit)
		}
	}
	if !c.AtEnd() {
		t.Fatal("expected cursor at end after consuming all 8 bits")
	}
}

func TestSaveResetRewinds(t *testing.T) {
	c := New([]byte("abc"))
	c.NextByte()
	m := c.Save()
	c.NextByte()
	c.Reset(m)
	b, _ := c.NextByte()
	if b != 'b' {
		t.Fatalf("expected rewind to replay 'b', got %q", b)
	}
}
