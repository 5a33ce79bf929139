package sparse

import "testing"

func TestUnsetCellReadsAsNullValue(t *testing.T) {
	m := NewIntMatrix(3, 3, DefaultNullValue)
	if v := m.Value(1, 1); v != DefaultNullValue {
		t.Fatalf("expected null value, got %d", v)
	}
}

func TestSetThenValueRoundTrips(t *testing.T) {
	m := NewIntMatrix(4, 4, DefaultNullValue)
	m.Set(2, 3, 42)
	if v := m.Value(2, 3); v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
	if m.ValueCount() != 1 {
		t.Fatalf("expected 1 populated cell, got %d", m.ValueCount())
	}
}

func TestAddRecordsConflictPair(t *testing.T) {
	m := NewIntMatrix(2, 2, DefaultNullValue)
	m.Add(0, 0, -1) // shift
	m.Add(0, 0, 7)  // conflicting reduce
	a, b := m.Values(0, 0)
	if a != -1 || b != 7 {
		t.Fatalf("expected conflict pair (-1,7), got (%d,%d)", a, b)
	}
}

func TestSetOverwritesAndClearsSecondValue(t *testing.T) {
	m := NewIntMatrix(2, 2, DefaultNullValue)
	m.Add(0, 0, -1)
	m.Add(0, 0, 7)
	m.Set(0, 0, 99)
	a, b := m.Values(0, 0)
	if a != 99 || b != DefaultNullValue {
		t.Fatalf("expected (99,null), got (%d,%d)", a, b)
	}
}

func TestMultipleCellsMaintainSortedOrder(t *testing.T) {
	m := NewIntMatrix(5, 5, DefaultNullValue)
	m.Set(3, 1, 1)
	m.Set(1, 4, 2)
	m.Set(1, 1, 3)
	if m.Value(1, 1) != 3 || m.Value(1, 4) != 2 || m.Value(3, 1) != 1 {
		t.Fatal("values not retrievable after out-of-order insertion")
	}
}
