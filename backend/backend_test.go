package backend

import "testing"

func TestLookupFailsForUnregisteredID(t *testing.T) {
	if _, err := Lookup(REGULAR); err == nil {
		t.Fatal("expected REGULAR to be unimplemented")
	}
}

func TestRegisterPanicsOnDuplicateID(t *testing.T) {
	id := ID(1000) // a scratch ID unused by any real backend
	Register(&Backend{ID: id})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register(&Backend{ID: id})
}

func TestDefaultIsPackrat(t *testing.T) {
	if Default != PACKRAT {
		t.Fatalf("expected default backend to be PACKRAT, got %v", Default)
	}
}
