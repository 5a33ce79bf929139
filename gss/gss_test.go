package gss

import "testing"

func TestNewStackIsEmpty(t *testing.T) {
	r := NewRoot("G", -999)
	s := NewStack(r)
	if s.Pop() != nil {
		t.Fatal("expected empty stack to Pop nil")
	}
}

func TestPushThenPeek(t *testing.T) {
	r := NewRoot("G", -999)
	s := NewStack(r)
	s.Push(1, 0, "a")
	if _, top := s.Peek(); top != "a" {
		t.Fatalf("expected top value 'a', got %v", top)
	}
}

func TestTwoStacksPushingSameStateMerge(t *testing.T) {
	r := NewRoot("G", -999)
	s1 := NewStack(r)
	s2 := NewStack(r)
	s1.Push(1, 0, "a")
	if s1.tos.pathcnt != 1 {
		t.Fatalf("expected pathcnt 1, got %d", s1.tos.pathcnt)
	}
	s2.Push(1, 0, "a")
	if s1.tos != s2.tos {
		t.Fatal("expected both stacks to land on the same merged node")
	}
}

func TestJoinAccumulatesPathcnt(t *testing.T) {
	r := NewRoot("G", -999)
	s1 := NewStack(r)
	s1.Push(1, 0, "a")
	s2 := NewStack(r)
	s2.Push(2, 0, "b").Push(3, 1, "c")
	s1.Push(3, 1, "c")
	if s1.tos.pathcnt != 2 {
		t.Fatalf("expected join pathcnt 2, got %d", s1.tos.pathcnt)
	}
	if !s1.tos.isInverseJoin() {
		t.Fatal("expected merged node to report as an inverse join")
	}
}

func TestForkSharesTopOfStack(t *testing.T) {
	r := NewRoot("G", -999)
	s1 := NewStack(r)
	s1.Push(1, 0, "a")
	s2 := s1.Fork()
	if s1.tos != s2.tos {
		t.Fatal("expected fork to share the same top node")
	}
	s1.Push(2, 1, "b")
	s2.Push(3, 1, "c")
	if s1.tos == s2.tos {
		t.Fatal("expected diverging pushes after a fork to land on different nodes")
	}
}

func TestDieRemovesFromActiveStacks(t *testing.T) {
	r := NewRoot("G", -999)
	s1 := NewStack(r)
	s2 := NewStack(r)
	if len(r.ActiveStacks()) != 2 {
		t.Fatalf("expected 2 active stacks, got %d", len(r.ActiveStacks()))
	}
	s1.Die()
	active := r.ActiveStacks()
	if len(active) != 1 || active[0] != s2 {
		t.Fatalf("expected only s2 to remain active, got %v", active)
	}
}

func TestReduceSinglePathReturnsOneResult(t *testing.T) {
	r := NewRoot("G", -999)
	s := NewStack(r)
	s.Push(1, 0, "a").Push(2, 1, "b").Push(3, 2, "c")
	paths := s.Reduce(2)
	if len(paths) != 1 {
		t.Fatalf("expected exactly one reduce path, got %d", len(paths))
	}
	if got := paths[0].Values; len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("expected values [b c] in RHS order, got %v", got)
	}
	if state, _ := paths[0].Base.Peek(); state != 1 {
		t.Fatalf("expected reduce base at state 1, got %d", state)
	}
}

func TestReduceAcrossJoinReturnsEveryPath(t *testing.T) {
	r := NewRoot("G", -999)
	s1 := NewStack(r)
	s2 := NewStack(r)
	s1.Push(1, 0, "a").Push(3, 1, "c")
	s2.Push(2, 0, "b").Push(3, 1, "c")
	s1.Push(4, 2, "d")
	paths := s1.Reduce(2)
	if len(paths) != 2 {
		t.Fatalf("expected 2 reduce paths through the join, got %d", len(paths))
	}
}

func TestReduceOfZeroLengthHandleStaysAtTop(t *testing.T) {
	r := NewRoot("G", -999)
	s := NewStack(r)
	s.Push(1, 0, "a")
	paths := s.Reduce(0)
	if len(paths) != 1 || len(paths[0].Values) != 0 {
		t.Fatal("expected a single zero-length reduce path with no values")
	}
	if state, _ := paths[0].Base.Peek(); state != 1 {
		t.Fatal("expected a zero-length reduce to leave the base at the current top")
	}
}
