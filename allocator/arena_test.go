package allocator

import "testing"

func TestArenaBumpsWithinBlock(t *testing.T) {
	a := New(nil, 1024)
	p1, err := a.Allocate(16)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := a.Allocate(16)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.blocks) != 1 {
		t.Fatalf("expected a single block, got %d", len(a.blocks))
	}
	copy(p1, "0123456789abcdef")
	copy(p2, "fedcba9876543210")
	if string(p1) == string(p2) {
		t.Fatal("allocations should not overlap")
	}
}

func TestArenaGrowsNewBlock(t *testing.T) {
	a := New(nil, 64)
	a.Allocate(DefaultBlockSize) // 64 is raised to DefaultBlockSize; fill the first block
	a.Allocate(64)               // must not fit in first block, forces growth
	if len(a.blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(a.blocks))
	}
}

func TestArenaLargeAllocationGetsDedicatedBlock(t *testing.T) {
	a := New(nil, DefaultBlockSize)
	p, err := a.Allocate(DefaultBlockSize * 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != DefaultBlockSize*4 {
		t.Fatalf("got slice of len %d", len(p))
	}
}

func TestArenaReleaseIsNoop(t *testing.T) {
	a := New(nil, 64)
	p, _ := a.Allocate(8)
	a.Release(p) // must not panic, must not affect further allocations
	q, _ := a.Allocate(8)
	if &p[0] == &q[0] {
		t.Fatal("Release must not recycle memory from an arena")
	}
}

func TestArenaDestroyResetsStats(t *testing.T) {
	a := New(nil, 64)
	a.Allocate(8)
	a.Destroy()
	stats := a.Context().(Stats)
	if stats.Blocks != 0 || stats.Used != 0 {
		t.Fatalf("expected zeroed stats after Destroy, got %+v", stats)
	}
}

func TestHeapAllocatorRejectsNegativeSize(t *testing.T) {
	h := NewHeap(nil)
	if _, err := h.Allocate(-1); err == nil {
		t.Fatal("expected error for negative allocation size")
	}
}
