package allocator

import "fmt"

// DefaultBlockSize is the minimum size of a block the arena links in when it
// needs fresh memory.
const DefaultBlockSize = 4096

// maxScalarAlign mirrors the platform's maximum scalar alignment. Go never
// exposes this directly; 8 bytes covers every scalar type on every platform
// Go currently targets.
const maxScalarAlign = 8

// block is one fixed-minimum-size chunk of memory owned by an Arena.
type block struct {
	mem    []byte
	used   int // bytes bumped out of mem so far
	wasted int // bytes lost to alignment padding in this block
}

func (b *block) remaining() int { return len(b.mem) - b.used }

// Arena is a bump-pointer region allocator chaining blocks from an
// underlying Allocator. Individual allocations cannot be freed; Destroy
// returns every block to the underlying allocator at once.
//
// A zero Arena is not ready to use; create one with New.
type Arena struct {
	under       Allocator
	blocks      []*block
	blockSize   int
	totalUsed   int
	totalWasted int
}

// New creates an Arena drawing blocks of at least blockSize bytes (rounded
// up to DefaultBlockSize) from under. under defaults to a Heap allocator
// when nil.
func New(under Allocator, blockSize int) *Arena {
	if under == nil {
		under = NewHeap(nil)
	}
	if blockSize < DefaultBlockSize {
		blockSize = DefaultBlockSize
	}
	return &Arena{under: under, blockSize: blockSize}
}

// alignUp rounds n up to the next multiple of maxScalarAlign.
func alignUp(n int) int {
	rem := n % maxScalarAlign
	if rem == 0 {
		return n
	}
	return n + (maxScalarAlign - rem)
}

// Allocate bumps the arena's pointer, linking in a new block if the current
// one cannot satisfy the request. The returned slice is zeroed and aligned
// to the platform's maximum scalar alignment.
func (a *Arena) Allocate(n int) ([]byte, error) {
	if n < 0 {
		return nil, errAllocSize
	}
	aligned := alignUp(n)
	if len(a.blocks) > 0 {
		cur := a.blocks[len(a.blocks)-1]
		if cur.remaining() >= aligned {
			start := cur.used
			cur.wasted += aligned - n
			cur.used += aligned
			a.totalUsed += n
			a.totalWasted += aligned - n
			return cur.mem[start : start+n : start+aligned], nil
		}
	}
	size := a.blockSize
	if aligned > size {
		size = aligned
	}
	raw, err := a.under.Allocate(size)
	if err != nil {
		return nil, err
	}
	b := &block{mem: raw}
	b.used = aligned
	b.wasted = aligned - n
	a.blocks = append(a.blocks, b)
	a.totalUsed += n
	a.totalWasted += aligned - n
	tracer().Debugf("arena: grew by %d bytes (%d blocks total)", size, len(a.blocks))
	return b.mem[0:n:aligned], nil
}

// Reallocate always allocates fresh memory and copies — an arena cannot
// extend a live allocation in place once later allocations have landed
// behind it.
func (a *Arena) Reallocate(p []byte, newSize int) ([]byte, error) {
	q, err := a.Allocate(newSize)
	if err != nil {
		return nil, err
	}
	copy(q, p)
	return q, nil
}

// Release is a no-op: per-allocation release is not supported by an arena.
// Use Destroy to reclaim everything at once.
func (a *Arena) Release(p []byte) {}

// Context returns allocation statistics for introspection.
func (a *Arena) Context() interface{} {
	return Stats{
		Blocks: len(a.blocks),
		Used:   a.totalUsed,
		Wasted: a.totalWasted,
	}
}

// Stats summarizes an Arena's block usage.
type Stats struct {
	Blocks int
	Used   int
	Wasted int
}

func (s Stats) String() string {
	return fmt.Sprintf("arena{blocks=%d used=%d wasted=%d}", s.Blocks, s.Used, s.Wasted)
}

// Destroy returns every block owned by the arena to the underlying
// allocator. Any pointer into the arena's memory is invalid from this point
// on — this is the only release operation an arena supports.
func (a *Arena) Destroy() {
	for _, b := range a.blocks {
		a.under.Release(b.mem)
	}
	a.blocks = nil
	a.totalUsed = 0
	a.totalWasted = 0
}

var _ Allocator = (*Arena)(nil)
