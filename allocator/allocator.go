/*
Package allocator provides a pluggable allocation contract and a bump-style
region allocator ("arena") built on top of it.

An Arena hands out memory from growable blocks and is released en masse. No
backend in this module allocates through an Allocator or an Arena: parse
trees and other parse values are ordinary Go heap values.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package allocator

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'hammer.allocator'.
func tracer() tracing.Trace {
	return tracing.Select("hammer.allocator")
}

// Allocator is the contract every allocation-aware piece of this module
// code against. The default implementation (Heap) delegates to the Go
// runtime's allocator; Arena is a region allocator built on top of any
// Allocator.
//
// Values returned by a routine given allocator m must be fed only to
// routines also using m — mixing allocators across a call is undefined.
type Allocator interface {
	// Allocate returns a fresh, zeroed block of n bytes.
	Allocate(n int) ([]byte, error)
	// Reallocate grows or shrinks a previously allocated block, preserving
	// its contents up to min(len(p), newSize).
	Reallocate(p []byte, newSize int) ([]byte, error)
	// Release returns a block to the allocator. Implementations may treat
	// this as a no-op (Arena always does).
	Release(p []byte)
	// Context returns arbitrary allocator-specific state, for introspection.
	Context() interface{}
}

// Heap is the default Allocator; it delegates to the Go heap. A zero value
// is ready to use.
type Heap struct {
	ctx interface{}
}

// NewHeap creates a heap-backed Allocator, optionally carrying ctx for
// introspection by callers that type-assert Context().
func NewHeap(ctx interface{}) *Heap {
	return &Heap{ctx: ctx}
}

var _ Allocator = (*Heap)(nil)

// Allocate implements Allocator.
func (h *Heap) Allocate(n int) ([]byte, error) {
	if n < 0 {
		return nil, errAllocSize
	}
	return make([]byte, n), nil
}

// Reallocate implements Allocator.
func (h *Heap) Reallocate(p []byte, newSize int) ([]byte, error) {
	if newSize < 0 {
		return nil, errAllocSize
	}
	q := make([]byte, newSize)
	copy(q, p)
	return q, nil
}

// Release implements Allocator; a no-op for the heap allocator, since the Go
// garbage collector reclaims unreferenced slices on its own.
func (h *Heap) Release(p []byte) {}

// Context implements Allocator.
func (h *Heap) Context() interface{} { return h.ctx }

var errAllocSize = allocSizeError{}

type allocSizeError struct{}

func (allocSizeError) Error() string { return "allocator: negative size requested" }
