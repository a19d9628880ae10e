package gc

import "unsafe"

// blockHeaderSize approximates the per-block bookkeeping overhead for
// the alloc.Hooks byte accounting; it has no bearing on Go's own memory
// layout, since Block is an ordinary heap-allocated Go struct.
const blockHeaderSize = unsafe.Sizeof(Block{})

// Finalizer lets a managed payload participate in its own teardown. The
// collector's finalize step calls Finalize exactly once, when the block
// is determined unreachable, on the payload's pointer type. A payload
// with no interior Ref fields needs no Finalizer implementation.
//
// This is the explicit substitute for the member-destructor chaining a
// language with RAII gets for free: when a payload goes out of scope
// there, its destructor automatically runs the destructor of every
// field it owns, which would unlink any reference field from its
// target's backlink list. Go has no destructors, so a payload that owns
// Ref fields must release them itself, and Finalize is where it does.
type Finalizer interface {
	Finalize()
}

// Block is one managed allocation: header plus payload. The payload is
// held as an opaque any so the collector's bookkeeping never needs to
// know the concrete type; Ref[T].Get recovers it with a single type
// assertion. Block embeds its own backlink-list sentinel (head) rather
// than relying on any pointer arithmetic to find it, since Go has no
// safe equivalent of casting a raw pointer back to an enclosing struct.
type Block struct {
	head    Link
	inst    *Instance
	payload any
	dtor    func(any)
	id      int
	size    uintptr
	visited bool
}

// sentinel returns the Link acting as the head/tail of this block's
// circular backlink list. The block is its own sentinel: next/prev
// pointers that equal &b.head mark the end of the list.
func (b *Block) sentinel() *Link {
	return &b.head
}

// Payload returns the block's stored value, exactly as Ref[T].Get type-
// asserts it. Exposed for callers that only have a *Block (for example
// from within a Finalizer) and need to recover the concrete payload.
func (b *Block) Payload() any {
	return b.payload
}
