package gc

import (
	"unsafe"

	"github.com/prateek/btgc/internal/invariant"
)

// Ref is the user-facing smart reference: a generic handle wrapping
// exactly one Link. Ref must never be copied after construction (copy
// it via CopyOf instead) — see Link's noCopy field, which makes `go vet
// -copylocks` flag an accidental `r2 := r1`.
//
// A Ref constructed as a root (Root, CopyOf, or the one Make returns)
// pins its target alive until Release is called or it is retargeted
// elsewhere. A Ref constructed as interior (Interior, InteriorTo) is
// expected to live inside a managed payload and be released by that
// payload's Finalizer.
type Ref[T any] struct {
	link Link
}

// Root returns a root reference holding nothing (from == nil, to == nil).
func Root[T any](inst *Instance) Ref[T] {
	return Ref[T]{link: newLink(inst, nil)}
}

// Interior returns an interior reference holding nothing, sourced from
// owner (from == owner, to == nil). owner is typically the block
// enclosing the payload this Ref is a field of, so construct it by
// passing that block along as it's built — see Make.
func Interior[T any](owner *Block) Ref[T] {
	return Ref[T]{link: newLink(owner.inst, owner)}
}

// CopyOf copies only other's target; the result is always a root,
// regardless of where the copy physically lives. Copying a reference
// into a managed payload by value, rather than building it in place
// with Interior/InteriorTo, therefore produces a reference that pins
// its target as a root even though it lives inside the heap — prefer
// InteriorTo when building a field inside a payload.
func CopyOf[T any](other Ref[T]) Ref[T] {
	r := Ref[T]{link: newLink(other.link.inst, nil)}
	other.link.inst.attach(&r.link, other.link.to)
	return r
}

// InteriorTo returns an interior reference fully specified up front:
// from == owner, to == target.
func InteriorTo[T any](owner *Block, target *Block) Ref[T] {
	r := Ref[T]{link: newLink(owner.inst, owner)}
	owner.inst.attach(&r.link, target)
	return r
}

// Make allocates a new block sized for T, constructs T via build, and
// returns a root reference to it. The block is registered with the heap
// — and assigned its id — before build runs, because build may itself
// create Interior/InteriorTo references that need the enclosing block
// to already exist.
func Make[T any](inst *Instance, build func(owner *Block) *T) Ref[T] {
	inst.amortize()

	blk := &Block{inst: inst}
	blk.head.inst = inst
	blk.head.next = &blk.head
	blk.head.prev = &blk.head
	blk.size = blockHeaderSize + sizeOf[T]()
	inst.reg.add(blk)
	if inst.hooks.Alloc != nil {
		inst.hooks.Alloc(blk.size)
	}

	payload := build(blk)
	blk.payload = payload
	blk.dtor = func(p any) {
		if f, ok := p.(Finalizer); ok {
			f.Finalize()
		}
	}

	r := Ref[T]{link: newLink(inst, nil)}
	inst.attach(&r.link, blk)
	return r
}

// Get dereferences the reference, returning the payload's address.
// Dereferencing a nil reference is a caller bug; the btgc_debug build
// asserts it instead of returning a nil *T that would crash less
// predictably at the point of use.
func (r *Ref[T]) Get() *T {
	r.link.inst.poke(r.link.to)
	invariant.Check(r.link.to != nil, "Ref.Get: dereference of a nil reference")
	if r.link.to == nil {
		return nil
	}
	return r.link.to.payload.(*T)
}

// Block returns the managed block this reference targets, or nil. Use
// this to retarget another reference by address without going through
// a live Ref[T] of the same type — see AssignToBlock.
func (r *Ref[T]) Block() *Block {
	return r.link.to
}

// IsNil reports whether the reference currently holds no target.
func (r *Ref[T]) IsNil() bool {
	return r.link.to == nil
}

// Equal compares two references by target only.
func (r *Ref[T]) Equal(other Ref[T]) bool {
	return r.link.to == other.link.to
}

// Assign retargets r to other's target. from (root vs. interior) is
// never changed — only the position within the new target's backlink
// list, following the same front/back policy as construction.
func (r *Ref[T]) Assign(other Ref[T]) {
	r.link.inst.retarget(&r.link, other.link.to)
}

// AssignToBlock retargets r to target directly (target may be nil).
func (r *Ref[T]) AssignToBlock(target *Block) {
	r.link.inst.retarget(&r.link, target)
}

// Release detaches r from its target permanently and removes it from the
// live-link count. This is the Go substitute for the C++ Link
// destructor: a root Ref that is done pinning its target must call
// Release explicitly (for example via defer), since Go has no
// destructors to run when it goes out of scope. Interior refs are
// released by their owning payload's Finalizer.
func (r *Ref[T]) Release() {
	r.link.inst.release(&r.link)
}

func sizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}
