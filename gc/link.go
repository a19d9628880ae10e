package gc

import "github.com/prateek/btgc/internal/invariant"

// noCopy causes `go vet`'s -copylocks check to flag an accidental copy of
// a Link (and, since Ref embeds one, of a Ref). This is the idiomatic Go
// substitute for the source's deleted C++ copy constructor: a Link's
// position in its target's backlink list is its own address, so copying
// the struct produces a second node with stale next/prev pointers.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Link is one outstanding reference edge. A Link with to != nil is
// threaded into to's backlink list; from is nil for a root edge (the
// Link lives outside the managed heap) and non-nil for an interior edge
// (the Link lives inside the payload of the from block).
//
// A Link is owned by exactly one Ref and must never be copied after
// construction; see noCopy above.
type Link struct {
	_ noCopy

	inst *Instance
	next *Link
	prev *Link
	from *Block
	to   *Block
}

// newLink returns a detached Link (to == nil) owned by inst, with from
// set according to whether this is a root (from == nil) or interior
// (from == owner) edge. Every Link constructed this way counts toward
// inst.totalLinks for the lifetime of the Link, mirroring every one of
// BTGC::Link's C++ constructors incrementing the same counter.
func newLink(inst *Instance, from *Block) Link {
	inst.totalLinks++
	return Link{inst: inst, from: from}
}

// attach links l into to's backlink list: an interior Link (from != nil)
// goes at the back of the list (immediately before the sentinel); a
// root Link (from == nil) goes at the front (immediately after the
// sentinel). The search step relies on this ordering to discover root
// edges first, so a block reachable from a root is recognized as live
// after looking at a single entry rather than walking the whole list.
func (inst *Instance) attach(l *Link, to *Block) {
	if to == nil {
		return
	}
	inst.poke(to)
	sentinel := to.sentinel()
	if l.from != nil {
		l.next = sentinel
		l.prev = sentinel.prev
	} else {
		l.next = sentinel.next
		l.prev = sentinel
	}
	l.prev.next = l
	l.next.prev = l
	l.to = to
}

// detach unlinks l from its target's backlink list, if it has one. It
// does not touch inst.totalLinks — callers that are permanently
// destroying the Link (as opposed to retargeting it) must do that
// themselves via release.
func (inst *Instance) detach(l *Link) {
	if l.to == nil {
		return
	}
	inst.poke(l.to)
	invariant.Check(l.prev.next == l && l.next.prev == l,
		"detach: link neighbours do not point back to %p", l)
	l.prev.next = l.next
	l.next.prev = l.prev
	l.next, l.prev, l.to = nil, nil, nil
}

// retarget detaches l from its current target, if any, and attaches it
// to the new one. Besides release, this is the only way a Link's
// position in the heap changes after construction.
func (inst *Instance) retarget(l *Link, to *Block) {
	inst.detach(l)
	inst.attach(l, to)
}

// release detaches l permanently and removes it from the live-link
// count. Ref[T].Release calls this; it is the Go substitute for the
// C++ Link destructor, since Go has no destructors to run automatically
// when a Ref goes out of scope.
func (inst *Instance) release(l *Link) {
	inst.detach(l)
	inst.totalLinks--
}
