// ABOUTME: Core back-traced collector package: blocks, links, refs, and the step state machine
// ABOUTME: Single-threaded by design; see Instance for the process-wide default and explicit-instance API

// Package gc implements the back-traced incremental garbage collector:
// an intrusive backlink list per managed Block, a generic smart-reference
// type Ref[T] that owns exactly one Link, and a five-state collector
// (initialize -> search -> clear | finalize -> destroy) driven entirely by
// Instance.Step.
//
// Reachability is proven in reverse. The collector picks an arbitrary
// Block and walks the Links recorded on its backlink list — one per
// incoming reference — until it either finds a root-originating Link
// (the block, and transitively every block discovered so far, is live)
// or exhausts the ancestor set (the whole discovered sub-graph is
// unreachable and gets finalized and destroyed together).
//
// Everything in this package assumes a single thread of control: there
// is no internal locking, and Instance methods must not be called
// concurrently from more than one goroutine. Amortizing the collector's
// work into every allocation already has to run on the allocating
// goroutine, so adding synchronization here would only pay for a
// use case this package doesn't support.
package gc
