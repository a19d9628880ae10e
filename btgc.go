// ABOUTME: Root package for the back-traced incremental garbage collector
// ABOUTME: Holds version information; the collector itself lives in package gc

// Package btgc is an incremental, single-threaded, back-traced garbage
// collector for soft-real-time applications that need predictable
// allocation-time pauses even over large live heaps.
//
// Instead of marking forward from roots, the collector picks an arbitrary
// block and walks its backlinks — the record of every incoming reference,
// kept on the target rather than the source — until it either proves the
// block's ancestor set contains a root, or exhausts the ancestor set and
// destroys the whole unreachable sub-graph.
//
// The collector itself is in package gc; the allocator and telemetry
// collaborators are in package alloc. This package only carries version
// metadata, mirroring how the rest of this module is organized.
package btgc

// Version is the semantic version of this module.
const Version = "0.1.0-dev"
