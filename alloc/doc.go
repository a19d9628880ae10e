// ABOUTME: External collaborators for the collector: allocator accounting hooks and telemetry reporters
// ABOUTME: Swappable malloc/free and collection-reporting overrides, kept out of the core algorithm

// Package alloc holds the collector's external collaborators: the
// allocator accounting hooks and the collection-telemetry reporter
// registry. Neither one touches the collection algorithm itself —
// package gc never imports a concrete backend, only the Hooks struct
// and the Reporter function type, so swapping in a different backend
// never requires changing gc.
package alloc
