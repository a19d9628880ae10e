//go:build !btgc_debug

// ABOUTME: No-op build of the collector's debug assertions
// ABOUTME: Compiled when -tags btgc_debug is absent, so release builds pay nothing for it

package invariant

// Check is a no-op in release builds. Build with -tags btgc_debug to
// enable it; see assert_debug.go.
func Check(cond bool, format string, args ...any) {}
