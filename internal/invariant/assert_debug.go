//go:build btgc_debug

// ABOUTME: Debug-build assertions for the collector's invariants
// ABOUTME: Enabled with -tags btgc_debug; panics with a stack trace on violation

package invariant

import (
	"fmt"

	"github.com/pkg/errors"
)

// Check panics with a stack-trace-bearing error if cond is false. It
// guards caller misuse that would otherwise corrupt the collector's
// internal state silently: a nil target on dereference, re-entering
// Step from within a finalizer, a Link whose list neighbours don't
// point back to it. None of these are checked in a release build —
// they'd cost a branch on every allocation-time barrier call, which is
// precisely the hot path this collector exists to keep predictable.
func Check(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(errors.WithStack(fmt.Errorf(format, args...)))
}
