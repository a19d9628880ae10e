// ABOUTME: Tests for the named Reporter registry
// ABOUTME: Verifies Register/Use wiring and the built-in backends

package alloc

import "testing"

func TestUseUnknownReporterErrors(t *testing.T) {
	if _, err := Use("does-not-exist"); err == nil {
		t.Fatal("Use of an unregistered name returned a nil error")
	}
}

func TestRegisterMakesReporterAvailable(t *testing.T) {
	var got int
	Register("test-reporter", func(collected int) { got = collected })

	r, err := Use("test-reporter")
	if err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	r(7)
	if got != 7 {
		t.Fatalf("got = %d, want 7", got)
	}
}

func TestBuiltinReportersAreRegistered(t *testing.T) {
	for _, name := range []string{"noop", "log", "prometheus"} {
		if _, err := Use(name); err != nil {
			t.Errorf("Use(%q) error = %v, want a registered backend", name, err)
		}
	}
}

func TestNoopReporterDoesNothing(t *testing.T) {
	r, err := Use("noop")
	if err != nil {
		t.Fatalf("Use(\"noop\") error = %v", err)
	}
	// Must not panic regardless of input.
	r(0)
	r(1000)
}
