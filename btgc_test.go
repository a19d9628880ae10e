// ABOUTME: Tests for the root btgc package: version metadata plus a module-level smoke test
// ABOUTME: The smoke test exercises gc and alloc together through the package layout this module documents

package btgc_test

import (
	"testing"

	"github.com/prateek/btgc"
	"github.com/prateek/btgc/alloc"
	"github.com/prateek/btgc/gc"
)

func TestProjectStructure(t *testing.T) {
	if btgc.Version == "" {
		t.Error("Version constant should not be empty")
	}

	expectedPrefix := "0."
	if len(btgc.Version) < len(expectedPrefix) || btgc.Version[:len(expectedPrefix)] != expectedPrefix {
		t.Errorf("Version should start with %q, got %q", expectedPrefix, btgc.Version)
	}
}

// smokeNode is the smallest possible Finalizer-implementing payload,
// just enough to prove gc.Make/gc.Ref round-trip through a *gc.Instance
// built with an alloc.Hooks collaborator wired in from Init.
type smokeNode struct {
	released *bool
}

func (n *smokeNode) Finalize() {
	*n.released = true
}

// TestPackageLayoutWiresGCAndAlloc proves that the root package's
// documented split — version metadata here, the collector in gc,
// its collaborators in alloc — is actually usable from a single
// import of github.com/prateek/btgc/gc without reaching into any
// internal package. It allocates one block through the default
// instance, drops its only root, runs the collector to completion,
// and checks both that the finalizer ran and that alloc's accounting
// hook observed a balanced alloc/free pair.
func TestPackageLayoutWiresGCAndAlloc(t *testing.T) {
	var balance int64
	gc.Init(gc.WithAllocHooks(alloc.Counting(&balance)))
	defer gc.Finish()

	released := false
	ref := gc.Make[smokeNode](gc.Default(), func(owner *gc.Block) *smokeNode {
		return &smokeNode{released: &released}
	})
	ref.Release()

	// Finalize takes the block out of the registry one step before the
	// destroy step reports its bytes freed, so keep stepping past
	// NumBlocks() reaching zero.
	for i := 0; i < 100; i++ {
		gc.Default().Step()
	}

	if gc.Default().NumBlocks() != 0 {
		t.Fatalf("NumBlocks() = %d, want 0 after releasing the only root", gc.Default().NumBlocks())
	}
	if !released {
		t.Error("finalizer never ran for the released block")
	}
	if balance != 0 {
		t.Errorf("allocator balance = %d, want 0 (alloc/free must balance)", balance)
	}
}
