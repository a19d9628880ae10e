// ABOUTME: End-to-end stress test churning chains of managed blocks through the collector
// ABOUTME: A reduced-scale version of cmd/btgcstress's workload, run as part of the test suite

package btgc_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prateek/btgc/alloc"
	"github.com/prateek/btgc/gc"
)

type stressThing struct {
	next      gc.Ref[stressThing]
	finalized *int
}

func (t *stressThing) Finalize() {
	t.next.Release()
	*t.finalized++
}

func makeStressThing(inst *gc.Instance, finalized *int) gc.Ref[stressThing] {
	return gc.Make[stressThing](inst, func(owner *gc.Block) *stressThing {
		return &stressThing{next: gc.Interior[stressThing](owner), finalized: finalized}
	})
}

// TestStressChurnCleansUpFully repeatedly builds a head-of-N chain,
// stashes the head in a bounded pool of roots, and evicts two roots per
// iteration. At shutdown every allocated block must have been accounted
// for. The iteration count here is far below cmd/btgcstress's default
// of one million — enough to exercise many collection episodes without
// making the suite slow.
func TestStressChurnCleansUpFully(t *testing.T) {
	const (
		iterations  = 2000
		chainLength = 10
		targetRoots = 20
	)

	var finalized int
	var totalObjects int64
	inst := gc.New(gc.WithAllocHooks(alloc.Counting(&totalObjects)))

	seed := rand.New(rand.NewSource(1))
	roots := make([]gc.Ref[stressThing], 0, 2*targetRoots)

	for i := 0; i < iterations; i++ {
		var tail gc.Ref[stressThing]
		for j := 0; j < chainLength; j++ {
			u := makeStressThing(inst, &finalized)
			u.Get().next.Assign(tail)
			tail = u
		}
		roots = append(roots, tail)

		for j := 0; j < 2 && len(roots) > 0; j++ {
			r := seed.Intn(2 * targetRoots)
			if r < len(roots) {
				roots[r].Release()
				roots = append(roots[:r], roots[r+1:]...)
			}
		}
	}

	for _, r := range roots {
		r.Release()
	}
	inst.Close()

	require.Equal(t, int64(0), totalObjects, "allocator balance must return to zero after shutdown")
}

// TestStressEveryFinalizerRunsExactlyOnce checks that, across a smaller,
// easier-to-audit run, every block that was ever allocated has its
// finalizer invoked exactly once — never zero times (a leak) and never
// more than once (a double-free of the payload).
func TestStressEveryFinalizerRunsExactlyOnce(t *testing.T) {
	const (
		iterations  = 200
		chainLength = 5
		targetRoots = 8
	)

	var finalized int
	allocated := 0
	var totalObjects int64
	inst := gc.New(gc.WithAllocHooks(alloc.Counting(&totalObjects)))

	seed := rand.New(rand.NewSource(42))
	roots := make([]gc.Ref[stressThing], 0, 2*targetRoots)

	for i := 0; i < iterations; i++ {
		var tail gc.Ref[stressThing]
		for j := 0; j < chainLength; j++ {
			u := makeStressThing(inst, &finalized)
			allocated++
			u.Get().next.Assign(tail)
			tail = u
		}
		roots = append(roots, tail)

		for j := 0; j < 2 && len(roots) > 0; j++ {
			r := seed.Intn(2 * targetRoots)
			if r < len(roots) {
				roots[r].Release()
				roots = append(roots[:r], roots[r+1:]...)
			}
		}
	}

	for _, r := range roots {
		r.Release()
	}
	inst.Close()

	require.Equal(t, allocated, finalized, "every allocated block must be finalized exactly once")
	require.Equal(t, int64(0), totalObjects)
}
