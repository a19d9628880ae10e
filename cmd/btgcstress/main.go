// ABOUTME: Stress-test driver that churns chains of managed blocks through the collector
// ABOUTME: A thin CLI wrapper around the gc package, kept out of the core algorithm

// Command btgcstress repeatedly builds a head-of-N chain of managed
// blocks, stashes the head in a bounded pool of roots, and evicts two
// roots per iteration, putting steady allocation and collection
// pressure on a single *gc.Instance. At shutdown it reports whether
// every allocated block was eventually collected.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/prateek/btgc/alloc"
	"github.com/prateek/btgc/gc"
)

// thing is a chain link: a single Ref to the next thing in the chain.
// It implements gc.Finalizer so the collector can release that Ref when
// a thing is determined unreachable.
type thing struct {
	next gc.Ref[thing]
}

func (t *thing) Finalize() {
	t.next.Release()
}

func makeThing(inst *gc.Instance) gc.Ref[thing] {
	return gc.Make[thing](inst, func(owner *gc.Block) *thing {
		return &thing{next: gc.Interior[thing](owner)}
	})
}

func run(c *cli.Context) error {
	iterations := c.Int("iterations")
	chainLength := c.Int("chain-length")
	targetRoots := c.Int("target-roots")
	effort := c.Float64("effort")
	reportInterval := c.Int("report-interval")

	reporter, err := alloc.Use(c.String("reporter"))
	if err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	var totalObjects int64
	inst := gc.New(
		gc.WithEffort(effort),
		gc.WithAllocHooks(alloc.Counting(&totalObjects)),
		gc.WithReporter(reporter),
		gc.WithLogger(logger),
	)

	seed := rand.New(rand.NewSource(1))
	roots := make([]gc.Ref[thing], 0, 2*targetRoots)

	for i := 0; i < iterations; i++ {
		var t gc.Ref[thing]
		for j := 0; j < chainLength; j++ {
			u := makeThing(inst)
			u.Get().next.Assign(t)
			t = u
		}
		roots = append(roots, t)

		for j := 0; j < 2 && len(roots) > 0; j++ {
			r := seed.Intn(2 * targetRoots)
			if r < len(roots) {
				roots[r].Release()
				roots = append(roots[:r], roots[r+1:]...)
			}
		}

		if reportInterval > 0 && i%reportInterval == 0 {
			reachable := len(roots) * chainLength
			waste := 0.0
			if reachable > 0 {
				waste = float64(int(totalObjects)-reachable) * 100.0 / float64(reachable)
			}
			fmt.Printf("iteration=%d reachable=%d total=%d waste=%.1f%%\n",
				i, reachable, totalObjects, waste)
		}
	}

	for _, r := range roots {
		r.Release()
	}
	inst.Close()

	if totalObjects != 0 {
		return fmt.Errorf("cleanup failed: leaked %d objects", totalObjects)
	}
	fmt.Println("cleanup succeeded: 0 objects leaked")
	return nil
}

func main() {
	app := &cli.App{
		Name:  "btgcstress",
		Usage: "churn chains of managed blocks through the back-traced collector",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "iterations", Value: 1_000_000},
			&cli.IntFlag{Name: "chain-length", Value: 10},
			&cli.IntFlag{Name: "target-roots", Value: 100},
			&cli.Float64Flag{Name: "effort", Value: 1.0},
			&cli.IntFlag{Name: "report-interval", Value: 1000},
			&cli.StringFlag{Name: "reporter", Value: "log"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
