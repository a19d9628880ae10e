package gc

import (
	"go.uber.org/zap"

	"github.com/prateek/btgc/alloc"
	"github.com/prateek/btgc/internal/invariant"
)

// mode is the collector's current phase. The zero value, modeInitialize,
// is also the collector's idle/start state.
type mode int

const (
	modeInitialize mode = iota
	modeSearch
	modeClear
	modeFinalize
	modeDestroy
)

// Instance is one back-traced collector: a registry of live blocks plus
// the incremental search state. A process can run several independent
// Instances; default.go layers a package-level default instance and the
// Init/Finish/... convenience functions on top of this type for callers
// that just want one collector without threading a *Instance everywhere.
type Instance struct {
	reg        registry
	rng        rng
	totalLinks int

	mode        mode
	pos         int
	searchList  []*Block
	searchStack []*Block
	searchBlk   *Block
	searchLink  *Link

	inFinalize bool

	effort   float64
	hooks    alloc.Hooks
	reporter alloc.Reporter
	log      *zap.Logger
}

// Option configures an Instance at construction time.
type Option func(*Instance)

// WithEffort sets the initial scheduling effort (default 1.0).
func WithEffort(effort float64) Option {
	return func(i *Instance) { i.effort = effort }
}

// WithAllocHooks installs the allocator accounting hooks (default: no-op,
// alloc.Default).
func WithAllocHooks(h alloc.Hooks) Option {
	return func(i *Instance) { i.hooks = h }
}

// WithReporter installs the collection-telemetry reporter (default:
// no-op).
func WithReporter(r alloc.Reporter) Option {
	return func(i *Instance) { i.reporter = r }
}

// WithLogger installs a structured logger for lifecycle and collection
// events (default: zap.NewNop(), so a fresh Instance never logs unless
// asked to).
func WithLogger(l *zap.Logger) Option {
	return func(i *Instance) { i.log = l }
}

// New constructs a standalone Instance. Callers that just want one
// shared collector can use Init instead; New exists so tests (and
// programs that genuinely want more than one heap) can run several
// instances without interfering with each other.
func New(opts ...Option) *Instance {
	inst := &Instance{
		rng:    newRNG(),
		effort: 1.0,
		mode:   modeInitialize,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// NumBlocks returns the current registry size.
func (inst *Instance) NumBlocks() int {
	return inst.reg.len()
}

// Effort returns the current scheduling effort.
func (inst *Instance) Effort() float64 {
	return inst.effort
}

// SetEffort tunes the scheduling effort; see amortize.
func (inst *Instance) SetEffort(effort float64) {
	inst.effort = effort
}

// poke is the write barrier: if b is part of the sub-graph currently
// under search, any observation or mutation of its backlink list
// invalidates the in-flight deletion decision. Without this, a mutator
// could retarget a reference onto a block the search has already
// provisionally marked unreachable, and the collector would go on to
// finalize a block that is actually live again.
func (inst *Instance) poke(b *Block) {
	if b == nil {
		return
	}
	if b.visited && (inst.mode == modeInitialize || inst.mode == modeSearch) {
		inst.mode = modeClear
		inst.pos = 0
	}
}

// amortize runs a handful of collector steps before every allocation, so
// the cost of finding and freeing garbage is spread across the
// allocations that produce it rather than paid in one long pause. The
// step count scales with the average number of live references per
// block (totalLinks/n, truncated the same way the underlying C
// reference implementation truncates it, before scaling by effort and
// adding a small constant), so a more densely-linked heap gets
// proportionally more search effort per allocation.
func (inst *Instance) amortize() {
	invariant.Check(!inst.inFinalize, "amortize: allocation re-entered from a finalizer")
	n := inst.reg.len()
	if n == 0 {
		return
	}
	steps := int(inst.effort * float64(2*(inst.totalLinks/n)+7))
	for i := 0; i < steps; i++ {
		inst.Step()
	}
}

// Close tears the whole heap down in two passes: every block's
// finalizer runs first, then every block is dropped and its bytes
// reported freed. The two passes matter because a finalizer may still
// (read-only) dereference other managed blocks; freeing as we go would
// let that dereference race a block whose memory is already gone.
func (inst *Instance) Close() {
	freed := inst.reg.len()
	for i := 0; i < inst.reg.len(); i++ {
		blk := inst.reg.at(i)
		if blk.dtor != nil {
			inst.inFinalize = true
			blk.dtor(blk.payload)
			inst.inFinalize = false
		}
	}
	for i := 0; i < inst.reg.len(); i++ {
		blk := inst.reg.at(i)
		if inst.hooks.Free != nil {
			inst.hooks.Free(blk.size)
		}
	}
	// An unfinished collection has already finalized blocks that are no
	// longer in the registry but have not been freed yet: those before
	// pos in the finalize phase, those from pos on in the destroy phase.
	switch inst.mode {
	case modeFinalize:
		for _, blk := range inst.searchList[:inst.pos] {
			inst.destroyBlock(blk)
		}
	case modeDestroy:
		for _, blk := range inst.searchList[inst.pos:] {
			inst.destroyBlock(blk)
		}
	}
	inst.reg.blocks = nil
	inst.searchList = nil
	inst.searchStack = nil
	inst.log.Debug("instance closed", zap.Int("blocks_freed", freed))
}
