package gc

import (
	"go.uber.org/zap"

	"github.com/prateek/btgc/internal/invariant"
)

// Step advances the collector state machine by exactly one unit of
// work: one Link examined, one block finalized, or one block destroyed,
// depending on the current mode. Every call does a small, bounded
// amount of work and never blocks, so a caller can interleave it with
// anything else on the same goroutine without introducing a pause.
// Calling it from within a block's own finalizer is a misuse caught by
// the btgc_debug-tagged build of internal/invariant.
func (inst *Instance) Step() {
	invariant.Check(!inst.inFinalize, "Step: re-entered from a finalizer")
	switch inst.mode {
	case modeInitialize:
		inst.stepInitialize()
	case modeSearch:
		inst.stepSearch()
	case modeClear:
		inst.stepClear()
	case modeFinalize:
		inst.stepFinalize()
	case modeDestroy:
		inst.stepDestroy()
	}
}

// stepInitialize either pops the next frontier block off searchStack, or,
// if the frontier is empty, seeds a fresh episode by picking a uniformly
// random block from the registry. An empty registry leaves the collector
// idle.
func (inst *Instance) stepInitialize() {
	if n := len(inst.searchStack); n == 0 {
		if inst.reg.len() == 0 {
			return
		}
		idx := inst.rng.intn(inst.reg.len())
		inst.searchBlk = inst.reg.at(idx)
		inst.searchBlk.visited = true
		inst.searchList = append(inst.searchList, inst.searchBlk)
	} else {
		inst.searchBlk = inst.searchStack[n-1]
		inst.searchStack = inst.searchStack[:n-1]
	}
	inst.mode = modeSearch
	inst.searchLink = inst.searchBlk.head.next
}

// stepSearch examines exactly one Link in searchBlk's backlink list.
func (inst *Instance) stepSearch() {
	sentinel := inst.searchBlk.sentinel()
	if inst.searchLink == sentinel {
		// searchBlk's backlink list is exhausted.
		if len(inst.searchStack) == 0 {
			// The whole discovered sub-graph is unreachable.
			inst.mode = modeFinalize
			inst.pos = 0
			collected := len(inst.searchList)
			if inst.reporter != nil {
				inst.reporter(collected)
			}
			inst.log.Debug("episode proved unreachable",
				zap.Int("blocks", collected), zap.Float64("effort", inst.effort))
			return
		}
		inst.mode = modeInitialize
		return
	}

	from := inst.searchLink.from
	if from == nil {
		// A root-originating Link reaches searchBlk: everything
		// discovered this episode is live.
		inst.mode = modeClear
		inst.pos = 0
		return
	}
	if !from.visited {
		from.visited = true
		inst.searchList = append(inst.searchList, from)
		inst.searchStack = append(inst.searchStack, from)
	}
	inst.searchLink = inst.searchLink.next
}

// stepClear un-marks one block from the aborted episode's searchList.
func (inst *Instance) stepClear() {
	inst.searchList[inst.pos].visited = false
	inst.pos++
	if inst.pos >= len(inst.searchList) {
		inst.mode = modeInitialize
		inst.searchStack = inst.searchStack[:0]
		inst.searchList = inst.searchList[:0]
	}
}

// stepFinalize finalizes one block from a confirmed-unreachable episode.
func (inst *Instance) stepFinalize() {
	inst.finalizeBlock(inst.searchList[inst.pos])
	inst.pos++
	if inst.pos >= len(inst.searchList) {
		inst.mode = modeDestroy
		inst.pos = 0
	}
}

// stepDestroy frees one already-finalized block's memory.
func (inst *Instance) stepDestroy() {
	inst.destroyBlock(inst.searchList[inst.pos])
	inst.pos++
	if inst.pos >= len(inst.searchList) {
		inst.mode = modeInitialize
		inst.searchList = inst.searchList[:0]
	}
}

// finalizeBlock removes blk from the registry (fixing the swapped-in
// block's id) and then runs its destructor. The whole sub-graph being
// deleted together means blk's own backlink list need not stay
// consistent — any Link still pointing at blk is also about to be
// finalized this same episode.
func (inst *Instance) finalizeBlock(blk *Block) {
	inst.reg.removeSwap(blk)
	if blk.dtor != nil {
		inst.inFinalize = true
		blk.dtor(blk.payload)
		inst.inFinalize = false
	}
}

// destroyBlock reports blk's bytes as freed and drops its payload. The
// Block value itself becomes ordinary Go garbage once searchList is
// cleared at the end of the destroy phase.
func (inst *Instance) destroyBlock(blk *Block) {
	if inst.hooks.Free != nil {
		inst.hooks.Free(blk.size)
	}
	blk.payload = nil
}
