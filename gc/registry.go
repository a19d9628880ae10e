package gc

// registry is an append-indexed table of live blocks. Removal is an O(1)
// swap-with-last so a Block's id always equals its slice position,
// which is what lets the collector pick a uniformly random live block
// in O(1) by indexing the slice directly.
type registry struct {
	blocks []*Block
}

// add appends b, assigning it the next free id.
func (r *registry) add(b *Block) {
	b.id = len(r.blocks)
	r.blocks = append(r.blocks, b)
}

// at returns the block at registry position i.
func (r *registry) at(i int) *Block {
	return r.blocks[i]
}

// len returns the number of live blocks.
func (r *registry) len() int {
	return len(r.blocks)
}

// removeSwap removes b from the registry by swapping in the last block
// and shrinking the slice, fixing the swapped-in block's id in place.
// Because the slice is always shrunk after the swap, there is no slot
// left to misread afterward even when b was itself the last block.
func (r *registry) removeSwap(b *Block) {
	i := b.id
	last := len(r.blocks) - 1
	r.blocks[i] = r.blocks[last]
	r.blocks[i].id = i
	r.blocks[last] = nil
	r.blocks = r.blocks[:last]
}
