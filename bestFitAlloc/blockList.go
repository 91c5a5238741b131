package bestFitAlloc

// blockList is a list of block sizes; a block's position in the list is its slot
type blockList []uint64

// newBlockList returns a private copy of the given sizes
func newBlockList(sizes []uint64) blockList {
	l := make(blockList, len(sizes))
	copy(l, sizes)
	return l
}

// bestFit searches the list for the smallest block that can hold 'size'; if found,
// returns the block's slot. On ties the lowest slot wins.
func (l blockList) bestFit(size uint64) (int, bool) {
	best := -1

	for i, blk := range l {
		if blk < size {
			continue
		}
		// strict compare keeps the leftmost block among equal sizes
		if best == -1 || blk < l[best] {
			best = i
		}
	}

	return best, best != -1
}

// shrink carves 'size' out of the block at the given slot; the caller must ensure
// the block is large enough.
func (l blockList) shrink(slot int, size uint64) {
	l[slot] -= size
}
