//
// Copyright: (C) 2019 Nestybox Inc.  All rights reserved.
//

// Implementation of a best-fit block allocator.
//
// The Pool class represents a set of free memory blocks (sizes in KB) from which
// process requests are carved out. A Pool is created with New() and requests are
// placed with Alloc().
//
// Allocation picks, among the blocks whose current size is large enough for the
// request, the one with the smallest current size ("best fit"). When several blocks
// share that size, the leftmost one in pool order wins. The chosen block is shrunk
// in place to the remainder, which may be zero; a zero-size block stays in the pool
// and can only satisfy a zero-size request.
//
// Blocks are never split into new pool entries, merged, or freed: the pool has the
// same number of entries for its entire lifetime, and an entry's index identifies
// the original block it came from.
//
// Performance:
//
// The search is linear and runs in O(n), where n is the number of blocks in the pool.

package bestFitAlloc

import (
	intf "github.com/nestybox/sysbox-bestfit/intf"
	"github.com/sirupsen/logrus"
)

// Pool is an instance of a best-fit allocator; it implements intf.BlockAllocator.
type Pool struct {
	blocks blockList // current block sizes, indexed by slot
}

// New creates a pool from the given block sizes; the pool works on its own copy
// so the caller's slice is never modified.
func New(blocks []uint64) *Pool {
	return &Pool{
		blocks: newBlockList(blocks),
	}
}

// Alloc places a request of the given size in the best fitting block.
func (p *Pool) Alloc(size uint64) (int, uint64, bool) {

	slot, found := p.blocks.bestFit(size)
	if !found {
		logrus.Debugf("Alloc(%v): no suitable block in %v", size, p.blocks)
		return -1, 0, false
	}

	blkSize := p.blocks[slot]
	p.blocks.shrink(slot, size)

	logrus.Debugf("Alloc(%v) = slot %v, %v KB (remaining %v KB)", size, slot, blkSize, blkSize-size)
	return slot, blkSize, true
}

// Blocks returns a snapshot of the current block sizes.
func (p *Pool) Blocks() []uint64 {
	return newBlockList(p.blocks)
}

// Len returns the number of blocks in the pool; it never changes.
func (p *Pool) Len() int {
	return len(p.blocks)
}

// Run places each of the given process requests, in order, using the given
// allocator. It returns one result per process.
func Run(alloc intf.BlockAllocator, processes []uint64) []Result {

	results := make([]Result, 0, len(processes))

	for _, size := range processes {
		slot, blkSize, ok := alloc.Alloc(size)
		if !ok {
			results = append(results, unallocated(size))
			continue
		}
		results = append(results, allocated(size, slot, blkSize))
	}

	return results
}

// Allocate runs a best-fit allocation pass of the given processes over the given
// blocks. The blocks slice is not modified.
func Allocate(blocks, processes []uint64) []Result {
	return Run(New(blocks), processes)
}
