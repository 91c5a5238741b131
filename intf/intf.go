//
// sysbox-bestfit interfaces
//

package intf

// The BlockAllocator interface defines the interface exposed by the entity that
// carves process requests out of a pool of free memory blocks.
type BlockAllocator interface {

	// Alloc places a request of 'size' KB in the pool; it returns the index of the
	// block that was used, the block's size at the time it was chosen, and whether
	// the request could be placed at all. A failed placement leaves the pool as is.
	Alloc(size uint64) (slot int, blkSize uint64, ok bool)

	// Blocks returns a copy of the current block sizes, in pool order.
	Blocks() []uint64
}
