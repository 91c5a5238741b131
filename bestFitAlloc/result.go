package bestFitAlloc

// Result is the outcome of placing one process request.
type Result struct {
	Size      uint64 // requested size (KB)
	Allocated bool   // false if no block could hold the request
	Slot      int    // pool index of the chosen block; -1 if not allocated
	BlkSize   uint64 // size of the chosen block when it was picked (KB)
	Remaining uint64 // BlkSize - Size
}

func allocated(size uint64, slot int, blkSize uint64) Result {
	return Result{
		Size:      size,
		Allocated: true,
		Slot:      slot,
		BlkSize:   blkSize,
		Remaining: blkSize - size,
	}
}

func unallocated(size uint64) Result {
	return Result{Size: size, Slot: -1}
}

