//
// Copyright: (C) 2019 Nestybox Inc.  All rights reserved.
//

package bestFitAlloc

import (
	"math/rand"
	"testing"
)

type allocTest struct {
	size          uint64
	wantSlot      int
	wantBlkSize   uint64
	wantRemaining uint64
	wantAllocated bool
}

func testAllocate(t *testing.T, blocks []uint64, processes []uint64, tests []allocTest) {

	got := Allocate(blocks, processes)

	if len(got) != len(tests) {
		t.Fatalf("Allocate(%v, %v) failed: got %v results, want %v", blocks, processes, len(got), len(tests))
	}

	for i, test := range tests {
		r := got[i]
		if r.Size != test.size ||
			r.Allocated != test.wantAllocated ||
			r.Slot != test.wantSlot ||
			r.BlkSize != test.wantBlkSize ||
			r.Remaining != test.wantRemaining {
			t.Errorf("Allocate(%v, %v)[%d] failed: got = %+v; want = %+v", blocks, processes, i, r, test)
		}
	}
}

func TestAllocateBasic(t *testing.T) {

	blocks := []uint64{100, 500, 200, 300, 600}
	processes := []uint64{212, 417, 112, 426}

	var tests = []allocTest{
		// size, slot, blkSize, remaining, allocated
		{212, 3, 300, 88, true},
		{417, 1, 500, 83, true},
		{112, 2, 200, 88, true},
		{426, 4, 600, 174, true},
	}

	testAllocate(t, blocks, processes, tests)
}

func TestAllocateNoBlocks(t *testing.T) {

	var tests = []allocTest{
		{50, -1, 0, 0, false},
	}

	testAllocate(t, []uint64{}, []uint64{50}, tests)
	testAllocate(t, nil, []uint64{50}, tests)
}

func TestAllocateNoProcesses(t *testing.T) {

	got := Allocate([]uint64{100, 200}, nil)
	if len(got) != 0 {
		t.Errorf("Allocate() failed: got %v; want empty result", got)
	}
}

func TestAllocateExhausted(t *testing.T) {

	var tests = []allocTest{
		{100, 0, 100, 0, true},
		{1, -1, 0, 0, false},
	}

	testAllocate(t, []uint64{100}, []uint64{100, 1}, tests)
}

func TestAllocateTieBreak(t *testing.T) {

	var tests = []allocTest{
		{50, 0, 50, 0, true},
		{50, 1, 50, 0, true},
	}

	testAllocate(t, []uint64{50, 50}, []uint64{50, 50}, tests)

	// a reduced block ties with an untouched one; leftmost still wins
	tests = []allocTest{
		{7, 1, 12, 5, true},
		{5, 0, 5, 0, true},
		{5, 1, 5, 0, true},
	}

	testAllocate(t, []uint64{5, 12}, []uint64{7, 5, 5}, tests)

	tests = []allocTest{
		{7, 0, 12, 5, true},
		{5, 0, 5, 0, true},
	}

	testAllocate(t, []uint64{12, 5}, []uint64{7, 5}, tests)
}

func TestAllocateZeroSize(t *testing.T) {

	// a zero-size block left behind can only be matched by a zero-size request
	var tests = []allocTest{
		{10, 0, 10, 0, true},
		{0, 0, 0, 0, true},
		{1, 1, 30, 29, true},
	}

	testAllocate(t, []uint64{10, 30}, []uint64{10, 0, 1}, tests)
}

func TestAllocateReducedBlock(t *testing.T) {

	// a block keeps its reduced size for later comparisons
	var tests = []allocTest{
		{150, 0, 200, 50, true},
		{40, 0, 50, 10, true},
		{60, 1, 100, 40, true},
	}

	testAllocate(t, []uint64{200, 100}, []uint64{150, 40, 60}, tests)
}

func TestAllocateInputNotModified(t *testing.T) {

	blocks := []uint64{100, 500, 200, 300, 600}
	processes := []uint64{212, 417, 112, 426}

	want := []uint64{100, 500, 200, 300, 600}

	Allocate(blocks, processes)

	for i := range want {
		if blocks[i] != want[i] {
			t.Errorf("Allocate() modified caller blocks: got %v; want %v", blocks, want)
			break
		}
	}
}

func TestPoolBlocks(t *testing.T) {

	pool := New([]uint64{100, 500, 200, 300, 600})

	Run(pool, []uint64{212, 417, 112, 426})

	want := []uint64{100, 83, 88, 88, 174}
	got := pool.Blocks()

	if len(got) != len(want) {
		t.Fatalf("Blocks() failed: got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Blocks() failed: got %v; want %v", got, want)
			break
		}
	}

	// the snapshot must not alias the pool
	got[0] = 0
	if pool.Blocks()[0] != 100 {
		t.Errorf("Blocks() returned a slice aliasing the pool")
	}
}

func TestPoolRandom(t *testing.T) {

	rnd := rand.New(rand.NewSource(1))

	for iter := 0; iter < 100; iter++ {

		blocks := make([]uint64, rnd.Intn(10))
		for i := range blocks {
			blocks[i] = uint64(rnd.Intn(1000))
		}

		processes := make([]uint64, rnd.Intn(20))
		for i := range processes {
			processes[i] = uint64(rnd.Intn(600))
		}

		pool := New(blocks)

		for _, size := range processes {
			before := pool.Blocks()

			slot, blkSize, ok := pool.Alloc(size)

			if pool.Len() != len(blocks) {
				t.Fatalf("Alloc(%v) changed pool length: got %v; want %v", size, pool.Len(), len(blocks))
			}

			if !ok {
				for _, b := range before {
					if b >= size {
						t.Errorf("Alloc(%v) failed with a suitable block in %v", size, before)
					}
				}
				continue
			}

			if blkSize < size || before[slot] != blkSize {
				t.Errorf("Alloc(%v) = slot %v, %v; pool was %v", size, slot, blkSize, before)
			}

			// no block in [size, blkSize) may exist, and no equal block to the left
			for i, b := range before {
				if b >= size && b < blkSize {
					t.Errorf("Alloc(%v) picked %v but %v fits better in %v", size, blkSize, b, before)
				}
				if b == blkSize && i < slot {
					t.Errorf("Alloc(%v) picked slot %v but slot %v ties in %v", size, slot, i, before)
				}
			}

			if got := pool.Blocks()[slot]; got != blkSize-size {
				t.Errorf("Alloc(%v) left %v in slot %v; want %v", size, got, slot, blkSize-size)
			}
		}
	}
}
