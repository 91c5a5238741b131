//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// The allocation report renders the outcome of a best-fit allocation pass as a
// table: one row per process with its label (P1, P2, ...), its requested size, and
// the block it landed in (or why it did not land anywhere).

package allocReport

import (
	"fmt"
	"io"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/nestybox/sysbox-bestfit/bestFitAlloc"
)

const (
	title       = "Best Fit Memory Allocation"
	rowFmt      = "%-10s %-10s %-25s"
	ruleWidth   = 45
	notAllocMsg = "Not allocated (No suitable block)"
)

// Stats summarizes an allocation pass.
type Stats struct {
	Allocated   int
	Unallocated int
	BlocksUsed  int // distinct pool slots that received at least one process
}

// Summary computes allocation stats over the given results.
func Summary(results []bestFitAlloc.Result) Stats {
	var st Stats

	used := mapset.NewSet()
	for _, r := range results {
		if !r.Allocated {
			st.Unallocated++
			continue
		}
		st.Allocated++
		used.Add(r.Slot)
	}
	st.BlocksUsed = used.Cardinality()

	return st
}

// Status returns the allocation status string for a single result.
func Status(r bestFitAlloc.Result) string {
	if !r.Allocated {
		return notAllocMsg
	}
	return fmt.Sprintf("%d KB (Remaining: %d KB)", r.BlkSize, r.Remaining)
}

// Render formats the given blocks (as they were before allocation), processes and
// allocation results. Rows are emitted for as many processes as there are results.
func Render(blocks, processes []uint64, results []bestFitAlloc.Result) string {
	var sb strings.Builder

	rule := strings.Repeat("-", ruleWidth)

	sb.WriteString(title + "\n")
	sb.WriteString(fmt.Sprintf("Available Blocks: %s KB\n", formatSizes(blocks)))
	sb.WriteString(rule + "\n")
	writeRow(&sb, "Process", "Size (KB)", "Allocation Status")
	sb.WriteString(rule + "\n")

	n := len(processes)
	if len(results) < n {
		n = len(results)
	}

	for i := 0; i < n; i++ {
		writeRow(&sb,
			fmt.Sprintf("P%d", i+1),
			fmt.Sprintf("%d", processes[i]),
			Status(results[i]))
	}

	sb.WriteString(rule + "\n")

	st := Summary(results[:n])
	sb.WriteString(fmt.Sprintf("Allocated: %d, Not allocated: %d, Blocks used: %d\n",
		st.Allocated, st.Unallocated, st.BlocksUsed))

	return sb.String()
}

// Fprint writes the rendered report to w.
func Fprint(w io.Writer, blocks, processes []uint64, results []bestFitAlloc.Result) error {
	_, err := io.WriteString(w, Render(blocks, processes, results))
	return err
}

func writeRow(sb *strings.Builder, label, size, status string) {
	row := fmt.Sprintf(rowFmt, label, size, status)
	sb.WriteString(strings.TrimRight(row, " ") + "\n")
}

// formatSizes formats a size list as "[a, b, c]"
func formatSizes(sizes []uint64) string {
	strs := make([]string, 0, len(sizes))
	for _, s := range sizes {
		strs = append(strs, fmt.Sprintf("%d", s))
	}
	return "[" + strings.Join(strs, ", ") + "]"
}
