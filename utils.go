//
// Copyright: (C) 2019 Nestybox Inc.  All rights reserved.
//

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nestybox/sysbox-bestfit/allocReport"
	"github.com/nestybox/sysbox-bestfit/bestFitAlloc"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
	"gopkg.in/yaml.v3"
)

const (
	banner        = "Best Fit Memory Allocation Algorithm"
	bannerRule    = "----------------------------------"
	blocksPrompt  = "Enter memory block sizes (KB, space-separated): "
	processPrompt = "Enter process sizes (KB, space-separated): "
)

// scenario is the on-disk form of an allocation input (see --scenario)
type scenario struct {
	Blocks    []uint64 `yaml:"blocks"`
	Processes []uint64 `yaml:"processes"`
}

type runConfig struct {
	scenarioPath string // if set, input is read from this file instead of 'in'
	interactive  bool   // print banner and prompts
}

// isTerminal reports whether the given fd refers to a terminal.
func isTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	return err == nil
}

// parseSizes parses a whitespace-separated list of non-negative sizes.
func parseSizes(line string) ([]uint64, error) {
	fields := strings.Fields(line)
	sizes := make([]uint64, 0, len(fields))

	for _, f := range fields {
		size, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %v", f, err)
		}
		sizes = append(sizes, size)
	}

	return sizes, nil
}

// readLine reads one line from r; a last line without a trailing newline is
// accepted, but hitting end of input before any data is an error.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", errors.New("unexpected end of input")
		}
		return "", err
	}
	return line, nil
}

// readInput reads the block and process size lists from 'in', one line each,
// printing the prompts to 'out' if requested.
func readInput(in io.Reader, out io.Writer, prompt bool) ([]uint64, []uint64, error) {
	r := bufio.NewReader(in)

	if prompt {
		fmt.Fprint(out, blocksPrompt)
	}
	line, err := readLine(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read block sizes: %v", err)
	}
	blocks, err := parseSizes(line)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse block sizes: %v", err)
	}

	if prompt {
		fmt.Fprint(out, processPrompt)
	}
	line, err = readLine(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read process sizes: %v", err)
	}
	processes, err := parseSizes(line)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse process sizes: %v", err)
	}

	return blocks, processes, nil
}

// loadScenario reads the block and process size lists from a yaml file.
func loadScenario(path string) ([]uint64, []uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse scenario %s: %v", path, err)
	}

	return sc.Blocks, sc.Processes, nil
}

// runBestFit acquires the input, runs the best-fit allocation pass and writes the
// report to 'out'.
func runBestFit(cfg runConfig, in io.Reader, out io.Writer, log *logrus.Entry) error {
	var (
		blocks, processes []uint64
		err               error
	)

	if cfg.scenarioPath != "" {
		log.Debugf("Loading scenario %s", cfg.scenarioPath)
		blocks, processes, err = loadScenario(cfg.scenarioPath)
	} else {
		if cfg.interactive {
			fmt.Fprintf(out, "%s\n%s\n", banner, bannerRule)
		}
		blocks, processes, err = readInput(in, out, cfg.interactive)
	}
	if err != nil {
		return err
	}

	log.Debugf("blocks = %v, processes = %v", blocks, processes)

	results := bestFitAlloc.Allocate(blocks, processes)

	fmt.Fprintln(out)
	if err := allocReport.Fprint(out, blocks, processes, results); err != nil {
		return fmt.Errorf("failed to write report: %v", err)
	}

	st := allocReport.Summary(results)
	log.WithFields(logrus.Fields{
		"allocated":   st.Allocated,
		"unallocated": st.Unallocated,
		"blocks-used": st.BlocksUsed,
	}).Info("Allocation done")

	return nil
}
