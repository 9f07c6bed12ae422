// This file is part of processor-modeling - https://github.com/slvptr/processor-modeling
//
// Copyright 2023 The processor-modeling Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command machine runs a machine-code artifact against a timestamped
// input schedule:
//
//	machine <program_file> <input_file>
//
// The input file is a JSON array of [tick, "char"] pairs (or empty when
// the program takes no input). On completion the flushed output buffer and
// the final counters print as
//
//	output: <buffer>
//	instr: <N>  ticks: <T>
//
// The report also prints on an execution fault, with whatever was
// accumulated up to it, before the non-zero exit.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/slvptr/processor-modeling/isa"
	"github.com/slvptr/processor-modeling/vm"
)

func main() {
	var (
		memSize int
		limit   int
		trace   bool
	)
	root := &cobra.Command{
		Use:          "machine <program_file> <input_file>",
		Short:        "Simulate a machine-code artifact with tick-accurate timing",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return simulate(args[0], args[1], memSize, limit, trace)
		},
	}
	root.Flags().IntVar(&memSize, "mem-size", 100, "memory size in cells")
	root.Flags().IntVar(&limit, "limit", 10000, "maximum number of executed instructions")
	root.Flags().BoolVar(&trace, "trace", false, "write the per-instruction execution trace to stderr")
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func simulate(programFile, inputFile string, memSize, limit int, trace bool) error {
	pf, err := os.Open(programFile)
	if err != nil {
		return errors.Wrap(err, "open program failed")
	}
	defer pf.Close()
	prog, err := isa.Read(pf)
	if err != nil {
		return err
	}

	inf, err := os.Open(inputFile)
	if err != nil {
		return errors.Wrap(err, "open input failed")
	}
	defer inf.Close()
	sched, err := vm.ReadSchedule(inf)
	if err != nil {
		return err
	}

	opts := []vm.Option{
		vm.MemSize(memSize),
		vm.Limit(limit),
		vm.WithSchedule(sched),
	}
	if trace {
		opts = append(opts, vm.Trace(os.Stderr))
	}
	m, err := vm.New(prog, opts...)
	if err != nil {
		return err
	}

	res, err := m.Run()
	fmt.Print(res.Report())
	return err
}
