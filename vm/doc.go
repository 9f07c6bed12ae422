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

// Package vm simulates the register-memory machine executing the artifacts
// produced by the asm package.
//
// The machine is a control unit over a passive data path: a register file
// (r0..r7, pc, sp, with r0 hard-wired to zero), an ALU with two operand
// latches and a zero flag, a dense cell memory and two one-way I/O
// buffers. Time is the abstract tick counter: every data-path latch costs
// one tick, so an arithmetic instruction costs three (fetch, result latch,
// PC increment), a taken branch three, a jump two, hlt one.
//
// Memory map (N cells, at least 100):
//
//	0	interrupt vector, installed once before the run
//	1..19	scratch and stack region
//	20..	program code, loaded contiguously
//	N-2	input-mapped cell: a load consumes the input buffer
//	N-1	output-mapped cell: a store appends to the output buffer
//
// The stack descends from N-3.
//
// Input is interrupt-driven. The run is parameterized by a schedule of
// (tick, character) entries; at each fetch, if the machine is not already
// in a handler and an entry is due, the latest due entry is delivered: PC
// is pushed, the vector at cell 0 becomes the new PC, the character is
// placed in the input buffer and every earlier due entry is dropped.
// Handlers return with iret. Interrupts never nest.
//
// A minimal run:
//
//	prog, err := asm.Assemble("prog.asm", src)
//	...
//	m, err := vm.New(prog, vm.WithSchedule(sched), vm.Limit(10000))
//	...
//	res, err := m.Run()
//	fmt.Print(res.Report())
//
// Run reports the flushed output buffer and the instruction and tick
// counters; on an execution fault the partial result comes back with the
// error.
package vm
