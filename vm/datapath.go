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

package vm

import (
	"github.com/pkg/errors"

	"github.com/slvptr/processor-modeling/isa"
)

// Cell is one memory word: either a signed 32-bit datum or an instruction.
// A cell holds an instruction iff Instr is non-nil.
type Cell struct {
	Datum int32
	Instr *isa.Instruction
}

// dataPath is the passive half of the machine: the register file, main
// memory, the ALU with its latches, the memory-address latch and the two
// I/O buffers. The two top memory addresses are mapped to I/O: a load from
// len(mem)-2 consumes the input buffer, a store to len(mem)-1 appends to
// the output buffer.
//
// Memory layout:
//
//	0		interrupt vector
//	1 .. 19		scratch / stack region
//	20 ..		program code
//	N-3 ..		stack top (grows down)
//	N-2		input-mapped cell
//	N-1		output-mapped cell
type dataPath struct {
	regs    [isa.RegisterCount]int32
	mem     []Cell
	alu     alu
	memAddr int32

	inputBuf int32 // pending character, -1 when empty
	output   []rune

	inAddr  int32
	outAddr int32
}

func newDataPath(mem []Cell) *dataPath {
	d := &dataPath{
		mem:      mem,
		inputBuf: -1,
		inAddr:   int32(len(mem) - 2),
		outAddr:  int32(len(mem) - 1),
	}
	d.regs[isa.SP] = int32(len(mem) - 3)
	return d
}

func (d *dataPath) reg(r isa.Register) int32 { return d.regs[r] }

func (d *dataPath) setReg(r isa.Register, v int32) { d.regs[r] = v }

// latchALU loads the operand latches and fires the ALU synchronously.
func (d *dataPath) latchALU(op1, op2 int32, op aluOp) error {
	d.alu.op1 = op1
	d.alu.op2 = op2
	return d.alu.execute(op)
}

func (d *dataPath) latchResultToRegister(r isa.Register) { d.regs[r] = d.alu.result }

func (d *dataPath) latchResultToMemAddr() { d.memAddr = d.alu.result }

func (d *dataPath) cellAt(addr int32) (*Cell, error) {
	if addr < 0 || int(addr) >= len(d.mem) {
		return nil, errors.Wrapf(ErrMemRange, "address %d of %d cells", addr, len(d.mem))
	}
	return &d.mem[addr], nil
}

// memRead copies memory[memAddr] into the register. Code cells are not
// readable as data.
func (d *dataPath) memRead(r isa.Register) error {
	c, err := d.cellAt(d.memAddr)
	if err != nil {
		return err
	}
	if c.Instr != nil {
		return errors.Wrapf(ErrCodeRead, "address %d", d.memAddr)
	}
	d.regs[r] = c.Datum
	return nil
}

// memWrite stores the register into memory[memAddr].
func (d *dataPath) memWrite(r isa.Register) error {
	c, err := d.cellAt(d.memAddr)
	if err != nil {
		return err
	}
	*c = Cell{Datum: d.regs[r]}
	return nil
}

// ioGet consumes the pending input character into the register.
func (d *dataPath) ioGet(r isa.Register) error {
	if d.inputBuf == -1 {
		return errors.WithStack(ErrOutOfBuffer)
	}
	d.regs[r] = d.inputBuf
	d.inputBuf = -1
	return nil
}

// ioPut appends the register's code point to the output buffer.
func (d *dataPath) ioPut(r isa.Register) {
	d.output = append(d.output, rune(d.regs[r]))
}

// outputString returns everything written to the output buffer so far.
func (d *dataPath) outputString() string { return string(d.output) }
