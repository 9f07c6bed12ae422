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
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/slvptr/processor-modeling/isa"
)

// controlUnit drives the data path, one instruction per step. Every
// data-path latch costs one tick; the tick counter never rolls back.
type controlUnit struct {
	dp            *dataPath
	sched         Schedule
	isInterrupted bool
	lastInstr     *isa.Instruction
	instrCount    uint64
	ticks         uint64
}

func newControlUnit(dp *dataPath, sched Schedule) *controlUnit {
	return &controlUnit{dp: dp, sched: sched}
}

func (c *controlUnit) tick() { c.ticks++ }

// bound folds n into the signed 32-bit domain. A value above the max becomes
// min + (n - max), so max+1 folds to min+1. A value below the min becomes
// max - (n - min), which lies above the max and wraps on the int32
// conversion, so min-1 folds to min. Far outside the representable range
// the fold is not meaningful and callers must not rely on it.
func bound(n int64) int32 {
	const (
		max = int64(math.MaxInt32)
		min = int64(math.MinInt32)
	)
	switch {
	case n > max:
		return int32(min + (n - max))
	case n < min:
		return int32(max - (n - min))
	}
	return int32(n)
}

// incPC advances PC by one through the ALU. One tick.
func (c *controlUnit) incPC() error {
	if err := c.dp.latchALU(c.dp.reg(isa.PC), 1, aluAdd); err != nil {
		return err
	}
	c.dp.latchResultToRegister(isa.PC)
	c.tick()
	return nil
}

// pushPC decrements SP and stores PC at the new top. Two ticks.
func (c *controlUnit) pushPC() error {
	if err := c.dp.latchALU(c.dp.reg(isa.SP), 1, aluSub); err != nil {
		return err
	}
	c.dp.latchResultToRegister(isa.SP)
	c.tick()
	if err := c.dp.latchALU(c.dp.reg(isa.SP), 0, aluAdd); err != nil {
		return err
	}
	c.dp.latchResultToMemAddr()
	if err := c.dp.memWrite(isa.PC); err != nil {
		return err
	}
	c.tick()
	return nil
}

// popPC restores PC from the stack top, then decrements SP again: the
// stack region is consumed monotonically, never unwound. Two ticks.
func (c *controlUnit) popPC() error {
	sp := c.dp.reg(isa.SP)
	if err := c.dp.latchALU(sp, 0, aluAdd); err != nil {
		return err
	}
	c.dp.latchResultToMemAddr()
	if err := c.dp.memRead(isa.PC); err != nil {
		return err
	}
	c.tick()
	if err := c.dp.latchALU(sp, 1, aluSub); err != nil {
		return err
	}
	c.dp.latchResultToRegister(isa.SP)
	c.tick()
	return nil
}

// aluSelect maps an opcode to the operation driving the ALU. Loads, stores
// and jumps ride on add (address and target arithmetic); beq rides on sub
// so the zero flag carries the comparison.
func aluSelect(op isa.Opcode) aluOp {
	switch op {
	case isa.OpSub, isa.OpSubi, isa.OpBeq:
		return aluSub
	case isa.OpMul:
		return aluMul
	case isa.OpDiv:
		return aluDiv
	case isa.OpRem:
		return aluRem
	default: // add, addi, ld, st, jmp
		return aluAdd
	}
}

// step runs one full execution cycle: fetch, interrupt admission, decode
// and execute. It returns errHalt on hlt and an execution error on any
// fault; otherwise the machine is left ready for the next cycle.
func (c *controlUnit) step() error {
	d := c.dp

	// Fetch: mem_addr <- PC + 0 through the ALU.
	if err := d.latchALU(d.reg(isa.PC), 0, aluAdd); err != nil {
		return err
	}
	d.latchResultToMemAddr()
	c.tick()
	cell, err := d.cellAt(d.memAddr)
	if err != nil {
		return err
	}
	if cell.Instr == nil {
		return errors.Wrapf(ErrDataFetch, "address %d", d.memAddr)
	}
	in := cell.Instr
	c.lastInstr = in
	c.instrCount++

	// Interrupt admission preempts the fetched instruction; it will be
	// re-fetched after iret. Nested interrupts are not admitted.
	if !c.isInterrupted {
		if ev, ok := c.sched.take(c.ticks); ok {
			if err := c.pushPC(); err != nil {
				return err
			}
			d.setReg(isa.PC, d.mem[0].Datum)
			d.inputBuf = int32(ev.Char)
			c.isInterrupted = true
			c.tick()
			return nil
		}
	}

	switch in.Opcode {
	case isa.OpHlt:
		return errHalt
	case isa.OpIret:
		if !c.isInterrupted {
			return errors.WithStack(ErrSpuriousIret)
		}
		c.isInterrupted = false
		return c.popPC()
	}

	switch in.Opcode.Shape() {
	case isa.ShapeA, isa.ShapeB, isa.ShapeC:
		if in.Rd == isa.R0 {
			return errors.Wrapf(ErrZeroRegister, "%s", in)
		}
	}

	var op1, op2 int32
	switch in.Opcode.Shape() {
	case isa.ShapeA, isa.ShapeE:
		op1, op2 = d.reg(in.Rs1), d.reg(in.Rs2)
	case isa.ShapeB:
		op1, op2 = d.reg(in.Rs), bound(in.Imm)
	case isa.ShapeC:
		op1, op2 = d.reg(in.Rs), 0
	case isa.ShapeD:
		op1, op2 = bound(in.Imm), d.reg(isa.PC)
	}
	if err := d.latchALU(op1, op2, aluSelect(in.Opcode)); err != nil {
		return errors.Wrapf(err, "%s", in)
	}

	switch in.Opcode {
	case isa.OpLd:
		d.latchResultToMemAddr()
		if d.memAddr == d.inAddr {
			err = d.ioGet(in.Rd)
		} else {
			err = d.memRead(in.Rd)
		}
		if err != nil {
			return errors.Wrapf(err, "%s", in)
		}
		c.tick()
		return c.incPC()
	case isa.OpSt:
		d.latchResultToMemAddr()
		if d.memAddr == d.outAddr {
			d.ioPut(in.Rd)
		} else if err := d.memWrite(in.Rd); err != nil {
			return errors.Wrapf(err, "%s", in)
		}
		c.tick()
		return c.incPC()
	case isa.OpJmp:
		d.latchResultToRegister(isa.PC)
		c.tick()
		return nil
	case isa.OpBeq:
		if !d.alu.zf {
			return c.incPC()
		}
		c.tick()
		if err := d.latchALU(d.reg(isa.PC), bound(in.Imm), aluAdd); err != nil {
			return err
		}
		d.latchResultToRegister(isa.PC)
		c.tick()
		return nil
	default: // register arithmetic: add, addi, sub, subi, mul, div, rem
		d.latchResultToRegister(in.Rd)
		c.tick()
		return c.incPC()
	}
}

// status renders one execution-trace line.
func (c *controlUnit) status() string {
	last := "-"
	if c.lastInstr != nil {
		last = c.lastInstr.String()
	}
	return fmt.Sprintf("is_interrupted: %t | PC: %d | instr_counter: %d | tick: %d | last_instr: %s",
		c.isInterrupted, c.dp.reg(isa.PC), c.instrCount, c.ticks, last)
}
