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

// Package isa defines the instruction set shared by the translator and the
// machine: opcodes, registers, instruction shapes and the machine-code
// artifact with its on-disk encoding.
//
// Supported opcodes:
//
//	opcode	shape	operands	description
//	ld	C	rd, rs		rd <- mem[rs]
//	st	C	rd, rs		rd -> mem[rs]
//	jmp	D	imm		pc <- pc + imm
//	beq	E	rs1, rs2, imm	if rs1 == rs2: pc <- pc + imm
//	add	A	rd, rs1, rs2	rd <- rs1 + rs2
//	addi	B	rd, rs, imm	rd <- rs + imm
//	sub	A	rd, rs1, rs2	rd <- rs1 - rs2
//	subi	B	rd, rs, imm	rd <- rs - imm
//	mul	A	rd, rs1, rs2	rd <- rs1 * rs2
//	div	A	rd, rs1, rs2	rd <- rs1 // rs2
//	rem	A	rd, rs1, rs2	rd <- rs1 % rs2
//	iret	F	-		return from interrupt handler
//	hlt	F	-		stop the machine
package isa

import "strconv"

// Opcode identifies one of the thirteen machine instructions.
type Opcode uint8

// The closed opcode set.
const (
	OpLd Opcode = iota
	OpSt
	OpJmp
	OpBeq
	OpAdd
	OpAddi
	OpSub
	OpSubi
	OpMul
	OpDiv
	OpRem
	OpIret
	OpHlt
)

var opcodeNames = [...]string{
	"ld",
	"st",
	"jmp",
	"beq",
	"add",
	"addi",
	"sub",
	"subi",
	"mul",
	"div",
	"rem",
	"iret",
	"hlt",
}

var opcodeIndex = make(map[string]Opcode, len(opcodeNames))

func init() {
	for i, n := range opcodeNames {
		opcodeIndex[n] = Opcode(i)
	}
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// ParseOpcode resolves a mnemonic. The second return value reports whether
// the mnemonic belongs to the opcode set.
func ParseOpcode(s string) (Opcode, bool) {
	op, ok := opcodeIndex[s]
	return op, ok
}

// Shape describes an instruction's operand layout.
type Shape uint8

// The six instruction shapes.
const (
	ShapeA Shape = iota // rd, rs1, rs2
	ShapeB              // rd, rs, imm
	ShapeC              // rd, rs
	ShapeD              // imm
	ShapeE              // rs1, rs2, imm
	ShapeF              // no operands
)

func (s Shape) String() string {
	if s <= ShapeF {
		return string('a' + byte(s))
	}
	return "shape(" + strconv.Itoa(int(s)) + ")"
}

// Shape returns the operand layout of the opcode. Every opcode belongs to
// exactly one shape.
func (op Opcode) Shape() Shape {
	switch op {
	case OpLd, OpSt:
		return ShapeC
	case OpJmp:
		return ShapeD
	case OpBeq:
		return ShapeE
	case OpAddi, OpSubi:
		return ShapeB
	case OpIret, OpHlt:
		return ShapeF
	default: // add, sub, mul, div, rem
		return ShapeA
	}
}

// Register identifies a register of the data path.
type Register uint8

// The register file. R0 is hard-wired to zero; PC and SP are initialized by
// the machine.
const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	PC
	SP

	// RegisterCount is the size of the register file.
	RegisterCount
)

var registerNames = [...]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7", "pc", "sp",
}

var registerIndex = make(map[string]Register, len(registerNames))

func init() {
	for i, n := range registerNames {
		registerIndex[n] = Register(i)
	}
}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return "reg(" + strconv.Itoa(int(r)) + ")"
}

// ParseRegister resolves a register name. The second return value reports
// whether the name belongs to the register set.
func ParseRegister(s string) (Register, bool) {
	r, ok := registerIndex[s]
	return r, ok
}
