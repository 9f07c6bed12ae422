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

package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slvptr/processor-modeling/isa"
)

func TestScanWord(t *testing.T) {
	cases := []struct {
		in   string
		word string
		n    int
	}{
		{"loop: hlt", "loop", 4},
		{"_start:", "_start", 6},
		{"a1_b2 rest", "a1_b2", 5},
		{"42,", "42", 2},
		{", nope", "", 0},
		{"", "", 0},
	}
	for _, c := range cases {
		word, n := scanWord(c.in)
		assert.Equal(t, c.word, word, c.in)
		assert.Equal(t, c.n, n, c.in)
	}
}

func TestScanLabel(t *testing.T) {
	label, n := scanLabel("loop: hlt")
	assert.Equal(t, "loop:", label)
	assert.Equal(t, 5, n)

	_, n = scanLabel("loop hlt")
	assert.Zero(t, n)

	// a bare colon is not a label
	_, n = scanLabel(": hlt")
	assert.Zero(t, n)
}

func TestScanDelimiter(t *testing.T) {
	assert.Equal(t, 2, scanDelimiter(", r1"))
	assert.Zero(t, scanDelimiter(",r1"))
	assert.Zero(t, scanDelimiter(" r1"))
	assert.Zero(t, scanDelimiter(","))
}

func TestScanRegister(t *testing.T) {
	r, n := scanRegister("r1, r2")
	require.Equal(t, 2, n)
	assert.Equal(t, isa.R1, r)

	r, n = scanRegister("sp\n")
	require.Equal(t, 2, n)
	assert.Equal(t, isa.SP, r)

	_, n = scanRegister("r9, r2")
	assert.Zero(t, n)
	_, n = scanRegister("x1")
	assert.Zero(t, n)
}

func TestParseStatement(t *testing.T) {
	cases := []struct {
		in    string
		instr isa.Instruction
		label string
	}{
		{"add r1, r2, r3\n", isa.Instruction{Opcode: isa.OpAdd, Rd: isa.R1, Rs1: isa.R2, Rs2: isa.R3}, ""},
		{"addi r1, r0, 99\n", isa.Instruction{Opcode: isa.OpAddi, Rd: isa.R1, Rs: isa.R0, Imm: 99}, ""},
		{"ld r3, r1\n", isa.Instruction{Opcode: isa.OpLd, Rd: isa.R3, Rs: isa.R1}, ""},
		{"st r2, r1\n", isa.Instruction{Opcode: isa.OpSt, Rd: isa.R2, Rs: isa.R1}, ""},
		{"jmp loop\n", isa.Instruction{Opcode: isa.OpJmp}, "loop"},
		{"beq r1, r2, done\n", isa.Instruction{Opcode: isa.OpBeq, Rs1: isa.R1, Rs2: isa.R2}, "done"},
		{"beq r1, r2, 5\n", isa.Instruction{Opcode: isa.OpBeq, Rs1: isa.R1, Rs2: isa.R2}, "5"},
		{"iret\n", isa.Instruction{Opcode: isa.OpIret}, ""},
		{"hlt\n", isa.Instruction{Opcode: isa.OpHlt}, ""},
	}
	for _, c := range cases {
		st, n, msg := parseStatement(c.in)
		require.Empty(t, msg, c.in)
		require.Positive(t, n, c.in)
		assert.Equal(t, c.instr, st.instr, c.in)
		assert.Equal(t, c.label, st.label, c.in)
	}
}

func TestParseStatementErrors(t *testing.T) {
	cases := []struct {
		in  string
		msg string
	}{
		{"halt\n", "unknown mnemonic"},
		{"add r1, r2\n", "add expects rd, rs1, rs2"},
		{"ld r1, r2, r3\n", "ld expects rd, rs"},
		{"addi r1, r2, foo\n", "immediate must be a number"},
		{"add r1,r2, r3\n", "expected ', '"},
		{"add r1, r9, r3\n", "expected register"},
		{"jmp r1, r2\n", "jmp expects a label"},
		{"addi r1, r2\n", "addi expects rd, rs, imm"},
		{"beq r1, r2\n", "beq expects rs1, rs2, label"},
		{"ld r1\n", "expected ', '"},
	}
	for _, c := range cases {
		_, _, msg := parseStatement(c.in)
		require.NotEmpty(t, msg, c.in)
		assert.Contains(t, msg, c.msg, c.in)
	}
}

func TestTokenize(t *testing.T) {
	src := "_start:\n\taddi r1, r0, 99\n\tst r2, r1\nloop:\n\tjmp loop\n"
	groups, errs := tokenize("test", src)
	require.Empty(t, errs)
	require.Len(t, groups, 2)

	assert.Equal(t, "_start:", groups[0].label)
	require.Len(t, groups[0].stmts, 2)
	assert.Equal(t, isa.OpAddi, groups[0].stmts[0].instr.Opcode)
	assert.Equal(t, isa.OpSt, groups[0].stmts[1].instr.Opcode)

	assert.Equal(t, "loop:", groups[1].label)
	require.Len(t, groups[1].stmts, 1)
	assert.Equal(t, "loop", groups[1].stmts[0].label)
}

func TestTokenizeOneLine(t *testing.T) {
	// a group may sit entirely on one line
	groups, errs := tokenize("test", "_start: addi r1, r0, 1 hlt")
	require.Empty(t, errs)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].stmts, 2)

	// no-operand instructions don't swallow what follows them
	groups, errs = tokenize("test", "_int: iret hlt")
	require.Empty(t, errs)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].stmts, 2)
	assert.Equal(t, isa.OpIret, groups[0].stmts[0].instr.Opcode)
	assert.Equal(t, isa.OpHlt, groups[0].stmts[1].instr.Opcode)
}

func TestTokenizeErrors(t *testing.T) {
	_, errs := tokenize("test", "addi r1, r0, 1\n_start:\n\thlt\n")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "instruction before any label")
	assert.Equal(t, 1, errs[0].Pos.Line)

	_, errs = tokenize("test", "_start:\n\thalt\n")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "unknown mnemonic")
	assert.Equal(t, 2, errs[0].Pos.Line)

	_, errs = tokenize("test", "_start:\n\t; comment\n\thlt\n")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "unexpected character")
}

func TestTokenizePositions(t *testing.T) {
	groups, errs := tokenize("f.asm", "_start:\n\taddi r1, r0, 1\n")
	require.Empty(t, errs)
	require.Len(t, groups, 1)
	assert.Equal(t, Position{Filename: "f.asm", Line: 1, Column: 1}, groups[0].pos)
	require.Len(t, groups[0].stmts, 1)
	assert.Equal(t, Position{Filename: "f.asm", Line: 2, Column: 2}, groups[0].stmts[0].pos)
	assert.Equal(t, "f.asm:2:2", groups[0].stmts[0].pos.String())
}
