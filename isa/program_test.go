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

package isa_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slvptr/processor-modeling/isa"
)

// one instruction per shape
var sample = []isa.Instruction{
	{Opcode: isa.OpIret},
	{Opcode: isa.OpAddi, Rd: isa.R1, Rs: isa.R0, Imm: 99},
	{Opcode: isa.OpSt, Rd: isa.R2, Rs: isa.R1},
	{Opcode: isa.OpAdd, Rd: isa.R3, Rs1: isa.R1, Rs2: isa.R2},
	{Opcode: isa.OpBeq, Rs1: isa.R3, Rs2: isa.R0, Imm: -4},
	{Opcode: isa.OpJmp, Imm: 2},
	{Opcode: isa.OpHlt},
}

func TestProgramGolden(t *testing.T) {
	p := &isa.Program{Start: 1, Code: sample}
	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))

	want := `{"start":1,"code":[` +
		`{"opcode":"iret"},` +
		`{"opcode":"addi","rd":"r1","rs":"r0","imm":99},` +
		`{"opcode":"st","rd":"r2","rs":"r1"},` +
		`{"opcode":"add","rd":"r3","rs1":"r1","rs2":"r2"},` +
		`{"opcode":"beq","rs1":"r3","rs2":"r0","imm":-4},` +
		`{"opcode":"jmp","imm":2},` +
		`{"opcode":"hlt"}]}` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestProgramRoundTrip(t *testing.T) {
	p := &isa.Program{Start: 1, Code: sample}
	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))

	got, err := isa.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	// and the re-encoding is byte-identical
	var buf2 bytes.Buffer
	require.NoError(t, got.Write(&buf2))
	var buf3 bytes.Buffer
	require.NoError(t, p.Write(&buf3))
	assert.Equal(t, buf3.String(), buf2.String())
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"no_start", `{"code":[{"opcode":"hlt"}]}`},
		{"unknown_opcode", `{"start":0,"code":[{"opcode":"nop"}]}`},
		{"unknown_register", `{"start":0,"code":[{"opcode":"ld","rd":"r9","rs":"r1"}]}`},
		{"missing_field", `{"start":0,"code":[{"opcode":"add","rd":"r1","rs1":"r2"}]}`},
		{"extra_field", `{"start":0,"code":[{"opcode":"hlt","imm":1}]}`},
		{"wrong_field_set", `{"start":0,"code":[{"opcode":"add","rd":"r1","rs":"r2","imm":3}]}`},
		{"imm_string", `{"start":0,"code":[{"opcode":"jmp","imm":"2"}]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := isa.Read(strings.NewReader(c.data))
			assert.Error(t, err)
		})
	}
}
