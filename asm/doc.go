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

// Package asm translates symbolic assembly into the machine-code artifact
// executed by the vm package.
//
// Grammar:
//
//	program  := (gap? label gap? instruction* gap?)*
//	label    := word ':'
//	word     := [A-Za-z0-9_]+
//	instr    := mnemonic sp+ operands?
//	operands := reg ', ' reg (', ' (reg | word | digits))?
//	         |  word
//
// The delimiter between operands is exactly the two characters ", ".
// Whitespace between a label and its instructions, and between
// instructions, may be any run of space, tab, CR or LF, so a group may be
// laid out one instruction per line or all on one line.
//
// Every instruction belongs to the label group preceding it; a source that
// opens with a bare instruction is rejected. Labels are plain words, so
// purely numeric labels are possible (and are what a numeric third operand
// of beq refers to).
//
// Reserved labels:
//
//	_start	required; the artifact's entry point
//	_int	optional; the interrupt handler
//
// When _int is present its group is swapped to the front of the code so
// the handler occupies the lowest code-relative addresses; the simulator
// points the interrupt vector at the fixed program base.
//
// Branch and jump operands are labels and are encoded as PC-relative
// immediates, target minus site. A complete program:
//
//	_start:
//		addi r1, r0, 99
//		addi r2, r0, 104
//		st r2, r1
//		hlt
//
// stores 'h' into the output-mapped cell and halts.
package asm
