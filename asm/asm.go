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
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/slvptr/processor-modeling/isa"
)

const maxErrors = 10

// Reserved labels.
const (
	startLabel = "_start" // required entry point
	intLabel   = "_int"   // optional interrupt handler
)

// ErrAsm encapsulates errors generated by the assembler.
type ErrAsm []struct {
	Pos Position
	Msg string
}

func (e ErrAsm) Error() string {
	l := make([]string, 0, len(e))
	for _, err := range e {
		l = append(l, fmt.Sprintf("%s: %s", err.Pos, err.Msg))
	}
	return strings.Join(l, "\n")
}

// helper to build ErrAsm items.
func parseError(pos Position, msg string) struct {
	Pos Position
	Msg string
} {
	return struct {
		Pos Position
		Msg string
	}{pos, msg}
}

// Assemble translates assembly read from the supplied io.Reader and returns
// the resulting program artifact and error if any.
//
// The name parameter is used only in error messages to name the source of
// the error. If the io.Reader is a file, name should be the file name.
//
// Assembly is two-pass: the first pass assigns every label its
// code-relative address, the second resolves branch and jump targets to
// PC-relative immediates measured at the use site. If an interrupt handler
// (_int) is defined, its group is first swapped with the first group, so the
// handler starts at the lowest code address and the runtime can install the
// interrupt vector without a relocation step. The group that was first takes
// the handler's old place. Except for a failure to read r, a non-nil error
// can safely be cast to an ErrAsm value holding up to 10 entries.
func Assemble(name string, r io.Reader) (*isa.Program, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read source failed")
	}
	groups, errs := tokenize(name, string(src))
	if len(errs) > 0 {
		return nil, errs
	}

	intIdx := -1
	startFound := false
	for i, g := range groups {
		switch g.label {
		case intLabel + ":":
			if intIdx < 0 {
				intIdx = i
			}
		case startLabel + ":":
			startFound = true
		}
	}
	if !startFound {
		return nil, ErrAsm{parseError(Position{Filename: name, Line: 1, Column: 1}, "there is no _start label")}
	}
	if intIdx > 0 {
		groups[0], groups[intIdx] = groups[intIdx], groups[0]
	}

	// Pass 1: label addressing.
	addr := make(map[string]int, len(groups))
	pc := 0
	for _, g := range groups {
		label := strings.TrimSuffix(g.label, ":")
		if _, ok := addr[label]; ok {
			errs = append(errs, parseError(g.pos, "label "+label+" redefined"))
			continue
		}
		addr[label] = pc
		pc += len(g.stmts)
	}

	// Pass 2: resolution and emission.
	code := make([]isa.Instruction, 0, pc)
	pc = 0
	for _, g := range groups {
		for _, st := range g.stmts {
			in := st.instr
			if st.label != "" {
				target, ok := addr[st.label]
				if !ok {
					errs = append(errs, parseError(st.pos, "undefined label "+st.label))
					pc++
					continue
				}
				in.Imm = int64(target - pc)
			}
			code = append(code, in)
			pc++
		}
	}
	if len(errs) > 0 {
		if len(errs) > maxErrors {
			errs = errs[:maxErrors]
		}
		return nil, errs
	}
	return &isa.Program{Start: addr[startLabel], Code: code}, nil
}
