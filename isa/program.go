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

package isa

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Instruction is one machine instruction. The opcode determines the shape,
// and the shape determines which operand fields are meaningful; the
// remaining fields stay zero and are not encoded.
type Instruction struct {
	Opcode Opcode
	Rd     Register // A, B, C
	Rs     Register // B, C
	Rs1    Register // A, E
	Rs2    Register // A, E
	Imm    int64    // B, D, E
}

// String renders the instruction in assembler syntax.
func (in Instruction) String() string {
	switch in.Opcode.Shape() {
	case ShapeA:
		return in.Opcode.String() + " " + in.Rd.String() + ", " + in.Rs1.String() + ", " + in.Rs2.String()
	case ShapeB:
		return in.Opcode.String() + " " + in.Rd.String() + ", " + in.Rs.String() + ", " + strconv.FormatInt(in.Imm, 10)
	case ShapeC:
		return in.Opcode.String() + " " + in.Rd.String() + ", " + in.Rs.String()
	case ShapeD:
		return in.Opcode.String() + " " + strconv.FormatInt(in.Imm, 10)
	case ShapeE:
		return in.Opcode.String() + " " + in.Rs1.String() + ", " + in.Rs2.String() + ", " + strconv.FormatInt(in.Imm, 10)
	default:
		return in.Opcode.String()
	}
}

// MarshalJSON encodes the instruction with a fixed field order per shape so
// that artifacts are byte-stable across runs.
func (in Instruction) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"opcode":"`)
	b.WriteString(in.Opcode.String())
	b.WriteByte('"')
	switch in.Opcode.Shape() {
	case ShapeA:
		writeRegField(&b, "rd", in.Rd)
		writeRegField(&b, "rs1", in.Rs1)
		writeRegField(&b, "rs2", in.Rs2)
	case ShapeB:
		writeRegField(&b, "rd", in.Rd)
		writeRegField(&b, "rs", in.Rs)
		writeImmField(&b, in.Imm)
	case ShapeC:
		writeRegField(&b, "rd", in.Rd)
		writeRegField(&b, "rs", in.Rs)
	case ShapeD:
		writeImmField(&b, in.Imm)
	case ShapeE:
		writeRegField(&b, "rs1", in.Rs1)
		writeRegField(&b, "rs2", in.Rs2)
		writeImmField(&b, in.Imm)
	case ShapeF:
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func writeRegField(b *bytes.Buffer, name string, r Register) {
	b.WriteString(`,"`)
	b.WriteString(name)
	b.WriteString(`":"`)
	b.WriteString(r.String())
	b.WriteByte('"')
}

func writeImmField(b *bytes.Buffer, imm int64) {
	b.WriteString(`,"imm":`)
	b.WriteString(strconv.FormatInt(imm, 10))
}

// shapeFields lists the operand field names each shape carries.
var shapeFields = map[Shape][]string{
	ShapeA: {"rd", "rs1", "rs2"},
	ShapeB: {"rd", "rs", "imm"},
	ShapeC: {"rd", "rs"},
	ShapeD: {"imm"},
	ShapeE: {"rs1", "rs2", "imm"},
	ShapeF: {},
}

// UnmarshalJSON decodes one instruction. The shape comes from the opcode;
// the fields present must match it exactly.
func (in *Instruction) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "instruction decode failed")
	}
	var name string
	if err := json.Unmarshal(raw["opcode"], &name); err != nil {
		return errors.Wrap(err, "missing or malformed opcode")
	}
	op, ok := ParseOpcode(name)
	if !ok {
		return errors.Errorf("unknown opcode %q", name)
	}
	fields := shapeFields[op.Shape()]
	if len(raw) != len(fields)+1 {
		return errors.Errorf("%s: expected fields %v, got %d fields", name, fields, len(raw)-1)
	}
	*in = Instruction{Opcode: op}
	for _, f := range fields {
		msg, ok := raw[f]
		if !ok {
			return errors.Errorf("%s: missing field %q", name, f)
		}
		if f == "imm" {
			if err := json.Unmarshal(msg, &in.Imm); err != nil {
				return errors.Wrapf(err, "%s: malformed imm", name)
			}
			continue
		}
		var rn string
		if err := json.Unmarshal(msg, &rn); err != nil {
			return errors.Wrapf(err, "%s: malformed register field %q", name, f)
		}
		r, ok := ParseRegister(rn)
		if !ok {
			return errors.Errorf("%s: unknown register %q", name, rn)
		}
		switch f {
		case "rd":
			in.Rd = r
		case "rs":
			in.Rs = r
		case "rs1":
			in.Rs1 = r
		case "rs2":
			in.Rs2 = r
		}
	}
	return nil
}

// Program is the machine-code artifact emitted by the translator and loaded
// by the machine. Start is the code-relative address of the _start label.
type Program struct {
	Start int           `json:"start"`
	Code  []Instruction `json:"code"`
}

// Write encodes the program to w. The encoding is deterministic: assembling
// the same source twice yields byte-identical artifacts.
func (p *Program) Write(w io.Writer) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "program encode failed")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return errors.Wrap(err, "program write failed")
}

// Read decodes a program artifact from r.
func Read(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "program read failed")
	}
	var raw struct {
		Start *int              `json:"start"`
		Code  []json.RawMessage `json:"code"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "program decode failed")
	}
	if raw.Start == nil {
		return nil, errors.New("program has no start address")
	}
	p := &Program{Start: *raw.Start, Code: make([]Instruction, len(raw.Code))}
	for i, msg := range raw.Code {
		if err := json.Unmarshal(msg, &p.Code[i]); err != nil {
			return nil, errors.Wrapf(err, "code cell %d", i)
		}
	}
	return p, nil
}
