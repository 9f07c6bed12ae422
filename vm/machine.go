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
	"io"

	"github.com/pkg/errors"

	"github.com/slvptr/processor-modeling/isa"
)

// Memory geometry.
const (
	// ProgramBase is the first code cell; code is loaded contiguously
	// from here.
	ProgramBase = 20

	minMemSize = 100
)

// Defaults.
const (
	defaultMemSize = 100
	defaultLimit   = 10000
)

// Option configures an Instance.
type Option func(*Instance) error

// MemSize sets the memory size in cells. The minimum is 100.
func MemSize(n int) Option {
	return func(i *Instance) error {
		if n < minMemSize {
			return errors.Errorf("memory size %d: must be at least %d cells", n, minMemSize)
		}
		i.memSize = n
		return nil
	}
}

// Limit sets the maximum number of instructions a run may execute.
func Limit(n int) Option {
	return func(i *Instance) error {
		if n <= 0 {
			return errors.Errorf("instruction limit %d: must be positive", n)
		}
		i.limit = n
		return nil
	}
}

// WithSchedule sets the interrupt schedule driving the input device.
func WithSchedule(s Schedule) Option {
	return func(i *Instance) error {
		i.sched = s
		return nil
	}
}

// Trace sets the sink receiving one structured trace line per executed
// instruction; the final hlt is not traced. Nil disables tracing.
func Trace(w io.Writer) Option {
	return func(i *Instance) error {
		i.trace = w
		return nil
	}
}

// Instance is one simulated machine: a program, a memory image geometry
// and an input schedule. Instances are single-threaded; Run owns every
// resource until it returns.
type Instance struct {
	prog    *isa.Program
	memSize int
	limit   int
	sched   Schedule
	trace   io.Writer
}

// New creates a machine instance for the given program.
func New(p *isa.Program, opts ...Option) (*Instance, error) {
	if p == nil {
		return nil, errors.New("nil program")
	}
	i := &Instance{prog: p, memSize: defaultMemSize, limit: defaultLimit}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	return i, nil
}

// Result carries what a run produced: the flushed output buffer and the
// final counters.
type Result struct {
	Output string
	Instrs int
	Ticks  uint64
}

// Report renders the result in the machine CLI's output format.
func (r Result) Report() string {
	return fmt.Sprintf("output: %s\ninstr: %d  ticks: %d\n", r.Output, r.Instrs, r.Ticks)
}

// Run initializes the memory image, installs the interrupt vector, loads
// the code at ProgramBase and executes until hlt, an execution error or
// the instruction limit. On error the Result still carries the output and
// counters accumulated so far.
func (i *Instance) Run() (Result, error) {
	if ProgramBase+len(i.prog.Code) > i.memSize-2 {
		return Result{}, errors.Errorf("program of %d instructions does not fit in %d cells", len(i.prog.Code), i.memSize)
	}
	mem := make([]Cell, i.memSize)
	mem[0] = Cell{Datum: ProgramBase} // interrupt vector
	for k := range i.prog.Code {
		mem[ProgramBase+k] = Cell{Instr: &i.prog.Code[k]}
	}

	d := newDataPath(mem)
	d.setReg(isa.PC, int32(ProgramBase+i.prog.Start))
	c := newControlUnit(d, append(Schedule(nil), i.sched...))

	count := 0
	for {
		if count >= i.limit {
			return Result{d.outputString(), count, c.ticks}, errors.Wrapf(ErrLimit, "%d instructions", i.limit)
		}
		err := c.step()
		if err == errHalt {
			count++
			return Result{d.outputString(), count, c.ticks}, nil
		}
		if err != nil {
			return Result{d.outputString(), count, c.ticks}, err
		}
		count++
		if i.trace != nil {
			fmt.Fprintln(i.trace, c.status())
		}
	}
}
