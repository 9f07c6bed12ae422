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

import "github.com/pkg/errors"

// Execution errors. Any of them terminates the run; the output and the
// counters accumulated so far remain available on the returned Result.
var (
	// ErrOutOfBuffer is returned when a load from the input-mapped cell
	// finds no pending character.
	ErrOutOfBuffer = errors.New("input buffer is empty")

	// ErrZeroRegister is returned when an instruction names r0 in its rd
	// field. This includes st, whose rd is the register being stored.
	ErrZeroRegister = errors.New("r0 is not writable")

	// ErrCodeRead is returned when a data read hits a cell holding an
	// instruction.
	ErrCodeRead = errors.New("code cell read as data")

	// ErrDataFetch is returned when instruction fetch hits a cell holding
	// a datum.
	ErrDataFetch = errors.New("data cell fetched as instruction")

	// ErrAluOperation is returned for an operation outside the ALU's
	// closed set. Unreachable from well-formed code.
	ErrAluOperation = errors.New("unknown alu operation")

	// ErrDivideByZero is returned by div and rem with a zero divisor.
	ErrDivideByZero = errors.New("division by zero")

	// ErrSpuriousIret is returned when iret executes outside an interrupt
	// handler.
	ErrSpuriousIret = errors.New("iret outside interrupt handler")

	// ErrLimit is returned when the run exceeds its instruction limit.
	ErrLimit = errors.New("instruction limit exceeded")

	// ErrMemRange is returned when the memory-address latch points
	// outside the memory array.
	ErrMemRange = errors.New("memory address out of range")
)

// errHalt stops the run loop on hlt. Never escapes Run.
var errHalt = errors.New("halt")
