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
	"bytes"
	"encoding/json"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Event schedules the delivery of one input character.
type Event struct {
	Due  uint64 // tick at which the interrupt becomes pending
	Char rune
}

// Schedule is the input schedule: it is loaded once before the run and only
// consumed afterwards. Entries are kept ordered by due tick; a later entry
// with the same due tick replaces the earlier one at load time.
type Schedule []Event

// take removes and returns the entry an interrupt admitted at tick now must
// deliver: the latest-due entry with Due <= now. Every other entry already
// due is dropped with it; only the most recent character gets delivered.
func (s *Schedule) take(now uint64) (Event, bool) {
	sc := *s
	idx := sort.Search(len(sc), func(i int) bool { return sc[i].Due > now })
	if idx == 0 {
		return Event{}, false
	}
	ev := sc[idx-1]
	*s = sc[idx:]
	return ev, true
}

// ReadSchedule parses an input schedule: a JSON array of [tick, "char"]
// pairs in any order (the result is sorted by tick), e.g.
//
//	[[80, "H"], [112, "e"], [144, "l"]]
//
// An all-whitespace stream is an empty schedule, so programs that take no
// input need no boilerplate input file.
func ReadSchedule(r io.Reader) (Schedule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "schedule read failed")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var raw [][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "schedule decode failed")
	}
	byDue := make(map[uint64]rune, len(raw))
	for k, pair := range raw {
		if len(pair) != 2 {
			return nil, errors.Errorf("schedule entry %d: want [tick, \"char\"], got %d elements", k, len(pair))
		}
		var due uint64
		if err := json.Unmarshal(pair[0], &due); err != nil {
			return nil, errors.Wrapf(err, "schedule entry %d: malformed tick", k)
		}
		var ch string
		if err := json.Unmarshal(pair[1], &ch); err != nil {
			return nil, errors.Wrapf(err, "schedule entry %d: malformed character", k)
		}
		if utf8.RuneCountInString(ch) != 1 {
			return nil, errors.Errorf("schedule entry %d: want a single character, got %q", k, ch)
		}
		r, _ := utf8.DecodeRuneInString(ch)
		byDue[due] = r
	}
	s := make(Schedule, 0, len(byDue))
	for due, r := range byDue {
		s = append(s, Event{Due: due, Char: r})
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Due < s[j].Due })
	return s, nil
}
