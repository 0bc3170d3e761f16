// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hid turns corefw.KeyAction and raw steno strokes into USB HID
// reports, and queues them past a HID stack that can only hold one
// in-flight report at a time.
package hid

import (
	"bytes"

	"github.com/tangybbq/corefw"
)

// ReportLen is the boot-keyboard report size: modifiers, a reserved
// byte, and up to six keycodes.
const ReportLen = 8

// Backspace is the HID usage code the typer presses to delete characters
// a Joined edit asks to remove.
const Backspace = keyBackspace

// Report serializes a KeyAction into an 8-byte boot-keyboard report.
// Stall reports nil: the caller should hold whatever report it last
// sent.
func Report(action corefw.KeyAction) []byte {
	rep := make([]byte, ReportLen)
	switch a := action.(type) {
	case corefw.KeyPress:
		rep[0] = a.Mods.HIDByte()
		rep[2] = a.Code
	case corefw.KeyRelease:
		// All-zero report.
	case corefw.ModOnly:
		rep[0] = a.Mods.HIDByte()
	case corefw.KeySet:
		rep[0] = a.Mods.HIDByte()
		for i, k := range a.Keys {
			if i >= corefw.MaxKeySetKeys {
				break
			}
			rep[2+i] = k
		}
	case corefw.Stall:
		return nil
	}
	return rep
}

// Queue sits between the layout/typer stages and the HID endpoint,
// modeling a stack that can hold exactly one report in flight: a
// board driver reports readiness for the next report via Ready, and
// until then, Send's reports pile up in a backlog with consecutive
// duplicates collapsed.
type Queue struct {
	ready   bool
	pending [][]byte
}

// NewQueue creates a Queue starting in the ready state.
func NewQueue() *Queue {
	return &Queue{ready: true}
}

// Send submits a report. If the endpoint is ready, the report is
// returned for immediate transmission; otherwise it joins the
// backlog, unless it is identical to the backlog's last entry.
func (q *Queue) Send(report []byte) ([]byte, bool) {
	if report == nil {
		return nil, false
	}
	if q.ready {
		q.ready = false
		return report, true
	}
	if n := len(q.pending); n > 0 && bytes.Equal(q.pending[n-1], report) {
		return nil, false
	}
	q.pending = append(q.pending, report)
	return nil, false
}

// Ready is called from the HID-ready notification. It drains the next
// backlogged report if any is waiting, otherwise marks the endpoint
// ready for the next Send.
func (q *Queue) Ready() ([]byte, bool) {
	if len(q.pending) == 0 {
		q.ready = true
		return nil, false
	}
	report := q.pending[0]
	q.pending = q.pending[1:]
	return report, true
}
