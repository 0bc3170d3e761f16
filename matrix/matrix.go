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

// Package matrix scans a row/col GPIO key matrix and debounces each
// intersection into stable Press/Release transitions.
package matrix

import "github.com/tangybbq/corefw"

// GPIO is the hardware (or simulated) pin access the scanner drives; a
// board wires its real GPIO driver to this narrow interface the way
// tcell's tScreen wires a TermDriver.
type GPIO interface {
	// SetCol drives column i active (true) or inactive (false).
	SetCol(i int, active bool)
	// ReadRow reads whether row i currently reads as pressed.
	ReadRow(i int) bool
}

// DebounceCount is how many further consecutive scans must agree with the
// scan that first saw a new level before the transition is considered
// stable (so the edge is reported on the DebounceCount+1th scan), matching
// the reference firmware's debounce window.
const DebounceCount = 20

type debouncer struct {
	stable     bool
	debouncing bool
	target     bool
	counter    int
}

type transition uint8

const (
	transNone transition = iota
	transPress
	transRelease
)

func (d *debouncer) react(pressed bool) transition {
	if !d.debouncing {
		if d.stable != pressed {
			d.debouncing = true
			d.target = pressed
			d.counter = 0
		}
		return transNone
	}
	if d.target != pressed {
		d.counter = 0
		return transNone
	}
	d.counter++
	if d.counter != DebounceCount {
		return transNone
	}
	d.debouncing = false
	d.stable = d.target
	if d.target {
		return transPress
	}
	return transRelease
}

// Matrix scans an electrically wired grid of rows and columns, debouncing
// every intersection independently.
type Matrix struct {
	rows, cols int
	gpio       GPIO
	side       corefw.Side
	state      []debouncer
}

// New creates a Matrix for the given row/column counts, wired through
// gpio, for one physical half.
func New(rows, cols int, side corefw.Side, gpio GPIO) *Matrix {
	return &Matrix{
		rows:  rows,
		cols:  cols,
		gpio:  gpio,
		side:  side,
		state: make([]debouncer, rows*cols),
	}
}

// Scan performs one full column-by-column sweep of the matrix, invoking
// act for every intersection whose debounced state changed this sweep.
// Scancodes from the right half are biased by the total key count so the
// two halves never collide in the canonical scancode space.
func (m *Matrix) Scan(act func(code uint8, pressed bool)) {
	bias := 0
	if m.side == corefw.SideRight {
		bias = len(m.state)
	}
	for col := 0; col < m.cols; col++ {
		m.gpio.SetCol(col, true)
		for row := 0; row < m.rows; row++ {
			idx := col*m.rows + row
			switch m.state[idx].react(m.gpio.ReadRow(row)) {
			case transPress:
				act(uint8(idx+bias), true)
			case transRelease:
				act(uint8(idx+bias), false)
			}
		}
		m.gpio.SetCol(col, false)
	}
}
