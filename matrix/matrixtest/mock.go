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

// Package matrixtest provides a mock GPIO pair for driving matrix.Matrix
// from a test without real hardware, in the style of tcell's removed
// SimulationScreen: a test injects raw readings, then asserts on the
// debounced transitions the scanner produces.
package matrixtest

// Mock implements matrix.GPIO with an in-memory grid a test can poke
// directly.
type Mock struct {
	cols int
	rows int
	// pressed[col][row] is the raw, undebounced key reading.
	pressed [][]bool
	active  []bool
}

// New creates a Mock with the given dimensions, all keys initially
// released.
func New(rows, cols int) *Mock {
	pressed := make([][]bool, cols)
	for i := range pressed {
		pressed[i] = make([]bool, rows)
	}
	return &Mock{cols: cols, rows: rows, pressed: pressed, active: make([]bool, cols)}
}

// SetCol implements matrix.GPIO.
func (m *Mock) SetCol(i int, active bool) {
	m.active[i] = active
}

// ReadRow implements matrix.GPIO. It only reports a key pressed while its
// column is active, mirroring how a real diode matrix only conducts
// through the driven column.
func (m *Mock) ReadRow(row int) bool {
	for col, active := range m.active {
		if active && m.pressed[col][row] {
			return true
		}
	}
	return false
}

// Press sets a key's raw reading to pressed.
func (m *Mock) Press(row, col int) {
	m.pressed[col][row] = true
}

// Release sets a key's raw reading to released.
func (m *Mock) Release(row, col int) {
	m.pressed[col][row] = false
}
