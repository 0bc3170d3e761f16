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

// Package led drives the status indicator LED through a small layered
// state machine: a repeating base pattern showing the active mode, an
// optional global override for transient conditions (booting, no USB
// yet), and an optional one-shot pattern that plays once and falls
// back through to whatever was showing before it.
package led

import "github.com/tangybbq/corefw"

// Step is one frame of an indicator: a color held for count ticks
// (each tick is ~100ms).
type Step struct {
	Color corefw.RGB8
	Count int
}

// Indication is a named, repeating sequence of steps.
type Indication []Step

var off = corefw.RGB8{}

// Indicators for the four layout modes, shown as the base pattern
// once a mode is active.
var (
	Qwerty   = Indication{{Color: corefw.RGB8{G: 16}, Count: 10000}}
	Artsey   = Indication{{Color: corefw.RGB8{R: 16}, Count: 10000}}
	Taipo    = Indication{{Color: corefw.RGB8{R: 4, G: 8, B: 8}, Count: 10000}}
	RawSteno = Indication{{Color: corefw.RGB8{B: 32}, Count: 10000}}
)

// ModeSelect blinks the given mode's color while the mode-select key
// is held, so the wearer can see which mode they are about to choose.
func ModeSelect(color corefw.RGB8) Indication {
	return Indication{
		{Color: color, Count: 100},
		{Color: off, Count: 100},
	}
}

// Init indicates we're waiting for either USB configuration or
// communication with the other half.
var Init = Indication{
	{Color: corefw.RGB8{R: 8}, Count: 100},
	{Color: corefw.RGB8{G: 8}, Count: 100},
	{Color: corefw.RGB8{B: 8}, Count: 100},
	{Color: off, Count: 300},
}

// USBPrimary indicates we're on USB but haven't heard from our peer
// half yet.
var USBPrimary = Indication{
	{Color: corefw.RGB8{R: 8, G: 8}, Count: 300},
	{Color: off, Count: 300},
}

// Machine is the layered LED indicator state machine for one half.
type Machine struct {
	base    Indication
	global  Indication
	oneshot Indication

	count int
	phase int

	override  *corefw.RGB8
	lastColor corefw.RGB8

	emit func(corefw.RGB8)
}

// New creates a Machine with base as its repeating pattern and Init as its
// starting global override, with emit called every time the displayed
// color changes.
func New(base Indication, emit func(corefw.RGB8)) *Machine {
	return &Machine{base: base, global: Init, emit: emit}
}

// Tick advances the state machine by one ~100ms step.
func (m *Machine) Tick() {
	if m.override != nil {
		return
	}
	if m.count > 0 {
		m.count--
		return
	}

	steps := m.base
	if m.global != nil {
		steps = m.global
	}
	if m.oneshot != nil {
		steps = m.oneshot
	}

	if m.phase >= len(steps) {
		m.phase = 0
		if m.oneshot != nil {
			m.oneshot = nil
			// The remaining layers restart their own sequence from
			// phase 0 on the next tick; parking phase here just
			// avoids redisplaying their frame 0 this same tick.
			m.phase = 1 << 20
			return
		}
	}

	step := steps[m.phase]
	m.show(step.Color)
	m.count = step.Count
	m.phase++
}

func (m *Machine) show(c corefw.RGB8) {
	m.lastColor = c
	if m.emit != nil {
		m.emit(c)
	}
}

// SetGlobal overrides base with a transient indicator, usually
// signaling an error or a not-yet-usable condition.
func (m *Machine) SetGlobal(ind Indication) {
	m.global = ind
	m.count = 0
	m.phase = 0
}

// ClearGlobal removes the global override, falling back to oneshot
// (if any) or base.
func (m *Machine) ClearGlobal() {
	m.global = nil
	if m.oneshot == nil {
		m.count = 0
		m.phase = 0
	}
}

// SetBase replaces the repeating base pattern, e.g. when the layout
// mode changes.
func (m *Machine) SetBase(ind Indication) {
	m.base = ind
	if m.oneshot == nil && m.global == nil {
		m.count = 0
		m.phase = 0
	}
}

// SetOneshot plays ind once, then falls back through global/base.
func (m *Machine) SetOneshot(ind Indication) {
	m.oneshot = ind
	m.count = 0
	m.phase = 0
}

// SetOverride bypasses the state machine entirely and drives the LED
// directly, the inter-half link's "other side owns the LED" mode.
// Passing nil resumes the local state machine.
func (m *Machine) SetOverride(c *corefw.RGB8) {
	m.override = c
	if c != nil {
		m.show(*c)
	}
}

// LastColor reports the most recently emitted color.
func (m *Machine) LastColor() corefw.RGB8 {
	return m.lastColor
}
