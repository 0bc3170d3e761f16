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

// Package layout implements the four key-decoding mode handlers (QWERTY,
// Artsey, Taipo, raw steno) and the Manager that dispatches incoming
// KeyEvents to whichever is active, plus the mode-select meta-state that
// switches between them.
package layout

import "github.com/tangybbq/corefw"

// ModeSelectKey is the dedicated scancode that enters the mode-select
// meta-state: the same scancode keys.rs assigns KEY_FUNC. Pressed and
// released by itself it cycles to the next mode in modeCycle; held with one
// of the designated keys in modeKeys it picks that mode directly.
const ModeSelectKey uint8 = 2

// modeKeys maps the scancodes recognized during mode-select to the mode
// they choose. A board's translation table is expected to route its own
// "mode" keys into these canonical codes.
var modeKeys = map[uint8]corefw.Mode{
	4:  corefw.ModeQwerty,
	8:  corefw.ModeArtsey,
	12: corefw.ModeTaipo,
	16: corefw.ModeRawSteno,
}

// modeCycle gives the next mode reached by pressing and releasing
// ModeSelectKey alone, with no designator key: Qwerty -> Steno -> Taipo ->
// Artsey -> Qwerty, matching the reference board's "repeat to reach Taipo"
// mode-switch scenario.
var modeCycle = map[corefw.Mode]corefw.Mode{
	corefw.ModeQwerty:   corefw.ModeRawSteno,
	corefw.ModeRawSteno: corefw.ModeTaipo,
	corefw.ModeTaipo:    corefw.ModeArtsey,
	corefw.ModeArtsey:   corefw.ModeQwerty,
}

// Manager dispatches KeyEvents to the active mode handler and owns the
// mode-select meta-state.
type Manager struct {
	mode      corefw.Mode
	selecting bool
	chosen    corefw.Mode
	sawChosen bool

	qwerty *QwertyHandler
	artsey *ArtseyHandler
	taipo  *TaipoHandler
	raw    *RawStenoHandler
}

// New creates a Manager starting in ModeQwerty.
func New() *Manager {
	return &Manager{
		mode:   corefw.ModeQwerty,
		qwerty: NewQwertyHandler(),
		artsey: NewArtseyHandler(),
		taipo:  NewTaipoHandler(),
		raw:    NewRawStenoHandler(),
	}
}

// CurrentMode reports the manager's active mode, for the LED layer to read
// synchronously.
func (m *Manager) CurrentMode() corefw.Mode {
	return m.mode
}

// TaipoLatchActive reports whether the Taipo overlay (see handleRawSteno)
// is currently live: raw steno is the active mode, and a Taipo chord key is
// being held. The LED layer uses this to show a distinct indicator from
// plain raw steno while the latch is engaged.
func (m *Manager) TaipoLatchActive() bool {
	return m.mode == corefw.ModeRawSteno && m.taipo.AnyHeld()
}

// HandleEvent routes a single key transition, returning zero or more
// events to publish (KeyAction/RawStroke for the active mode, SetMode/
// SetModeSelect while mode-select is in progress).
func (m *Manager) HandleEvent(ev corefw.KeyEvent) []corefw.Event {
	if ev.Scancode == ModeSelectKey {
		if ev.Kind == corefw.Press {
			m.selecting = true
			// Default to the next mode in the cycle; a designator key
			// pressed while selecting overrides this below.
			m.chosen = modeCycle[m.mode]
			m.sawChosen = true
			return []corefw.Event{corefw.NewEventSetModeSelect(true)}
		}
		out := []corefw.Event{corefw.NewEventSetModeSelect(false)}
		m.selecting = false
		if m.sawChosen {
			m.mode = m.chosen
			out = append(out, corefw.NewEventSetMode(m.mode))
		}
		return out
	}

	if m.selecting {
		if ev.Kind == corefw.Press {
			if mode, ok := modeKeys[ev.Scancode]; ok {
				m.chosen = mode
				m.sawChosen = true
			}
		}
		return nil
	}

	switch m.mode {
	case corefw.ModeQwerty:
		return m.qwerty.HandleEvent(ev)
	case corefw.ModeArtsey:
		return m.artsey.HandleEvent(ev)
	case corefw.ModeTaipo:
		return m.taipo.HandleEvent(ev)
	default:
		return m.handleRawSteno(ev)
	}
}

// handleRawSteno implements the Taipo latch: while raw steno is the active
// mode, a key that also belongs to the Taipo chord table is routed to the
// Taipo handler instead of accumulating a stroke, letting Taipo serve as a
// temporary overlay layer without leaving steno mode. Any other key is
// decoded as steno normally. The latch needs no separate on/off state: it
// is simply which handler last-saw a key with that scancode, the same way
// bbq-keyboard's taipo_latch tracks "is any taipo key currently down".
func (m *Manager) handleRawSteno(ev corefw.KeyEvent) []corefw.Event {
	if _, ok := taipoKeyBits[ev.Scancode]; ok {
		return m.taipo.HandleEvent(ev)
	}
	return m.raw.HandleEvent(ev)
}

// Tick advances timing state (Artsey/Taipo chord ages, QWERTY's pending
// combo window) and returns any events that fall out of it. Taipo is
// always ticked in raw steno mode too, so a chord started under the Taipo
// latch still ages out correctly even though Taipo isn't the top-level
// mode.
func (m *Manager) Tick() []corefw.Event {
	switch m.mode {
	case corefw.ModeQwerty:
		return m.qwerty.Tick()
	case corefw.ModeArtsey:
		return m.artsey.Tick()
	case corefw.ModeTaipo, corefw.ModeRawSteno:
		return m.taipo.Tick()
	default:
		return nil
	}
}
