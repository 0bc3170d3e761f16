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

package layout

import "github.com/tangybbq/corefw"

// taipoAgeLimit is the number of ticks a side's chord is held before it is
// emitted even if more keys are still arriving.
const taipoAgeLimit = 50

// bothThumbs is the chord code produced when a side's two thumb keys are
// down together: it releases held modifiers without producing a key.
const bothThumbs = 0x300

type taipoKeyRef struct {
	side int
	bit  uint16
}

// taipoKeyBits maps the reference board's physical scancodes to a
// (side, bit) pair; 8 finger keys (bits 0-7) and 2 thumb keys (bits 8-9)
// per side. The scancode assignment mirrors bbq-keyboard's proto3 SCAN_MAP
// (taipo.rs): each side's finger keys sit on the same scancodes QWERTY maps
// to Q/A/W/S/E/D/R/F (keys.rs), and the two thumb keys follow at Tab/Del.
var taipoKeyBits = map[uint8]taipoKeyRef{
	5: {0, 1 << 0}, 9: {0, 1 << 1}, 13: {0, 1 << 2}, 17: {0, 1 << 3},
	4: {0, 1 << 4}, 8: {0, 1 << 5}, 12: {0, 1 << 6}, 16: {0, 1 << 7},
	19: {0, 1 << 8}, 23: {0, 1 << 9},

	29: {1, 1 << 0}, 33: {1, 1 << 1}, 37: {1, 1 << 2}, 41: {1, 1 << 3},
	28: {1, 1 << 4}, 32: {1, 1 << 5}, 36: {1, 1 << 6}, 40: {1, 1 << 7},
	43: {1, 1 << 8}, 47: {1, 1 << 9},
}

type taipoActionKind uint8

const (
	taipoNone taipoActionKind = iota
	taipoSimple
	taipoShifted
	taipoOneShot
	taipoRelease
)

type taipoAction struct {
	kind taipoActionKind
	code byte
	mods corefw.Mods
}

// taipoTable is a linear chord table for each side (both sides share it,
// since Taipo's halves are mirror images of each other), grounded on
// taipo.rs's TAIPO_ACTIONS: the eight finger bits spell A O T E R S N I in
// that bit order, the two thumb bits are Space and Backspace alone, and a
// handful of two-finger chords carry extra letters and one-shot modifiers
// (a reduced subset of TAIPO_ACTIONS's full 126-entry table, sized to the
// letters this board's handler actually needs to produce).
var taipoTable = map[uint16]taipoAction{
	1 << 0: {taipoSimple, hidA, 0},
	1 << 1: {taipoSimple, hidO, 0},
	1 << 2: {taipoSimple, hidT, 0},
	1 << 3: {taipoSimple, hidE, 0},
	1 << 4: {taipoSimple, hidR, 0},
	1 << 5: {taipoSimple, hidS, 0},
	1 << 6: {taipoSimple, hidN, 0},
	1 << 7: {taipoSimple, hidI, 0},
	(1 << 6) | (1 << 5): {taipoSimple, hidP, 0},
	1 << 8:              {taipoSimple, hidSpace, 0},
	1 << 9:              {taipoSimple, hidBackspace, 0},
	(1 << 7) | (1 << 3): {taipoOneShot, 0, corefw.ModShift},
	(1 << 6) | (1 << 2): {taipoOneShot, 0, corefw.ModControl},
	bothThumbs:          {taipoRelease, 0, 0},
}

type taipoEvent struct {
	isPress bool
	code    uint16
}

type taipoSide struct {
	pressed uint16
	seen    uint16
	age     int
	down    bool
}

func (s *taipoSide) handle(ev corefw.KeyEvent, bit uint16, queue *[]taipoEvent) {
	if ev.Kind == corefw.Press {
		if !s.down {
			s.seen |= bit
			s.age = 0
		}
		s.pressed |= bit
		return
	}
	s.pressed &^= bit
	if s.pressed == 0 {
		if !s.down {
			*queue = append(*queue, taipoEvent{isPress: true, code: s.seen})
		}
		*queue = append(*queue, taipoEvent{isPress: false, code: s.seen})
		*s = taipoSide{}
	}
}

// tick ages the side's held chord, emitting the press once the hold window
// expires without releasing the release: down stays set so handle's release
// path still fires the matching release for the same chord, the way
// SideManager.down survives a timeout-fired press in taipo.rs.
func (s *taipoSide) tick(queue *[]taipoEvent) {
	if s.down || s.seen == 0 {
		return
	}
	s.age++
	if s.age >= taipoAgeLimit {
		*queue = append(*queue, taipoEvent{isPress: true, code: s.seen})
		s.down = true
	}
}

// TaipoHandler decodes the bilateral 10-key-per-side Taipo layout.
type TaipoHandler struct {
	sides   [2]taipoSide
	queue   []taipoEvent
	oneshot corefw.Mods
	down    bool
}

// AnyHeld reports whether any Taipo chord key, on either side, is currently
// pressed. The raw steno handler's Taipo latch overlay uses this: the chord
// keys double as their own layer-shift trigger, since the reference board
// has no spare scancode set aside purely for a latch control the way
// bbq-keyboard's taipo.rs taipo_keys/taipo_latch pair does.
func (t *TaipoHandler) AnyHeld() bool {
	return t.sides[0].pressed != 0 || t.sides[1].pressed != 0
}

// NewTaipoHandler creates a TaipoHandler.
func NewTaipoHandler() *TaipoHandler {
	return &TaipoHandler{}
}

// HandleEvent feeds one physical key transition into the appropriate
// side's chord accumulator.
func (t *TaipoHandler) HandleEvent(ev corefw.KeyEvent) []corefw.Event {
	ref, ok := taipoKeyBits[ev.Scancode]
	if !ok {
		return nil
	}
	t.sides[ref.side].handle(ev, ref.bit, &t.queue)
	return t.drain()
}

// Tick ages both sides, emitting a chord once the hold window expires,
// and drains the resulting events.
func (t *TaipoHandler) Tick() []corefw.Event {
	t.sides[0].tick(&t.queue)
	t.sides[1].tick(&t.queue)
	return t.drain()
}

func (t *TaipoHandler) drain() []corefw.Event {
	var out []corefw.Event
	for len(t.queue) > 0 {
		tev := t.queue[0]
		t.queue = t.queue[1:]
		if !tev.isPress {
			if t.down {
				out = append(out, corefw.NewEventKeyAction(corefw.KeyRelease{}))
				t.down = false
			}
			continue
		}
		action, ok := taipoTable[tev.code]
		if !ok {
			continue
		}
		switch action.kind {
		case taipoSimple:
			if t.down {
				out = append(out, corefw.NewEventKeyAction(corefw.KeyRelease{}))
			}
			out = append(out, corefw.NewEventKeyAction(corefw.KeyPress{Code: action.code, Mods: t.oneshot}))
			t.down = true
			t.oneshot = 0
		case taipoShifted:
			if t.down {
				out = append(out, corefw.NewEventKeyAction(corefw.KeyRelease{}))
			}
			out = append(out, corefw.NewEventKeyAction(corefw.KeyPress{Code: action.code, Mods: t.oneshot.Merge(corefw.ModShift)}))
			t.down = true
			t.oneshot = 0
		case taipoOneShot:
			t.oneshot = t.oneshot.Merge(action.mods)
			out = append(out, corefw.NewEventKeyAction(corefw.ModOnly{Mods: t.oneshot}))
		case taipoRelease:
			t.oneshot = 0
		}
	}
	return out
}
