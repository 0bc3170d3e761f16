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

// artseyAgeLimit is the number of ticks (roughly 100ms at the matrix
// scanner's tick rate) a chord is held before it is decoded even though
// keys may still be going down.
const artseyAgeLimit = 100

// keyToArtsey maps the reference board's physical scancodes to their
// Artsey chord bit; the left half mirrors the right.
var keyToArtsey = map[uint8]uint8{
	5: 0x08, 6: 0x80, 7: 0x04, 8: 0x40, 9: 0x20, 10: 0x02, 11: 0x10, 12: 0x01,
	20: 0x08, 21: 0x80, 22: 0x04, 23: 0x40, 24: 0x20, 25: 0x02, 26: 0x10, 27: 0x01,
}

type artseyValueKind uint8

const (
	artseySimple artseyValueKind = iota
	artseyShifted
	artseyOneShot
	artseyLock
	artseyNone
)

type artseyEntry struct {
	kind artseyValueKind
	code byte
	mods corefw.Mods
}

// artseyTable is a linear lookup from an 8-bit chord to its meaning,
// grounded on the original Artsey alphabet/punctuation/modifier table.
var artseyTable = map[uint8]artseyEntry{
	0x80: {artseySimple, hidA, 0},
	0x40: {artseySimple, hidR, 0},
	0x20: {artseySimple, hidT, 0},
	0x10: {artseySimple, hidS, 0},
	0x08: {artseySimple, hidE, 0},
	0x04: {artseySimple, hidY, 0},
	0x02: {artseySimple, hidI, 0},
	0x01: {artseySimple, hidO, 0},
	0x09: {artseySimple, hidB, 0},
	0x0c: {artseySimple, hidC, 0},
	0xe0: {artseySimple, hidD, 0},
	0xc0: {artseySimple, hidF, 0},
	0x60: {artseySimple, hidG, 0},
	0x0a: {artseySimple, hidH, 0},
	0x30: {artseySimple, hidJ, 0},
	0x05: {artseySimple, hidK, 0},
	0x0e: {artseySimple, hidL, 0},
	0x07: {artseySimple, hidM, 0},
	0x03: {artseySimple, hidN, 0},
	0x0b: {artseySimple, hidP, 0},
	0xb0: {artseySimple, hidQ, 0},
	0x06: {artseySimple, hidU, 0},
	0x50: {artseySimple, hidV, 0},
	0x90: {artseySimple, hidW, 0},
	0x70: {artseySimple, hidX, 0},
	0xf0: {artseySimple, hidZ, 0},

	0x88: {artseySimple, hidEnter, 0},
	0xc1: {artseySimple, hidEscape, 0},
	0x86: {artseySimple, hidGrave, 0},
	0xe1: {artseySimple, hidTab, 0},
	0x84: {artseySimple, hidDot, 0},
	0x18: {artseyOneShot, 0, corefw.ModControl},
	0x82: {artseySimple, hidApostr, 0},
	0x14: {artseyOneShot, 0, corefw.ModGui},
	0x81: {artseySimple, hidSlash, 0},
	0x12: {artseyOneShot, 0, corefw.ModAlt},
	0x22: {artseyShifted, hid1, 0},
	0x78: {artseyOneShot, 0, corefw.ModShift},
	0x0f: {artseySimple, hidSpace, 0},
	0x44: {artseyLock, 0, corefw.ModShift},
	0x48: {artseySimple, hidBackspace, 0},
	0x87: {artseySimple, 0x39, 0}, // CapsLock
	0x42: {artseySimple, 0x4c, 0}, // Delete forward
	0x66: {artseyNone, 0, 0},
}

// ArtseyHandler decodes the 8-key-per-hand Artsey chording layout.
type ArtseyHandler struct {
	pressed uint8
	seen    uint8
	age     int
	down    bool
	oneshot corefw.Mods
	locked  corefw.Mods
}

// NewArtseyHandler creates an ArtseyHandler.
func NewArtseyHandler() *ArtseyHandler {
	return &ArtseyHandler{}
}

// HandleEvent feeds one physical key transition into the chord
// accumulator.
func (a *ArtseyHandler) HandleEvent(ev corefw.KeyEvent) []corefw.Event {
	code := keyToArtsey[ev.Scancode]
	if ev.Kind == corefw.Press {
		a.pressed |= code
		a.seen |= code
		a.age = 0
		return nil
	}

	a.pressed &^= code
	if code != 0 && a.pressed == 0 {
		var out []corefw.Event
		if !a.down {
			out = a.decode()
		}
		if a.down {
			a.down = false
			out = append(out, corefw.NewEventKeyAction(corefw.KeyRelease{}))
		}
		return out
	}
	return nil
}

// Tick ages the current chord, decoding it once the hold window expires.
func (a *ArtseyHandler) Tick() []corefw.Event {
	if a.pressed != 0 {
		a.age++
	}
	if a.seen != 0 && a.age >= artseyAgeLimit {
		return a.decode()
	}
	return nil
}

func (a *ArtseyHandler) decode() []corefw.Event {
	base := a.locked.Merge(a.oneshot)
	entry, ok := artseyTable[a.seen]
	a.seen = 0
	if !ok {
		return nil
	}
	switch entry.kind {
	case artseySimple:
		a.down = true
		a.oneshot = 0
		return []corefw.Event{corefw.NewEventKeyAction(corefw.KeyPress{Code: entry.code, Mods: base})}
	case artseyShifted:
		a.down = true
		a.oneshot = 0
		return []corefw.Event{corefw.NewEventKeyAction(corefw.KeyPress{Code: entry.code, Mods: base.Merge(corefw.ModShift)})}
	case artseyOneShot:
		a.oneshot = a.oneshot.Merge(entry.mods)
	case artseyLock:
		a.locked ^= entry.mods
	}
	return nil
}
