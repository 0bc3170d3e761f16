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

// USB HID keyboard usage IDs used by the reference layer tables.
const (
	hidA = 4 + iota
	hidB
	hidC
	hidD
	hidE
	hidF
	hidG
	hidH
	hidI
	hidJ
	hidK
	hidL
	hidM
	hidN
	hidO
	hidP
	hidQ
	hidR
	hidS
	hidT
	hidU
	hidV
	hidW
	hidX
	hidY
	hidZ
	hid1
	hid2
	hid3
	hid4
	hid5
	hid6
	hid7
	hid8
	hid9
	hid0
)

const (
	hidEnter     = 40
	hidEscape    = 41
	hidBackspace = 42
	hidTab       = 43
	hidSpace     = 44
	hidMinus     = 45
	hidEqual     = 46
	hidLBrace    = 47
	hidRBrace    = 48
	hidSemicolon = 51
	hidApostr    = 52
	hidGrave     = 53
	hidComma     = 54
	hidDot       = 55
	hidSlash     = 56
)

type mappingKind uint8

const (
	mapDead mappingKind = iota
	mapKey
	mapLayerShift
)

// Mapping is what a single scancode means in a given layer: nothing, a
// keypress (possibly with implicit modifiers), or a shift to another
// layer for as long as the key is held.
type Mapping struct {
	Kind  mappingKind
	Code  byte
	Mods  corefw.Mods
	Layer *Layer
}

var deadMapping = Mapping{Kind: mapDead}

func key(code byte, mods corefw.Mods) Mapping {
	return Mapping{Kind: mapKey, Code: code, Mods: mods}
}

func modOnly(mods corefw.Mods) Mapping {
	return Mapping{Kind: mapKey, Code: 0, Mods: mods}
}

func layerShift(l *Layer) Mapping {
	return Mapping{Kind: mapLayerShift, Layer: l}
}

// Layer is a board's per-scancode mapping table; scancodes absent from
// the map are dead.
type Layer struct {
	entries map[uint8]Mapping
}

func newLayer(entries map[uint8]Mapping) *Layer {
	return &Layer{entries: entries}
}

func (l *Layer) at(code uint8) Mapping {
	if m, ok := l.entries[code]; ok {
		return m
	}
	return deadMapping
}

// comboPair is an unordered pair of physical scancodes that, pressed
// within the combo window, synthesize a scancode of their own.
type comboPair struct {
	a, b uint8
}

// rootLayer, numLayer and navLayer are a representative reference-board
// layout: letters on the main block, two thumb keys layer-shifting to
// numbers and navigation. Boards with different physical layouts supply
// their own tables; the combo/layer-shift machinery is unchanged.
var rootLayer = newLayer(map[uint8]Mapping{
	4: key(hidQ, 0), 5: key(hidA, 0), 6: key(hidZ, 0),
	8: key(hidW, 0), 9: key(hidS, 0), 10: key(hidX, 0),
	12: key(hidE, 0), 13: key(hidD, 0), 14: key(hidC, 0),
	16: key(hidR, 0), 17: key(hidF, 0), 18: key(hidV, 0),
	20: key(hidT, 0), 21: key(hidG, 0), 22: key(hidB, 0),
	28: key(hidP, 0), 29: key(hidSemicolon, 0), 30: key(hidSlash, 0),
	32: key(hidO, 0), 33: key(hidL, 0), 34: key(hidDot, 0),
	36: key(hidI, 0), 37: key(hidK, 0), 38: key(hidComma, 0),
	40: key(hidU, 0), 41: key(hidJ, 0), 42: key(hidM, 0),
	44: key(hidY, 0), 45: key(hidH, 0), 46: key(hidN, 0),
	23: key(hidSpace, 0), 47: key(hidSpace, 0),
	15: key(hidBackspace, 0), 39: key(hidEnter, 0),
	19: layerShiftNum(), 43: layerShiftNav(),
})

var numLayer = newLayer(map[uint8]Mapping{
	4: key(hid1, 0), 8: key(hid2, 0), 12: key(hid3, 0),
	16: key(hid4, 0), 20: key(hid5, 0),
	28: key(hid0, 0), 32: key(hid9, 0), 36: key(hid8, 0), 40: key(hid7, 0), 44: key(hid6, 0),
	24: key(hidMinus, 0), 46: key(hidEqual, 0),
})

var navLayer = newLayer(map[uint8]Mapping{
	32: key(0x4d, 0), // End
	33: key(0x4f, 0), // Right arrow
	36: key(0x4b, 0), // Page up
	37: key(0x52, 0), // Up arrow
	40: key(0x4e, 0), // Page down
	41: key(0x51, 0), // Down arrow
	44: key(0x4a, 0), // Home
	45: key(0x50, 0), // Left arrow
})

// layerShiftNum/layerShiftNav are indirections so the layer tables above
// can reference layers declared later in the same file (Go initializes
// package vars in dependency order regardless of source position, but a
// function keeps the cross-reference readable).
func layerShiftNum() Mapping { return layerShift(numLayer) }
func layerShiftNav() Mapping { return layerShift(navLayer) }

// combos lists physical key pairs (lowest scancode first) that combine
// into a synthetic scancode NKeys+index when pressed within the window.
var combos = []comboPair{
	{4, 5}, {8, 9}, {12, 13}, {16, 17},
	{40, 41}, {36, 37}, {32, 33}, {28, 29},
}

// ComboWindowTicks is how long a single combo-eligible key is held pending
// a partner before it is flushed as a plain keypress.
const ComboWindowTicks = 250

type comboInfo struct {
	code  uint8
	layer *Layer
}

type pendingCombo struct {
	key   uint8
	layer *Layer
	age   int
}

type layeredEvent struct {
	ev    corefw.KeyEvent
	layer *Layer
}

// QwertyHandler implements the combo/layer-shift QWERTY mode.
type QwertyHandler struct {
	down  map[uint8]Mapping
	layer *Layer

	comboEligible map[uint8]bool
	comboed       map[uint8]bool
	pending       *pendingCombo
	comboDown     map[comboPair]comboInfo
	ready         []layeredEvent
}

// NewQwertyHandler creates a QwertyHandler rooted at the reference board's
// root layer.
func NewQwertyHandler() *QwertyHandler {
	eligible := make(map[uint8]bool)
	for _, c := range combos {
		eligible[c.a] = true
		eligible[c.b] = true
	}
	return &QwertyHandler{
		down:          make(map[uint8]Mapping),
		layer:         rootLayer,
		comboEligible: eligible,
		comboed:       make(map[uint8]bool),
		comboDown:     make(map[comboPair]comboInfo),
	}
}

func pairOf(a, b uint8) comboPair {
	if a < b {
		return comboPair{a, b}
	}
	return comboPair{b, a}
}

func comboCode(a, b uint8) (uint8, bool) {
	p := pairOf(a, b)
	for i, c := range combos {
		if c == p {
			return corefw.NKEYS + uint8(i), true
		}
	}
	return 0, false
}

// HandleEvent feeds one physical key transition through the combo
// detector and the layer/report logic.
func (q *QwertyHandler) HandleEvent(ev corefw.KeyEvent) []corefw.Event {
	q.handleCombo(ev)
	return q.processReady()
}

func (q *QwertyHandler) handleCombo(ev corefw.KeyEvent) {
	if ev.Kind == corefw.Release {
		q.flushPending()
	}

	if ev.Kind == corefw.Press {
		if q.comboEligible[ev.Scancode] {
			if q.pending != nil {
				prior := q.pending.key
				layer := q.pending.layer
				if code, ok := comboCode(prior, ev.Scancode); ok {
					q.ready = append(q.ready, layeredEvent{
						ev:    corefw.KeyEvent{Kind: corefw.Press, Scancode: code},
						layer: layer,
					})
					q.comboDown[pairOf(prior, ev.Scancode)] = comboInfo{code: code, layer: layer}
					q.comboed[prior] = true
					q.comboed[ev.Scancode] = true
					q.pending = nil
				} else {
					q.ready = append(q.ready, layeredEvent{
						ev:    corefw.KeyEvent{Kind: corefw.Press, Scancode: prior},
						layer: layer,
					})
					q.pending = &pendingCombo{key: ev.Scancode, layer: q.layer}
				}
			} else {
				q.pending = &pendingCombo{key: ev.Scancode, layer: q.layer}
			}
			return
		}
		q.flushPending()
		q.ready = append(q.ready, layeredEvent{ev: ev, layer: q.layer})
		return
	}

	// Release.
	if q.comboed[ev.Scancode] {
		delete(q.comboed, ev.Scancode)
		for pair, info := range q.comboDown {
			if pair.a != ev.Scancode && pair.b != ev.Scancode {
				continue
			}
			other := pair.a
			if other == ev.Scancode {
				other = pair.b
			}
			if q.comboed[other] {
				return
			}
			delete(q.comboDown, pair)
			q.ready = append(q.ready, layeredEvent{
				ev:    corefw.KeyEvent{Kind: corefw.Release, Scancode: info.code},
				layer: info.layer,
			})
			return
		}
		return
	}
	q.ready = append(q.ready, layeredEvent{ev: ev, layer: q.layer})
}

func (q *QwertyHandler) flushPending() {
	if q.pending == nil {
		return
	}
	q.ready = append(q.ready, layeredEvent{
		ev:    corefw.KeyEvent{Kind: corefw.Press, Scancode: q.pending.key},
		layer: q.pending.layer,
	})
	q.pending = nil
}

// Tick ages the pending combo candidate, flushing it once the window
// expires.
func (q *QwertyHandler) Tick() []corefw.Event {
	if q.pending != nil {
		q.pending.age++
		if q.pending.age >= ComboWindowTicks {
			q.flushPending()
		}
	}
	return q.processReady()
}

func (q *QwertyHandler) processReady() []corefw.Event {
	var out []corefw.Event
	for _, le := range q.ready {
		code := le.layer.at(le.ev.Scancode)
		if le.ev.Kind == corefw.Release {
			if m, ok := q.down[le.ev.Scancode]; ok {
				code = m
			}
		}
		if code.Kind == mapDead {
			continue
		}
		if code.Kind == mapLayerShift {
			if le.ev.Kind == corefw.Press {
				q.down[le.ev.Scancode] = code
				q.layer = code.Layer
			} else {
				delete(q.down, le.ev.Scancode)
				q.layer = rootLayer
			}
			continue
		}
		if le.ev.Kind == corefw.Press {
			q.down[le.ev.Scancode] = code
			out = append(out, corefw.NewEventKeyAction(q.report(&code)))
		} else {
			delete(q.down, le.ev.Scancode)
			out = append(out, corefw.NewEventKeyAction(q.report(nil)))
		}
	}
	q.ready = nil
	return out
}

func (q *QwertyHandler) report(justPressed *Mapping) corefw.KeyAction {
	var mods corefw.Mods
	var keys []byte
	for _, m := range q.down {
		if m.Code == 0 {
			mods = mods.Merge(m.Mods)
		}
	}
	if justPressed != nil {
		mods = mods.Merge(justPressed.Mods)
	}
	for _, m := range q.down {
		if m.Code != 0 {
			keys = append(keys, m.Code)
		}
	}
	return corefw.NewKeySet(mods, keys)
}
