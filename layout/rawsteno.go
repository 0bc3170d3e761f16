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

import (
	"github.com/tangybbq/corefw"
	"github.com/tangybbq/corefw/stroke"
)

// stenoKeys maps the reference board's physical scancodes directly to the
// stroke key(s) they contribute; the left and right halves mirror the
// steno keyboard's two hands, with the central Num/Star keys duplicated
// on both sides.
var stenoKeys = map[uint8]stroke.Stroke{
	0: strokeBit(9),  // O
	1: strokeBit(8),  // A
	2: stroke.Num,    // #
	3: stroke.Caret,  // ^
	5: strokeBit(3),  // R
	6: strokeBit(2),  // H
	7: strokeBit(1),  // W
	8: strokeBit(4),  // P
	9: strokeBit(5),  // T
	10: strokeBit(6), // K
	11: stroke.Star,  // *
	12: strokeBit(7), // S

	16: strokeBit(10), // E
	17: strokeBit(11), // U
	18: stroke.Num,
	19: stroke.Plus,
	21: strokeBit(16), // -R
	22: strokeBit(13), // -F
	23: strokeBit(17), // -B
	24: strokeBit(14), // -P
	25: strokeBit(18), // -L
	26: strokeBit(19), // -G
	27: strokeBit(15), // -T
	28: strokeBit(20), // -S
	29: strokeBit(21), // -D
	30: strokeBit(22), // -Z
}

// strokeBit sets the bit at canonical key position idx (0 = leftmost,
// '^', through 23 = 'Z'), matching stroke.Parse's bit numbering.
func strokeBit(idx int) stroke.Stroke {
	return stroke.Stroke(1) << uint(23-idx)
}

// RawStenoHandler maps each physical scancode to a stroke contribution
// and emits a completed stroke once every key involved has been released.
type RawStenoHandler struct {
	seen stroke.Stroke
	down stroke.Stroke
}

// NewRawStenoHandler creates a RawStenoHandler.
func NewRawStenoHandler() *RawStenoHandler {
	return &RawStenoHandler{}
}

// HandleEvent accumulates a key transition's stroke contribution, emitting
// EventRawStroke once the chord fully releases.
func (r *RawStenoHandler) HandleEvent(ev corefw.KeyEvent) []corefw.Event {
	bits, ok := stenoKeys[ev.Scancode]
	if !ok {
		return nil
	}
	if ev.Kind == corefw.Press {
		r.seen = r.seen.Merge(bits)
		r.down = r.down.Merge(bits)
		return nil
	}
	r.down = r.down.Mask(bits)
	if !r.seen.IsEmpty() && r.down.IsEmpty() {
		s := r.seen
		r.seen = stroke.Empty
		return []corefw.Event{corefw.NewEventRawStroke(s)}
	}
	return nil
}
