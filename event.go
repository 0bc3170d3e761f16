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

package corefw

import "time"

// Event is the common interface satisfied by every value published on the
// dispatch event surface: EventKeyAction, EventRawStroke, EventSetMode,
// EventSetModeSelect, EventSetSubMode, EventBecomeRole and EventUsbState
// all implement it.
type Event interface {
	When() time.Time
}

// EventTime is embedded by concrete event types to provide a When().
type EventTime struct {
	t time.Time
}

// SetEventNow sets the time of the event to the current time.
func (et *EventTime) SetEventNow() {
	et.t = time.Now()
}

// When returns the time the event was created.
func (et *EventTime) When() time.Time {
	return et.t
}

// NKEYS is the size of the canonical scancode space: 48 logical codes for
// the 42-key reference board. Combo-synthesized codes are numbered from
// NKEYS upward, outside this space.
const NKEYS = 48

// KeyKind distinguishes a press from a release in a KeyEvent.
type KeyKind uint8

const (
	Press KeyKind = iota
	Release
)

func (k KeyKind) String() string {
	if k == Press {
		return "Press"
	}
	return "Release"
}

// KeyEvent is a single physical key transition, scancode in 0..NKEYS-1 for
// the reference board (other boards remap through a Translate function
// before a KeyEvent reaches the layout manager).
type KeyEvent struct {
	Kind     KeyKind
	Scancode uint8
}

// Translate maps a board-native scancode to the canonical scancode space.
// Codes outside 0..NKEYS-1 after translation are ignored by the core.
type Translate func(raw uint8) uint8

// IdentityTranslate is the translation table for the 42-key reference
// board: it is already in canonical order.
func IdentityTranslate(raw uint8) uint8 { return raw }

// SideOffset biases a translated scancode for the right-hand half of a
// split keyboard, so left and right halves never collide in the canonical
// space.
func SideOffset(isRight bool) uint8 {
	if isRight {
		return NKEYS
	}
	return 0
}
