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

// KeyAction is the decision a layout mode handler publishes for the HID
// stage to serialize into a report. It is a closed tagged union expressed
// as an interface with an unexported marker method, the same idiom tcell
// uses for its Event interface (EventKey, EventMouse, EventResize, ...).
type KeyAction interface {
	isKeyAction()
}

// KeyPress is a single non-modifier key going down, with the modifier set
// that should accompany it.
type KeyPress struct {
	Code byte
	Mods Mods
}

func (KeyPress) isKeyAction() {}

// KeyRelease clears all held keys and modifiers (boot-keyboard reports
// carry no information about which key was released).
type KeyRelease struct{}

func (KeyRelease) isKeyAction() {}

// ModOnly changes the modifier byte without pressing a key, used for
// oneshot/lock modifier accumulation in Artsey and Taipo.
type ModOnly struct {
	Mods Mods
}

func (ModOnly) isKeyAction() {}

// KeySet is the QWERTY handler's per-tick report: the ordered, deduplicated
// set of currently held keycodes (at most six, the boot-keyboard limit) and
// the accompanying modifier set.
type KeySet struct {
	Mods Mods
	Keys []byte
}

func (KeySet) isKeyAction() {}

// MaxKeySetKeys is the boot-keyboard report's non-modifier key capacity.
const MaxKeySetKeys = 6

// NewKeySet builds a KeySet, deduplicating and truncating keys to
// MaxKeySetKeys in encounter order.
func NewKeySet(mods Mods, keys []byte) KeySet {
	seen := make(map[byte]bool, len(keys))
	out := make([]byte, 0, MaxKeySetKeys)
	for _, k := range keys {
		if k == 0 || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
		if len(out) == MaxKeySetKeys {
			break
		}
	}
	return KeySet{Mods: mods, Keys: out}
}

// Stall asks the HID stage to hold its previous report: emitted when a mode
// handler has nothing new to say this tick (e.g. mid-combo, mid-chord).
type Stall struct{}

func (Stall) isKeyAction() {}
