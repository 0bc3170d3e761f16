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

// Mode names one of the layout manager's key-decoding handlers.
type Mode uint8

const (
	ModeQwerty Mode = iota
	ModeArtsey
	ModeTaipo
	ModeRawSteno
)

func (m Mode) String() string {
	switch m {
	case ModeQwerty:
		return "qwerty"
	case ModeArtsey:
		return "artsey"
	case ModeTaipo:
		return "taipo"
	case ModeRawSteno:
		return "rawsteno"
	default:
		return "unknown"
	}
}

// EventSetMode is published by the layout manager when mode select ends,
// carrying the mode that is now active. The outgoing handler's in-progress
// combo/chord state is left as it is.
type EventSetMode struct {
	EventTime
	mode Mode
}

// NewEventSetMode creates an EventSetMode for the given mode.
func NewEventSetMode(mode Mode) *EventSetMode {
	ev := &EventSetMode{mode: mode}
	ev.SetEventNow()
	return ev
}

// Mode returns the requested mode.
func (ev *EventSetMode) Mode() Mode {
	return ev.mode
}

// EventSetModeSelect enters (or leaves) the mode-select meta-state: a
// brief window, cued by the LED stage, during which the next mode key
// chosen picks the active mode rather than being decoded normally.
type EventSetModeSelect struct {
	EventTime
	active bool
}

// NewEventSetModeSelect creates an EventSetModeSelect toggling the
// mode-select meta-state.
func NewEventSetModeSelect(active bool) *EventSetModeSelect {
	ev := &EventSetModeSelect{active: active}
	ev.SetEventNow()
	return ev
}

// Active reports whether mode-select is being entered (true) or left
// (false).
func (ev *EventSetModeSelect) Active() bool {
	return ev.active
}

// EventSetSubMode asks the active mode handler to switch one of its own
// internal layers (a QWERTY layer shift, a Taipo latch) without changing
// the top-level Mode.
type EventSetSubMode struct {
	EventTime
	subMode uint8
}

// NewEventSetSubMode creates an EventSetSubMode for the given sub-mode
// index; interpretation is up to the active mode handler.
func NewEventSetSubMode(subMode uint8) *EventSetSubMode {
	ev := &EventSetSubMode{subMode: subMode}
	ev.SetEventNow()
	return ev
}

// SubMode returns the requested sub-mode index.
func (ev *EventSetSubMode) SubMode() uint8 {
	return ev.subMode
}
