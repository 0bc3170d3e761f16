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

// UsbState is the host-facing USB connection's coarse state, as reported
// by the platform's device stack.
type UsbState uint8

const (
	UsbDetached UsbState = iota
	UsbAttached
	UsbConfigured
	UsbSuspended
)

func (s UsbState) String() string {
	switch s {
	case UsbAttached:
		return "attached"
	case UsbConfigured:
		return "configured"
	case UsbSuspended:
		return "suspended"
	default:
		return "detached"
	}
}

// EventUsbState reports a change in the USB connection's state.
type EventUsbState struct {
	EventTime
	state UsbState
}

// NewEventUsbState creates an EventUsbState.
func NewEventUsbState(state UsbState) *EventUsbState {
	ev := &EventUsbState{state: state}
	ev.SetEventNow()
	return ev
}

// State returns the new USB state.
func (ev *EventUsbState) State() UsbState {
	return ev.state
}
