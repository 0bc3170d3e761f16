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

// EventTick is a generic scheduler wakeup, used by the LED task's ~100ms
// animation clock and any other subsystem that needs to post "time has
// advanced" without a more specific event. It can carry an arbitrary
// payload (e.g. a tick count).
type EventTick struct {
	EventTime
	v any
}

// Data is used to obtain the opaque event payload.
func (ev *EventTick) Data() any {
	return ev.v
}

// NewEventTick creates an EventTick with the given payload.
func NewEventTick(data any) *EventTick {
	ev := &EventTick{v: data}
	ev.SetEventNow()
	return ev
}
