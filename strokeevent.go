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

import "github.com/tangybbq/corefw/stroke"

// EventRawStroke is published by a layout mode handler (RawSteno, or any
// other handler that recognizes a completed chord) to hand a stroke to the
// steno lookup worker.
type EventRawStroke struct {
	EventTime
	stroke stroke.Stroke
}

// NewEventRawStroke creates an EventRawStroke.
func NewEventRawStroke(s stroke.Stroke) *EventRawStroke {
	ev := &EventRawStroke{stroke: s}
	ev.SetEventNow()
	return ev
}

// Stroke returns the completed stroke.
func (ev *EventRawStroke) Stroke() stroke.Stroke {
	return ev.stroke
}

// EventKeyAction is published by a layout mode handler to hand a decoded
// KeyAction to the HID stage.
type EventKeyAction struct {
	EventTime
	action KeyAction
}

// NewEventKeyAction creates an EventKeyAction.
func NewEventKeyAction(action KeyAction) *EventKeyAction {
	ev := &EventKeyAction{action: action}
	ev.SetEventNow()
	return ev
}

// Action returns the wrapped KeyAction.
func (ev *EventKeyAction) Action() KeyAction {
	return ev.action
}
