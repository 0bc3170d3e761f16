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

import "errors"

var (
	// ErrQueueOverflow indicates a bounded channel was full and the
	// offending event was dropped. Never retried by the core.
	ErrQueueOverflow = errors.New("corefw: queue overflow, event dropped")

	// ErrHardware wraps a GPIO/UART/HID error from an external
	// collaborator. The operation is retried on the next cycle, not
	// immediately.
	ErrHardware = errors.New("corefw: hardware operation failed")
)

// EventError is an event carrying a recovered error, for subsystems (like
// the HID stage) that report failures onto their own event channel instead
// of returning them synchronously.
type EventError struct {
	EventTime
	err error
}

// NewEventError creates an EventError with the given error payload.
func NewEventError(err error) *EventError {
	ev := &EventError{err: err}
	ev.SetEventNow()
	return ev
}

func (ev *EventError) Error() string {
	return ev.err.Error()
}

func (ev *EventError) Unwrap() error {
	return ev.err
}

// Logger is the minimal capability subsystems accept for reporting
// recovered errors; the core ships no logging back-end (out of scope), so
// callers inject one. NopLogger discards everything.
type Logger interface {
	Warnf(format string, args ...any)
}

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Warnf(string, ...any) {}
