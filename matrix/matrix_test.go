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

package matrix

import (
	"testing"

	"github.com/tangybbq/corefw"
	"github.com/tangybbq/corefw/matrix/matrixtest"
)

func TestDebounceRequiresStability(t *testing.T) {
	gpio := matrixtest.New(2, 2)
	m := New(2, 2, corefw.SideLeft, gpio)

	var events []bool
	gpio.Press(0, 0)
	// The first scan of the new level starts debouncing; DebounceCount more
	// agreeing scans complete it.
	for i := 0; i < DebounceCount; i++ {
		m.Scan(func(code uint8, pressed bool) { events = append(events, pressed) })
	}
	if len(events) != 0 {
		t.Fatalf("expected no events before debounce completes, got %d", len(events))
	}

	m.Scan(func(code uint8, pressed bool) { events = append(events, pressed) })
	if len(events) != 1 || !events[0] {
		t.Fatalf("expected a single press event, got %v", events)
	}
}

func TestDebounceResetsOnBounce(t *testing.T) {
	gpio := matrixtest.New(2, 2)
	m := New(2, 2, corefw.SideLeft, gpio)

	gpio.Press(1, 1)
	for i := 0; i < DebounceCount/2; i++ {
		m.Scan(func(uint8, bool) {})
	}
	gpio.Release(1, 1)
	m.Scan(func(uint8, bool) {})
	gpio.Press(1, 1)

	var events []bool
	for i := 0; i < DebounceCount; i++ {
		m.Scan(func(code uint8, pressed bool) { events = append(events, pressed) })
	}
	if len(events) != 1 || !events[0] {
		t.Fatalf("expected exactly one press after the bounce settles, got %v", events)
	}
}

func TestRightSideScancodesAreBiased(t *testing.T) {
	gpio := matrixtest.New(2, 2)
	m := New(2, 2, corefw.SideRight, gpio)

	gpio.Press(0, 0)
	var code uint8
	for i := 0; i <= DebounceCount; i++ {
		m.Scan(func(c uint8, pressed bool) {
			if pressed {
				code = c
			}
		})
	}
	if code != 4 {
		t.Fatalf("code = %d, want 4 (biased by rows*cols=4)", code)
	}
}
