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
	"testing"

	"github.com/tangybbq/corefw"
)

// TestTaipoTimeoutEmitsEventualRelease exercises a chord held past the age
// limit: the press fires from Tick once the window expires, and the
// trailing key-up still needs to produce the matching release instead of
// being swallowed because seen was already cleared.
func TestTaipoTimeoutEmitsEventualRelease(t *testing.T) {
	th := NewTaipoHandler()

	evs := th.HandleEvent(corefw.KeyEvent{Kind: corefw.Press, Scancode: 12}) // N
	if len(evs) != 0 {
		t.Fatalf("press produced events before the age limit: %#v", evs)
	}
	for i := 0; i < taipoAgeLimit; i++ {
		evs = th.Tick()
		if i < taipoAgeLimit-1 && len(evs) != 0 {
			t.Fatalf("tick %d produced events early: %#v", i, evs)
		}
	}
	if len(evs) != 1 {
		t.Fatalf("expected one KeyPress on timeout, got %d: %#v", len(evs), evs)
	}
	ka, ok := evs[0].(*corefw.EventKeyAction)
	if !ok {
		t.Fatalf("expected EventKeyAction, got %T", evs[0])
	}
	if kp, ok := ka.Action().(corefw.KeyPress); !ok || kp.Code != hidN {
		t.Fatalf("Action() = %#v, want KeyPress{N}", ka.Action())
	}

	evs = th.HandleEvent(corefw.KeyEvent{Kind: corefw.Release, Scancode: 12})
	if len(evs) != 1 {
		t.Fatalf("expected the delayed release, got %d: %#v", len(evs), evs)
	}
	if _, ok := evs[0].(*corefw.EventKeyAction); !ok {
		t.Fatalf("expected EventKeyAction (release), got %T", evs[0])
	}

	for i := 0; i < taipoAgeLimit; i++ {
		if evs := th.Tick(); len(evs) != 0 {
			t.Fatalf("unexpected events after release: %#v", evs)
		}
	}
}

// TestTaipoChordP exercises spec's "Taipo chord P" scenario: N and S on the
// same side within the chord window combine into P. Ticking the full 50
// ticks named in the scenario fires the chord from the age timeout (N and S
// are both already merged into seen by then), so the press arrives from the
// tick loop and only the release arrives from the final HandleEvent calls.
func TestTaipoChordP(t *testing.T) {
	th := NewTaipoHandler()

	th.HandleEvent(corefw.KeyEvent{Kind: corefw.Press, Scancode: 12}) // N
	for i := 0; i < 10; i++ {
		th.Tick()
	}
	th.HandleEvent(corefw.KeyEvent{Kind: corefw.Press, Scancode: 8}) // S

	var pressEvs []corefw.Event
	for i := 0; i < 50; i++ {
		if evs := th.Tick(); len(evs) != 0 {
			pressEvs = evs
		}
	}
	if len(pressEvs) != 1 {
		t.Fatalf("expected one KeyPress(P) from the age timeout, got %d: %#v", len(pressEvs), pressEvs)
	}
	ka, ok := pressEvs[0].(*corefw.EventKeyAction)
	if !ok {
		t.Fatalf("expected EventKeyAction, got %T", pressEvs[0])
	}
	if kp, ok := ka.Action().(corefw.KeyPress); !ok || kp.Code != hidP {
		t.Fatalf("Action() = %#v, want KeyPress{P}", ka.Action())
	}

	th.HandleEvent(corefw.KeyEvent{Kind: corefw.Release, Scancode: 12})
	evs := th.HandleEvent(corefw.KeyEvent{Kind: corefw.Release, Scancode: 8})
	if len(evs) != 1 {
		t.Fatalf("expected the delayed release, got %d: %#v", len(evs), evs)
	}
	if _, ok := evs[0].(*corefw.EventKeyAction); !ok {
		t.Fatalf("expected EventKeyAction (release), got %T", evs[0])
	}
}

// TestTaipoRightSideScancodes checks the canonical right-side scancodes
// named in the board's scenarios decode to the same letters as their
// left-side counterparts.
func TestTaipoRightSideScancodes(t *testing.T) {
	th := NewTaipoHandler()
	th.HandleEvent(corefw.KeyEvent{Kind: corefw.Press, Scancode: 36}) // N
	evs := th.HandleEvent(corefw.KeyEvent{Kind: corefw.Release, Scancode: 36})
	if len(evs) != 2 {
		t.Fatalf("expected KeyPress+KeyRelease, got %d: %#v", len(evs), evs)
	}
	ka, ok := evs[0].(*corefw.EventKeyAction)
	if !ok {
		t.Fatalf("expected EventKeyAction, got %T", evs[0])
	}
	if kp, ok := ka.Action().(corefw.KeyPress); !ok || kp.Code != hidN {
		t.Fatalf("Action() = %#v, want KeyPress{N}", ka.Action())
	}

	th2 := NewTaipoHandler()
	th2.HandleEvent(corefw.KeyEvent{Kind: corefw.Press, Scancode: 32}) // S
	evs = th2.HandleEvent(corefw.KeyEvent{Kind: corefw.Release, Scancode: 32})
	if len(evs) != 2 {
		t.Fatalf("expected KeyPress+KeyRelease, got %d: %#v", len(evs), evs)
	}
	ka, ok = evs[0].(*corefw.EventKeyAction)
	if !ok {
		t.Fatalf("expected EventKeyAction, got %T", evs[0])
	}
	if kp, ok := ka.Action().(corefw.KeyPress); !ok || kp.Code != hidS {
		t.Fatalf("Action() = %#v, want KeyPress{S}", ka.Action())
	}
}
