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

package led

import (
	"testing"

	"github.com/tangybbq/corefw"
)

func TestGlobalOverridesBase(t *testing.T) {
	var seen []corefw.RGB8
	m := New(Qwerty, func(c corefw.RGB8) { seen = append(seen, c) })
	m.Tick()
	if len(seen) != 1 || seen[0] != Init[0].Color {
		t.Fatalf("expected the Init global to win over base, got %v", seen)
	}
}

func TestClearGlobalFallsBackToBase(t *testing.T) {
	var seen []corefw.RGB8
	m := New(Qwerty, func(c corefw.RGB8) { seen = append(seen, c) })
	m.ClearGlobal()
	m.Tick()
	if len(seen) != 1 || seen[0] != Qwerty[0].Color {
		t.Fatalf("expected base to show once global clears, got %v", seen)
	}
}

func TestOneshotPlaysThenFallsThrough(t *testing.T) {
	var seen []corefw.RGB8
	m := New(Qwerty, func(c corefw.RGB8) { seen = append(seen, c) })
	m.ClearGlobal()
	m.SetOneshot(Indication{{Color: corefw.RGB8{R: 1}, Count: 1}})
	m.Tick() // shows the oneshot frame, count=1
	m.Tick() // count decrements to 0
	m.Tick() // oneshot exhausted, clears it, parks phase for a tick
	m.Tick() // shows base
	if len(seen) != 2 {
		t.Fatalf("expected two color changes, got %d: %v", len(seen), seen)
	}
	if seen[0] != (corefw.RGB8{R: 1}) {
		t.Fatalf("first frame = %v, want the oneshot color", seen[0])
	}
	if seen[1] != Qwerty[0].Color {
		t.Fatalf("second frame = %v, want base", seen[1])
	}
}

func TestOverrideBypassesStateMachine(t *testing.T) {
	var seen []corefw.RGB8
	m := New(Qwerty, func(c corefw.RGB8) { seen = append(seen, c) })
	m.ClearGlobal()
	other := corefw.RGB8{R: 9, G: 9, B: 9}
	m.SetOverride(&other)
	m.Tick()
	m.Tick()
	if len(seen) != 1 || seen[0] != other {
		t.Fatalf("expected only the override color, got %v", seen)
	}
}

func TestFitPicksClosest(t *testing.T) {
	palette := []corefw.RGB8{{R: 255}, {G: 255}, {B: 255}}
	got := Fit(corefw.RGB8{R: 200, G: 10, B: 10}, palette)
	if got != (corefw.RGB8{R: 255}) {
		t.Fatalf("Fit() = %v, want pure red", got)
	}
}
