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

// Package lookup drives incremental, multi-dictionary longest-match
// translation of a stroke stream. Each stroke advances a set of NFA-style
// branches, one per dictionary plus a fresh branch started at this stroke;
// the dictionary with the longest match wins, and any branch now shorter
// than the winner is discarded since Plover-style steno never backtracks
// to a shorter completed match. A bounded undo history lets the asterisk
// key (or either marker stroke) repeal the most recent addition.
package lookup

import "github.com/tangybbq/corefw/stroke"

// Node is one active NFA branch: the path walked through a dictionary so
// far. It is the Go analogue of bbq-steno's boxed Selector trait object.
type Node interface {
	// Step advances the branch by one stroke. ok is false if the branch is
	// no longer viable (no dictionary entry extends this prefix). hasText
	// reports whether this step landed on an exact dictionary entry, in
	// which case text is its replacement text.
	Step(s stroke.Stroke) (next Node, text string, hasText bool, ok bool)

	// Count returns the number of strokes consumed so far on this branch.
	Count() int

	// Unique reports whether this branch represents a single unambiguous
	// candidate (as opposed to, e.g., an algorithmic dictionary that could
	// describe the same strokes several ways).
	Unique() bool
}

// Dictionary is a steno dictionary capable of starting a fresh NFA branch.
type Dictionary interface {
	Selector() Node
}

// HistoryLen bounds the undo history: the sum of desired undo depth and
// the longest stroke run any dictionary might consume.
const HistoryLen = 32

// Action is the result of feeding one stroke to a History.
type Action interface {
	isAction()
}

// Add reports that the stroke produced (or extended) a translation: Text
// should be typed, replacing the previous Strokes-1 translations' output.
type Add struct {
	Text    string
	Strokes int
}

func (Add) isAction() {}

// Undo reports that the stroke was the reserved undo stroke (the star key
// or either marker bit alone) and the most recent addition was repealed.
type Undo struct{}

func (Undo) isAction() {}

// History tracks a stroke stream against a set of dictionaries, in
// priority order, maintaining bounded undo history.
type History struct {
	dicts   []Dictionary
	entries [][]Node // oldest first; entries[len-1] is the most recent.
}

// NewHistory creates a History over the given dictionaries, highest
// priority first.
func NewHistory(dicts []Dictionary) *History {
	return &History{dicts: dicts, entries: [][]Node{nil}}
}

// Add feeds one stroke to the history, returning what the caller should do
// with it.
func (h *History) Add(s stroke.Stroke) Action {
	if s.IsStar() {
		return h.undo()
	}
	return h.addStroke(s)
}

func (h *History) addStroke(s stroke.Stroke) Action {
	last := h.entries[len(h.entries)-1]

	candidates := make([]Node, 0, len(last)+len(h.dicts))
	candidates = append(candidates, last...)
	for _, d := range h.dicts {
		candidates = append(candidates, d.Selector())
	}

	var nodes []Node
	bestLen := 0
	bestText := ""
	haveBest := false

	for _, n := range candidates {
		next, text, hasText, ok := n.Step(s)
		if !ok {
			continue
		}
		if hasText && next.Count() > bestLen {
			bestLen = next.Count()
			bestText = text
			haveBest = true
		}
		nodes = append(nodes, next)
	}

	text := bestText
	length := bestLen
	if !haveBest {
		text = s.String()
		length = 1
	}

	kept := nodes[:0]
	for _, n := range nodes {
		if n.Count() >= length {
			kept = append(kept, n)
		}
	}

	if len(h.entries) >= HistoryLen {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, kept)

	return Add{Text: text, Strokes: length}
}

func (h *History) undo() Action {
	if len(h.entries) > 1 {
		h.entries = h.entries[:len(h.entries)-1]
	}
	return Undo{}
}

// Reset discards all history but the initial empty entry, used when a
// non-steno event (like a mode switch) makes resuming translation from
// mid-stream meaningless.
func (h *History) Reset() {
	h.entries = [][]Node{nil}
}
