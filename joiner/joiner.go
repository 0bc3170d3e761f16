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

// Package joiner turns a stream of dictionary lookup results into a stream
// of (backspace-count, text-to-type) edits, threading capitalization,
// inter-word spacing and fingerspelling-stitch state from one stroke to the
// next. It keeps a bounded record of what it has typed so an undo stroke
// can restore the buffer to its state before the most recent addition, the
// same bounded-history-with-periodic-compaction idiom tcell's buffered.go
// uses for its screen cell buffer.
package joiner

import (
	"strings"
	"unicode"

	"github.com/tangybbq/corefw/lookup"
	"github.com/tangybbq/corefw/replacement"
)

// MinTyped is the amount of typed history kept once the buffer is
// compacted.
const MinTyped = 256

// MaxTyped is the buffer size that triggers compaction back to MinTyped.
// It must exceed MinTyped by at least the longest replacement text any
// dictionary entry can produce, or a Previous(n, ...) action could run out
// of history to rewrite.
const MaxTyped = MinTyped*2 + 64

// Joined is one computed edit: delete Remove characters from the end of
// what has been typed, then type Append.
type Joined struct {
	Remove int
	Append string
}

// state is the capitalization/spacing context carried from one stroke's
// Add to the next.
type state struct {
	cap        bool
	space      bool
	forceSpace bool
	stitch     bool
}

// record is the history entry for one completed Add, letting Undo reverse
// it exactly.
type record struct {
	remove  int
	removed string // characters removed, in the order they were popped (reverse of typed order)
	append  string
	state   state
}

// Joiner accumulates typed output and threads orthographic state across
// strokes.
type Joiner struct {
	typed   []rune
	history []record
	actions []Joined
}

// New creates an empty Joiner.
func New() *Joiner {
	return &Joiner{}
}

// Add feeds one lookup.Action to the joiner, decoding its text (if any)
// through the replacement control-byte language and computing the
// resulting edit.
func (j *Joiner) Add(action lookup.Action) {
	j.shrink()

	switch a := action.(type) {
	case lookup.Undo:
		j.undo()
	case lookup.Add:
		items, err := replacement.Decode(a.Text)
		if err != nil {
			items = []replacement.Replacement{replacement.Text(a.Text)}
		}
		j.doAdd(items, a.Strokes)
	}
}

func (j *Joiner) doAdd(items []replacement.Replacement, strokes int) {
	remove := 0
	var tmp []record
	for i := 1; i < strokes && len(j.history) > 0; i++ {
		elt := j.history[len(j.history)-1]
		j.history = j.history[:len(j.history)-1]
		remove += len([]rune(elt.append)) - elt.remove
		tmp = append(tmp, elt)
	}
	for i := len(tmp) - 1; i >= 0; i-- {
		j.history = append(j.history, tmp[i])
	}
	if remove < 0 {
		remove = 0
	}

	n := newNext(j, remove, strokes)

	for i := 0; i < remove; i++ {
		if len(j.typed) == 0 {
			n.removed.WriteByte('?')
			continue
		}
		ch := j.typed[len(j.typed)-1]
		j.typed = j.typed[:len(j.typed)-1]
		n.removed.WriteRune(ch)
	}

	for _, item := range items {
		n.addReplacement(j, item)
	}

	appendText := n.append.String()
	j.typed = append(j.typed, []rune(appendText)...)

	j.history = append(j.history, record{
		remove:  n.remove,
		removed: n.removed.String(),
		append:  appendText,
		state:   n.nextState,
	})
	j.actions = append(j.actions, Joined{Remove: n.remove, Append: appendText})
}

func (j *Joiner) undo() {
	if len(j.history) == 0 {
		return
	}
	last := j.history[len(j.history)-1]
	j.history = j.history[:len(j.history)-1]

	removedRunes := []rune(last.removed)
	for i, k := 0, len(removedRunes)-1; i < k; i, k = i+1, k-1 {
		removedRunes[i], removedRunes[k] = removedRunes[k], removedRunes[i]
	}

	appendLen := len([]rune(last.append))
	if appendLen > len(j.typed) {
		appendLen = len(j.typed)
	}
	j.typed = j.typed[:len(j.typed)-appendLen]
	j.typed = append(j.typed, removedRunes...)

	j.actions = append(j.actions, Joined{Remove: appendLen, Append: string(removedRunes)})
}

// Pop retrieves the oldest pending edit, if any.
func (j *Joiner) Pop() (Joined, bool) {
	if len(j.actions) == 0 {
		return Joined{}, false
	}
	act := j.actions[0]
	j.actions = j.actions[1:]
	return act, true
}

// Typed returns a copy of the text the joiner believes is currently on
// screen, for debugging and tests.
func (j *Joiner) Typed() string {
	return string(j.typed)
}

func (j *Joiner) shrink() {
	if len(j.typed) >= MaxTyped && len(j.typed) > MinTyped {
		j.typed = append([]rune(nil), j.typed[len(j.typed)-MinTyped:]...)
	}
}

// next accumulates the edit being computed for one Add call.
type next struct {
	remove    int
	removed   strings.Builder
	append    strings.Builder
	state     state
	nextState state
}

func newNext(j *Joiner, remove, strokes int) *next {
	st := state{cap: true}
	pos := len(j.history) - strokes
	if pos >= 0 {
		st = j.history[pos].state
	}
	return &next{
		remove:    remove,
		state:     st,
		nextState: state{cap: st.cap, space: st.space},
	}
}

func (n *next) addReplacement(j *Joiner, item replacement.Replacement) {
	switch v := item.(type) {
	case replacement.Text:
		if (n.state.space && (!n.state.stitch || !n.nextState.stitch)) ||
			(n.state.forceSpace || n.nextState.forceSpace) {
			n.append.WriteByte(' ')
			n.state.space = false
			n.state.forceSpace = false
			n.nextState.forceSpace = false
		}
		for _, ch := range string(v) {
			if n.state.cap && isAlnum(ch) {
				n.append.WriteRune(unicode.ToUpper(ch))
				n.state.cap = false
				n.nextState.cap = false
			} else {
				n.append.WriteRune(ch)
			}
		}
		n.nextState.space = true

	case replacement.DeleteSpace:
		n.state.space = false
		n.nextState.space = false

	case replacement.CapNext:
		n.nextState.cap = true

	case replacement.ForceSpace:
		n.state.forceSpace = true
		n.nextState.forceSpace = true

	case replacement.Stitch:
		n.nextState.stitch = true

	case replacement.Previous:
		switch v.Op {
		case replacement.Capitalize:
			n.fixPriorWords(j, v.Count, capTitle)
		case replacement.Lowerize:
			n.fixPriorWords(j, v.Count, capLower)
		case replacement.Upcase:
			n.fixPriorWords(j, v.Count, capUpper)
		case replacement.PreviousDeleteSpace:
			n.replaceSpaces(j, v.Count, 0, false)
		case replacement.ReplaceSpace:
			n.replaceSpaces(j, v.Count, v.With, v.With != 0)
		case replacement.Currency:
			n.fixCurrency(j, v.With)
		}

	case replacement.Raw:
		// Raw keystrokes bypass the typed buffer entirely: the dispatch
		// layer sends them straight to the HID stage.
	}
}

type capMode int

const (
	capUpper capMode = iota
	capLower
	capTitle
)

// fixPriorWords walks backward over the typed buffer counting word
// boundaries, removes the last `words` words, and retypes them converted
// to the given capitalization.
func (n *next) fixPriorWords(j *Joiner, words int, mode capMode) {
	var buf []rune
	walk := newWordWalk()

	for len(j.typed) > 0 {
		ch := j.typed[len(j.typed)-1]
		walk.visit(ch)
		if walk.done(words) {
			break
		}
		j.typed = j.typed[:len(j.typed)-1]
		buf = append(buf, ch)
		n.removed.WriteRune(ch)
		n.remove++
	}

	convertCase(buf, mode, &n.append)
}

// convertCase reads buf (characters in the reverse order they were popped
// from the typed buffer, i.e. oldest-popped-last) and writes the
// recapitalized, forward-ordered text to dest.
func convertCase(buf []rune, mode capMode, dest *strings.Builder) {
	walk := newWordWalk()
	for i := len(buf) - 1; i >= 0; i-- {
		ch := buf[i]
		walk.visit(ch)
		if !walk.isInWord() {
			dest.WriteRune(ch)
			continue
		}
		switch {
		case mode == capLower:
			dest.WriteRune(unicode.ToLower(ch))
		case walk.isFirst() && (mode == capUpper || mode == capTitle):
			dest.WriteRune(unicode.ToUpper(ch))
		case !walk.isFirst() && mode == capUpper:
			dest.WriteRune(unicode.ToUpper(ch))
		default:
			dest.WriteRune(ch)
		}
	}
}

// replaceSpaces pops characters off the typed buffer until count spaces
// have been consumed, then retypes them with each consumed space replaced
// by `with` (or dropped entirely if hasWith is false).
func (n *next) replaceSpaces(j *Joiner, count int, with rune, hasWith bool) {
	var buf []rune
	seen := 0
	for len(j.typed) > 0 {
		ch := j.typed[len(j.typed)-1]
		j.typed = j.typed[:len(j.typed)-1]
		buf = append(buf, ch)
		n.removed.WriteRune(ch)
		n.remove++
		if ch == ' ' {
			seen++
			if seen == count {
				break
			}
		}
	}
	for i := len(buf) - 1; i >= 0; i-- {
		ch := buf[i]
		if ch == ' ' {
			if hasWith {
				n.append.WriteRune(with)
			}
		} else {
			n.append.WriteRune(ch)
		}
	}
}

// fixCurrency pops the trailing run of digits, commas, and decimal points
// off the typed buffer and retypes it with sym prepended, turning an
// already-typed "1234.56" into "$1234.56" when sym is '$'.
func (n *next) fixCurrency(j *Joiner, sym rune) {
	var buf []rune
	for len(j.typed) > 0 {
		ch := j.typed[len(j.typed)-1]
		if !unicode.IsDigit(ch) && ch != ',' && ch != '.' {
			break
		}
		j.typed = j.typed[:len(j.typed)-1]
		buf = append(buf, ch)
		n.removed.WriteRune(ch)
		n.remove++
	}

	n.append.WriteRune(sym)
	for i := len(buf) - 1; i >= 0; i-- {
		n.append.WriteRune(buf[i])
	}
}

func isAlnum(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// wordWalk tracks word boundaries while walking text one character at a
// time, in either direction: a word is a maximal run of alphanumeric
// characters.
type wordWalk struct {
	inWord bool
	first  bool
	word   int
}

func newWordWalk() *wordWalk {
	return &wordWalk{first: true}
}

func (w *wordWalk) visit(ch rune) {
	chInWord := isAlnum(ch)
	if chInWord != w.inWord {
		w.inWord = chInWord
		w.first = true
		if chInWord {
			w.word++
		}
	} else {
		w.first = false
	}
}

func (w *wordWalk) isFirst() bool   { return w.inWord && w.first }
func (w *wordWalk) isInWord() bool  { return w.inWord }
func (w *wordWalk) done(n int) bool { return !w.inWord && w.word == n }
