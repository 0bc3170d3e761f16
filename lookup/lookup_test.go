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

package lookup

import (
	"encoding/binary"
	"testing"

	"github.com/tangybbq/corefw/memdict"
	"github.com/tangybbq/corefw/stroke"
)

const headerSize = 8 + 7*4

func mustStroke(t *testing.T, text string) stroke.Stroke {
	t.Helper()
	s, err := stroke.Parse(text)
	if err != nil {
		t.Fatalf("stroke.Parse(%q): %v", text, err)
	}
	return s
}

func buildDict(t *testing.T, entries map[string]string) *memdict.Dict {
	t.Helper()

	type pair struct {
		key  []stroke.Stroke
		text string
	}
	var pairs []pair
	for k, v := range entries {
		var ks []stroke.Stroke
		for _, part := range splitWords(k) {
			ks = append(ks, mustStroke(t, part))
		}
		pairs = append(pairs, pair{key: ks, text: v})
	}
	// Simple insertion sort by stroke sequence for a valid sorted table.
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && less(pairs[j].key, pairs[j-1].key); j-- {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
		}
	}

	var keys []stroke.Stroke
	var text []byte
	keyCodes := make([]uint32, len(pairs))
	textCodes := make([]uint32, len(pairs))
	for i, p := range pairs {
		off := uint32(len(keys))
		keys = append(keys, p.key...)
		keyCodes[i] = off | uint32(len(p.key))<<24

		toff := uint32(len(text))
		text = append(text, []byte(p.text)...)
		textCodes[i] = toff | uint32(len(p.text))<<24
	}

	le := binary.LittleEndian
	put32 := func(buf []byte, v uint32) []byte {
		tmp := make([]byte, 4)
		le.PutUint32(tmp, v)
		return append(buf, tmp...)
	}

	size := uint32(len(pairs))
	keysOffset := uint32(headerSize)
	keysLength := uint32(len(keys))
	keyPosOffset := keysOffset + keysLength*4
	textOffset := keyPosOffset + size*4
	textLength := uint32(len(text))
	textTableOffset := textOffset + textLength

	buf := []byte(memdict.Magic)
	buf = put32(buf, size)
	buf = put32(buf, keysOffset)
	buf = put32(buf, keysLength)
	buf = put32(buf, keyPosOffset)
	buf = put32(buf, textOffset)
	buf = put32(buf, textLength)
	buf = put32(buf, textTableOffset)
	for _, k := range keys {
		buf = put32(buf, uint32(k))
	}
	for _, c := range keyCodes {
		buf = put32(buf, c)
	}
	buf = append(buf, text...)
	for _, c := range textCodes {
		buf = put32(buf, c)
	}

	d, err := memdict.Load(buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return d
}

func splitWords(s string) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == ' ' {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

func less(a, b []stroke.Stroke) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func TestHistoryLongestMatch(t *testing.T) {
	d := buildDict(t, map[string]string{
		"KAT":    "cat",
		"KAT -S": "cats",
	})
	h := NewHistory([]Dictionary{NewMemDictionary(d)})

	act := h.Add(mustStroke(t, "KAT"))
	add, ok := act.(Add)
	if !ok || add.Text != "cat" || add.Strokes != 1 {
		t.Fatalf("first stroke: got %#v", act)
	}

	act = h.Add(mustStroke(t, "-S"))
	add, ok = act.(Add)
	if !ok || add.Text != "cats" || add.Strokes != 2 {
		t.Fatalf("second stroke: got %#v", act)
	}
}

func TestHistoryUndo(t *testing.T) {
	d := buildDict(t, map[string]string{"KAT": "cat"})
	h := NewHistory([]Dictionary{NewMemDictionary(d)})

	h.Add(mustStroke(t, "KAT"))
	act := h.Add(mustStroke(t, "*"))
	if _, ok := act.(Undo); !ok {
		t.Fatalf("expected Undo, got %#v", act)
	}
}

func TestHistoryFallsBackToRawStroke(t *testing.T) {
	d := buildDict(t, map[string]string{"KAT": "cat"})
	h := NewHistory([]Dictionary{NewMemDictionary(d)})

	s := mustStroke(t, "TPHO")
	act := h.Add(s)
	add, ok := act.(Add)
	if !ok || add.Text != s.String() || add.Strokes != 1 {
		t.Fatalf("unmatched stroke: got %#v", act)
	}
}

func TestSymbolDictDigits(t *testing.T) {
	h := NewHistory([]Dictionary{SymbolDict{}})
	s := mustStroke(t, "#S")
	act := h.Add(s)
	add, ok := act.(Add)
	if !ok || add.Text != "1" {
		t.Fatalf("digit stroke: got %#v", act)
	}
}
