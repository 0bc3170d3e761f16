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

package memdict

import (
	"encoding/binary"
	"testing"

	"github.com/tangybbq/corefw/stroke"
)

// builder assembles a memdict image in memory for testing, mirroring the
// layout Load expects: header, keys arena, key-offset table, text arena,
// text-offset table.
type entry struct {
	key  []stroke.Stroke
	text string
}

func build(t *testing.T, entries []entry) []byte {
	t.Helper()

	var keys []stroke.Stroke
	var text []byte
	keyCodes := make([]uint32, len(entries))
	textCodes := make([]uint32, len(entries))

	for i, e := range entries {
		offset := uint32(len(keys))
		keys = append(keys, e.key...)
		keyCodes[i] = offset | uint32(len(e.key))<<24

		toffset := uint32(len(text))
		text = append(text, []byte(e.text)...)
		textCodes[i] = toffset | uint32(len(e.text))<<24
	}

	le := binary.LittleEndian
	put32 := func(buf []byte, v uint32) []byte {
		tmp := make([]byte, 4)
		le.PutUint32(tmp, v)
		return append(buf, tmp...)
	}
	putU32Table := func(buf []byte, vals []uint32) []byte {
		for _, v := range vals {
			buf = put32(buf, v)
		}
		return buf
	}
	putStrokeTable := func(buf []byte, vals []stroke.Stroke) []byte {
		for _, v := range vals {
			buf = put32(buf, uint32(v))
		}
		return buf
	}

	size := uint32(len(entries))
	keysOffset := uint32(headerSize)
	keysLength := uint32(len(keys))
	keyPosOffset := keysOffset + keysLength*4
	textOffset := keyPosOffset + size*4
	textLength := uint32(len(text))
	textTableOffset := textOffset + textLength

	buf := []byte(Magic)
	buf = put32(buf, size)
	buf = put32(buf, keysOffset)
	buf = put32(buf, keysLength)
	buf = put32(buf, keyPosOffset)
	buf = put32(buf, textOffset)
	buf = put32(buf, textLength)
	buf = put32(buf, textTableOffset)

	buf = putStrokeTable(buf, keys)
	buf = putU32Table(buf, keyCodes)
	buf = append(buf, text...)
	buf = putU32Table(buf, textCodes)

	return buf
}

func mustStroke(t *testing.T, text string) stroke.Stroke {
	t.Helper()
	s, err := stroke.Parse(text)
	if err != nil {
		t.Fatalf("stroke.Parse(%q): %v", text, err)
	}
	return s
}

func TestLoadAndLookup(t *testing.T) {
	kat := mustStroke(t, "KAT")
	katS := mustStroke(t, "-S")

	entries := []entry{
		{key: []stroke.Stroke{kat}, text: "cat"},
		{key: []stroke.Stroke{kat, katS}, text: "cats"},
	}
	data := build(t, entries)

	d, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}

	text, ok := d.Lookup([]stroke.Stroke{kat})
	if !ok || text != "cat" {
		t.Fatalf("Lookup(KAT) = %q, %v", text, ok)
	}

	text, ok = d.Lookup([]stroke.Stroke{kat, katS})
	if !ok || text != "cats" {
		t.Fatalf("Lookup(KAT,-S) = %q, %v", text, ok)
	}

	if _, ok := d.Lookup([]stroke.Stroke{katS}); ok {
		t.Fatalf("Lookup(-S) unexpectedly matched")
	}
}

func TestPrefixLookup(t *testing.T) {
	kat := mustStroke(t, "KAT")
	katS := mustStroke(t, "-S")
	other := mustStroke(t, "TPHO")

	entries := []entry{
		{key: []stroke.Stroke{kat}, text: "cat"},
		{key: []stroke.Stroke{kat, katS}, text: "cats"},
	}
	data := build(t, entries)
	d, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	used, text, ok := d.PrefixLookup([]stroke.Stroke{kat, katS, other})
	if !ok {
		t.Fatalf("PrefixLookup did not match")
	}
	if used != 2 || text != "cats" {
		t.Fatalf("PrefixLookup = (%d, %q), want (2, \"cats\")", used, text)
	}

	used, text, ok = d.PrefixLookup([]stroke.Stroke{kat})
	if !ok || used != 1 || text != "cat" {
		t.Fatalf("PrefixLookup(KAT) = (%d, %q, %v)", used, text, ok)
	}

	if _, _, ok := d.PrefixLookup([]stroke.Stroke{other}); ok {
		t.Fatalf("PrefixLookup matched an unrelated stroke")
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := build(t, []entry{{key: []stroke.Stroke{mustStroke(t, "KAT")}, text: "cat"}})
	data[0] = 'x'
	if _, err := Load(data); err == nil {
		t.Fatalf("expected an error for bad magic")
	}
}

func TestLoadRejectsTruncated(t *testing.T) {
	data := build(t, []entry{{key: []stroke.Stroke{mustStroke(t, "KAT")}, text: "cat"}})
	if _, err := Load(data[:len(data)-4]); err == nil {
		t.Fatalf("expected an error for a truncated image")
	}
}

func TestLoadRejectsUnsortedKeys(t *testing.T) {
	// S is the leftmost key (highest bit), Z the rightmost (lowest bit),
	// so a lone "S" stroke outranks a lone "Z" stroke numerically; listing
	// S first violates the strictly-increasing key invariant Load is
	// expected to enforce.
	s := mustStroke(t, "S")
	z := mustStroke(t, "-Z")

	entries := []entry{
		{key: []stroke.Stroke{s}, text: "ess"},
		{key: []stroke.Stroke{z}, text: "zee"},
	}
	if _, err := Load(build(t, entries)); err == nil {
		t.Fatalf("expected an error for unsorted keys")
	}
}

func TestLongestKey(t *testing.T) {
	kat := mustStroke(t, "KAT")
	katS := mustStroke(t, "-S")
	entries := []entry{
		{key: []stroke.Stroke{kat}, text: "cat"},
		{key: []stroke.Stroke{kat, katS}, text: "cats"},
	}
	d, err := Load(build(t, entries))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := d.LongestKey(); got != 2 {
		t.Fatalf("LongestKey() = %d, want 2", got)
	}
}
