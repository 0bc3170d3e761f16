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

// Package memdict reads a steno dictionary stored as a single flat binary
// image: a directly-mapped table of offsets and lengths into a shared
// key/text arena, the way terminfo.go parses a packed terminfo database
// into friendly Go slices without ever touching a raw pointer. Everything
// here is bounds-checked against the buffer length once at Load time, so a
// corrupt or truncated image fails fast instead of reading out of bounds.
package memdict

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/tangybbq/corefw/stroke"
)

// Magic is the fixed 8-byte prefix identifying a memdict image.
const Magic = "stenodct"

const headerSize = 8 + 7*4

// Dict is a parsed, ready-to-query memory dictionary image.
type Dict struct {
	size       uint32
	keys       []stroke.Stroke
	keyOffsets []uint32
	text       []byte
	textOffset []uint32
}

// Load parses a memdict image. It validates the magic prefix and every
// offset/length pair against the buffer bounds before returning, so every
// subsequent accessor can index without a further bounds check.
func Load(data []byte) (*Dict, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("memdict: image too short for header (%d bytes)", len(data))
	}
	if string(data[0:8]) != Magic {
		return nil, fmt.Errorf("memdict: bad magic %q", data[0:8])
	}
	le := binary.LittleEndian
	size := le.Uint32(data[8:12])
	keysOffset := le.Uint32(data[12:16])
	keysLength := le.Uint32(data[16:20])
	keyPosOffset := le.Uint32(data[20:24])
	textOffset := le.Uint32(data[24:28])
	textLength := le.Uint32(data[28:32])
	textTableOffset := le.Uint32(data[32:36])

	keys, err := sliceU32(data, keysOffset, keysLength, "keys")
	if err != nil {
		return nil, err
	}
	keyOffsets, err := sliceU32(data, keyPosOffset, size, "key offsets")
	if err != nil {
		return nil, err
	}
	textBlock, err := sliceBytes(data, textOffset, textLength, "text")
	if err != nil {
		return nil, err
	}
	textOffsets, err := sliceU32(data, textTableOffset, size, "text offsets")
	if err != nil {
		return nil, err
	}

	strokes := make([]stroke.Stroke, len(keys))
	for i, v := range keys {
		strokes[i] = stroke.Stroke(v)
	}

	d := &Dict{
		size:       size,
		keys:       strokes,
		keyOffsets: keyOffsets,
		text:       textBlock,
		textOffset: textOffsets,
	}
	if err := d.checkSorted(); err != nil {
		return nil, err
	}
	return d, nil
}

// checkSorted verifies the key table is in strictly increasing order, the
// invariant every other method's binary search depends on. Load rejects an
// unsorted image outright rather than let search silently return wrong or
// missing matches, the same fail-closed handling spec.md gives a bad magic
// or an out-of-range offset.
func (d *Dict) checkSorted() error {
	for i := 1; i < d.Len(); i++ {
		if compareStrokes(d.keyAt(i-1), d.keyAt(i)) >= 0 {
			return fmt.Errorf("memdict: keys not sorted at entry %d", i)
		}
	}
	return nil
}

func sliceBytes(data []byte, offset, length uint32, what string) ([]byte, error) {
	start := uint64(offset)
	end := start + uint64(length)
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("memdict: %s table [%d:%d] out of bounds (image is %d bytes)", what, start, end, len(data))
	}
	return data[start:end], nil
}

func sliceU32(data []byte, offset, count uint32, what string) ([]uint32, error) {
	raw, err := sliceBytes(data, offset, count*4, what)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
	}
	return out, nil
}

// decode splits a packed offset/length code: the low 24 bits are an offset
// into the shared arena, the high 8 bits are the element count.
func decode(code uint32) (offset, length uint32) {
	return code & 0x00ffffff, code >> 24
}

// Len returns the number of entries in the dictionary.
func (d *Dict) Len() int { return int(d.size) }

// GetKey returns the stroke sequence for entry n.
func (d *Dict) GetKey(n int) []stroke.Stroke {
	offset, length := decode(d.keyOffsets[n])
	return d.keys[offset : offset+length]
}

// GetText returns the encoded replacement text for entry n.
func (d *Dict) GetText(n int) string {
	offset, length := decode(d.textOffset[n])
	return string(d.text[offset : offset+length])
}

func (d *Dict) keyAt(n int) []stroke.Stroke { return d.GetKey(n) }

// compareStrokes orders two stroke sequences lexicographically by the
// numeric value of each stroke in turn, then by length.
func compareStrokes(a, b []stroke.Stroke) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// search performs a binary search over entries n..d.Len() for a sequence
// exactly matching key, returning (position, found).
func (d *Dict) search(start int, key []stroke.Stroke) (int, bool) {
	n := d.Len()
	pos := sort.Search(n-start, func(i int) bool {
		return compareStrokes(d.keyAt(start+i), key) >= 0
	})
	pos += start
	if pos < n && compareStrokes(d.keyAt(pos), key) == 0 {
		return pos, true
	}
	return pos, false
}

// Lookup finds an entry whose key exactly matches the given stroke
// sequence.
func (d *Dict) Lookup(key []stroke.Stroke) (string, bool) {
	pos, ok := d.search(0, key)
	if !ok {
		return "", false
	}
	return d.GetText(pos), true
}

// PrefixLookup finds the longest dictionary entry whose key is a prefix of
// query, returning the number of strokes consumed and the matched text.
// This mirrors memdict.rs's greedy widening search: it keeps trying longer
// prefixes from the narrowing candidate window until the whole query is
// consumed or no further prefix can possibly match.
func (d *Dict) PrefixLookup(query []stroke.Stroke) (used int, text string, ok bool) {
	if len(query) == 0 {
		return 0, "", false
	}

	var best int = -1
	start := 0
	n := 1

	for {
		sub := query[:n]
		pos, found := d.search(start, sub)
		if found {
			best = pos
			if n == len(query) {
				break
			}
			start = pos + 1
			n++
			continue
		}
		if n == len(query) {
			break
		}
		if pos >= d.Len() {
			break
		}
		if startsWith(d.GetKey(pos), sub) {
			start = pos
			n++
			continue
		}
		break
	}

	if best < 0 {
		return 0, "", false
	}
	key := d.GetKey(best)
	return len(key), d.GetText(best), true
}

func startsWith(key, prefix []stroke.Stroke) bool {
	if len(prefix) > len(key) {
		return false
	}
	for i := range prefix {
		if key[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Continues reports whether any entry in the dictionary has prefix as a
// strict key prefix (including an exact match), i.e. whether it is still
// possible for a longer stroke sequence to find a match by extending
// prefix. Callers use this to decide whether to keep an NFA branch alive.
func (d *Dict) Continues(prefix []stroke.Stroke) bool {
	if len(prefix) == 0 {
		return d.Len() > 0
	}
	pos, found := d.search(0, prefix)
	if found {
		return true
	}
	return pos < d.Len() && startsWith(d.GetKey(pos), prefix)
}

// LongestKey returns the length, in strokes, of the longest key in the
// dictionary. Callers use this to bound how many strokes to buffer before
// giving up on a longer match.
func (d *Dict) LongestKey() int {
	best := 0
	for i := 0; i < d.Len(); i++ {
		if l := len(d.GetKey(i)); l > best {
			best = l
		}
	}
	return best
}
