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

import "github.com/tangybbq/corefw/stroke"

// digitFor maps each of the ten digit-bearing keys (in canonical order) to
// its printed digit, mirroring stroke.go's numOrder table.
var digitFor = map[stroke.Stroke]byte{
	1 << 21: '1', // S
	1 << 20: '2', // T
	1 << 18: '3', // P
	1 << 16: '4', // H
	1 << 14: '5', // A
	1 << 13: '0', // O
	1 << 9:  '6', // F
	1 << 7:  '7', // P (right)
	1 << 5:  '8', // L
	1 << 3:  '9', // T (right)
}

// SymbolDict is an algorithmic, single-stroke fallback dictionary: it
// never needs a memdict image because it computes its answer directly
// from the stroke's bit pattern. It handles the number row (the digit
// keys held together with the number bar), turning e.g. "1-9" into the
// text "19" rather than requiring every number to be a memdict entry.
type SymbolDict struct{}

// Selector starts a branch for the symbol dictionary. Because every match
// is exactly one stroke long, the branch never survives past its first
// step: a second Step call always reports not-ok.
func (SymbolDict) Selector() Node {
	return &symbolNode{}
}

type symbolNode struct {
	done bool
}

func (n *symbolNode) Step(s stroke.Stroke) (Node, string, bool, bool) {
	if n.done {
		return nil, "", false, false
	}
	text, ok := decodeDigits(s)
	if !ok {
		return nil, "", false, false
	}
	return &symbolNode{done: true}, text, true, true
}

func (n *symbolNode) Count() int {
	if n.done {
		return 1
	}
	return 0
}

func (n *symbolNode) Unique() bool { return false }

// decodeDigits renders a number-bar stroke as its digit string, in
// canonical left-to-right key order, skipping any non-digit key.
func decodeDigits(s stroke.Stroke) (string, bool) {
	if !s.HasAny(stroke.Num) {
		return "", false
	}
	if !s.HasAny(stroke.Digits) {
		return "", false
	}
	var out []byte
	for bit, ch := range digitFor {
		if s.HasAny(bit) {
			out = append(out, ch)
		}
	}
	if len(out) == 0 {
		return "", false
	}
	// Canonical order: sort by descending bit value (left-to-right key
	// order), since map iteration order is unspecified.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			bi, bj := digitBit(out[j-1]), digitBit(out[j])
			if bi < bj {
				out[j-1], out[j] = out[j], out[j-1]
			}
		}
	}
	return string(out), true
}

func digitBit(ch byte) stroke.Stroke {
	for bit, c := range digitFor {
		if c == ch {
			return bit
		}
	}
	return 0
}
