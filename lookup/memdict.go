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
	"github.com/tangybbq/corefw/memdict"
	"github.com/tangybbq/corefw/stroke"
)

// MemDictionary adapts a parsed memdict.Dict into a lookup.Dictionary.
type MemDictionary struct {
	dict *memdict.Dict
}

// NewMemDictionary wraps a loaded memory dictionary image.
func NewMemDictionary(d *memdict.Dict) *MemDictionary {
	return &MemDictionary{dict: d}
}

// Selector starts a fresh NFA branch rooted at this dictionary.
func (m *MemDictionary) Selector() Node {
	return &memNode{dict: m.dict}
}

type memNode struct {
	dict    *memdict.Dict
	strokes []stroke.Stroke
}

func (n *memNode) Step(s stroke.Stroke) (Node, string, bool, bool) {
	strokes := make([]stroke.Stroke, len(n.strokes)+1)
	copy(strokes, n.strokes)
	strokes[len(n.strokes)] = s

	if len(strokes) > n.dict.LongestKey() {
		return nil, "", false, false
	}
	if !n.dict.Continues(strokes) {
		return nil, "", false, false
	}

	next := &memNode{dict: n.dict, strokes: strokes}
	text, ok := n.dict.Lookup(strokes)
	return next, text, ok, true
}

func (n *memNode) Count() int { return len(n.strokes) }

func (n *memNode) Unique() bool { return true }
