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

package joiner

import (
	"testing"

	"github.com/tangybbq/corefw/lookup"
)

func TestSimpleWords(t *testing.T) {
	j := New()
	j.Add(lookup.Add{Text: "cat", Strokes: 1})
	if j.Typed() != "Cat" {
		t.Fatalf("Typed() = %q, want %q", j.Typed(), "Cat")
	}
	j.Add(lookup.Add{Text: "dog", Strokes: 1})
	if j.Typed() != "Cat dog" {
		t.Fatalf("Typed() = %q, want %q", j.Typed(), "Cat dog")
	}
}

func TestCapNext(t *testing.T) {
	j := New()
	j.Add(lookup.Add{Text: "\x02hello", Strokes: 1})
	if j.Typed() != "Hello" {
		t.Fatalf("Typed() = %q, want %q", j.Typed(), "Hello")
	}
}

func TestDeleteSpace(t *testing.T) {
	j := New()
	j.Add(lookup.Add{Text: "cat", Strokes: 1})
	j.Add(lookup.Add{Text: "\x01s", Strokes: 1})
	if j.Typed() != "Cats" {
		t.Fatalf("Typed() = %q, want %q", j.Typed(), "Cats")
	}
}

func TestLeadingCapitalizesFirstWord(t *testing.T) {
	j := New()
	j.Add(lookup.Add{Text: "hello", Strokes: 1})
	if j.Typed() != "Hello" {
		t.Fatalf("leading Typed() = %q, want %q", j.Typed(), "Hello")
	}
}

func TestUndoRestoresBuffer(t *testing.T) {
	j := New()
	j.Add(lookup.Add{Text: "hello", Strokes: 1})
	j.Add(lookup.Add{Text: "world", Strokes: 1})
	before := j.Typed()
	j.Add(lookup.Undo{})
	if j.Typed() == before {
		t.Fatalf("Undo did not change buffer")
	}
	if j.Typed() != "Hello" {
		t.Fatalf("after undo Typed() = %q, want %q", j.Typed(), "Hello")
	}
}

func TestPreviousCapitalize(t *testing.T) {
	j := New()
	j.Add(lookup.Add{Text: "hello world", Strokes: 1})
	j.Add(lookup.Add{Text: "\x05\x01", Strokes: 1}) // capitalize previous 1 word
	if j.Typed() != "Hello World" {
		t.Fatalf("Typed() = %q, want %q", j.Typed(), "Hello World")
	}
}

func TestReplaceSpace(t *testing.T) {
	j := New()
	j.Add(lookup.Add{Text: "one", Strokes: 1})
	j.Add(lookup.Add{Text: "two", Strokes: 1})
	j.Add(lookup.Add{Text: "\x09\x01-", Strokes: 1}) // replace previous 1 space with '-'
	if j.Typed() != "One-two" {
		t.Fatalf("Typed() = %q, want %q", j.Typed(), "One-two")
	}
}

func TestRetroCurrency(t *testing.T) {
	j := New()
	j.Add(lookup.Add{Text: "1234.56", Strokes: 1})
	j.Add(lookup.Add{Text: "\x0c\x01$", Strokes: 1}) // prefix the previous digit run with '$'
	if j.Typed() != "$1234.56" {
		t.Fatalf("Typed() = %q, want %q", j.Typed(), "$1234.56")
	}
}

func TestPopDrainsActionQueue(t *testing.T) {
	j := New()
	j.Add(lookup.Add{Text: "hi", Strokes: 1})
	act, ok := j.Pop()
	if !ok || act.Append != "Hi" {
		t.Fatalf("Pop() = %#v, %v", act, ok)
	}
	if _, ok := j.Pop(); ok {
		t.Fatalf("expected queue to be drained")
	}
}
