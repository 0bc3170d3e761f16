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

package replacement

import "testing"

func roundtrip(t *testing.T, text string) {
	t.Helper()
	items, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode(%q): %v", text, err)
	}
	got := Encode(items)
	if got != text {
		t.Fatalf("Encode(Decode(%q)) = %q", text, got)
	}
}

func TestRoundTripPlain(t *testing.T) {
	roundtrip(t, "This is plain text.")
}

func TestRoundTripControls(t *testing.T) {
	roundtrip(t, "aa \x01 bb \x02 cc \x03 dd \x04 ee \x05\x01 ff \x06\x02 gg \x07\x03 hh \x08\x04 ii")
}

func TestRoundTripReplaceAndRaw(t *testing.T) {
	roundtrip(t, "aa \x09\x01_ bb \x0aS-w\x0b cc")
}

func TestDecodeCoalescesText(t *testing.T) {
	items, err := Decode("abc")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected a single coalesced Text element, got %d", len(items))
	}
	if items[0] != Text("abc") {
		t.Fatalf("expected Text(\"abc\"), got %#v", items[0])
	}
}

func TestDecodeUnterminatedRawFails(t *testing.T) {
	if _, err := Decode("\x0aS-w"); err == nil {
		t.Fatalf("expected an error for an unterminated raw run")
	}
}

func TestRoundTripCurrency(t *testing.T) {
	roundtrip(t, "one \x0c\x01$ dollar")
}

func TestDecodeCurrency(t *testing.T) {
	items, err := Decode("\x0c\x01$")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	p, ok := items[0].(Previous)
	if !ok || p.Op != Currency || p.Count != 1 || p.With != '$' {
		t.Fatalf("got %#v, want Previous{1, Currency, '$'}", items[0])
	}
}

func TestDecodeUnknownControlFails(t *testing.T) {
	if _, err := Decode("\x0e"); err == nil {
		t.Fatalf("expected an error for an unrecognized control byte")
	}
}

func TestHasRaw(t *testing.T) {
	if HasRaw("plain") {
		t.Fatalf("HasRaw(plain) = true")
	}
	if !HasRaw("x\x0aS-w\x0b") {
		t.Fatalf("HasRaw(raw) = false")
	}
}
