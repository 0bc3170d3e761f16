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

package interlink

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/tangybbq/corefw"
)

func cobsRoundTrip(t *testing.T, dec *CobsDecoder, data []byte) []byte {
	t.Helper()
	encoded := cobsEncode(data)
	var got []byte
	var found bool
	for _, b := range encoded {
		if out, ok := dec.AddByte(b); ok {
			if found {
				t.Fatalf("multiple frames decoded from one encoding")
			}
			got = out
			found = true
		}
	}
	if !found {
		t.Fatalf("no frame decoded")
	}
	return got
}

func TestCobsRoundTrip(t *testing.T) {
	dec := NewCobsDecoder()

	got := cobsRoundTrip(t, dec, []byte{0, 1, 0, 2, 0, 3, 0, 4})
	if !bytes.Equal(got, []byte{0, 1, 0, 2, 0, 3, 0, 4}) {
		t.Fatalf("got %v", got)
	}

	got = cobsRoundTrip(t, dec, []byte{1, 2, 3, 0xff, 0xfe})
	if !bytes.Equal(got, []byte{1, 2, 3, 0xff, 0xfe}) {
		t.Fatalf("got %v", got)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	r := Record{
		Keys: 0x12345678,
		LED0: corefw.RGB8{R: 1, G: 2, B: 3},
		LED1: corefw.RGB8{R: 4, G: 5, B: 6},
	}
	framed := EncodeRecord(r)

	dec := NewCobsDecoder()
	var payload []byte
	for _, b := range framed {
		if out, ok := dec.AddByte(b); ok {
			payload = out
		}
	}
	got, ok := DecodeRecord(payload)
	if !ok {
		t.Fatalf("DecodeRecord failed to validate a freshly encoded record")
	}
	if !reflect.DeepEqual(got, r) {
		t.Fatalf("got %#v, want %#v", got, r)
	}
}

func TestRecordRejectsBadMagic(t *testing.T) {
	payload := make([]byte, recordPayloadLen)
	if _, ok := DecodeRecord(payload); ok {
		t.Fatalf("expected all-zero payload to fail magic check")
	}
}
