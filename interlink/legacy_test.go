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
	"reflect"
	"testing"

	"github.com/tangybbq/corefw"
)

func roundTrip(t *testing.T, p Packet, seq *uint8) Packet {
	t.Helper()
	buf := EncodeLegacy(p, seq)
	d := NewDecoder()
	var got Packet
	for _, b := range buf {
		if pkt, ok := d.AddByte(b); ok {
			got = pkt
		}
	}
	return got
}

func TestLegacyRoundTrip(t *testing.T) {
	var seq uint8 = 1

	idle := IdlePacket{Side: corefw.SideLeft}
	if got := roundTrip(t, idle, &seq); !reflect.DeepEqual(got, idle) {
		t.Fatalf("Idle round trip = %#v, want %#v", got, idle)
	}

	primary := PrimaryPacket{Side: corefw.SideRight, LED: corefw.RGB8{R: 17, G: 12, B: 35}}
	got := roundTrip(t, primary, &seq)
	// The low bit of each channel is dropped on the wire.
	want := PrimaryPacket{Side: corefw.SideRight, LED: corefw.RGB8{R: 16, G: 12, B: 34}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Primary round trip = %#v, want %#v", got, want)
	}

	secondary := SecondaryPacket{
		Side: corefw.SideLeft,
		Events: []corefw.KeyEvent{
			{Kind: corefw.Press, Scancode: 5},
			{Kind: corefw.Release, Scancode: 2},
			{Kind: corefw.Press, Scancode: 0},
			{Kind: corefw.Press, Scancode: 1},
		},
	}
	got = roundTrip(t, secondary, &seq)
	if !reflect.DeepEqual(got, secondary) {
		t.Fatalf("Secondary round trip = %#v, want %#v", got, secondary)
	}
}

func TestLegacySequenceWraps(t *testing.T) {
	var seq uint8 = 0x7f
	EncodeLegacy(IdlePacket{Side: corefw.SideLeft}, &seq)
	if seq != 0 {
		t.Fatalf("seq = %d, want wrap to 0", seq)
	}
}

func TestLegacyBadCRCDiscarded(t *testing.T) {
	var seq uint8 = 1
	buf := EncodeLegacy(IdlePacket{Side: corefw.SideLeft}, &seq)
	buf[len(buf)-1] ^= 0xff // corrupt one CRC byte

	d := NewDecoder()
	for _, b := range buf {
		if _, ok := d.AddByte(b); ok {
			t.Fatalf("expected corrupted packet to be discarded")
		}
	}
}
