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

import "github.com/tangybbq/corefw"

// token packs a packet kind and side into the legacy protocol's
// control byte: 1 S kkkkkk.
func token(kind byte, side corefw.Side) byte {
	b := byte(0x80) | kind
	if side == corefw.SideRight {
		b |= 0x40
	}
	return b
}

// EncodeLegacy serializes a packet using the legacy 7-bit token
// framing, advancing seq (wrapping under 0x80) as a side effect.
func EncodeLegacy(p Packet, seq *uint8) []byte {
	var buf []byte
	switch pkt := p.(type) {
	case IdlePacket:
		buf = append(buf, token(1, pkt.Side), *seq)
	case PrimaryPacket:
		buf = append(buf, token(2, pkt.Side), *seq,
			pkt.LED.R>>1, pkt.LED.G>>1, pkt.LED.B>>1)
	case SecondaryPacket:
		buf = append(buf, token(3, pkt.Side), *seq)
		for _, ev := range pkt.Events {
			b := ev.Scancode & 0x3f
			if ev.Kind == corefw.Release {
				b |= 0x40
			}
			buf = append(buf, b)
		}
	}

	buf = append(buf, 0xff)
	crc := crc16IBMSDLC(buf)
	a, b := crcSplit(crc)
	buf = append(buf, a, b)

	next := *seq + 1
	if next >= 0x80 {
		next = 0
	}
	*seq = next
	return buf
}

type legacyInnerKind uint8

const (
	legacyInnerNone legacyInnerKind = iota
	legacyInnerIdle
	legacyInnerPrimary
	legacyInnerSecondary
)

type legacyState uint8

const (
	legacyStateInit legacyState = iota
	legacyStateFirst
	legacyStateInside
	legacyStateCRC
)

// Decoder reassembles legacy-framed packets from a raw incoming byte
// stream, one byte at a time, the way the firmware's UART ISR feeds
// bytes in as they arrive.
type Decoder struct {
	state legacyState
	token byte

	side  corefw.Side
	inner legacyInnerKind

	ledBuf [3]byte
	ledPos int
	events []corefw.KeyEvent

	crcReg   uint16
	expected [2]byte
	gotten   [2]byte
	gotPos   int
}

// NewDecoder creates a Decoder ready to accept bytes.
func NewDecoder() *Decoder {
	return &Decoder{state: legacyStateInit}
}

// AddByte feeds one incoming byte into the decoder. It returns a
// decoded packet and true once a full, CRC-valid packet has arrived;
// packets with a bad CRC are silently discarded, matching the
// reference decoder.
func (d *Decoder) AddByte(b byte) (Packet, bool) {
	if b == 0xff {
		if d.state == legacyStateInside {
			d.crcReg = crcUpdate(d.crcReg, 0xff)
			a, bb := crcSplit(crcFinalize(d.crcReg))
			d.expected = [2]byte{a, bb}
			d.gotPos = 0
			d.state = legacyStateCRC
		} else {
			d.state = legacyStateInit
		}
		return nil, false
	}
	if b&0x80 != 0 {
		d.token = b
		d.state = legacyStateFirst
		return nil, false
	}

	switch d.state {
	case legacyStateFirst:
		if d.token&0x40 == 0 {
			d.side = corefw.SideLeft
		} else {
			d.side = corefw.SideRight
		}
		switch d.token & 0x3f {
		case 1:
			d.inner = legacyInnerIdle
		case 2:
			d.inner = legacyInnerPrimary
			d.ledPos = 0
		case 3:
			d.inner = legacyInnerSecondary
			d.events = nil
		default:
			d.state = legacyStateInit
			return nil, false
		}
		d.crcReg = crcInit
		d.crcReg = crcUpdate(d.crcReg, d.token)
		d.crcReg = crcUpdate(d.crcReg, b)
		d.state = legacyStateInside
		return nil, false

	case legacyStateInside:
		d.crcReg = crcUpdate(d.crcReg, b)
		switch d.inner {
		case legacyInnerPrimary:
			if d.ledPos < 3 {
				d.ledBuf[d.ledPos] = b << 1
				d.ledPos++
			}
		case legacyInnerSecondary:
			if len(d.events) < 32 {
				ev := corefw.KeyEvent{Scancode: b & 0x3f, Kind: corefw.Press}
				if b&0x40 != 0 {
					ev.Kind = corefw.Release
				}
				d.events = append(d.events, ev)
			}
		}
		return nil, false

	case legacyStateCRC:
		d.gotten[d.gotPos] = b
		d.gotPos++
		if d.gotPos != 2 {
			return nil, false
		}
		d.state = legacyStateInit
		if d.gotten != d.expected {
			return nil, false
		}
		return d.buildPacket(), true
	}

	return nil, false
}

func (d *Decoder) buildPacket() Packet {
	switch d.inner {
	case legacyInnerIdle:
		return IdlePacket{Side: d.side}
	case legacyInnerPrimary:
		return PrimaryPacket{
			Side: d.side,
			LED:  corefw.RGB8{R: d.ledBuf[0], G: d.ledBuf[1], B: d.ledBuf[2]},
		}
	case legacyInnerSecondary:
		return SecondaryPacket{Side: d.side, Events: d.events}
	}
	return nil
}
