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
	"encoding/binary"

	"github.com/tangybbq/corefw"
)

// cobsEncode frames data with standard COBS stuffing, terminated by a
// trailing zero byte. Every run of non-zero bytes is prefixed by its
// length (plus one); a zero byte in the input becomes the boundary
// that triggers writing the previous run's length.
func cobsEncode(data []byte) []byte {
	buf := []byte{0}
	last := 0
	push := func(b byte) {
		if b != 0 {
			buf = append(buf, b)
			return
		}
		buf[last] = byte(len(buf) - last)
		last = len(buf)
		buf = append(buf, 0)
	}
	for _, b := range data {
		push(b)
	}
	buf[last] = byte(len(buf) - last)
	buf = append(buf, 0)
	return buf
}

type cobsDecodeState uint8

const (
	cobsStart cobsDecodeState = iota
	cobsRunning
)

// CobsDecoder reassembles COBS-framed packets from a raw byte stream
// one byte at a time.
type CobsDecoder struct {
	state cobsDecodeState
	count int
	buf   []byte
}

// NewCobsDecoder creates a CobsDecoder ready to accept bytes.
func NewCobsDecoder() *CobsDecoder {
	return &CobsDecoder{state: cobsStart}
}

// AddByte feeds one incoming byte into the decoder, returning a
// decoded frame and true once the terminating zero arrives. An empty
// frame (two zero bytes in a row) is silently dropped.
func (d *CobsDecoder) AddByte(b byte) ([]byte, bool) {
	switch d.state {
	case cobsStart:
		d.buf = d.buf[:0]
		if b == 0 {
			return nil, false
		}
		d.count = int(b)
		d.state = cobsRunning
		return nil, false

	case cobsRunning:
		if d.count == 1 {
			if b == 0 {
				d.state = cobsStart
				out := make([]byte, len(d.buf))
				copy(out, d.buf)
				return out, true
			}
			d.buf = append(d.buf, 0)
			d.count = int(b)
			return nil, false
		}
		if b == 0 {
			// Premature end of frame; drop it and resync.
			d.state = cobsStart
			return nil, false
		}
		d.count--
		d.buf = append(d.buf, b)
		return nil, false
	}
	return nil, false
}

// recordMagic identifies a Record frame so a half can tell the two
// wire variants apart if both are ever live on the same link.
const recordMagic uint32 = 0x84ca7faa

const recordPayloadLen = 4 + 4 + 3 + 3 + 2 // magic, keys, led0, led1, crc16

// Record is the fixed-layout status frame the COBS variant exchanges,
// replacing the legacy protocol's token stream with one flat struct.
type Record struct {
	Side corefw.Side
	Keys uint32
	LED0 corefw.RGB8
	LED1 corefw.RGB8
}

// EncodeRecord serializes r and COBS-frames it for transmission.
func EncodeRecord(r Record) []byte {
	payload := make([]byte, 0, recordPayloadLen)
	payload = binary.LittleEndian.AppendUint32(payload, recordMagic)
	payload = binary.LittleEndian.AppendUint32(payload, r.Keys)
	payload = append(payload, r.LED0.R, r.LED0.G, r.LED0.B)
	payload = append(payload, r.LED1.R, r.LED1.G, r.LED1.B)
	crc := crc16IBMSDLC(payload)
	payload = binary.LittleEndian.AppendUint16(payload, crc)
	return cobsEncode(payload)
}

// DecodeRecord validates and unpacks a de-COBS'd payload. The Side
// field isn't carried on the wire in this variant (the link is
// point-to-point, each end statically knows which half it is), so it
// is always returned as SideLeft; callers that need it track it out
// of band.
func DecodeRecord(payload []byte) (Record, bool) {
	if len(payload) != recordPayloadLen {
		return Record{}, false
	}
	if binary.LittleEndian.Uint32(payload[0:4]) != recordMagic {
		return Record{}, false
	}
	crc := crc16IBMSDLC(payload[:14])
	if binary.LittleEndian.Uint16(payload[14:16]) != crc {
		return Record{}, false
	}
	return Record{
		Keys: binary.LittleEndian.Uint32(payload[4:8]),
		LED0: corefw.RGB8{R: payload[8], G: payload[9], B: payload[10]},
		LED1: corefw.RGB8{R: payload[11], G: payload[12], B: payload[13]},
	}, true
}
