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

package hid

import (
	"encoding/binary"

	"github.com/tangybbq/corefw/stroke"
)

// PloverReportID is the vendor-defined report id the raw steno HID
// interface uses.
const PloverReportID = 0x50

// PloverReportLen is the report-id byte plus the 64-bit stroke bitmap.
const PloverReportLen = 9

// ploverBit maps a Stroke's internal bit position (23 down to 0, plus
// the Num bit) onto the wire bitmap's ordinal position, where ordinal
// 0 is the LSB. The internal order runs high-bit-first through
// stroke.go's canonical key order, so ordinal i takes the key at
// internal bit (23-i); the Num bar occupies ordinal 24, past the end
// of the 24-bit key bank.
func ploverBits(s stroke.Stroke) uint64 {
	var bits uint64
	for i := 0; i < 24; i++ {
		srcBit := stroke.Stroke(1) << uint(23-i)
		if s&srcBit != 0 {
			bits |= uint64(1) << uint(i)
		}
	}
	if s.HasAny(stroke.Num) {
		bits |= uint64(1) << 24
	}
	return bits
}

// PloverPressReport encodes a completed stroke as a plover HID report.
func PloverPressReport(s stroke.Stroke) []byte {
	rep := make([]byte, PloverReportLen)
	rep[0] = PloverReportID
	binary.LittleEndian.PutUint64(rep[1:], ploverBits(s))
	return rep
}

// PloverReleaseReport is the all-zero report sent immediately after a
// press report, since Plover expects a distinct "all keys up" frame
// rather than relying on a timeout.
func PloverReleaseReport() []byte {
	rep := make([]byte, PloverReportLen)
	rep[0] = PloverReportID
	return rep
}
