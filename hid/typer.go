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

import "github.com/tangybbq/corefw"

// USB HID keyboard usage IDs needed by the ASCII typer table.
const (
	keyA = 4 + iota
	keyB
	keyC
	keyD
	keyE
	keyF
	keyG
	keyH
	keyI
	keyJ
	keyK
	keyL
	keyM
	keyN
	keyO
	keyP
	keyQ
	keyR
	keyS
	keyT
	keyU
	keyV
	keyW
	keyX
	keyY
	keyZ
	key1
	key2
	key3
	key4
	key5
	key6
	key7
	key8
	key9
	key0
)

const (
	keyEnter     = 40
	keyEscape    = 41
	keyBackspace = 42
	keyTab       = 43
	keySpace     = 44
	keyMinus     = 45
	keyEqual     = 46
	keyLBrace    = 47
	keyRBrace    = 48
	keyBackslash = 49
	keySemicolon = 51
	keyApostr    = 52
	keyGrave     = 53
	keyComma     = 54
	keyDot       = 55
	keySlash     = 56
)

// shiftBit flags a keyTable entry as needing the shift modifier.
const shiftBit = 0x100

// noKey marks an ASCII character this table can't type.
const noKey = 0xffff

func plain(k uint16) uint16   { return k }
func shifted(k uint16) uint16 { return shiftBit | k }

// keyTable maps the low 7 bits of ASCII onto a HID usage code (and
// whether it needs shift), the same character-to-keystroke mapping a
// real keyboard layout performs when literal dictionary text is
// typed out.
var keyTable = [128]uint16{
	0x0A: plain(keyEnter),
	0x20: plain(keySpace),
	0x21: shifted(key1),       // !
	0x22: shifted(keyApostr),  // "
	0x23: shifted(key3),       // #
	0x24: shifted(key4),       // $
	0x25: shifted(key5),       // %
	0x26: shifted(key7),       // &
	0x27: plain(keyApostr),    // '
	0x28: shifted(key9),       // (
	0x29: shifted(key0),       // )
	0x2a: shifted(key8),       // *
	0x2b: shifted(keyEqual),   // +
	0x2c: plain(keyComma),     // ,
	0x2d: plain(keyMinus),     // -
	0x2e: plain(keyDot),       // .
	0x2f: plain(keySlash),     // /
	0x30: plain(key0),
	0x31: plain(key1),
	0x32: plain(key2),
	0x33: plain(key3),
	0x34: plain(key4),
	0x35: plain(key5),
	0x36: plain(key6),
	0x37: plain(key7),
	0x38: plain(key8),
	0x39: plain(key9),
	0x3a: shifted(keySemicolon), // :
	0x3b: plain(keySemicolon),   // ;
	0x3c: shifted(keyComma),     // <
	0x3d: plain(keyEqual),       // =
	0x3e: shifted(keyDot),       // >
	0x3f: shifted(keySlash),     // ?
	0x40: shifted(key2),         // @
	0x41: shifted(keyA),
	0x42: shifted(keyB),
	0x43: shifted(keyC),
	0x44: shifted(keyD),
	0x45: shifted(keyE),
	0x46: shifted(keyF),
	0x47: shifted(keyG),
	0x48: shifted(keyH),
	0x49: shifted(keyI),
	0x4a: shifted(keyJ),
	0x4b: shifted(keyK),
	0x4c: shifted(keyL),
	0x4d: shifted(keyM),
	0x4e: shifted(keyN),
	0x4f: shifted(keyO),
	0x50: shifted(keyP),
	0x51: shifted(keyQ),
	0x52: shifted(keyR),
	0x53: shifted(keyS),
	0x54: shifted(keyT),
	0x55: shifted(keyU),
	0x56: shifted(keyV),
	0x57: shifted(keyW),
	0x58: shifted(keyX),
	0x59: shifted(keyY),
	0x5a: shifted(keyZ),
	0x5b: plain(keyLBrace),      // [
	0x5c: plain(keyBackslash),   // backslash
	0x5d: plain(keyRBrace),      // ]
	0x5e: shifted(key6),         // ^
	0x5f: shifted(keyMinus),     // _
	0x60: plain(keyGrave),       // `
	0x61: plain(keyA),
	0x62: plain(keyB),
	0x63: plain(keyC),
	0x64: plain(keyD),
	0x65: plain(keyE),
	0x66: plain(keyF),
	0x67: plain(keyG),
	0x68: plain(keyH),
	0x69: plain(keyI),
	0x6a: plain(keyJ),
	0x6b: plain(keyK),
	0x6c: plain(keyL),
	0x6d: plain(keyM),
	0x6e: plain(keyN),
	0x6f: plain(keyO),
	0x70: plain(keyP),
	0x71: plain(keyQ),
	0x72: plain(keyR),
	0x73: plain(keyS),
	0x74: plain(keyT),
	0x75: plain(keyU),
	0x76: plain(keyV),
	0x77: plain(keyW),
	0x78: plain(keyX),
	0x79: plain(keyY),
	0x7a: plain(keyZ),
	0x7b: shifted(keyLBrace),    // {
	0x7c: shifted(keyBackslash), // |
	0x7d: shifted(keyRBrace),    // }
	0x7e: shifted(keyGrave),     // ~
}

// EnqueueText turns literal text into a flat stream of KeyPress
// followed immediately by KeyRelease for each typeable character,
// silently skipping anything above ASCII or with no table entry.
func EnqueueText(text string) []corefw.KeyAction {
	var out []corefw.KeyAction
	for _, ch := range text {
		if ch >= 128 {
			continue
		}
		code := keyTable[ch]
		if code == 0 || code == noKey {
			// The zero value (control characters with no explicit
			// entry) and noKey both mean "not typeable".
			continue
		}
		mods := corefw.Mods(0)
		if code&shiftBit != 0 {
			mods = corefw.ModShift
		}
		out = append(out, corefw.KeyPress{Code: byte(code & 0xff), Mods: mods})
		out = append(out, corefw.KeyRelease{})
	}
	return out
}
