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

// Package boardinfo reads the reserved build-info region of a memory
// dictionary image's header: a fixed ASCII/Latin-1 byte range the build
// tooling stamps with a board name, firmware version, and build
// timestamp, the way terminfo.go decodes a database's own charset-tagged
// byte strings into Go strings before handing them to a caller.
package boardinfo

import (
	"bytes"
	"fmt"

	gdencoding "github.com/gdamore/encoding"
	"golang.org/x/text/transform"
)

// Layout offsets, shared with memdict's header parsing: the reserved
// region runs from byte 36 to byte 128 of the dictionary image.
const (
	buildInfoOffset = 36
	buildInfoEnd    = 128
)

// errTooShort indicates the image is too small to contain the reserved
// build-info region at all.
var errTooShort = fmt.Errorf("boardinfo: image shorter than %d bytes", buildInfoEnd)

// Read extracts and decodes the build-info string from a dictionary
// image's header. The region is fixed-width and NUL-padded; trailing NULs
// are trimmed. Bytes are Latin-1 (ISO 8859-1), decoded with
// gdamore/encoding the same way a terminfo database's charset-tagged
// strings are decoded, since the build tool may embed a board name with
// non-ASCII characters (e.g. an accented maintainer name in a comment).
func Read(data []byte) (string, error) {
	if len(data) < buildInfoEnd {
		return "", errTooShort
	}
	raw := data[buildInfoOffset:buildInfoEnd]
	raw = raw[:clippedLen(raw)]

	decoded, _, err := transform.Bytes(gdencoding.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("boardinfo: decode: %w", err)
	}
	return string(decoded), nil
}

// clippedLen finds the length up to (but not including) the first NUL
// byte, or the full slice length if none is present.
func clippedLen(b []byte) int {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return i
	}
	return len(b)
}
