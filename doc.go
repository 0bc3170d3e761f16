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

// Package corefw holds the types shared across the split-half stenography
// keyboard firmware core: key events, the modifier bitset, the tagged
// KeyAction union handed to the HID stage, and the event surface published
// to external collaborators (USB enumeration, LED drivers, the inter-half
// link). Subsystem packages (stroke, memdict, lookup, joiner, layout,
// matrix, interlink, led, hid, dispatch) each import this package the way
// tcell's color/encoding/mock subpackages import the tcell root package.
package corefw
