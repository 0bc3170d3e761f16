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

// Package interlink carries status packets between the two keyboard
// halves over a byte-oriented duplex link, in both the legacy 7-bit
// token framing and a newer COBS-framed variant.
package interlink

import "github.com/tangybbq/corefw"

// Packet is the tagged union of status packets a half transmits every
// tick.
type Packet interface {
	isPacket()
}

// IdlePacket is sent before a half has decided whether it is Primary
// or Secondary.
type IdlePacket struct {
	Side corefw.Side
}

func (IdlePacket) isPacket() {}

// PrimaryPacket is sent by the half attached to the host; it mirrors
// the LED color the secondary should display.
type PrimaryPacket struct {
	Side corefw.Side
	LED  corefw.RGB8
}

func (PrimaryPacket) isPacket() {}

// SecondaryPacket carries the key events the secondary half has
// observed since its last transmission.
type SecondaryPacket struct {
	Side   corefw.Side
	Events []corefw.KeyEvent
}

func (SecondaryPacket) isPacket() {}
