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

package dispatch

import (
	"sync"

	"github.com/tangybbq/corefw"
	"github.com/tangybbq/corefw/interlink"
)

// Link drives the inter-half UART: it decodes Record status frames from
// the other half and turns bitmask transitions into inter-key events fed
// into a Dispatch, and encodes this half's own status frames to send back,
// mirroring jolt/src/dispatch.rs's split between the role negotiation loop
// and usb_hid_push: the link only ever talks Keys/LED state, never HID
// reports, which stay local to whichever half has the role to send them.
type Link struct {
	d    *Dispatch
	t    interlink.Transport
	side corefw.Side
	dec  *interlink.CobsDecoder

	mu       sync.Mutex
	lastKeys uint32

	quit chan struct{}
	wg   sync.WaitGroup
}

// NewLink wires a transport to a Dispatch. side is which physical half this
// process is, used to bias the other half's scancodes into the canonical
// space per corefw.SideOffset.
func NewLink(d *Dispatch, t interlink.Transport, side corefw.Side) *Link {
	return &Link{
		d:    d,
		t:    t,
		side: side,
		dec:  interlink.NewCobsDecoder(),
		quit: make(chan struct{}),
	}
}

// Start begins the background read loop.
func (l *Link) Start() {
	l.wg.Add(1)
	go l.readLoop()
}

// Stop halts the read loop and waits for it to exit. The loop checks for
// Stop between Transport.Read calls, so Stop returns only once an
// in-progress Read has returned.
func (l *Link) Stop() {
	close(l.quit)
	l.wg.Wait()
}

func (l *Link) readLoop() {
	defer l.wg.Done()
	buf := make([]byte, 256)
	for {
		select {
		case <-l.quit:
			return
		default:
		}

		n, err := l.t.Read(buf)
		if err != nil || n == 0 {
			continue
		}
		for i := 0; i < n; i++ {
			payload, ok := l.dec.AddByte(buf[i])
			if !ok {
				continue
			}
			rec, ok := interlink.DecodeRecord(payload)
			if !ok {
				continue
			}
			l.applyRecord(rec)
		}
	}
}

func (l *Link) applyRecord(rec interlink.Record) {
	l.mu.Lock()
	prev := l.lastKeys
	l.lastKeys = rec.Keys
	l.mu.Unlock()

	evs := diffKeys(prev, rec.Keys, otherSide(l.side))
	if len(evs) > 0 {
		l.d.SubmitInterKeyEvents(evs)
	}
}

// SendStatus encodes this half's current key bitmask and LED color into a
// Record and writes it to the transport. The caller (the board's main loop,
// on a timer) supplies the raw key bitmask; LED state is read straight off
// the Dispatch.
func (l *Link) SendStatus(keys uint32) error {
	rec := interlink.Record{Keys: keys}
	if l.side == corefw.SideLeft {
		rec.LED0 = l.d.LastLEDColor()
	} else {
		rec.LED1 = l.d.LastLEDColor()
	}
	_, err := l.t.Write(interlink.EncodeRecord(rec))
	return err
}

func otherSide(s corefw.Side) corefw.Side {
	if s == corefw.SideLeft {
		return corefw.SideRight
	}
	return corefw.SideLeft
}

// diffKeys turns a previous and current key bitmask into the press/release
// KeyEvents that explain the difference, biasing scancodes into the
// canonical space for the half that produced them.
func diffKeys(prev, cur uint32, side corefw.Side) []corefw.KeyEvent {
	var evs []corefw.KeyEvent
	offset := corefw.SideOffset(side == corefw.SideRight)
	changed := prev ^ cur
	for bit := uint8(0); bit < 32; bit++ {
		mask := uint32(1) << bit
		if changed&mask == 0 {
			continue
		}
		kind := corefw.Release
		if cur&mask != 0 {
			kind = corefw.Press
		}
		evs = append(evs, corefw.KeyEvent{Kind: kind, Scancode: offset + bit})
	}
	return evs
}
