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

// Package dispatch wires the matrix, layout, lookup, joiner, led and hid
// packages into the firmware's cooperative scheduling model: a fast main
// loop that owns the layout manager and LED state, and a lower-priority
// steno worker that may take tens of milliseconds per stroke. The two
// communicate over bounded channels sized the way the original firmware's
// task queues are, so that a slow steno lookup applies back-pressure
// rather than unbounded buffering.
package dispatch

import (
	"sync"
	"sync/atomic"

	"github.com/tangybbq/corefw"
	"github.com/tangybbq/corefw/hid"
	"github.com/tangybbq/corefw/joiner"
	"github.com/tangybbq/corefw/layout"
	"github.com/tangybbq/corefw/led"
	"github.com/tangybbq/corefw/lookup"
	"github.com/tangybbq/corefw/stroke"
)

// Channel depths, chosen to match the queues between the matrix scanner,
// the main loop, the steno worker and the typer stage.
const (
	matrixQueueDepth = 16
	strokeQueueDepth = 10
	joinedQueueDepth = 2
)

// Dispatch owns every subsystem handle a running half needs: the layout
// manager, the steno lookup history and joiner, the LED state machine and
// the HID report queue. It has no methods that require external locking;
// the goroutines it starts communicate only through its channels, and the
// handful of fields read from more than one goroutine (Role, raw mode) sit
// behind a mutex held only across non-suspending operations, the same
// discipline the teacher's tScreen applies to its own shared state.
type Dispatch struct {
	matrixCh chan corefw.KeyEvent
	strokeCh chan stroke.Stroke
	joinedCh chan joiner.Joined
	quit     chan struct{}
	wg       sync.WaitGroup

	layout  *layout.Manager
	history *lookup.History
	join    *joiner.Joiner
	hidQ    *hid.Queue
	leds    *led.Machine

	emit     func(corefw.Event)
	transmit func([]byte)

	mu      sync.Mutex
	role    corefw.Role
	side    corefw.Side
	rawMode bool

	droppedMatrix uint64
	droppedStroke uint64

	taipoLatchShown bool
}

// New creates a Dispatch for one half of the keyboard. base is the LED
// indication for the layout manager's starting mode (ModeQwerty). emit
// publishes every corefw.Event the dispatch loop produces, for whatever
// collaborator wants to observe it (logging, a simulation harness, the
// inter-half link). transmit sends a raw HID report to the USB stack; it
// may be nil, in which case reports are queued but never physically sent
// (useful for tests and for a secondary half, which never owns the HID
// endpoint).
func New(dicts []lookup.Dictionary, base led.Indication, emit func(corefw.Event), transmit func([]byte)) *Dispatch {
	if emit == nil {
		emit = func(corefw.Event) {}
	}
	d := &Dispatch{
		matrixCh: make(chan corefw.KeyEvent, matrixQueueDepth),
		strokeCh: make(chan stroke.Stroke, strokeQueueDepth),
		joinedCh: make(chan joiner.Joined, joinedQueueDepth),
		quit:     make(chan struct{}),
		layout:   layout.New(),
		history:  lookup.NewHistory(dicts),
		join:     joiner.New(),
		hidQ:     hid.NewQueue(),
		leds:     led.New(base, nil),
		emit:     emit,
		transmit: transmit,
		role:     corefw.RoleIdle,
	}

	d.wg.Add(3)
	go d.mainLoop()
	go d.stenoWorker()
	go d.typerLoop()

	return d
}

// Stop halts the dispatch goroutines and waits for them to exit. Intended
// for tests; a real firmware build never calls it; main is expected to
// leak the Dispatch rather than tear it down.
func (d *Dispatch) Stop() {
	close(d.quit)
	d.wg.Wait()
}

// SubmitKeyEvent enqueues one physical key transition from the matrix
// scanner. It never blocks: if the queue is full the event is dropped and
// counted, mirroring the teacher's tScreen.PostEvent select/default
// pattern for a bounded, best-effort event queue.
func (d *Dispatch) SubmitKeyEvent(ev corefw.KeyEvent) bool {
	select {
	case d.matrixCh <- ev:
		return true
	default:
		atomic.AddUint64(&d.droppedMatrix, 1)
		return false
	}
}

// SubmitInterKeyEvents forwards KeyEvents decoded from the secondary
// half's inter-link packets, in arrival order, the same path physical
// matrix events take.
func (d *Dispatch) SubmitInterKeyEvents(evs []corefw.KeyEvent) {
	for _, ev := range evs {
		d.SubmitKeyEvent(ev)
	}
}

// DroppedMatrixEvents reports how many matrix events have been dropped for
// queue overflow since startup.
func (d *Dispatch) DroppedMatrixEvents() uint64 {
	return atomic.LoadUint64(&d.droppedMatrix)
}

// DroppedStrokes reports how many raw strokes were dropped because the
// steno worker's queue was full.
func (d *Dispatch) DroppedStrokes() uint64 {
	return atomic.LoadUint64(&d.droppedStroke)
}

// Tick advances timing-sensitive state: the active mode handler's combo
// and chord windows, and the LED animation clock. The caller is expected
// to invoke this on a fixed period (spec's ~100ms LED tick and the mode
// handlers' own shorter combo windows share this single clock).
func (d *Dispatch) Tick() {
	d.dispatchEvents(d.layout.Tick())
	d.updateTaipoLatchIndicator()
	d.leds.Tick()
}

// updateTaipoLatchIndicator shows led.Taipo as a global override for as
// long as the layout manager's Taipo-over-steno latch is engaged, and
// clears it the tick after the latch releases.
func (d *Dispatch) updateTaipoLatchIndicator() {
	active := d.layout.TaipoLatchActive()
	if active == d.taipoLatchShown {
		return
	}
	d.taipoLatchShown = active
	if active {
		d.leds.SetGlobal(led.Taipo)
	} else {
		d.leds.ClearGlobal()
	}
}

// Role reports this half's current role in the inter-half negotiation.
func (d *Dispatch) Role() corefw.Role {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.role
}

// SetRole records a new role, publishing a BecomeRole event on change.
func (d *Dispatch) SetRole(role corefw.Role, side corefw.Side) {
	d.mu.Lock()
	changed := d.role != role
	d.role = role
	d.side = side
	d.mu.Unlock()
	if changed {
		d.emit(corefw.NewEventBecomeRole(role, side))
	}
}

// HIDReady notifies the dispatch that the USB stack has read the
// in-flight report and is ready for another. Any backlogged report is
// transmitted immediately.
func (d *Dispatch) HIDReady() {
	if report, ok := d.hidQ.Ready(); ok && d.transmit != nil {
		d.transmit(report)
	}
}

// LastLEDColor returns the color the LED machine last asked to be shown,
// for a secondary half relaying its own state to the primary.
func (d *Dispatch) LastLEDColor() corefw.RGB8 {
	return d.leds.LastColor()
}

// mainLoop is the fast task: it owns the layout manager and reacts to
// matrix events and the periodic Tick, producing KeyActions (pushed
// straight to the HID queue) and RawStrokes (handed off to the steno
// worker).
func (d *Dispatch) mainLoop() {
	defer d.wg.Done()
	for {
		select {
		case <-d.quit:
			return
		case ev := <-d.matrixCh:
			d.dispatchEvents(d.layout.HandleEvent(ev))
		}
	}
}

func (d *Dispatch) dispatchEvents(events []corefw.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case *corefw.EventKeyAction:
			d.pushHID(e.Action())
		case *corefw.EventRawStroke:
			select {
			case d.strokeCh <- e.Stroke():
			default:
				atomic.AddUint64(&d.droppedStroke, 1)
			}
		case *corefw.EventSetMode:
			d.leds.SetBase(indicatorFor(e.Mode()))
		case *corefw.EventSetModeSelect:
			if e.Active() {
				d.leds.SetOneshot(led.ModeSelect(corefw.RGB8{R: 16, G: 16, B: 16}))
			}
		}
		d.emit(ev)
	}
}

// pushHID serializes a KeyAction and hands it to the HID queue, emitting
// the corresponding event for observers and transmitting immediately if
// the endpoint is ready.
func (d *Dispatch) pushHID(action corefw.KeyAction) {
	report := hid.Report(action)
	if report == nil {
		return
	}
	if sent, ok := d.hidQ.Send(report); ok && d.transmit != nil {
		d.transmit(sent)
	}
}

// stenoWorker is the slow task: it owns the lookup history and the
// joiner, translating strokes into typed edits. It runs at lower priority
// than mainLoop in spirit (a dedicated goroutine here, since the Go
// scheduler has no static priority knob), and the depth-2 joinedCh applies
// back-pressure to it. The depth-10 strokeCh does not block mainLoop: a
// stroke arriving while it is full is dropped and counted instead.
func (d *Dispatch) stenoWorker() {
	defer d.wg.Done()
	for {
		select {
		case <-d.quit:
			return
		case s := <-d.strokeCh:
			d.join.Add(d.history.Add(s))
			for {
				joined, ok := d.join.Pop()
				if !ok {
					break
				}
				select {
				case d.joinedCh <- joined:
				case <-d.quit:
					return
				}
			}
		}
	}
}

// typerLoop is the small receiving task jolt's dispatch.rs calls
// steno_typer: it
// drains joinedCh and turns each edit into HID keystrokes. Splitting this
// from stenoWorker keeps the low-priority steno computation from holding
// the HID queue's attention directly, the same priority-inversion concern
// jolt's dispatch.rs documents for its own steno_typer task.
func (d *Dispatch) typerLoop() {
	defer d.wg.Done()
	for {
		select {
		case <-d.quit:
			return
		case joined := <-d.joinedCh:
			d.typeJoined(joined)
		}
	}
}

// typeJoined converts one Joined edit into HID keystrokes: a run of
// Backspace presses to undo Remove characters, then the typed form of
// Append, mirroring the steno_typer/enqueue_action split in jolt's
// dispatch.rs.
func (d *Dispatch) typeJoined(j joiner.Joined) {
	for i := 0; i < j.Remove; i++ {
		d.pushHID(corefw.KeyPress{Code: hid.Backspace})
		d.pushHID(corefw.KeyRelease{})
	}
	for _, action := range hid.EnqueueText(j.Append) {
		d.pushHID(action)
	}
}

// indicatorFor picks the LED indication for a layout mode, the Go
// counterpart of jolt's dispatch.rs LayoutActions::set_mode match.
func indicatorFor(mode corefw.Mode) led.Indication {
	switch mode {
	case corefw.ModeQwerty:
		return led.Qwerty
	case corefw.ModeArtsey:
		return led.Artsey
	case corefw.ModeTaipo:
		return led.Taipo
	default:
		return led.RawSteno
	}
}
