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

// Package serial opens the UART that carries the inter-half link on a
// development host (a real board's firmware talks to its own UART
// peripheral directly; this package stands in for that on a PC-hosted
// build or simulator, the same role the teacher's termioInit/termioFini
// play for a terminal's tty). It implements interlink.Transport.
package serial

import (
	"errors"
	"time"

	"github.com/pkg/term"
	"golang.org/x/sys/unix"
)

// defaultBaud matches the inter-half link's fixed UART rate; both halves
// of a physical board are wired at this speed and never renegotiate it.
const defaultBaud = 460800

// pollInterval bounds how long a blocking Read waits for data before
// giving the caller a chance to notice a shutdown request, mirroring the
// teacher's VMIN=0/VTIME=1 termios setting that wakes tscreen's input loop
// every 100ms even with nothing to read.
const pollInterval = 100 * time.Millisecond

// Transport is a UART connection satisfying interlink.Transport (and
// plain io.Reader/io.Writer for anything else that wants raw bytes).
type Transport struct {
	t  *term.Term
	fd int
}

// Open configures and opens the named serial device in raw mode at the
// inter-half link's fixed baud rate. On non-UART platforms (a simulator,
// a USB-CDC bridge presented as a tty) the device name is whatever the
// host OS assigns it.
func Open(device string) (*Transport, error) {
	t, err := term.Open(device, term.Speed(defaultBaud), term.RawMode)
	if err != nil {
		return nil, err
	}
	fd := int(t.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		t.Close()
		return nil, err
	}
	return &Transport{t: t, fd: fd}, nil
}

// Close restores the device's prior termios state and closes it.
func (s *Transport) Close() error {
	return s.t.Close()
}

// Read blocks until at least one byte is available or the deadline set by
// waitReadable elapses, in which case it returns (0, nil): callers loop on
// this the way tscreen's inputLoop treats an EOF from its 100ms-timeout
// read as "nothing arrived yet, go around again", not as a real error.
func (s *Transport) Read(p []byte) (int, error) {
	ready, err := s.waitReadable(pollInterval)
	if err != nil {
		return 0, err
	}
	if !ready {
		return 0, nil
	}
	n, err := s.t.Read(p)
	if err == nil {
		return n, nil
	}
	if isWouldBlock(err) {
		return 0, nil
	}
	return n, err
}

// Write sends bytes to the UART.
func (s *Transport) Write(p []byte) (int, error) {
	return s.t.Write(p)
}

// waitReadable polls the descriptor with a timeout using golang.org/x/sys's
// select wrapper, the non-cgo equivalent of the teacher's VTIME-driven
// termios wakeup.
func (s *Transport) waitReadable(timeout time.Duration) (bool, error) {
	var readfds unix.FdSet
	readfds.Set(s.fd)
	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	n, err := unix.Select(s.fd+1, &readfds, nil, nil, &tv)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}
