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

import "time"

const (
	helloBackoffInitial = time.Second
	helloBackoffCap     = 600 * time.Second
)

// HelloBackoff doubles its delay on every failed hello handshake
// attempt, capped at 600 seconds, so a half retries quickly at first
// and gives up pestering the link once it's clear no peer is there.
type HelloBackoff struct {
	delay time.Duration
}

// NewHelloBackoff creates a HelloBackoff at its initial delay.
func NewHelloBackoff() *HelloBackoff {
	return &HelloBackoff{delay: helloBackoffInitial}
}

// Next returns the delay to wait before the next attempt, then
// doubles it (capped) for next time.
func (h *HelloBackoff) Next() time.Duration {
	d := h.delay
	h.delay *= 2
	if h.delay > helloBackoffCap {
		h.delay = helloBackoffCap
	}
	return d
}

// Reset returns the backoff to its initial delay, called once a hello
// succeeds.
func (h *HelloBackoff) Reset() {
	h.delay = helloBackoffInitial
}
