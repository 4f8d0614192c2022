// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Signal is a broadcast wakeup: every Waiter created since the last
// Broadcast observes the next one; each Broadcast starts a fresh round.
type Signal struct {
	lock sync.Mutex
	ch   chan struct{}
}

// Waiter observes a single Signal broadcast.
type Waiter struct {
	ch <-chan struct{}
}

// C returns the channel that closes when the signal fires.
func (w Waiter) C() <-chan struct{} { return w.ch }

func (s *Signal) chanLocked() chan struct{} {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

// NewWaiter returns a Waiter for the next Broadcast.
func (s *Signal) NewWaiter() Waiter {
	s.lock.Lock()
	defer s.lock.Unlock()
	return Waiter{ch: s.chanLocked()}
}

// Broadcast wakes every Waiter created since the previous Broadcast.
func (s *Signal) Broadcast() {
	s.lock.Lock()
	defer s.lock.Unlock()
	close(s.chanLocked())
	s.ch = nil
}
