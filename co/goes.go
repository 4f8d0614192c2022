// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co provides small goroutine-lifecycle helpers: Goes (a
// WaitGroup with a closed-when-done channel), Choes (a cancellable
// Goes), Parallel (bounded fan-out), and Signal (broadcast wakeups
// for multiple waiters). The committee catch-up race is the main
// consumer.
package co

import "sync"

// Goes runs goroutines and lets callers wait for all of them to return.
type Goes struct {
	wg       sync.WaitGroup
	initOnce sync.Once
	doneOnce sync.Once
	done     chan struct{}
}

func (g *Goes) initDone() {
	g.initOnce.Do(func() {
		g.done = make(chan struct{})
	})
}

// Go starts f in a new goroutine tracked by g.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait blocks until every goroutine started via Go has returned.
func (g *Goes) Wait() {
	g.wg.Wait()
	g.initDone()
	g.doneOnce.Do(func() {
		close(g.done)
	})
}

// Done returns a channel that's closed once Wait has observed every
// goroutine finishing. Callers must call Wait (possibly in another
// goroutine) for Done to ever close.
func (g *Goes) Done() <-chan struct{} {
	g.initDone()
	return g.done
}
