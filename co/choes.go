// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Choes ("cancellable Goes") runs goroutines that accept a stop
// channel and are expected to exit promptly once it closes. Stop can
// be called from any goroutine, any number of times.
type Choes struct {
	wg       sync.WaitGroup
	stopOnce sync.Once
	stop     chan struct{}
}

// NewChoes returns a ready-to-use Choes.
func NewChoes() *Choes {
	return &Choes{stop: make(chan struct{})}
}

// Go starts f, passing it the shared stop channel.
func (c *Choes) Go(f func(stop chan struct{})) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		f(c.stop)
	}()
}

// Stop closes the shared stop channel; safe to call more than once or
// concurrently from multiple goroutines.
func (c *Choes) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

// Wait blocks until every goroutine started via Go has returned.
func (c *Choes) Wait() {
	c.wg.Wait()
}
