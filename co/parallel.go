// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "runtime"

// Parallel runs tasks fed into the queue by enqueue, using up to
// runtime.NumCPU workers, and returns a channel closed once every
// enqueued task has completed.
func Parallel(enqueue func(queue chan<- func())) <-chan struct{} {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	queue := make(chan func())
	done := make(chan struct{})

	var g Goes
	for i := 0; i < n; i++ {
		g.Go(func() {
			for fn := range queue {
				fn()
			}
		})
	}

	go func() {
		enqueue(queue)
		close(queue)
	}()

	go func() {
		g.Wait()
		close(done)
	}()

	return done
}
