// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package transport implements the scored multi-endpoint RPC client
// the event fetcher dials out through: endpoints are tried
// best-reliability-first, demoted after repeated failures, and cooled
// down on rate-limit responses.
package transport

import (
	"sync"
	"time"

	"github.com/lightstake/sequencer/metrics"
)

// Endpoint is one RPC provider behind the failover pool. URL is the
// JSON-RPC endpoint address; the pool hands it to the caller's
// CallFunc, which dials it (fetch/window.go uses go-ethereum's ethclient).
type Endpoint struct {
	Name string
	URL  string

	mu             sync.Mutex
	sc             score
	consecFails    int
	windowFails    []time.Time
	demotedUntil   time.Time
	rateLimitUntil time.Time
	seq            int // insertion order, for tie-breaking
}

func (e *Endpoint) snapshotScore() score {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sc
}

// recordSuccess folds a successful call back into the endpoint's
// counters and clears any consecutive-failure streak.
func (e *Endpoint) recordSuccess() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sc.requests++
	e.consecFails = 0
}

// recordFailure folds a failed call back into the endpoint's counters,
// tracks the failure for windowed demotion, and demotes the endpoint
// after consecutiveFailThreshold consecutive failures or
// windowFailThreshold failures within windowDuration.
func (e *Endpoint) recordFailure(now time.Time, consecutiveFailThreshold, windowFailThreshold int, windowDuration, demoteFor time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sc.requests++
	e.sc.failures++
	e.consecFails++

	e.windowFails = append(e.windowFails, now)
	cutoff := now.Add(-windowDuration)
	kept := e.windowFails[:0]
	for _, t := range e.windowFails {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	e.windowFails = kept

	if e.consecFails >= consecutiveFailThreshold || len(e.windowFails) >= windowFailThreshold {
		e.demotedUntil = now.Add(demoteFor)
		metrics.CounterVec("transport_provider_demotions", []string{"endpoint"}).
			AddWithLabel(1, map[string]string{"endpoint": e.Name})
	}
}

// recordRateLimited imposes an explicit cooldown after a rate-limit
// response, independent of the failure counters.
func (e *Endpoint) recordRateLimited(now time.Time, cooldown time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rateLimitUntil = now.Add(cooldown)
}

func (e *Endpoint) available(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return now.After(e.demotedUntil) && now.After(e.rateLimitUntil)
}
