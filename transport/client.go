// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transport

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lightstake/sequencer/log"
)

var logger = log.WithContext("pkg", "transport")

// Kind distinguishes the transport-level error categories. All but
// EventDecodeFailure are retried by the fetcher; decode failures
// abort the fetch outright.
type Kind int

const (
	TransportTimeout Kind = iota
	TransportFailure
	PersistenceFailure
	EventDecodeFailure
)

// Error wraps a transport-level failure with its Kind so callers can
// branch on retryability without string matching.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// ErrRateLimited is returned by a Call implementation to signal a
// rate-limit response; the pool imposes RateLimitCooldown on that
// endpoint without counting it toward the demotion thresholds.
var ErrRateLimited = errors.New("rate limited")

// Config tunes the failover pool. Zero-valued fields fall back to the
// defaults applied by NewPool.
type Config struct {
	BaseTimeout          time.Duration // default 500ms, +1s per retry cycle
	TimeoutStep          time.Duration // default 1s
	MaxRetries           int           // default: unbounded (retried indefinitely)
	ConsecutiveFailLimit int           // default 3
	WindowFailLimit      int           // default 5
	WindowDuration       time.Duration // default 1 minute
	DemoteFor            time.Duration // default 30s
	RateLimitCooldown    time.Duration // default 10s
}

func (c *Config) setDefaults() {
	if c.BaseTimeout == 0 {
		c.BaseTimeout = 500 * time.Millisecond
	}
	if c.TimeoutStep == 0 {
		c.TimeoutStep = time.Second
	}
	if c.ConsecutiveFailLimit == 0 {
		c.ConsecutiveFailLimit = 3
	}
	if c.WindowFailLimit == 0 {
		c.WindowFailLimit = 5
	}
	if c.WindowDuration == 0 {
		c.WindowDuration = time.Minute
	}
	if c.DemoteFor == 0 {
		c.DemoteFor = 30 * time.Second
	}
	if c.RateLimitCooldown == 0 {
		c.RateLimitCooldown = 10 * time.Second
	}
}

// CallFunc issues one RPC attempt against the given endpoint URL,
// bounded by ctx's deadline.
type CallFunc func(ctx context.Context, endpointURL string) error

// Pool is the scored multi-endpoint failover client.
// Endpoint selection holds the lock only long enough to clone scores
// to a local slice; dispatch happens outside the lock and score
// updates are folded back under each endpoint's own lock.
type Pool struct {
	cfg Config

	mu        sync.Mutex
	endpoints []*Endpoint
}

// NewPool builds a failover pool over the given endpoint URLs, in the
// order given; that order is also the tie-break order for equally
// scored endpoints.
func NewPool(cfg Config, urls []string) *Pool {
	cfg.setDefaults()
	p := &Pool{cfg: cfg}
	for i, u := range urls {
		p.endpoints = append(p.endpoints, &Endpoint{Name: u, URL: u, seq: i})
	}
	return p
}

// ordered returns the pool's endpoints best-score-first, ties broken
// by insertion order, as of the moment of the call.
func (p *Pool) ordered(now time.Time) []*Endpoint {
	p.mu.Lock()
	snapshot := append([]*Endpoint(nil), p.endpoints...)
	p.mu.Unlock()

	scores := make(map[*Endpoint]score, len(snapshot))
	for _, e := range snapshot {
		scores[e] = e.snapshotScore()
	}

	out := append([]*Endpoint(nil), snapshot...)
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 {
			a, b := out[j], out[j-1]
			if better(scores[a], scores[b]) || (!better(scores[b], scores[a]) && a.seq < b.seq) {
				out[j], out[j-1] = out[j-1], out[j]
				j--
				continue
			}
			break
		}
	}

	avail := out[:0]
	for _, e := range out {
		if e.available(now) {
			avail = append(avail, e)
		}
	}
	return avail
}

// Do dispatches call against the pool's endpoints, best-score-first,
// retrying indefinitely (or up to cfg.MaxRetries if set) across
// providers on transport failure. Per-attempt timeout starts at
// cfg.BaseTimeout and grows by cfg.TimeoutStep per retry cycle.
func (p *Pool) Do(ctx context.Context, call CallFunc) error {
	attempt := 0
	for {
		now := time.Now()
		candidates := p.ordered(now)
		if len(candidates) == 0 {
			// All endpoints demoted or cooling down; wait one
			// RateLimitCooldown period instead of busy-looping.
			select {
			case <-ctx.Done():
				return &Error{Kind: TransportTimeout, Err: ctx.Err()}
			case <-time.After(p.cfg.RateLimitCooldown):
			}
			attempt++
			if p.cfg.MaxRetries > 0 && attempt >= p.cfg.MaxRetries {
				return &Error{Kind: TransportFailure, Err: errors.New("no available endpoints")}
			}
			continue
		}

		ep := candidates[0]
		timeout := p.cfg.BaseTimeout + time.Duration(attempt)*p.cfg.TimeoutStep
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		err := call(callCtx, ep.URL)
		cancel()

		if err == nil {
			ep.recordSuccess()
			return nil
		}

		if errors.Is(err, ErrRateLimited) {
			ep.recordRateLimited(now, p.cfg.RateLimitCooldown)
			logger.Warn("endpoint rate limited, cooling down", "endpoint", ep.Name)
		} else {
			ep.recordFailure(now, p.cfg.ConsecutiveFailLimit, p.cfg.WindowFailLimit, p.cfg.WindowDuration, p.cfg.DemoteFor)
			logger.Debug("endpoint call failed", "endpoint", ep.Name, "err", err)
		}

		if ctx.Err() != nil {
			return &Error{Kind: TransportTimeout, Err: ctx.Err()}
		}

		attempt++
		if p.cfg.MaxRetries > 0 && attempt >= p.cfg.MaxRetries {
			return &Error{Kind: TransportFailure, Err: err}
		}
	}
}
