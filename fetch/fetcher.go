// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fetch implements the event fetcher: it pulls registry
// events from an L1 registry contract through a scored
// multi-endpoint transport, merges them with whatever was previously
// persisted, and returns (and persists) the combined, deduped,
// EventKey-ordered log.
package fetch

import (
	"context"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/lightstake/sequencer/events"
	"github.com/lightstake/sequencer/log"
	"github.com/lightstake/sequencer/metrics"
	"github.com/lightstake/sequencer/persistence"
	"github.com/lightstake/sequencer/transport"
)

var logger = log.WithContext("pkg", "fetch")

// maxConcurrentWindows bounds how many block-range windows are
// queried against the transport pool at once.
const maxConcurrentWindows = 8

// Fetcher pulls registry events for a single contract address.
type Fetcher struct {
	pool       *transport.Pool
	store      persistence.Store
	contract   common.Address
	windowSize uint64
	initBlock  uint64
}

// Config configures a Fetcher.
type Config struct {
	Contract   common.Address
	WindowSize uint64 // default DefaultWindowSize
	InitBlock  uint64 // block the registry contract was deployed at
}

// New builds a Fetcher over pool and store.
func New(pool *transport.Pool, store persistence.Store, cfg Config) *Fetcher {
	if cfg.WindowSize == 0 {
		cfg.WindowSize = DefaultWindowSize
	}
	return &Fetcher{
		pool:       pool,
		store:      store,
		contract:   cfg.Contract,
		windowSize: cfg.WindowSize,
		initBlock:  cfg.InitBlock,
	}
}

// FetchEvents returns every registry event up to and including
// toBlock, merged with the persisted log, ordered by EventKey.
func (f *Fetcher) FetchEvents(ctx context.Context, toBlock uint64) ([]events.StakeTableEvent, error) {
	highWater, prior, found, err := f.store.LoadEvents()
	if err != nil {
		return nil, &transport.Error{Kind: transport.PersistenceFailure, Err: err}
	}

	fromBlock := f.initBlock
	if found {
		fromBlock = highWater + 1
	}
	if fromBlock > toBlock {
		if found {
			return prior, nil
		}
		return nil, nil
	}

	type window struct{ start, end uint64 }
	var windows []window
	for start := fromBlock; start <= toBlock; start += f.windowSize {
		end := start + f.windowSize - 1
		if end > toBlock {
			end = toBlock
		}
		windows = append(windows, window{start, end})
	}

	results := make([][]events.StakeTableEvent, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWindows)
	for i, w := range windows {
		i, w := i, w
		g.Go(func() error {
			logs, err := queryWindow(gctx, f.pool, f.contract, w.start, w.end)
			if err != nil {
				metrics.Counter("fetch_retries_exhausted").Add(1)
				return err
			}
			out := make([]events.StakeTableEvent, 0, len(logs))
			for j := range logs {
				ev, err := decodeLog(&logs[j])
				if err != nil {
					logger.Error("aborting fetch on event decode failure", "block", logs[j].BlockNumber, "logIndex", logs[j].Index, "err", err)
					return err
				}
				out = append(out, ev)
			}
			logger.Debug("fetched window", "from", w.start, "to", w.end, "events", len(logs))
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var fresh []events.StakeTableEvent
	for _, r := range results {
		fresh = append(fresh, r...)
	}

	merged := mergeDedup(prior, fresh)

	if err := f.store.StoreEvents(toBlock, merged); err != nil {
		return nil, &transport.Error{Kind: transport.PersistenceFailure, Err: err}
	}
	return merged, nil
}

// mergeDedup combines prior and fresh events, sorts by EventKey, and
// removes duplicate (block_number, log_index) pairs, defending
// against overlapping persisted/live ranges.
func mergeDedup(prior, fresh []events.StakeTableEvent) []events.StakeTableEvent {
	combined := make([]events.StakeTableEvent, 0, len(prior)+len(fresh))
	combined = append(combined, prior...)
	combined = append(combined, fresh...)
	sort.Stable(events.ByKey(combined))

	out := combined[:0:0]
	var last events.EventKey
	haveLast := false
	for _, ev := range combined {
		if haveLast && ev.Key == last {
			continue
		}
		out = append(out, ev)
		last = ev.Key
		haveLast = true
	}
	return out
}
