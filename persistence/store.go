// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package persistence defines the storage contract the event fetcher
// and epoch committee registry rely on, plus an in-memory
// implementation (tests) and a sqlite-backed one (production).
package persistence

import (
	"github.com/lightstake/sequencer/events"
	"github.com/lightstake/sequencer/stake"
)

// EpochStake pairs a persisted validator set with the epoch it was
// computed for, as returned by LoadLatestStake.
type EpochStake struct {
	Epoch uint64
	Set   *stake.ValidatorSet
}

// Store is the persistence contract the fetcher and committee
// registry rely on.
type Store interface {
	// LoadEvents returns the previously persisted high-water block and
	// merged event list, or found=false if nothing has been persisted yet.
	LoadEvents() (highWaterBlock uint64, evs []events.StakeTableEvent, found bool, err error)

	// StoreEvents idempotently replaces the persisted event log up to
	// highWaterBlock.
	StoreEvents(highWaterBlock uint64, evs []events.StakeTableEvent) error

	// StoreStake persists the validator set derived for epoch.
	StoreStake(epoch uint64, set *stake.ValidatorSet) error

	// LoadStake returns the validator set persisted for epoch, if any.
	LoadStake(epoch uint64) (*stake.ValidatorSet, bool, error)

	// LoadLatestStake returns up to limit of the most recently persisted
	// epoch stake tables, newest first.
	LoadLatestStake(limit int) ([]EpochStake, error)
}
