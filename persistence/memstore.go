// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package persistence

import (
	"sort"
	"sync"

	"github.com/lightstake/sequencer/events"
	"github.com/lightstake/sequencer/stake"
)

// MemStore is an in-memory Store, used by tests and by single-process
// demos that don't need durability across restarts.
type MemStore struct {
	mu             sync.Mutex
	haveEvents     bool
	highWaterBlock uint64
	events         []events.StakeTableEvent
	stakeByEpoch   map[uint64]*stake.ValidatorSet
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{stakeByEpoch: make(map[uint64]*stake.ValidatorSet)}
}

func (m *MemStore) LoadEvents() (uint64, []events.StakeTableEvent, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.haveEvents {
		return 0, nil, false, nil
	}
	out := make([]events.StakeTableEvent, len(m.events))
	copy(out, m.events)
	return m.highWaterBlock, out, true, nil
}

func (m *MemStore) StoreEvents(highWaterBlock uint64, evs []events.StakeTableEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highWaterBlock = highWaterBlock
	m.events = append([]events.StakeTableEvent(nil), evs...)
	m.haveEvents = true
	return nil
}

func (m *MemStore) StoreStake(epoch uint64, set *stake.ValidatorSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stakeByEpoch[epoch] = set.Clone()
	return nil
}

func (m *MemStore) LoadStake(epoch uint64) (*stake.ValidatorSet, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.stakeByEpoch[epoch]
	if !ok {
		return nil, false, nil
	}
	return set.Clone(), true, nil
}

func (m *MemStore) LoadLatestStake(limit int) ([]EpochStake, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	epochs := make([]uint64, 0, len(m.stakeByEpoch))
	for e := range m.stakeByEpoch {
		epochs = append(epochs, e)
	}
	sort.Slice(epochs, func(i, j int) bool { return epochs[i] > epochs[j] })
	if limit > 0 && len(epochs) > limit {
		epochs = epochs[:limit]
	}
	out := make([]EpochStake, len(epochs))
	for i, e := range epochs {
		out[i] = EpochStake{Epoch: e, Set: m.stakeByEpoch[e].Clone()}
	}
	return out, nil
}
