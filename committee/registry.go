// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package committee

import (
	"context"
	"sync"

	"github.com/lightstake/sequencer/activeset"
	"github.com/lightstake/sequencer/cache"
	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/events"
	"github.com/lightstake/sequencer/log"
	"github.com/lightstake/sequencer/persistence"
	"github.com/lightstake/sequencer/stake"
)

var logger = log.WithContext("pkg", "committee")

// EventSource is the narrow slice of fetch.Fetcher that AddEpochRoot
// needs: pull the ordered event stream up to a finalized L1 block.
type EventSource interface {
	FetchEvents(ctx context.Context, toBlock uint64) ([]events.StakeTableEvent, error)
}

// EpochHeader carries the L1-finalized block number an epoch root is
// anchored to.
type EpochHeader struct {
	L1FinalizedNumber uint64
	L1FinalizedKnown  bool
}

// Registry holds the Epoch Committee Registry's state.
// The committee map and randomized-leader map are behind a single
// read-write lock; expensive work (fetch + reduce + select)
// happens outside the lock via the deferred-mutation closure returned
// by AddEpochRoot.
type Registry struct {
	source EventSource
	store  persistence.Store

	mu         sync.RWMutex
	nonEpoch   *NonEpochCommittee
	state      map[uint64]*EpochCommittee
	randomized map[uint64]*RandomizedCommittee
	firstEpoch *uint64

	leafCache *cache.LRU // verified catch-up leaves by height
}

// leafCacheSize bounds how many verified catch-up leaves are kept.
const leafCacheSize = 64

// New builds an empty Registry over source (event fetcher) and store
// (validator-set persistence).
func New(source EventSource, store persistence.Store) *Registry {
	return &Registry{
		source:     source,
		store:      store,
		state:      make(map[uint64]*EpochCommittee),
		randomized: make(map[uint64]*RandomizedCommittee),
		leafCache:  cache.NewLRU(leafCacheSize),
	}
}

// hasEpoch reports whether state already holds epoch, under the
// read lock.
func (r *Registry) hasEpoch(epoch uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.state[epoch]
	return ok
}

// AddEpochRoot is idempotent: if the epoch is already known it is a
// no-op. Otherwise it fetches events up to header's finalized L1
// block, reduces them to a validator set, selects the active set,
// persists it, and returns a closure that installs the resulting
// EpochCommittee. The caller applies the closure via Commit; the
// expensive work above runs without holding the registry lock.
func (r *Registry) AddEpochRoot(ctx context.Context, epoch uint64, header EpochHeader) (func(), error) {
	if r.hasEpoch(epoch) {
		return func() {}, nil
	}
	if !header.L1FinalizedKnown {
		return nil, ErrMissingL1Finalized
	}

	evs, err := r.source.FetchEvents(ctx, header.L1FinalizedNumber)
	if err != nil {
		return nil, err
	}
	validators, err := stake.Reduce(evs)
	if err != nil {
		return nil, err
	}
	active, err := activeset.Select(validators)
	if err != nil {
		return nil, err
	}
	if err := r.store.StoreStake(epoch, active); err != nil {
		return nil, err
	}

	committee := buildEpochCommittee(active)
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, exists := r.state[epoch]; !exists {
			r.state[epoch] = committee
		}
	}, nil
}

// Commit applies a deferred mutation returned by AddEpochRoot. The
// closure takes the registry's write lock itself, so the critical
// section spans only the map install, not the fetch/reduce work.
func (r *Registry) Commit(apply func()) {
	apply()
}

func buildEpochCommittee(set *stake.ValidatorSet) *EpochCommittee {
	table := NewStakeTable()
	leaders := make([]chainkit.BlsPubKey, 0, set.Len())
	validators := make(map[chainkit.Address20]PeerConfig, set.Len())
	addrMapping := make(map[chainkit.BlsPubKey]chainkit.Address20, set.Len())

	set.Range(func(acc chainkit.Address20, rec *stake.ValidatorRecord) bool {
		pc := PeerConfig{
			Entry:       StakeEntry{Key: rec.BlsKey, Stake: rec.Stake},
			StateVerKey: rec.SchnorrKey,
		}
		table.Insert(pc)
		if !rec.Stake.IsZero() {
			leaders = append(leaders, rec.BlsKey)
		}
		validators[acc] = pc
		addrMapping[rec.BlsKey] = acc
		return true
	})

	return &EpochCommittee{
		EligibleLeaders: leaders,
		StakeTable:      table,
		Validators:      validators,
		AddressMapping:  addrMapping,
	}
}

// AddDRBResult builds the RandomizedCommittee from
// (eligible leaders, drb). Safe no-op, logging a critical error, if
// the stake table for the epoch is missing.
func (r *Registry) AddDRBResult(epoch uint64, drb []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ec, ok := r.state[epoch]
	if !ok {
		logger.Crit("dropping DRB result: stake table missing for epoch", "epoch", epoch)
		return
	}
	rc, err := NewRandomizedCommittee(ec.EligibleLeaders, ec.StakeTable, drb)
	if err != nil {
		logger.Crit("failed to build randomized committee", "epoch", epoch, "err", err)
		return
	}
	r.randomized[epoch] = rc
}

// SetFirstEpoch installs the genesis committee into state[epoch] and
// state[epoch+1] (the PoS activation boundary has no epoch transition
// yet to derive epoch+1 from), and seeds randomized tables for both
// using initialDrb.
func (r *Registry) SetFirstEpoch(epoch uint64, nonEpoch *NonEpochCommittee, initialDrb []byte) error {
	genesis := &EpochCommittee{
		EligibleLeaders: nonEpoch.EligibleLeaders,
		StakeTable:      nonEpoch.StakeTable,
		Validators:      nil,
		AddressMapping:  nil,
	}

	r.mu.Lock()
	r.nonEpoch = nonEpoch
	r.firstEpoch = &epoch
	r.state[epoch] = genesis
	r.state[epoch+1] = genesis
	r.mu.Unlock()

	rc, err := NewRandomizedCommittee(nonEpoch.EligibleLeaders, nonEpoch.StakeTable, initialDrb)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.randomized[epoch] = rc
	r.randomized[epoch+1] = rc
	r.mu.Unlock()
	return nil
}

// LookupLeader selects the leader for view. With epoch set, it
// selects from randomized[epoch] by SelectByCDF(view), returning
// LeaderLookupError if that table is absent. With epoch nil, it
// round-robins over the genesis committee's eligible leaders by
// view mod n.
func (r *Registry) LookupLeader(view uint64, epoch *uint64) (chainkit.BlsPubKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if epoch == nil {
		if r.nonEpoch == nil || len(r.nonEpoch.EligibleLeaders) == 0 {
			return chainkit.BlsPubKey{}, LeaderLookupError
		}
		n := uint64(len(r.nonEpoch.EligibleLeaders))
		return r.nonEpoch.EligibleLeaders[view%n], nil
	}
	rc, ok := r.randomized[*epoch]
	if !ok {
		return chainkit.BlsPubKey{}, LeaderLookupError
	}
	return rc.SelectByCDF(view), nil
}

// HasStake reports whether key holds non-zero stake in epoch's
// committee.
func (r *Registry) HasStake(key chainkit.BlsPubKey, epoch uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ec, ok := r.state[epoch]
	if !ok {
		return false
	}
	pc, ok := ec.StakeTable.Get(key)
	return ok && pc.Entry.Stake != nil && !pc.Entry.Stake.IsZero()
}

// HasDaStake reports whether key holds non-zero stake in the
// genesis-derived DA sub-committee. DA membership is fixed at genesis;
// per-epoch DA reweighting is future work.
func (r *Registry) HasDaStake(key chainkit.BlsPubKey) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.nonEpoch == nil {
		return false
	}
	pc, ok := r.nonEpoch.IndexedDaMembers[key]
	return ok && pc.Entry.Stake != nil && !pc.Entry.Stake.IsZero()
}

// EpochTotalStake returns epoch's total stake, or nil if unknown.
func (r *Registry) EpochTotalStake(epoch uint64) (*chainkit.U256, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ec, ok := r.state[epoch]
	if !ok {
		return nil, false
	}
	return ec.TotalStake(), true
}

// EpochCommittee returns the committee for epoch, if known.
func (r *Registry) EpochCommittee(epoch uint64) (*EpochCommittee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ec, ok := r.state[epoch]
	return ec, ok
}
