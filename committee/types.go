// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package committee implements the epoch committee registry: indexing
// committees by epoch, answering leader/stake/threshold/has-stake
// queries, and holding the randomized leader tables keyed by each
// epoch's distributed-randomness-beacon result.
package committee

import (
	"github.com/lightstake/sequencer/chainkit"
)

// StakeEntry is the {key, stake} pair nested inside a PeerConfig.
type StakeEntry struct {
	Key   chainkit.BlsPubKey
	Stake *chainkit.U256
}

// PeerConfig is the derived view used by committee lookups:
// a BLS stake entry plus the member's Schnorr state-signing key.
type PeerConfig struct {
	Entry       StakeEntry
	StateVerKey chainkit.SchnorrPubKey
}

// StakeTable is an insertion-ordered mapping BlsPubKey -> PeerConfig.
type StakeTable struct {
	order []chainkit.BlsPubKey
	byKey map[chainkit.BlsPubKey]PeerConfig
}

// NewStakeTable returns an empty, ready-to-use StakeTable.
func NewStakeTable() *StakeTable {
	return &StakeTable{byKey: make(map[chainkit.BlsPubKey]PeerConfig)}
}

// Insert appends pc, preserving insertion order. A re-inserted key
// keeps its original position but updates its value.
func (t *StakeTable) Insert(pc PeerConfig) {
	if _, exists := t.byKey[pc.Entry.Key]; !exists {
		t.order = append(t.order, pc.Entry.Key)
	}
	t.byKey[pc.Entry.Key] = pc
}

// Get returns the PeerConfig for key, if present.
func (t *StakeTable) Get(key chainkit.BlsPubKey) (PeerConfig, bool) {
	pc, ok := t.byKey[key]
	return pc, ok
}

// Len reports the number of members.
func (t *StakeTable) Len() int { return len(t.order) }

// Range iterates members in insertion order.
func (t *StakeTable) Range(fn func(PeerConfig) bool) {
	for _, k := range t.order {
		if !fn(t.byKey[k]) {
			return
		}
	}
}

// TotalStake sums the stake of every member.
func (t *StakeTable) TotalStake() *chainkit.U256 {
	total := chainkit.ZeroU256()
	t.Range(func(pc PeerConfig) bool {
		total = chainkit.AddU256(total, pc.Entry.Stake)
		return true
	})
	return total
}

// NonEpochCommittee is the committee built once at genesis from
// configured initial peers, used before the first epoch
// boundary and for the non-epoch leader round-robin fallback.
type NonEpochCommittee struct {
	EligibleLeaders   []chainkit.BlsPubKey
	StakeTable        *StakeTable
	DaMembers         []chainkit.BlsPubKey
	IndexedStakeTable map[chainkit.BlsPubKey]PeerConfig
	IndexedDaMembers  map[chainkit.BlsPubKey]PeerConfig
}

// EpochCommittee is one epoch's committee.
type EpochCommittee struct {
	EligibleLeaders []chainkit.BlsPubKey
	StakeTable      *StakeTable
	Validators      map[chainkit.Address20]PeerConfig
	AddressMapping  map[chainkit.BlsPubKey]chainkit.Address20
}

// TotalStake sums the epoch committee's stake.
func (c *EpochCommittee) TotalStake() *chainkit.U256 {
	return c.StakeTable.TotalStake()
}
