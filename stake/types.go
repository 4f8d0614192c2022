// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stake holds the validator-set data model and the pure
// event-reducer that derives it.
package stake

import (
	"github.com/lightstake/sequencer/chainkit"
)

// ValidatorRecord is one entry of the validator set.
type ValidatorRecord struct {
	Account    chainkit.Address20
	BlsKey     chainkit.BlsPubKey
	SchnorrKey chainkit.SchnorrPubKey
	Stake      *chainkit.U256
	Commission uint16 // basis points, 0..10000
	Delegators map[chainkit.Address20]*chainkit.U256
}

func newValidatorRecord(acc chainkit.Address20, bls chainkit.BlsPubKey, schn chainkit.SchnorrPubKey, commission uint16) *ValidatorRecord {
	return &ValidatorRecord{
		Account:    acc,
		BlsKey:     bls,
		SchnorrKey: schn,
		Stake:      chainkit.ZeroU256(),
		Commission: commission,
		Delegators: make(map[chainkit.Address20]*chainkit.U256),
	}
}

func (v *ValidatorRecord) clone() *ValidatorRecord {
	c := &ValidatorRecord{
		Account:    v.Account,
		BlsKey:     v.BlsKey,
		SchnorrKey: v.SchnorrKey,
		Stake:      new(chainkit.U256).Set(v.Stake),
		Commission: v.Commission,
		Delegators: make(map[chainkit.Address20]*chainkit.U256, len(v.Delegators)),
	}
	for d, amt := range v.Delegators {
		c.Delegators[d] = new(chainkit.U256).Set(amt)
	}
	return c
}

// ValidatorSet is an insertion-ordered mapping Address20 ->
// ValidatorRecord. Insertion order is preserved across mutations; removal
// shifts successors rather than leaving gaps.
type ValidatorSet struct {
	order   []chainkit.Address20
	records map[chainkit.Address20]*ValidatorRecord
	blsUsed map[chainkit.BlsPubKey]chainkit.Address20
}

// NewValidatorSet returns an empty validator set.
func NewValidatorSet() *ValidatorSet {
	return &ValidatorSet{
		records: make(map[chainkit.Address20]*ValidatorRecord),
		blsUsed: make(map[chainkit.BlsPubKey]chainkit.Address20),
	}
}

// Len returns the number of validators currently in the set.
func (s *ValidatorSet) Len() int { return len(s.order) }

// Get returns the record for acc, if present.
func (s *ValidatorSet) Get(acc chainkit.Address20) (*ValidatorRecord, bool) {
	r, ok := s.records[acc]
	return r, ok
}

// Has reports whether acc is a known validator.
func (s *ValidatorSet) Has(acc chainkit.Address20) bool {
	_, ok := s.records[acc]
	return ok
}

// Range iterates over validators in insertion order, stopping early if
// fn returns false.
func (s *ValidatorSet) Range(fn func(acc chainkit.Address20, rec *ValidatorRecord) bool) {
	for _, acc := range s.order {
		if !fn(acc, s.records[acc]) {
			return
		}
	}
}

// Records returns a slice of validator records in insertion order.
func (s *ValidatorSet) Records() []*ValidatorRecord {
	out := make([]*ValidatorRecord, 0, len(s.order))
	s.Range(func(_ chainkit.Address20, rec *ValidatorRecord) bool {
		out = append(out, rec)
		return true
	})
	return out
}

// Clone returns a deep copy of the set, safe for independent mutation.
func (s *ValidatorSet) Clone() *ValidatorSet {
	c := NewValidatorSet()
	c.order = append(c.order, s.order...)
	for acc, rec := range s.records {
		c.records[acc] = rec.clone()
	}
	for bls, acc := range s.blsUsed {
		c.blsUsed[bls] = acc
	}
	return c
}

// InsertRecord appends rec to the set, preserving its existing
// stake/delegators. Used by the active-set selector to build a
// filtered copy that preserves the original insertion order.
func (s *ValidatorSet) InsertRecord(rec *ValidatorRecord) {
	s.insert(rec.clone())
}

func (s *ValidatorSet) insert(rec *ValidatorRecord) {
	s.order = append(s.order, rec.Account)
	s.records[rec.Account] = rec
	s.blsUsed[rec.BlsKey] = rec.Account
}

func (s *ValidatorSet) remove(acc chainkit.Address20) {
	rec := s.records[acc]
	delete(s.records, acc)
	delete(s.blsUsed, rec.BlsKey)
	for i, a := range s.order {
		if a == acc {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
