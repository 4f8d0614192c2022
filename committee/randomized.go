// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package committee

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"
	"sort"

	"github.com/pkg/errors"

	"github.com/lightstake/sequencer/chainkit"
)

// RandomizedCommittee is a CDF-style leader schedule built from
// (eligible leaders, DRB result) enabling O(log n) weighted leader
// selection.
type RandomizedCommittee struct {
	leaders    []chainkit.BlsPubKey
	cumWeights []*big.Int // cumWeights[i] = sum of stake of leaders[0..i]
	total      *big.Int
	drbSeed    []byte
}

// ErrEmptyCommittee is returned when building a randomized committee
// over zero eligible leaders.
var ErrEmptyCommittee = errors.New("no eligible leaders")

// NewRandomizedCommittee builds the CDF table over leaders weighted
// by their stake in table, seeded by drb. The DRB result only
// affects which view maps to which cumulative-weight bucket (via
// SelectByCDF), not the weights themselves.
func NewRandomizedCommittee(leaders []chainkit.BlsPubKey, table *StakeTable, drb []byte) (*RandomizedCommittee, error) {
	if len(leaders) == 0 {
		return nil, ErrEmptyCommittee
	}
	// Sort leaders by key bytes for a canonical, DRB-independent base
	// ordering; the DRB perturbs the per-view hash, not this ordering.
	ordered := append([]chainkit.BlsPubKey(nil), leaders...)
	sort.Slice(ordered, func(i, j int) bool {
		return string(ordered[i][:]) < string(ordered[j][:])
	})

	cum := make([]*big.Int, len(ordered))
	running := new(big.Int)
	for i, key := range ordered {
		pc, ok := table.Get(key)
		weight := big.NewInt(1)
		if ok && pc.Entry.Stake != nil {
			weight = new(big.Int).SetBytes(pc.Entry.Stake.Bytes())
		}
		running = new(big.Int).Add(running, weight)
		cum[i] = running
	}

	rc := &RandomizedCommittee{
		leaders:    ordered,
		cumWeights: cum,
		total:      new(big.Int).Set(running),
	}
	rc.seed(drb)
	return rc, nil
}

// seed stores drb so SelectByCDF can mix it into its per-view hash;
// the cumulative-weight table itself does not depend on drb.
func (rc *RandomizedCommittee) seed(drb []byte) { rc.drbSeed = drb }

// SelectByCDF deterministically picks a leader for view, proportional
// to stake in the limit over many views.
func (rc *RandomizedCommittee) SelectByCDF(view uint64) chainkit.BlsPubKey {
	if rc.total.Sign() == 0 {
		return rc.leaders[int(view)%len(rc.leaders)]
	}
	target := new(big.Int).Mod(hashToBigInt(rc.drbSeed, view), rc.total)
	idx := sort.Search(len(rc.cumWeights), func(i int) bool {
		return rc.cumWeights[i].Cmp(target) > 0
	})
	if idx >= len(rc.leaders) {
		idx = len(rc.leaders) - 1
	}
	return rc.leaders[idx]
}

func hashToBigInt(drb []byte, view uint64) *big.Int {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], view)
	h := sha256.New()
	_, _ = h.Write(drb)
	_, _ = h.Write(buf[:])
	return new(big.Int).SetBytes(h.Sum(nil))
}
