// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package activeset implements the Active-Set Selector:
// filtering and truncating a ValidatorSet to the on-chain-bounded
// active committee.
package activeset

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/stake"
)

// VidTargetTotalStake is the integer denominator used to derive the
// minimum retained stake from the set's maximum stake. See DESIGN.md
// for the chosen value.
const VidTargetTotalStake = 3

// Cap is the fixed maximum size of the active committee.
const Cap = 100

// ErrEmptySet is returned when no validator survives selection.
var ErrEmptySet = errors.New("active set selection produced an empty set")

// Select filters set down to the active committee:
//  1. drop zero-stake or zero-delegator validators,
//  2. compute min_stake = max_stake / VidTargetTotalStake,
//  3. retain validators with stake >= min_stake,
//  4. sort by stake descending and truncate to Cap,
//  5. re-filter the original set to restore insertion order.
func Select(set *stake.ValidatorSet) (*stake.ValidatorSet, error) {
	type candidate struct {
		acc   chainkit.Address20
		stake *chainkit.U256
	}

	var candidates []candidate
	set.Range(func(acc chainkit.Address20, rec *stake.ValidatorRecord) bool {
		if rec.Stake.IsZero() || len(rec.Delegators) == 0 {
			return true
		}
		candidates = append(candidates, candidate{acc: acc, stake: rec.Stake})
		return true
	})

	if len(candidates) == 0 {
		return nil, ErrEmptySet
	}

	maxStake := candidates[0].stake
	for _, c := range candidates[1:] {
		if c.stake.Cmp(maxStake) > 0 {
			maxStake = c.stake
		}
	}
	minStake := new(chainkit.U256).Div(maxStake, chainkit.NewU256(VidTargetTotalStake))

	var retained []candidate
	for _, c := range candidates {
		if c.stake.Cmp(minStake) >= 0 {
			retained = append(retained, c)
		}
	}
	if len(retained) == 0 {
		return nil, ErrEmptySet
	}

	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].stake.Cmp(retained[j].stake) > 0
	})
	if len(retained) > Cap {
		retained = retained[:Cap]
	}

	selected := make(map[chainkit.Address20]struct{}, len(retained))
	for _, c := range retained {
		selected[c.acc] = struct{}{}
	}

	out := stake.NewValidatorSet()
	set.Range(func(acc chainkit.Address20, rec *stake.ValidatorRecord) bool {
		if _, ok := selected[acc]; ok {
			out.InsertRecord(rec)
		}
		return true
	})
	return out, nil
}
