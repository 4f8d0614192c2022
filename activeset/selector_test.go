// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package activeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/stake"
)

func recordWithStake(i int, amt uint64) *stake.ValidatorRecord {
	var acc chainkit.Address20
	acc[0] = byte(i)
	acc[1] = byte(i >> 8)
	var bls chainkit.BlsPubKey
	bls[0] = byte(i)
	bls[1] = byte(i >> 8)
	var delegator chainkit.Address20
	delegator[10] = byte(i)
	delegator[11] = byte(i >> 8)
	return &stake.ValidatorRecord{
		Account: acc,
		BlsKey:  bls,
		Stake:   chainkit.NewU256(amt),
		Delegators: map[chainkit.Address20]*chainkit.U256{
			delegator: chainkit.NewU256(amt),
		},
	}
}

func TestSelect_TruncatesToCap(t *testing.T) {
	set := stake.NewValidatorSet()
	for i := 1; i <= 150; i++ {
		set.InsertRecord(recordWithStake(i, uint64(i)))
	}

	out, err := Select(set)
	require.NoError(t, err)
	assert.Equal(t, Cap, out.Len())

	minRetained := uint64(1 << 62)
	out.Range(func(_ chainkit.Address20, rec *stake.ValidatorRecord) bool {
		s := rec.Stake.Uint64()
		assert.GreaterOrEqual(t, s, uint64(150)/VidTargetTotalStake)
		if s < minRetained {
			minRetained = s
		}
		return true
	})
	assert.Equal(t, uint64(51), minRetained)
}

func TestSelect_DropsZeroStakeAndZeroDelegatorValidators(t *testing.T) {
	set := stake.NewValidatorSet()
	set.InsertRecord(recordWithStake(1, 10))

	noDelegators := recordWithStake(2, 10)
	noDelegators.Delegators = map[chainkit.Address20]*chainkit.U256{}
	set.InsertRecord(noDelegators)

	zeroStake := recordWithStake(3, 0)
	set.InsertRecord(zeroStake)

	out, err := Select(set)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
}

func TestSelect_EmptySetErrors(t *testing.T) {
	_, err := Select(stake.NewValidatorSet())
	assert.ErrorIs(t, err, ErrEmptySet)
}

func TestSelect_PreservesOriginalInsertionOrder(t *testing.T) {
	set := stake.NewValidatorSet()
	set.InsertRecord(recordWithStake(3, 30))
	set.InsertRecord(recordWithStake(1, 10))
	set.InsertRecord(recordWithStake(2, 20))

	out, err := Select(set)
	require.NoError(t, err)

	var order []uint64
	out.Range(func(_ chainkit.Address20, rec *stake.ValidatorRecord) bool {
		order = append(order, rec.Stake.Uint64())
		return true
	})
	assert.Equal(t, []uint64{30, 10, 20}, order)
}
