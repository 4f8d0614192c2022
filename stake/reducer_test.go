// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/events"
)

func addr(b byte) chainkit.Address20 {
	var a chainkit.Address20
	a[0] = b
	return a
}

func blsKey(b byte) chainkit.BlsPubKey {
	var k chainkit.BlsPubKey
	k[0] = b
	return k
}

func amount(v uint64) *chainkit.U256 { return chainkit.NewU256(v) }

func registerEvent(blockNum uint64, acc chainkit.Address20, bls chainkit.BlsPubKey, commission uint16) events.StakeTableEvent {
	return events.StakeTableEvent{
		Key:        events.EventKey{BlockNumber: blockNum},
		K:          events.KindRegister,
		Account:    acc,
		BlsKey:     bls,
		Commission: commission,
	}
}

func delegateEvent(blockNum uint64, kind events.Kind, delegator, validator chainkit.Address20, amt uint64) events.StakeTableEvent {
	return events.StakeTableEvent{
		Key:       events.EventKey{BlockNumber: blockNum},
		K:         kind,
		Delegator: delegator,
		Validator: validator,
		Amount:    amount(amt),
	}
}

func TestReduce_RegisterDelegateUndelegatePartial(t *testing.T) {
	a := addr(1)
	d := addr(2)
	evs := []events.StakeTableEvent{
		registerEvent(1, a, blsKey(1), 500),
		delegateEvent(2, events.KindDelegate, d, a, 10),
		delegateEvent(3, events.KindUndelegate, d, a, 7),
		delegateEvent(4, events.KindDelegate, d, a, 5),
	}

	set, err := Reduce(evs)
	require.NoError(t, err)

	rec, ok := set.Get(a)
	require.True(t, ok)
	assert.Equal(t, uint64(8), rec.Stake.Uint64())
	assert.Equal(t, uint64(8), rec.Delegators[d].Uint64())
}

func TestReduce_RejectDuplicateBls(t *testing.T) {
	bls := blsKey(9)
	evs := []events.StakeTableEvent{
		registerEvent(1, addr(1), bls, 0),
		registerEvent(2, addr(2), bls, 0),
	}

	_, err := Reduce(evs)
	require.Error(t, err)

	var rerr *ReduceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, ErrDuplicateBlsKey, rerr.Kind)
	assert.Equal(t, 1, rerr.EventIdx)
}

func TestReduce_ExitOnUnknownValidator(t *testing.T) {
	evs := []events.StakeTableEvent{
		{Key: events.EventKey{BlockNumber: 1}, K: events.KindDeregister, Account: addr(1)},
	}

	_, err := Reduce(evs)
	require.Error(t, err)

	var rerr *ReduceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, ErrUnknownValidator, rerr.Kind)
}

func TestReduce_RejectDuplicateAccount(t *testing.T) {
	evs := []events.StakeTableEvent{
		registerEvent(1, addr(1), blsKey(1), 0),
		registerEvent(2, addr(1), blsKey(2), 0),
	}
	_, err := Reduce(evs)
	require.Error(t, err)
	var rerr *ReduceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, ErrDuplicateAccount, rerr.Kind)
}

func TestReduce_RejectCommissionOutOfRange(t *testing.T) {
	_, err := Reduce([]events.StakeTableEvent{registerEvent(1, addr(1), blsKey(1), 10001)})
	require.Error(t, err)
	var rerr *ReduceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, ErrCommissionOutOfRng, rerr.Kind)
}

func TestReduce_UndelegateInsufficientStake(t *testing.T) {
	a, d := addr(1), addr(2)
	evs := []events.StakeTableEvent{
		registerEvent(1, a, blsKey(1), 0),
		delegateEvent(2, events.KindDelegate, d, a, 5),
		delegateEvent(3, events.KindUndelegate, d, a, 6),
	}
	_, err := Reduce(evs)
	require.Error(t, err)
	var rerr *ReduceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, ErrInsufficientStake, rerr.Kind)
}

func TestReduce_UndelegateUnknownDelegator(t *testing.T) {
	a, d := addr(1), addr(2)
	evs := []events.StakeTableEvent{
		registerEvent(1, a, blsKey(1), 0),
		delegateEvent(2, events.KindUndelegate, d, a, 1),
	}
	_, err := Reduce(evs)
	require.Error(t, err)
	var rerr *ReduceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, ErrUnknownDelegator, rerr.Kind)
}

func TestReduce_KeyUpdateDoesNotRecheckBlsUniqueness(t *testing.T) {
	a, b := addr(1), addr(2)
	sharedBls := blsKey(7)
	evs := []events.StakeTableEvent{
		registerEvent(1, a, blsKey(1), 0),
		registerEvent(2, b, sharedBls, 0),
		{
			Key:     events.EventKey{BlockNumber: 3},
			K:       events.KindKeyUpdate,
			Account: a,
			BlsKey:  sharedBls,
		},
	}

	set, err := Reduce(evs)
	require.NoError(t, err, "KeyUpdate must not reject a reused BLS key, only warn")

	recA, _ := set.Get(a)
	assert.Equal(t, sharedBls, recA.BlsKey)
}

func TestReduce_DeregisterRemovesValidator(t *testing.T) {
	a := addr(1)
	evs := []events.StakeTableEvent{
		registerEvent(1, a, blsKey(1), 0),
		{Key: events.EventKey{BlockNumber: 2}, K: events.KindDeregister, Account: a},
	}
	set, err := Reduce(evs)
	require.NoError(t, err)
	assert.False(t, set.Has(a))
	assert.Equal(t, 0, set.Len())
}
