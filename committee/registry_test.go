// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package committee

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/drb"
)

func blsKey(b byte) chainkit.BlsPubKey {
	var k chainkit.BlsPubKey
	k[0] = b
	return k
}

func testNonEpoch(n int) *NonEpochCommittee {
	table := NewStakeTable()
	var leaders []chainkit.BlsPubKey
	for i := 0; i < n; i++ {
		k := blsKey(byte(i + 1))
		table.Insert(PeerConfig{Entry: StakeEntry{Key: k, Stake: chainkit.NewU256(uint64(10 * (i + 1)))}})
		leaders = append(leaders, k)
	}
	return &NonEpochCommittee{
		EligibleLeaders:   leaders,
		StakeTable:        table,
		IndexedDaMembers:  map[chainkit.BlsPubKey]PeerConfig{},
		IndexedStakeTable: map[chainkit.BlsPubKey]PeerConfig{},
	}
}

// epochSeed derives a DRB result the way a genesis boot would, rather
// than hand-rolling seed bytes.
func epochSeed(t *testing.T, epoch uint64) []byte {
	t.Helper()
	sk, err := crypto.GenerateKey()
	require.NoError(t, err)
	result, err := drb.Generate(sk, epoch)
	require.NoError(t, err)
	return result.Beta
}

func TestRegistry_SetFirstEpoch_And_LookupLeader(t *testing.T) {
	r := New(nil, nil)
	ne := testNonEpoch(4)
	require.NoError(t, r.SetFirstEpoch(5, ne, epochSeed(t, 5)))

	leader, err := r.LookupLeader(0, u64p(5))
	require.NoError(t, err)
	assert.Contains(t, ne.EligibleLeaders, leader)

	leader6, err := r.LookupLeader(0, u64p(6))
	require.NoError(t, err)
	assert.Equal(t, leader, leader6)

	_, err = r.LookupLeader(0, u64p(7))
	assert.ErrorIs(t, err, LeaderLookupError)
}

func TestRegistry_LookupLeader_NonEpoch_RoundRobin(t *testing.T) {
	r := New(nil, nil)
	ne := testNonEpoch(3)
	require.NoError(t, r.SetFirstEpoch(1, ne, []byte("s")))
	r.nonEpoch = ne

	l0, err := r.LookupLeader(0, nil)
	require.NoError(t, err)
	assert.Equal(t, ne.EligibleLeaders[0], l0)

	l4, err := r.LookupLeader(4, nil)
	require.NoError(t, err)
	assert.Equal(t, ne.EligibleLeaders[4%3], l4)
}

func TestRegistry_HasStake(t *testing.T) {
	r := New(nil, nil)
	ne := testNonEpoch(2)
	require.NoError(t, r.SetFirstEpoch(1, ne, []byte("s")))

	assert.True(t, r.HasStake(ne.EligibleLeaders[0], 1))
	assert.False(t, r.HasStake(blsKey(99), 1))
	assert.False(t, r.HasStake(ne.EligibleLeaders[0], 999))
}

func TestRegistry_AddDRBResult_MissingEpochIsNoop(t *testing.T) {
	r := New(nil, nil)
	// No state[42] installed; must not panic, and must not install a
	// randomized table.
	r.AddDRBResult(42, []byte("drb"))
	_, err := r.LookupLeader(0, u64p(42))
	assert.ErrorIs(t, err, LeaderLookupError)
}

func u64p(v uint64) *uint64 { return &v }
