// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package commitment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightstake/sequencer/chainkit"
)

func entryAt(i byte, stake uint64) Entry {
	var bls chainkit.BlsPubKey
	bls[0] = i
	var sch chainkit.SchnorrPubKey
	sch.X.SetUint64(uint64(i) + 1)
	sch.Y.SetUint64(uint64(i) + 2)
	return Entry{BlsKey: bls, SchnorrKey: sch, Stake: chainkit.NewU256(stake)}
}

// TestCommit_OneHonestThreshold: a 2-validator set with stakes 10,
// 20 must produce threshold=11 (floor(30/3)+1), independent of the
// hash internals.
func TestCommit_OneHonestThreshold(t *testing.T) {
	entries := []Entry{entryAt(1, 10), entryAt(2, 20)}
	got, err := Commit(entries, 200)
	require.NoError(t, err)

	var want chainkit.Field
	want.SetUint64(11)
	assert.True(t, got.Threshold.Equal(&want))
}

func TestCommit_CapacityTooSmall(t *testing.T) {
	entries := []Entry{entryAt(1, 10), entryAt(2, 20)}
	_, err := Commit(entries, 1)
	assert.ErrorIs(t, err, ErrCapacityTooSmall)
}

// TestCommit_Deterministic checks that commit is a
// deterministic function of insertion order and encodings.
func TestCommit_Deterministic(t *testing.T) {
	entries := []Entry{entryAt(1, 10), entryAt(2, 20), entryAt(3, 30)}
	a, err := Commit(entries, 50)
	require.NoError(t, err)
	b, err := Commit(append([]Entry(nil), entries...), 50)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestCommit_PermutationChangesCommitment checks that permuting validators yields a different commitment.
func TestCommit_PermutationChangesCommitment(t *testing.T) {
	original := []Entry{entryAt(1, 10), entryAt(2, 20), entryAt(3, 30)}
	permuted := []Entry{entryAt(2, 20), entryAt(1, 10), entryAt(3, 30)}

	a, err := Commit(original, 50)
	require.NoError(t, err)
	b, err := Commit(permuted, 50)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	// Threshold is order-independent since it's a pure sum over stakes.
	assert.True(t, a.Threshold.Equal(&b.Threshold))
}

// TestCommit_PaddingDifferentCapacitiesDiffer checks that the padded
// capacity is part of the committed preimage: the same entries at two
// different capacities hash differently, so a verifier pinned to one
// capacity cannot be fed a commitment computed at another.
func TestCommit_PaddingDifferentCapacitiesDiffer(t *testing.T) {
	entries := []Entry{entryAt(1, 10), entryAt(2, 20)}
	small, err := Commit(entries, 2)
	require.NoError(t, err)
	large, err := Commit(entries, 4)
	require.NoError(t, err)
	// Different capacity means a different-length preimage, hence a
	// different hash, even though the real entries are identical.
	assert.NotEqual(t, small.BlsKeyComm, large.BlsKeyComm)
}
