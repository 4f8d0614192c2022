// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package drb_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightstake/sequencer/drb"
)

func TestGenerateVerify_RoundTrip(t *testing.T) {
	sk, err := crypto.GenerateKey()
	require.NoError(t, err)

	result, err := drb.Generate(sk, 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), result.Epoch)
	assert.NotEmpty(t, result.Beta)

	ok, err := drb.Verify(&sk.PublicKey, 42, result)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_WrongEpochFails(t *testing.T) {
	sk, err := crypto.GenerateKey()
	require.NoError(t, err)

	result, err := drb.Generate(sk, 1)
	require.NoError(t, err)

	ok, err := drb.Verify(&sk.PublicKey, 2, result)
	if err == nil {
		assert.False(t, ok)
	}
}

func TestGenerate_DistinctAcrossEpochs(t *testing.T) {
	sk, err := crypto.GenerateKey()
	require.NoError(t, err)

	a, err := drb.Generate(sk, 1)
	require.NoError(t, err)
	b, err := drb.Generate(sk, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a.Beta, b.Beta)
}
