// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package committee

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lightstake/sequencer/chainkit"
)

func TestSuccessThreshold_Small(t *testing.T) {
	total := chainkit.NewU256(30)
	got := SuccessThreshold(total)
	// floor(2*30/3)+1 = 21
	assert.Equal(t, uint64(21), got.Uint64())
}

func TestFailureThreshold_Small(t *testing.T) {
	total := chainkit.NewU256(30)
	got := FailureThreshold(total)
	// floor(30/3)+1 = 11
	assert.Equal(t, uint64(11), got.Uint64())
}

func TestUpgradeThreshold_Small(t *testing.T) {
	total := chainkit.NewU256(100)
	got := UpgradeThreshold(total)
	// success=floor(200/3)+1=67, ninety=floor(900/10)=90 -> max=90
	assert.Equal(t, uint64(90), got.Uint64())
}

func TestSuccessThreshold_NearMax_NoOverflow(t *testing.T) {
	max := new(chainkit.U256).Not(chainkit.ZeroU256())
	got := SuccessThreshold(max)
	assert.True(t, got.Cmp(max) <= 0)

	// success >= ceil(2*total/3): compare against big.Int arithmetic.
	maxBytes := max.Bytes32()
	totalBig := new(big.Int).SetBytes(maxBytes[:])
	lower := new(big.Int).Mul(totalBig, big.NewInt(2))
	q, rem := new(big.Int).QuoRem(lower, big.NewInt(3), new(big.Int))
	ceil := new(big.Int).Set(q)
	if rem.Sign() != 0 {
		ceil.Add(ceil, big.NewInt(1))
	}
	gotBytes := got.Bytes32()
	gotBig := new(big.Int).SetBytes(gotBytes[:])
	assert.True(t, gotBig.Cmp(ceil) >= 0)
}
