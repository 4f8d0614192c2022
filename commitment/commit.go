// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package commitment implements the stake-table commitment: a
// deterministic serialization of (BLS keys, Schnorr keys, amounts,
// threshold) into a fixed field-element preimage, hashed to a
// succinct on-chain-verifiable scalar per column. The preimage layout
// and padding discipline are observable on-chain and must never
// change shape even when "optimizing".
package commitment

import (
	"github.com/pkg/errors"

	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/lightclient"
)

// StakeTableState is an alias of lightclient.StakeTableState: the
// canonical wire type lives in package lightclient since it is also
// embedded in the signer's signed message; this package
// only produces values of that shape.
type StakeTableState = lightclient.StakeTableState

// Entry is one committee member's commitment input: its BLS key,
// Schnorr key, and stake amount, in the insertion order the
// commitment is computed over. This mirrors committee.PeerConfig,
// kept local to this package to avoid a dependency on package
// committee (which itself depends on commitment).
type Entry struct {
	BlsKey     chainkit.BlsPubKey
	SchnorrKey chainkit.SchnorrPubKey
	Stake      *chainkit.U256
}

// ErrCapacityTooSmall is returned when capacity is less than len(entries).
var ErrCapacityTooSmall = errors.New("commitment capacity smaller than validator count")

// Commit computes the StakeTableState commitment for entries, padded
// to capacity. capacity must be >= len(entries).
func Commit(entries []Entry, capacity int) (StakeTableState, error) {
	if capacity < len(entries) {
		return StakeTableState{}, ErrCapacityTooSmall
	}

	blsPreimage := make([]chainkit.Field, 0, capacity*chainkit.WBls)
	schPreimage := make([]chainkit.Field, 0, capacity*chainkit.WSch)
	amtPreimage := make([]chainkit.Field, 0, capacity)
	total := chainkit.ZeroU256()

	for _, e := range entries {
		blsFields := e.BlsKey.ToFields()
		blsPreimage = append(blsPreimage, blsFields[:]...)

		schFields := e.SchnorrKey.ToFields()
		schPreimage = append(schPreimage, schFields[:]...)

		amtPreimage = append(amtPreimage, chainkit.U256ToField(e.Stake))
		total = chainkit.AddU256(total, e.Stake)
	}

	// Pad each preimage deterministically to the per-column
	// capacity width, using the default field element (numbers) and
	// the default Schnorr key's field encoding (key columns). Do not
	// skip this even when entries already fill capacity exactly.
	defaultBls := chainkit.BlsPubKey{}
	defaultBlsFields := defaultBls.ToFields()
	defaultSchFields := chainkit.DefaultSchnorrPubKey().ToFields()
	defaultAmt := chainkit.DefaultField()

	for i := len(entries); i < capacity; i++ {
		blsPreimage = append(blsPreimage, defaultBlsFields[:]...)
		schPreimage = append(schPreimage, defaultSchFields[:]...)
		amtPreimage = append(amtPreimage, defaultAmt)
	}

	threshold := oneHonestThreshold(total)

	return StakeTableState{
		BlsKeyComm:     spongeCRH(blsPreimage),
		SchnorrKeyComm: spongeCRH(schPreimage),
		AmountComm:     spongeCRH(amtPreimage),
		Threshold:      chainkit.U256ToField(threshold),
	}, nil
}

// oneHonestThreshold computes floor(total/3)+1. Integer division
// never overflows, so no special-casing near U256::MAX is needed here
// (contrast with committee.SuccessThreshold, which multiplies by 2
// first).
func oneHonestThreshold(total *chainkit.U256) *chainkit.U256 {
	three := chainkit.NewU256(3)
	one := chainkit.NewU256(1)
	div := new(chainkit.U256).Div(total, three)
	return chainkit.AddU256(div, one)
}
