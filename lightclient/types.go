// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lightclient holds the on-chain-visible wire types: the
// light-client state triple and the stake-table commitment quadruple.
// Their field-element encodings are frozen; changing them breaks
// on-chain light-client verification.
package lightclient

import (
	"github.com/lightstake/sequencer/chainkit"
)

// State is the light-client state committed on-chain each decided
// block.
type State struct {
	ViewNumber    uint64
	BlockHeight   uint64
	BlockCommRoot chainkit.Field
}

// ToFields renders the state as its 3 field elements, in the fixed
// order (view_number, block_height, block_comm_root).
func (s State) ToFields() [3]chainkit.Field {
	return [3]chainkit.Field{
		chainkit.U256ToField(chainkit.NewU256(s.ViewNumber)),
		chainkit.U256ToField(chainkit.NewU256(s.BlockHeight)),
		s.BlockCommRoot,
	}
}

// StakeTableState is the four-field-element stake-table commitment.
type StakeTableState struct {
	BlsKeyComm     chainkit.Field
	SchnorrKeyComm chainkit.Field
	AmountComm     chainkit.Field
	Threshold      chainkit.Field
}

// ToFields renders the commitment as its 4 field elements, in the
// fixed order the on-chain verifier expects.
func (s StakeTableState) ToFields() [4]chainkit.Field {
	return [4]chainkit.Field{s.BlsKeyComm, s.SchnorrKeyComm, s.AmountComm, s.Threshold}
}

// SignedMessageFields returns the 7 field elements a signer signs over
// per decided block: the state's 3 fields followed by next_stake's 4.
func SignedMessageFields(state State, nextStake StakeTableState) [7]chainkit.Field {
	var out [7]chainkit.Field
	sf := state.ToFields()
	nf := nextStake.ToFields()
	copy(out[0:3], sf[:])
	copy(out[3:7], nf[:])
	return out
}
