// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package events defines the registry event schema. Decoding from
// go-ethereum log entries lives in package fetch.
package events

import (
	"fmt"

	"github.com/lightstake/sequencer/chainkit"
)

// EventKey is the canonical total order on registry events:
// (l1_block_number, log_index).
type EventKey struct {
	BlockNumber uint64
	LogIndex    uint32
}

// Less reports whether k sorts strictly before o.
func (k EventKey) Less(o EventKey) bool {
	if k.BlockNumber != o.BlockNumber {
		return k.BlockNumber < o.BlockNumber
	}
	return k.LogIndex < o.LogIndex
}

// Kind identifies which of the five registry event families an event belongs to.
type Kind uint8

const (
	KindRegister Kind = iota
	KindDeregister
	KindDelegate
	KindUndelegate
	KindKeyUpdate
)

func (k Kind) String() string {
	switch k {
	case KindRegister:
		return "ValidatorRegistered"
	case KindDeregister:
		return "ValidatorExit"
	case KindDelegate:
		return "Delegated"
	case KindUndelegate:
		return "Undelegated"
	case KindKeyUpdate:
		return "ConsensusKeysUpdated"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// StakeTableEvent is a tagged registry event. Only the fields
// relevant to the event's Kind are populated.
type StakeTableEvent struct {
	Key EventKey
	K   Kind

	// Register
	Account    chainkit.Address20
	BlsKey     chainkit.BlsPubKey
	SchnorrKey chainkit.SchnorrPubKey
	Commission uint16

	// Deregister: Account only.

	// Delegate / Undelegate
	Delegator chainkit.Address20
	Validator chainkit.Address20
	Amount    *chainkit.U256

	// KeyUpdate: Account, BlsKey, SchnorrKey
}

// KindName exposes the event kind for logging/error messages.
func (e StakeTableEvent) KindName() string { return e.K.String() }

// ByKey sorts events by their EventKey, ascending.
type ByKey []StakeTableEvent

func (b ByKey) Len() int           { return len(b) }
func (b ByKey) Less(i, j int) bool { return b[i].Key.Less(b[j].Key) }
func (b ByKey) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
