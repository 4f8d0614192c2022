// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fetch

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/events"
	"github.com/lightstake/sequencer/transport"
)

// eventDef pairs a registry event kind with the go-ethereum ABI event
// used to unpack its non-indexed fields. Mirrors abi/event.go's
// Event wrapper's indexed-field filtering, built over the five fixed
// registry topics instead of a contract-wide ABI.
type eventDef struct {
	kind    events.Kind
	topic   common.Hash
	nonIdx  abi.Arguments
	indexed abi.Arguments
}

var uint256Ty, _ = abi.NewType("uint256", "", nil)
var uint16Ty, _ = abi.NewType("uint16", "", nil)
var addressTy, _ = abi.NewType("address", "", nil)
var bytesTy, _ = abi.NewType("bytes", "", nil)

func mustSig(name string, args ...abi.Argument) (common.Hash, abi.Arguments) {
	types := make([]string, len(args))
	for i, a := range args {
		types[i] = a.Type.String()
	}
	sig := name + "("
	for i, t := range types {
		if i > 0 {
			sig += ","
		}
		sig += t
	}
	sig += ")"
	return crypto.Keccak256Hash([]byte(sig)), args
}

var eventDefs = func() map[common.Hash]eventDef {
	registeredTopic, registeredData := mustSig("ValidatorRegistered",
		abi.Argument{Name: "blsVk", Type: bytesTy},
		abi.Argument{Name: "schnorrVk", Type: bytesTy},
		abi.Argument{Name: "commission", Type: uint16Ty},
	)
	exitTopic, _ := mustSig("ValidatorExit", abi.Argument{Name: "validator", Type: addressTy})
	delegatedTopic, delegatedData := mustSig("Delegated",
		abi.Argument{Name: "amount", Type: uint256Ty},
	)
	undelegatedTopic, undelegatedData := mustSig("Undelegated",
		abi.Argument{Name: "amount", Type: uint256Ty},
	)
	keyUpdateTopic, keyUpdateData := mustSig("ConsensusKeysUpdated",
		abi.Argument{Name: "blsVK", Type: bytesTy},
		abi.Argument{Name: "schnorrVK", Type: bytesTy},
	)

	defs := map[common.Hash]eventDef{
		registeredTopic:  {kind: events.KindRegister, topic: registeredTopic, nonIdx: registeredData},
		exitTopic:        {kind: events.KindDeregister, topic: exitTopic},
		delegatedTopic:   {kind: events.KindDelegate, topic: delegatedTopic, nonIdx: delegatedData},
		undelegatedTopic: {kind: events.KindUndelegate, topic: undelegatedTopic, nonIdx: undelegatedData},
		keyUpdateTopic:   {kind: events.KindKeyUpdate, topic: keyUpdateTopic, nonIdx: keyUpdateData},
	}
	return defs
}()

// Topics returns the five registry event topics, for callers building
// an eth_getLogs filter.
func Topics() []common.Hash {
	out := make([]common.Hash, 0, len(eventDefs))
	for t := range eventDefs {
		out = append(out, t)
	}
	return out
}

// decodeLog converts one go-ethereum log entry into a StakeTableEvent.
// Addresses are always indexed (Topics[1:]); bls/schnorr keys and
// amounts are carried in Data.
func decodeLog(l *types.Log) (events.StakeTableEvent, error) {
	var zero events.StakeTableEvent
	if len(l.Topics) == 0 {
		return zero, errors.New("log has no topics")
	}
	def, ok := eventDefs[l.Topics[0]]
	if !ok {
		return zero, errors.Errorf("unrecognized event topic %s", l.Topics[0])
	}

	ev := events.StakeTableEvent{
		Key: events.EventKey{BlockNumber: l.BlockNumber, LogIndex: uint32(l.Index)},
		K:   def.kind,
	}

	addrAt := func(topicIdx int) (chainkit.Address20, error) {
		if topicIdx >= len(l.Topics) {
			return chainkit.Address20{}, errors.Errorf("%s: missing indexed address at topic %d", def.kind, topicIdx)
		}
		var a chainkit.Address20
		copy(a[:], l.Topics[topicIdx].Bytes()[12:])
		return a, nil
	}

	switch def.kind {
	case events.KindRegister:
		acc, err := addrAt(1)
		if err != nil {
			return zero, &transport.Error{Kind: transport.EventDecodeFailure, Err: err}
		}
		ev.Account = acc
		if err := unpackKeysAndCommission(def, l.Data, &ev); err != nil {
			return zero, &transport.Error{Kind: transport.EventDecodeFailure, Err: err}
		}
	case events.KindDeregister:
		acc, err := addrAt(1)
		if err != nil {
			return zero, &transport.Error{Kind: transport.EventDecodeFailure, Err: err}
		}
		ev.Account = acc
	case events.KindDelegate, events.KindUndelegate:
		del, err := addrAt(1)
		if err != nil {
			return zero, &transport.Error{Kind: transport.EventDecodeFailure, Err: err}
		}
		val, err := addrAt(2)
		if err != nil {
			return zero, &transport.Error{Kind: transport.EventDecodeFailure, Err: err}
		}
		ev.Delegator = del
		ev.Validator = val
		unpacked, err := def.nonIdx.Unpack(l.Data)
		if err != nil || len(unpacked) != 1 {
			return zero, &transport.Error{Kind: transport.EventDecodeFailure, Err: errors.WithMessage(err, "unpack amount")}
		}
		amt, ok := toU256(unpacked[0])
		if !ok {
			return zero, &transport.Error{Kind: transport.EventDecodeFailure, Err: errors.New("amount decode failed")}
		}
		ev.Amount = amt
	case events.KindKeyUpdate:
		acc, err := addrAt(1)
		if err != nil {
			return zero, &transport.Error{Kind: transport.EventDecodeFailure, Err: err}
		}
		ev.Account = acc
		if err := unpackKeysOnly(def, l.Data, &ev); err != nil {
			return zero, &transport.Error{Kind: transport.EventDecodeFailure, Err: err}
		}
	}
	return ev, nil
}

func unpackKeysAndCommission(def eventDef, data []byte, ev *events.StakeTableEvent) error {
	unpacked, err := def.nonIdx.Unpack(data)
	if err != nil || len(unpacked) != 3 {
		return errors.WithMessage(err, "unpack register payload")
	}
	bls, ok := unpacked[0].([]byte)
	if !ok || len(bls) != chainkit.BlsPubKeyLen {
		return errors.New("malformed bls key")
	}
	copy(ev.BlsKey[:], bls)
	schn, ok := unpacked[1].([]byte)
	if !ok {
		return errors.New("malformed schnorr key")
	}
	if err := decodeSchnorr(schn, &ev.SchnorrKey); err != nil {
		return err
	}
	commission, ok := unpacked[2].(uint16)
	if !ok {
		return errors.New("malformed commission")
	}
	ev.Commission = commission
	return nil
}

func unpackKeysOnly(def eventDef, data []byte, ev *events.StakeTableEvent) error {
	unpacked, err := def.nonIdx.Unpack(data)
	if err != nil || len(unpacked) != 2 {
		return errors.WithMessage(err, "unpack key-update payload")
	}
	bls, ok := unpacked[0].([]byte)
	if !ok || len(bls) != chainkit.BlsPubKeyLen {
		return errors.New("malformed bls key")
	}
	copy(ev.BlsKey[:], bls)
	schn, ok := unpacked[1].([]byte)
	if !ok {
		return errors.New("malformed schnorr key")
	}
	return decodeSchnorr(schn, &ev.SchnorrKey)
}

func decodeSchnorr(raw []byte, out *chainkit.SchnorrPubKey) error {
	if len(raw) != 64 {
		return errors.New("malformed schnorr point: expected 64 bytes")
	}
	out.X.SetBytes(raw[:32])
	out.Y.SetBytes(raw[32:])
	return nil
}

func toU256(v interface{}) (*chainkit.U256, bool) {
	bi, ok := v.(*big.Int)
	if !ok {
		return nil, false
	}
	u, overflow := uint256.FromBig(bi)
	if overflow {
		return nil, false
	}
	return u, true
}
