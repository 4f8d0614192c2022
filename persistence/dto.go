// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package persistence

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/events"
	"github.com/lightstake/sequencer/stake"
)

// eventDTO is the RLP-encodable wire shape of a StakeTableEvent. Field
// elements and fixed-size arrays are carried as byte slices since only
// the Go stdlib-shaped types (structs, slices, uint64, *big.Int-like)
// round-trip cleanly through go-ethereum's rlp package.
type eventDTO struct {
	BlockNumber uint64
	LogIndex    uint32
	Kind        uint8
	Account     []byte
	BlsKey      []byte
	SchnorrX    []byte
	SchnorrY    []byte
	Commission  uint16
	Delegator   []byte
	Validator   []byte
	Amount      *chainkit.U256
}

func toEventDTO(e events.StakeTableEvent) eventDTO {
	schX := e.SchnorrKey.X.Bytes()
	schY := e.SchnorrKey.Y.Bytes()
	amt := e.Amount
	if amt == nil {
		amt = chainkit.ZeroU256()
	}
	return eventDTO{
		BlockNumber: e.Key.BlockNumber,
		LogIndex:    e.Key.LogIndex,
		Kind:        uint8(e.K),
		Account:     e.Account[:],
		BlsKey:      e.BlsKey[:],
		SchnorrX:    schX[:],
		SchnorrY:    schY[:],
		Commission:  e.Commission,
		Delegator:   e.Delegator[:],
		Validator:   e.Validator[:],
		Amount:      amt,
	}
}

func (d eventDTO) toEvent() events.StakeTableEvent {
	var acc, val, del chainkit.Address20
	copy(acc[:], d.Account)
	copy(val[:], d.Validator)
	copy(del[:], d.Delegator)
	var bls chainkit.BlsPubKey
	copy(bls[:], d.BlsKey)
	var schn chainkit.SchnorrPubKey
	schn.X.SetBytes(d.SchnorrX)
	schn.Y.SetBytes(d.SchnorrY)
	return events.StakeTableEvent{
		Key:        events.EventKey{BlockNumber: d.BlockNumber, LogIndex: d.LogIndex},
		K:          events.Kind(d.Kind),
		Account:    acc,
		BlsKey:     bls,
		SchnorrKey: schn,
		Commission: d.Commission,
		Delegator:  del,
		Validator:  val,
		Amount:     d.Amount,
	}
}

type eventLogDTO struct {
	HighWaterBlock uint64
	Events         []eventDTO
}

func encodeEventLog(highWaterBlock uint64, evs []events.StakeTableEvent) ([]byte, error) {
	dto := eventLogDTO{HighWaterBlock: highWaterBlock, Events: make([]eventDTO, len(evs))}
	for i, e := range evs {
		dto.Events[i] = toEventDTO(e)
	}
	return rlp.EncodeToBytes(&dto)
}

func decodeEventLog(raw []byte) (uint64, []events.StakeTableEvent, error) {
	var dto eventLogDTO
	if err := rlp.DecodeBytes(raw, &dto); err != nil {
		return 0, nil, err
	}
	out := make([]events.StakeTableEvent, len(dto.Events))
	for i, d := range dto.Events {
		out[i] = d.toEvent()
	}
	return dto.HighWaterBlock, out, nil
}

// delegatorDTO is one (delegator, amount) pair of a validator record.
type delegatorDTO struct {
	Delegator []byte
	Amount    *chainkit.U256
}

type validatorDTO struct {
	Account    []byte
	BlsKey     []byte
	SchnorrX   []byte
	SchnorrY   []byte
	Stake      *chainkit.U256
	Commission uint16
	Delegators []delegatorDTO
}

type validatorSetDTO struct {
	Validators []validatorDTO
}

func encodeValidatorSet(set *stake.ValidatorSet) ([]byte, error) {
	var dto validatorSetDTO
	set.Range(func(acc chainkit.Address20, rec *stake.ValidatorRecord) bool {
		schX := rec.SchnorrKey.X.Bytes()
		schY := rec.SchnorrKey.Y.Bytes()
		v := validatorDTO{
			Account:    acc[:],
			BlsKey:     rec.BlsKey[:],
			SchnorrX:   schX[:],
			SchnorrY:   schY[:],
			Stake:      rec.Stake,
			Commission: rec.Commission,
		}
		for d, amt := range rec.Delegators {
			v.Delegators = append(v.Delegators, delegatorDTO{Delegator: d[:], Amount: amt})
		}
		dto.Validators = append(dto.Validators, v)
		return true
	})
	return rlp.EncodeToBytes(&dto)
}

func decodeValidatorSet(raw []byte) (*stake.ValidatorSet, error) {
	var dto validatorSetDTO
	if err := rlp.DecodeBytes(raw, &dto); err != nil {
		return nil, err
	}
	set := stake.NewValidatorSet()
	for _, v := range dto.Validators {
		var acc chainkit.Address20
		copy(acc[:], v.Account)
		var bls chainkit.BlsPubKey
		copy(bls[:], v.BlsKey)
		var schn chainkit.SchnorrPubKey
		schn.X.SetBytes(v.SchnorrX)
		schn.Y.SetBytes(v.SchnorrY)
		rec := &stake.ValidatorRecord{
			Account:    acc,
			BlsKey:     bls,
			SchnorrKey: schn,
			Stake:      v.Stake,
			Commission: v.Commission,
			Delegators: make(map[chainkit.Address20]*chainkit.U256, len(v.Delegators)),
		}
		for _, d := range v.Delegators {
			var da chainkit.Address20
			copy(da[:], d.Delegator)
			rec.Delegators[da] = d.Amount
		}
		set.InsertRecord(rec)
	}
	return set, nil
}
