// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/events"
	"github.com/lightstake/sequencer/log"
)

var logger = log.WithContext("pkg", "stake")

// Reduce is a pure function from an ordered event stream to a
// ValidatorSet. Events must already be sorted by EventKey;
// the caller (the fetcher) owns that ordering. On any validation
// failure the whole batch is rejected; Reduce never returns a
// partially-applied set.
func Reduce(evs []events.StakeTableEvent) (*ValidatorSet, error) {
	set := NewValidatorSet()
	for i, ev := range evs {
		if err := apply(set, ev); err != nil {
			return nil, &ReduceError{Kind: err, EventIdx: i, Event: ev}
		}
	}
	return set, nil
}

func apply(set *ValidatorSet, ev events.StakeTableEvent) error {
	switch ev.K {
	case events.KindRegister:
		return applyRegister(set, ev)
	case events.KindDeregister:
		return applyDeregister(set, ev)
	case events.KindDelegate:
		return applyDelegate(set, ev)
	case events.KindUndelegate:
		return applyUndelegate(set, ev)
	case events.KindKeyUpdate:
		return applyKeyUpdate(set, ev)
	default:
		return ErrUnknownValidator
	}
}

func applyRegister(set *ValidatorSet, ev events.StakeTableEvent) error {
	if set.Has(ev.Account) {
		return ErrDuplicateAccount
	}
	if _, ok := set.blsUsed[ev.BlsKey]; ok {
		return ErrDuplicateBlsKey
	}
	if ev.Commission > 10000 {
		return ErrCommissionOutOfRng
	}
	rec := newValidatorRecord(ev.Account, ev.BlsKey, ev.SchnorrKey, ev.Commission)
	set.insert(rec)
	return nil
}

func applyDeregister(set *ValidatorSet, ev events.StakeTableEvent) error {
	if !set.Has(ev.Account) {
		return ErrUnknownValidator
	}
	set.remove(ev.Account)
	return nil
}

func applyDelegate(set *ValidatorSet, ev events.StakeTableEvent) error {
	rec, ok := set.Get(ev.Validator)
	if !ok {
		return ErrUnknownValidator
	}
	if ev.Amount == nil || ev.Amount.IsZero() {
		logger.Warn("ignoring zero-amount delegate event", "delegator", ev.Delegator, "validator", ev.Validator)
		return nil
	}
	rec.Stake = chainkit.AddU256(rec.Stake, ev.Amount)
	cur, ok := rec.Delegators[ev.Delegator]
	if !ok {
		cur = chainkit.ZeroU256()
	}
	rec.Delegators[ev.Delegator] = chainkit.AddU256(cur, ev.Amount)
	return nil
}

func applyUndelegate(set *ValidatorSet, ev events.StakeTableEvent) error {
	rec, ok := set.Get(ev.Validator)
	if !ok {
		return ErrUnknownValidator
	}
	cur, ok := rec.Delegators[ev.Delegator]
	if !ok {
		return ErrUnknownDelegator
	}
	if cur.Cmp(ev.Amount) < 0 {
		return ErrInsufficientStake
	}
	if rec.Stake.Cmp(ev.Amount) < 0 {
		return ErrInsufficientStake
	}
	rec.Stake = chainkit.SubU256(rec.Stake, ev.Amount)
	remaining := chainkit.SubU256(cur, ev.Amount)
	if remaining.IsZero() {
		delete(rec.Delegators, ev.Delegator)
	} else {
		rec.Delegators[ev.Delegator] = remaining
	}
	return nil
}

// applyKeyUpdate replaces a validator's keys without re-checking BLS
// uniqueness. This matches the on-chain contract's behavior (a known
// caveat): a KeyUpdate can silently re-introduce a BLS key already
// used by another validator. We preserve that behavior rather than
// guess at a stricter contract and only log a warning.
func applyKeyUpdate(set *ValidatorSet, ev events.StakeTableEvent) error {
	rec, ok := set.Get(ev.Account)
	if !ok {
		return ErrUnknownValidator
	}
	if other, used := set.blsUsed[ev.BlsKey]; used && other != ev.Account {
		logger.Warn("KeyUpdate re-introduces a BLS key already in use; contract does not enforce uniqueness here", "account", ev.Account, "other", other)
	}
	if rec.SchnorrKey != ev.SchnorrKey {
		// A Schnorr-key collision with another validator is warned but
		// not rejected; the contract does not enforce it.
		for acc, other := range set.records {
			if acc != ev.Account && other.SchnorrKey.Equal(ev.SchnorrKey) {
				logger.Warn("Schnorr key collision across validators", "account", ev.Account, "other", acc)
			}
		}
	}
	delete(set.blsUsed, rec.BlsKey)
	rec.BlsKey = ev.BlsKey
	rec.SchnorrKey = ev.SchnorrKey
	set.blsUsed[rec.BlsKey] = rec.Account
	return nil
}
