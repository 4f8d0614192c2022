// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"github.com/pkg/errors"

	"github.com/lightstake/sequencer/events"
)

// Validation error kinds surfaced by the reducer. The full
// event batch is rejected on any of these; the reducer never applies a
// partial batch.
var (
	ErrDuplicateAccount   = errors.New("duplicate account")
	ErrDuplicateBlsKey    = errors.New("duplicate bls key")
	ErrUnknownValidator   = errors.New("unknown validator")
	ErrUnknownDelegator   = errors.New("unknown delegator")
	ErrInsufficientStake  = errors.New("insufficient stake")
	ErrCommissionOutOfRng = errors.New("commission out of range")
)

// ReduceError associates a validation failure with the event that
// caused it, so callers can report precisely which event in the batch
// was rejected.
type ReduceError struct {
	Kind     error
	EventIdx int
	Event    events.StakeTableEvent
}

func (e *ReduceError) Error() string {
	return errors.WithMessagef(e.Kind, "event[%d] %s", e.EventIdx, e.Event.KindName()).Error()
}

func (e *ReduceError) Unwrap() error { return e.Kind }
