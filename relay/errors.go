// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package relay

import "github.com/pkg/errors"

// Protocol error kinds the relay HTTP surface maps to status codes.
var (
	ErrNotReady                      = errors.New("no bundle available yet")
	ErrUnknownSigner                 = errors.New("signer not in stake table")
	ErrDuplicateSignature            = errors.New("duplicate signature")
	ErrInvalidSignature              = errors.New("invalid signature")
	ErrInternalStakeTableSyncFailure = errors.New("failed to sync stake table from sequencer")
)
