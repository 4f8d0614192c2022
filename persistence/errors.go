// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package persistence

import "github.com/pkg/errors"

// Persistence error kinds: logged at error level, retried at the
// next tick, never silently dropped.
var (
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrConsistencyMismatch = errors.New("persisted state consistency mismatch")
)
