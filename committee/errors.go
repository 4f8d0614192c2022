// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package committee

import "github.com/pkg/errors"

// LeaderLookupError is returned by LookupLeader when the randomized
// table for the requested epoch is absent.
var LeaderLookupError = errors.New("no randomized leader table for epoch")

// ErrEpochRootMissing is returned by GetEpochRoot/GetEpochDRB when no
// peer could produce a verified leaf (chain) for the requested height.
var ErrEpochRootMissing = errors.New("epoch root unavailable from any peer")

// ErrLeafChainRejected means a fetched leaf chain failed
// quorum-certificate verification against the epoch's stake table
// and success threshold.
var ErrLeafChainRejected = errors.New("leaf chain rejected: quorum certificate invalid")

// ErrMissingL1Finalized is fatal: an epoch root header carries no
// L1-finalized block. Consensus halts and operator action is
// required; it is returned rather than silently worked around.
var ErrMissingL1Finalized = errors.New("epoch root header missing L1-finalized block")
