// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package drb provides a deterministic distributed-randomness-beacon
// result generator for genesis and tests. Production DRB generation
// is a consensus-level protocol out of this repo's scope; this
// package only supplies the per-epoch seed the committee registry's
// AddDRBResult/SetFirstEpoch consume, derived from a VRF proof so it is at least unpredictable and
// verifiable given a validator's key, not a bare counter.
package drb

import (
	"crypto/ecdsa"
	"encoding/binary"

	"github.com/lightstake/sequencer/vrf"
)

// Result is one epoch's DRB output: the VRF proof and its derived
// beacon bytes, consumed as the seed for committee.NewRandomizedCommittee.
type Result struct {
	Epoch uint64
	Beta  []byte
	Proof []byte
}

// Generate derives the DRB result for epoch from sk, binding the
// epoch number into the VRF input so results don't repeat across
// epochs even with a fixed key.
func Generate(sk *ecdsa.PrivateKey, epoch uint64) (Result, error) {
	var alpha [8]byte
	binary.BigEndian.PutUint64(alpha[:], epoch)
	beta, pi, err := vrf.Prove(sk, alpha[:])
	if err != nil {
		return Result{}, err
	}
	return Result{Epoch: epoch, Beta: beta, Proof: pi}, nil
}

// Verify checks that result.Beta is the correct VRF output of
// result.Proof for epoch under pk.
func Verify(pk *ecdsa.PublicKey, epoch uint64, result Result) (bool, error) {
	var alpha [8]byte
	binary.BigEndian.PutUint64(alpha[:], epoch)
	beta, err := vrf.Verify(pk, alpha[:], result.Proof)
	if err != nil {
		return false, err
	}
	return string(beta) == string(result.Beta), nil
}
