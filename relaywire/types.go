// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package relaywire holds the JSON wire shapes shared by the signer
// (client) and the relay (server) across the relay HTTP surface:
// StateSignatureRequestBody on POST /api/state, and the
// SignatureBundle returned by GET /api/state. Field elements, keys and
// signatures are hex-encoded for JSON transport; U256 weights are
// decimal strings.
package relaywire

import (
	"encoding/hex"

	"github.com/lightstake/sequencer/chainkit"
)

// FieldHex is a hex-encoded BN254 scalar-field element.
type FieldHex string

// EncodeField hex-encodes a field element's canonical byte form.
func EncodeField(f chainkit.Field) FieldHex {
	b := f.Bytes()
	return FieldHex("0x" + hex.EncodeToString(b[:]))
}

// Decode parses the hex string back into a field element.
func (h FieldHex) Decode() (chainkit.Field, error) {
	var f chainkit.Field
	s := string(h)
	if len(s) >= 2 && s[:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return f, err
	}
	f.SetBytes(b)
	return f, nil
}

// LightClientState is the JSON wire shape of lightclient.State.
type LightClientState struct {
	ViewNumber    uint64   `json:"view_number"`
	BlockHeight   uint64   `json:"block_height"`
	BlockCommRoot FieldHex `json:"block_comm_root"`
}

// StakeTableState is the JSON wire shape of lightclient.StakeTableState.
type StakeTableState struct {
	BlsKeyComm     FieldHex `json:"bls_key_comm"`
	SchnorrKeyComm FieldHex `json:"schnorr_key_comm"`
	AmountComm     FieldHex `json:"amount_comm"`
	Threshold      FieldHex `json:"threshold"`
}

// SchnorrPubKeyHex is a hex-encoded Ed-on-BN254 Schnorr public key.
type SchnorrPubKeyHex struct {
	X FieldHex `json:"x"`
	Y FieldHex `json:"y"`
}

// StateSignatureRequestBody is the POST /api/state body.
type StateSignatureRequestBody struct {
	Key       SchnorrPubKeyHex `json:"key"`
	State     LightClientState `json:"state"`
	NextStake StakeTableState  `json:"next_stake"`
	Signature string           `json:"signature"` // hex-encoded chainkit.Signature
}

// SignatureBundle is the JSON wire shape of a relay bundle, returned
// by GET /api/state once a block height's signatures cross threshold.
type SignatureBundle struct {
	State             LightClientState  `json:"state"`
	NextStake         StakeTableState   `json:"next_stake"`
	Signatures        []SignerSignature `json:"signatures"`
	AccumulatedWeight string            `json:"accumulated_weight"` // decimal U256
}

// SignerSignature pairs a signer's verification key with its signature.
type SignerSignature struct {
	Key       SchnorrPubKeyHex `json:"key"`
	Signature string           `json:"signature"`
}
