// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package relaywire

import (
	"encoding/hex"
	"strings"

	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/lightclient"
)

// EncodeState converts a lightclient.State to its wire shape.
func EncodeState(s lightclient.State) LightClientState {
	return LightClientState{
		ViewNumber:    s.ViewNumber,
		BlockHeight:   s.BlockHeight,
		BlockCommRoot: EncodeField(s.BlockCommRoot),
	}
}

// Decode converts the wire shape back to a lightclient.State.
func (s LightClientState) Decode() (lightclient.State, error) {
	root, err := s.BlockCommRoot.Decode()
	if err != nil {
		return lightclient.State{}, err
	}
	return lightclient.State{
		ViewNumber:    s.ViewNumber,
		BlockHeight:   s.BlockHeight,
		BlockCommRoot: root,
	}, nil
}

// EncodeStakeTableState converts a lightclient.StakeTableState to its wire shape.
func EncodeStakeTableState(s lightclient.StakeTableState) StakeTableState {
	return StakeTableState{
		BlsKeyComm:     EncodeField(s.BlsKeyComm),
		SchnorrKeyComm: EncodeField(s.SchnorrKeyComm),
		AmountComm:     EncodeField(s.AmountComm),
		Threshold:      EncodeField(s.Threshold),
	}
}

// Decode converts the wire shape back to a lightclient.StakeTableState.
func (s StakeTableState) Decode() (lightclient.StakeTableState, error) {
	bls, err := s.BlsKeyComm.Decode()
	if err != nil {
		return lightclient.StakeTableState{}, err
	}
	sch, err := s.SchnorrKeyComm.Decode()
	if err != nil {
		return lightclient.StakeTableState{}, err
	}
	amt, err := s.AmountComm.Decode()
	if err != nil {
		return lightclient.StakeTableState{}, err
	}
	thr, err := s.Threshold.Decode()
	if err != nil {
		return lightclient.StakeTableState{}, err
	}
	return lightclient.StakeTableState{
		BlsKeyComm:     bls,
		SchnorrKeyComm: sch,
		AmountComm:     amt,
		Threshold:      thr,
	}, nil
}

// EncodeSchnorrPubKey converts a chainkit.SchnorrPubKey to its wire shape.
func EncodeSchnorrPubKey(k chainkit.SchnorrPubKey) SchnorrPubKeyHex {
	return SchnorrPubKeyHex{X: EncodeField(k.X), Y: EncodeField(k.Y)}
}

// Decode converts the wire shape back to a chainkit.SchnorrPubKey.
func (k SchnorrPubKeyHex) Decode() (chainkit.SchnorrPubKey, error) {
	x, err := k.X.Decode()
	if err != nil {
		return chainkit.SchnorrPubKey{}, err
	}
	y, err := k.Y.Decode()
	if err != nil {
		return chainkit.SchnorrPubKey{}, err
	}
	return chainkit.SchnorrPubKey{X: x, Y: y}, nil
}

// EncodeSignature hex-encodes a chainkit.Signature for JSON transport.
func EncodeSignature(sig chainkit.Signature) string {
	return "0x" + hex.EncodeToString(sig)
}

// DecodeSignature parses a hex-encoded signature string back into a
// chainkit.Signature.
func DecodeSignature(s string) (chainkit.Signature, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return chainkit.Signature(b), nil
}
