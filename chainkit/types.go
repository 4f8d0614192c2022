// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chainkit holds the primitive value types shared by every
// component of the stake-table subsystem: addresses, the BN254 scalar
// field, stake amounts, and the opaque BLS/Schnorr key encodings.
//
// Concrete BLS/Schnorr/SNARK math is out of scope; this package only
// carries the byte/field encodings those schemes would produce,
// behind abstract contracts.
package chainkit

import (
	"encoding/hex"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// AddressLength is the length in bytes of an on-chain account address.
const AddressLength = common.AddressLength

// Address20 identifies an account or delegator on the L1 registry.
type Address20 common.Address

// String renders the address as a 0x-prefixed hex string.
func (a Address20) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// ParseAddress20 parses a hex-encoded address, with or without the 0x prefix.
func ParseAddress20(s string) (Address20, error) {
	var a Address20
	switch len(s) {
	case AddressLength * 2:
	case AddressLength*2 + 2:
		if !strings.EqualFold(s[:2], "0x") {
			return a, errors.New("invalid address prefix")
		}
		s = s[2:]
	default:
		return a, errors.New("invalid address length")
	}
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return a, errors.WithMessage(err, "parse address")
	}
	return a, nil
}

// U256 is a 256-bit unsigned integer used for stake amounts and weights.
type U256 = uint256.Int

// NewU256 constructs a U256 from a uint64.
func NewU256(v uint64) *U256 {
	return uint256.NewInt(v)
}

// ZeroU256 returns a fresh zero-valued U256.
func ZeroU256() *U256 {
	return new(uint256.Int)
}

// AddU256 returns a new U256 holding a+b; it does not mutate its inputs.
func AddU256(a, b *U256) *U256 {
	return new(uint256.Int).Add(a, b)
}

// SubU256 returns a new U256 holding a-b; it does not mutate its inputs.
func SubU256(a, b *U256) *U256 {
	return new(uint256.Int).Sub(a, b)
}

// Field is a BN254 scalar-field element: the preimage/commitment unit
// used throughout the light-client wire layout. BN254 is the curve
// family the on-chain Schnorr (EdOnBN254) keys and the rescue-sponge
// commitment are defined over.
type Field = fr.Element

// U256ToField converts a U256 to a Field by interpreting the integer's
// little-endian bytes modulo the field order.
func U256ToField(v *U256) Field {
	be := v.Bytes32()
	var f Field
	f.SetBytes(be[:]) // SetBytes reads big-endian and reduces mod the field order, giving the same value as the LE-bytes reading.
	return f
}

// FieldToU256 converts a Field back to a U256 via LE-bytes, preconditioned
// on the field modulus fitting in 256 bits (true for BN254's Fr).
func FieldToU256(f *Field) *U256 {
	b := f.Bytes() // big-endian canonical form
	var out U256
	out.SetBytes(b[:])
	return &out
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// BlsPubKeyLen is the byte length of the opaque uncompressed BLS
// (G2) point encoding this repo carries. The actual curve math behind
// the encoding is out of scope; only fixed-width field chunking of
// it matters downstream.
const BlsPubKeyLen = 93

// WBls is the number of field elements a BLS key is split across.
const WBls = 3

// BlsPubKey is an opaque BLS (G2) public-key encoding.
type BlsPubKey [BlsPubKeyLen]byte

// ToFields splits the key into WBls field elements via fixed 31-byte
// little-endian chunks of the uncompressed point bytes, each reduced
// modulo the field order.
func (k BlsPubKey) ToFields() [WBls]Field {
	var out [WBls]Field
	const chunk = 31
	for i := 0; i < WBls; i++ {
		start := i * chunk
		end := start + chunk
		if end > len(k) {
			end = len(k)
		}
		le := append([]byte(nil), k[start:end]...)
		out[i].SetBytes(reversed(le))
	}
	return out
}

// WSch is the number of field elements a Schnorr key is split across.
const WSch = 2

// SchnorrPubKey is an Ed-on-BN254 point; its coordinates are themselves
// BN254 scalar-field elements, so no byte chunking is needed.
type SchnorrPubKey struct {
	X, Y Field
}

// ToFields returns the key's (x, y) coordinates.
func (k SchnorrPubKey) ToFields() [WSch]Field {
	return [WSch]Field{k.X, k.Y}
}

// Equal reports whether two Schnorr keys carry the same coordinates.
func (k SchnorrPubKey) Equal(o SchnorrPubKey) bool {
	return k.X.Equal(&o.X) && k.Y.Equal(&o.Y)
}

// Signature is an opaque Schnorr signature. The signing/verification
// algorithm itself is out of scope; this type only carries bytes
// produced by an injected Signer (see package signer).
type Signature []byte

// DefaultField returns the additive identity, used to pad commitment
// preimages.
func DefaultField() Field {
	var f Field
	return f
}

// DefaultSchnorrPubKey returns the default Schnorr key's field
// encoding, used to pad the Schnorr key column.
func DefaultSchnorrPubKey() SchnorrPubKey {
	return SchnorrPubKey{}
}
