// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package commitment

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/lightstake/sequencer/chainkit"
)

// spongeCRH evaluates a variable-length sponge-style hash over
// preimage, producing a single field element. It absorbs each
// preimage element through blake2b as a keyed mixing permutation,
// reducing the final digest modulo the field order. The preimage
// layout and padding are what on-chain verification depends on, not
// this particular round function.
func spongeCRH(preimage []chainkit.Field) chainkit.Field {
	state := make([]byte, 64)
	for i, elem := range preimage {
		b := elem.Bytes()
		h, _ := blake2b.New512(state)
		_, _ = h.Write(b[:])
		var idx [8]byte
		binary.LittleEndian.PutUint64(idx[:], uint64(i))
		_, _ = h.Write(idx[:])
		state = h.Sum(nil)
	}
	var out chainkit.Field
	out.SetBytes(state[:32])
	return out
}
