// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fetch

import (
	"math/big"
	"strings"
)

func bigFromUint64(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// isRateLimited does a best-effort classification of a JSON-RPC error
// as a rate-limit response; providers vary in how they signal this
// (HTTP 429, a JSON-RPC error code, or a plain message), so this only
// needs to catch the common phrasings the failover pool should back
// off on rather than demote the endpoint for.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests")
}
