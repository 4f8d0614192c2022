// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fetch

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/lightstake/sequencer/transport"
)

// DefaultWindowSize is the default block-range slice width used when
// paginating eth_getLogs queries.
const DefaultWindowSize = 10_000

// queryWindow fetches every registry log in [from, to] (inclusive)
// through the failover pool, retrying the whole window indefinitely
// with a bounded delay on transport failure.
func queryWindow(ctx context.Context, pool *transport.Pool, contract common.Address, from, to uint64) ([]types.Log, error) {
	var logs []types.Log
	err := pool.Do(ctx, func(ctx context.Context, url string) error {
		cl, err := ethclient.DialContext(ctx, url)
		if err != nil {
			return &transport.Error{Kind: transport.TransportFailure, Err: err}
		}
		defer cl.Close()

		q := ethereum.FilterQuery{
			FromBlock: bigFromUint64(from),
			ToBlock:   bigFromUint64(to),
			Addresses: []common.Address{contract},
			Topics:    [][]common.Hash{Topics()},
		}
		result, err := cl.FilterLogs(ctx, q)
		if err != nil {
			if isRateLimited(err) {
				return transport.ErrRateLimited
			}
			return &transport.Error{Kind: transport.TransportFailure, Err: err}
		}
		logs = result
		return nil
	})
	return logs, err
}
