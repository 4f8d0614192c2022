// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package committee

import (
	"context"

	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/co"
)

// Leaf is the minimal catch-up payload: an epoch root (possibly
// carrying an embedded DRB result) at a given height. Concrete leaf
// contents (block header, DRB bytes) are opaque to this package; only
// the fields needed to verify and extract them are named.
type Leaf struct {
	Height uint64
	DRB    []byte
}

// QC is an abstract quorum certificate over one leaf: the set of
// signers and their aggregate weight. The signature scheme itself is
// out of scope; only the weight arithmetic needed to check
// it against a success threshold is modeled.
type QC struct {
	Height  uint64
	Signers []chainkit.BlsPubKey
	Weight  *chainkit.U256
}

// LeafChain is an ordered sequence of (leaf, certifying QC) pairs, as
// fetched from a peer during catch-up.
type LeafChain struct {
	Leaves []Leaf
	QCs    []QC
}

// PeerCatchupClient fetches a leaf chain ending at height from one
// peer. Implementations own their own transport/timeout.
type PeerCatchupClient interface {
	FetchLeafChain(ctx context.Context, height uint64) (LeafChain, error)
}

// raceLeafChain fans a catch-up request out to every peer in parallel
// and returns the first successful response. Each losing goroutine's
// context is canceled once a winner is chosen, so no peer continues
// consuming quota after the race ends.
func raceLeafChain(ctx context.Context, peers []PeerCatchupClient, height uint64) (LeafChain, error) {
	if len(peers) == 0 {
		return LeafChain{}, ErrEpochRootMissing
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel() // drop-guard: aborts every still-running loser on return

	type result struct {
		chain LeafChain
		err   error
	}
	results := make(chan result, len(peers))

	var g co.Goes
	for _, p := range peers {
		p := p
		g.Go(func() {
			chain, err := p.FetchLeafChain(raceCtx, height)
			select {
			case results <- result{chain, err}:
			case <-raceCtx.Done():
			}
		})
	}
	go func() {
		g.Wait()
		close(results)
	}()

	var lastErr error
	for r := range results {
		if r.err == nil {
			return r.chain, nil
		}
		lastErr = r.err
	}
	if lastErr == nil {
		lastErr = ErrEpochRootMissing
	}
	return LeafChain{}, lastErr
}

// verifyChain checks every (leaf, QC) pair's aggregate weight against
// the epoch's success threshold.
func verifyChain(chain LeafChain, successThreshold *chainkit.U256) error {
	if len(chain.Leaves) == 0 || len(chain.Leaves) != len(chain.QCs) {
		return ErrLeafChainRejected
	}
	for i, qc := range chain.QCs {
		if qc.Height != chain.Leaves[i].Height {
			return ErrLeafChainRejected
		}
		if qc.Weight == nil || qc.Weight.Cmp(successThreshold) < 0 {
			return ErrLeafChainRejected
		}
	}
	return nil
}

// GetEpochRoot races peers for a leaf chain ending at height, verifies
// it against epoch's stake table and success threshold, and returns
// the leaf. Verified leaves are cached by height so repeated lookups
// don't re-race the peers.
func (r *Registry) GetEpochRoot(ctx context.Context, height, epoch uint64, peers []PeerCatchupClient) (Leaf, error) {
	total, ok := r.EpochTotalStake(epoch)
	if !ok {
		return Leaf{}, ErrEpochRootMissing
	}
	v, err := r.leafCache.GetOrLoad(height, func(interface{}) (interface{}, error) {
		chain, err := raceLeafChain(ctx, peers, height)
		if err != nil {
			return nil, err
		}
		if err := verifyChain(chain, SuccessThreshold(total)); err != nil {
			return nil, err
		}
		return chain.Leaves[len(chain.Leaves)-1], nil
	})
	if err != nil {
		return Leaf{}, err
	}
	return v.(Leaf), nil
}

// GetEpochDRB is identical to GetEpochRoot but returns the leaf's
// embedded DRB result.
func (r *Registry) GetEpochDRB(ctx context.Context, height, epoch uint64, peers []PeerCatchupClient) ([]byte, error) {
	leaf, err := r.GetEpochRoot(ctx, height, epoch, peers)
	if err != nil {
		return nil, err
	}
	return leaf.DRB, nil
}
