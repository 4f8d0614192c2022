// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package signer implements the per-node state signer: on each
// decided block it derives the light-client state, signs
// (state, next_stake), caches the bundle body locally, and posts it
// to the relay.
package signer

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lightstake/sequencer/cache"
	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/commitment"
	"github.com/lightstake/sequencer/lightclient"
	"github.com/lightstake/sequencer/log"
	"github.com/lightstake/sequencer/relaywire"
	"github.com/lightstake/sequencer/transport"
)

var logger = log.WithContext("pkg", "signer")

// BundleCacheSize is the bounded in-memory LRU size for locally
// cached bundle bodies.
const BundleCacheSize = 100

// postAttempts bounds how many times one bundle POST is attempted before
// giving up; the next decide event carries a fresh state anyway.
const postAttempts = 3

// KeySigner abstracts the node's Schnorr signing key; the signature
// scheme itself is out of scope.
type KeySigner interface {
	VerKey() chainkit.SchnorrPubKey
	Sign(msg []chainkit.Field) (chainkit.Signature, error)
}

// BlockHeader is the minimal decided-block input the signer needs:
// enough to derive a LightClientState.
type BlockHeader struct {
	ViewNumber    uint64
	BlockHeight   uint64
	BlockCommRoot chainkit.Field
}

// DecideEvent carries the leaf chain for one decided block; the
// signer derives state from the chain's first leaf.
type DecideEvent struct {
	Leaves []BlockHeader
}

// EpochMembersFunc resolves the commitment entries for an epoch's
// membership, used to recompute next_stake across an epoch boundary.
type EpochMembersFunc func(epoch uint64) ([]commitment.Entry, error)

// Config configures a Node.
type Config struct {
	BlocksPerEpoch uint64
	Capacity       int
	RelayURL       string // base URL; POSTs to RelayURL+"/api/state"
}

// BundleBody is the locally cached record of one signed bundle
// contribution, keyed by block height in the node's LRU.
type BundleBody struct {
	VerKey    chainkit.SchnorrPubKey
	State     lightclient.State
	NextStake lightclient.StakeTableState
	Signature chainkit.Signature
}

// Node is a single node's State Signer.
type Node struct {
	cfg          Config
	signer       KeySigner
	epochMembers EpochMembersFunc
	httpClient   *http.Client

	mu               sync.Mutex
	votingStakeTable lightclient.StakeTableState
	cache            *cache.LRU
}

// New builds a Node seeded with the genesis stake-table commitment as
// its initial voting_stake_table.
func New(cfg Config, signer KeySigner, epochMembers EpochMembersFunc, genesisStake lightclient.StakeTableState) *Node {
	return &Node{
		cfg:              cfg,
		signer:           signer,
		epochMembers:     epochMembers,
		httpClient:       http.DefaultClient,
		votingStakeTable: genesisStake,
		cache:            cache.NewLRU(BundleCacheSize),
	}
}

// OnDecide handles one decided block: derives state from
// the leaf chain's first leaf, recomputes next_stake if this block
// closes an epoch, signs, caches, and posts to the relay.
func (n *Node) OnDecide(ctx context.Context, ev DecideEvent) error {
	if len(ev.Leaves) == 0 {
		return errors.New("signer: empty leaf chain")
	}
	first := ev.Leaves[0]
	state := lightclient.State{
		ViewNumber:    first.ViewNumber,
		BlockHeight:   first.BlockHeight,
		BlockCommRoot: first.BlockCommRoot,
	}

	n.mu.Lock()
	nextStake := n.votingStakeTable
	n.mu.Unlock()

	if n.cfg.BlocksPerEpoch > 0 && (first.BlockHeight+1)%n.cfg.BlocksPerEpoch == 0 {
		epoch := first.BlockHeight/n.cfg.BlocksPerEpoch + 1
		members, err := n.epochMembers(epoch)
		if err != nil {
			return errors.WithMessage(err, "signer: resolve next epoch members")
		}
		computed, err := commitment.Commit(members, n.cfg.Capacity)
		if err != nil {
			return errors.WithMessage(err, "signer: commit next epoch stake table")
		}
		nextStake = computed
	}

	msg := lightclient.SignedMessageFields(state, nextStake)
	sig, err := n.signer.Sign(msg[:])
	if err != nil {
		return errors.WithMessage(err, "signer: sign state")
	}

	body := BundleBody{
		VerKey:    n.signer.VerKey(),
		State:     state,
		NextStake: nextStake,
		Signature: sig,
	}
	n.cache.Add(first.BlockHeight, body)

	if err := n.post(ctx, body); err != nil {
		logger.Error("failed to post signature to relay", "height", first.BlockHeight, "err", err)
		return err
	}

	n.mu.Lock()
	n.votingStakeTable = nextStake
	n.mu.Unlock()
	return nil
}

// CachedBundle returns the locally cached bundle body for height, if
// still resident in the bounded LRU.
func (n *Node) CachedBundle(height uint64) (BundleBody, bool) {
	v, ok := n.cache.Get(height)
	if !ok {
		return BundleBody{}, false
	}
	return v.(BundleBody), true
}

func (n *Node) post(ctx context.Context, body BundleBody) error {
	reqBody := relaywire.StateSignatureRequestBody{
		Key:       relaywire.EncodeSchnorrPubKey(body.VerKey),
		State:     relaywire.EncodeState(body.State),
		NextStake: relaywire.EncodeStakeTableState(body.NextStake),
		Signature: "0x" + hex.EncodeToString(body.Signature),
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return errors.WithMessage(err, "signer: marshal request")
	}

	return transport.Retry(ctx, postAttempts, time.Second, 5*time.Second, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.RelayURL+"/api/state", bytes.NewReader(payload))
		if err != nil {
			return errors.WithMessage(err, "signer: build request")
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.httpClient.Do(req)
		if err != nil {
			return errors.WithMessage(err, "signer: post to relay")
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("signer: relay unavailable: status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 300 {
			// 4xx means the relay rejected this signature outright;
			// retrying the same payload cannot succeed.
			return transport.Permanent(fmt.Errorf("signer: relay rejected signature: status %d", resp.StatusCode))
		}
		return nil
	})
}
