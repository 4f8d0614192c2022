// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package relay implements the state-relay server: per-epoch
// known-signer weights and thresholds, nested per-height/per-state
// signature bundles, the promote-on-threshold protocol, and bundle
// GC. The per-node signing half lives in package signer.
package relay

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/lightclient"
	"github.com/lightstake/sequencer/log"
	"github.com/lightstake/sequencer/relay/sequencerclient"
)

var logger = log.WithContext("pkg", "relay")

// SignatureVerifier abstracts Schnorr signature verification; the
// concrete scheme is out of scope.
type SignatureVerifier interface {
	Verify(verKey chainkit.SchnorrPubKey, msg []chainkit.Field, sig chainkit.Signature) bool
}

// SequencerClient is the narrow slice of sequencerclient.Client the
// server polls.
type SequencerClient interface {
	GetConfig(ctx context.Context) (sequencerclient.HotshotConfig, error)
	GetStakeTable(ctx context.Context, epoch uint64) ([]sequencerclient.PeerStake, error)
}

// Bundle is an in-progress or finalized SignatureBundle.
type Bundle struct {
	State             lightclient.State
	NextStake         lightclient.StakeTableState
	Signatures        map[chainkit.SchnorrPubKey]chainkit.Signature
	AccumulatedWeight *chainkit.U256
}

func newBundle(state lightclient.State, nextStake lightclient.StakeTableState) *Bundle {
	return &Bundle{
		State:             state,
		NextStake:         nextStake,
		Signatures:        make(map[chainkit.SchnorrPubKey]chainkit.Signature),
		AccumulatedWeight: chainkit.ZeroU256(),
	}
}

// Server holds the relay server state. All mutable state is behind
// a single read-write lock; writes are serialized.
type Server struct {
	sequencer SequencerClient
	verifier  SignatureVerifier

	retryDelay time.Duration

	initOnce sync.Once
	initErr  error

	mu              sync.RWMutex
	blocksPerEpoch  uint64
	epochStartBlock uint64
	knownNodes      map[uint64]map[chainkit.SchnorrPubKey]*chainkit.U256
	threshold       map[uint64]*chainkit.U256

	bundles map[uint64]map[lightclient.State]*Bundle
	queue   []uint64 // heights with at least one bundle, ascending, for GC

	latestBundle      *Bundle
	latestBlockHeight uint64
	haveLatest        bool

	subsMu sync.Mutex
	subs   map[chan *Bundle]struct{}
}

// New builds a Server polling sequencer for epoch configuration,
// verifying signatures with verifier.
func New(sequencer SequencerClient, verifier SignatureVerifier) *Server {
	return &Server{
		sequencer:  sequencer,
		verifier:   verifier,
		retryDelay: 5 * time.Second,
		knownNodes: make(map[uint64]map[chainkit.SchnorrPubKey]*chainkit.U256),
		threshold:  make(map[uint64]*chainkit.U256),
		bundles:    make(map[uint64]map[lightclient.State]*Bundle),
		subs:       make(map[chan *Bundle]struct{}),
	}
}

// ensureInit lazily bootstraps genesis epoch config from the upstream
// sequencer on first use, guarded so concurrent first requests only
// do the work once. The relay and sequencer depend on each other at
// bootstrap; starting empty and lazy-initializing here breaks the
// cycle.
func (s *Server) ensureInit(ctx context.Context) error {
	s.initOnce.Do(func() {
		cfg, err := s.sequencer.GetConfig(ctx)
		if err != nil {
			s.initErr = errors.WithMessage(err, "relay: fetch genesis config")
			return
		}
		s.mu.Lock()
		s.blocksPerEpoch = cfg.BlocksPerEpoch
		s.epochStartBlock = cfg.EpochStartBlock
		s.mu.Unlock()
		if err := s.installEpochStake(0, cfg.KnownNodesWithStake); err != nil {
			s.initErr = err
		}
	})
	return s.initErr
}

// epochFromHeight maps a block height to its epoch index, with epoch
// 0 (the genesis stake table, installed by ensureInit) covering every
// height up to epochStartBlock + blocksPerEpoch.
func (s *Server) epochFromHeight(height uint64) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.blocksPerEpoch == 0 || height < s.epochStartBlock {
		return 0
	}
	return (height - s.epochStartBlock) / s.blocksPerEpoch
}

func (s *Server) epochKnown(epoch uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.threshold[epoch]
	return ok
}

// syncEpochStakeTable fetches and installs an unknown epoch's stake
// table from the sequencer, retrying indefinitely with a fixed 5s
// backoff and no hard timeout.
func (s *Server) syncEpochStakeTable(ctx context.Context, epoch uint64) error {
	for {
		peers, err := s.sequencer.GetStakeTable(ctx, epoch)
		if err == nil {
			return s.installEpochStake(epoch, peers)
		}
		logger.Warn("failed to sync stake table from sequencer, retrying", "epoch", epoch, "err", err)
		select {
		case <-ctx.Done():
			return errors.WithMessage(ctx.Err(), "relay: sync stake table canceled")
		case <-time.After(s.retryDelay):
		}
	}
}

func (s *Server) installEpochStake(epoch uint64, peers []sequencerclient.PeerStake) error {
	weights := make(map[chainkit.SchnorrPubKey]*chainkit.U256, len(peers))
	total := chainkit.ZeroU256()
	for _, p := range peers {
		key, err := p.Key.Decode()
		if err != nil {
			return errors.WithMessage(err, "relay: decode signer key")
		}
		w, err := decimalU256(p.Weight)
		if err != nil {
			return errors.WithMessage(err, "relay: decode signer weight")
		}
		weights[key] = w
		total = chainkit.AddU256(total, w)
	}
	threshold := successThreshold(total)

	s.mu.Lock()
	s.knownNodes[epoch] = weights
	s.threshold[epoch] = threshold
	s.mu.Unlock()
	return nil
}

func decimalU256(s string) (*chainkit.U256, error) {
	if s == "" {
		return chainkit.ZeroU256(), nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// successThreshold mirrors committee.SuccessThreshold's formula
// locally to avoid importing package committee purely for one
// function (the relay never needs the rest of the committee registry).
func successThreshold(total *chainkit.U256) *chainkit.U256 {
	half := new(chainkit.U256).Not(chainkit.ZeroU256())
	half = new(chainkit.U256).Rsh(half, 1)
	three := chainkit.NewU256(3)
	if total.Cmp(half) >= 0 {
		div := new(chainkit.U256).Div(total, three)
		two := chainkit.NewU256(2)
		return chainkit.AddU256(new(chainkit.U256).Mul(div, two), two)
	}
	num := new(chainkit.U256).Mul(total, chainkit.NewU256(2))
	div := new(chainkit.U256).Div(num, three)
	return chainkit.AddU256(div, chainkit.NewU256(1))
}

// PostSignature records one signer's signature over (state,
// nextStake), promoting the bundle once its accumulated weight
// crosses the epoch threshold.
func (s *Server) PostSignature(ctx context.Context, key chainkit.SchnorrPubKey, state lightclient.State, nextStake lightclient.StakeTableState, sig chainkit.Signature) error {
	s.mu.RLock()
	haveLatest, latestHeight := s.haveLatest, s.latestBlockHeight
	s.mu.RUnlock()
	if haveLatest && state.BlockHeight <= latestHeight {
		return nil // already superseded; silently accept
	}

	if err := s.ensureInit(ctx); err != nil {
		return errors.WithMessage(ErrInternalStakeTableSyncFailure, err.Error())
	}

	epoch := s.epochFromHeight(state.BlockHeight)
	if !s.epochKnown(epoch) {
		if err := s.syncEpochStakeTable(ctx, epoch); err != nil {
			return errors.WithMessage(ErrInternalStakeTableSyncFailure, err.Error())
		}
	}

	s.mu.RLock()
	weight, known := s.knownNodes[epoch][key]
	threshold := s.threshold[epoch]
	s.mu.RUnlock()
	if !known {
		return ErrUnknownSigner
	}

	msg := lightclient.SignedMessageFields(state, nextStake)
	if !s.verifier.Verify(key, msg[:], sig) {
		return ErrInvalidSignature
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byState, ok := s.bundles[state.BlockHeight]
	if !ok {
		byState = make(map[lightclient.State]*Bundle)
		s.bundles[state.BlockHeight] = byState
		s.queue = append(s.queue, state.BlockHeight)
		sort.Slice(s.queue, func(i, j int) bool { return s.queue[i] < s.queue[j] })
	}
	bundle, ok := byState[state]
	if !ok {
		bundle = newBundle(state, nextStake)
		byState[state] = bundle
	}
	if _, dup := bundle.Signatures[key]; dup {
		return ErrDuplicateSignature
	}

	bundle.Signatures[key] = sig
	bundle.AccumulatedWeight = chainkit.AddU256(bundle.AccumulatedWeight, weight)

	promoted := bundle.AccumulatedWeight.Cmp(threshold) >= 0
	if promoted {
		s.latestBundle = bundle
		s.latestBlockHeight = state.BlockHeight
		s.haveLatest = true
		s.gcLocked(state.BlockHeight, epoch)
	}
	if promoted {
		s.broadcast(bundle)
	}
	return nil
}

// gcLocked prunes bundles at or below height and epoch entries older
// than epoch. Caller must hold s.mu for writing.
func (s *Server) gcLocked(height, epoch uint64) {
	kept := s.queue[:0]
	for _, h := range s.queue {
		if h <= height {
			delete(s.bundles, h)
			continue
		}
		kept = append(kept, h)
	}
	s.queue = kept

	for e := range s.threshold {
		if e < epoch {
			delete(s.threshold, e)
			delete(s.knownNodes, e)
		}
	}
}

// GetLatestBundle returns the latest promoted bundle, if any.
func (s *Server) GetLatestBundle() (*Bundle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.haveLatest {
		return nil, false
	}
	return s.latestBundle, true
}
