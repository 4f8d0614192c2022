// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package sequencerclient is the small HTTP client the relay polls
// for epoch configuration (GET /config/hotshot) and per-epoch stake
// tables (GET /node/stake-table/{epoch}).
package sequencerclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/lightstake/sequencer/relaywire"
)

// PeerStake is one entry of a stake table as served by the sequencer:
// a Schnorr verification key and its weight.
type PeerStake struct {
	Key    relaywire.SchnorrPubKeyHex `json:"key"`
	Weight string                     `json:"weight"` // decimal U256
}

// HotshotConfig is the response shape of GET /config/hotshot.
type HotshotConfig struct {
	BlocksPerEpoch      uint64      `json:"blocks_per_epoch"`
	EpochStartBlock     uint64      `json:"epoch_start_block"`
	KnownNodesWithStake []PeerStake `json:"known_nodes_with_stake"`
}

// Client polls a sequencer's read-only config/stake-table endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client against baseURL (e.g. "https://sequencer.example").
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// GetConfig fetches the genesis epoch configuration.
func (c *Client) GetConfig(ctx context.Context) (HotshotConfig, error) {
	var out HotshotConfig
	if err := c.getJSON(ctx, "/config/hotshot", &out); err != nil {
		return HotshotConfig{}, errors.WithMessage(err, "sequencerclient: get config")
	}
	return out, nil
}

// GetStakeTable fetches the stake table for a specific epoch.
func (c *Client) GetStakeTable(ctx context.Context, epoch uint64) ([]PeerStake, error) {
	var out []PeerStake
	path := fmt.Sprintf("/node/stake-table/%d", epoch)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, errors.WithMessage(err, "sequencerclient: get stake table")
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
