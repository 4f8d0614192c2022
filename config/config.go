// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config loads the YAML configuration read by the
// stake-fetch binary: the L1 registry contract
// address, the fetch window size, the active-set target total stake,
// blocks-per-epoch, and the list of RPC endpoints the transport pool
// fails over across.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lightstake/sequencer/chainkit"
)

// Endpoint is one RPC provider the transport pool can dial.
type Endpoint struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout,omitempty"`
}

// Config is the on-disk chain configuration.
type Config struct {
	ContractAddress    string     `yaml:"contract_address"`
	FetchWindowSize    uint64     `yaml:"fetch_window_size"`
	TargetTotalStake   uint64     `yaml:"vid_target_total_stake"`
	ActiveSetCap       int        `yaml:"active_set_cap"`
	BlocksPerEpoch     uint64     `yaml:"blocks_per_epoch"`
	CommitmentCapacity int        `yaml:"commitment_capacity"`
	Endpoints          []Endpoint `yaml:"endpoints"`
	RelayURL           string     `yaml:"relay_url,omitempty"`
	SequencerURL       string     `yaml:"sequencer_url,omitempty"`
	ListenAddr         string     `yaml:"listen_addr,omitempty"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "config: read file")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WithMessage(err, "config: parse yaml")
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.WithMessage(err, "config: validate")
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ContractAddress == "" {
		return errors.New("contract_address is required")
	}
	if _, err := chainkit.ParseAddress20(c.ContractAddress); err != nil {
		return errors.WithMessage(err, "contract_address")
	}
	if c.FetchWindowSize == 0 {
		return errors.New("fetch_window_size must be positive")
	}
	if len(c.Endpoints) == 0 {
		return errors.New("at least one endpoint is required")
	}
	if c.ActiveSetCap == 0 {
		c.ActiveSetCap = 100
	}
	if c.TargetTotalStake == 0 {
		c.TargetTotalStake = 3
	}
	return nil
}

// ParsedContractAddress parses ContractAddress into chainkit.Address20.
func (c *Config) ParsedContractAddress() (chainkit.Address20, error) {
	return chainkit.ParseAddress20(c.ContractAddress)
}
