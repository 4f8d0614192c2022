// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightstake/sequencer/config"
)

const sample = `
contract_address: "0x0000000000000000000000000000000000000001"
fetch_window_size: 2000
vid_target_total_stake: 3
active_set_cap: 100
blocks_per_epoch: 720
commitment_capacity: 256
endpoints:
  - url: "https://rpc-a.example.com"
  - url: "https://rpc-b.example.com"
    timeout: "5s"
relay_url: "https://relay.example.com"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeTemp(t, sample)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), cfg.FetchWindowSize)
	assert.Equal(t, uint64(3), cfg.TargetTotalStake)
	assert.Equal(t, 100, cfg.ActiveSetCap)
	assert.Len(t, cfg.Endpoints, 2)
}

func TestLoad_MissingContractAddress(t *testing.T) {
	path := writeTemp(t, "fetch_window_size: 10\nendpoints:\n  - url: \"https://x\"\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTemp(t, `
contract_address: "0x0000000000000000000000000000000000000001"
fetch_window_size: 10
endpoints:
  - url: "https://x"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.ActiveSetCap)
	assert.Equal(t, uint64(3), cfg.TargetTotalStake)
}
