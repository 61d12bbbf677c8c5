// MIT License
//
// Copyright (c) 2025 bootnet-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orchestrator.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"expected_nodes": 10,
		"registration_threshold": 7,
		"default_stake": "1000",
		"topology": "ring"
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.ExpectedNodes)
	assert.Equal(t, 7, cfg.RegistrationThreshold)
	assert.Equal(t, "ring", cfg.Topology)
	// Untouched fields keep their defaults.
	assert.Equal(t, uint64(10000), cfg.RoundTimeoutMS)

	stake, err := cfg.Stake()
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(1000), stake)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestValidateNormalizesDerivedFields(t *testing.T) {
	cfg := Defaults()
	cfg.ExpectedNodes = 3
	require.NoError(t, cfg.Validate())

	// Threshold defaults to the full expected set; bootstrap count is
	// capped at the set size.
	assert.Equal(t, 3, cfg.RegistrationThreshold)
	assert.Equal(t, 3, cfg.BootstrapCount)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := map[string]func(*Config){
		"zero expected nodes":     func(c *Config) { c.ExpectedNodes = 0 },
		"negative expected nodes": func(c *Config) { c.ExpectedNodes = -1 },
		"threshold above n":       func(c *Config) { c.RegistrationThreshold = 5 },
		"quorum fraction zero":    func(c *Config) { c.QuorumFraction = 0 },
		"quorum fraction above 1": func(c *Config) { c.QuorumFraction = 1.5 },
		"negative bootstrap":      func(c *Config) { c.BootstrapCount = -2 },
		"garbage stake":           func(c *Config) { c.DefaultStake = "not-a-number" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Defaults()
			cfg.ExpectedNodes = 3
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
