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

// go/src/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/holiman/uint256"
)

// Config holds everything the orchestrator needs for one bootstrap run.
// It is loaded once at process start and never mutated afterward; the
// orchestrator keeps no state across restarts.
type Config struct {
	// ExpectedNodes is N, the full size of the consensus participant set.
	ExpectedNodes int `json:"expected_nodes"`

	// RegistrationThreshold is the number of distinct registrations that
	// finalizes the network config. Zero means "require the full set" and
	// is normalized to ExpectedNodes by Load. A deployment that wants a
	// partial start must set this explicitly; it is never inferred.
	RegistrationThreshold int `json:"registration_threshold"`

	// RequireSignatures makes registration demand an Ed25519 signature
	// over the submitted network address, proving possession of the
	// submitted public key.
	RequireSignatures bool `json:"require_signatures"`

	// AllowSpectators admits non-counted observer identities. Spectators
	// receive no index, do not count toward the threshold, and may fetch
	// the finalized config like any participant.
	AllowSpectators bool `json:"allow_spectators"`

	// BootstrapCount is how many of the first registered addresses are
	// published as bootstrap peer hints in the finalized config.
	BootstrapCount int `json:"bootstrap_count"`

	// DefaultStake is the stake assigned to every participant in the
	// finalized stake table, as a decimal string.
	DefaultStake string `json:"default_stake"`

	// QuorumFraction is the fraction of nodes whose votes form a quorum
	// once the network is running. BFT safety requires at least 2/3.
	QuorumFraction float64 `json:"quorum_fraction"`

	// RoundTimeoutMS and NextViewTimeoutMS are the protocol round timers
	// handed to every participant in the finalized config.
	RoundTimeoutMS    uint64 `json:"round_timeout_ms"`
	NextViewTimeoutMS uint64 `json:"next_view_timeout_ms"`

	// StartDelayMS is the grace period participants wait after observing
	// the Started phase before the first consensus round.
	StartDelayMS uint64 `json:"start_delay_ms"`

	// Topology is a hint for the post-bootstrap overlay ("full", "ring").
	Topology string `json:"topology"`

	// HTTPAddr is the listen address of the orchestrator's HTTP surface.
	HTTPAddr string `json:"http_addr"`
}

// Defaults returns a Config pre-filled with the values a small test network
// would use. Callers overlay a JSON file and flags on top of it.
func Defaults() *Config {
	return &Config{
		ExpectedNodes:     0,
		BootstrapCount:    4,
		DefaultStake:      "1",
		QuorumFraction:    2.0 / 3.0,
		RoundTimeoutMS:    10000,
		NextViewTimeoutMS: 30000,
		StartDelayMS:      1000,
		Topology:          "full",
		HTTPAddr:          "127.0.0.1:8544",
	}
}

// Load reads a JSON config file on top of Defaults. An empty path returns
// plain defaults. Validation is separate so callers can overlay flag
// overrides before normalizing.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Validate normalizes derived fields and rejects configs that cannot
// describe a runnable bootstrap.
func (c *Config) Validate() error {
	if c.ExpectedNodes <= 0 {
		return fmt.Errorf("expected_nodes must be positive, got %d", c.ExpectedNodes)
	}
	if c.RegistrationThreshold == 0 {
		c.RegistrationThreshold = c.ExpectedNodes
	}
	if c.RegistrationThreshold < 0 || c.RegistrationThreshold > c.ExpectedNodes {
		return fmt.Errorf("registration_threshold %d out of range [1, %d]", c.RegistrationThreshold, c.ExpectedNodes)
	}
	if c.QuorumFraction <= 0 || c.QuorumFraction > 1 {
		return fmt.Errorf("quorum_fraction %f out of range (0, 1]", c.QuorumFraction)
	}
	if c.BootstrapCount < 0 {
		return fmt.Errorf("bootstrap_count must not be negative, got %d", c.BootstrapCount)
	}
	if c.BootstrapCount == 0 || c.BootstrapCount > c.ExpectedNodes {
		c.BootstrapCount = c.ExpectedNodes
	}
	if _, err := c.Stake(); err != nil {
		return err
	}
	return nil
}

// Stake parses DefaultStake into a uint256 value.
func (c *Config) Stake() (*uint256.Int, error) {
	stake, err := uint256.FromDecimal(c.DefaultStake)
	if err != nil {
		return nil, fmt.Errorf("invalid default_stake %q: %w", c.DefaultStake, err)
	}
	return stake, nil
}
