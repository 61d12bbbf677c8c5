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

// go/src/orchestrator/assembler_test.go
package orchestrator

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootnet-core/go/src/config"
	logger "github.com/bootnet-core/go/src/log"
)

func TestAssembledConfigOrdersPeersByIndex(t *testing.T) {
	const n = 5
	cfg := config.Defaults()
	cfg.ExpectedNodes = n
	cfg.BootstrapCount = 2
	cfg.DefaultStake = "42"
	require.NoError(t, cfg.Validate())
	c := newTestCoordinator(t, cfg)

	for i := 0; i < n; i++ {
		_, _, err := c.Register(testIdentity(i), nil, false)
		require.NoError(t, err)
	}

	got, ok := c.Config()
	require.True(t, ok)
	require.Len(t, got.StakeTable, n)

	for i, entry := range got.StakeTable {
		assert.Equal(t, uint64(i), entry.Index)
		assert.Equal(t, testIdentity(i).PublicKey, entry.PublicKey)
		assert.Equal(t, testIdentity(i).NetworkAddress, entry.NetworkAddress)
		assert.Equal(t, uint256.NewInt(42), entry.Stake)
	}

	// The first bootstrap_count registrants double as bootstrap peers.
	assert.Equal(t, []string{
		testIdentity(0).NetworkAddress,
		testIdentity(1).NetworkAddress,
	}, got.BootstrapPeers)
}

func TestAssembledProtocolParams(t *testing.T) {
	const n = 7
	cfg := config.Defaults()
	cfg.ExpectedNodes = n
	cfg.RoundTimeoutMS = 1234
	cfg.NextViewTimeoutMS = 5678
	cfg.StartDelayMS = 99
	cfg.Topology = "ring"
	require.NoError(t, cfg.Validate())
	c := newTestCoordinator(t, cfg)

	for i := 0; i < n; i++ {
		_, _, err := c.Register(testIdentity(i), nil, false)
		require.NoError(t, err)
	}

	got, ok := c.Config()
	require.True(t, ok)
	assert.Equal(t, MinQuorumSize(n, cfg.QuorumFraction), got.Params.QuorumThreshold)
	assert.Equal(t, MaxFaulty(n, cfg.QuorumFraction), got.Params.MaxFaulty)
	assert.Equal(t, uint64(1234), got.Params.RoundTimeoutMS)
	assert.Equal(t, uint64(5678), got.Params.NextViewTimeoutMS)
	assert.Equal(t, uint64(99), got.Params.StartDelayMS)
	assert.Equal(t, "ring", got.Params.Topology)
}

func TestAssemblyWarnsOnUnsafeQuorumFraction(t *testing.T) {
	const n = 4

	register := func(t *testing.T, fraction float64) {
		t.Helper()
		cfg := config.Defaults()
		cfg.ExpectedNodes = n
		cfg.QuorumFraction = fraction
		require.NoError(t, cfg.Validate())
		c := newTestCoordinator(t, cfg)
		for i := 0; i < n; i++ {
			_, _, err := c.Register(testIdentity(i), nil, false)
			require.NoError(t, err)
		}
		_, ok := c.Config()
		require.True(t, ok)
	}

	t.Run("simple majority is flagged", func(t *testing.T) {
		logger.Reset()
		register(t, 0.5)
		assert.Contains(t, logger.GetLogs(), "cannot guarantee BFT safety")
	})

	t.Run("two thirds passes silently", func(t *testing.T) {
		logger.Reset()
		register(t, 2.0/3.0)
		logs := logger.GetLogs()
		assert.NotContains(t, logs, "cannot guarantee BFT safety")
		assert.NotContains(t, logs, "quorum intersection")
	})
}

func TestConfigDigestDetectsTampering(t *testing.T) {
	const n = 3
	c := newTestCoordinator(t, testConfig(t, n))
	for i := 0; i < n; i++ {
		_, _, err := c.Register(testIdentity(i), nil, false)
		require.NoError(t, err)
	}

	got, ok := c.Config()
	require.True(t, ok)
	require.Equal(t, got.Digest, got.ComputeDigest())

	tampered := got.Clone()
	tampered.StakeTable[1].NetworkAddress = "10.0.0.1:1"
	assert.NotEqual(t, tampered.Digest, tampered.ComputeDigest())

	retimed := got.Clone()
	retimed.Params.RoundTimeoutMS++
	assert.NotEqual(t, retimed.Digest, retimed.ComputeDigest())
}
