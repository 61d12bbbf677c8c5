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

// go/src/orchestrator/assembler.go
package orchestrator

import (
	"github.com/holiman/uint256"

	logger "github.com/bootnet-core/go/src/log"
)

// assembleLocked freezes the current participant set into the network-wide
// config. Called exactly once, under mu, by the registration that completes
// the threshold; the records slice is already index-ordered.
func (c *Coordinator) assembleLocked() *GlobalConfig {
	n := len(c.records)

	// Walk the identity map in insertion order, which is exactly index
	// order: both were fixed by critical-section acquisition order.
	table := make([]StakeEntry, 0, n)
	for el := c.byIdentity.Front(); el != nil; el = el.Next() {
		rec := el.Value
		id := rec.Identity.clone()
		table = append(table, StakeEntry{
			Index:          rec.Index,
			PublicKey:      id.PublicKey,
			NetworkAddress: id.NetworkAddress,
			Stake:          new(uint256.Int).Set(c.defaultStake),
		})
	}

	// The first few registrants double as overlay bootstrap peers.
	bootCount := c.cfg.BootstrapCount
	if bootCount > n {
		bootCount = n
	}
	peers := make([]string, bootCount)
	for i := 0; i < bootCount; i++ {
		peers[i] = c.records[i].Identity.NetworkAddress
	}

	cfg := &GlobalConfig{
		StakeTable:     table,
		BootstrapPeers: peers,
		Params: ProtocolParams{
			QuorumThreshold:   MinQuorumSize(n, c.cfg.QuorumFraction),
			MaxFaulty:         MaxFaulty(n, c.cfg.QuorumFraction),
			RoundTimeoutMS:    c.cfg.RoundTimeoutMS,
			NextViewTimeoutMS: c.cfg.NextViewTimeoutMS,
			StartDelayMS:      c.cfg.StartDelayMS,
			Topology:          c.cfg.Topology,
		},
	}
	cfg.Digest = cfg.ComputeDigest()

	// The orchestrator does not refuse to hand out a weak configuration,
	// but the operator gets told before the first round runs on it.
	if !VerifySafety(n, c.cfg.QuorumFraction) {
		logger.Warn("finalized parameters cannot guarantee BFT safety: nodes=%d quorum_fraction=%.3f max_faulty=%d",
			n, c.cfg.QuorumFraction, cfg.Params.MaxFaulty)
	} else if !VerifyQuorumIntersection(n, cfg.Params.MaxFaulty, c.cfg.QuorumFraction) {
		logger.Warn("finalized parameters do not satisfy quorum intersection: nodes=%d quorum_fraction=%.3f max_faulty=%d",
			n, c.cfg.QuorumFraction, cfg.Params.MaxFaulty)
	}
	return cfg
}

// Config returns a deep copy of the frozen network config, or false while
// registrations are still being collected. The copy is built after the
// frozen value was fully assembled, so no caller can observe a partial
// config.
func (c *Coordinator) Config() (*GlobalConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.global == nil {
		return nil, false
	}
	return c.global.Clone(), true
}
