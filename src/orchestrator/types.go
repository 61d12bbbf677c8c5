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

// go/src/orchestrator/types.go
package orchestrator

import (
	"fmt"

	"github.com/bootnet-core/go/src/security"
	"github.com/holiman/uint256"
)

// NetworkPhase is the orchestrator's global progress state. Transitions are
// monotonic: the phase only ever moves forward.
type NetworkPhase uint32

const (
	// CollectingRegistrations accepts new participant identities.
	CollectingRegistrations NetworkPhase = iota
	// ConfigFinalized means the participant set is frozen and the network
	// config is available; new identities are no longer admitted.
	ConfigFinalized
	// AwaitingReady means at least one participant has confirmed readiness
	// and the orchestrator is waiting for the rest.
	AwaitingReady
	// Started is terminal: every registered participant confirmed ready.
	Started
)

// phaseNames associates NetworkPhase constants with wire labels.
var phaseNames = [...]string{
	"collecting_registrations",
	"config_finalized",
	"awaiting_ready",
	"started",
}

// String returns the wire label of the phase.
func (p NetworkPhase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("unknown(%d)", uint32(p))
}

// MarshalText implements encoding.TextMarshaler so the phase serializes as
// its wire label in JSON payloads.
func (p NetworkPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *NetworkPhase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = NetworkPhase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown network phase %q", text)
}

// NodeStatus represents a registered participant's bootstrap progress.
// Per node the status is monotonic: registered, config delivered, ready.
type NodeStatus string

const (
	StatusRegistered      NodeStatus = "registered"
	StatusConfigDelivered NodeStatus = "config_delivered"
	StatusReady           NodeStatus = "ready"
)

// NoIndex is returned in place of an index for spectator registrations,
// which are recorded but never given a slot in the stake table.
const NoIndex = ^uint64(0)

// Identity is what a node submits at registration: its public key material
// and the address other participants will dial.
type Identity struct {
	PublicKey      []byte `json:"public_key"`
	NetworkAddress string `json:"network_address"`
}

// Key returns the exact deduplication key for the identity. Two identities
// are the same participant iff both fields match byte for byte.
func (id Identity) Key() string {
	return string(id.PublicKey) + "|" + id.NetworkAddress
}

// Fingerprint returns a short stable handle for log lines.
func (id Identity) Fingerprint() string {
	return security.Fingerprint(id.PublicKey, id.NetworkAddress)
}

// clone copies the identity, including the backing array of the key bytes,
// so handed-out values never alias coordinator-owned memory.
func (id Identity) clone() Identity {
	pk := make([]byte, len(id.PublicKey))
	copy(pk, id.PublicKey)
	return Identity{PublicKey: pk, NetworkAddress: id.NetworkAddress}
}

// NodeRecord is one participant's entry in the registration store. Index
// and Identity are immutable once assigned; only Status advances.
type NodeRecord struct {
	Index    uint64     `json:"index"`
	Identity Identity   `json:"identity"`
	Status   NodeStatus `json:"status"`
}

// snapshot returns a detached copy of the record.
func (r *NodeRecord) snapshot() NodeRecord {
	return NodeRecord{Index: r.Index, Identity: r.Identity.clone(), Status: r.Status}
}

// StakeEntry is one row of the finalized stake table, ordered by index.
type StakeEntry struct {
	Index          uint64       `json:"index"`
	PublicKey      []byte       `json:"public_key"`
	NetworkAddress string       `json:"network_address"`
	Stake          *uint256.Int `json:"stake"`
}

// ProtocolParams are the static consensus parameters every participant
// receives in the finalized config.
type ProtocolParams struct {
	QuorumThreshold   int    `json:"quorum_threshold"`
	MaxFaulty         int    `json:"max_faulty"`
	RoundTimeoutMS    uint64 `json:"round_timeout_ms"`
	NextViewTimeoutMS uint64 `json:"next_view_timeout_ms"`
	StartDelayMS      uint64 `json:"start_delay_ms"`
	Topology          string `json:"topology"`
}

// GlobalConfig is the frozen network-wide configuration. It is assembled
// exactly once, when the registration threshold is reached, and handed out
// by value afterward. BootstrapPeers lists the first few registered
// addresses for overlay bootstrap; Digest lets every participant check it
// holds an identical copy.
type GlobalConfig struct {
	StakeTable     []StakeEntry   `json:"stake_table"`
	BootstrapPeers []string       `json:"bootstrap_peers"`
	Params         ProtocolParams `json:"params"`
	Digest         string         `json:"digest"`
}

// Clone returns a deep copy of the config. Callers outside the coordinator
// only ever see clones; the frozen original never leaves the process state.
func (c *GlobalConfig) Clone() *GlobalConfig {
	out := &GlobalConfig{
		StakeTable:     make([]StakeEntry, len(c.StakeTable)),
		BootstrapPeers: make([]string, len(c.BootstrapPeers)),
		Params:         c.Params,
		Digest:         c.Digest,
	}
	for i, e := range c.StakeTable {
		pk := make([]byte, len(e.PublicKey))
		copy(pk, e.PublicKey)
		out.StakeTable[i] = StakeEntry{
			Index:          e.Index,
			PublicKey:      pk,
			NetworkAddress: e.NetworkAddress,
			Stake:          new(uint256.Int).Set(e.Stake),
		}
	}
	copy(out.BootstrapPeers, c.BootstrapPeers)
	return out
}

// ComputeDigest recomputes the digest over the config's content, excluding
// the digest field itself. Participants compare this against the Digest the
// orchestrator shipped.
func (c *GlobalConfig) ComputeDigest() string {
	d := security.NewDigest()
	d.WriteUint64(uint64(len(c.StakeTable)))
	for _, e := range c.StakeTable {
		d.WriteUint64(e.Index)
		d.WriteBytes(e.PublicKey)
		d.WriteString(e.NetworkAddress)
		stake := e.Stake.Bytes32()
		d.WriteBytes(stake[:])
	}
	for _, addr := range c.BootstrapPeers {
		d.WriteString(addr)
	}
	d.WriteUint64(uint64(c.Params.QuorumThreshold))
	d.WriteUint64(uint64(c.Params.MaxFaulty))
	d.WriteUint64(c.Params.RoundTimeoutMS)
	d.WriteUint64(c.Params.NextViewTimeoutMS)
	d.WriteUint64(c.Params.StartDelayMS)
	d.WriteString(c.Params.Topology)
	return d.Sum()
}
