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

// go/src/orchestrator/coordinator.go
package orchestrator

import (
	"sync"
	"sync/atomic"

	"github.com/bootnet-core/go/src/config"
	logger "github.com/bootnet-core/go/src/log"
	"github.com/bootnet-core/go/src/security"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/holiman/uint256"
)

// Coordinator owns the entire bootstrap state for one run: the record store,
// the phase variable and the finalized config. Every mutation goes through
// its single mutex; that total ordering is what makes index assignment and
// the phase transitions exactly-once. Request handlers receive a *Coordinator
// handle; there is no package-level instance.
type Coordinator struct {
	mu sync.Mutex

	cfg          *config.Config
	defaultStake *uint256.Int

	// records is the index-ordered store; records[i].Index == i always.
	// Records are never deleted while the process runs.
	records []*NodeRecord

	// byIdentity maps the exact identity key to its record, in registration
	// order. Registration order here is critical-section acquisition order,
	// which is exactly the index assignment order.
	byIdentity *orderedmap.OrderedMap[string, *NodeRecord]

	// nextIndex is the allocation counter. Monotonic, never reused.
	nextIndex uint64

	// spectators holds the non-counted observer identities, keyed like
	// byIdentity. They never receive an index.
	spectators map[string]Identity

	// phase mirrors the current NetworkPhase for lock-free reads. Writes
	// happen only while mu is held.
	phase atomic.Uint32

	// global is the frozen network config; nil until the threshold is hit.
	global *GlobalConfig

	readyCount int

	metrics *Metrics

	subMu sync.Mutex
	subs  map[int]chan NetworkPhase
	subID int
}

// NewCoordinator creates the state object for one bootstrap run. The config
// must already be validated; metrics may be nil-collectors from NewMetrics
// that were never registered, which is fine for tests.
func NewCoordinator(cfg *config.Config, metrics *Metrics) (*Coordinator, error) {
	stake, err := cfg.Stake()
	if err != nil {
		return nil, err
	}
	c := &Coordinator{
		cfg:          cfg,
		defaultStake: stake,
		byIdentity:   orderedmap.NewOrderedMap[string, *NodeRecord](),
		spectators:   make(map[string]Identity),
		metrics:      metrics,
		subs:         make(map[int]chan NetworkPhase),
	}
	logger.Info("orchestrator up: expecting %d nodes, threshold %d", cfg.ExpectedNodes, cfg.RegistrationThreshold)
	return c, nil
}

// Register accepts an identity submission and returns the assigned index and
// the phase observed after the call took effect. Retries with a known
// identity return the original index in any phase. Spectator submissions
// return NoIndex. All signature work happens before the critical section.
func (c *Coordinator) Register(id Identity, signature []byte, spectator bool) (uint64, NetworkPhase, error) {
	if c.cfg.RequireSignatures {
		if err := security.VerifyRegistration(id.PublicKey, id.NetworkAddress, signature); err != nil {
			c.count("bad_signature")
			return 0, c.Phase(), err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := id.Key()

	// Idempotent retry: a known participant always gets its original index
	// back, whatever the phase has advanced to in the meantime.
	if rec, ok := c.byIdentity.Get(key); ok {
		c.count("duplicate")
		return rec.Index, c.phaseLocked(), nil
	}
	if _, ok := c.spectators[key]; ok {
		c.count("duplicate")
		return NoIndex, c.phaseLocked(), nil
	}

	if spectator {
		if !c.cfg.AllowSpectators {
			c.count("spectator_rejected")
			return 0, c.phaseLocked(), ErrSpectatorsDisabled
		}
		c.spectators[key] = id.clone()
		c.count("spectator")
		logger.Info("spectator %s registered from %s", id.Fingerprint(), id.NetworkAddress)
		return NoIndex, c.phaseLocked(), nil
	}

	if c.phaseLocked() != CollectingRegistrations {
		if len(c.records) >= c.cfg.ExpectedNodes {
			c.count("capacity_exceeded")
			return 0, c.phaseLocked(), ErrCapacityExceeded
		}
		c.count("closed")
		return 0, c.phaseLocked(), ErrRegistrationClosed
	}

	// Allocate the next index. The counter never moves backward, so an
	// index is never reused even if its node goes silent afterward.
	index := c.nextIndex
	c.nextIndex++

	rec := &NodeRecord{Index: index, Identity: id.clone(), Status: StatusRegistered}
	c.records = append(c.records, rec)
	c.byIdentity.Set(key, rec)
	c.count("accepted")
	if c.metrics != nil {
		c.metrics.Registered.Set(float64(len(c.records)))
	}
	logger.Info("node %s registered from %s as index %d (%d/%d)",
		id.Fingerprint(), id.NetworkAddress, index, len(c.records), c.cfg.RegistrationThreshold)

	// Threshold trigger: the registration that completes the set finalizes
	// the config synchronously, still inside the critical section, before
	// this call returns. A concurrent duplicate retry cannot race it here.
	if len(c.records) == c.cfg.RegistrationThreshold {
		c.global = c.assembleLocked()
		c.setPhaseLocked(ConfigFinalized)
		logger.Info("participant set frozen at %d nodes, config digest %s", len(c.records), c.global.Digest)
	}

	return index, c.phaseLocked(), nil
}

// Phase returns the current network phase. Reads are lock-free but always
// reflect the last completed transition, because transitions store the new
// value before the mutating call returns.
func (c *Coordinator) Phase() NetworkPhase {
	return NetworkPhase(c.phase.Load())
}

// Subscribe returns a channel that receives every subsequent phase
// transition, plus a cancel function. The channel is buffered deep enough to
// hold every transition the state machine can ever make, so the coordinator
// never blocks on a slow subscriber.
func (c *Coordinator) Subscribe() (<-chan NetworkPhase, func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.subID
	c.subID++
	ch := make(chan NetworkPhase, 4)
	c.subs[id] = ch
	return ch, func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

// phaseLocked reads the phase while mu is held.
func (c *Coordinator) phaseLocked() NetworkPhase {
	return NetworkPhase(c.phase.Load())
}

// setPhaseLocked advances the phase. Callers hold mu, which is what makes
// every transition exactly-once; the atomic store publishes it to lock-free
// readers before the mutating call returns.
func (c *Coordinator) setPhaseLocked(p NetworkPhase) {
	c.phase.Store(uint32(p))
	if c.metrics != nil {
		c.metrics.Phase.Set(float64(p))
	}
	logger.Info("phase -> %s", p)

	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- p:
		default:
		}
	}
}

// count bumps the registration outcome counter when metrics are attached.
func (c *Coordinator) count(outcome string) {
	if c.metrics != nil {
		c.metrics.Registrations.WithLabelValues(outcome).Inc()
	}
}
