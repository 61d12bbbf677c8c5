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

// go/src/orchestrator/barrier.go
package orchestrator

import (
	logger "github.com/bootnet-core/go/src/log"
)

// MarkReady records that the node holding index has downloaded the network
// config and is ready to start consensus. Marking twice is a no-op. The
// readiness mark that completes the registered set transitions the network
// to Started, exactly once.
//
// Splitting "config received" from "ready to start" lets every node verify
// the full peer table before the start instant is synchronized, so nobody
// begins consensus with an incomplete view of its peers.
func (c *Coordinator) MarkReady(index uint64) (NetworkPhase, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phaseLocked() == CollectingRegistrations {
		return c.phaseLocked(), ErrNotYetFinalized
	}
	if index >= uint64(len(c.records)) {
		return c.phaseLocked(), ErrUnknownIndex
	}

	rec := c.records[index]
	if rec.Status != StatusReady {
		rec.Status = StatusReady
		c.readyCount++
		if c.metrics != nil {
			c.metrics.ReadyMarks.Inc()
			c.metrics.Ready.Set(float64(c.readyCount))
		}
		logger.Info("node %d ready (%d/%d)", index, c.readyCount, len(c.records))

		if c.phaseLocked() == ConfigFinalized {
			c.setPhaseLocked(AwaitingReady)
		}
		if c.readyCount == len(c.records) {
			c.setPhaseLocked(Started)
			logger.Info("all %d nodes ready, network started", len(c.records))
		}
	}

	return c.phaseLocked(), nil
}

// NoteConfigFetched advances a node's status to ConfigDelivered when it
// downloads the finalized config. Best effort: unknown indices and nodes
// that already moved past this status are ignored.
func (c *Coordinator) NoteConfigFetched(index uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.global == nil || index >= uint64(len(c.records)) {
		return
	}
	rec := c.records[index]
	if rec.Status == StatusRegistered {
		rec.Status = StatusConfigDelivered
	}
}
