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

// go/src/node/bootstrap.go
package node

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudflare/circl/sign/ed25519"

	httpc "github.com/bootnet-core/go/src/http"
	logger "github.com/bootnet-core/go/src/log"
	"github.com/bootnet-core/go/src/orchestrator"
	"github.com/bootnet-core/go/src/security"
	"github.com/bootnet-core/go/src/transport"
)

// Bootstrapper runs the participant side of the bootstrap protocol:
// register, fetch and verify the network config, confirm readiness, wait
// for the start signal. It is what a consensus node runs before its first
// round.
type Bootstrapper struct {
	// OrchestratorAddr is the orchestrator's host:port.
	OrchestratorAddr string

	// PublicKey and NetworkAddress form the identity submitted at
	// registration. Key generation is the node's concern.
	PublicKey      []byte
	NetworkAddress string

	// PrivateKey signs the registration when the orchestrator demands
	// proof of key possession. Optional otherwise.
	PrivateKey ed25519.PrivateKey

	// PollInterval paces registration retries and config polling.
	PollInterval time.Duration

	// DisablePhaseStream forces polling of GET /phase instead of the
	// websocket stream while waiting for the start signal.
	DisablePhaseStream bool
}

// Result is what a node walks away with after a successful bootstrap.
type Result struct {
	Index  uint64
	Config *orchestrator.GlobalConfig
}

// Run drives the bootstrap to completion or until ctx is done. On return
// with nil error the network phase is Started and Config is the verified
// network-wide configuration.
func (b *Bootstrapper) Run(ctx context.Context) (*Result, error) {
	client := httpc.NewClient(b.OrchestratorAddr)
	interval := b.PollInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	req := httpc.RegisterRequest{
		PublicKey:      b.PublicKey,
		NetworkAddress: b.NetworkAddress,
	}
	if b.PrivateKey != nil {
		req.Signature = security.SignRegistration(b.PrivateKey, b.NetworkAddress)
	}

	// Register, retrying transport failures. Registration is idempotent on
	// the orchestrator side, so blind retries are safe.
	var index uint64
	for {
		idx, phase, err := client.Register(ctx, req)
		if err == nil {
			index = idx
			logger.Info("registered as index %d, phase %s", idx, phase)
			break
		}
		if errors.Is(err, orchestrator.ErrCapacityExceeded) || errors.Is(err, orchestrator.ErrRegistrationClosed) {
			return nil, err
		}
		logger.Warn("registration attempt failed: %v", err)
		if err := sleep(ctx, interval); err != nil {
			return nil, err
		}
	}

	// Poll for the finalized config, then verify we hold the same copy as
	// everyone else before declaring readiness.
	var cfg *orchestrator.GlobalConfig
	for {
		got, ok, err := client.GetConfig(ctx, &index)
		if err != nil {
			logger.Warn("config fetch failed: %v", err)
		} else if ok {
			cfg = got
			break
		}
		if err := sleep(ctx, interval); err != nil {
			return nil, err
		}
	}
	if want, have := cfg.Digest, cfg.ComputeDigest(); want != have {
		return nil, fmt.Errorf("config digest mismatch: orchestrator says %s, computed %s", want, have)
	}
	logger.Info("received network config: %d peers, digest %s", len(cfg.StakeTable), cfg.Digest)

	for {
		if _, err := client.Ready(ctx, index); err == nil {
			break
		} else if errors.Is(err, orchestrator.ErrUnknownIndex) {
			return nil, err
		} else {
			logger.Warn("ready confirmation failed: %v", err)
		}
		if err := sleep(ctx, interval); err != nil {
			return nil, err
		}
	}

	if err := b.awaitStart(ctx, client, interval); err != nil {
		return nil, err
	}
	logger.Info("network started, index %d entering consensus after %dms delay", index, cfg.Params.StartDelayMS)
	return &Result{Index: index, Config: cfg}, nil
}

// awaitStart blocks until the orchestrator announces Started, preferring the
// websocket stream and falling back to polling.
func (b *Bootstrapper) awaitStart(ctx context.Context, client *httpc.Client, interval time.Duration) error {
	if !b.DisablePhaseStream {
		err := transport.AwaitPhase(ctx, b.OrchestratorAddr, orchestrator.Started)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("phase stream unavailable, falling back to polling: %v", err)
	}
	for {
		phase, err := client.GetPhase(ctx)
		if err == nil && phase == orchestrator.Started {
			return nil
		}
		if err := sleep(ctx, interval); err != nil {
			return err
		}
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
