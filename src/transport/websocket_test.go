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

// go/src/transport/websocket_test.go
package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootnet-core/go/src/config"
	"github.com/bootnet-core/go/src/orchestrator"
)

// newHubServer mounts a PhaseHub on a bare mux behind httptest, the same
// path the gin surface uses.
func newHubServer(t *testing.T, n int) (*orchestrator.Coordinator, string) {
	t.Helper()
	cfg := config.Defaults()
	cfg.ExpectedNodes = n
	require.NoError(t, cfg.Validate())

	coord, err := orchestrator.NewCoordinator(cfg, orchestrator.NewMetrics())
	require.NoError(t, err)

	hub := NewPhaseHub(coord, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/phase", hub.Handle)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return coord, strings.TrimPrefix(ts.URL, "http://")
}

func register(t *testing.T, coord *orchestrator.Coordinator, i int) uint64 {
	t.Helper()
	idx, _, err := coord.Register(orchestrator.Identity{
		PublicKey:      []byte(fmt.Sprintf("pk-%d", i)),
		NetworkAddress: fmt.Sprintf("127.0.0.1:%d", 33000+i),
	}, nil, false)
	require.NoError(t, err)
	return idx
}

func TestAwaitPhaseObservesStart(t *testing.T) {
	const n = 2
	coord, addr := newHubServer(t, n)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- AwaitPhase(ctx, addr, orchestrator.Started)
	}()

	for i := 0; i < n; i++ {
		register(t, coord, i)
	}
	for i := uint64(0); i < n; i++ {
		_, err := coord.MarkReady(i)
		require.NoError(t, err)
	}

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("phase stream never announced start")
	}
}

func TestAwaitPhaseReturnsImmediatelyWhenAlreadyReached(t *testing.T) {
	const n = 1
	coord, addr := newHubServer(t, n)

	register(t, coord, 0)
	_, err := coord.MarkReady(0)
	require.NoError(t, err)
	require.Equal(t, orchestrator.Started, coord.Phase())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, AwaitPhase(ctx, addr, orchestrator.ConfigFinalized))
	assert.NoError(t, AwaitPhase(ctx, addr, orchestrator.Started))
}

func TestAwaitPhaseHonorsContextCancellation(t *testing.T) {
	_, addr := newHubServer(t, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := AwaitPhase(ctx, addr, orchestrator.Started)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
