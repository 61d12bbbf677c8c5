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

// go/src/transport/websocket.go
package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bootnet-core/go/src/orchestrator"
)

// PhaseEvent is one message on the phase stream.
type PhaseEvent struct {
	Phase orchestrator.NetworkPhase `json:"phase"`
}

// PhaseHub pushes phase transitions to websocket subscribers so participants
// do not have to poll GET /phase while waiting for the network to start.
type PhaseHub struct {
	coord    *orchestrator.Coordinator
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewPhaseHub creates a hub over the given coordinator.
func NewPhaseHub(coord *orchestrator.Coordinator, log *zap.Logger) *PhaseHub {
	if log == nil {
		log = zap.NewNop()
	}
	return &PhaseHub{
		coord:    coord,
		upgrader: websocket.Upgrader{},
		log:      log,
	}
}

// Handle upgrades the request and streams phase events until the network
// reaches Started or the client goes away. The current phase is always sent
// first, so late subscribers never miss a transition they care about.
func (h *PhaseHub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Subscribe before reading the current phase: a transition landing in
	// between is then delivered twice rather than never.
	ch, cancel := h.coord.Subscribe()
	defer cancel()

	cur := h.coord.Phase()
	if err := conn.WriteJSON(PhaseEvent{Phase: cur}); err != nil {
		h.log.Warn("websocket write failed", zap.Error(err))
		return
	}
	if cur == orchestrator.Started {
		return
	}

	// Reader goroutine: its only job is to notice the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case p := <-ch:
			if err := conn.WriteJSON(PhaseEvent{Phase: p}); err != nil {
				h.log.Warn("websocket write failed", zap.Error(err))
				return
			}
			if p == orchestrator.Started {
				h.log.Info("phase stream complete", zap.String("remote", conn.RemoteAddr().String()))
				return
			}
		}
	}
}

// AwaitPhase dials an orchestrator's phase stream and blocks until the given
// phase (or a later one) is announced, the stream ends, or ctx is done.
func AwaitPhase(ctx context.Context, orchestratorAddr string, target orchestrator.NetworkPhase) error {
	dialer := websocket.Dialer{}
	conn, _, err := dialer.DialContext(ctx, "ws://"+orchestratorAddr+"/ws/phase", nil)
	if err != nil {
		return fmt.Errorf("failed to dial phase stream: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	for {
		var ev PhaseEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("phase stream closed before %s: %w", target, err)
		}
		if ev.Phase >= target {
			return nil
		}
	}
}
