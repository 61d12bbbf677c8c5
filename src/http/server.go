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

// go/src/http/server.go
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bootnet-core/go/src/orchestrator"
	"github.com/bootnet-core/go/src/security"
	"github.com/bootnet-core/go/src/transport"
)

// Server exposes the orchestrator over HTTP.
type Server struct {
	address string
	router  *gin.Engine
	coord   *orchestrator.Coordinator
	hub     *transport.PhaseHub
	metrics *orchestrator.Metrics
}

// NewServer creates the HTTP surface for a coordinator. hub may be nil, in
// which case the websocket phase stream is not mounted.
func NewServer(address string, coord *orchestrator.Coordinator, hub *transport.PhaseHub, metrics *orchestrator.Metrics) *Server {
	s := &Server{
		address: address,
		router:  gin.Default(),
		coord:   coord,
		hub:     hub,
		metrics: metrics,
	}
	s.setupRoutes()
	return s
}

// setupRoutes defines HTTP endpoints.
func (s *Server) setupRoutes() {
	if s.metrics != nil {
		s.router.Use(s.observeLatency)
	}
	s.router.POST("/register", s.handleRegister)
	s.router.GET("/config", s.handleGetConfig)
	s.router.GET("/peer_config/:index", s.handleGetPeerConfig)
	s.router.POST("/ready", s.handleReady)
	s.router.GET("/phase", s.handleGetPhase)
	s.router.GET("/records", s.handleListRecords)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if s.hub != nil {
		s.router.GET("/ws/phase", func(c *gin.Context) {
			s.hub.Handle(c.Writer, c.Request)
		})
	}
}

// observeLatency records per-path request latency.
func (s *Server) observeLatency(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.metrics.RequestLatency.WithLabelValues(c.FullPath()).Observe(time.Since(start).Seconds())
}

// handleRegister accepts an identity submission.
func (s *Server) handleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.PublicKey) == 0 || req.NetworkAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "public_key and network_address are required"})
		return
	}

	id := orchestrator.Identity{PublicKey: req.PublicKey, NetworkAddress: req.NetworkAddress}
	index, phase, err := s.coord.Register(id, req.Signature, req.Spectator)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	resp := RegisterResponse{Phase: phase}
	if index != orchestrator.NoIndex {
		resp.Index = &index
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetConfig returns the finalized network config, or 204 while the
// participant set is still being collected. An optional index query lets a
// node acknowledge receipt, advancing its status to config_delivered.
func (s *Server) handleGetConfig(c *gin.Context) {
	cfg, ok := s.coord.Config()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	if idxStr := c.Query("index"); idxStr != "" {
		if idx, err := strconv.ParseUint(idxStr, 10, 64); err == nil {
			s.coord.NoteConfigFetched(idx)
		}
	}
	c.JSON(http.StatusOK, cfg)
}

// handleGetPeerConfig returns a single node's public identity.
func (s *Server) handleGetPeerConfig(c *gin.Context) {
	index, err := strconv.ParseUint(c.Param("index"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	rec, err := s.coord.NodeRecord(index)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// handleReady marks a node ready to start.
func (s *Server) handleReady(c *gin.Context) {
	var req ReadyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	phase, err := s.coord.MarkReady(req.Index)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, PhaseResponse{Phase: phase})
}

// handleGetPhase reports the current network phase.
func (s *Server) handleGetPhase(c *gin.Context) {
	c.JSON(http.StatusOK, PhaseResponse{Phase: s.coord.Phase()})
}

// handleListRecords returns an index-ordered snapshot of all records.
func (s *Server) handleListRecords(c *gin.Context) {
	c.JSON(http.StatusOK, RecordsResponse{Records: s.coord.Records()})
}

// statusFor maps coordinator errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, orchestrator.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, orchestrator.ErrRegistrationClosed):
		return http.StatusGone
	case errors.Is(err, orchestrator.ErrUnknownIndex):
		return http.StatusNotFound
	case errors.Is(err, orchestrator.ErrNotYetFinalized):
		return http.StatusConflict
	case errors.Is(err, orchestrator.ErrSpectatorsDisabled):
		return http.StatusForbidden
	case errors.Is(err, security.ErrBadPublicKey), errors.Is(err, security.ErrBadSignature):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Router exposes the gin engine, mainly for httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.router.Run(s.address)
}
