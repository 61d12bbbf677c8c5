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

// go/src/main.go
package main

import (
	"flag"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bootnet-core/go/src/config"
	httpsrv "github.com/bootnet-core/go/src/http"
	logger "github.com/bootnet-core/go/src/log"
	"github.com/bootnet-core/go/src/orchestrator"
	"github.com/bootnet-core/go/src/transport"
)

func main() {
	configPath := flag.String("config", "", "Path to the orchestrator JSON config file")
	expected := flag.Int("n", 0, "Expected number of consensus participants (overrides config)")
	threshold := flag.Int("threshold", 0, "Registrations required to finalize (overrides config; 0 means n)")
	httpAddr := flag.String("addr", "", "HTTP listen address (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *debug {
		logger.SetLevel(logger.DEBUG)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config: %v", err)
	}
	if *expected > 0 {
		cfg.ExpectedNodes = *expected
		if *threshold == 0 {
			cfg.RegistrationThreshold = 0
		}
	}
	if *threshold > 0 {
		cfg.RegistrationThreshold = *threshold
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration: %v", err)
	}

	metrics := orchestrator.NewMetrics()
	metrics.MustRegister(prometheus.DefaultRegisterer)

	coord, err := orchestrator.NewCoordinator(cfg, metrics)
	if err != nil {
		logger.Fatal("failed to create coordinator: %v", err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		logger.Fatal("failed to create zap logger: %v", err)
	}
	defer zlog.Sync()

	hub := transport.NewPhaseHub(coord, zlog)
	server := httpsrv.NewServer(cfg.HTTPAddr, coord, hub, metrics)

	logger.Info("orchestrator listening on %s", cfg.HTTPAddr)
	if err := server.Start(); err != nil {
		logger.Fatal("HTTP server failed: %v", err)
	}
}
