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

// go/src/orchestrator/metrics.go
package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the bootstrap funnel to Prometheus.
type Metrics struct {
	Registrations  *prometheus.CounterVec
	ReadyMarks     prometheus.Counter
	Registered     prometheus.Gauge
	Ready          prometheus.Gauge
	Phase          prometheus.Gauge
	RequestLatency *prometheus.HistogramVec
}

// NewMetrics initializes Prometheus metrics for the orchestrator.
func NewMetrics() *Metrics {
	return &Metrics{
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_registrations_total",
				Help: "Number of registration requests by outcome",
			},
			[]string{"outcome"},
		),
		ReadyMarks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orchestrator_ready_marks_total",
				Help: "Number of accepted readiness confirmations",
			},
		),
		Registered: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orchestrator_registered_nodes",
				Help: "Number of distinct registered participants",
			},
		),
		Ready: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orchestrator_ready_nodes",
				Help: "Number of participants that confirmed readiness",
			},
		),
		Phase: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orchestrator_phase",
				Help: "Current network phase (0=collecting 1=finalized 2=awaiting_ready 3=started)",
			},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orchestrator_request_latency_seconds",
				Help:    "Latency of orchestrator HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}
}

// MustRegister attaches all collectors to the given registry.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.Registrations, m.ReadyMarks, m.Registered, m.Ready, m.Phase, m.RequestLatency)
}
