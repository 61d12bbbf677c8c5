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

// go/src/http/types.go
package http

import (
	"github.com/bootnet-core/go/src/orchestrator"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	PublicKey      []byte `json:"public_key"`
	NetworkAddress string `json:"network_address"`
	Signature      []byte `json:"signature,omitempty"`
	Spectator      bool   `json:"spectator,omitempty"`
}

// RegisterResponse carries the assigned index and the phase observed after
// the registration took effect. Index is null for spectators.
type RegisterResponse struct {
	Index *uint64                   `json:"index"`
	Phase orchestrator.NetworkPhase `json:"phase"`
}

// ReadyRequest is the body of POST /ready.
type ReadyRequest struct {
	Index uint64 `json:"index"`
}

// PhaseResponse is returned by POST /ready and GET /phase.
type PhaseResponse struct {
	Phase orchestrator.NetworkPhase `json:"phase"`
}

// RecordsResponse is returned by GET /records: an index-ordered snapshot.
type RecordsResponse struct {
	Records []orchestrator.NodeRecord `json:"records"`
}
