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

// go/src/orchestrator/errors.go
package orchestrator

import "errors"

// Typed errors returned by the coordinator. Every error is terminal for the
// single request that produced it and leaves orchestrator state untouched;
// clients retry and rely on the idempotence of register and ready.
var (
	// ErrCapacityExceeded rejects a new identity after the full expected
	// set of participants has already registered.
	ErrCapacityExceeded = errors.New("registration capacity exceeded")

	// ErrRegistrationClosed rejects a new identity after the config was
	// finalized at a threshold below the full expected set.
	ErrRegistrationClosed = errors.New("registration closed")

	// ErrUnknownIndex rejects an operation referencing an index that was
	// never assigned.
	ErrUnknownIndex = errors.New("unknown participant index")

	// ErrNotYetFinalized rejects a readiness mark before the network
	// config exists.
	ErrNotYetFinalized = errors.New("network config not yet finalized")

	// ErrSpectatorsDisabled rejects a spectator registration when the
	// deployment has not enabled the spectator identity class.
	ErrSpectatorsDisabled = errors.New("spectator registrations disabled")
)
