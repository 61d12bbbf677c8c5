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

// go/src/security/verify.go
package security

import (
	"errors"

	"github.com/cloudflare/circl/sign/ed25519"
)

// Registration signature errors.
var (
	ErrBadPublicKey = errors.New("public key is not a valid Ed25519 key")
	ErrBadSignature = errors.New("signature does not verify against the public key")
)

// VerifyRegistration checks that signature is a valid Ed25519 signature by
// publicKey over the submitted network address. Key generation happens on
// the node side; the orchestrator only ever verifies.
func VerifyRegistration(publicKey []byte, networkAddress string, signature []byte) error {
	if len(publicKey) != ed25519.PublicKeySize {
		return ErrBadPublicKey
	}
	if len(signature) != ed25519.SignatureSize {
		return ErrBadSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(publicKey), []byte(networkAddress), signature) {
		return ErrBadSignature
	}
	return nil
}

// SignRegistration produces the registration signature for a node's own
// address. Lives here so participant clients and tests share one definition
// of what exactly gets signed.
func SignRegistration(privateKey ed25519.PrivateKey, networkAddress string) []byte {
	return ed25519.Sign(privateKey, []byte(networkAddress))
}
