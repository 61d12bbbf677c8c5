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

// go/src/security/identity.go
package security

import (
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/minio/highwayhash"
)

// fingerprintKey is the fixed HighwayHash key used for identity fingerprints
// and config digests. It only needs to be identical for every party that
// compares hashes, so a published constant is fine.
var fingerprintKey = []byte("bootnet-orchestrator-hh-key-v1\x00\x00")

// Fingerprint returns a short stable handle for an identity, used in log
// lines and metrics labels instead of the full public key.
func Fingerprint(publicKey []byte, networkAddress string) string {
	h, _ := highwayhash.New64(fingerprintKey)
	_, _ = h.Write(publicKey)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(networkAddress))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Digest accumulates the fields of a finalized network config into a single
// 64-bit HighwayHash value. Every participant recomputes the digest over the
// config it received; a mismatch means the copies are not identical.
type Digest struct {
	h hash.Hash64
}

// NewDigest creates an empty config digest.
func NewDigest() *Digest {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		// The key is a compile-time constant of the right length.
		panic(err)
	}
	return &Digest{h: h}
}

// WriteUint64 folds a fixed-width integer into the digest.
func (d *Digest) WriteUint64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, _ = d.h.Write(buf[:])
}

// WriteBytes folds a length-prefixed byte string into the digest. The
// length prefix keeps adjacent variable-length fields from aliasing.
func (d *Digest) WriteBytes(p []byte) {
	d.WriteUint64(uint64(len(p)))
	_, _ = d.h.Write(p)
}

// WriteString folds a length-prefixed string into the digest.
func (d *Digest) WriteString(s string) {
	d.WriteBytes([]byte(s))
}

// Sum returns the digest as a fixed-width hex string.
func (d *Digest) Sum() string {
	return fmt.Sprintf("%016x", d.h.Sum64())
}
