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

// go/src/orchestrator/quorum_test.go
package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinQuorumSize(t *testing.T) {
	twoThirds := 2.0 / 3.0
	assert.Equal(t, 1, MinQuorumSize(1, twoThirds))
	assert.Equal(t, 2, MinQuorumSize(3, twoThirds))
	assert.Equal(t, 3, MinQuorumSize(4, twoThirds))
	assert.Equal(t, 7, MinQuorumSize(10, twoThirds))
	assert.Equal(t, 67, MinQuorumSize(100, twoThirds))
	// Degenerate inputs still yield a usable quorum of one.
	assert.Equal(t, 1, MinQuorumSize(0, twoThirds))
}

func TestMaxFaulty(t *testing.T) {
	twoThirds := 2.0 / 3.0
	assert.Equal(t, 0, MaxFaulty(1, twoThirds))
	assert.Equal(t, 0, MaxFaulty(2, twoThirds))
	assert.Equal(t, 1, MaxFaulty(4, twoThirds))
	assert.Equal(t, 3, MaxFaulty(10, twoThirds))
	assert.Equal(t, 0, MaxFaulty(3, 1.0))
}

func TestVerifySafety(t *testing.T) {
	assert.True(t, VerifySafety(4, 2.0/3.0))
	assert.True(t, VerifySafety(100, 0.7))
	// Below the BFT quorum floor safety cannot be guaranteed.
	assert.False(t, VerifySafety(4, 0.5))
}

func TestVerifyQuorumIntersection(t *testing.T) {
	// With Q = 2/3 and N = 9 any two quorums overlap in 3 nodes, so up to
	// 2 faulty nodes keep one honest node in the intersection.
	assert.True(t, VerifyQuorumIntersection(9, 2, 2.0/3.0))
	assert.False(t, VerifyQuorumIntersection(9, 3, 2.0/3.0))
	// A bare majority quorum has empty guaranteed intersection.
	assert.False(t, VerifyQuorumIntersection(10, 0, 0.5))
}
