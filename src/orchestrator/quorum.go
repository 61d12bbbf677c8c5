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

// go/src/orchestrator/quorum.go
package orchestrator

import (
	"math"
)

// MinQuorumSize calculates the minimum number of nodes required to reach
// consensus once the network is running.
// Calculated as: ceil(totalNodes * quorumFraction)
// Returns the minimum quorum size (at least 1).
func MinQuorumSize(totalNodes int, quorumFraction float64) int {
	// Use ceiling so a fractional result always rounds toward more votes.
	minSize := int(math.Ceil(float64(totalNodes) * quorumFraction))
	if minSize < 1 {
		return 1
	}
	return minSize
}

// MaxFaulty calculates the maximum number of Byzantine nodes the finalized
// network can tolerate while maintaining safety.
// Formula: floor((1 - Q) * totalNodes), where Q is the quorum fraction.
func MaxFaulty(totalNodes int, quorumFraction float64) int {
	maxFaulty := int((1 - quorumFraction) * float64(totalNodes))
	if maxFaulty < 0 {
		return 0
	}
	return maxFaulty
}

// VerifySafety checks whether the configured parameters can guarantee BFT
// safety for the finalized participant set. Requires:
// - Quorum fraction >= 2/3
// - Faulty nodes < total nodes / 3
func VerifySafety(totalNodes int, quorumFraction float64) bool {
	meetsQuorumRequirement := quorumFraction >= 2.0/3.0
	meetsFaultTolerance := MaxFaulty(totalNodes, quorumFraction) < (totalNodes+2)/3
	return meetsQuorumRequirement && meetsFaultTolerance
}

// VerifyQuorumIntersection verifies the quorum intersection property: any
// two quorums share at least one honest node, preventing network splits.
// Formula: (2Q - 1) * totalNodes > faultyNodes
func VerifyQuorumIntersection(totalNodes, faultyNodes int, quorumFraction float64) bool {
	Q := quorumFraction
	intersection := (2*Q - 1) * float64(totalNodes)
	return intersection > float64(faultyNodes)
}
