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

// go/src/orchestrator/query.go
package orchestrator

// Read-only accessors for the transport layer. All of them may be called at
// any phase, including before the first registration, and all of them hand
// out detached copies.

// NodeRecord returns the record at index as it stood at call time.
func (c *Coordinator) NodeRecord(index uint64) (NodeRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index >= uint64(len(c.records)) {
		return NodeRecord{}, ErrUnknownIndex
	}
	return c.records[index].snapshot(), nil
}

// Records returns an index-ordered snapshot of every record. The snapshot
// reflects state at call time and does not update afterward.
func (c *Coordinator) Records() []NodeRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]NodeRecord, len(c.records))
	for i, rec := range c.records {
		out[i] = rec.snapshot()
	}
	return out
}

// RegisteredCount returns the number of distinct registered participants.
func (c *Coordinator) RegisteredCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// ReadyCount returns the number of participants that confirmed readiness.
func (c *Coordinator) ReadyCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readyCount
}
