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

// go/src/log/logger_test.go
package logger

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quiet silences stdout for the duration of a test and restores the defaults
// afterwards, so assertions run purely against the capture buffer.
func quiet(t *testing.T) {
	t.Helper()
	SetOutput(io.Discard)
	Reset()
	t.Cleanup(func() {
		SetLevel(INFO)
		SetOutput(io.Discard)
		Reset()
	})
}

func TestCaptureBufferRecordsEntries(t *testing.T) {
	quiet(t)

	Info("node %d registered", 7)
	Warn("threshold not reached")

	logs := GetLogs()
	assert.Contains(t, logs, "[INFO] node 7 registered")
	assert.Contains(t, logs, "[WARN] threshold not reached")

	// Each entry is terminated even when the caller omits the newline.
	require.True(t, bytes.HasSuffix([]byte(logs), []byte("\n")))
}

func TestLevelFiltersEntriesBelowThreshold(t *testing.T) {
	quiet(t)

	SetLevel(WARN)
	Debug("dial retry scheduled")
	Info("config served")
	Warn("registration stalled")
	Error("barrier timed out")

	logs := GetLogs()
	assert.NotContains(t, logs, "dial retry scheduled")
	assert.NotContains(t, logs, "config served")
	assert.Contains(t, logs, "[WARN] registration stalled")
	assert.Contains(t, logs, "[ERROR] barrier timed out")
}

func TestResetDiscardsTranscript(t *testing.T) {
	quiet(t)

	Info("first run entry")
	require.Contains(t, GetLogs(), "first run entry")

	Reset()
	assert.Empty(t, GetLogs())

	Info("second run entry")
	assert.Contains(t, GetLogs(), "second run entry")
	assert.NotContains(t, GetLogs(), "first run entry")
}

func TestSetOutputTeesToDestinationAndBuffer(t *testing.T) {
	quiet(t)

	var sink bytes.Buffer
	SetOutput(&sink)

	Info("phase -> started")

	// The entry lands both in the chosen destination and in the capture
	// buffer that GetLogs reads.
	assert.Contains(t, sink.String(), "[INFO] phase -> started")
	assert.Contains(t, GetLogs(), "[INFO] phase -> started")
}
