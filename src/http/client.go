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

// go/src/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bootnet-core/go/src/orchestrator"
)

// Client is the participant-side view of the orchestrator's HTTP surface.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the orchestrator at addr (host:port).
func NewClient(addr string) *Client {
	return &Client{
		base: "http://" + addr,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register submits an identity. The returned index is NoIndex for
// spectators. Typed orchestrator errors come back as their sentinels, so
// callers can use errors.Is on the result of a remote call.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (uint64, orchestrator.NetworkPhase, error) {
	var resp RegisterResponse
	if err := c.postJSON(ctx, "/register", req, &resp); err != nil {
		return 0, 0, err
	}
	if resp.Index == nil {
		return orchestrator.NoIndex, resp.Phase, nil
	}
	return *resp.Index, resp.Phase, nil
}

// GetConfig fetches the finalized network config. The second return is
// false while the orchestrator is still collecting registrations. A
// non-nil index acknowledges receipt for that participant.
func (c *Client) GetConfig(ctx context.Context, index *uint64) (*orchestrator.GlobalConfig, bool, error) {
	path := "/config"
	if index != nil {
		path += "?index=" + strconv.FormatUint(*index, 10)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNoContent {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, decodeError(resp)
	}
	var cfg orchestrator.GlobalConfig
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return nil, false, err
	}
	return &cfg, true, nil
}

// PeerConfig fetches a single node's public identity by index.
func (c *Client) PeerConfig(ctx context.Context, index uint64) (orchestrator.NodeRecord, error) {
	var rec orchestrator.NodeRecord
	err := c.getJSON(ctx, "/peer_config/"+strconv.FormatUint(index, 10), &rec)
	return rec, err
}

// Ready confirms the node at index is ready to start consensus.
func (c *Client) Ready(ctx context.Context, index uint64) (orchestrator.NetworkPhase, error) {
	var resp PhaseResponse
	if err := c.postJSON(ctx, "/ready", ReadyRequest{Index: index}, &resp); err != nil {
		return 0, err
	}
	return resp.Phase, nil
}

// GetPhase reports the orchestrator's current phase.
func (c *Client) GetPhase(ctx context.Context) (orchestrator.NetworkPhase, error) {
	var resp PhaseResponse
	if err := c.getJSON(ctx, "/phase", &resp); err != nil {
		return 0, err
	}
	return resp.Phase, nil
}

// Records fetches the index-ordered record snapshot.
func (c *Client) Records(ctx context.Context) ([]orchestrator.NodeRecord, error) {
	var resp RecordsResponse
	if err := c.getJSON(ctx, "/records", &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError turns an error response back into the coordinator's typed
// errors where the status code identifies one unambiguously.
func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &payload)

	switch resp.StatusCode {
	case http.StatusGone:
		return orchestrator.ErrRegistrationClosed
	case http.StatusNotFound:
		// Only the coordinator's own 404 carries the typed error body; a
		// proxy or router 404 for a wrong path must not look like one.
		if payload.Error == orchestrator.ErrUnknownIndex.Error() {
			return orchestrator.ErrUnknownIndex
		}
	case http.StatusForbidden:
		return orchestrator.ErrSpectatorsDisabled
	case http.StatusConflict:
		if payload.Error == orchestrator.ErrNotYetFinalized.Error() {
			return orchestrator.ErrNotYetFinalized
		}
		return orchestrator.ErrCapacityExceeded
	}
	if payload.Error != "" {
		return fmt.Errorf("orchestrator: %s (http %d)", payload.Error, resp.StatusCode)
	}
	return fmt.Errorf("orchestrator: http %d", resp.StatusCode)
}
