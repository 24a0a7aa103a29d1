// Package faucet provides a client for testnet faucet services.
package faucet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Klingon-tech/threadnet-wallet/internal/log"
)

// Client posts funding requests to a faucet's enqueue endpoint.
type Client struct {
	url  string
	http *http.Client
}

// New creates a faucet client for the given enqueue URL.
func New(url string) *Client {
	return NewWithTimeout(url, 15*time.Second)
}

// NewWithTimeout creates a faucet client with a custom HTTP timeout.
func NewWithTimeout(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// enqueueRequest is the faucet's expected request body.
type enqueueRequest struct {
	Address string `json:"address"`
}

// Response is the faucet's reply. Faucets differ slightly; unknown
// fields are ignored.
type Response struct {
	Address        string `json:"address,omitempty"`
	WaitingEntries int    `json:"waiting_entries,omitempty"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Enqueue requests faucet funds for the given address.
func (c *Client) Enqueue(address string) (*Response, error) {
	body, err := json.Marshal(enqueueRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	log.Faucet.Debug().Str("url", c.url).Str("address", address).Msg("requesting funds")

	resp, err := c.http.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("faucet request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var out Response
	if len(data) > 0 {
		// Best effort decode. Some faucets reply with plain text.
		if err := json.Unmarshal(data, &out); err != nil {
			out.Message = string(data)
		}
	}

	if resp.StatusCode >= 400 {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("faucet rejected request: %s", msg)
	}

	return &out, nil
}
