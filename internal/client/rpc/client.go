// Package rpc implements the JSON-RPC 2.0 transport used by the Odoo web
// session API: one HTTP POST per call, with the server session carried by
// a cookie captured from responses and replayed on subsequent requests.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/odooclock/internal/logging"
)

const defaultTimeout = 15 * time.Second

// Client performs JSON-RPC calls against a single server base URL.
// It is stateless per call except for the session cookie.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger

	// requestID is a local sequence number; unique per process for log
	// correlation, not used for request/response matching.
	requestID atomic.Int64

	mu     sync.Mutex
	cookie string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (e.g. in tests or to
// change the timeout policy).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient constructs a transport for the given base URL.
func NewClient(baseURL string, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log.With("component", "rpc"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	Jsonrpc string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int64  `json:"id"`
}

type responseError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Data    *struct {
		Message string `json:"message"`
	} `json:"data"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *responseError  `json:"error"`
}

// Call posts a single JSON-RPC request to endpoint (path relative to the
// base URL) and returns the raw result field.
//
// Any Set-Cookie header on the response replaces the stored session cookie
// wholesale; the stored cookie is attached to every request. This is the
// sole mechanism of session continuity.
func (c *Client) Call(ctx context.Context, endpoint string, params any) (json.RawMessage, error) {
	id := c.requestID.Add(1)

	body, err := json.Marshal(request{Jsonrpc: "2.0", Method: "call", Params: params, ID: id})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cookie := c.currentCookie(); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	c.log.Debug(ctx, "rpc call", "endpoint", endpoint, "id", id)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	// Capture the session cookie before any status check: the server may
	// rotate it on error responses too.
	if values := resp.Header.Values("Set-Cookie"); len(values) > 0 {
		c.setCookie(strings.Join(values, "; "))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain for connection reuse; the body is not part of the contract.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		c.log.Warn(ctx, "rpc http failure", "endpoint", endpoint, "id", id, "status", resp.StatusCode)
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}

	if envelope.Error != nil {
		msg := envelope.Error.Message
		if envelope.Error.Data != nil && envelope.Error.Data.Message != "" {
			msg = envelope.Error.Data.Message
		}
		if msg == "" {
			msg = "unknown server error"
		}
		c.log.Warn(ctx, "rpc protocol failure", "endpoint", endpoint, "id", id, "code", envelope.Error.Code, "message", msg)
		return nil, &ProtocolError{Code: envelope.Error.Code, Message: msg}
	}

	return envelope.Result, nil
}

func (c *Client) currentCookie() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cookie
}

func (c *Client) setCookie(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cookie = v
}
