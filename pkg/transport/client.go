/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/mtaops/statctl/pkg/cluster"
	"github.com/mtaops/statctl/pkg/counter"
	"github.com/mtaops/statctl/pkg/defaults"
	"github.com/mtaops/statctl/pkg/errors"
	"github.com/mtaops/statctl/pkg/query"
)

const (
	ClientUserAgent = "statctl-transport/1.0"

	// Response bodies are bounded; a counter dump is small and anything
	// larger indicates a protocol problem.
	maxResponseBytes = 8 << 20
)

var (
	ClientDefaultConnectTimeout      = defaults.HTTPConnectTimeout
	ClientDefaultKeepAlive           = defaults.HTTPKeepAlive
	ClientDefaultTLSHandshakeTimeout = defaults.HTTPTLSHandshakeTimeout
	ClientDefaultIdleConnTimeout     = defaults.HTTPIdleConnTimeout
	ClientDefaultMaxIdleConnsPerHost = defaults.HTTPMaxIdleConnsPerHost
)

// ClientOption defines a configuration option for Client.
type ClientOption func(*Client)

// Client dials statd nodes over HTTP. It satisfies dispatch.Transport.
//
// The underlying http.Client carries no total timeout: the per-query
// deadline arrives through the request context, owned by the
// dispatcher, and connection-level timeouts are configured on the
// transport instead.
type Client struct {
	UserAgent string
	UseTLS    bool
	Client    *http.Client
}

func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.UserAgent = userAgent
	}
}

// WithTLS switches node URLs to https.
func WithTLS(enabled bool) ClientOption {
	return func(c *Client) {
		c.UseTLS = enabled
	}
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.Client = client
	}
}

// NewClient creates a node protocol client with the specified options.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		UserAgent: ClientUserAgent,
		Client: &http.Client{
			Transport: newDefaultHTTPTransport(),
		},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func newDefaultHTTPTransport() *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   ClientDefaultConnectTimeout,
			KeepAlive: ClientDefaultKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout: ClientDefaultTLSHandshakeTimeout,
		IdleConnTimeout:     ClientDefaultIdleConnTimeout,
		MaxIdleConnsPerHost: ClientDefaultMaxIdleConnsPerHost,
		ForceAttemptHTTP2:   true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

func (c *Client) nodeURL(node cluster.Node, path string) string {
	scheme := "http"
	if c.UseTLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, node.Address, path)
}

// Send queries one node for its counters matching spec. Context
// cancellation and deadline errors pass through untranslated so the
// dispatcher can tell a timeout from a dead node.
func (c *Client) Send(ctx context.Context, node cluster.Node, spec query.Spec) ([]counter.Sample, error) {
	body, err := json.Marshal(QueryRequest{Spec: spec})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProtocol, "encoding query request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.nodeURL(node, QueryPath), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProtocol, "building query request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeUnreachable, "node request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeProtocol, "reading node response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, data)
	}

	var qr QueryResponse
	if err := json.Unmarshal(data, &qr); err != nil {
		return nil, errors.Wrap(errors.ErrCodeProtocol, "decoding node response", err)
	}
	return qr.Samples, nil
}

// Ping probes one node's health endpoint. A nil return means the node
// answered and reports healthy.
func (c *Client) Ping(ctx context.Context, node cluster.Node) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nodeURL(node, HealthPath), nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeProtocol, "building health request", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeUnreachable, "node health check failed", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		return errors.NewWithContext(errors.ErrCodeUnreachable,
			"node is not healthy", map[string]any{"status": resp.StatusCode})
	}
	return nil
}

// statusError maps a non-200 answer onto the per-node taxonomy. The
// daemon's structured error body is surfaced when it decodes; anything
// else is a protocol violation with the raw status attached.
func statusError(status int, body []byte) *errors.StructuredError {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Code != "" {
		return errors.NewWithContext(errors.ErrCodeProtocol,
			fmt.Sprintf("node rejected query: %s", er.Error.Message),
			map[string]any{"status": status, "code": er.Error.Code})
	}
	return errors.NewWithContext(errors.ErrCodeProtocol,
		"unexpected status from node",
		map[string]any{"status": status})
}
