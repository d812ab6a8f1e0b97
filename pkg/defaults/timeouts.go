/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import "time"

// Query timeouts.
const (
	// QueryTimeout is the default shared deadline for one cluster
	// counter query. Every targeted node gets the same deadline; a node
	// still silent when it expires is reported as timed out.
	QueryTimeout = 10 * time.Second
)

// HTTP client timeouts for the node protocol. The client carries no
// total timeout; the query deadline travels in the request context.
const (
	// HTTPConnectTimeout bounds dialing a node.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPKeepAlive is the keep-alive probe interval for node connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPTLSHandshakeTimeout bounds the TLS handshake with a node.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPIdleConnTimeout is how long pooled node connections stay open.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPMaxIdleConnsPerHost caps pooled connections per node.
	HTTPMaxIdleConnsPerHost = 4
)

// Server timeouts for the statd HTTP server.
const (
	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)
