/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package transport implements the HTTP client side of the statd node
// protocol, along with the wire envelopes shared by client and daemon.
//
// The client satisfies the dispatch.Transport contract: one call per
// node, bound to the caller's context for the shared query deadline.
// Failures are reported in the per-node taxonomy: a connection problem
// is NODE_UNREACHABLE, a deadline is left to the dispatcher to record
// as NODE_TIMEOUT, and anything the client cannot decode is
// PROTOCOL_ERROR.
package transport
