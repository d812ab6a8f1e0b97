/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package defaults provides centralized configuration constants for statctl.
//
// This package defines the timeout values used across the codebase.
// Centralizing these values ensures consistency and makes tuning easier.
//
// Timeouts are organized by component:
//
//   - Query timeouts: the shared deadline for one cluster counter query
//   - HTTP client timeouts: for the client side of the node protocol
//   - Server timeouts: for the statd HTTP server
//
// Import and use constants directly:
//
//	import "github.com/mtaops/statctl/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.QueryTimeout)
//	defer cancel()
package defaults
