/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package daemon implements statd, the node-side counter service.
//
// Each cluster node runs one statd instance. Local processes increment
// named and keyed counters through the HTTP API; the statctl query
// side asks for the subset of counters matching a query and aggregates
// the answers across nodes.
//
// The server follows the usual service shape: a middleware chain
// (request IDs, rate limiting, panic recovery, request logging,
// Prometheus instrumentation), health and readiness endpoints, and
// graceful shutdown driven by SIGINT/SIGTERM with systemd readiness
// notification when running under systemd.
package daemon
