/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"github.com/mtaops/statctl/pkg/counter"
	"github.com/mtaops/statctl/pkg/errors"
	"github.com/mtaops/statctl/pkg/query"
)

// Paths served by statd and dialed by the client.
const (
	QueryPath     = "/v1/counters/query"
	IncrementPath = "/v1/counters/incr"
	HealthPath    = "/health"
)

// QueryRequest is the body POSTed to QueryPath.
type QueryRequest struct {
	Spec query.Spec `json:"spec"`
}

// QueryResponse is the body statd answers a query with. Samples carry
// no origin; the querying side stamps the node identity itself.
type QueryResponse struct {
	Node    string           `json:"node,omitempty"`
	Samples []counter.Sample `json:"samples"`
}

// IncrementRequest is the body POSTed to IncrementPath. Exactly one of
// Name and Keys addresses the counter. A zero Delta is treated as 1.
type IncrementRequest struct {
	Name  string              `json:"name,omitempty"`
	Keys  []counter.Component `json:"keys,omitempty"`
	Delta float64             `json:"delta,omitempty"`
}

// IncrementResponse echoes the counter's value after the increment.
type IncrementResponse struct {
	Value float64 `json:"value"`
}

// ErrorResponse is the body statd answers any failed request with.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the structured code and message of a daemon-side
// failure across the wire, plus the request ID for log correlation.
type ErrorBody struct {
	Code      errors.ErrorCode `json:"code"`
	Message   string           `json:"message"`
	RequestID string           `json:"requestId,omitempty"`
	Details   map[string]any   `json:"details,omitempty"`
}
