/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package dispatch

import (
	"context"

	"github.com/mtaops/statctl/pkg/cluster"
	"github.com/mtaops/statctl/pkg/counter"
	"github.com/mtaops/statctl/pkg/errors"
	"github.com/mtaops/statctl/pkg/query"
)

// Transport delivers one query to one node and returns its raw samples.
// Implementations must honor context cancellation and should classify
// failures with the structured codes NODE_UNREACHABLE, NODE_TIMEOUT, or
// PROTOCOL_ERROR; anything else is classified by the dispatcher.
type Transport interface {
	Send(ctx context.Context, node cluster.Node, spec query.Spec) ([]counter.Sample, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, node cluster.Node, spec query.Spec) ([]counter.Sample, error)

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, node cluster.Node, spec query.Spec) ([]counter.Sample, error) {
	return f(ctx, node, spec)
}

// Result is one node's outcome for a query: either its matched samples or
// a recorded error, never both.
type Result struct {
	// Node is the queried cluster member.
	Node cluster.Node
	// Samples are the node's matched samples, in the node's reported order.
	// Nil when Err is set.
	Samples []counter.Sample
	// Err records why the node produced no data. Nil on success.
	Err *errors.StructuredError
}

// Failed reports whether the node produced no usable data.
func (r Result) Failed() bool {
	return r.Err != nil
}
