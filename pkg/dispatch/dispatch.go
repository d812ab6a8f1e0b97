/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package dispatch

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mtaops/statctl/pkg/cluster"
	"github.com/mtaops/statctl/pkg/defaults"
	"github.com/mtaops/statctl/pkg/errors"
	"github.com/mtaops/statctl/pkg/query"
)

// DefaultTimeout is the shared per-query deadline when none is configured.
const DefaultTimeout = defaults.QueryTimeout

// Dispatcher sends one query to a set of nodes concurrently and collects
// their results. A Dispatcher holds no state across queries and is safe for
// concurrent use.
type Dispatcher struct {
	Transport Transport
	// Timeout is the shared deadline applied to every node interaction of
	// one query. Zero means DefaultTimeout.
	Timeout time.Duration
	Logger  *slog.Logger
}

// New creates a Dispatcher with the given transport and the default timeout.
func New(transport Transport) *Dispatcher {
	return &Dispatcher{Transport: transport}
}

// Dispatch sends spec to every node and returns a result map keyed by node
// name, with exactly one entry per targeted node.
//
// Per-node errors are recorded in the map, never raised. Dispatch returns a
// non-nil error in exactly two cases: the caller's context was cancelled,
// or every targeted node failed (ALL_NODES_FAILED). In the latter case the
// result map is still returned so the failures can be reported.
func (d *Dispatcher) Dispatch(ctx context.Context, spec query.Spec, nodes []cluster.Node) (map[string]Result, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	start := time.Now()
	defer func() {
		dispatchDuration.Observe(time.Since(start).Seconds())
	}()

	logger.Debug("dispatching query",
		"query", spec.String(),
		"nodes", len(nodes),
		"timeout", timeout)

	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Each node's unit of work writes its own map entry exactly once; late
	// responses arriving after the deadline marked the node as timed out
	// are discarded by the write-once rule.
	var mu sync.Mutex
	results := make(map[string]Result, len(nodes))
	record := func(res Result) {
		mu.Lock()
		defer mu.Unlock()
		if _, exists := results[res.Node.Name]; !exists {
			results[res.Node.Name] = res
		}
	}

	var wg sync.WaitGroup
	for _, node := range nodes {
		wg.Add(1)
		go func(node cluster.Node) {
			defer wg.Done()
			record(d.queryNode(qctx, logger, node, spec))
		}(node)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-qctx.Done():
		if ctx.Err() != nil {
			// Cancelled by the caller: stop waiting, discard stragglers.
			logger.Debug("query cancelled", "error", ctx.Err())
			return nil, ctx.Err()
		}
		// Shared deadline elapsed. Nodes that have not answered are
		// recorded as timed out; their units of work are abandoned.
		mu.Lock()
		for _, node := range nodes {
			if _, ok := results[node.Name]; !ok {
				results[node.Name] = Result{
					Node: node,
					Err:  errors.New(errors.ErrCodeTimeout, "node did not answer before the query deadline"),
				}
			}
		}
		mu.Unlock()
	}

	matched := 0
	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
			dispatchNodesTotal.WithLabelValues(string(res.Err.Code)).Inc()
		} else {
			matched += len(res.Samples)
			dispatchNodesTotal.WithLabelValues("ok").Inc()
		}
	}
	dispatchMatchedSamples.Set(float64(matched))

	logger.Debug("query complete",
		"nodes", len(nodes),
		"failed", failed,
		"samples", matched,
		"duration", time.Since(start))

	if len(nodes) > 0 && failed == len(nodes) {
		return results, errors.NewWithContext(errors.ErrCodeAllNodesFailed,
			"no targeted node produced data",
			map[string]any{"nodes": len(nodes)})
	}
	return results, nil
}

// queryNode runs one node's unit of work: transport, failure
// classification, and central matching.
func (d *Dispatcher) queryNode(ctx context.Context, logger *slog.Logger, node cluster.Node, spec query.Spec) Result {
	samples, err := d.Transport.Send(ctx, node, spec)
	if err != nil {
		serr := classify(err)
		logger.Debug("node query failed",
			"node", node.Name,
			"code", serr.Code,
			"error", err)
		return Result{Node: node, Err: serr}
	}

	matched := query.Match(spec, samples)
	for i := range matched {
		matched[i].Origin = node.Name
	}
	return Result{Node: node, Samples: matched}
}

// classify maps a transport failure onto the per-node error taxonomy.
func classify(err error) *errors.StructuredError {
	var serr *errors.StructuredError
	if stderrors.As(err, &serr) {
		switch serr.Code {
		case errors.ErrCodeUnreachable, errors.ErrCodeTimeout, errors.ErrCodeProtocol:
			return serr
		}
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.Wrap(errors.ErrCodeTimeout, "node did not answer before the query deadline", err)
	}
	return errors.Wrap(errors.ErrCodeUnreachable, "node could not be reached", err)
}
