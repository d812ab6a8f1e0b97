// Package dispatch fans one counter query out to every targeted node
// concurrently and collects per-node results under a shared deadline.
//
// Each node interaction is independent: one slow or dead node never blocks
// or invalidates another node's result. Per-node failures (unreachable,
// timeout, protocol error) are recorded in the result map as data rather
// than raised; the only query-level failures are a cancelled context and
// the case where every targeted node errored.
//
// The dispatcher applies the query matcher centrally, after transport.
// Matching is a pure idempotent filter, so nodes that pre-filter
// server-side produce identical output.
package dispatch
