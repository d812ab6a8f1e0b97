// Package query turns raw command tokens into typed counter queries and
// matches those queries against node-reported samples.
//
// A query is either named (one exact daemon counter name, or empty for list
// mode) or keyed (three key patterns for application counters). Keyed
// patterns are a tagged tri-state: a literal value, the wildcard marker "."
// accepting anything including absent components, or the blank marker "-"
// accepting only explicitly absent components.
//
// The reserved markers are part of the external query language and are
// never reinterpreted:
//
//	statctl stat --app mail:total . -
//
// queries application counters whose first component is exactly
// "mail:total", with any second component, and no third component.
//
// Matching is a pure, order-preserving filter with a single entry point that
// dispatches on the query form, so named and keyed queries share the same
// fan-out and aggregation pipeline downstream.
package query
