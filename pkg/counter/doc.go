// Package counter defines the data model for cluster counters: the concrete
// keys counters are addressed by, and the samples nodes report for them.
//
// Counters come in two addressing forms that never mix within one query:
//
//   - Named: flat daemon counters addressed by a fixed string name, such as
//     "system-cpu-usage".
//   - Keyed: sparse application counters addressed by exactly three ordered
//     key components, each either a literal string or explicitly absent.
//
// A Sample pairs a concrete Key with a numeric value and the node it came
// from. Samples are immutable once received; keys are comparable values with
// a deterministic ordering (absent components sort before literals) used for
// reproducible report output.
package counter
