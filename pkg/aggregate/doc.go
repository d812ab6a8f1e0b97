/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package aggregate merges per-node dispatch results into the report
// returned for one cluster counter query.
//
// In per-node mode every distinct counter key observed across the
// cluster becomes one row carrying that key's value on each node that
// reported it. A node without a value for a key is absent from the
// row's node map rather than recorded as zero; absence and zero are
// different answers. In sum mode all matched values collapse into a
// single scalar.
//
// Nodes the dispatcher recorded as failed are listed on the report but
// contribute nothing to rows or sums. Row order is deterministic:
// lexicographic by key with null components sorting first.
package aggregate
