/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package aggregate

import (
	"encoding/json"
	"sort"

	"github.com/mtaops/statctl/pkg/counter"
	"github.com/mtaops/statctl/pkg/dispatch"
	"github.com/mtaops/statctl/pkg/errors"
	"github.com/mtaops/statctl/pkg/header"
)

// APIVersion is the schema version stamped on every report.
const APIVersion = "v1"

// Row is one distinct counter key observed across the cluster, with the
// value each node reported for it. A node missing from PerNode had no
// sample for this key; that is not the same as reporting zero.
type Row struct {
	Key     counter.Key
	PerNode map[string]float64
	Total   float64
}

type rowWire struct {
	Name    string              `json:"name,omitempty" yaml:"name,omitempty"`
	Key     []counter.Component `json:"key,omitempty" yaml:"key,omitempty,flow"`
	PerNode map[string]float64  `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Total   float64             `json:"total" yaml:"total"`
}

func (r Row) wire() rowWire {
	w := rowWire{PerNode: r.PerNode, Total: r.Total}
	switch r.Key.Form() {
	case counter.FormNamed:
		w.Name = r.Key.Name()
	case counter.FormKeyed:
		parts := r.Key.Parts()
		w.Key = parts[:]
	}
	return w
}

// MarshalJSON emits the named form as {"name": ...} and the keyed form
// as {"key": [...]}, mirroring the sample wire format.
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

// MarshalYAML implements yaml.Marshaler.
func (r Row) MarshalYAML() (any, error) {
	return r.wire(), nil
}

// Failure records one node the dispatcher could not obtain data from.
type Failure struct {
	Node    string           `json:"node" yaml:"node"`
	Code    errors.ErrorCode `json:"code" yaml:"code"`
	Message string           `json:"message" yaml:"message"`
}

// Report is the final output of one cluster counter query. Exactly one
// of Rows and Sum is populated, depending on the aggregation mode.
type Report struct {
	Header header.Header `json:"header" yaml:"header"`

	// Nodes lists every node that answered, sorted, including nodes
	// that matched nothing.
	Nodes []string `json:"nodes,omitempty" yaml:"nodes,omitempty"`

	Rows     []Row     `json:"rows,omitempty" yaml:"rows,omitempty"`
	Sum      *float64  `json:"sum,omitempty" yaml:"sum,omitempty"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Partial reports whether any targeted node failed to contribute.
func (r *Report) Partial() bool {
	return len(r.Failures) > 0
}

// Aggregate merges a completed dispatch result map into a Report. The
// input is treated as an immutable snapshot; Aggregate holds no state
// across calls, so repeated runs over the same map produce identical
// row ordering and values.
//
// Failed nodes are listed on the report and excluded from rows and
// sums. A failed node is unknown, never zero.
func Aggregate(results map[string]dispatch.Result, sumOnly bool) *Report {
	rep := &Report{}
	rep.Header.Init(header.KindStatReport, APIVersion, "")

	for node, res := range results {
		if res.Failed() {
			rep.Failures = append(rep.Failures, Failure{
				Node:    node,
				Code:    res.Err.Code,
				Message: res.Err.Message,
			})
			continue
		}
		rep.Nodes = append(rep.Nodes, node)
	}
	sort.Strings(rep.Nodes)
	sort.Slice(rep.Failures, func(i, j int) bool {
		return rep.Failures[i].Node < rep.Failures[j].Node
	})

	if sumOnly {
		sum := sumValues(results)
		rep.Sum = &sum
		return rep
	}

	rep.Rows = buildRows(results)
	return rep
}

// sumValues collapses every matched sample across all responsive nodes
// into one scalar. Summation flattens identity: a node with no matches
// and a node reporting an explicit zero contribute the same amount.
func sumValues(results map[string]dispatch.Result) float64 {
	var sum float64
	for _, res := range results {
		if res.Failed() {
			continue
		}
		for _, s := range res.Samples {
			sum += s.Value
		}
	}
	return sum
}

// buildRows produces one row per distinct key, ordered lexicographically
// with null components first so identical queries against an unchanged
// cluster render byte-identically.
func buildRows(results map[string]dispatch.Result) []Row {
	byKey := make(map[counter.Key]*Row)
	for node, res := range results {
		if res.Failed() {
			continue
		}
		for _, s := range res.Samples {
			row, ok := byKey[s.Key]
			if !ok {
				row = &Row{Key: s.Key, PerNode: make(map[string]float64)}
				byKey[s.Key] = row
			}
			row.PerNode[node] = s.Value
		}
	}

	rows := make([]Row, 0, len(byKey))
	for _, row := range byKey {
		for _, v := range row.PerNode {
			row.Total += v
		}
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key.Compare(rows[j].Key) < 0
	})
	return rows
}
