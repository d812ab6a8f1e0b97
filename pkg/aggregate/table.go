/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package aggregate

import "strconv"

// NoValue marks a node without a sample for a row. Rendering it
// distinctly from "0" keeps absence visible in tabular output.
const NoValue = "-"

// TableHeader implements serializer.Tabler. Per-node reports get one
// column per responsive node plus a trailing total; sum reports
// collapse to a single column.
func (r *Report) TableHeader() []string {
	if r.Sum != nil {
		return []string{"sum"}
	}
	header := make([]string, 0, len(r.Nodes)+2)
	header = append(header, "counter")
	header = append(header, r.Nodes...)
	header = append(header, "total")
	return header
}

// TableRows implements serializer.Tabler.
func (r *Report) TableRows() [][]string {
	if r.Sum != nil {
		return [][]string{{formatValue(*r.Sum)}}
	}

	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		cells := make([]string, 0, len(r.Nodes)+2)
		cells = append(cells, row.Key.String())
		for _, node := range r.Nodes {
			if v, present := row.PerNode[node]; present {
				cells = append(cells, formatValue(v))
			} else {
				cells = append(cells, NoValue)
			}
		}
		cells = append(cells, formatValue(row.Total))
		rows = append(rows, cells)
	}
	return rows
}

// formatValue renders counters without a trailing ".0" for whole
// numbers, matching what the node daemon reports for integral counts.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
