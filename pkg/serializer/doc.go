/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package serializer renders query reports and other statctl resources
// to the supported output formats.
//
// The package supports three main output formats:
//   - JSON: machine-readable structured data with proper indentation
//   - YAML: human-readable configuration format
//   - Table: human-readable tabular output
//
// Usage:
//
//	writer := serializer.NewWriter(serializer.FormatTable, os.Stdout)
//	defer writer.Close() // Important: close to release file handles
//	if err := writer.Serialize(ctx, report); err != nil {
//		log.Fatal(err)
//	}
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//
// Types that know their own tabular shape implement Tabler; everything
// else is flattened generically for table output.
package serializer

import "context"

// Serializer is an interface for writing statctl resources.
// Implementations of this interface can serialize data to various
// formats such as JSON, YAML, or tabular text.
type Serializer interface {
	Serialize(ctx context.Context, resource any) error
}

// Closer is an optional interface that Serializers can implement
// if they need to release resources (e.g., close file handles).
type Closer interface {
	Close() error
}

// Tabler is implemented by resources that render themselves as a
// table. Header cells are upcased by the writer; Rows must all carry
// len(Header) cells.
type Tabler interface {
	TableHeader() []string
	TableRows() [][]string
}
