/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package header

import (
	"time"
)

// Kind represents the type of statctl resource.
type Kind string

// Valid Kind constants for all statctl resource types.
const (
	// KindStatReport is the aggregated result of one cluster counter query.
	KindStatReport Kind = "StatReport"
	// KindNodeReport is the per-node output of the nodes command.
	KindNodeReport Kind = "NodeReport"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k *Kind) IsValid() bool {
	switch *k {
	case KindStatReport, KindNodeReport:
		return true
	default:
		return false
	}
}

// Header contains metadata and versioning information for statctl resources.
// It follows Kubernetes-style resource conventions with Kind, APIVersion, and
// Metadata fields so reports remain self-describing when written to files.
type Header struct {
	// Kind is the type of the resource.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the schema version of the resource.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs with metadata about the resource.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init initializes the Header with the specified kind, apiVersion, and tool
// version, and stamps the creation time.
func (h *Header) Init(kind Kind, apiVersion string, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = make(map[string]string)

	h.Metadata["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata["version"] = version
	}
}
