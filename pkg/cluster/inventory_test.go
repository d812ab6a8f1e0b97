/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInventory() *Inventory {
	return New(
		Node{Name: "mta-2", Address: "10.1.0.12:8080", Cluster: "eu"},
		Node{Name: "mta-1", Address: "10.1.0.11:8080", Cluster: "eu"},
		Node{Name: "relay-1", Address: "10.2.0.11:8080", Cluster: "us"},
		Node{Name: "standalone", Address: "10.3.0.1:8080"},
	)
}

func names(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statctl.yaml")
	content := `
nodes:
  mta-1:
    address: "10.1.0.11:8080"
    cluster: eu
  mta-2:
    address: "10.1.0.12:8080"
    cluster: eu
  relay-1:
    address: "10.2.0.11:8080"
    cluster: us
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	inv, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, inv.Len())

	n, ok := inv.Node("relay-1")
	require.True(t, ok, "relay-1 not found")
	assert.Equal(t, "10.2.0.11:8080", n.Address)
	assert.Equal(t, "us", n.Cluster)

	assert.Equal(t, []string{"eu", "us"}, inv.Clusters())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "missing config file")

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes:\n  broken:\n    cluster: eu\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err, "node without address")

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("nodes: {}\n"), 0o600))
	_, err = Load(empty)
	assert.Error(t, err, "empty inventory")
}

func TestResolveAll(t *testing.T) {
	inv := testInventory()
	targets, err := inv.Resolve(nil, nil)
	require.NoError(t, err)
	// Cluster-then-name order; un-clustered nodes sort first on the empty
	// cluster name.
	assert.Equal(t, []string{"standalone", "mta-1", "mta-2", "relay-1"}, names(targets))
}

func TestResolveSelections(t *testing.T) {
	inv := testInventory()

	targets, err := inv.Resolve(nil, []string{"eu"})
	require.NoError(t, err)
	assert.Equal(t, []string{"mta-1", "mta-2"}, names(targets))

	// Node and cluster selections union, deduplicated.
	targets, err = inv.Resolve([]string{"mta-1", "relay-1"}, []string{"eu"})
	require.NoError(t, err)
	assert.Len(t, targets, 3)
}

func TestResolveSlice(t *testing.T) {
	inv := testInventory()

	tests := []struct {
		name  string
		slice string
		want  []string
	}{
		{name: "single index", slice: "2", want: []string{"mta-1"}},
		{name: "inclusive range", slice: "1:2", want: []string{"standalone", "mta-1"}},
		{name: "open end", slice: "3:", want: []string{"mta-2", "relay-1"}},
		{name: "step", slice: "1:4:2", want: []string{"standalone", "mta-2"}},
		{name: "range past end clamps", slice: "3:9", want: []string{"mta-2", "relay-1"}},
		{name: "empty selects all", slice: "", want: []string{"standalone", "mta-1", "mta-2", "relay-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, err := inv.ResolveSlice(nil, nil, tt.slice)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(targets))
		})
	}
}

func TestResolveSlicePerCluster(t *testing.T) {
	inv := testInventory()

	// The slice narrows each selected cluster independently.
	targets, err := inv.ResolveSlice(nil, []string{"eu", "us"}, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"mta-1", "relay-1"}, names(targets))

	// Named nodes are never sliced away.
	targets, err = inv.ResolveSlice([]string{"mta-2"}, []string{"eu"}, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"mta-1", "mta-2"}, names(targets))
}

func TestResolveSliceErrors(t *testing.T) {
	inv := testInventory()

	for _, expr := range []string{"0", "-1", "x", "1:2:3:4", "9"} {
		_, err := inv.ResolveSlice(nil, nil, expr)
		assert.Error(t, err, "slice %q", expr)
	}
}

func TestResolveUnknown(t *testing.T) {
	inv := testInventory()
	_, err := inv.Resolve([]string{"nope"}, nil)
	assert.Error(t, err, "unknown node")
	_, err = inv.Resolve(nil, []string{"apac"})
	assert.Error(t, err, "unknown cluster")
}
