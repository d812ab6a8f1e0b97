/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Node is one cluster member capable of reporting its own counters.
type Node struct {
	// Name is the operator-facing node identifier, unique within the inventory.
	Name string `json:"name" yaml:"name"`
	// Address is the host:port of the node's statd HTTP endpoint.
	Address string `json:"address" yaml:"address"`
	// Cluster is the optional named group the node belongs to.
	Cluster string `json:"cluster,omitempty" yaml:"cluster,omitempty"`
}

// Inventory holds every configured node, indexed by name and by cluster.
type Inventory struct {
	nodes    map[string]Node
	clusters map[string][]string
}

// nodeEntry is the file shape of one node definition.
type nodeEntry struct {
	Address string `mapstructure:"address"`
	Cluster string `mapstructure:"cluster"`
}

// Load reads the inventory from the given config file, or discovers one in
// the default locations when path is empty. STATCTL_* environment variables
// override file values.
func Load(path string) (*Inventory, error) {
	v := viper.New()
	v.SetEnvPrefix("STATCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(".statctl")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/statctl")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("no inventory config found (create ~/.statctl.yaml or pass --config): %w", err)
		}
	}

	entries := make(map[string]nodeEntry)
	if err := v.UnmarshalKey("nodes", &entries); err != nil {
		return nil, fmt.Errorf("invalid nodes section: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("inventory config %s defines no nodes", v.ConfigFileUsed())
	}

	inv := &Inventory{
		nodes:    make(map[string]Node, len(entries)),
		clusters: make(map[string][]string),
	}
	for name, e := range entries {
		if e.Address == "" {
			return nil, fmt.Errorf("node %q has no address", name)
		}
		n := Node{Name: name, Address: e.Address, Cluster: e.Cluster}
		inv.nodes[name] = n
		if e.Cluster != "" {
			inv.clusters[e.Cluster] = append(inv.clusters[e.Cluster], name)
		}
	}
	return inv, nil
}

// New builds an inventory directly from node definitions. Primarily useful
// in tests and for programmatic callers.
func New(nodes ...Node) *Inventory {
	inv := &Inventory{
		nodes:    make(map[string]Node, len(nodes)),
		clusters: make(map[string][]string),
	}
	for _, n := range nodes {
		inv.nodes[n.Name] = n
		if n.Cluster != "" {
			inv.clusters[n.Cluster] = append(inv.clusters[n.Cluster], n.Name)
		}
	}
	return inv
}

// Len returns the number of configured nodes.
func (inv *Inventory) Len() int {
	return len(inv.nodes)
}

// Node looks up one node by name.
func (inv *Inventory) Node(name string) (Node, bool) {
	n, ok := inv.nodes[name]
	return n, ok
}

// Clusters returns the configured cluster names in sorted order.
func (inv *Inventory) Clusters() []string {
	names := make([]string, 0, len(inv.clusters))
	for c := range inv.clusters {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}

// All returns every configured node in cluster-then-name order.
func (inv *Inventory) All() []Node {
	targets := make([]Node, 0, len(inv.nodes))
	for _, n := range inv.nodes {
		targets = append(targets, n)
	}
	sortNodes(targets)
	return targets
}

// Resolve turns node and cluster selections into a target set. With no
// selections every configured node is targeted. Unknown names fail rather
// than silently shrinking the target set. The result is deduplicated and
// ordered by cluster then node name.
func (inv *Inventory) Resolve(nodes, clusters []string) ([]Node, error) {
	return inv.ResolveSlice(nodes, clusters, "")
}

// ResolveSlice is Resolve with a positional slice applied on top. The slice
// narrows the whole inventory when no selections are given, or each selected
// cluster's member list independently; explicitly named nodes are never
// sliced away.
func (inv *Inventory) ResolveSlice(nodes, clusters []string, sliceExpr string) ([]Node, error) {
	if len(nodes) == 0 && len(clusters) == 0 {
		return applySlice(inv.All(), sliceExpr)
	}

	seen := make(map[string]bool)
	targets := make([]Node, 0, len(nodes))

	for _, c := range clusters {
		members, ok := inv.clusters[c]
		if !ok {
			return nil, fmt.Errorf("unknown cluster %q (available: %s)",
				c, strings.Join(inv.Clusters(), ", "))
		}
		cnodes := make([]Node, 0, len(members))
		for _, name := range members {
			cnodes = append(cnodes, inv.nodes[name])
		}
		sortNodes(cnodes)
		cnodes, err := applySlice(cnodes, sliceExpr)
		if err != nil {
			return nil, err
		}
		for _, n := range cnodes {
			if !seen[n.Name] {
				seen[n.Name] = true
				targets = append(targets, n)
			}
		}
	}

	for _, name := range nodes {
		n, ok := inv.nodes[name]
		if !ok {
			return nil, fmt.Errorf("unknown node %q", name)
		}
		if !seen[name] {
			seen[name] = true
			targets = append(targets, n)
		}
	}

	sortNodes(targets)
	return targets, nil
}

// applySlice narrows an ordered node list by a positional expression:
// a single 1-based index ("2"), or a 1-based inclusive range with an
// optional step ("1:3", "2:", ":4:2"). An empty expression selects
// everything.
func applySlice(nodes []Node, expr string) ([]Node, error) {
	if expr == "" {
		return nodes, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > 3 {
		return nil, fmt.Errorf("invalid slice %q", expr)
	}
	vals := make([]int, len(parts))
	set := make([]bool, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid slice %q: positions are positive integers", expr)
		}
		vals[i] = n
		set[i] = true
	}

	if len(parts) == 1 {
		if !set[0] {
			return nil, fmt.Errorf("invalid slice %q", expr)
		}
		if vals[0] > len(nodes) {
			return nil, fmt.Errorf("slice index %d out of range (%d nodes)", vals[0], len(nodes))
		}
		return nodes[vals[0]-1 : vals[0]], nil
	}

	start, stop, step := 0, len(nodes), 1
	if set[0] {
		start = vals[0] - 1
	}
	if set[1] {
		stop = vals[1]
	}
	if len(parts) == 3 && set[2] {
		step = vals[2]
	}
	if stop > len(nodes) {
		stop = len(nodes)
	}

	out := make([]Node, 0, len(nodes))
	for i := start; i < stop; i += step {
		out = append(out, nodes[i])
	}
	return out, nil
}

func sortNodes(nodes []Node) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Cluster != nodes[j].Cluster {
			return nodes[i].Cluster < nodes[j].Cluster
		}
		return nodes[i].Name < nodes[j].Name
	})
}
