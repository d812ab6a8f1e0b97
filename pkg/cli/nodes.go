/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"sync"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/mtaops/statctl/pkg/cluster"
	"github.com/mtaops/statctl/pkg/header"
	"github.com/mtaops/statctl/pkg/serializer"
	"github.com/mtaops/statctl/pkg/transport"
)

// NodeEntry is one inventory line, optionally annotated with the
// node's reachability.
type NodeEntry struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Cluster string `json:"cluster,omitempty" yaml:"cluster,omitempty"`
	Status  string `json:"status,omitempty" yaml:"status,omitempty"`
}

// NodeReport is the rendered inventory listing.
type NodeReport struct {
	Header  header.Header `json:"header" yaml:"header"`
	Nodes   []NodeEntry   `json:"nodes" yaml:"nodes"`
	checked bool
}

// TableHeader implements serializer.Tabler.
func (r *NodeReport) TableHeader() []string {
	if r.checked {
		return []string{"name", "address", "cluster", "status"}
	}
	return []string{"name", "address", "cluster"}
}

// TableRows implements serializer.Tabler.
func (r *NodeReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Nodes))
	for _, n := range r.Nodes {
		c := n.Cluster
		if c == "" {
			c = "-"
		}
		row := []string{n.Name, n.Address, c}
		if r.checked {
			row = append(row, n.Status)
		}
		rows = append(rows, row)
	}
	return rows
}

func nodesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "nodes",
		EnableShellCompletion: true,
		Usage:                 "Show the resolved node inventory",
		Description: `Show the nodes statctl would target, after applying --node and
--cluster selections, in the same order queries visit them. With
--check every node's health endpoint is probed concurrently and a
status column is added.`,
		Flags: []cli.Flag{
			nodeFlag,
			clusterFlag,
			sliceFlag,
			timeoutFlag,
			outputFlag,
			formatFlag,
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Probe each node's health endpoint",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			targets, err := resolveTargets(cmd)
			if err != nil {
				return err
			}

			rep := &NodeReport{Nodes: make([]NodeEntry, len(targets))}
			for i, n := range targets {
				rep.Nodes[i] = NodeEntry{Name: n.Name, Address: n.Address, Cluster: n.Cluster}
			}
			rep.Header.Init(header.KindNodeReport, "v1", version)

			if cmd.Bool("check") {
				rep.checked = true
				checkNodes(ctx, cmd.Duration("timeout"), targets, rep.Nodes)
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer w.Close()
			return w.Serialize(ctx, rep)
		},
	}
}

// checkNodes probes every target concurrently under one shared
// deadline and records the outcome on the matching entry.
func checkNodes(ctx context.Context, timeout time.Duration, targets []cluster.Node, entries []NodeEntry) {
	client := transport.NewClient()
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var wg sync.WaitGroup
	for i, n := range targets {
		wg.Add(1)
		go func(i int, n cluster.Node) {
			defer wg.Done()
			if err := client.Ping(probeCtx, n); err != nil {
				entries[i].Status = "unreachable"
				return
			}
			entries[i].Status = "ok"
		}(i, n)
	}
	wg.Wait()
}
