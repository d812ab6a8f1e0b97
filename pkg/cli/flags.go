/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"github.com/urfave/cli/v3"

	"github.com/mtaops/statctl/pkg/dispatch"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   "Output format: json, yaml, or table",
		Sources: cli.EnvVars("STATCTL_FORMAT"),
		Value:   "table",
	}

	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "Inventory config file (default: discover ~/.statctl.yaml)",
		Sources: cli.EnvVars("STATCTL_CONFIG"),
	}

	nodeFlag = &cli.StringSliceFlag{
		Name:    "node",
		Aliases: []string{"n"},
		Usage:   "Target node by inventory name (can be repeated)",
	}

	clusterFlag = &cli.StringSliceFlag{
		Name:    "cluster",
		Aliases: []string{"c"},
		Usage:   "Target every node in a cluster group (can be repeated)",
	}

	sliceFlag = &cli.StringFlag{
		Name:    "slice",
		Aliases: []string{"s"},
		Usage:   "Narrow targets positionally: index \"2\" or 1-based inclusive range \"1:3[:step]\", applied per cluster",
	}

	timeoutFlag = &cli.DurationFlag{
		Name:    "timeout",
		Usage:   "Shared deadline for the whole query",
		Sources: cli.EnvVars("STATCTL_TIMEOUT"),
		Value:   dispatch.DefaultTimeout,
	}
)
