/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mtaops/statctl/pkg/cluster"
	"github.com/mtaops/statctl/pkg/serializer"
)

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format %q (supported: %s)",
			cmd.String("format"), serializer.SupportedFormats())
	}
	return f, nil
}

// resolveTargets loads the inventory and applies --node/--cluster/--slice
// selections.
func resolveTargets(cmd *cli.Command) ([]cluster.Node, error) {
	inv, err := cluster.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	return inv.ResolveSlice(cmd.StringSlice("node"), cmd.StringSlice("cluster"), cmd.String("slice"))
}
