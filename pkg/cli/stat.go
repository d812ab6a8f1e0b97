/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mtaops/statctl/pkg/aggregate"
	"github.com/mtaops/statctl/pkg/dispatch"
	"github.com/mtaops/statctl/pkg/query"
	"github.com/mtaops/statctl/pkg/serializer"
	"github.com/mtaops/statctl/pkg/transport"
)

func statCmd() *cli.Command {
	return &cli.Command{
		Name:                  "stat",
		EnableShellCompletion: true,
		Usage:                 "Query counters on the targeted nodes",
		ArgsUsage:             "[name | key patterns...]",
		Description: `Query counters across the cluster and merge the answers.

Without --app the arguments name one daemon counter exactly; with no
argument every named counter is listed:

  statctl stat queue-size
  statctl stat

With --app the arguments are up to three key patterns addressing
application counters. A literal matches that exact component, "."
matches any value including none, and "-" matches only an explicitly
absent component; omitted trailing patterns default to ".":

  statctl stat --app mail:total . -
  statctl stat --app mail:total eu

Each row shows one matched counter with its per-node values ("-" marks
a node without that counter, which is not the same as 0) and the row
total. With --sum everything collapses into a single cluster-wide
number.

Failed nodes are reported on stderr and excluded from the results; the
exit code is 99 when results are partial, unless --ignore-partial.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "app",
				Aliases: []string{"a"},
				Usage:   "Query keyed application counters instead of named daemon counters",
			},
			&cli.BoolFlag{
				Name:  "sum",
				Usage: "Collapse all matched values into one cluster-wide total",
			},
			&cli.BoolFlag{
				Name:  "ignore-partial",
				Usage: "Exit 0 even when some nodes failed",
			},
			nodeFlag,
			clusterFlag,
			sliceFlag,
			timeoutFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			spec, err := parseQuery(cmd)
			if err != nil {
				return err
			}

			targets, err := resolveTargets(cmd)
			if err != nil {
				return err
			}

			d := dispatch.New(transport.NewClient())
			d.Timeout = cmd.Duration("timeout")

			results, err := d.Dispatch(ctx, spec, targets)
			if err != nil && results == nil {
				return err
			}
			allFailed := err != nil

			rep := aggregate.Aggregate(results, cmd.Bool("sum"))
			rep.Header.Metadata["version"] = version
			rep.Header.Metadata["query"] = spec.String()

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer w.Close()
			if err := w.Serialize(ctx, rep); err != nil {
				return err
			}

			for _, f := range rep.Failures {
				fmt.Fprintf(os.Stderr, "node %s failed: [%s] %s\n", f.Node, f.Code, f.Message)
			}
			if allFailed {
				return fmt.Errorf("no node answered the query")
			}
			if rep.Partial() && !cmd.Bool("ignore-partial") {
				return errPartialResults
			}
			return nil
		},
	}
}

// parseQuery normalizes the command arguments into a query spec. The
// addressing form comes from the command context: --app selects keyed
// application counters, otherwise the named daemon form applies.
func parseQuery(cmd *cli.Command) (query.Spec, error) {
	tokens := cmd.Args().Slice()
	if cmd.Bool("app") {
		return query.ParseKeyed(tokens)
	}
	return query.ParseNamed(tokens)
}
