/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/mtaops/statctl/pkg/logging"
)

const (
	name           = "statctl"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes. Partial results are distinguishable from outright
// failure so wrappers can decide whether incomplete data is usable.
const (
	exitOK      = 0
	exitError   = 1
	exitPartial = 99
)

// errPartialResults signals that the report was rendered but one or
// more nodes contributed nothing.
var errPartialResults = errors.New("some nodes failed; results are partial")

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Query counters across cluster nodes",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			configFlag,
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("STATCTL_LOG_LEVEL"),
				Value:   "warn",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			statCmd(),
			nodesCmd(),
			versionCmd(),
		},
	}
}

// Execute runs the CLI and returns the process exit code. It is called
// by main.main().
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		if errors.Is(err, errPartialResults) {
			fmt.Fprintln(os.Stderr, err)
			return exitPartial
		}
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	return exitOK
}
