/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mtaops/statctl/pkg/serializer"
	ver "github.com/mtaops/statctl/pkg/version"
)

// VersionReport carries the build identity, plus the parsed semantic
// version when the build was stamped with one.
type VersionReport struct {
	Name    string       `json:"name" yaml:"name"`
	Version string       `json:"version" yaml:"version"`
	Semver  *ver.Version `json:"semver,omitempty" yaml:"semver,omitempty"`
	Commit  string       `json:"commit" yaml:"commit"`
	Date    string       `json:"date" yaml:"date"`
}

// TableHeader implements serializer.Tabler.
func (r *VersionReport) TableHeader() []string {
	return []string{"name", "version", "commit", "date"}
}

// TableRows implements serializer.Tabler.
func (r *VersionReport) TableRows() [][]string {
	return [][]string{{r.Name, r.Version, r.Commit, r.Date}}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			rep := &VersionReport{
				Name:    name,
				Version: version,
				Commit:  commit,
				Date:    date,
			}
			if sv, err := ver.ParseVersion(version); err == nil {
				rep.Semver = &sv
			} else {
				slog.Debug("build version is not semantic", "version", version, "error", err)
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer w.Close()
			return w.Serialize(ctx, rep)
		},
	}
}
