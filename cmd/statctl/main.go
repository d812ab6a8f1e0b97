/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"os"

	"github.com/mtaops/statctl/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
