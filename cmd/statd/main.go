/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"log"

	"github.com/mtaops/statctl/pkg/daemon"
	"github.com/mtaops/statctl/pkg/logging"
)

func main() {
	logging.SetDefaultStructuredLogger("statd", "")
	if err := daemon.Run(); err != nil {
		log.Fatal(err)
	}
}
