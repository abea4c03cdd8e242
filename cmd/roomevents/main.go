// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/bureau-foundation/roomevents/cmd/roomevents/commands"
	"github.com/bureau-foundation/roomevents/lib/process"
)

func main() {
	if err := run(); err != nil {
		// Commands that report their own failures (like decode with bad
		// events in the batch) return an error with an exit code, and
		// process.Exit does not print a redundant "error:" line for
		// those.
		process.Exit(err)
	}
}

func run() error {
	return commands.Root(commands.StandardStreams()).Execute(os.Args[1:])
}
