// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the roomevents command tree.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/roomevents/cmd/roomevents/cli"
	"github.com/bureau-foundation/roomevents/lib/version"
)

// Streams are the standard streams commands read from and write to.
// Tests substitute buffers.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StandardStreams returns the process's stdin, stdout, and stderr.
func StandardStreams() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Root builds and returns the complete roomevents command tree.
func Root(streams Streams) *cli.Command {
	return &cli.Command{
		Name: "roomevents",
		Description: `roomevents: decode, inspect, redact, and archive Matrix room events.

Events are read as a single JSON object, a JSON array of events, or
newline-delimited JSON (one event per line). Known event kinds come
from the embedded kind table unless --registry names another one.`,
		HelpOutput: streams.Stderr,
		Subcommands: []*cli.Command{
			decodeCommand(streams),
			encodeCommand(streams),
			canonicalCommand(streams),
			fingerprintCommand(streams),
			redactCommand(streams),
			composeCommand(streams),
			kindsCommand(streams),
			archiveCommand(streams),
			keygenCommand(streams),
			versionCommand(streams),
		},
		Examples: []cli.Example{
			{
				Description: "Summarize a sync batch",
				Command:     "roomevents decode timeline.json",
			},
			{
				Description: "Redact events and archive them, sealing the originals",
				Command:     "roomevents redact --archive events.archive spam.ndjson",
			},
			{
				Description: "Show the kind table in effect",
				Command:     "roomevents kinds --registry kinds.yaml",
			},
			{
				Description: "Compose a markdown message event",
				Command:     "roomevents compose --sender @alice:example.org --room '!room:example.org' --markdown '**hello**'",
			},
		},
	}
}

func versionCommand(streams Streams) *cli.Command {
	var full bool
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flagSet.BoolVar(&full, "full", false, "include Go version and platform")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("version takes no arguments, got %q", args[0])
			}
			if full {
				fmt.Fprintf(streams.Stdout, "roomevents %s\n", version.Full())
				return nil
			}
			fmt.Fprintf(streams.Stdout, "roomevents %s\n", version.Info())
			return nil
		},
	}
}
