// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/roomevents/cmd/roomevents/cli"
	"github.com/bureau-foundation/roomevents/lib/archive"
	"github.com/bureau-foundation/roomevents/lib/event"
	"github.com/bureau-foundation/roomevents/lib/redact"
)

func redactCommand(streams Streams) *cli.Command {
	var (
		shared      globals
		archivePath string
	)

	return &cli.Command{
		Name:    "redact",
		Summary: "Redact events",
		Description: `Decode events, strip each one down to what survives redaction, and
print the redacted events one per line.

The content (and prev_content of state events) keeps only the fields
its kind retains; the envelope is left as it was. Content of unknown
kinds is emptied. Redacting an already redacted event changes nothing.

With --archive, each redacted event is also appended to the archive.
When the configuration lists audit recipients, the original event is
sealed to them inside the same record and can be recovered later with
"roomevents archive reveal".`,
		Usage: "roomevents redact [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Redact a single event",
				Command:     "roomevents redact event.json",
			},
			{
				Description: "Redact and archive, sealing originals to the configured auditors",
				Command:     "roomevents redact --config roomevents.yaml --archive audit.archive spam.ndjson",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("redact", pflag.ContinueOnError)
			shared.register(flagSet)
			flagSet.StringVar(&archivePath, "archive", "", "also append the redacted events to this archive")
			return flagSet
		},
		Run: func(args []string) error {
			env, err := shared.load(streams, "redact")
			if err != nil {
				return err
			}
			results, err := env.decodeInput(args)
			if err != nil {
				return err
			}

			var store *archive.Archive
			if archivePath != "" {
				store, err = env.openArchive(archivePath)
				if err != nil {
					return err
				}
				defer store.Close()
				if len(env.config.Audit.Recipients) == 0 {
					env.logger.Warn("no audit recipients configured; originals will not be sealed")
				}
			}

			redactor := redact.New(env.registry)
			for _, original := range event.Events(results) {
				redacted := redactor.Redact(original)
				if store != nil {
					if err := appendRedaction(store, original, redacted); err != nil {
						return err
					}
				}
				if err := env.writeLine(redacted.Marshal()); err != nil {
					return err
				}
			}
			return env.finish(results)
		},
	}
}

// appendRedaction archives redacted, sealing original when the archive
// has recipients and storing the redacted event alone when it has none.
func appendRedaction(store *archive.Archive, original, redacted *event.Event) error {
	_, _, err := store.AppendRedaction(original, redacted)
	if errors.Is(err, archive.ErrNoRecipients) {
		_, _, err = store.Append(redacted)
	}
	if err != nil {
		eventID, _ := original.EventID()
		return fmt.Errorf("archiving redaction of %s: %w", eventID, err)
	}
	return nil
}
