// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/roomevents/cmd/roomevents/cli"
	"github.com/bureau-foundation/roomevents/lib/event"
	"github.com/bureau-foundation/roomevents/lib/eventhash"
	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
)

func decodeCommand(streams Streams) *cli.Command {
	var (
		shared globals
		pretty bool
	)

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode events and summarize them",
		Description: `Decode events and print one summary line per event: input position,
type and state key, sender, event ID, timestamp, classification and
content variant, and a content preview.

Events that fail to decode are reported on stderr with their position.
The remaining events are still printed, and the command exits 1.

With --pretty, each event is printed as indented JSON instead
(syntax-highlighted on a terminal).`,
		Usage: "roomevents decode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Summarize a timeline from a file",
				Command:     "roomevents decode timeline.ndjson",
			},
			{
				Description: "Pretty-print events from stdin using a custom kind table",
				Command:     "roomevents decode --pretty --registry kinds.yaml < batch.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			shared.register(flagSet)
			flagSet.BoolVar(&pretty, "pretty", false, "print each event as indented JSON")
			return flagSet
		},
		Run: func(args []string) error {
			env, err := shared.load(streams, "decode")
			if err != nil {
				return err
			}
			results, err := env.decodeInput(args)
			if err != nil {
				return err
			}
			renderer := cli.NewRenderer(streams.Stdout)
			for _, result := range results {
				if result.Err != nil {
					continue
				}
				if pretty {
					err = renderer.JSON(result.Event.ToValue().Indent("", "  "))
				} else {
					err = renderer.Summary(summarize(position(result), result.Event))
				}
				if err != nil {
					return err
				}
			}
			return env.finish(results)
		},
	}
}

func summarize(position string, ev *event.Event) cli.Summary {
	summary := cli.Summary{
		Position: position,
		Type:     string(ev.Type()),
		Sender:   ev.Sender(),
		Class:    ev.Class().String(),
		Variant:  ev.Content().Variant().String(),
		Preview:  ev.Content().ToRaw().String(),
	}
	if stateKey, ok := ev.StateKey(); ok {
		summary.StateKey = &stateKey
	}
	if eventID, ok := ev.EventID(); ok {
		summary.EventID = eventID
	}
	if ev.OriginServerTS() != 0 {
		summary.Timestamp = ev.Timestamp().Format(time.RFC3339)
	}
	return summary
}

func encodeCommand(streams Streams) *cli.Command {
	var (
		shared globals
		array  bool
	)

	return &cli.Command{
		Name:    "encode",
		Summary: "Re-encode events as newline-delimited JSON",
		Description: `Decode events and write them back out in wire form, one per line.

Content that matched its kind's schema is re-emitted with its unknown
fields intact; content that did not is passed through verbatim.
Decoding the output again yields the same events. With --array the
events are written as a single JSON array instead.`,
		Usage: "roomevents encode [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("encode", pflag.ContinueOnError)
			shared.register(flagSet)
			flagSet.BoolVar(&array, "array", false, "write a JSON array instead of one event per line")
			return flagSet
		},
		Run: func(args []string) error {
			env, err := shared.load(streams, "encode")
			if err != nil {
				return err
			}
			results, err := env.decodeInput(args)
			if err != nil {
				return err
			}
			events := event.Events(results)
			if array {
				items := make([]jsonvalue.Value, len(events))
				for i, ev := range events {
					items[i] = ev.ToValue()
				}
				if err := env.writeLine(jsonvalue.Array(items...).Marshal()); err != nil {
					return err
				}
				return env.finish(results)
			}
			for _, ev := range events {
				if err := env.writeLine(env.codec.Encode(ev)); err != nil {
					return err
				}
			}
			return env.finish(results)
		},
	}
}

func canonicalCommand(streams Streams) *cli.Command {
	var shared globals

	return &cli.Command{
		Name:    "canonical",
		Summary: "Print events as canonical JSON",
		Description: `Decode events and print each in canonical form: object keys sorted,
no insignificant whitespace, numbers exactly as received. Two events
with the same canonical form have the same fingerprint.`,
		Usage: "roomevents canonical [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("canonical", pflag.ContinueOnError)
			shared.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			env, err := shared.load(streams, "canonical")
			if err != nil {
				return err
			}
			results, err := env.decodeInput(args)
			if err != nil {
				return err
			}
			for _, ev := range event.Events(results) {
				if err := env.writeLine(ev.Canonical()); err != nil {
					return err
				}
			}
			return env.finish(results)
		},
	}
}

func fingerprintCommand(streams Streams) *cli.Command {
	var (
		shared      globals
		contentOnly bool
	)

	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print BLAKE3 fingerprints of events",
		Description: `Decode events and print a fingerprint per event followed by its event
ID (or "-" when it has none).

The fingerprint is a keyed BLAKE3 hash of the event's canonical form
without the unsigned block, so it is stable across key order and
server-local annotations. With --content only the content is hashed.`,
		Usage: "roomevents fingerprint [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fingerprint", pflag.ContinueOnError)
			shared.register(flagSet)
			flagSet.BoolVar(&contentOnly, "content", false, "hash the content only")
			return flagSet
		},
		Run: func(args []string) error {
			env, err := shared.load(streams, "fingerprint")
			if err != nil {
				return err
			}
			results, err := env.decodeInput(args)
			if err != nil {
				return err
			}
			for _, ev := range event.Events(results) {
				hash := eventhash.Fingerprint(ev)
				if contentOnly {
					hash = eventhash.ContentFingerprint(ev.Content())
				}
				eventID, ok := ev.EventID()
				if !ok {
					eventID = "-"
				}
				if err := env.writeLine([]byte(hash.String() + "  " + eventID)); err != nil {
					return err
				}
			}
			return env.finish(results)
		},
	}
}
