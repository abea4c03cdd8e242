// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/roomevents/cmd/roomevents/cli"
	"github.com/bureau-foundation/roomevents/lib/clock"
	"github.com/bureau-foundation/roomevents/lib/event"
	"github.com/bureau-foundation/roomevents/lib/eventcontent"
	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
	"github.com/bureau-foundation/roomevents/lib/ref"
	"github.com/bureau-foundation/roomevents/lib/schema"
)

// composeParams are the flags of "roomevents compose".
type composeParams struct {
	eventType string
	sender    string
	roomID    string
	eventID   string
	stateKey  string
	timestamp int64
	markdown  string
	text      string
	content   string
	pretty    bool
}

func composeCommand(streams Streams) *cli.Command {
	var (
		shared  globals
		params  composeParams
		flagSet *pflag.FlagSet
	)

	return &cli.Command{
		Name:    "compose",
		Summary: "Build an outgoing event",
		Description: `Build a single event from flags and print it.

Content comes from exactly one of:
  --markdown   an m.room.message rendered from markdown (body keeps the
               source, formatted_body carries the HTML)
  --text       a plain m.text message
  --content    raw JSON content for --type

Unlike decode, compose rejects inconsistent input instead of degrading
it: content that does not match a registered kind's schema, a missing
state key on a state kind, or a state key on a non-state kind are all
errors. The timestamp defaults to the current time.`,
		Usage: "roomevents compose --sender USER [flags]",
		Examples: []cli.Example{
			{
				Description: "A markdown message",
				Command:     "roomevents compose --sender @alice:example.org --room '!room:example.org' --markdown 'see **this**'",
			},
			{
				Description: "A topic state event",
				Command:     `roomevents compose --sender @alice:example.org --type m.room.topic --state-key "" --content '{"topic":"Planning"}'`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("compose", pflag.ContinueOnError)
			shared.register(flagSet)
			flagSet.StringVar(&params.eventType, "type", string(schema.EventTypeMessage), "event type")
			flagSet.StringVar(&params.sender, "sender", "", "sender user ID (required)")
			flagSet.StringVar(&params.roomID, "room", "", "room ID")
			flagSet.StringVar(&params.eventID, "event-id", "", "event ID")
			flagSet.StringVar(&params.stateKey, "state-key", "", "state key (set it, even to \"\", for state events)")
			flagSet.Int64Var(&params.timestamp, "ts", 0, "origin_server_ts in milliseconds (default: now)")
			flagSet.StringVar(&params.markdown, "markdown", "", "markdown message body")
			flagSet.StringVar(&params.text, "text", "", "plain text message body")
			flagSet.StringVar(&params.content, "content", "", "raw JSON content")
			flagSet.BoolVar(&params.pretty, "pretty", false, "print indented JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("compose takes no positional arguments, got %q", args[0])
			}
			env, err := shared.load(streams, "compose")
			if err != nil {
				return err
			}
			// An explicit --state-key "" is the empty state key, not
			// its absence.
			var stateKey *string
			if flagSet.Changed("state-key") {
				stateKey = event.StateKey(params.stateKey)
			}
			ev, err := compose(env, params, stateKey, clock.Real())
			if err != nil {
				return err
			}
			if params.pretty {
				return cli.NewRenderer(streams.Stdout).JSON(ev.ToValue().Indent("", "  "))
			}
			return env.writeLine(ev.Marshal())
		},
	}
}

func compose(env *environment, params composeParams, stateKey *string, clk clock.Clock) (*event.Event, error) {
	sender, err := ref.ParseUserID(params.sender)
	if err != nil {
		return nil, fmt.Errorf("--sender: %w", err)
	}
	fields := event.Fields{
		Type:           ref.EventType(params.eventType),
		StateKey:       stateKey,
		Sender:         sender,
		OriginServerTS: params.timestamp,
	}
	if fields.OriginServerTS == 0 {
		fields.OriginServerTS = clk.Now().UnixMilli()
	}
	if params.roomID != "" {
		if fields.RoomID, err = ref.ParseRoomID(params.roomID); err != nil {
			return nil, fmt.Errorf("--room: %w", err)
		}
	}
	if params.eventID != "" {
		if fields.EventID, err = ref.ParseEventID(params.eventID); err != nil {
			return nil, fmt.Errorf("--event-id: %w", err)
		}
	}

	fields.Content, err = composeContent(env, params)
	if err != nil {
		return nil, err
	}
	return env.codec.New(fields)
}

func composeContent(env *environment, params composeParams) (eventcontent.Content, error) {
	sources := 0
	for _, source := range []string{params.markdown, params.text, params.content} {
		if source != "" {
			sources++
		}
	}
	if sources > 1 {
		return eventcontent.Content{}, errors.New("use only one of --markdown, --text, and --content")
	}

	switch {
	case params.markdown != "":
		message, err := schema.NewMarkdownMessage(params.markdown)
		if err != nil {
			return eventcontent.Content{}, err
		}
		return eventcontent.FromStruct(env.registry, message)
	case params.text != "":
		return eventcontent.FromStruct(env.registry, schema.NewTextMessage(params.text))
	case params.content != "":
		raw, err := jsonvalue.Parse([]byte(params.content))
		if err != nil {
			return eventcontent.Content{}, fmt.Errorf("--content: %w", err)
		}
		eventType := ref.EventType(params.eventType)
		content := eventcontent.FromRaw(eventType, raw, env.registry)
		if _, known := env.registry.Lookup(eventType); known && content.Variant() != eventcontent.Typed {
			return eventcontent.Content{}, fmt.Errorf("--content does not match the %s schema", eventType)
		}
		return content, nil
	default:
		return eventcontent.Content{}, nil
	}
}
