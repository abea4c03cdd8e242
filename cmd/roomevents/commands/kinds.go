// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/roomevents/cmd/roomevents/cli"
	"github.com/bureau-foundation/roomevents/lib/eventkind"
)

// kindListing is the --json form of one registered kind.
type kindListing struct {
	Type           string   `json:"type"`
	Classification string   `json:"classification"`
	Required       []string `json:"required"`
	Optional       []string `json:"optional"`
	Retain         []string `json:"retain"`
	RetainAll      bool     `json:"retain_all,omitempty"`
}

func kindsCommand(streams Streams) *cli.Command {
	var (
		shared globals
		asJSON bool
		asYAML bool
	)

	return &cli.Command{
		Name:    "kinds",
		Summary: "List the registered event kinds",
		Description: `List the event kinds of the table in effect: the embedded default
table, or the one named by --registry or the config file.

Each kind shows its classification, the required and optional content
fields with their JSON kinds, and the fields that survive redaction.
--yaml prints the table in the format --registry reads, which is a
convenient starting point for a custom table.`,
		Usage: "roomevents kinds [flags]",
		Examples: []cli.Example{
			{
				Description: "Export the default table for editing",
				Command:     "roomevents kinds --yaml > kinds.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("kinds", pflag.ContinueOnError)
			shared.register(flagSet)
			flagSet.BoolVar(&asJSON, "json", false, "print as JSON")
			flagSet.BoolVar(&asYAML, "yaml", false, "print as a loadable YAML kind table")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("kinds takes no arguments, got %q", args[0])
			}
			if asJSON && asYAML {
				return errors.New("--json and --yaml are mutually exclusive")
			}
			env, err := shared.load(streams, "kinds")
			if err != nil {
				return err
			}

			switch {
			case asYAML:
				data, err := eventkind.MarshalYAML(env.registry)
				if err != nil {
					return err
				}
				_, err = streams.Stdout.Write(data)
				return err
			case asJSON:
				var listings []kindListing
				for _, kind := range env.registry.Kinds() {
					listings = append(listings, listKind(kind))
				}
				return cli.WriteJSON(streams.Stdout, listings)
			}

			writer := tabwriter.NewWriter(streams.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "TYPE\tCLASS\tREQUIRED\tOPTIONAL\tRETAIN")
			for _, kind := range env.registry.Kinds() {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
					kind.Type(),
					kind.Classification(),
					formatFields(kind.Required()),
					formatFields(kind.Optional()),
					formatRetain(kind))
			}
			return writer.Flush()
		},
	}
}

func listKind(kind *eventkind.Kind) kindListing {
	listing := kindListing{
		Type:           string(kind.Type()),
		Classification: kind.Classification().String(),
		Required:       fieldNames(kind.Required()),
		Optional:       fieldNames(kind.Optional()),
		Retain:         kind.Retain(),
		RetainAll:      kind.RetainAll(),
	}
	if listing.Retain == nil {
		listing.Retain = []string{}
	}
	return listing
}

func fieldNames(fields []eventkind.Field) []string {
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name + ":" + field.Kind.String()
	}
	return names
}

func formatFields(fields []eventkind.Field) string {
	if len(fields) == 0 {
		return "-"
	}
	return strings.Join(fieldNames(fields), ",")
}

func formatRetain(kind *eventkind.Kind) string {
	if kind.RetainAll() {
		return "*"
	}
	retain := kind.Retain()
	if len(retain) == 0 {
		return "-"
	}
	return strings.Join(retain, ",")
}
