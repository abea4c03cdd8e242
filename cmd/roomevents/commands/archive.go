// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/roomevents/cmd/roomevents/cli"
	"github.com/bureau-foundation/roomevents/lib/archive"
	"github.com/bureau-foundation/roomevents/lib/event"
	"github.com/bureau-foundation/roomevents/lib/sealed"
)

func archiveCommand(streams Streams) *cli.Command {
	return &cli.Command{
		Name:    "archive",
		Summary: "Append to and read event archives",
		Description: `An archive is an append-only file of CBOR records, one per event.
Each record holds the event's fingerprint, type, event ID, archive
time, and the compressed event JSON. Events already in the archive
(by fingerprint) are skipped.

Records written by "roomevents redact --archive" may also carry the
pre-redaction original, sealed with age to the configured audit
recipients; "archive reveal" opens them.

The archive path comes from --archive or archive.path in the config.`,
		Subcommands: []*cli.Command{
			archiveAppendCommand(streams),
			archiveListCommand(streams),
			archiveShowCommand(streams),
			archiveRevealCommand(streams),
		},
	}
}

// openArchive opens path, or archive.path from the configuration when
// path is empty, with the configured compression and recipients.
func (e *environment) openArchive(path string) (*archive.Archive, error) {
	path, err := e.archivePath(path)
	if err != nil {
		return nil, err
	}
	tag, auto, err := e.config.Compression()
	if err != nil {
		return nil, err
	}
	return archive.Open(path, archive.Options{
		Logger:          e.logger,
		Compression:     tag,
		AutoCompression: auto,
		Recipients:      e.config.Audit.Recipients,
	})
}

func (e *environment) archivePath(path string) (string, error) {
	if path == "" {
		path = e.config.Archive.Path
	}
	if path == "" {
		return "", errors.New("no archive: pass --archive or set archive.path in the config")
	}
	return path, nil
}

func archiveAppendCommand(streams Streams) *cli.Command {
	var (
		shared      globals
		archivePath string
	)

	return &cli.Command{
		Name:    "append",
		Summary: "Append events to an archive",
		Usage:   "roomevents archive append [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("append", pflag.ContinueOnError)
			shared.register(flagSet)
			flagSet.StringVar(&archivePath, "archive", "", "archive file")
			return flagSet
		},
		Run: func(args []string) error {
			env, err := shared.load(streams, "archive/append")
			if err != nil {
				return err
			}
			results, err := env.decodeInput(args)
			if err != nil {
				return err
			}
			store, err := env.openArchive(archivePath)
			if err != nil {
				return err
			}
			defer store.Close()

			appended, skipped := 0, 0
			for _, ev := range event.Events(results) {
				_, added, err := store.Append(ev)
				if err != nil {
					return err
				}
				if added {
					appended++
				} else {
					skipped++
				}
			}
			env.logger.Info("archive updated",
				"path", store.Path(),
				"appended", appended,
				"duplicates", skipped,
				"records", store.Len())
			fmt.Fprintf(streams.Stdout, "appended %d, skipped %d duplicates, %d records total\n",
				appended, skipped, store.Len())
			return env.finish(results)
		},
	}
}

// recordListing is the --json form of one archive record.
type recordListing struct {
	Fingerprint string    `json:"fingerprint"`
	Kind        string    `json:"kind"`
	Type        string    `json:"type"`
	EventID     string    `json:"event_id,omitempty"`
	ArchivedAt  time.Time `json:"archived_at"`
	Compression string    `json:"compression"`
	Size        int       `json:"size"`
	Stored      int       `json:"stored"`
	Sealed      bool      `json:"sealed"`
}

func archiveListCommand(streams Streams) *cli.Command {
	var (
		shared      globals
		archivePath string
		asJSON      bool
	)

	return &cli.Command{
		Name:    "list",
		Summary: "List archived records",
		Usage:   "roomevents archive list [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			shared.register(flagSet)
			flagSet.StringVar(&archivePath, "archive", "", "archive file")
			flagSet.BoolVar(&asJSON, "json", false, "print as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("list takes no arguments, got %q", args[0])
			}
			env, err := shared.load(streams, "archive/list")
			if err != nil {
				return err
			}
			path, err := env.archivePath(archivePath)
			if err != nil {
				return err
			}
			records, err := archive.Records(path)
			if err != nil {
				return err
			}

			if asJSON {
				listings := make([]recordListing, len(records))
				for i, record := range records {
					listings[i] = recordListing{
						Fingerprint: record.Fingerprint.String(),
						Kind:        string(record.Kind),
						Type:        record.EventType,
						EventID:     record.EventID,
						ArchivedAt:  record.ArchivedAt,
						Compression: record.Compression.String(),
						Size:        record.Size,
						Stored:      len(record.Payload),
						Sealed:      record.Sealed != "",
					}
				}
				return cli.WriteJSON(streams.Stdout, listings)
			}

			writer := tabwriter.NewWriter(streams.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "FINGERPRINT\tKIND\tTYPE\tEVENT ID\tARCHIVED\tSIZE")
			for _, record := range records {
				kind := string(record.Kind)
				if record.Sealed != "" {
					kind += "+sealed"
				}
				eventID := record.EventID
				if eventID == "" {
					eventID = "-"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%d/%d %s\n",
					record.Fingerprint.Short(),
					kind,
					record.EventType,
					eventID,
					record.ArchivedAt.Format(time.RFC3339),
					len(record.Payload), record.Size, record.Compression)
			}
			return writer.Flush()
		},
	}
}

func archiveShowCommand(streams Streams) *cli.Command {
	var (
		shared      globals
		archivePath string
	)

	return &cli.Command{
		Name:    "show",
		Summary: "Print an archived event",
		Description: `Print the archived event whose fingerprint starts with the given hex
prefix. For redaction records this is the redacted event; use
"archive reveal" for the sealed original.`,
		Usage: "roomevents archive show [flags] FINGERPRINT",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			shared.register(flagSet)
			flagSet.StringVar(&archivePath, "archive", "", "archive file")
			return flagSet
		},
		Run: func(args []string) error {
			env, err := shared.load(streams, "archive/show")
			if err != nil {
				return err
			}
			record, err := env.findRecord(archivePath, args)
			if err != nil {
				return err
			}
			ev, err := record.Event(env.codec)
			if err != nil {
				return err
			}
			return cli.NewRenderer(streams.Stdout).JSON(ev.ToValue().Indent("", "  "))
		},
	}
}

func archiveRevealCommand(streams Streams) *cli.Command {
	var (
		shared       globals
		archivePath  string
		identityPath string
	)

	return &cli.Command{
		Name:    "reveal",
		Summary: "Decrypt the sealed original of a redacted event",
		Description: `Decrypt the pre-redaction original of a redaction record with an audit
identity file (as written by "roomevents keygen") and print it. The
decrypted event's fingerprint is checked against the one recorded at
archive time.`,
		Usage: "roomevents archive reveal --identity FILE [flags] FINGERPRINT",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("reveal", pflag.ContinueOnError)
			shared.register(flagSet)
			flagSet.StringVar(&archivePath, "archive", "", "archive file")
			flagSet.StringVarP(&identityPath, "identity", "i", "", "age identity file (required)")
			return flagSet
		},
		Run: func(args []string) error {
			if identityPath == "" {
				return errors.New("--identity is required")
			}
			env, err := shared.load(streams, "archive/reveal")
			if err != nil {
				return err
			}
			record, err := env.findRecord(archivePath, args)
			if err != nil {
				return err
			}

			identity, err := os.Open(identityPath)
			if err != nil {
				return fmt.Errorf("opening identity file: %w", err)
			}
			privateKey, err := sealed.ReadPrivateKey(identity)
			identity.Close()
			if err != nil {
				return err
			}

			original, err := archive.Reveal(&record, env.codec, privateKey)
			if err != nil {
				return err
			}
			env.logger.Info("revealed sealed original",
				"fingerprint", record.Fingerprint.Short(),
				"event_id", record.EventID)
			return cli.NewRenderer(streams.Stdout).JSON(original.ToValue().Indent("", "  "))
		},
	}
}

// findRecord returns the one record whose fingerprint starts with the
// hex prefix in args.
func (e *environment) findRecord(archivePath string, args []string) (archive.Record, error) {
	if len(args) != 1 {
		return archive.Record{}, errors.New("expected one fingerprint (or unique prefix)")
	}
	prefix := strings.ToLower(args[0])
	path, err := e.archivePath(archivePath)
	if err != nil {
		return archive.Record{}, err
	}

	var matches []archive.Record
	err = archive.Scan(path, func(record archive.Record) error {
		if strings.HasPrefix(record.Fingerprint.String(), prefix) {
			matches = append(matches, record)
		}
		return nil
	})
	if err != nil {
		return archive.Record{}, err
	}
	switch len(matches) {
	case 0:
		return archive.Record{}, fmt.Errorf("no record with fingerprint %s in %s", prefix, path)
	case 1:
		return matches[0], nil
	default:
		return archive.Record{}, fmt.Errorf("fingerprint prefix %s matches %d records", prefix, len(matches))
	}
}
