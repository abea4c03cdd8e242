// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/roomevents/cmd/roomevents/cli"
	"github.com/bureau-foundation/roomevents/lib/clock"
	"github.com/bureau-foundation/roomevents/lib/sealed"
)

func keygenCommand(streams Streams) *cli.Command {
	var (
		output string
		force  bool
	)

	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate an audit keypair",
		Description: `Generate an age x25519 keypair for sealing redacted originals.

The identity file (private key plus a comment with the public key) is
written to --output with mode 0600, or to stdout. Add the public key
to audit.recipients in the configuration; keep the identity file away
from the archive and pass it to "roomevents archive reveal --identity".`,
		Usage: "roomevents keygen [--output FILE]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
			flagSet.StringVarP(&output, "output", "o", "", "write the identity file here instead of stdout")
			flagSet.BoolVar(&force, "force", false, "overwrite an existing --output file")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("keygen takes no arguments, got %q", args[0])
			}
			keypair, err := sealed.GenerateKeypair()
			if err != nil {
				return err
			}
			identity := sealed.FormatIdentityFile(keypair, clock.Real().Now().UTC().Format(time.RFC3339))
			if output == "" {
				_, err := fmt.Fprint(streams.Stdout, identity)
				return err
			}

			flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
			if force {
				flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			}
			file, err := os.OpenFile(output, flags, 0o600)
			if err != nil {
				return fmt.Errorf("writing identity file: %w", err)
			}
			if _, err := file.WriteString(identity); err != nil {
				file.Close()
				return fmt.Errorf("writing identity file: %w", err)
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("writing identity file: %w", err)
			}
			fmt.Fprintf(streams.Stdout, "public key: %s\n", keypair.PublicKey)
			return nil
		},
	}
}
