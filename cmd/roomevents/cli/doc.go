// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the roomevents tool.
//
// A [Command] tree is built once at startup and dispatched by
// [Command.Execute]: the first positional argument selects a
// subcommand, flags are parsed with spf13/pflag, and unknown commands
// or flags get an edit-distance suggestion. Commands that report their
// own failures (for example a batch where some events did not decode)
// return an [ExitError] so main exits non-zero without printing a
// second error line.
//
// Output helpers:
//
//   - [NewCommandLogger] -- slog text on terminals, JSON otherwise
//   - [Renderer] -- chroma-highlighted JSON and lipgloss-styled summary
//     lines on terminals, plain text when piped
//   - [WriteJSON] -- indented JSON for --json output
//   - [ReadInput] -- a file argument, "-", or stdin
package cli
