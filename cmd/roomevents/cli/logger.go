// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command
// operations on w (normally stderr). When w is a terminal it uses
// slog.TextHandler for human-readable output; when it is piped,
// redirected, or not a file it uses slog.JSONHandler for
// machine-parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(stderr, level).With("command", "archive/append")
func NewCommandLogger(w io.Writer, level slog.Level) *slog.Logger {
	file, isFile := w.(*os.File)
	return newLogger(w, isFile && term.IsTerminal(int(file.Fd())), level)
}

func newLogger(w io.Writer, terminal bool, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}
