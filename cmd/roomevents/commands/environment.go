// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/roomevents/cmd/roomevents/cli"
	"github.com/bureau-foundation/roomevents/lib/config"
	"github.com/bureau-foundation/roomevents/lib/event"
	"github.com/bureau-foundation/roomevents/lib/eventkind"
)

// globals are the flags every event-handling command accepts.
type globals struct {
	configPath   string
	registryPath string
	verbose      bool
}

func (g *globals) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&g.configPath, "config", "",
		"config file (default: $"+config.EnvironmentVariable+" when set, else built-in defaults)")
	flagSet.StringVar(&g.registryPath, "registry", "",
		"event kind table (.yaml, .yml, .json, .jsonc); overrides the config")
	flagSet.BoolVarP(&g.verbose, "verbose", "v", false, "log at debug level")
}

// environment is what a command needs after flag parsing: the loaded
// configuration, the kind registry, a codec over it, and a logger.
type environment struct {
	streams  Streams
	config   *config.Config
	registry *eventkind.Registry
	codec    *event.Codec
	logger   *slog.Logger
}

func (g *globals) load(streams Streams, command string) (*environment, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	if g.verbose {
		level = slog.LevelDebug
	}
	logger := cli.NewCommandLogger(streams.Stderr, level).With("command", command)

	registryPath := g.registryPath
	if registryPath == "" {
		registryPath = cfg.Registry
	}
	registry := eventkind.Default()
	if registryPath != "" {
		registry, err = eventkind.LoadFile(registryPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded kind table", "path", registryPath, "kinds", registry.Len())
	}

	return &environment{
		streams:  streams,
		config:   cfg,
		registry: registry,
		codec:    event.NewCodec(registry),
		logger:   logger,
	}, nil
}

func (g *globals) loadConfig() (*config.Config, error) {
	if g.configPath != "" {
		return config.LoadFile(g.configPath)
	}
	if os.Getenv(config.EnvironmentVariable) != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// decodeInput reads the command input and decodes it as a batch. Each
// failed event is reported on stderr; the caller turns failures into
// an exit status with [environment.finish].
func (e *environment) decodeInput(args []string) ([]event.Result, error) {
	data, err := cli.ReadInput(args, e.streams.Stdin)
	if err != nil {
		return nil, err
	}
	results := e.codec.DecodeBatch(data)
	failures := cli.NewRenderer(e.streams.Stderr)
	for _, result := range results {
		if result.Err != nil {
			if err := failures.Failure(position(result), result.Err); err != nil {
				return nil, err
			}
		}
	}
	return results, nil
}

// finish returns an ExitError when any event of the batch failed, so
// the process exits non-zero after every good event was handled.
func (e *environment) finish(results []event.Result) error {
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	e.logger.Warn("events failed to decode", "failed", failed, "total", len(results))
	return &cli.ExitError{Code: 1}
}

func position(result event.Result) string {
	if result.Line > 0 {
		return fmt.Sprintf("line %d", result.Line)
	}
	return fmt.Sprintf("event %d", result.Index)
}

// writeLine writes data followed by a newline to stdout.
func (e *environment) writeLine(data []byte) error {
	if _, err := e.streams.Stdout.Write(data); err != nil {
		return err
	}
	_, err := e.streams.Stdout.Write([]byte{'\n'})
	return err
}
