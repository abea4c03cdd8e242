// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
)

// Result is the outcome of decoding one event of a batch.
type Result struct {
	// Index is the position of the event within the batch, counting
	// from 0. Blank lines of newline-delimited input are not counted.
	Index int

	// Line is the 1-based input line for newline-delimited input, and 0
	// for a JSON array.
	Line int

	Event *Event
	Err   error
}

// DecodeBatch decodes several events. data is either a JSON array of
// event objects or newline-delimited JSON with one event per line.
//
// Each event succeeds or fails on its own; the caller decides whether
// one bad event aborts the batch. The only batch-level failure is a
// JSON array that does not parse, reported as a single Result.
func (c *Codec) DecodeBatch(data []byte) []Result {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return c.decodeArray(data)
	}
	return c.decodeLines(data)
}

func (c *Codec) decodeArray(data []byte) []Result {
	array, err := jsonvalue.Parse(data)
	if err != nil {
		return []Result{{Err: fmt.Errorf("event: batch: %w", err)}}
	}
	items := array.Items()
	results := make([]Result, len(items))
	for index, item := range items {
		ev, err := c.DecodeValue(item)
		results[index] = Result{Index: index, Event: ev, Err: err}
	}
	return results
}

func (c *Codec) decodeLines(data []byte) []Result {
	var results []Result
	for lineNumber, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		ev, err := c.Decode(line)
		results = append(results, Result{Index: len(results), Line: lineNumber + 1, Event: ev, Err: err})
	}
	return results
}

// BatchError joins the errors of failed results, each prefixed with its
// position. It returns nil when every event decoded.
func BatchError(results []Result) error {
	var errs []error
	for _, result := range results {
		if result.Err == nil {
			continue
		}
		if result.Line > 0 {
			errs = append(errs, fmt.Errorf("line %d: %w", result.Line, result.Err))
		} else {
			errs = append(errs, fmt.Errorf("event %d: %w", result.Index, result.Err))
		}
	}
	return errors.Join(errs...)
}

// Events returns the successfully decoded events of a batch in order.
func Events(results []Result) []*Event {
	events := make([]*Event, 0, len(results))
	for _, result := range results {
		if result.Err == nil {
			events = append(events, result.Event)
		}
	}
	return events
}
