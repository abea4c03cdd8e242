// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"fmt"
	"strings"
)

// EventType identifies a Matrix event kind (e.g., "m.room.message").
//
// EventType is a named string, not a validated struct: event types
// arriving from the wire are open-ended and an unrecognized type is a
// normal, first-class case. The type exists for compile-time safety,
// keeping event types from being confused with state keys or other
// strings. Validate checks the namespacing convention when a caller
// is about to define a new kind.
type EventType string

// String returns the event type string.
func (t EventType) String() string { return string(t) }

// Namespace returns everything before the last '.', or "" when the
// type has no dots ("m.room.message" -> "m.room").
func (t EventType) Namespace() string {
	index := strings.LastIndexByte(string(t), '.')
	if index < 0 {
		return ""
	}
	return string(t[:index])
}

// IsSpecNamespace reports whether the type lives in the "m." namespace
// reserved for the protocol itself.
func (t EventType) IsSpecNamespace() bool {
	return strings.HasPrefix(string(t), "m.")
}

// Validate checks that the event type is a plausible namespaced
// identifier: non-empty, at most 255 bytes, printable ASCII with no
// spaces, at least one '.', and no empty dot-separated segment.
func (t EventType) Validate() error {
	raw := string(t)
	if raw == "" {
		return fmt.Errorf("empty event type")
	}
	if len(raw) > maxIdentifierLength {
		return fmt.Errorf("event type is %d bytes, maximum is %d", len(raw), maxIdentifierLength)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] <= ' ' || raw[i] > '~' {
			return fmt.Errorf("event type %q: invalid character %q at position %d", raw, raw[i], i)
		}
	}
	if !strings.Contains(raw, ".") {
		return fmt.Errorf("event type %q is not namespaced (expected at least one '.')", raw)
	}
	for _, segment := range strings.Split(raw, ".") {
		if segment == "" {
			return fmt.Errorf("event type %q contains an empty segment", raw)
		}
	}
	return nil
}
