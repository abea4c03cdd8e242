// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides validated, immutable identifier types for the
// Matrix identifiers that appear in event envelopes: user IDs
// (@localpart:server), room IDs (!opaque:server), event IDs ($hash or
// $opaque:server), server names, and namespaced event type strings.
//
// Event envelopes decoded from the wire keep these fields as plain
// strings, because a misbehaving peer must not be able to make decoding
// fail by sending an oddly shaped sender. The ref types are the typed
// view callers reach for once they want to act on an identifier:
//
//	sender, err := ref.ParseUserID(ev.Sender())
//
// All Parse functions return errors describing the first structural
// problem found. MustParse variants panic and exist for tests and
// static tables. Every type implements encoding.TextMarshaler and
// encoding.TextUnmarshaler so it can be used directly in JSON structs.
package ref
