// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package eventkind is the static table of event kinds the codec
// recognizes: for each event type string, its [Classification]
// (message, state, ephemeral), the content fields the kind's schema
// knows about, which of those are required, and the redaction
// retain-set.
//
// A [Registry] is a plain value passed to whoever needs it: the event
// codec, the redactor, the CLI. There is no package-level mutable
// registry. Registries are read-only after construction, so a single
// Registry may be shared across goroutines without locking; extending
// one ([Registry.With]) returns a new Registry.
//
// Unknown event types are a first-class outcome of [Registry.Lookup],
// not an error: the protocol grows new kinds independently of this
// package, and callers fall back to opaque handling.
//
// Tables are loaded from YAML ([LoadYAML]) or JSON-with-comments
// ([LoadJSONC]); [Default] returns the embedded table describing the
// m.room.* kinds with the redaction rules of room version 11.
package eventkind
