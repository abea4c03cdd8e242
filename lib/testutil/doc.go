// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for roomevents packages.
//
// [Corpus] is a set of representative wire events (messages, state,
// redactions, events from future room versions, malformed inputs)
// shared by the codec, redaction, fingerprint, archive, and CLI tests
// so that every layer is exercised against the same bytes. [Fixture]
// looks one up by name; [NDJSON] joins several into a batch.
//
// [UniqueID] and [UniqueEventID] generate monotonically increasing
// identifiers for test disambiguation. Use them instead of time.Now()
// when tests need distinct event IDs.
//
// [WriteFile] writes a file into a fresh t.TempDir().
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no roomevents-internal dependencies, so any
// package's internal tests can import it without a cycle.
package testutil
