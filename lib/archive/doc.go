// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive is an append-only file of events.
//
// An archive file is a CBOR sequence (RFC 8742) of [Record] values
// written through lib/codec. Each record carries one event's wire JSON,
// compressed with lib/compress, and the event's lib/eventhash
// fingerprint. Appending an event whose fingerprint is already in the
// archive is a no-op, so the same event stream can be archived twice
// without growing the file.
//
// Redactions are recorded with [Archive.AppendRedaction]: the record
// payload is the redacted event, and the pre-redaction original is
// sealed with lib/sealed to the configured audit recipients. Only a
// holder of a recipient's private key can [Reveal] it.
//
// Opening an archive replays it to rebuild the fingerprint set. A
// record cut short by a crash mid-append is truncated away with a
// warning; any other decode failure is an error.
package archive
