// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the project's CBOR encoding configuration.
//
// Events themselves are JSON on the wire and stay JSON everywhere they
// are handed to other software. CBOR is used for the binary container
// formats this project owns, currently the event archive: each archive
// record is one CBOR data item, and an archive file is a CBOR sequence
// (RFC 8742) of records.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same record always produces identical bytes, so archives written
// twice from the same input compare equal.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(record)
//	err = codec.Unmarshal(data, &record)
//
// For sequences:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// Types serialized only as CBOR use `cbor` struct tags. Types that also
// appear in JSON output (for example in the CLI's --json listings) use
// `json` tags, which fxamacker/cbor reads when `cbor` tags are absent.
// A field never carries both.
package codec
