// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package jsonvalue is an order-preserving JSON tree for content whose
// shape is not statically known.
//
// A [Value] is one of null, bool, number, string, array, or object.
// Objects keep their members in wire order, and numbers keep the exact
// literal text they were parsed from, so decoding and re-encoding a
// value never reorders keys and never loses precision on integers
// wider than 53 bits (timestamps, power levels, protocol big ints).
//
// Values are immutable by convention: there are no setters, and every
// method that "changes" a value ([Value.With], [Value.Without],
// [Value.Filter]) returns a new value with freshly allocated member
// slices. Accessors that expose children ([Value.Items],
// [Value.Members]) return copies. This makes it safe to hand a Value to
// another goroutine or component without cloning; [Value.Clone] exists
// for callers that want a fully independent tree anyway.
//
// [Parse] rejects anything that is not exactly one JSON value with
// [ErrMalformedInput]. [Value.Marshal] never fails. [Value.Canonical]
// produces Matrix canonical JSON (sorted keys, no insignificant
// whitespace) for hashing.
package jsonvalue
