// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package eventcontent holds the content of a room event in one of
// three variants:
//
//   - Typed: the event type has a registered kind and the content
//     satisfies the kind's required-field schema. Fields named by the
//     schema (with a matching JSON kind) are the known fields; every
//     other top-level member rides in the extra-fields sidecar.
//   - Opaque: the event type is unregistered, the content is not an
//     object, or a required field is missing or has the wrong JSON
//     kind. The content is kept as a [jsonvalue.Value] and re-emitted
//     unchanged.
//   - Redacted: a registered kind whose content has been reduced to its
//     retain-set. The required-field schema is waived because redaction
//     may remove required fields.
//
// [FromRaw] never fails: degrading to Opaque is how the package handles
// peers that send content this implementation does not understand.
// Every variant reconstructs the exact object it was built from through
// [Content.ToRaw], with known and extra members interleaved in their
// original order.
//
// Typed access goes through [Content.Field] for single values or the
// generic [As] for decoding the known fields into a content struct.
// Both return a [*WrongVariantError] when the content is opaque or
// belongs to a different event type than the caller expected.
//
// Content values are immutable. Accessors return copies.
package eventcontent
