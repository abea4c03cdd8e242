// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package event is the room event envelope and its JSON codec.
//
// An [Event] carries the type string, content, optional state key,
// sender, origin timestamp, optional event and room IDs, unsigned
// metadata, and (for state events) the previous content. Top-level
// members the codec does not know are kept in wire order and re-emitted
// on encode, so an event decoded by this version and encoded again
// loses nothing a newer protocol version added.
//
// A [Codec] binds decoding to an [eventkind.Registry]:
//
//	codec := event.NewCodec(eventkind.Default())
//	ev, err := codec.Decode(data)
//	if err != nil {
//	    // errors.Is(err, event.ErrMalformedInput) or
//	    // errors.Is(err, event.ErrMissingField)
//	}
//	message, err := eventcontent.As[schema.MessageContent](ev.Content())
//
// Decoding never fails because of an unknown event type, an unknown
// content field, or content that does not match its kind's schema:
// those resolve to opaque content or the extra-fields sidecar. Only
// wire data that is not a JSON object, lacks type, sender, or
// origin_server_ts, or gives an envelope field the wrong JSON type is
// rejected.
//
// Events are immutable. With* methods return modified copies and
// leave the receiver untouched.
package event
