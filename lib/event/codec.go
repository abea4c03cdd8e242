// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"fmt"

	"github.com/bureau-foundation/roomevents/lib/eventcontent"
	"github.com/bureau-foundation/roomevents/lib/eventkind"
	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
	"github.com/bureau-foundation/roomevents/lib/ref"
)

// Codec decodes and encodes events against a kind registry. A Codec is
// immutable and safe for concurrent use.
type Codec struct {
	registry *eventkind.Registry
}

// NewCodec returns a codec resolving content through registry. A nil
// registry is valid: every event type is unknown and all content is
// opaque.
func NewCodec(registry *eventkind.Registry) *Codec {
	return &Codec{registry: registry}
}

// Registry returns the registry the codec resolves content with.
func (c *Codec) Registry() *eventkind.Registry { return c.registry }

// Decode parses wire bytes into an Event.
//
// Errors: ErrMalformedInput when data is not a JSON object or an
// envelope field has the wrong JSON type; a *MissingFieldError when
// type, sender, or origin_server_ts is absent. Unknown event types,
// unknown top-level members, and content that fails its kind's schema
// are not errors.
func (c *Codec) Decode(data []byte) (*Event, error) {
	value, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("event: %w", err)
	}
	return c.DecodeValue(value)
}

// DecodeValue builds an Event from an already parsed JSON value, with
// the same rules as Decode.
func (c *Codec) DecodeValue(value jsonvalue.Value) (*Event, error) {
	if value.Kind() != jsonvalue.KindObject {
		return nil, malformed("event is a JSON %s, not an object", value.Kind())
	}

	ev := &Event{}
	var (
		content        = jsonvalue.Object()
		prevContent    jsonvalue.Value
		hasType        bool
		hasSender      bool
		hasTimestamp   bool
		hasPrevContent bool
	)
	for _, member := range value.Members() {
		ev.keys = append(ev.keys, member.Name)
		switch member.Name {
		case keyType:
			text, err := stringField(member)
			if err != nil {
				return nil, err
			}
			ev.eventType = ref.EventType(text)
			hasType = true
		case keySender:
			text, err := stringField(member)
			if err != nil {
				return nil, err
			}
			ev.sender = text
			hasSender = true
		case keyOriginServerTS:
			timestamp, ok := member.Value.Int64()
			if !ok || timestamp < 0 {
				return nil, malformed("%q must be a non-negative integer in the int64 range, got %s", member.Name, member.Value)
			}
			ev.originServerTS = timestamp
			hasTimestamp = true
		case keyStateKey, keyEventID, keyRoomID:
			text, err := stringField(member)
			if err != nil {
				return nil, err
			}
			switch member.Name {
			case keyStateKey:
				ev.stateKey = someString(text)
			case keyEventID:
				ev.eventID = someString(text)
			case keyRoomID:
				ev.roomID = someString(text)
			}
		case keyUnsigned:
			if member.Value.Kind() != jsonvalue.KindObject {
				return nil, malformed("%q must be an object, got a JSON %s", member.Name, member.Value.Kind())
			}
			ev.unsigned = member.Value
			ev.hasUnsigned = true
		case keyContent:
			content = member.Value
		case keyPrevContent:
			prevContent = member.Value
			hasPrevContent = true
		default:
			ev.extra = append(ev.extra, member)
		}
	}

	switch {
	case !hasType:
		return nil, &MissingFieldError{Field: keyType}
	case !hasSender:
		return nil, &MissingFieldError{Field: keySender}
	case !hasTimestamp:
		return nil, &MissingFieldError{Field: keyOriginServerTS}
	}

	_, hasStateKey := ev.stateKey.get()
	redacted := ev.hasUnsigned && ev.unsigned.Has(unsignedRedactedBecause)
	var resolve func(jsonvalue.Value) eventcontent.Content
	ev.classification, resolve = c.resolver(ev.eventType, hasStateKey, redacted)
	ev.content = resolve(content)
	if hasPrevContent {
		ev.prevContent = resolve(prevContent)
		ev.hasPrevContent = true
	}
	return ev, nil
}

// resolver picks the classification of an event and the function that
// turns its raw content into EventContent.
//
// A registered kind is trusted only when the state_key presence agrees
// with it: a state kind must carry a state_key and any other kind must
// not. An inconsistent event is treated as if its type were unknown, so
// its content stays opaque and its classification follows the state_key.
func (c *Codec) resolver(eventType ref.EventType, hasStateKey, redacted bool) (eventkind.Classification, func(jsonvalue.Value) eventcontent.Content) {
	kind, known := c.registry.Lookup(eventType)
	if known && (kind.Classification() == eventkind.State) == hasStateKey {
		if redacted {
			return kind.Classification(), func(raw jsonvalue.Value) eventcontent.Content {
				return eventcontent.FromRedactedRaw(eventType, raw, c.registry)
			}
		}
		return kind.Classification(), func(raw jsonvalue.Value) eventcontent.Content {
			return eventcontent.FromRaw(eventType, raw, c.registry)
		}
	}
	classification := eventkind.Message
	if hasStateKey {
		classification = eventkind.State
	}
	return classification, func(raw jsonvalue.Value) eventcontent.Content {
		return eventcontent.NewOpaque(eventType, raw)
	}
}

func stringField(member jsonvalue.Member) (string, error) {
	text, ok := member.Value.AsString()
	if !ok {
		return "", malformed("%q must be a string, got a JSON %s", member.Name, member.Value.Kind())
	}
	return text, nil
}

// Encode returns the wire bytes of ev. It never fails. For any
// well-formed input, Decode(Encode(Decode(data))) equals Decode(data).
func (c *Codec) Encode(ev *Event) []byte {
	return ev.Marshal()
}
