// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/roomevents/lib/eventcontent"
	"github.com/bureau-foundation/roomevents/lib/eventkind"
	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
	"github.com/bureau-foundation/roomevents/lib/ref"
)

// Fields describes an outgoing event for Codec.New.
type Fields struct {
	Type ref.EventType

	// Content must have been resolved for Type (eventcontent.FromStruct
	// or eventcontent.FromRaw with the same event type). The zero
	// Content means an empty object.
	Content eventcontent.Content

	// StateKey is required for state kinds and forbidden for other
	// registered kinds. For unregistered types its presence makes the
	// event a state event.
	StateKey *string

	Sender         ref.UserID
	OriginServerTS int64

	// EventID and RoomID are omitted from the wire when zero.
	EventID ref.EventID
	RoomID  ref.RoomID

	// Unsigned must be an object when set. The zero Value (null) means
	// no unsigned data.
	Unsigned jsonvalue.Value

	// PrevContent is only meaningful for state events.
	PrevContent *eventcontent.Content

	// Extra holds additional top-level members. Names must not collide
	// with envelope keys.
	Extra []jsonvalue.Member
}

// New builds an outgoing event. Unlike Decode, which degrades
// inconsistent peer data, New rejects inconsistencies: the caller is
// local and can fix them.
func (c *Codec) New(fields Fields) (*Event, error) {
	if err := fields.Type.Validate(); err != nil {
		return nil, fmt.Errorf("event: %w", err)
	}
	if fields.Sender.IsZero() {
		return nil, fmt.Errorf("event: %s: sender is required", fields.Type)
	}

	if fields.OriginServerTS < 0 {
		return nil, fmt.Errorf("event: %s: origin_server_ts %d is before the epoch", fields.Type, fields.OriginServerTS)
	}

	content := fields.Content
	if content.EventType() == "" {
		content = eventcontent.Empty(fields.Type)
	}
	if content.EventType() != fields.Type {
		return nil, fmt.Errorf("event: %s: content was resolved for %s", fields.Type, content.EventType())
	}

	classification := eventkind.Message
	if fields.StateKey != nil {
		classification = eventkind.State
	}
	if kind, known := c.registry.Lookup(fields.Type); known {
		isStateKind := kind.Classification() == eventkind.State
		if isStateKind && fields.StateKey == nil {
			return nil, fmt.Errorf("event: %s is a state event and needs a state key", fields.Type)
		}
		if !isStateKind && fields.StateKey != nil {
			return nil, fmt.Errorf("event: %s is a %s event and cannot have a state key", fields.Type, kind.Classification())
		}
		classification = kind.Classification()
	}

	ev := &Event{
		eventType:      fields.Type,
		classification: classification,
		content:        content,
		sender:         fields.Sender.String(),
		originServerTS: fields.OriginServerTS,
	}
	if fields.StateKey != nil {
		ev.stateKey = someString(*fields.StateKey)
	}
	if !fields.EventID.IsZero() {
		ev.eventID = someString(fields.EventID.String())
	}
	if !fields.RoomID.IsZero() {
		ev.roomID = someString(fields.RoomID.String())
	}
	switch fields.Unsigned.Kind() {
	case jsonvalue.KindNull:
	case jsonvalue.KindObject:
		ev.unsigned = fields.Unsigned.Clone()
		ev.hasUnsigned = true
	default:
		return nil, fmt.Errorf("event: unsigned must be an object, got a JSON %s", fields.Unsigned.Kind())
	}
	if fields.PrevContent != nil {
		if classification != eventkind.State {
			return nil, fmt.Errorf("event: %s: prev_content is only valid on state events", fields.Type)
		}
		if fields.PrevContent.EventType() != fields.Type {
			return nil, fmt.Errorf("event: %s: prev_content was resolved for %s", fields.Type, fields.PrevContent.EventType())
		}
		ev.prevContent = *fields.PrevContent
		ev.hasPrevContent = true
	}
	seen := make(map[string]struct{}, len(fields.Extra))
	for _, member := range fields.Extra {
		if isEnvelopeKey(member.Name) {
			return nil, fmt.Errorf("event: extra member %q collides with an envelope key", member.Name)
		}
		if _, duplicate := seen[member.Name]; duplicate {
			return nil, fmt.Errorf("event: extra member %q given twice", member.Name)
		}
		seen[member.Name] = struct{}{}
	}
	ev.extra = slices.Clone(fields.Extra)
	return ev, nil
}

// StateKey returns a pointer to key, for Fields.StateKey.
func StateKey(key string) *string {
	return &key
}
