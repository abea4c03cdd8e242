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

// StrippedState is the reduced form of a state event that servers hand
// to invited users (invite_room_state) so they can render the room
// before joining: type, state_key, sender, and content only. Other
// top-level members are kept and re-emitted like Event's.
type StrippedState struct {
	eventType ref.EventType
	stateKey  string
	sender    string
	content   eventcontent.Content
	extra     []jsonvalue.Member
	keys      []string
}

// Type returns the event type.
func (s *StrippedState) Type() ref.EventType { return s.eventType }

// StateKey returns the state key.
func (s *StrippedState) StateKey() string { return s.stateKey }

// Sender returns the sender string as it appeared on the wire.
func (s *StrippedState) Sender() string { return s.sender }

// Content returns the event content.
func (s *StrippedState) Content() eventcontent.Content { return s.content }

// DecodeStripped parses one stripped state event. type, state_key, and
// sender are required; content defaults to an empty object. Content of
// a registered non-state kind stays opaque.
func (c *Codec) DecodeStripped(data []byte) (*StrippedState, error) {
	value, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("event: %w", err)
	}
	return c.DecodeStrippedValue(value)
}

// DecodeStrippedValue is DecodeStripped for an already parsed value.
func (c *Codec) DecodeStrippedValue(value jsonvalue.Value) (*StrippedState, error) {
	if value.Kind() != jsonvalue.KindObject {
		return nil, malformed("stripped state event is a JSON %s, not an object", value.Kind())
	}
	stripped := &StrippedState{}
	content := jsonvalue.Object()
	var hasType, hasStateKey, hasSender bool
	for _, member := range value.Members() {
		stripped.keys = append(stripped.keys, member.Name)
		switch member.Name {
		case keyType, keyStateKey, keySender:
			text, err := stringField(member)
			if err != nil {
				return nil, err
			}
			switch member.Name {
			case keyType:
				stripped.eventType, hasType = ref.EventType(text), true
			case keyStateKey:
				stripped.stateKey, hasStateKey = text, true
			case keySender:
				stripped.sender, hasSender = text, true
			}
		case keyContent:
			content = member.Value
		default:
			stripped.extra = append(stripped.extra, member)
		}
	}
	switch {
	case !hasType:
		return nil, &MissingFieldError{Field: keyType}
	case !hasStateKey:
		return nil, &MissingFieldError{Field: keyStateKey}
	case !hasSender:
		return nil, &MissingFieldError{Field: keySender}
	}
	_, resolve := c.resolver(stripped.eventType, true, false)
	stripped.content = resolve(content)
	return stripped, nil
}

// ToValue returns the stripped event as a JSON object in wire order.
func (s *StrippedState) ToValue() jsonvalue.Value {
	known := map[string]jsonvalue.Value{
		keyType:     jsonvalue.String(string(s.eventType)),
		keyStateKey: jsonvalue.String(s.stateKey),
		keySender:   jsonvalue.String(s.sender),
		keyContent:  s.content.ToRaw(),
	}
	members := make([]jsonvalue.Member, 0, len(known)+len(s.extra))
	for _, name := range s.keys {
		if value, ok := known[name]; ok {
			members = append(members, jsonvalue.Member{Name: name, Value: value})
			delete(known, name)
		}
		for _, member := range s.extra {
			if member.Name == name {
				members = append(members, member)
			}
		}
	}
	for _, name := range []string{keyType, keyStateKey, keySender, keyContent} {
		if value, ok := known[name]; ok {
			members = append(members, jsonvalue.Member{Name: name, Value: value})
		}
	}
	return jsonvalue.Object(members...)
}

// Marshal encodes the stripped event as compact JSON.
func (s *StrippedState) Marshal() []byte {
	return s.ToValue().Marshal()
}

// Stripped reduces a state event to its stripped form. The second
// result is false for events that are not state events.
func (e *Event) Stripped() (*StrippedState, bool) {
	stateKey, ok := e.stateKey.get()
	if !ok || e.classification != eventkind.State {
		return nil, false
	}
	return &StrippedState{
		eventType: e.eventType,
		stateKey:  stateKey,
		sender:    e.sender,
		content:   e.content,
	}, true
}
