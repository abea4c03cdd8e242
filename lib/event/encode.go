// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
)

// ToValue returns the event as a JSON object. Decoded events keep their
// wire key order; locally built events use the envelope order (type,
// state_key, sender, room_id, event_id, origin_server_ts, content,
// prev_content, unsigned) followed by extra members. Content is always
// emitted, as an empty object when the wire data had none.
func (e *Event) ToValue() jsonvalue.Value {
	members := make([]jsonvalue.Member, 0, len(envelopeKeys)+len(e.extra))
	emitted := make(map[string]struct{}, cap(members))
	emit := func(name string) {
		if _, done := emitted[name]; done {
			return
		}
		if value, ok := e.member(name); ok {
			members = append(members, jsonvalue.Member{Name: name, Value: value})
			emitted[name] = struct{}{}
		}
	}
	for _, name := range e.keys {
		emit(name)
	}
	for _, name := range envelopeKeys {
		emit(name)
	}
	for _, member := range e.extra {
		emit(member.Name)
	}
	return jsonvalue.Object(members...)
}

// member returns the wire value of one top-level key.
func (e *Event) member(name string) (jsonvalue.Value, bool) {
	switch name {
	case keyType:
		return jsonvalue.String(string(e.eventType)), true
	case keyStateKey:
		return optionalValue(e.stateKey)
	case keySender:
		return jsonvalue.String(e.sender), true
	case keyRoomID:
		return optionalValue(e.roomID)
	case keyEventID:
		return optionalValue(e.eventID)
	case keyOriginServerTS:
		return jsonvalue.Int(e.originServerTS), true
	case keyContent:
		return e.content.ToRaw(), true
	case keyPrevContent:
		if !e.hasPrevContent {
			return jsonvalue.Value{}, false
		}
		return e.prevContent.ToRaw(), true
	case keyUnsigned:
		if !e.hasUnsigned {
			return jsonvalue.Value{}, false
		}
		return e.unsigned, true
	}
	for _, member := range e.extra {
		if member.Name == name {
			return member.Value, true
		}
	}
	return jsonvalue.Value{}, false
}

func optionalValue(field optionalString) (jsonvalue.Value, bool) {
	value, ok := field.get()
	if !ok {
		return jsonvalue.Value{}, false
	}
	return jsonvalue.String(value), true
}

// Marshal encodes the event as compact JSON.
func (e *Event) Marshal() []byte {
	return e.ToValue().Marshal()
}

// Canonical encodes the event as canonical JSON (sorted keys, no
// insignificant whitespace), the form hashed for fingerprints.
func (e *Event) Canonical() []byte {
	return e.ToValue().Canonical()
}

// MarshalJSON implements json.Marshaler.
func (e *Event) MarshalJSON() ([]byte, error) {
	return e.Marshal(), nil
}

// String renders the event as compact JSON.
func (e *Event) String() string {
	return string(e.Marshal())
}
