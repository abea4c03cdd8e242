// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"slices"
	"time"

	"github.com/bureau-foundation/roomevents/lib/eventcontent"
	"github.com/bureau-foundation/roomevents/lib/eventkind"
	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
	"github.com/bureau-foundation/roomevents/lib/ref"
)

// Top-level wire keys the envelope understands.
const (
	keyType           = "type"
	keyStateKey       = "state_key"
	keySender         = "sender"
	keyRoomID         = "room_id"
	keyEventID        = "event_id"
	keyOriginServerTS = "origin_server_ts"
	keyContent        = "content"
	keyPrevContent    = "prev_content"
	keyUnsigned       = "unsigned"
)

// envelopeKeys is the order in which an event built locally is encoded.
var envelopeKeys = []string{
	keyType,
	keyStateKey,
	keySender,
	keyRoomID,
	keyEventID,
	keyOriginServerTS,
	keyContent,
	keyPrevContent,
	keyUnsigned,
}

func isEnvelopeKey(name string) bool {
	return slices.Contains(envelopeKeys, name)
}

// unsignedRedactedBecause is the unsigned key a server sets on events
// it has redacted. Its presence makes the codec resolve content as
// redacted rather than checking the required-field schema.
const unsignedRedactedBecause = "redacted_because"

// optionalString is a string field that may be absent from the wire.
// Absent and empty are different: an empty state_key is the common
// case for room-wide state.
type optionalString struct {
	value string
	set   bool
}

func someString(value string) optionalString {
	return optionalString{value: value, set: true}
}

func (o optionalString) get() (string, bool) { return o.value, o.set }

// Event is one room event. Construct it with Codec.Decode for wire data
// or Codec.New for outgoing events. The zero Event is not useful.
type Event struct {
	eventType      ref.EventType
	classification eventkind.Classification
	content        eventcontent.Content
	stateKey       optionalString
	sender         string
	originServerTS int64
	eventID        optionalString
	roomID         optionalString

	// unsigned is a JSON object when hasUnsigned is set.
	unsigned    jsonvalue.Value
	hasUnsigned bool

	prevContent    eventcontent.Content
	hasPrevContent bool

	// extra holds top-level members the envelope does not know, in
	// wire order.
	extra []jsonvalue.Member

	// keys is the top-level key order of decoded wire data. Encoding
	// follows it; events built locally leave it nil and encode in
	// envelopeKeys order.
	keys []string
}

// Type returns the event type string.
func (e *Event) Type() ref.EventType { return e.eventType }

// Class returns the event's classification. For registered kinds whose
// state_key presence matches the kind, this is the kind's
// classification. Otherwise (unregistered types and inconsistent
// events) it is State when a state_key is present and Message when not.
// It is never eventkind.Unknown.
func (e *Event) Class() eventkind.Classification { return e.classification }

// IsState reports whether the event is classified as a state event.
func (e *Event) IsState() bool { return e.classification == eventkind.State }

// Content returns the event content.
func (e *Event) Content() eventcontent.Content { return e.content }

// StateKey returns the state key and whether one is present.
func (e *Event) StateKey() (string, bool) { return e.stateKey.get() }

// Sender returns the sender string as it appeared on the wire.
func (e *Event) Sender() string { return e.sender }

// SenderID parses the sender as a user ID. Decoding does not validate
// the sender, so this can fail for events from misbehaving peers.
func (e *Event) SenderID() (ref.UserID, error) { return ref.ParseUserID(e.sender) }

// OriginServerTS returns the origin timestamp in milliseconds since the
// Unix epoch.
func (e *Event) OriginServerTS() int64 { return e.originServerTS }

// Timestamp returns OriginServerTS as a time.Time.
func (e *Event) Timestamp() time.Time { return time.UnixMilli(e.originServerTS).UTC() }

// EventID returns the event ID and whether one is present.
func (e *Event) EventID() (string, bool) { return e.eventID.get() }

// RoomID returns the room ID and whether one is present. Events inside
// a sync response omit it; federation and stored events carry it.
func (e *Event) RoomID() (string, bool) { return e.roomID.get() }

// Unsigned returns the unsigned metadata object. It is an empty object
// when the event has none; use HasUnsigned to tell the difference.
func (e *Event) Unsigned() jsonvalue.Value {
	if !e.hasUnsigned {
		return jsonvalue.Object()
	}
	return e.unsigned.Clone()
}

// HasUnsigned reports whether the event carries an unsigned object.
func (e *Event) HasUnsigned() bool { return e.hasUnsigned }

// PrevContent returns the previous content of a state event and whether
// it is present.
func (e *Event) PrevContent() (eventcontent.Content, bool) {
	return e.prevContent, e.hasPrevContent
}

// Extra returns the top-level members the envelope does not know, in
// wire order, as an object.
func (e *Event) Extra() jsonvalue.Value {
	return jsonvalue.Object(e.extra...).Clone()
}

// Keys returns the top-level keys the event encodes, in encoding order.
func (e *Event) Keys() []string {
	keys := make([]string, 0, len(envelopeKeys)+len(e.extra))
	for _, member := range e.ToValue().Members() {
		keys = append(keys, member.Name)
	}
	return keys
}

// WithContent returns a copy of the event with its content replaced.
func (e *Event) WithContent(content eventcontent.Content) *Event {
	copied := e.clone()
	copied.content = content
	return copied
}

// WithPrevContent returns a copy of the event with its previous content
// replaced. It does not add prev_content to an event that has none.
func (e *Event) WithPrevContent(content eventcontent.Content) *Event {
	copied := e.clone()
	if copied.hasPrevContent {
		copied.prevContent = content
	}
	return copied
}

// WithUnsigned returns a copy of the event with the named unsigned
// member set, adding an unsigned object if the event has none.
func (e *Event) WithUnsigned(name string, value jsonvalue.Value) *Event {
	copied := e.clone()
	copied.unsigned = copied.Unsigned().With(name, value)
	if !copied.hasUnsigned {
		copied.hasUnsigned = true
		if copied.keys != nil {
			copied.keys = append(copied.keys, keyUnsigned)
		}
	}
	return copied
}

func (e *Event) clone() *Event {
	copied := *e
	copied.extra = slices.Clone(e.extra)
	copied.keys = slices.Clone(e.keys)
	return &copied
}

// Equal reports whether two events carry the same envelope fields,
// content, unsigned data, and extra members. The position of envelope
// keys in the wire object does not matter; extra members and the
// members of content and unsigned compare in order.
func Equal(a, b *Event) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.eventType != b.eventType ||
		a.classification != b.classification ||
		a.stateKey != b.stateKey ||
		a.sender != b.sender ||
		a.originServerTS != b.originServerTS ||
		a.eventID != b.eventID ||
		a.roomID != b.roomID ||
		a.hasUnsigned != b.hasUnsigned ||
		a.hasPrevContent != b.hasPrevContent {
		return false
	}
	if !eventcontent.Equal(a.content, b.content) {
		return false
	}
	if a.hasUnsigned && !jsonvalue.Equal(a.unsigned, b.unsigned) {
		return false
	}
	if a.hasPrevContent && !eventcontent.Equal(a.prevContent, b.prevContent) {
		return false
	}
	return jsonvalue.Equal(jsonvalue.Object(a.extra...), jsonvalue.Object(b.extra...))
}
