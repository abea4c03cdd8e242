// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventcontent

import (
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/roomevents/lib/eventkind"
	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
	"github.com/bureau-foundation/roomevents/lib/ref"
)

// Schema is implemented by content structs (see lib/schema). The
// method must work on the zero value: As calls it on a zero T to learn
// which event type T describes.
type Schema interface {
	EventType() ref.EventType
}

// As decodes the known fields of content into a T. It fails with a
// *WrongVariantError when content is Opaque or its event type differs
// from T's. Extra fields are not visible through T; read them with
// Content.Extra.
//
//	message, err := eventcontent.As[schema.MessageContent](ev.Content())
func As[T Schema](content Content) (T, error) {
	var result T
	if err := content.expect(result.EventType()); err != nil {
		return result, err
	}
	if err := json.Unmarshal(content.Known().Marshal(), &result); err != nil {
		return result, fmt.Errorf("eventcontent: decoding %s content into %T: %w", content.eventType, result, err)
	}
	return result, nil
}

// FromStruct builds outgoing content from a content struct. The struct
// is encoded with encoding/json and resolved through FromRaw, so the
// result is exactly what a receiver with the same registry would see.
// When value's event type is registered, the encoded struct must
// satisfy the kind's schema; content that would degrade to Opaque is an
// error here because a local caller built it. Unregistered event types
// produce Opaque content.
func FromStruct(registry *eventkind.Registry, value Schema) (Content, error) {
	eventType := value.EventType()
	encoded, err := json.Marshal(value)
	if err != nil {
		return Content{}, fmt.Errorf("eventcontent: encoding %s content: %w", eventType, err)
	}
	raw, err := jsonvalue.Parse(encoded)
	if err != nil {
		return Content{}, fmt.Errorf("eventcontent: re-parsing %s content: %w", eventType, err)
	}
	content := FromRaw(eventType, raw, registry)
	if _, registered := registry.Lookup(eventType); registered && content.variant != Typed {
		return Content{}, fmt.Errorf("eventcontent: %T does not satisfy the %s schema (missing or mistyped required field)", value, eventType)
	}
	return content, nil
}
