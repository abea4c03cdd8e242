// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package redact strips event content down to the fields a kind's
// retain-set keeps. Redaction is how moderators remove content from a
// room while keeping the event in the room graph: the envelope stays,
// the content shrinks to what the protocol needs to keep authorising
// later events (membership, join rules, power levels).
//
// Redaction produces a new Event; the original is never modified and
// stays available for audit. It never fails. Kinds the registry does
// not know lose all content, since there is no way to tell which of
// their fields are safe to keep.
package redact

import (
	"github.com/bureau-foundation/roomevents/lib/event"
	"github.com/bureau-foundation/roomevents/lib/eventcontent"
	"github.com/bureau-foundation/roomevents/lib/eventkind"
	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
)

// Redactor applies retain-sets from a kind registry.
type Redactor struct {
	registry *eventkind.Registry
}

// New returns a redactor using registry's retain-sets. A nil registry
// redacts every event to empty content.
func New(registry *eventkind.Registry) *Redactor {
	return &Redactor{registry: registry}
}

// Redact returns a copy of ev with its content, and its prev_content if
// present, reduced to the kind's retain-set. type, state_key, sender,
// origin_server_ts, event_id, room_id, unsigned, and extra top-level
// members are unchanged. Redacting a redacted event returns an equal
// event.
func (r *Redactor) Redact(ev *event.Event) *event.Event {
	redacted := ev.WithContent(r.RedactContent(ev.Content()))
	if prevContent, ok := ev.PrevContent(); ok {
		redacted = redacted.WithPrevContent(r.RedactContent(prevContent))
	}
	return redacted
}

// RedactContent reduces content to the retain-set of its event type.
//
// For a registered kind the result is Redacted content holding the
// retained members in their original order; retained members are taken
// from the reconstructed object, so fields an opaque or sidecar view
// held are kept too when the retain-set names them. For an unregistered
// type the result is opaque empty content.
func (r *Redactor) RedactContent(content eventcontent.Content) eventcontent.Content {
	kind, ok := r.registry.Lookup(content.EventType())
	if !ok {
		return eventcontent.Empty(content.EventType())
	}
	raw := content.ToRaw()
	if raw.Kind() != jsonvalue.KindObject {
		return eventcontent.NewRedacted(kind, jsonvalue.Object())
	}
	return eventcontent.NewRedacted(kind, raw.Filter(kind.Retains))
}

// IsRedacted reports whether ev has been redacted: its content is
// Redacted, or its unsigned data carries the redacted_because marker a
// server adds. Events of unregistered types redact to opaque empty
// content, which is indistinguishable from an event sent empty, so for
// them only the marker counts.
func IsRedacted(ev *event.Event) bool {
	if ev.Content().Variant() == eventcontent.Redacted {
		return true
	}
	return ev.Unsigned().Has("redacted_because")
}
