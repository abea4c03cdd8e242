// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventcontent

import (
	"fmt"

	"github.com/bureau-foundation/roomevents/lib/eventkind"
	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
	"github.com/bureau-foundation/roomevents/lib/ref"
)

// Variant says which of the three content shapes a Content holds.
type Variant uint8

const (
	// Opaque content is kept verbatim. It is the zero Variant.
	Opaque Variant = iota

	// Typed content satisfied its kind's schema.
	Typed

	// Redacted content is a registered kind reduced to its retain-set.
	Redacted
)

// String returns "opaque", "typed", or "redacted".
func (v Variant) String() string {
	switch v {
	case Opaque:
		return "opaque"
	case Typed:
		return "typed"
	case Redacted:
		return "redacted"
	default:
		return fmt.Sprintf("variant(%d)", v)
	}
}

// Content is the content of one event. The zero Content is opaque JSON
// null with no event type; use [Empty] for an empty object.
type Content struct {
	variant   Variant
	eventType ref.EventType

	// kind is set for Typed and Redacted content.
	kind *eventkind.Kind

	// members holds Typed and Redacted content in wire order. Each member
	// is marked known or extra at construction, so the known and extra
	// name sets are disjoint by construction.
	members []member

	// raw holds Opaque content.
	raw jsonvalue.Value
}

type member struct {
	name  string
	value jsonvalue.Value
	known bool
}

// FromRaw resolves content received for eventType. It never fails:
//
//   - unregistered eventType: Opaque
//   - raw is not a JSON object: Opaque
//   - a required field is absent or has the wrong JSON kind: Opaque
//   - otherwise: Typed, with schema fields whose JSON kind matches as
//     known fields and everything else in the extra-fields sidecar.
//
// An optional field whose JSON kind does not match the schema is not
// an error either; it lands in the sidecar and is re-emitted as is.
func FromRaw(eventType ref.EventType, raw jsonvalue.Value, registry *eventkind.Registry) Content {
	kind, ok := registry.Lookup(eventType)
	if !ok || raw.Kind() != jsonvalue.KindObject || !satisfiesSchema(kind, raw) {
		return NewOpaque(eventType, raw)
	}
	return Content{
		variant:   Typed,
		eventType: eventType,
		kind:      kind,
		members:   partition(kind, raw),
	}
}

// FromRedactedRaw resolves content of an event that has already been
// redacted (its unsigned data carries redacted_because). Registered
// kinds produce Redacted content without checking required fields;
// everything else falls back to FromRaw's rules.
func FromRedactedRaw(eventType ref.EventType, raw jsonvalue.Value, registry *eventkind.Registry) Content {
	kind, ok := registry.Lookup(eventType)
	if !ok || raw.Kind() != jsonvalue.KindObject {
		return NewOpaque(eventType, raw)
	}
	return NewRedacted(kind, raw)
}

// NewOpaque wraps raw as opaque content of eventType. The value is
// cloned so the caller may keep using its copy.
func NewOpaque(eventType ref.EventType, raw jsonvalue.Value) Content {
	return Content{variant: Opaque, eventType: eventType, raw: raw.Clone()}
}

// NewRedacted builds Redacted content of kind from retained, which must
// already be reduced to the kind's retain-set. A non-object retained
// value is treated as an empty object. This constructor is for
// redaction; decoding goes through FromRaw or FromRedactedRaw.
func NewRedacted(kind *eventkind.Kind, retained jsonvalue.Value) Content {
	if retained.Kind() != jsonvalue.KindObject {
		retained = jsonvalue.Object()
	}
	return Content{
		variant:   Redacted,
		eventType: kind.Type(),
		kind:      kind,
		members:   partition(kind, retained),
	}
}

// Empty returns opaque empty-object content for eventType.
func Empty(eventType ref.EventType) Content {
	return Content{variant: Opaque, eventType: eventType, raw: jsonvalue.Object()}
}

// satisfiesSchema reports whether every required field of kind is
// present in the object raw with the declared JSON kind.
func satisfiesSchema(kind *eventkind.Kind, raw jsonvalue.Value) bool {
	for _, field := range kind.Required() {
		value, ok := raw.Get(field.Name)
		if !ok || value.Kind() != field.Kind {
			return false
		}
	}
	return true
}

func partition(kind *eventkind.Kind, object jsonvalue.Value) []member {
	objectMembers := object.Members()
	members := make([]member, len(objectMembers))
	for i, objectMember := range objectMembers {
		field, inSchema := kind.Field(objectMember.Name)
		members[i] = member{
			name:  objectMember.Name,
			value: objectMember.Value.Clone(),
			known: inSchema && field.Kind == objectMember.Value.Kind(),
		}
	}
	return members
}

// Variant returns the content's variant.
func (c Content) Variant() Variant { return c.variant }

// EventType returns the event type the content was resolved for.
func (c Content) EventType() ref.EventType { return c.eventType }

// Kind returns the registered kind of Typed and Redacted content. It
// returns nil for Opaque content, including content of a registered
// type that failed the schema.
func (c Content) Kind() *eventkind.Kind { return c.kind }

// ToRaw reconstructs the content as a JSON value. For Typed and
// Redacted content this is an object holding known and extra members in
// their original order; for Opaque content it is the stored value.
func (c Content) ToRaw() jsonvalue.Value {
	if c.variant == Opaque {
		return c.raw.Clone()
	}
	return c.object(func(member) bool { return true })
}

// Raw returns the stored value of Opaque content. Typed and Redacted
// content return an error matching ErrWrongVariant; use ToRaw for a
// variant-agnostic view.
func (c Content) Raw() (jsonvalue.Value, error) {
	if c.variant != Opaque {
		return jsonvalue.Value{}, fmt.Errorf("%w: Raw called on %s %s content", ErrWrongVariant, c.variant, c.eventType)
	}
	return c.raw.Clone(), nil
}

// Known returns the known fields of Typed or Redacted content as an
// object in wire order. Opaque content has no known fields and returns
// an empty object.
func (c Content) Known() jsonvalue.Value {
	return c.object(func(m member) bool { return m.known })
}

// Extra returns the extra-fields sidecar: every member that is not a
// schema field of matching JSON kind, in wire order. Opaque content
// returns an empty object; its members are all in Raw.
func (c Content) Extra() jsonvalue.Value {
	return c.object(func(m member) bool { return !m.known })
}

// Has reports whether the content carries a top-level member name,
// known or extra, in any variant.
func (c Content) Has(name string) bool {
	if c.variant == Opaque {
		return c.raw.Has(name)
	}
	for _, m := range c.members {
		if m.name == name {
			return true
		}
	}
	return false
}

// Field returns a known field of content the caller expects to be of
// eventType. It fails with a *WrongVariantError when the content is
// Opaque or belongs to another event type, and with ErrFieldAbsent when
// the field is not among the known fields. Redacted content answers for
// the fields that survived redaction.
func (c Content) Field(eventType ref.EventType, name string) (jsonvalue.Value, error) {
	if err := c.expect(eventType); err != nil {
		return jsonvalue.Value{}, err
	}
	for _, m := range c.members {
		if m.name == name && m.known {
			return m.value.Clone(), nil
		}
	}
	return jsonvalue.Value{}, fmt.Errorf("%w: %s content has no known field %q", ErrFieldAbsent, eventType, name)
}

// String renders the content as compact JSON.
func (c Content) String() string {
	return c.ToRaw().String()
}

// MarshalJSON encodes the content as ToRaw does.
func (c Content) MarshalJSON() ([]byte, error) {
	return c.ToRaw().Marshal(), nil
}

// Equal reports whether a and b have the same variant and event type
// and reconstruct to equal JSON. For Typed and Redacted content the
// known/extra split must match too, which it does whenever both were
// resolved against the same kind.
func Equal(a, b Content) bool {
	if a.variant != b.variant || a.eventType != b.eventType {
		return false
	}
	if a.variant == Opaque {
		return jsonvalue.Equal(a.raw, b.raw)
	}
	if len(a.members) != len(b.members) {
		return false
	}
	for i := range a.members {
		if a.members[i].name != b.members[i].name ||
			a.members[i].known != b.members[i].known ||
			!jsonvalue.Equal(a.members[i].value, b.members[i].value) {
			return false
		}
	}
	return true
}

func (c Content) expect(eventType ref.EventType) error {
	if c.variant == Opaque || c.eventType != eventType {
		return &WrongVariantError{Want: eventType, Got: c.eventType, Variant: c.variant}
	}
	return nil
}

func (c Content) object(keep func(member) bool) jsonvalue.Value {
	objectMembers := make([]jsonvalue.Member, 0, len(c.members))
	for _, m := range c.members {
		if keep(m) {
			objectMembers = append(objectMembers, jsonvalue.Member{Name: m.name, Value: m.value.Clone()})
		}
	}
	return jsonvalue.Object(objectMembers...)
}
