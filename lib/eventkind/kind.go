// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventkind

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
	"github.com/bureau-foundation/roomevents/lib/ref"
)

// Classification says how an event of a kind participates in a room.
type Classification uint8

const (
	// Unknown is returned for event types with no registered kind.
	Unknown Classification = iota

	// Message events form the room timeline and never replace each
	// other.
	Message

	// State events replace the previous event with the same
	// (type, state_key) pair. They always carry a state_key.
	State

	// Ephemeral events (typing notifications, receipts, presence) are
	// delivered but never persisted in the room DAG.
	Ephemeral
)

// String returns the lowercase classification name.
func (c Classification) String() string {
	switch c {
	case Message:
		return "message"
	case State:
		return "state"
	case Ephemeral:
		return "ephemeral"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("classification(%d)", c)
	}
}

// ParseClassification parses "message", "state", or "ephemeral". The
// name "unknown" is rejected: a registered kind always has a definite
// classification.
func ParseClassification(name string) (Classification, error) {
	switch strings.ToLower(name) {
	case "message":
		return Message, nil
	case "state":
		return State, nil
	case "ephemeral":
		return Ephemeral, nil
	default:
		return Unknown, fmt.Errorf("unknown classification %q (want message, state, or ephemeral)", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Field describes one content field of a kind's schema.
type Field struct {
	Name string
	Kind jsonvalue.Kind
}

// Spec is the mutable description of a kind, as read from a table.
// [Define] validates a Spec and freezes it into a Kind.
type Spec struct {
	Type           ref.EventType
	Classification Classification

	// Required fields must be present with the given JSON kind for
	// content to decode as typed.
	Required []Field

	// Optional fields are part of the typed view when present with the
	// given JSON kind; otherwise they travel in the extra-fields
	// sidecar like any unknown field.
	Optional []Field

	// Retain lists the content fields that survive redaction.
	Retain []string

	// RetainAll keeps every content field through redaction (used by
	// m.room.create). Mutually exclusive with Retain.
	RetainAll bool
}

// Kind is an immutable, validated event kind. All accessors return
// copies, so a *Kind can be shared freely.
type Kind struct {
	eventType      ref.EventType
	classification Classification
	required       []Field
	optional       []Field
	fields         map[string]fieldInfo
	retain         map[string]struct{}
	retainOrder    []string
	retainAll      bool
}

type fieldInfo struct {
	kind     jsonvalue.Kind
	required bool
}

// Define validates spec and returns the corresponding Kind. Field lists
// are sorted by name so that two specs describing the same kind produce
// identical Kinds regardless of table ordering.
func Define(spec Spec) (*Kind, error) {
	if err := spec.Type.Validate(); err != nil {
		return nil, fmt.Errorf("eventkind: %w", err)
	}
	switch spec.Classification {
	case Message, State, Ephemeral:
	default:
		return nil, fmt.Errorf("eventkind: %s: classification must be message, state, or ephemeral, got %s", spec.Type, spec.Classification)
	}
	if spec.RetainAll && len(spec.Retain) > 0 {
		return nil, fmt.Errorf("eventkind: %s: retain_all and retain are mutually exclusive", spec.Type)
	}

	kind := &Kind{
		eventType:      spec.Type,
		classification: spec.Classification,
		fields:         make(map[string]fieldInfo, len(spec.Required)+len(spec.Optional)),
		retain:         make(map[string]struct{}, len(spec.Retain)),
		retainAll:      spec.RetainAll,
	}
	addFields := func(fields []Field, required bool) error {
		for _, field := range fields {
			if field.Name == "" {
				return fmt.Errorf("eventkind: %s: field with empty name", spec.Type)
			}
			if field.Kind > jsonvalue.KindObject {
				return fmt.Errorf("eventkind: %s: field %q has invalid kind %s", spec.Type, field.Name, field.Kind)
			}
			if _, exists := kind.fields[field.Name]; exists {
				return fmt.Errorf("eventkind: %s: field %q declared more than once", spec.Type, field.Name)
			}
			kind.fields[field.Name] = fieldInfo{kind: field.Kind, required: required}
		}
		return nil
	}
	if err := addFields(spec.Required, true); err != nil {
		return nil, err
	}
	if err := addFields(spec.Optional, false); err != nil {
		return nil, err
	}
	kind.required = sortedFields(spec.Required)
	kind.optional = sortedFields(spec.Optional)

	for _, name := range spec.Retain {
		if name == "" {
			return nil, fmt.Errorf("eventkind: %s: empty name in retain list", spec.Type)
		}
		if _, exists := kind.retain[name]; exists {
			return nil, fmt.Errorf("eventkind: %s: %q listed twice in retain", spec.Type, name)
		}
		kind.retain[name] = struct{}{}
		kind.retainOrder = append(kind.retainOrder, name)
	}
	sort.Strings(kind.retainOrder)
	return kind, nil
}

// MustDefine is like Define but panics on an invalid spec. Use for
// static tables in tests.
func MustDefine(spec Spec) *Kind {
	kind, err := Define(spec)
	if err != nil {
		panic(err)
	}
	return kind
}

// Type returns the event type string the kind is registered under.
func (k *Kind) Type() ref.EventType { return k.eventType }

// Classification returns whether the kind is a message, state, or
// ephemeral event.
func (k *Kind) Classification() Classification { return k.classification }

// Required returns the required fields sorted by name.
func (k *Kind) Required() []Field { return slices.Clone(k.required) }

// Optional returns the optional fields sorted by name.
func (k *Kind) Optional() []Field { return slices.Clone(k.optional) }

// Field returns the schema entry for a content field name, and whether
// the name is part of the schema at all.
func (k *Kind) Field(name string) (Field, bool) {
	info, ok := k.fields[name]
	if !ok {
		return Field{}, false
	}
	return Field{Name: name, Kind: info.kind}, true
}

// IsRequired reports whether name is a required field.
func (k *Kind) IsRequired(name string) bool {
	return k.fields[name].required
}

// RetainAll reports whether redaction keeps every content field.
func (k *Kind) RetainAll() bool { return k.retainAll }

// Retain returns the retain-set sorted by name. It is empty for
// RetainAll kinds; use Retains to test membership.
func (k *Kind) Retain() []string { return slices.Clone(k.retainOrder) }

// Retains reports whether the content field name survives redaction.
func (k *Kind) Retains(name string) bool {
	if k.retainAll {
		return true
	}
	_, ok := k.retain[name]
	return ok
}

// Spec returns a mutable description equivalent to the kind.
func (k *Kind) Spec() Spec {
	return Spec{
		Type:           k.eventType,
		Classification: k.classification,
		Required:       k.Required(),
		Optional:       k.Optional(),
		Retain:         k.Retain(),
		RetainAll:      k.retainAll,
	}
}

func sortedFields(fields []Field) []Field {
	sorted := slices.Clone(fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}
