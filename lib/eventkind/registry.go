// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventkind

import (
	"fmt"
	"sort"

	"github.com/bureau-foundation/roomevents/lib/ref"
)

// Registry maps event type strings to kinds. The zero value and the
// nil *Registry are both valid, empty registries: every lookup reports
// an unknown kind.
type Registry struct {
	kinds map[ref.EventType]*Kind
}

// New returns a registry holding the given kinds. Two kinds with the
// same event type are an error.
func New(kinds ...*Kind) (*Registry, error) {
	registry := &Registry{kinds: make(map[ref.EventType]*Kind, len(kinds))}
	for _, kind := range kinds {
		if kind == nil {
			return nil, fmt.Errorf("eventkind: nil kind")
		}
		if _, exists := registry.kinds[kind.eventType]; exists {
			return nil, fmt.Errorf("eventkind: %s registered more than once", kind.eventType)
		}
		registry.kinds[kind.eventType] = kind
	}
	return registry, nil
}

// FromSpecs defines each spec and builds a registry from the results.
func FromSpecs(specs ...Spec) (*Registry, error) {
	kinds := make([]*Kind, 0, len(specs))
	for _, spec := range specs {
		kind, err := Define(spec)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return New(kinds...)
}

// Lookup returns the kind registered for eventType. The second result
// is false for unknown types, which callers must handle as a normal
// case.
func (r *Registry) Lookup(eventType ref.EventType) (*Kind, bool) {
	if r == nil {
		return nil, false
	}
	kind, ok := r.kinds[eventType]
	return kind, ok
}

// ClassificationOf returns the classification of eventType, or Unknown
// when no kind is registered for it.
func (r *Registry) ClassificationOf(eventType ref.EventType) Classification {
	kind, ok := r.Lookup(eventType)
	if !ok {
		return Unknown
	}
	return kind.classification
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.kinds)
}

// Types returns the registered event types in sorted order.
func (r *Registry) Types() []ref.EventType {
	if r == nil {
		return nil
	}
	types := make([]ref.EventType, 0, len(r.kinds))
	for eventType := range r.kinds {
		types = append(types, eventType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Kinds returns every registered kind, sorted by event type.
func (r *Registry) Kinds() []*Kind {
	types := r.Types()
	kinds := make([]*Kind, len(types))
	for i, eventType := range types {
		kinds[i] = r.kinds[eventType]
	}
	return kinds
}

// With returns a new registry containing r's kinds plus the given ones.
// A given kind replaces a registered kind with the same event type,
// which lets deployments override the default table for a single kind.
// r itself is unchanged.
func (r *Registry) With(kinds ...*Kind) (*Registry, error) {
	extended := &Registry{kinds: make(map[ref.EventType]*Kind, r.Len()+len(kinds))}
	if r != nil {
		for eventType, kind := range r.kinds {
			extended.kinds[eventType] = kind
		}
	}
	seen := make(map[ref.EventType]struct{}, len(kinds))
	for _, kind := range kinds {
		if kind == nil {
			return nil, fmt.Errorf("eventkind: nil kind")
		}
		if _, duplicate := seen[kind.eventType]; duplicate {
			return nil, fmt.Errorf("eventkind: %s given more than once", kind.eventType)
		}
		seen[kind.eventType] = struct{}{}
		extended.kinds[kind.eventType] = kind
	}
	return extended, nil
}
