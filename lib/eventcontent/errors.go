// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventcontent

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/roomevents/lib/ref"
)

// ErrWrongVariant is matched by every *WrongVariantError.
var ErrWrongVariant = errors.New("eventcontent: wrong content variant")

// ErrFieldAbsent is returned by Content.Field when the content has the
// expected type but does not carry the requested known field.
var ErrFieldAbsent = errors.New("eventcontent: field absent")

// WrongVariantError reports typed access to content that is not typed
// content of the expected event type. It is a caller error: the data
// itself decoded fine, the caller asked for the wrong shape.
type WrongVariantError struct {
	// Want is the event type the caller asked for.
	Want ref.EventType

	// Got is the event type the content was decoded for.
	Got ref.EventType

	// Variant is the actual variant of the content.
	Variant Variant
}

func (e *WrongVariantError) Error() string {
	if e.Variant == Opaque {
		return fmt.Sprintf("eventcontent: want typed %s content, got opaque %s content", e.Want, e.Got)
	}
	return fmt.Sprintf("eventcontent: want %s content, got %s %s content", e.Want, e.Variant, e.Got)
}

// Is makes errors.Is(err, ErrWrongVariant) match.
func (e *WrongVariantError) Is(target error) bool {
	return target == ErrWrongVariant
}
