// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
)

// ErrMalformedInput is returned when wire data is not valid JSON, is
// not a JSON object, or has an envelope field of the wrong JSON type.
// It is the same sentinel as jsonvalue.ErrMalformedInput.
var ErrMalformedInput = jsonvalue.ErrMalformedInput

// ErrMissingField is matched by every *MissingFieldError.
var ErrMissingField = errors.New("missing required field")

// MissingFieldError reports that a structurally mandatory top-level
// field (type, sender, or origin_server_ts) is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("event: missing required field %q", e.Field)
}

// Is makes errors.Is(err, ErrMissingField) match.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("event: %w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}
