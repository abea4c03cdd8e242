// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"errors"
	"fmt"
	"time"

	"github.com/bureau-foundation/roomevents/lib/compress"
	"github.com/bureau-foundation/roomevents/lib/event"
	"github.com/bureau-foundation/roomevents/lib/eventhash"
	"github.com/bureau-foundation/roomevents/lib/sealed"
)

// RecordKind says what a record holds.
type RecordKind string

const (
	// KindEvent is an event archived as received.
	KindEvent RecordKind = "event"

	// KindRedaction is a redacted event whose original is sealed.
	KindRedaction RecordKind = "redaction"
)

// ErrNotSealed is returned by Reveal for records without a sealed
// original.
var ErrNotSealed = errors.New("record has no sealed original")

// Record is one archive entry.
type Record struct {
	Kind RecordKind `cbor:"kind"`

	// Fingerprint is the eventhash fingerprint of the payload event.
	Fingerprint eventhash.Hash `cbor:"fingerprint"`

	EventType string `cbor:"type"`
	EventID   string `cbor:"event_id,omitempty"`

	ArchivedAt time.Time `cbor:"archived_at"`

	// Compression and Size describe Payload: the compression tag used
	// and the uncompressed length.
	Compression compress.Tag `cbor:"compression"`
	Size        int          `cbor:"size"`
	Payload     []byte       `cbor:"payload"`

	// Original is the fingerprint of the pre-redaction event and
	// Sealed its age ciphertext (base64). Both are set only on
	// redaction records.
	Original *eventhash.Hash `cbor:"original,omitempty"`
	Sealed   string          `cbor:"sealed,omitempty"`
}

// JSON returns the decompressed event JSON of the payload.
func (r *Record) JSON() ([]byte, error) {
	data, err := compress.Decompress(r.Payload, r.Compression, r.Size)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.Fingerprint.Short(), err)
	}
	return data, nil
}

// Event decodes the payload event with codec.
func (r *Record) Event(codec *event.Codec) (*event.Event, error) {
	data, err := r.JSON()
	if err != nil {
		return nil, err
	}
	ev, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.Fingerprint.Short(), err)
	}
	return ev, nil
}

// Reveal decrypts the sealed original of a redaction record with an
// audit recipient's private key and decodes it with codec. The
// revealed event's fingerprint must match Original.
func Reveal(record *Record, codec *event.Codec, privateKey string) (*event.Event, error) {
	if record.Sealed == "" || record.Original == nil {
		return nil, fmt.Errorf("record %s: %w", record.Fingerprint.Short(), ErrNotSealed)
	}
	plaintext, err := sealed.Decrypt(record.Sealed, privateKey)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", record.Fingerprint.Short(), err)
	}
	original, err := codec.Decode(plaintext)
	if err != nil {
		return nil, fmt.Errorf("record %s: sealed original: %w", record.Fingerprint.Short(), err)
	}
	if got := eventhash.Fingerprint(original); got != *record.Original {
		return nil, fmt.Errorf("record %s: sealed original fingerprint %s does not match %s",
			record.Fingerprint.Short(), got.Short(), record.Original.Short())
	}
	return original, nil
}
