// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package eventhash computes content fingerprints for events.
//
// A fingerprint is a BLAKE3 keyed hash over the canonical JSON of an
// event. The unsigned block is excluded: it carries server-local
// metadata (age, transaction IDs) that differs between deliveries of
// the same event. Fingerprints are what the archive uses to skip
// duplicate appends, and what the CLI prints for quick comparison of
// two event streams.
//
// Event fingerprints and content fingerprints live in separate hash
// domains, so identical bytes never collide across the two.
package eventhash

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/roomevents/lib/event"
	"github.com/bureau-foundation/roomevents/lib/eventcontent"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// domainKey is a 32-byte key for BLAKE3 keyed hashing.
type domainKey [32]byte

// Domain keys are the ASCII domain name zero-padded to 32 bytes.
// Changing either invalidates every stored fingerprint in its domain.
var (
	eventDomainKey = domainKey{
		'r', 'o', 'o', 'm', 'e', 'v', 'e', 'n', 't', 's', '.',
		'e', 'v', 'e', 'n', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	contentDomainKey = domainKey{
		'r', 'o', 'o', 'm', 'e', 'v', 'e', 'n', 't', 's', '.',
		'c', 'o', 'n', 't', 'e', 'n', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Fingerprint hashes the canonical JSON of ev without its unsigned
// block. Two events that encode to the same canonical form (regardless
// of key order on the wire) have the same fingerprint.
func Fingerprint(ev *event.Event) Hash {
	return keyedHash(eventDomainKey, ev.ToValue().Without("unsigned").Canonical())
}

// ContentFingerprint hashes the canonical JSON of a content object.
// Typed, opaque, and redacted content with the same members hash the
// same.
func ContentFingerprint(content eventcontent.Content) Hash {
	return keyedHash(contentDomainKey, content.ToRaw().Canonical())
}

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters, for log lines and tables.
func (h Hash) Short() string {
	return hex.EncodeToString(h[:6])
}

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash parses a 64-character hex string into a Hash.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing event hash: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("event hash is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

func keyedHash(key domainKey, data []byte) Hash {
	// NewKeyed only fails for a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("eventhash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}
