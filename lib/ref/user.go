// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import "fmt"

// UserID is a validated Matrix user ID (e.g., "@alice:example.org").
//
// Validation accepts the historical localpart grammar (any printable
// ASCII except ':') because events from long-lived rooms still carry
// senders registered before the grammar was tightened. Use IsHistorical
// to detect localparts outside the current grammar (a-z, 0-9, and
// . _ = - / +).
//
// UserID is an immutable value type. The zero value is not valid;
// use IsZero to check.
type UserID struct {
	id             string
	localpartEnd   int
	historicalForm bool
}

// ParseUserID validates and wraps a raw Matrix user ID string.
func ParseUserID(raw string) (UserID, error) {
	localpart, _, err := splitSigilled(raw, sigilUser, "user ID")
	if err != nil {
		return UserID{}, err
	}
	historical := false
	for i := 0; i < len(localpart); i++ {
		c := localpart[i]
		if c < 0x21 || c > 0x7e {
			return UserID{}, fmt.Errorf("user ID %q: invalid character %q in localpart", raw, c)
		}
		if !isStrictLocalpartChar(c) {
			historical = true
		}
	}
	return UserID{id: raw, localpartEnd: 1 + len(localpart), historicalForm: historical}, nil
}

// MustParseUserID is like ParseUserID but panics on error. Use in tests
// and static initialization where the input is known-valid.
func MustParseUserID(raw string) UserID {
	userID, err := ParseUserID(raw)
	if err != nil {
		panic(fmt.Sprintf("ref.MustParseUserID(%q): %v", raw, err))
	}
	return userID
}

// String returns the full user ID (e.g., "@alice:example.org").
func (u UserID) String() string { return u.id }

// IsZero reports whether the UserID is the zero value.
func (u UserID) IsZero() bool { return u.id == "" }

// Localpart returns the part between '@' and the first ':'. Panics on
// the zero value.
func (u UserID) Localpart() string {
	if u.id == "" {
		panic("UserID.Localpart called on zero value")
	}
	return u.id[1:u.localpartEnd]
}

// Server returns the server name portion. Panics on the zero value.
func (u UserID) Server() ServerName {
	if u.id == "" {
		panic("UserID.Server called on zero value")
	}
	return ServerName{name: u.id[u.localpartEnd+1:]}
}

// IsHistorical reports whether the localpart uses characters outside
// the current user ID grammar.
func (u UserID) IsHistorical() bool { return u.historicalForm }

// MarshalText implements encoding.TextMarshaler.
func (u UserID) MarshalText() ([]byte, error) {
	return []byte(u.id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty input
// produces the zero value.
func (u *UserID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*u = UserID{}
		return nil
	}
	parsed, err := ParseUserID(string(data))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// isStrictLocalpartChar reports whether c is allowed in user ID
// localparts registered under the current grammar.
func isStrictLocalpartChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '.', '_', '=', '-', '/', '+':
		return true
	}
	return false
}
