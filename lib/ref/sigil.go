// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"fmt"
	"strings"
)

// Matrix identifier sigils.
const (
	sigilUser  = '@'
	sigilRoom  = '!'
	sigilEvent = '$'
	sigilAlias = '#'
)

// maxIdentifierLength is the protocol limit on the byte length of any
// user, room, or event identifier including its sigil and server.
const maxIdentifierLength = 255

// splitSigilled checks that identifier starts with sigil and splits the
// remainder at the first ':' into an opaque local part and a server
// name. The server name is validated; the local part only needs to be
// non-empty.
func splitSigilled(identifier string, sigil byte, kind string) (localpart, server string, err error) {
	if identifier == "" {
		return "", "", fmt.Errorf("empty %s", kind)
	}
	if len(identifier) > maxIdentifierLength {
		return "", "", fmt.Errorf("%s is %d bytes, maximum is %d", kind, len(identifier), maxIdentifierLength)
	}
	if identifier[0] != sigil {
		return "", "", fmt.Errorf("%s must start with '%c': %q", kind, sigil, identifier)
	}
	colonIndex := strings.IndexByte(identifier, ':')
	if colonIndex < 0 {
		return "", "", fmt.Errorf("%s missing ':server' suffix: %q", kind, identifier)
	}
	if colonIndex == 1 {
		return "", "", fmt.Errorf("%s has empty local part: %q", kind, identifier)
	}
	localpart = identifier[1:colonIndex]
	server = identifier[colonIndex+1:]
	if err := validateServerName(server); err != nil {
		return "", "", fmt.Errorf("%s %q: %w", kind, identifier, err)
	}
	return localpart, server, nil
}
