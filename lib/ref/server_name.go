// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"fmt"
	"strconv"
	"strings"
)

// ServerName is a validated Matrix server name: a DNS name, an IPv4
// literal, or a bracketed IPv6 literal, optionally followed by
// ":port" (e.g., "example.org", "10.0.0.1:8448", "[::1]:8448").
//
// ServerName is an immutable value type. The zero value is not valid;
// use IsZero to check.
type ServerName struct {
	name string
}

// ParseServerName validates and wraps a raw server name string.
func ParseServerName(raw string) (ServerName, error) {
	if err := validateServerName(raw); err != nil {
		return ServerName{}, err
	}
	return ServerName{name: raw}, nil
}

// MustParseServerName is like ParseServerName but panics on error. Use
// in tests and static initialization where the input is known-valid.
func MustParseServerName(raw string) ServerName {
	server, err := ParseServerName(raw)
	if err != nil {
		panic(fmt.Sprintf("ref.MustParseServerName(%q): %v", raw, err))
	}
	return server
}

// String returns the server name (e.g., "example.org:8448").
func (s ServerName) String() string { return s.name }

// IsZero reports whether the ServerName is the zero value.
func (s ServerName) IsZero() bool { return s.name == "" }

// Host returns the server name without its port.
func (s ServerName) Host() string {
	host, _ := splitHostPort(s.name)
	return host
}

// Port returns the explicit port, or 0 when the server name has none.
func (s ServerName) Port() int {
	_, port := splitHostPort(s.name)
	return port
}

// MarshalText implements encoding.TextMarshaler.
func (s ServerName) MarshalText() ([]byte, error) {
	return []byte(s.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty input
// produces the zero value.
func (s *ServerName) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*s = ServerName{}
		return nil
	}
	parsed, err := ParseServerName(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// validateServerName applies the server name grammar. It is
// deliberately shallow for DNS names (any of a-z, A-Z, 0-9, '-', '.')
// because federation resolves names later; the goal is to reject
// sigils, whitespace, and malformed ports at the boundary.
func validateServerName(name string) error {
	if name == "" {
		return fmt.Errorf("server name is empty")
	}
	host, port := name, ""
	if strings.HasPrefix(name, "[") {
		closing := strings.IndexByte(name, ']')
		if closing < 0 {
			return fmt.Errorf("server name %q: unterminated IPv6 literal", name)
		}
		host = name[:closing+1]
		rest := name[closing+1:]
		if rest != "" {
			if rest[0] != ':' {
				return fmt.Errorf("server name %q: unexpected %q after IPv6 literal", name, rest)
			}
			port = rest[1:]
			if port == "" {
				return fmt.Errorf("server name %q: empty port", name)
			}
		}
		for i := 1; i < len(host)-1; i++ {
			c := host[i]
			if !isHexDigit(c) && c != ':' && c != '.' {
				return fmt.Errorf("server name %q: invalid character %q in IPv6 literal", name, c)
			}
		}
	} else {
		if colon := strings.LastIndexByte(name, ':'); colon >= 0 {
			host, port = name[:colon], name[colon+1:]
			if port == "" {
				return fmt.Errorf("server name %q: empty port", name)
			}
		}
		if host == "" {
			return fmt.Errorf("server name %q: empty host", name)
		}
		for i := 0; i < len(host); i++ {
			c := host[i]
			if !isDNSChar(c) {
				return fmt.Errorf("server name %q: invalid character %q at position %d", name, c, i)
			}
		}
	}
	if port != "" {
		value, err := strconv.Atoi(port)
		if err != nil || value < 1 || value > 65535 || port[0] == '+' {
			return fmt.Errorf("server name %q: invalid port %q", name, port)
		}
	}
	return nil
}

// splitHostPort splits a validated server name into host and port.
func splitHostPort(name string) (string, int) {
	separator := strings.LastIndexByte(name, ':')
	if separator < 0 || strings.HasSuffix(name, "]") {
		return name, 0
	}
	if strings.HasPrefix(name, "[") && !strings.Contains(name[:separator], "]") {
		return name, 0
	}
	port, err := strconv.Atoi(name[separator+1:])
	if err != nil {
		return name, 0
	}
	return name[:separator], port
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isDNSChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '.'
}
