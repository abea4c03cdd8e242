// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsonvalue

import (
	"bytes"
	"encoding/json"
	"sort"
	"unicode/utf8"
)

// Marshal returns the compact JSON encoding of the value: members in
// order, numbers as their original literal, and no HTML escaping. It
// never fails.
func (v Value) Marshal() []byte {
	return v.AppendTo(nil)
}

// AppendTo appends the compact JSON encoding of the value to dst.
func (v Value) AppendTo(dst []byte) []byte {
	return v.appendJSON(dst, false)
}

// Canonical returns the Matrix canonical JSON encoding: object members
// sorted by name (UTF-8 byte order, which equals code point order), no
// insignificant whitespace, and only the mandatory string escapes.
// Canonical output is the input to event fingerprints, so two values
// that differ only in member order have the same canonical form.
func (v Value) Canonical() []byte {
	return v.appendJSON(nil, true)
}

// Indent returns the JSON encoding indented for human display. Member
// order is preserved.
func (v Value) Indent(prefix, indent string) []byte {
	var buffer bytes.Buffer
	// Marshal always emits valid JSON, so Indent cannot fail.
	_ = json.Indent(&buffer, v.Marshal(), prefix, indent)
	return buffer.Bytes()
}

// MarshalJSON implements json.Marshaler so a Value can be embedded in
// ordinary structs.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.Marshal(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) appendJSON(dst []byte, canonical bool) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		if v.boolean {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindNumber:
		return append(dst, v.text...)
	case KindString:
		return appendString(dst, v.text)
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.items {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = item.appendJSON(dst, canonical)
		}
		return append(dst, ']')
	case KindObject:
		members := v.members
		if canonical && len(members) > 1 {
			members = make([]Member, len(v.members))
			copy(members, v.members)
			sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		}
		dst = append(dst, '{')
		for i, member := range members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, member.Name)
			dst = append(dst, ':')
			dst = member.Value.appendJSON(dst, canonical)
		}
		return append(dst, '}')
	}
	return append(dst, "null"...)
}

const hexDigits = "0123456789abcdef"

// appendString appends s as a JSON string literal. Only '"', '\\', and
// control characters are escaped. Invalid UTF-8 bytes are replaced with
// U+FFFD so the output is always valid UTF-8.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				dst = append(dst, '\\', c)
			case c >= 0x20:
				dst = append(dst, c)
			case c == '\n':
				dst = append(dst, '\\', 'n')
			case c == '\r':
				dst = append(dst, '\\', 'r')
			case c == '\t':
				dst = append(dst, '\\', 't')
			case c == '\b':
				dst = append(dst, '\\', 'b')
			case c == '\f':
				dst = append(dst, '\\', 'f')
			default:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, "\uFFFD"...)
			i++
			continue
		}
		dst = append(dst, s[i:i+size]...)
		i += size
	}
	return append(dst, '"')
}
