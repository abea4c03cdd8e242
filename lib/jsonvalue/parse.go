// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrMalformedInput is returned (wrapped) when input bytes are not
// exactly one syntactically valid JSON value.
var ErrMalformedInput = errors.New("malformed input")

// MaxDepth is the deepest array/object nesting Parse accepts. Deeper
// input is rejected as malformed rather than risking unbounded
// recursion on hostile data.
const MaxDepth = 512

// Parse decodes data into a Value. Surrounding whitespace is allowed;
// anything else after the first value is an error. Duplicate object
// keys are accepted: the last value wins at the first key's position.
func Parse(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, fmt.Errorf("%w: empty input", ErrMalformedInput)
		}
		return Value{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	parser := parser{decoder: decoder}
	value, err := parser.value(token, 0)
	if err != nil {
		return Value{}, err
	}

	if extra, err := decoder.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return Value{}, fmt.Errorf("%w: after value at offset %d: %v", ErrMalformedInput, decoder.InputOffset(), err)
		}
		return Value{}, fmt.Errorf("%w: unexpected %v after value at offset %d", ErrMalformedInput, extra, decoder.InputOffset())
	}

	// json.Decoder replaces both of these with U+FFFD instead of failing,
	// which would make the value differ from its input.
	if !utf8.Valid(data) {
		return Value{}, fmt.Errorf("%w: input is not valid UTF-8", ErrMalformedInput)
	}
	if offset := unpairedSurrogate(data); offset >= 0 {
		return Value{}, fmt.Errorf("%w: unpaired surrogate escape at offset %d", ErrMalformedInput, offset)
	}
	return value, nil
}

// unpairedSurrogate returns the offset of the first \u escape in a
// string of data that encodes half of a UTF-16 surrogate pair without
// its other half, or -1. data must already be known to be valid JSON.
func unpairedSurrogate(data []byte) int {
	inString := false
	for i := 0; i < len(data); i++ {
		switch {
		case !inString:
			if data[i] == '"' {
				inString = true
			}
		case data[i] == '"':
			inString = false
		case data[i] == '\\':
			if data[i+1] != 'u' {
				i++
				continue
			}
			unit := hexUnit(data[i+2 : i+6])
			switch {
			case unit >= 0xDC00 && unit <= 0xDFFF:
				return i
			case unit >= 0xD800 && unit <= 0xDBFF:
				if i+12 > len(data) || data[i+6] != '\\' || data[i+7] != 'u' {
					return i
				}
				if low := hexUnit(data[i+8 : i+12]); low < 0xDC00 || low > 0xDFFF {
					return i
				}
				i += 11
			default:
				i += 5
			}
		}
	}
	return -1
}

// hexUnit decodes four hex digits. The caller has validated them.
func hexUnit(digits []byte) rune {
	var unit rune
	for _, digit := range digits {
		unit <<= 4
		switch {
		case digit >= '0' && digit <= '9':
			unit |= rune(digit - '0')
		case digit >= 'a' && digit <= 'f':
			unit |= rune(digit-'a') + 10
		case digit >= 'A' && digit <= 'F':
			unit |= rune(digit-'A') + 10
		}
	}
	return unit
}

// parser walks the token stream of a json.Decoder. The decoder enforces
// the JSON grammar (delimiters, commas, string keys); the parser builds
// the ordered tree and bounds the depth.
type parser struct {
	decoder *json.Decoder
}

func (p *parser) value(token json.Token, depth int) (Value, error) {
	switch typed := token.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return Bool(typed), nil
	case string:
		return String(typed), nil
	case json.Number:
		return Value{kind: KindNumber, text: string(typed)}, nil
	case json.Delim:
		if depth >= MaxDepth {
			return Value{}, fmt.Errorf("%w: nesting exceeds %d levels at offset %d", ErrMalformedInput, MaxDepth, p.decoder.InputOffset())
		}
		switch typed {
		case '{':
			return p.object(depth + 1)
		case '[':
			return p.array(depth + 1)
		}
	}
	return Value{}, fmt.Errorf("%w: unexpected token %v at offset %d", ErrMalformedInput, token, p.decoder.InputOffset())
}

func (p *parser) object(depth int) (Value, error) {
	var members []Member
	var positions map[string]int
	for p.decoder.More() {
		keyToken, err := p.next()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: object key is %v, not a string", ErrMalformedInput, keyToken)
		}
		valueToken, err := p.next()
		if err != nil {
			return Value{}, err
		}
		value, err := p.value(valueToken, depth)
		if err != nil {
			return Value{}, err
		}
		if positions == nil {
			positions = make(map[string]int)
		}
		if index, seen := positions[key]; seen {
			members[index].Value = value
			continue
		}
		positions[key] = len(members)
		members = append(members, Member{Name: key, Value: value})
	}
	if err := p.expectClose('}'); err != nil {
		return Value{}, err
	}
	if members == nil {
		members = []Member{}
	}
	return Value{kind: KindObject, members: members}, nil
}

func (p *parser) array(depth int) (Value, error) {
	var items []Value
	for p.decoder.More() {
		token, err := p.next()
		if err != nil {
			return Value{}, err
		}
		item, err := p.value(token, depth)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if err := p.expectClose(']'); err != nil {
		return Value{}, err
	}
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}, nil
}

func (p *parser) next() (json.Token, error) {
	token, err := p.decoder.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: unexpected end of input", ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return token, nil
}

func (p *parser) expectClose(delimiter json.Delim) error {
	token, err := p.next()
	if err != nil {
		return err
	}
	if token != delimiter {
		return fmt.Errorf("%w: expected %v, got %v at offset %d", ErrMalformedInput, delimiter, token, p.decoder.InputOffset())
	}
	return nil
}
