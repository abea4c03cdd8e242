// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsonvalue

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies which JSON type a Value holds.
type Kind uint8

const (
	// KindNull is the zero Kind so that the zero Value is JSON null.
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

// String returns the lowercase kind name ("null", "bool", "number",
// "string", "array", "object").
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind parses a kind name. Besides the names produced by String it
// accepts the common aliases "boolean", "integer", "sequence", and
// "mapping" that appear in hand-written schema tables.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "null":
		return KindNull, nil
	case "bool", "boolean":
		return KindBool, nil
	case "number", "integer":
		return KindNumber, nil
	case "string":
		return KindString, nil
	case "array", "sequence":
		return KindArray, nil
	case "object", "mapping":
		return KindObject, nil
	default:
		return 0, fmt.Errorf("unknown JSON value kind %q", name)
	}
}

// Value is a JSON value. The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool

	// text holds the string value for KindString and the exact number
	// literal for KindNumber.
	text string

	items   []Value
	members []Member
}

// Member is one name/value pair of an object.
type Member struct {
	Name  string
	Value Value
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Int returns a JSON number holding an integer.
func Int(i int64) Value { return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)} }

// Uint returns a JSON number holding an unsigned integer.
func Uint(u uint64) Value { return Value{kind: KindNumber, text: strconv.FormatUint(u, 10)} }

// BigInt returns a JSON number holding an arbitrary-precision integer.
func BigInt(i *big.Int) Value { return Value{kind: KindNumber, text: i.String()} }

// Number returns a JSON number with the given literal text. The literal
// must match the JSON number grammar exactly; it is stored verbatim.
func Number(literal string) (Value, error) {
	if !isNumberLiteral(literal) {
		return Value{}, fmt.Errorf("%w: invalid number literal %q", ErrMalformedInput, literal)
	}
	return Value{kind: KindNumber, text: literal}, nil
}

// MustNumber is like Number but panics on an invalid literal. Use in
// tests and static tables.
func MustNumber(literal string) Value {
	value, err := Number(literal)
	if err != nil {
		panic(fmt.Sprintf("jsonvalue.MustNumber(%q): %v", literal, err))
	}
	return value
}

// Array returns a JSON array of the given items. The slice is copied.
func Array(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{kind: KindArray, items: copied}
}

// Object returns a JSON object with the given members in order. When a
// name repeats, the last value wins and keeps the position of the first
// occurrence, matching how Parse treats duplicate keys.
func Object(members ...Member) Value {
	return Value{kind: KindObject, members: dedupeMembers(members)}
}

// Kind returns the JSON type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean and true when the value is a bool.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsString returns the string and true when the value is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// Literal returns the exact number literal and true when the value is
// a number.
func (v Value) Literal() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.text, true
}

// IsInteger reports whether the value is a number written without a
// fraction or exponent.
func (v Value) IsInteger() bool {
	return v.kind == KindNumber && !strings.ContainsAny(v.text, ".eE")
}

// Int64 returns the number as an int64. It fails for non-numbers,
// numbers with a fraction or exponent, and integers out of range.
func (v Value) Int64() (int64, bool) {
	if !v.IsInteger() {
		return 0, false
	}
	i, err := strconv.ParseInt(v.text, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Uint64 returns the number as a uint64 under the same rules as Int64.
func (v Value) Uint64() (uint64, bool) {
	if !v.IsInteger() {
		return 0, false
	}
	u, err := strconv.ParseUint(v.text, 10, 64)
	if err != nil {
		return 0, false
	}
	return u, true
}

// BigInt returns the number as an arbitrary-precision integer.
func (v Value) BigInt() (*big.Int, bool) {
	if !v.IsInteger() {
		return nil, false
	}
	return new(big.Int).SetString(v.text, 10)
}

// Float64 returns the number as the nearest float64. Precision may be
// lost; use Literal or BigInt when it matters.
func (v Value) Float64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		// Out-of-range literals still parse to ±Inf with an error;
		// report them as unrepresentable.
		return 0, false
	}
	return f, true
}

// Len returns the number of items of an array or members of an object,
// and 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	}
	return 0
}

// Index returns the i'th item of an array. It returns null when the
// value is not an array or i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i]
}

// Items returns a copy of the items of an array, or nil for other kinds.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	copied := make([]Value, len(v.items))
	copy(copied, v.items)
	return copied
}

// Members returns a copy of the members of an object in order, or nil
// for other kinds.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	copied := make([]Member, len(v.members))
	copy(copied, v.members)
	return copied
}

// Names returns the member names of an object in order.
func (v Value) Names() []string {
	if v.kind != KindObject {
		return nil
	}
	names := make([]string, len(v.members))
	for i, member := range v.members {
		names[i] = member.Name
	}
	return names
}

// Get returns the value of the named member of an object.
func (v Value) Get(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, member := range v.members {
		if member.Name == name {
			return member.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether an object has a member with the given name.
func (v Value) Has(name string) bool {
	_, ok := v.Get(name)
	return ok
}

// With returns a copy of an object with the named member set. An
// existing member keeps its position; a new member is appended. Calling
// With on a non-object starts from an empty object.
func (v Value) With(name string, value Value) Value {
	members := make([]Member, 0, len(v.members)+1)
	replaced := false
	if v.kind == KindObject {
		for _, member := range v.members {
			if member.Name == name {
				member.Value = value
				replaced = true
			}
			members = append(members, member)
		}
	}
	if !replaced {
		members = append(members, Member{Name: name, Value: value})
	}
	return Value{kind: KindObject, members: members}
}

// Without returns a copy of an object with the named members removed.
// Non-objects are returned unchanged.
func (v Value) Without(names ...string) Value {
	if v.kind != KindObject {
		return v
	}
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		drop[name] = struct{}{}
	}
	return v.Filter(func(name string) bool {
		_, dropped := drop[name]
		return !dropped
	})
}

// Filter returns a copy of an object keeping only the members for which
// keep returns true, in their original order. Non-objects are returned
// unchanged.
func (v Value) Filter(keep func(name string) bool) Value {
	if v.kind != KindObject {
		return v
	}
	members := make([]Member, 0, len(v.members))
	for _, member := range v.members {
		if keep(member.Name) {
			members = append(members, member)
		}
	}
	return Value{kind: KindObject, members: members}
}

// Clone returns a deep copy of the value sharing no slices with v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}
		return Value{kind: KindArray, items: items}
	case KindObject:
		members := make([]Member, len(v.members))
		for i, member := range v.members {
			members[i] = Member{Name: member.Name, Value: member.Value.Clone()}
		}
		return Value{kind: KindObject, members: members}
	}
	return v
}

// Equal reports whether a and b are structurally equal. Object members
// are compared in order, so objects with the same members in a
// different order are not equal. Numbers compare by literal text: 1 and
// 1.0 are different values because they serialize differently.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber, KindString:
		return a.text == b.text
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for i := range a.members {
			if a.members[i].Name != b.members[i].Name || !Equal(a.members[i].Value, b.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value as compact JSON, for debugging and test
// failure messages.
func (v Value) String() string {
	return string(v.Marshal())
}

// dedupeMembers copies members, collapsing repeated names so that the
// last value wins at the position of the first occurrence.
func dedupeMembers(members []Member) []Member {
	result := make([]Member, 0, len(members))
	positions := make(map[string]int, len(members))
	for _, member := range members {
		if index, seen := positions[member.Name]; seen {
			result[index].Value = member.Value
			continue
		}
		positions[member.Name] = len(result)
		result = append(result, member)
	}
	return result
}

// isNumberLiteral reports whether s matches the JSON number grammar:
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func isNumberLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	if s[i] == '0' {
		i++
	} else if s[i] >= '1' && s[i] <= '9' {
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	} else {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
