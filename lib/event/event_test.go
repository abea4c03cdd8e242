// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/roomevents/lib/eventcontent"
	"github.com/bureau-foundation/roomevents/lib/eventkind"
	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
	"github.com/bureau-foundation/roomevents/lib/ref"
	"github.com/bureau-foundation/roomevents/lib/schema"
)

func defaultCodec() *Codec {
	return NewCodec(eventkind.Default())
}

func mustDecode(t *testing.T, codec *Codec, data string) *Event {
	t.Helper()
	ev, err := codec.Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode(%s): %v", data, err)
	}
	return ev
}

func mustParse(t *testing.T, data string) jsonvalue.Value {
	t.Helper()
	value, err := jsonvalue.Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse(%s): %v", data, err)
	}
	return value
}

func TestDecodeTypedMessage(t *testing.T) {
	ev := mustDecode(t, defaultCodec(),
		`{"type":"m.room.message","content":{"body":"hi","msgtype":"m.text","future_field":42},"sender":"@a:x","origin_server_ts":100}`)

	if ev.Type() != "m.room.message" || ev.Sender() != "@a:x" || ev.OriginServerTS() != 100 {
		t.Errorf("envelope = %s/%s/%d", ev.Type(), ev.Sender(), ev.OriginServerTS())
	}
	if ev.Class() != eventkind.Message || ev.IsState() {
		t.Errorf("Class() = %s, want message", ev.Class())
	}
	content := ev.Content()
	if content.Variant() != eventcontent.Typed {
		t.Fatalf("content variant = %s, want typed", content.Variant())
	}
	if got := content.Known().String(); got != `{"body":"hi","msgtype":"m.text"}` {
		t.Errorf("known fields = %s", got)
	}
	if got := content.Extra().String(); got != `{"future_field":42}` {
		t.Errorf("sidecar = %s", got)
	}
	message, err := eventcontent.As[schema.MessageContent](content)
	if err != nil {
		t.Fatalf("As[MessageContent]: %v", err)
	}
	if message.Body != "hi" || message.MsgType != schema.MsgTypeText {
		t.Errorf("message = %+v", message)
	}
	if _, ok := ev.StateKey(); ok {
		t.Error("message event reports a state key")
	}
	if _, ok := ev.EventID(); ok {
		t.Error("event without event_id reports one")
	}
	if ev.HasUnsigned() || ev.Unsigned().Len() != 0 {
		t.Error("event without unsigned reports unsigned data")
	}
}

func TestDecodeUnknownKindIsOpaque(t *testing.T) {
	ev := mustDecode(t, defaultCodec(),
		`{"type":"m.unknown.kind","content":{"x":1},"sender":"@a:x","origin_server_ts":100}`)
	if ev.Content().Variant() != eventcontent.Opaque {
		t.Fatalf("variant = %s, want opaque", ev.Content().Variant())
	}
	raw, err := ev.Content().Raw()
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if raw.String() != `{"x":1}` {
		t.Errorf("opaque content = %s, want {\"x\":1}", raw)
	}
	if ev.Class() != eventkind.Message {
		t.Errorf("unknown kind without state_key classified %s, want message", ev.Class())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		malformed    bool
		missingField string
	}{
		{name: "not json", input: `not-json`, malformed: true},
		{name: "empty input", input: ``, malformed: true},
		{name: "array", input: `[1,2]`, malformed: true},
		{name: "string", input: `"event"`, malformed: true},
		{name: "truncated", input: `{"type":"m.room.message"`, malformed: true},
		{name: "missing type", input: `{"sender":"@a:x","origin_server_ts":1}`, missingField: "type"},
		{name: "missing sender", input: `{"type":"m.room.message","origin_server_ts":1}`, missingField: "sender"},
		{name: "missing origin_server_ts", input: `{"type":"m.room.message","sender":"@a:x"}`, missingField: "origin_server_ts"},
		{name: "type not a string", input: `{"type":5,"sender":"@a:x","origin_server_ts":1}`, malformed: true},
		{name: "sender null", input: `{"type":"m.x.y","sender":null,"origin_server_ts":1}`, malformed: true},
		{name: "fractional timestamp", input: `{"type":"m.x.y","sender":"@a:x","origin_server_ts":1.5}`, malformed: true},
		{name: "timestamp string", input: `{"type":"m.x.y","sender":"@a:x","origin_server_ts":"1"}`, malformed: true},
		{name: "negative timestamp", input: `{"type":"m.x.y","sender":"@a:x","origin_server_ts":-5}`, malformed: true},
		{name: "timestamp overflow", input: `{"type":"m.x.y","sender":"@a:x","origin_server_ts":99999999999999999999}`, malformed: true},
		{name: "state_key number", input: `{"type":"m.x.y","sender":"@a:x","origin_server_ts":1,"state_key":0}`, malformed: true},
		{name: "event_id array", input: `{"type":"m.x.y","sender":"@a:x","origin_server_ts":1,"event_id":[]}`, malformed: true},
		{name: "unsigned array", input: `{"type":"m.x.y","sender":"@a:x","origin_server_ts":1,"unsigned":[]}`, malformed: true},
	}
	codec := defaultCodec()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := codec.Decode([]byte(test.input))
			if err == nil {
				t.Fatal("Decode succeeded, want error")
			}
			if test.malformed && !errors.Is(err, ErrMalformedInput) {
				t.Errorf("error = %v, want ErrMalformedInput", err)
			}
			if test.missingField != "" {
				var missing *MissingFieldError
				if !errors.As(err, &missing) {
					t.Fatalf("error = %v, want *MissingFieldError", err)
				}
				if missing.Field != test.missingField {
					t.Errorf("missing field = %q, want %q", missing.Field, test.missingField)
				}
				if !errors.Is(err, ErrMissingField) {
					t.Error("errors.Is(err, ErrMissingField) = false")
				}
				if errors.Is(err, ErrMalformedInput) {
					t.Error("missing field error also matches ErrMalformedInput")
				}
			}
		})
	}
}

func TestOpaqueRoundTripPreservesStructure(t *testing.T) {
	inputs := []string{
		`{"type":"org.example.custom","content":{"z":1,"a":{"nested":[1,2.50,{"k":null}]},"big":123456789012345678901234567890},"sender":"@a:x","origin_server_ts":100}`,
		`{"origin_server_ts":7,"sender":"@b:y","type":"org.example.custom","future_top_level":{"x":true},"content":{"b":"2","a":"1"}}`,
		`{"type":"org.example.state","state_key":"","content":{"v":1e10},"sender":"@a:x","origin_server_ts":100,"unsigned":{"age":5}}`,
		`{"type":"org.example.custom","content":"not an object","sender":"@a:x","origin_server_ts":0}`,
	}
	codec := defaultCodec()
	for _, input := range inputs {
		ev := mustDecode(t, codec, input)
		encoded := codec.Encode(ev)
		if !jsonvalue.Equal(mustParse(t, string(encoded)), mustParse(t, input)) {
			t.Errorf("round trip changed the event:\n got %s\nwant %s", encoded, input)
		}
	}
}

func TestTypedRoundTripPreservesKnownAndExtraFields(t *testing.T) {
	inputs := []string{
		`{"type":"m.room.message","content":{"msgtype":"m.text","x-custom":{"a":1},"body":"hi","format":"org.matrix.custom.html","formatted_body":"<b>hi</b>","zzz":[]},"sender":"@a:x","origin_server_ts":100,"event_id":"$abc","room_id":"!r:x"}`,
		`{"type":"m.room.member","state_key":"@a:x","content":{"membership":"join","displayname":7,"avatar_url":"mxc://x/y"},"prev_content":{"membership":"invite","extra":"kept"},"sender":"@a:x","origin_server_ts":100}`,
		`{"type":"m.room.power_levels","state_key":"","content":{"users":{"@a:x":100},"ban":50,"org.example.level":3},"sender":"@a:x","origin_server_ts":100}`,
	}
	codec := defaultCodec()
	for _, input := range inputs {
		ev := mustDecode(t, codec, input)
		if ev.Content().Variant() != eventcontent.Typed {
			t.Errorf("%s: content variant = %s, want typed", ev.Type(), ev.Content().Variant())
		}
		encoded := codec.Encode(ev)
		if !jsonvalue.Equal(mustParse(t, string(encoded)), mustParse(t, input)) {
			t.Errorf("round trip changed the event:\n got %s\nwant %s", encoded, input)
		}
	}
}

func TestDecodeEncodeDecodeIsFixedPoint(t *testing.T) {
	inputs := []string{
		`{"type":"m.room.message","content":{"body":"hi","msgtype":"m.text","future_field":42},"sender":"@a:x","origin_server_ts":100}`,
		`{"type":"m.room.message","sender":"@a:x","origin_server_ts":100}`,
		`{"type":"m.room.topic","state_key":"","content":{"topic":"t"},"sender":"@a:x","origin_server_ts":1,"dup":1,"dup":2}`,
		`{"type":"m.room.member","content":{"membership":"join"},"sender":"@a:x","origin_server_ts":100}`,
		`{"type":"m.room.message","content":{"body":"x"},"sender":"@a:x","origin_server_ts":1,"unsigned":{"redacted_because":{"type":"m.room.redaction"}}}`,
	}
	codec := defaultCodec()
	for _, input := range inputs {
		first := mustDecode(t, codec, input)
		second := mustDecode(t, codec, string(codec.Encode(first)))
		if !Equal(first, second) {
			t.Errorf("decode(encode(decode(x))) != decode(x) for %s:\n first %s\nsecond %s", input, first, second)
		}
	}
}

func TestAbsentContentIsEmptyObject(t *testing.T) {
	ev := mustDecode(t, defaultCodec(), `{"type":"m.room.message","sender":"@a:x","origin_server_ts":100}`)
	if got := ev.Content().ToRaw().String(); got != `{}` {
		t.Errorf("content = %s, want {}", got)
	}
	if ev.Content().Variant() != eventcontent.Opaque {
		t.Errorf("empty message content variant = %s, want opaque (schema unmet)", ev.Content().Variant())
	}
	if !strings.Contains(ev.String(), `"content":{}`) {
		t.Errorf("encoded event %s lacks an empty content object", ev)
	}
}

func TestGracefulDegradation(t *testing.T) {
	ev := mustDecode(t, defaultCodec(),
		`{"type":"m.room.message","content":{"body":"hi"},"sender":"@a:x","origin_server_ts":100}`)
	if ev.Content().Variant() != eventcontent.Opaque {
		t.Fatalf("content missing msgtype decoded as %s, want opaque", ev.Content().Variant())
	}
	if ev.Class() != eventkind.Message {
		t.Errorf("Class() = %s, want message", ev.Class())
	}
	if _, err := eventcontent.As[schema.MessageContent](ev.Content()); !errors.Is(err, eventcontent.ErrWrongVariant) {
		t.Errorf("As on degraded content: error = %v, want ErrWrongVariant", err)
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		class   eventkind.Classification
		variant eventcontent.Variant
	}{
		{
			name:    "known state kind with state_key",
			input:   `{"type":"m.room.topic","state_key":"","content":{"topic":"t"},"sender":"@a:x","origin_server_ts":1}`,
			class:   eventkind.State,
			variant: eventcontent.Typed,
		},
		{
			name:    "known state kind without state_key",
			input:   `{"type":"m.room.topic","content":{"topic":"t"},"sender":"@a:x","origin_server_ts":1}`,
			class:   eventkind.Message,
			variant: eventcontent.Opaque,
		},
		{
			name:    "known message kind with state_key",
			input:   `{"type":"m.room.message","state_key":"x","content":{"body":"b","msgtype":"m.text"},"sender":"@a:x","origin_server_ts":1}`,
			class:   eventkind.State,
			variant: eventcontent.Opaque,
		},
		{
			name:    "unknown kind with state_key",
			input:   `{"type":"org.example.flag","state_key":"k","content":{},"sender":"@a:x","origin_server_ts":1}`,
			class:   eventkind.State,
			variant: eventcontent.Opaque,
		},
		{
			name:    "unknown kind without state_key",
			input:   `{"type":"org.example.flag","content":{},"sender":"@a:x","origin_server_ts":1}`,
			class:   eventkind.Message,
			variant: eventcontent.Opaque,
		},
		{
			name:    "ephemeral kind",
			input:   `{"type":"m.typing","content":{"user_ids":["@a:x"]},"sender":"@a:x","origin_server_ts":1}`,
			class:   eventkind.Ephemeral,
			variant: eventcontent.Typed,
		},
	}
	codec := defaultCodec()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ev := mustDecode(t, codec, test.input)
			if ev.Class() != test.class {
				t.Errorf("Class() = %s, want %s", ev.Class(), test.class)
			}
			if ev.Content().Variant() != test.variant {
				t.Errorf("content variant = %s, want %s", ev.Content().Variant(), test.variant)
			}
		})
	}
}

func TestRedactedBecauseResolvesRedactedContent(t *testing.T) {
	ev := mustDecode(t, defaultCodec(),
		`{"type":"m.room.member","state_key":"@a:x","content":{},"sender":"@a:x","origin_server_ts":1,"unsigned":{"redacted_because":{"type":"m.room.redaction"}}}`)
	if ev.Content().Variant() != eventcontent.Redacted {
		t.Errorf("content variant = %s, want redacted", ev.Content().Variant())
	}
}

func TestEnvelopeAccessors(t *testing.T) {
	ev := mustDecode(t, defaultCodec(),
		`{"type":"m.room.name","state_key":"","room_id":"!room:example.org","event_id":"$ev","sender":"@alice:example.org","origin_server_ts":1700000000000,"content":{"name":"Ops"},"unsigned":{"age":1234},"hashes":{"sha256":"abc"}}`)

	if stateKey, ok := ev.StateKey(); !ok || stateKey != "" {
		t.Errorf("StateKey() = %q, %v; want empty, present", stateKey, ok)
	}
	if roomID, ok := ev.RoomID(); !ok || roomID != "!room:example.org" {
		t.Errorf("RoomID() = %q, %v", roomID, ok)
	}
	if eventID, ok := ev.EventID(); !ok || eventID != "$ev" {
		t.Errorf("EventID() = %q, %v", eventID, ok)
	}
	senderID, err := ev.SenderID()
	if err != nil || senderID.Localpart() != "alice" {
		t.Errorf("SenderID() = %v, %v", senderID, err)
	}
	if want := time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC); !ev.Timestamp().Equal(want) {
		t.Errorf("Timestamp() = %v, want %v", ev.Timestamp(), want)
	}
	if age, _ := ev.Unsigned().Get("age"); age.String() != "1234" {
		t.Errorf("unsigned age = %s", age)
	}
	if got := ev.Extra().String(); got != `{"hashes":{"sha256":"abc"}}` {
		t.Errorf("Extra() = %s", got)
	}
	wantKeys := []string{"type", "state_key", "room_id", "event_id", "sender", "origin_server_ts", "content", "unsigned", "hashes"}
	if got := ev.Keys(); !slices.Equal(got, wantKeys) {
		t.Errorf("Keys() = %v, want %v", got, wantKeys)
	}
}

func TestEqualIgnoresEnvelopeKeyOrder(t *testing.T) {
	codec := defaultCodec()
	a := mustDecode(t, codec, `{"type":"org.x.y","sender":"@a:x","origin_server_ts":1,"content":{"k":1},"extra":1}`)
	b := mustDecode(t, codec, `{"content":{"k":1},"origin_server_ts":1,"extra":1,"sender":"@a:x","type":"org.x.y"}`)
	if !Equal(a, b) {
		t.Error("events differing only in envelope key order are not equal")
	}
	c := mustDecode(t, codec, `{"type":"org.x.y","sender":"@a:x","origin_server_ts":1,"content":{"k":2},"extra":1}`)
	if Equal(a, c) {
		t.Error("events with different content are equal")
	}
	if !Equal(nil, nil) || Equal(a, nil) {
		t.Error("nil handling in Equal")
	}
}

func TestWithMethodsDoNotMutate(t *testing.T) {
	codec := defaultCodec()
	original := mustDecode(t, codec,
		`{"type":"m.room.topic","state_key":"","content":{"topic":"new"},"prev_content":{"topic":"old"},"sender":"@a:x","origin_server_ts":1}`)
	before := original.String()

	replaced := original.WithContent(eventcontent.Empty("m.room.topic"))
	replaced = replaced.WithPrevContent(eventcontent.Empty("m.room.topic"))
	replaced = replaced.WithUnsigned("age", jsonvalue.Int(5))

	if original.String() != before {
		t.Errorf("original changed:\n got %s\nwant %s", original, before)
	}
	if replaced.Content().ToRaw().Len() != 0 {
		t.Errorf("WithContent did not replace content: %s", replaced)
	}
	if prev, _ := replaced.PrevContent(); prev.ToRaw().Len() != 0 {
		t.Errorf("WithPrevContent did not replace prev_content: %s", replaced)
	}
	if !replaced.HasUnsigned() || original.HasUnsigned() {
		t.Error("WithUnsigned did not add unsigned to the copy only")
	}

	message := mustDecode(t, codec, `{"type":"m.room.message","content":{},"sender":"@a:x","origin_server_ts":1}`)
	if _, ok := message.WithPrevContent(eventcontent.Empty("m.room.message")).PrevContent(); ok {
		t.Error("WithPrevContent added prev_content to an event without it")
	}
}

func TestNew(t *testing.T) {
	codec := defaultCodec()
	registry := codec.Registry()
	alice := ref.MustParseUserID("@alice:example.org")

	content, err := eventcontent.FromStruct(registry, schema.NewTextMessage("hello"))
	if err != nil {
		t.Fatalf("FromStruct: %v", err)
	}
	ev, err := codec.New(Fields{
		Type:           schema.EventTypeMessage,
		Content:        content,
		Sender:         alice,
		OriginServerTS: 42,
		RoomID:         ref.MustParseRoomID("!room:example.org"),
		Extra:          []jsonvalue.Member{{Name: "txn", Value: jsonvalue.String("t1")}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := `{"type":"m.room.message","sender":"@alice:example.org","room_id":"!room:example.org","origin_server_ts":42,"content":{"msgtype":"m.text","body":"hello"},"txn":"t1"}`
	if got := ev.String(); got != want {
		t.Errorf("encoded =\n%s\nwant\n%s", got, want)
	}
	decoded := mustDecode(t, codec, ev.String())
	if !Equal(ev, decoded) {
		t.Errorf("decoding a built event changed it:\n built %s\ndecoded %s", ev, decoded)
	}

	topic, err := eventcontent.FromStruct(registry, schema.TopicContent{Topic: "t"})
	if err != nil {
		t.Fatalf("FromStruct: %v", err)
	}
	stateEvent, err := codec.New(Fields{Type: schema.EventTypeTopic, Content: topic, StateKey: StateKey(""), Sender: alice, PrevContent: &topic})
	if err != nil {
		t.Fatalf("New(state): %v", err)
	}
	if !stateEvent.IsState() {
		t.Error("state event built without State classification")
	}

	custom, err := codec.New(Fields{Type: "org.example.ping", Sender: alice})
	if err != nil {
		t.Fatalf("New(custom): %v", err)
	}
	if custom.Content().ToRaw().String() != `{}` || custom.Class() != eventkind.Message {
		t.Errorf("custom event = %s class %s", custom, custom.Class())
	}
}

func TestNewRejectsInconsistentFields(t *testing.T) {
	codec := defaultCodec()
	alice := ref.MustParseUserID("@alice:example.org")
	topic, _ := eventcontent.FromStruct(codec.Registry(), schema.TopicContent{Topic: "t"})
	message, _ := eventcontent.FromStruct(codec.Registry(), schema.NewTextMessage("m"))

	tests := []struct {
		name   string
		fields Fields
	}{
		{name: "invalid type", fields: Fields{Type: "nodots", Sender: alice}},
		{name: "missing sender", fields: Fields{Type: "m.room.message"}},
		{name: "content for another type", fields: Fields{Type: "m.room.name", Content: topic, StateKey: StateKey(""), Sender: alice}},
		{name: "state kind without state key", fields: Fields{Type: "m.room.topic", Content: topic, Sender: alice}},
		{name: "message kind with state key", fields: Fields{Type: "m.room.message", Content: message, StateKey: StateKey("x"), Sender: alice}},
		{name: "negative timestamp", fields: Fields{Type: "m.room.message", Content: message, Sender: alice, OriginServerTS: -1}},
		{name: "unsigned not an object", fields: Fields{Type: "m.room.message", Content: message, Sender: alice, Unsigned: jsonvalue.Int(1)}},
		{name: "prev_content on a message", fields: Fields{Type: "m.room.message", Content: message, Sender: alice, PrevContent: &message}},
		{name: "extra collides with envelope", fields: Fields{Type: "m.room.message", Content: message, Sender: alice, Extra: []jsonvalue.Member{{Name: "sender", Value: jsonvalue.Null()}}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := codec.New(test.fields); err == nil {
				t.Error("New succeeded, want error")
			}
		})
	}
}

func TestDecodeBatch(t *testing.T) {
	codec := defaultCodec()

	t.Run("array", func(t *testing.T) {
		results := codec.DecodeBatch([]byte(` [
			{"type":"m.room.message","content":{"body":"a","msgtype":"m.text"},"sender":"@a:x","origin_server_ts":1},
			{"type":"m.room.message","sender":"@a:x"},
			"junk"
		]`))
		if len(results) != 3 {
			t.Fatalf("got %d results, want 3", len(results))
		}
		if results[0].Err != nil || results[0].Event == nil {
			t.Errorf("result 0 = %+v", results[0])
		}
		if !errors.Is(results[1].Err, ErrMissingField) {
			t.Errorf("result 1 error = %v, want ErrMissingField", results[1].Err)
		}
		if !errors.Is(results[2].Err, ErrMalformedInput) || results[2].Index != 2 {
			t.Errorf("result 2 = %+v, want malformed at index 2", results[2])
		}
		if len(Events(results)) != 1 {
			t.Errorf("Events() returned %d events, want 1", len(Events(results)))
		}
		err := BatchError(results)
		if err == nil || !strings.Contains(err.Error(), "event 1") || !strings.Contains(err.Error(), "event 2") {
			t.Errorf("BatchError = %v", err)
		}
	})

	t.Run("newline delimited", func(t *testing.T) {
		results := codec.DecodeBatch([]byte(
			`{"type":"org.x.y","content":{},"sender":"@a:x","origin_server_ts":1}` + "\n\n" +
				`not-json` + "\n" +
				`{"type":"org.x.y","content":{},"sender":"@a:x","origin_server_ts":2}` + "\n"))
		if len(results) != 3 {
			t.Fatalf("got %d results, want 3", len(results))
		}
		if results[1].Line != 3 || results[1].Index != 1 || !errors.Is(results[1].Err, ErrMalformedInput) {
			t.Errorf("result 1 = %+v, want malformed on line 3", results[1])
		}
		if results[2].Event == nil || results[2].Event.OriginServerTS() != 2 {
			t.Errorf("result 2 = %+v", results[2])
		}
		if err := BatchError(results); err == nil || !strings.Contains(err.Error(), "line 3") {
			t.Errorf("BatchError = %v", err)
		}
	})

	t.Run("malformed array", func(t *testing.T) {
		results := codec.DecodeBatch([]byte(`[{"type":`))
		if len(results) != 1 || !errors.Is(results[0].Err, ErrMalformedInput) {
			t.Errorf("results = %+v", results)
		}
	})

	t.Run("all good", func(t *testing.T) {
		results := codec.DecodeBatch([]byte(`[]`))
		if len(results) != 0 || BatchError(results) != nil {
			t.Errorf("empty batch = %+v", results)
		}
	})
}

func TestStrippedState(t *testing.T) {
	codec := defaultCodec()
	input := `{"content":{"name":"Ops"},"type":"m.room.name","state_key":"","sender":"@a:x","x":1}`
	stripped, err := codec.DecodeStripped([]byte(input))
	if err != nil {
		t.Fatalf("DecodeStripped: %v", err)
	}
	if stripped.Type() != "m.room.name" || stripped.StateKey() != "" || stripped.Sender() != "@a:x" {
		t.Errorf("stripped = %s/%q/%s", stripped.Type(), stripped.StateKey(), stripped.Sender())
	}
	if stripped.Content().Variant() != eventcontent.Typed {
		t.Errorf("content variant = %s, want typed", stripped.Content().Variant())
	}
	if got := string(stripped.Marshal()); got != input {
		t.Errorf("Marshal() = %s, want %s", got, input)
	}

	if _, err := codec.DecodeStripped([]byte(`{"type":"m.room.name","sender":"@a:x"}`)); !errors.Is(err, ErrMissingField) {
		t.Errorf("missing state_key: error = %v, want ErrMissingField", err)
	}

	ev := mustDecode(t, codec, `{"type":"m.room.topic","state_key":"","content":{"topic":"t"},"sender":"@a:x","origin_server_ts":1,"event_id":"$e"}`)
	fromEvent, ok := ev.Stripped()
	if !ok {
		t.Fatal("Stripped() on a state event returned false")
	}
	if got := string(fromEvent.Marshal()); got != `{"type":"m.room.topic","state_key":"","sender":"@a:x","content":{"topic":"t"}}` {
		t.Errorf("stripped form = %s", got)
	}
	message := mustDecode(t, codec, `{"type":"m.room.message","content":{},"sender":"@a:x","origin_server_ts":1}`)
	if _, ok := message.Stripped(); ok {
		t.Error("Stripped() on a message event returned true")
	}
}

func TestEventStripped(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		variant eventcontent.Variant
	}{
		{
			name:    "registered state kind",
			input:   `{"type":"m.room.name","state_key":"","content":{"name":"Ops"},"sender":"@a:x","origin_server_ts":1,"event_id":"$e","unsigned":{"age":3}}`,
			want:    `{"type":"m.room.name","state_key":"","sender":"@a:x","content":{"name":"Ops"}}`,
			variant: eventcontent.Typed,
		},
		{
			name:    "unregistered kind with state_key",
			input:   `{"type":"org.example.flag","state_key":"k","content":{"on":true},"sender":"@a:x","origin_server_ts":1}`,
			want:    `{"type":"org.example.flag","state_key":"k","sender":"@a:x","content":{"on":true}}`,
			variant: eventcontent.Opaque,
		},
		{
			name:  "message",
			input: `{"type":"m.room.message","content":{"msgtype":"m.text","body":"hi"},"sender":"@a:x","origin_server_ts":1}`,
		},
		{
			name:  "unregistered kind without state_key",
			input: `{"type":"org.example.note","content":{},"sender":"@a:x","origin_server_ts":1}`,
		},
		{
			name:  "state kind missing state_key",
			input: `{"type":"m.room.topic","content":{"topic":"t"},"sender":"@a:x","origin_server_ts":1}`,
		},
	}
	codec := defaultCodec()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ev := mustDecode(t, codec, test.input)
			stripped, ok := ev.Stripped()
			if test.want == "" {
				if ok {
					t.Fatalf("Stripped() = %s, true; want false", stripped.Marshal())
				}
				return
			}
			if !ok {
				t.Fatal("Stripped() returned false for a state event")
			}
			if got := string(stripped.Marshal()); got != test.want {
				t.Errorf("Stripped().Marshal() = %s, want %s", got, test.want)
			}
			if stripped.Content().Variant() != test.variant {
				t.Errorf("content variant = %s, want %s", stripped.Content().Variant(), test.variant)
			}
			if stripped.Sender() != ev.Sender() || stripped.Type() != ev.Type() {
				t.Errorf("stripped envelope = %s/%s, want %s/%s", stripped.Type(), stripped.Sender(), ev.Type(), ev.Sender())
			}
		})
	}
}

func BenchmarkDecodeEncode(b *testing.B) {
	codec := defaultCodec()
	data := []byte(`{"type":"m.room.message","room_id":"!r:example.org","event_id":"$abc","sender":"@alice:example.org","origin_server_ts":1700000000000,"content":{"msgtype":"m.text","body":"benchmark message body","m.mentions":{"user_ids":["@bob:example.org"]}},"unsigned":{"age":100}}`)
	for b.Loop() {
		ev, err := codec.Decode(data)
		if err != nil {
			b.Fatal(err)
		}
		_ = codec.Encode(ev)
	}
}
