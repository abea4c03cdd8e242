// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"strings"
	"testing"
)

// Event is one named wire event.
type Event struct {
	Name string

	// JSON is the event exactly as it would arrive on the wire.
	JSON string

	// Malformed is true when the codec must reject JSON.
	Malformed bool
}

// Corpus returns the shared event corpus. The slice is a fresh copy.
func Corpus() []Event {
	corpus := make([]Event, len(corpusEvents))
	copy(corpus, corpusEvents)
	return corpus
}

// Valid returns the corpus events the codec accepts.
func Valid() []Event {
	var valid []Event
	for _, event := range corpusEvents {
		if !event.Malformed {
			valid = append(valid, event)
		}
	}
	return valid
}

// Fixture returns the JSON of the named corpus event.
func Fixture(t testing.TB, name string) string {
	t.Helper()
	for _, event := range corpusEvents {
		if event.Name == name {
			return event.JSON
		}
	}
	t.Fatalf("no corpus event named %q", name)
	return ""
}

// NDJSON joins the named corpus events into newline-delimited JSON.
func NDJSON(t testing.TB, names ...string) string {
	t.Helper()
	var builder strings.Builder
	for _, name := range names {
		builder.WriteString(Fixture(t, name))
		builder.WriteByte('\n')
	}
	return builder.String()
}

var corpusEvents = []Event{
	{
		Name: "message",
		JSON: `{"type":"m.room.message","sender":"@alice:example.org","room_id":"!room:example.org","event_id":"$msg1:example.org","origin_server_ts":1700000000000,"content":{"msgtype":"m.text","body":"hello world","format":"org.matrix.custom.html","formatted_body":"<b>hello</b> world"},"unsigned":{"age":1234}}`,
	},
	{
		Name: "message-with-extras",
		JSON: `{"type":"m.room.message","sender":"@bob:example.org","room_id":"!room:example.org","event_id":"$msg2:example.org","origin_server_ts":1700000000001,"content":{"org.example.custom":{"nested":[1,2.50,1e3]},"body":"ping","msgtype":"m.notice"},"hashes":{"sha256":"abc"},"signatures":{"example.org":{"ed25519:1":"sig"}}}`,
	},
	{
		Name: "member",
		JSON: `{"type":"m.room.member","state_key":"@alice:example.org","sender":"@alice:example.org","room_id":"!room:example.org","event_id":"$member1:example.org","origin_server_ts":1700000000002,"content":{"membership":"join","displayname":"Alice","avatar_url":"mxc://example.org/abc"}}`,
	},
	{
		Name: "create",
		JSON: `{"type":"m.room.create","state_key":"","sender":"@alice:example.org","room_id":"!room:example.org","event_id":"$create:example.org","origin_server_ts":1699999999999,"content":{"room_version":"11","m.federate":true,"org.example.flag":"x"}}`,
	},
	{
		Name: "power-levels",
		JSON: `{"type":"m.room.power_levels","state_key":"","sender":"@alice:example.org","room_id":"!room:example.org","event_id":"$pl:example.org","origin_server_ts":1700000000003,"content":{"users":{"@alice:example.org":100},"users_default":0,"events":{"m.room.name":50},"events_default":0,"state_default":50,"ban":50,"kick":50,"redact":50,"invite":0,"notifications":{"room":50}}}`,
	},
	{
		Name: "topic",
		JSON: `{"type":"m.room.topic","state_key":"","sender":"@alice:example.org","room_id":"!room:example.org","event_id":"$topic:example.org","origin_server_ts":1700000000004,"content":{"topic":"Planning"},"prev_content":{"topic":"Old planning"}}`,
	},
	{
		Name: "redaction",
		JSON: `{"type":"m.room.redaction","sender":"@alice:example.org","room_id":"!room:example.org","event_id":"$redact:example.org","origin_server_ts":1700000000005,"content":{"redacts":"$msg1:example.org","reason":"spam"}}`,
	},
	{
		Name: "reaction",
		JSON: `{"type":"m.reaction","sender":"@bob:example.org","room_id":"!room:example.org","event_id":"$react:example.org","origin_server_ts":1700000000006,"content":{"m.relates_to":{"rel_type":"m.annotation","event_id":"$msg1:example.org","key":"👍"}}}`,
	},
	{
		Name: "unknown-message",
		JSON: `{"type":"org.example.poll","sender":"@carol:example.org","room_id":"!room:example.org","event_id":"$poll:example.org","origin_server_ts":1700000000007,"content":{"question":"Lunch?","answers":["yes","no"]}}`,
	},
	{
		Name: "unknown-state",
		JSON: `{"type":"org.example.widget","state_key":"w1","sender":"@carol:example.org","room_id":"!room:example.org","event_id":"$widget:example.org","origin_server_ts":1700000000008,"content":{"url":"https://example.org/w"}}`,
	},
	{
		Name: "message-missing-body",
		JSON: `{"type":"m.room.message","sender":"@dave:example.org","room_id":"!room:example.org","event_id":"$nobody:example.org","origin_server_ts":1700000000009,"content":{"msgtype":"m.text"}}`,
	},
	{
		Name: "redacted-message",
		JSON: `{"type":"m.room.message","sender":"@alice:example.org","room_id":"!room:example.org","event_id":"$old:example.org","origin_server_ts":1690000000000,"content":{},"unsigned":{"redacted_because":{"type":"m.room.redaction","sender":"@alice:example.org","content":{}}}}`,
	},
	{
		Name:      "missing-sender",
		JSON:      `{"type":"m.room.message","origin_server_ts":1,"content":{"msgtype":"m.text","body":"x"}}`,
		Malformed: true,
	},
	{
		Name:      "fractional-timestamp",
		JSON:      `{"type":"m.room.message","sender":"@a:example.org","origin_server_ts":1.5,"content":{}}`,
		Malformed: true,
	},
	{
		Name:      "not-json",
		JSON:      `{"type":"m.room.message",`,
		Malformed: true,
	},
}
