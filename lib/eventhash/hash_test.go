// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventhash

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/roomevents/lib/event"
	"github.com/bureau-foundation/roomevents/lib/eventkind"
)

const messageEvent = `{"type":"m.room.message","sender":"@alice:example.org","room_id":"!r:example.org","event_id":"$e1","origin_server_ts":1700000000000,"content":{"msgtype":"m.text","body":"hello"},"unsigned":{"age":10}}`

func decode(t *testing.T, data string) *event.Event {
	t.Helper()
	ev, err := event.NewCodec(eventkind.Default()).Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode(%s): %v", data, err)
	}
	return ev
}

func TestDomainKeysAreDistinct(t *testing.T) {
	input := []byte(`{"body":"hello","msgtype":"m.text"}`)
	if keyedHash(eventDomainKey, input) == keyedHash(contentDomainKey, input) {
		t.Error("event and content domains produced the same hash for identical input")
	}
	if eventDomainKey == contentDomainKey {
		t.Error("domain keys are identical")
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	first := Fingerprint(decode(t, messageEvent))
	second := Fingerprint(decode(t, messageEvent))
	if first != second {
		t.Errorf("fingerprint changed between decodes: %s != %s", first, second)
	}
	if first.IsZero() {
		t.Error("fingerprint is the zero hash")
	}
}

func TestFingerprintIgnoresKeyOrderAndUnsigned(t *testing.T) {
	reordered := `{"content":{"body":"hello","msgtype":"m.text"},"origin_server_ts":1700000000000,"event_id":"$e1","room_id":"!r:example.org","sender":"@alice:example.org","type":"m.room.message","unsigned":{"age":99999,"transaction_id":"t1"}}`
	withoutUnsigned := `{"type":"m.room.message","sender":"@alice:example.org","room_id":"!r:example.org","event_id":"$e1","origin_server_ts":1700000000000,"content":{"msgtype":"m.text","body":"hello"}}`

	want := Fingerprint(decode(t, messageEvent))
	if got := Fingerprint(decode(t, reordered)); got != want {
		t.Errorf("reordered event fingerprint = %s, want %s", got, want)
	}
	if got := Fingerprint(decode(t, withoutUnsigned)); got != want {
		t.Errorf("event without unsigned fingerprint = %s, want %s", got, want)
	}
}

func TestFingerprintDistinguishesEvents(t *testing.T) {
	changes := map[string]string{
		"body":      strings.Replace(messageEvent, `"hello"`, `"hello!"`, 1),
		"sender":    strings.Replace(messageEvent, "@alice", "@bob", 1),
		"timestamp": strings.Replace(messageEvent, "1700000000000", "1700000000001", 1),
		"number":    strings.Replace(messageEvent, "1700000000000", "1700000000000.0", 1),
	}
	base := Fingerprint(decode(t, messageEvent))
	for name, data := range changes {
		t.Run(name, func(t *testing.T) {
			if name == "number" {
				// A fractional timestamp is malformed; nothing to hash.
				if _, err := event.NewCodec(eventkind.Default()).Decode([]byte(data)); err == nil {
					t.Fatal("fractional origin_server_ts decoded")
				}
				return
			}
			if Fingerprint(decode(t, data)) == base {
				t.Errorf("changing %s did not change the fingerprint", name)
			}
		})
	}
}

func TestContentFingerprint(t *testing.T) {
	ev := decode(t, messageEvent)
	reordered := decode(t, strings.Replace(messageEvent,
		`{"msgtype":"m.text","body":"hello"}`, `{"body":"hello","msgtype":"m.text"}`, 1))

	if ContentFingerprint(ev.Content()) != ContentFingerprint(reordered.Content()) {
		t.Error("content fingerprint depends on key order")
	}
	if ContentFingerprint(ev.Content()) == Fingerprint(ev) {
		t.Error("content and event fingerprints collide")
	}
}

func TestParseHash(t *testing.T) {
	hash := Fingerprint(decode(t, messageEvent))

	parsed, err := ParseHash(hash.String())
	if err != nil {
		t.Fatalf("ParseHash(%s): %v", hash, err)
	}
	if parsed != hash {
		t.Errorf("ParseHash roundtrip = %s, want %s", parsed, hash)
	}
	if len(hash.String()) != 64 || len(hash.Short()) != 12 {
		t.Errorf("String/Short lengths = %d/%d, want 64/12", len(hash.String()), len(hash.Short()))
	}
	if !strings.HasPrefix(hash.String(), hash.Short()) {
		t.Errorf("Short() %s is not a prefix of %s", hash.Short(), hash)
	}

	for _, bad := range []string{"", "zz", strings.Repeat("ab", 31)} {
		if _, err := ParseHash(bad); err == nil {
			t.Errorf("ParseHash(%q) succeeded", bad)
		}
	}
}

func TestHashTextMarshalling(t *testing.T) {
	hash := Fingerprint(decode(t, messageEvent))
	text, err := hash.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var decoded Hash
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if decoded != hash {
		t.Errorf("text roundtrip = %s, want %s", decoded, hash)
	}
}

func BenchmarkFingerprint(b *testing.B) {
	ev, err := event.NewCodec(eventkind.Default()).Decode([]byte(messageEvent))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		Fingerprint(ev)
	}
}
