// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventkind

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/roomevents/lib/jsonvalue"
	"github.com/bureau-foundation/roomevents/lib/ref"
)

func messageSpec() Spec {
	return Spec{
		Type:           "m.room.message",
		Classification: Message,
		Required: []Field{
			{Name: "msgtype", Kind: jsonvalue.KindString},
			{Name: "body", Kind: jsonvalue.KindString},
		},
		Optional: []Field{{Name: "format", Kind: jsonvalue.KindString}},
	}
}

func TestDefineSortsFields(t *testing.T) {
	kind, err := Define(messageSpec())
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	required := kind.Required()
	if len(required) != 2 || required[0].Name != "body" || required[1].Name != "msgtype" {
		t.Fatalf("Required() = %+v, want body then msgtype", required)
	}
	if !kind.IsRequired("body") || kind.IsRequired("format") || kind.IsRequired("nope") {
		t.Error("IsRequired disagrees with the spec")
	}
	field, ok := kind.Field("format")
	if !ok || field.Kind != jsonvalue.KindString {
		t.Errorf("Field(format) = %+v, %v", field, ok)
	}
	if _, ok := kind.Field("future_field"); ok {
		t.Error("Field(future_field) reported a schema entry")
	}
	if kind.Retains("body") {
		t.Error("message kind with empty retain-set retains body")
	}
}

func TestKindAccessorsReturnCopies(t *testing.T) {
	kind := MustDefine(Spec{
		Type:           "m.room.join_rules",
		Classification: State,
		Required:       []Field{{Name: "join_rule", Kind: jsonvalue.KindString}},
		Retain:         []string{"join_rule", "allow"},
	})
	retain := kind.Retain()
	retain[0] = "mutated"
	if !slices.Equal(kind.Retain(), []string{"allow", "join_rule"}) {
		t.Errorf("Retain() = %v after mutating a returned slice", kind.Retain())
	}
	required := kind.Required()
	required[0].Name = "mutated"
	if kind.Required()[0].Name != "join_rule" {
		t.Error("Required() shares its backing array")
	}
}

func TestDefineRejectsInvalidSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{
			name: "empty type",
			spec: Spec{Classification: Message},
			want: "event type",
		},
		{
			name: "unknown classification",
			spec: Spec{Type: "m.room.topic"},
			want: "classification",
		},
		{
			name: "retain and retain_all",
			spec: Spec{Type: "m.room.create", Classification: State, RetainAll: true, Retain: []string{"creator"}},
			want: "mutually exclusive",
		},
		{
			name: "duplicate field",
			spec: Spec{
				Type:           "m.room.topic",
				Classification: State,
				Required:       []Field{{Name: "topic", Kind: jsonvalue.KindString}},
				Optional:       []Field{{Name: "topic", Kind: jsonvalue.KindString}},
			},
			want: "more than once",
		},
		{
			name: "empty field name",
			spec: Spec{Type: "m.room.topic", Classification: State, Optional: []Field{{Kind: jsonvalue.KindString}}},
			want: "empty name",
		},
		{
			name: "invalid field kind",
			spec: Spec{Type: "m.room.topic", Classification: State, Optional: []Field{{Name: "topic", Kind: 42}}},
			want: "invalid kind",
		},
		{
			name: "duplicate retain",
			spec: Spec{Type: "m.room.redaction", Classification: Message, Retain: []string{"redacts", "redacts"}},
			want: "twice",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Define(test.spec)
			if err == nil {
				t.Fatal("Define succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not mention %q", err, test.want)
			}
		})
	}
}

func TestRetainAll(t *testing.T) {
	kind := MustDefine(Spec{Type: "m.room.create", Classification: State, RetainAll: true})
	if !kind.RetainAll() || !kind.Retains("anything") {
		t.Error("retain_all kind does not retain arbitrary fields")
	}
	if len(kind.Retain()) != 0 {
		t.Errorf("Retain() = %v, want empty for retain_all", kind.Retain())
	}
}

func TestRegistryLookup(t *testing.T) {
	message := MustDefine(messageSpec())
	topic := MustDefine(Spec{Type: "m.room.topic", Classification: State})
	registry, err := New(message, topic)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if kind, ok := registry.Lookup("m.room.message"); !ok || kind != message {
		t.Errorf("Lookup(m.room.message) = %v, %v", kind, ok)
	}
	if _, ok := registry.Lookup("m.room.messages"); ok {
		t.Error("Lookup matched a type that differs by one character")
	}
	if got := registry.ClassificationOf("m.room.topic"); got != State {
		t.Errorf("ClassificationOf(m.room.topic) = %s, want state", got)
	}
	if got := registry.ClassificationOf("org.example.custom"); got != Unknown {
		t.Errorf("ClassificationOf(unregistered) = %s, want unknown", got)
	}
	if got := registry.Types(); !slices.Equal(got, []ref.EventType{"m.room.message", "m.room.topic"}) {
		t.Errorf("Types() = %v", got)
	}
	if registry.Len() != 2 {
		t.Errorf("Len() = %d, want 2", registry.Len())
	}
}

func TestNilRegistryIsEmpty(t *testing.T) {
	var registry *Registry
	if _, ok := registry.Lookup("m.room.message"); ok {
		t.Error("nil registry found a kind")
	}
	if registry.ClassificationOf("m.room.message") != Unknown {
		t.Error("nil registry classified a type")
	}
	if registry.Len() != 0 || len(registry.Types()) != 0 || len(registry.Kinds()) != 0 {
		t.Error("nil registry is not empty")
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New(MustDefine(messageSpec()), MustDefine(messageSpec()))
	if err == nil {
		t.Fatal("New accepted two kinds with the same type")
	}
}

func TestRegistryWithDoesNotMutate(t *testing.T) {
	base, err := New(MustDefine(Spec{Type: "m.room.topic", Classification: State}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	override := MustDefine(Spec{
		Type:           "m.room.topic",
		Classification: State,
		Retain:         []string{"topic"},
	})
	custom := MustDefine(Spec{Type: "org.example.poll", Classification: Message})

	extended, err := base.With(override, custom)
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if base.Len() != 1 {
		t.Errorf("base registry grew to %d kinds", base.Len())
	}
	if kind, _ := base.Lookup("m.room.topic"); kind.Retains("topic") {
		t.Error("base registry sees the override")
	}
	if kind, _ := extended.Lookup("m.room.topic"); !kind.Retains("topic") {
		t.Error("extended registry does not see the override")
	}
	if extended.ClassificationOf("org.example.poll") != Message {
		t.Error("extended registry missing the custom kind")
	}

	if _, err := base.With(custom, custom); err == nil {
		t.Error("With accepted the same type twice")
	}
}

func TestDefaultRetainSets(t *testing.T) {
	registry := Default()
	tests := []struct {
		eventType      ref.EventType
		classification Classification
		retain         []string
		retainAll      bool
	}{
		{eventType: "m.room.message", classification: Message},
		{eventType: "m.room.create", classification: State, retainAll: true},
		{eventType: "m.room.member", classification: State, retain: []string{"join_authorised_via_users_server", "membership", "third_party_invite"}},
		{eventType: "m.room.join_rules", classification: State, retain: []string{"allow", "join_rule"}},
		{eventType: "m.room.power_levels", classification: State, retain: []string{
			"ban", "events", "events_default", "invite", "kick", "redact", "state_default", "users", "users_default",
		}},
		{eventType: "m.room.history_visibility", classification: State, retain: []string{"history_visibility"}},
		{eventType: "m.room.redaction", classification: Message, retain: []string{"redacts"}},
		{eventType: "m.room.topic", classification: State},
		{eventType: "m.room.aliases", classification: State},
		{eventType: "m.typing", classification: Ephemeral},
		{eventType: "m.reaction", classification: Message},
	}
	for _, test := range tests {
		t.Run(string(test.eventType), func(t *testing.T) {
			kind, ok := registry.Lookup(test.eventType)
			if !ok {
				t.Fatalf("default registry has no %s", test.eventType)
			}
			if kind.Classification() != test.classification {
				t.Errorf("classification = %s, want %s", kind.Classification(), test.classification)
			}
			if kind.RetainAll() != test.retainAll {
				t.Errorf("RetainAll() = %v, want %v", kind.RetainAll(), test.retainAll)
			}
			if got := kind.Retain(); len(got) != len(test.retain) || (len(got) > 0 && !slices.Equal(got, test.retain)) {
				t.Errorf("Retain() = %v, want %v", got, test.retain)
			}
		})
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() rebuilt the registry")
	}
}

const sampleYAML = `
kinds:
  - type: org.example.poll
    class: message
    required:
      question: string
      answers: sequence
    optional:
      closed: boolean
    retain: [question]
  - type: org.example.banner
    class: state
    retain_all: true
`

func TestLoadYAML(t *testing.T) {
	registry, err := LoadYAML(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	poll, ok := registry.Lookup("org.example.poll")
	if !ok {
		t.Fatal("poll kind missing")
	}
	if field, _ := poll.Field("answers"); field.Kind != jsonvalue.KindArray {
		t.Errorf("answers kind = %s, want array", field.Kind)
	}
	if field, _ := poll.Field("closed"); field.Kind != jsonvalue.KindBool {
		t.Errorf("closed kind = %s, want bool", field.Kind)
	}
	if !poll.Retains("question") || poll.Retains("answers") {
		t.Errorf("poll retain-set = %v", poll.Retain())
	}
	if banner, _ := registry.Lookup("org.example.banner"); !banner.RetainAll() {
		t.Error("banner is not retain_all")
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: "empty"},
		{name: "unknown key", input: "kinds:\n  - type: a.b\n    class: message\n    retian: [x]\n", want: "retian"},
		{name: "bad class", input: "kinds:\n  - type: a.b\n    class: timeline\n", want: "classification"},
		{name: "bad value kind", input: "kinds:\n  - type: a.b\n    class: message\n    required:\n      x: float\n", want: "float"},
		{name: "duplicate type", input: "kinds:\n  - type: a.b\n    class: message\n  - type: a.b\n    class: state\n", want: "more than once"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(test.input))
			if err == nil {
				t.Fatal("LoadYAML succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not mention %q", err, test.want)
			}
		})
	}
}

func TestLoadJSONC(t *testing.T) {
	input := []byte(`{
		// Polls are an MSC-stage extension.
		"kinds": [
			{
				"type": "org.example.poll",
				"class": "message",
				"required": {"question": "string",},
				"retain": ["question"],
			},
		],
	}`)
	registry, err := LoadJSONC(input)
	if err != nil {
		t.Fatalf("LoadJSONC: %v", err)
	}
	poll, ok := registry.Lookup("org.example.poll")
	if !ok || !poll.IsRequired("question") || !poll.Retains("question") {
		t.Fatalf("poll kind = %+v, %v", poll, ok)
	}

	if _, err := LoadJSONC([]byte(`{"kinds": [{"type": "a.b", "class": "message", "extra": 1}]}`)); err == nil {
		t.Error("LoadJSONC accepted an unknown key")
	}
}

func TestLoadFileDispatchesOnExtension(t *testing.T) {
	directory := t.TempDir()
	yamlPath := filepath.Join(directory, "kinds.yaml")
	if err := os.WriteFile(yamlPath, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	jsoncPath := filepath.Join(directory, "kinds.jsonc")
	if err := os.WriteFile(jsoncPath, []byte(`{"kinds": [{"type": "a.b", "class": "ephemeral"}] /* one */}`), 0o644); err != nil {
		t.Fatal(err)
	}
	textPath := filepath.Join(directory, "kinds.txt")
	if err := os.WriteFile(textPath, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	registry, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile(yaml): %v", err)
	}
	if registry.Len() != 2 {
		t.Errorf("yaml registry has %d kinds, want 2", registry.Len())
	}

	registry, err = LoadFile(jsoncPath)
	if err != nil {
		t.Fatalf("LoadFile(jsonc): %v", err)
	}
	if registry.ClassificationOf("a.b") != Ephemeral {
		t.Error("jsonc kind not loaded")
	}

	if _, err := LoadFile(textPath); err == nil || !strings.Contains(err.Error(), "extension") {
		t.Errorf("LoadFile(txt) error = %v, want extension error", err)
	}
	if _, err := LoadFile(filepath.Join(directory, "missing.yaml")); err == nil {
		t.Error("LoadFile succeeded on a missing file")
	}
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	data, err := MarshalYAML(Default())
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	reloaded, err := LoadYAML(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadYAML(MarshalYAML(Default())): %v\n%s", err, data)
	}
	if !slices.Equal(reloaded.Types(), Default().Types()) {
		t.Fatalf("types differ after round trip")
	}
	for _, original := range Default().Kinds() {
		copied, _ := reloaded.Lookup(original.Type())
		if copied.Classification() != original.Classification() ||
			copied.RetainAll() != original.RetainAll() ||
			!slices.Equal(copied.Retain(), original.Retain()) ||
			!slices.Equal(copied.Required(), original.Required()) ||
			!slices.Equal(copied.Optional(), original.Optional()) {
			t.Errorf("%s changed after round trip: %+v vs %+v", original.Type(), copied.Spec(), original.Spec())
		}
	}
}
