// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPlainRendererEmitsNoEscapes(t *testing.T) {
	var output bytes.Buffer
	renderer := NewPlainRenderer(&output)

	stateKey := "@bob:example.org"
	if err := renderer.Summary(Summary{
		Position: "0",
		Type:     "m.room.member",
		StateKey: &stateKey,
		Sender:   "@alice:example.org",
		EventID:  "$ev:example.org",
		Class:    "state",
		Variant:  "typed",
		Preview:  `{"membership":"join"}`,
	}); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if err := renderer.JSON([]byte(`{"a":1}`)); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if err := renderer.Failure("line 3", errors.New("missing required field")); err != nil {
		t.Fatalf("Failure: %v", err)
	}

	got := output.String()
	if strings.Contains(got, "\x1b[") {
		t.Errorf("plain renderer emitted escape sequences: %q", got)
	}
	want := "0  m.room.member[@bob:example.org]  @alice:example.org  $ev:example.org  state/typed  {\"membership\":\"join\"}\n" +
		"{\"a\":1}\n" +
		"line 3  error: missing required field\n"
	if got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestColorRendererHighlightsJSON(t *testing.T) {
	var output bytes.Buffer
	renderer := newRenderer(&output, true)
	if !renderer.Color() {
		t.Fatal("Color() = false for a color renderer")
	}
	if err := renderer.JSON([]byte(`{"body":"hello"}`)); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(output.String(), "\x1b[") {
		t.Errorf("expected escape sequences in %q", output.String())
	}
	if stripped := strings.TrimSpace(StripANSI(output.String())); stripped != `{"body":"hello"}` {
		t.Errorf("stripped output = %q", stripped)
	}
}

func TestNewRendererOnBufferIsPlain(t *testing.T) {
	if NewRenderer(&bytes.Buffer{}).Color() {
		t.Error("a non-terminal writer should not get color")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 100)
	got := Truncate(long, 10)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated string should end with an ellipsis: %q", got)
	}
	if len([]rune(got)) != 10 {
		t.Errorf("truncated width = %d runes, want 10", len([]rune(got)))
	}
}
