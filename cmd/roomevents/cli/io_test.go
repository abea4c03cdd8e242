// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ndjson")
	if err := os.WriteFile(path, []byte("from file"), 0o644); err != nil {
		t.Fatal(err)
	}
	stdin := strings.NewReader("from stdin")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args reads stdin", nil, "from stdin"},
		{"dash reads stdin", []string{"-"}, "from stdin"},
		{"file argument", []string{path}, "from file"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stdin.Reset("from stdin")
			got, err := ReadInput(test.args, stdin)
			if err != nil {
				t.Fatalf("ReadInput: %v", err)
			}
			if string(got) != test.want {
				t.Errorf("ReadInput = %q, want %q", got, test.want)
			}
		})
	}

	if _, err := ReadInput([]string{"a", "b"}, stdin); err == nil {
		t.Error("ReadInput accepted two arguments")
	}
	if _, err := ReadInput([]string{filepath.Join(t.TempDir(), "missing")}, stdin); err == nil {
		t.Error("ReadInput accepted a missing file")
	}
}

func TestWriteJSON(t *testing.T) {
	var output bytes.Buffer
	var empty []string
	if err := WriteJSON(&output, empty); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if output.String() != "[]\n" {
		t.Errorf("nil slice = %q, want []", output.String())
	}

	output.Reset()
	if err := WriteJSON(&output, map[string]string{"body": "<b>"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(output.String(), `"<b>"`) {
		t.Errorf("HTML should not be escaped: %q", output.String())
	}
}

func TestNewLogger(t *testing.T) {
	var output bytes.Buffer
	newLogger(&output, false, slog.LevelInfo).Info("archived", "records", 3)
	if !strings.HasPrefix(output.String(), "{") {
		t.Errorf("non-terminal logger should write JSON, got %q", output.String())
	}

	output.Reset()
	logger := newLogger(&output, true, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("archived", "records", 3)
	if strings.Contains(output.String(), "hidden") {
		t.Error("debug line written at info level")
	}
	if !strings.Contains(output.String(), "records=3") {
		t.Errorf("terminal logger should write text, got %q", output.String())
	}
}
