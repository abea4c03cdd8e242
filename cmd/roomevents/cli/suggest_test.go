// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"ab", "abc", 1},
		{"abc", "bac", 2},
		{"kitten", "sitting", 3},
		{"redact", "redcat", 2},
		{"decode", "decod", 1},
	}

	for _, test := range tests {
		t.Run(test.a+"/"+test.b, func(t *testing.T) {
			got := levenshtein(test.a, test.b)
			if got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
			if reverse := levenshtein(test.b, test.a); reverse != got {
				t.Errorf("levenshtein not symmetric: %d vs %d", got, reverse)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "decode"},
		{Name: "encode"},
		{Name: "canonical"},
		{Name: "fingerprint"},
		{Name: "kinds"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"decod", "decode"},
		{"cannonical", "canonical"},
		{"fingerprnt", "fingerprint"},
		{"kind", "kinds"},
		{"zzzzzzzzz", ""},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			if got := suggestCommand(test.input, commands); got != test.want {
				t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestSuggestFlag(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flagSet.String("archive", "", "")
		flagSet.String("identity", "", "")
		flagSet.BoolP("verbose", "v", false, "")
		return flagSet
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"typo", []string{"--archve"}, "--archive"},
		{"with value", []string{"--identiy=key.txt"}, "--identity"},
		{"known flags skipped", []string{"--archive", "x", "--verbos"}, "--verbose"},
		{"distant", []string{"--qqqqqqqqqq"}, ""},
		{"stops at terminator", []string{"--", "--archve"}, ""},
		{"stdin is not a flag", []string{"-", "--archve"}, "--archive"},
		{"known shorthand skipped", []string{"-v", "--identty"}, "--identity"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := suggestFlag(test.args, newFlags()); got != test.want {
				t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
			}
		})
	}
}
