package main

import (
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tc := range cases {
		got, err := parseLogLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("parseLogLevel(%q) err = %v; wantErr = %t", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("parseLogLevel(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"49406", "3306", "49407"})
	if err != nil {
		t.Fatalf("parseIDs: %v", err)
	}
	if len(ids) != 3 || ids[0] != 49406 || ids[1] != 3306 || ids[2] != 49407 {
		t.Errorf("parseIDs = %v", ids)
	}

	if _, err := parseIDs([]string{"abc"}); err == nil {
		t.Error("expected error for non-numeric id")
	}
	if _, err := parseIDs([]string{"-1"}); err == nil {
		t.Error("expected error for negative id")
	}
}

func TestReadInputTexts_Args(t *testing.T) {
	texts, err := readInputTexts([]string{"a", "b"}, strings.NewReader("ignored"))
	if err != nil {
		t.Fatalf("readInputTexts: %v", err)
	}
	if len(texts) != 2 || texts[0] != "a" || texts[1] != "b" {
		t.Errorf("texts = %v", texts)
	}
}

func TestReadInputTexts_Stdin(t *testing.T) {
	texts, err := readInputTexts(nil, strings.NewReader("one\n\n two \n"))
	if err != nil {
		t.Fatalf("readInputTexts: %v", err)
	}
	if len(texts) != 2 || texts[0] != "one" || texts[1] != "two" {
		t.Errorf("texts = %v", texts)
	}
}

func TestReadInputTexts_Empty(t *testing.T) {
	if _, err := readInputTexts(nil, strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	want := []string{"encode", "decode", "vocab", "fetch"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
