package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

// newFlagBinder creates a FlagSet with all config flags registered at their defaults.
func newFlagBinder(defaults Config) *fakeBinder {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	return &fakeBinder{fs: fs}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "info")
	}

	if cfg.Tokenizer.BPEPath != "models/bpe_simple_vocab_16e6.txt.gz" {
		t.Errorf("BPEPath = %q; want bundled artifact path", cfg.Tokenizer.BPEPath)
	}

	if cfg.Tokenizer.ContextLength != 77 {
		t.Errorf("ContextLength = %d; want 77", cfg.Tokenizer.ContextLength)
	}

	if cfg.Tokenizer.Clean != "lower" {
		t.Errorf("Clean = %q; want %q", cfg.Tokenizer.Clean, "lower")
	}

	if cfg.Tokenizer.Reduction != "" {
		t.Errorf("Reduction = %q; want disabled", cfg.Tokenizer.Reduction)
	}

	if len(cfg.Tokenizer.SpecialTokens) != 0 {
		t.Errorf("SpecialTokens = %v; want none", cfg.Tokenizer.SpecialTokens)
	}

	if cfg.Artifact.URL == "" {
		t.Error("Artifact.URL is empty")
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	defaults := DefaultConfig()
	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(defaults), Defaults: defaults})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != defaults.LogLevel {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, defaults.LogLevel)
	}
	if cfg.Tokenizer.BPEPath != defaults.Tokenizer.BPEPath {
		t.Errorf("BPEPath = %q; want %q", cfg.Tokenizer.BPEPath, defaults.Tokenizer.BPEPath)
	}
	if cfg.Tokenizer.ContextLength != defaults.Tokenizer.ContextLength {
		t.Errorf("ContextLength = %d; want %d", cfg.Tokenizer.ContextLength, defaults.Tokenizer.ContextLength)
	}
	if cfg.Tokenizer.Clean != defaults.Tokenizer.Clean {
		t.Errorf("Clean = %q; want %q", cfg.Tokenizer.Clean, defaults.Tokenizer.Clean)
	}
	if cfg.Artifact.URL != defaults.Artifact.URL {
		t.Errorf("Artifact.URL = %q; want %q", cfg.Artifact.URL, defaults.Artifact.URL)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	chdirTemp(t)

	defaults := DefaultConfig()
	binder := newFlagBinder(defaults)
	if err := binder.fs.Parse([]string{"--tokenizer-context-length", "32", "--tokenizer-clean", "whitespace"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(LoadOptions{Cmd: binder, Defaults: defaults})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tokenizer.ContextLength != 32 {
		t.Errorf("ContextLength = %d; want 32", cfg.Tokenizer.ContextLength)
	}
	if cfg.Tokenizer.Clean != "whitespace" {
		t.Errorf("Clean = %q; want %q", cfg.Tokenizer.Clean, "whitespace")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CLIPTOK_TOKENIZER_BPE_PATH", "/tmp/custom.txt.gz")
	t.Setenv("CLIPTOK_LOG_LEVEL", "debug")

	defaults := DefaultConfig()
	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(defaults), Defaults: defaults})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tokenizer.BPEPath != "/tmp/custom.txt.gz" {
		t.Errorf("BPEPath = %q; want env override", cfg.Tokenizer.BPEPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "debug")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	path := filepath.Join(dir, "cliptok.yaml")
	content := "tokenizer:\n  context_length: 64\n  reduction: simple\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	defaults := DefaultConfig()
	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(defaults), ConfigFile: path, Defaults: defaults})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tokenizer.ContextLength != 64 {
		t.Errorf("ContextLength = %d; want 64", cfg.Tokenizer.ContextLength)
	}
	if cfg.Tokenizer.Reduction != "simple" {
		t.Errorf("Reduction = %q; want %q", cfg.Tokenizer.Reduction, "simple")
	}
}

func TestLoad_FlagBeatsConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	path := filepath.Join(dir, "cliptok.yaml")
	content := "tokenizer:\n  context_length: 64\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	defaults := DefaultConfig()
	binder := newFlagBinder(defaults)
	if err := binder.fs.Parse([]string{"--tokenizer-context-length", "32"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(LoadOptions{Cmd: binder, ConfigFile: path, Defaults: defaults})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tokenizer.ContextLength != 32 {
		t.Errorf("ContextLength = %d; want flag value 32", cfg.Tokenizer.ContextLength)
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	chdirTemp(t)

	defaults := DefaultConfig()
	_, err := Load(LoadOptions{
		Cmd:        newFlagBinder(defaults),
		ConfigFile: "does-not-exist.yaml",
		Defaults:   defaults,
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

// chdirTemp switches to a temp dir so a stray cliptok.yaml in the working
// tree cannot leak into config loading.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
	return dir
}
