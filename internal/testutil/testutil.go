// Package testutil provides shared skip helpers and fixture builders for
// tokenizer tests.
//
// RequireMergesArtifact skips with a clear reason when the real published
// artifact is absent, so the full-vocabulary integration tests remain
// runnable in partial environments. WriteMergesFixture builds tiny gzip
// artifacts so unit tests never depend on the 1.3 MB published file.
package testutil

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

// RequireMergesArtifact walks up from the package dir looking for
// models/bpe_simple_vocab_16e6.txt.gz and skips the test if absent.
func RequireMergesArtifact(tb testing.TB) string {
	tb.Helper()

	dir, err := filepath.Abs(".")
	if err != nil {
		tb.Fatalf("abs path: %v", err)
	}

	for {
		candidate := filepath.Join(dir, "models", "bpe_simple_vocab_16e6.txt.gz")

		_, err = os.Stat(candidate)
		if err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	tb.Skip("models/bpe_simple_vocab_16e6.txt.gz not found; run `cliptok fetch` to download it")

	return ""
}

// WriteMergesFixture writes a gzip merge artifact under tb's temp dir.
// Line 1 is the ignored version header; each following line is one
// "<left> <right>" merge rule in priority order.
func WriteMergesFixture(tb testing.TB, merges []string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "merges.txt.gz")

	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create fixture: %v", err)
	}

	zw := gzip.NewWriter(f)
	lines := append([]string{"#version: test-fixture"}, merges...)
	for _, line := range lines {
		if _, err := zw.Write([]byte(line + "\n")); err != nil {
			tb.Fatalf("write fixture: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("close gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		tb.Fatalf("close fixture: %v", err)
	}

	return path
}
