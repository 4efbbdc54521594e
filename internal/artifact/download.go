// Package artifact fetches the BPE merge artifact over HTTP. The tokenizer
// core only ever reads a local path; this package is the file-or-network
// collaborator that puts the file there.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

type DownloadOptions struct {
	URL     string
	OutPath string
	// SHA256, when set, is the expected hex digest of the downloaded file.
	SHA256 string
	Client *http.Client
	Stdout io.Writer
}

var shaHexPattern = regexp.MustCompile(`(?i)^[a-f0-9]{64}$`)

// Download fetches the artifact to OutPath via a temp file and atomic
// rename. An existing file with a matching checksum is left untouched.
func Download(opts DownloadOptions) error {
	if opts.URL == "" {
		return fmt.Errorf("url is required")
	}
	if opts.OutPath == "" {
		return fmt.Errorf("out path is required")
	}
	if opts.SHA256 != "" && !shaHexPattern.MatchString(opts.SHA256) {
		return fmt.Errorf("invalid sha256 %q", opts.SHA256)
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}

	expected := strings.ToLower(opts.SHA256)
	if expected != "" {
		if ok, err := existingMatches(opts.OutPath, expected); err != nil {
			return err
		} else if ok {
			fmt.Fprintf(opts.Stdout, "skip %s (checksum match)\n", opts.OutPath)
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutPath), 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	fmt.Fprintf(opts.Stdout, "download %s -> %s\n", opts.URL, opts.OutPath)
	actual, err := downloadToFile(opts.Client, opts.URL, opts.OutPath)
	if err != nil {
		return err
	}
	if expected != "" && actual != expected {
		_ = os.Remove(opts.OutPath)
		return fmt.Errorf("checksum mismatch for %s: expected %s got %s", opts.OutPath, expected, actual)
	}
	fmt.Fprintf(opts.Stdout, "verified %s (sha256=%s)\n", opts.OutPath, actual)
	return nil
}

func existingMatches(path, expected string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat existing file: %w", err)
	}
	if fi.IsDir() {
		return false, fmt.Errorf("expected file at %s, found directory", path)
	}
	actual, err := fileSHA256(path)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}

func downloadToFile(client *http.Client, url, outPath string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("download failed for %s: %s", url, resp.Status)
	}

	tmp := outPath + ".tmp"
	fh, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	h := sha256.New()
	_, err = io.Copy(io.MultiWriter(fh, h), resp.Body)
	if err != nil {
		_ = fh.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := fh.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("finalize download: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
