// Package text provides the cleaning and segmentation stages that raw input
// passes through before byte-pair encoding.
package text

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanStrategy selects one of the fixed text-cleaning behaviors.
type CleanStrategy string

const (
	// CleanLower is the default: entity decoding, NFC, whitespace collapsing
	// and lowercasing.
	CleanLower CleanStrategy = "lower"

	// CleanWhitespace performs the same cleaning without case folding.
	CleanWhitespace CleanStrategy = "whitespace"

	// CleanCanonicalize additionally strips punctuation, optionally sparing
	// one literal substring.
	CleanCanonicalize CleanStrategy = "canonicalize"
)

// ErrUnknownCleanStrategy is returned by NewCleaner for strategy names
// outside the fixed set.
var ErrUnknownCleanStrategy = errors.New("unknown clean strategy")

var whitespaceRun = regexp.MustCompile(`\s+`)

// canonicalPunct is the removable punctuation set for CleanCanonicalize.
const canonicalPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Cleaner applies one CleanStrategy. Cleaning is a pure function of the
// input text.
type Cleaner struct {
	strategy CleanStrategy
	keep     string // literal substring spared from punctuation stripping
}

// NewCleaner validates the strategy name and returns a Cleaner.
// An empty strategy selects CleanLower. The keep argument only affects
// CleanCanonicalize.
func NewCleaner(strategy CleanStrategy, keep string) (*Cleaner, error) {
	if strategy == "" {
		strategy = CleanLower
	}
	switch strategy {
	case CleanLower, CleanWhitespace, CleanCanonicalize:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCleanStrategy, strategy)
	}
	return &Cleaner{strategy: strategy, keep: keep}, nil
}

// Strategy reports the active cleaning strategy.
func (c *Cleaner) Strategy() CleanStrategy {
	return c.strategy
}

// Clean normalizes raw input text according to the configured strategy.
func (c *Cleaner) Clean(s string) string {
	switch c.strategy {
	case CleanWhitespace:
		return collapseWhitespace(basicClean(s))
	case CleanCanonicalize:
		return c.canonicalize(s)
	default: // CleanLower
		return strings.ToLower(collapseWhitespace(basicClean(s)))
	}
}

// basicClean decodes HTML entities twice (inputs scraped from the web are
// frequently double-escaped) and applies unicode canonical composition.
func basicClean(s string) string {
	s = html.UnescapeString(html.UnescapeString(s))
	return norm.NFC.String(s)
}

// collapseWhitespace reduces every whitespace run to a single space and
// trims the result.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// canonicalize strips the removable punctuation set, sparing the configured
// literal substring if present, then collapses whitespace and lowercases.
func (c *Cleaner) canonicalize(s string) string {
	s = basicClean(s)
	if c.keep != "" && strings.Contains(s, c.keep) {
		parts := strings.Split(s, c.keep)
		for i, p := range parts {
			parts[i] = stripPunct(p)
		}
		s = strings.Join(parts, c.keep)
	} else {
		s = stripPunct(s)
	}
	return strings.ToLower(collapseWhitespace(s))
}

func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(canonicalPunct, r) {
			return -1
		}
		return r
	}, s)
}
