package text

import (
	"regexp"
	"strings"
)

// Segmenter splits cleaned text into the coarse word-ish chunks that the
// merge engine operates on. Matching priority is fixed: special-token
// literals first, then English contraction suffixes, then letter runs,
// single digits and symbol runs. Go's regexp engine resolves alternation
// leftmost-first, which preserves that priority; chunk boundaries (and
// therefore final token ids) depend on it.
type Segmenter struct {
	pattern *regexp.Regexp
}

// chunkAlternatives are the generic pattern branches, tried after any
// configured special-token literals.
var chunkAlternatives = []string{
	`'s`, `'t`, `'re`, `'ve`, `'m`, `'ll`, `'d`,
	`\p{L}+`,
	`\p{N}`,
	`[^\s\p{L}\p{N}]+`,
}

// NewSegmenter compiles the chunking pattern. Special tokens are quoted and
// matched atomically before any generic branch.
func NewSegmenter(specialTokens []string) *Segmenter {
	alts := make([]string, 0, len(specialTokens)+len(chunkAlternatives))
	for _, tok := range specialTokens {
		alts = append(alts, regexp.QuoteMeta(tok))
	}
	alts = append(alts, chunkAlternatives...)

	return &Segmenter{
		pattern: regexp.MustCompile(`(?i)` + strings.Join(alts, "|")),
	}
}

// Split returns the ordered chunks of text. Only whitespace between chunks
// is dropped; every other character lands in exactly one chunk.
func (s *Segmenter) Split(text string) []string {
	return s.pattern.FindAllString(text, -1)
}
