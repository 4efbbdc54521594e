package tokenizer

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"strings"
)

const (
	// wordEnd marks the final symbol of a segmented chunk, distinguishing
	// word-ending vocabulary entries from mid-word ones.
	wordEnd = "</w>"

	// StartOfText and EndOfText are the mandatory special tokens wrapping
	// every packed sequence.
	StartOfText = "<|startoftext|>"
	EndOfText   = "<|endoftext|>"

	// targetVocabSize caps how many merge rules are consumed from the
	// artifact: merges beyond targetVocabSize - 256 - 2 lines are ignored so
	// the derived vocabulary matches the published CLIP table.
	targetVocabSize = 49152
)

// mergePair is an ordered pair of vocabulary symbols subject to merging.
type mergePair struct {
	left  string
	right string
}

// vocabulary holds the id-assigned symbol table and the ranked merge rules.
// It is built once at construction and read-only afterwards.
type vocabulary struct {
	encoder map[string]int
	decoder map[int]string
	ranks   map[mergePair]int
	special map[string]struct{}

	sot int
	eot int
}

// loadVocabulary reads a gzip-compressed merge artifact and derives the full
// vocabulary from it. Line 1 of the artifact is a version header and is
// skipped; each following non-blank line is "<left> <right>" in priority
// order (earlier line = lower rank = applied first).
func loadVocabulary(path string, codec *byteCodec, extraSpecial []string) (*vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bpe merges %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompress bpe merges %q: %w", path, err)
	}
	defer func() { _ = zr.Close() }()

	maxMerges := targetVocabSize - 256 - 2

	var merges []mergePair
	scanner := bufio.NewScanner(zr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue // version header
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// The published artifact carries more rules than the target
		// vocabulary admits. Lines past the cap are ignored on purpose
		// and are not validated; malformed lines only error before it.
		if len(merges) == maxMerges {
			break
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed merge rule at %s:%d: %q", path, lineNo, line)
		}
		merges = append(merges, mergePair{left: fields[0], right: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read bpe merges %q: %w", path, err)
	}

	return buildVocabulary(codec, merges, extraSpecial), nil
}

// buildVocabulary assigns contiguous ids starting at 0 in the fixed order:
// byte symbols, word-final byte symbols, merged symbols, special tokens.
func buildVocabulary(codec *byteCodec, merges []mergePair, extraSpecial []string) *vocabulary {
	specials := append([]string{StartOfText, EndOfText}, extraSpecial...)

	v := &vocabulary{
		encoder: make(map[string]int, 256*2+len(merges)+len(specials)),
		decoder: make(map[int]string, 256*2+len(merges)+len(specials)),
		ranks:   make(map[mergePair]int, len(merges)),
		special: make(map[string]struct{}, len(specials)),
	}

	add := func(sym string) {
		id := len(v.encoder)
		v.encoder[sym] = id
		v.decoder[id] = sym
	}

	for b := 0; b < 256; b++ {
		add(string(codec.toRune[b]))
	}
	for b := 0; b < 256; b++ {
		add(string(codec.toRune[b]) + wordEnd)
	}
	for rank, m := range merges {
		v.ranks[m] = rank
		add(m.left + m.right)
	}
	for _, sym := range specials {
		add(sym)
		v.special[sym] = struct{}{}
	}

	v.sot = v.encoder[StartOfText]
	v.eot = v.encoder[EndOfText]

	return v
}

// size returns the total number of vocabulary symbols.
func (v *vocabulary) size() int {
	return len(v.encoder)
}
