// Package tokenizer implements a CLIP-style byte-level BPE tokenizer: it
// converts raw text into fixed-length int32 token-id sequences for a neural
// text encoder, and inverts token ids back to text.
package tokenizer

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/example/go-cliptok/internal/postag"
	"github.com/example/go-cliptok/internal/tensor"
	"github.com/example/go-cliptok/internal/text"
)

const (
	// DefaultContextLength is the fixed sequence length consumed by the
	// CLIP text encoder.
	DefaultContextLength = 77

	// DefaultBPEPath is the bundled merge artifact location.
	DefaultBPEPath = "models/bpe_simple_vocab_16e6.txt.gz"

	// bpeCacheSize bounds the merge-result memo. Natural-language inputs
	// reuse a small working set of distinct words, so hits dominate.
	bpeCacheSize = 8192
)

// Options configures tokenizer construction. The zero value selects the
// bundled artifact, the default context length and lowercase cleaning.
type Options struct {
	// BPEPath locates the gzip-compressed merge-rule artifact.
	BPEPath string

	// SpecialTokens are extra literal strings treated as atomic,
	// unsplittable vocabulary entries, appended after the two mandatory
	// special tokens.
	SpecialTokens []string

	// ContextLength is the fixed packed-output length L.
	ContextLength int

	// Clean selects the normalizer strategy.
	Clean text.CleanStrategy

	// KeepSubstring spares one literal substring from punctuation
	// stripping under the canonicalize strategy.
	KeepSubstring string

	// Reduction selects the oversized-input strategy, if any.
	Reduction ReductionStrategy

	// Tagger supplies part-of-speech tags for the syntax reduction
	// strategy. Defaults to the built-in rule tagger.
	Tagger postag.Tagger

	// Rand seeds the random reduction strategies. Defaults to a
	// time-seeded source; tests inject a fixed seed.
	Rand *rand.Rand
}

// Tokenizer converts text to fixed-length id sequences and back. The
// vocabulary, codec and merge table are immutable after construction; the
// merge cache is the only mutable state and is owned by this instance, so
// independent instances never interfere.
type Tokenizer struct {
	codec      *byteCodec
	vocab      *vocabulary
	cleaner    *text.Cleaner
	segmenter  *text.Segmenter
	cache      *lru.Cache[string, string]
	contextLen int
	reduction  ReductionStrategy
	tagger     postag.Tagger
	rng        *rand.Rand
}

// New constructs a Tokenizer from a merge artifact. Construction is the
// only step that performs file I/O; a missing or corrupt artifact, an
// unknown strategy name or an unusable context length fail here.
func New(opts Options) (*Tokenizer, error) {
	if opts.BPEPath == "" {
		opts.BPEPath = DefaultBPEPath
	}
	if opts.ContextLength == 0 {
		opts.ContextLength = DefaultContextLength
	}
	if opts.ContextLength < 2 {
		return nil, fmt.Errorf("context length %d leaves no room for start/end markers", opts.ContextLength)
	}

	cleaner, err := text.NewCleaner(opts.Clean, opts.KeepSubstring)
	if err != nil {
		return nil, err
	}
	if err := validateReduction(opts.Reduction); err != nil {
		return nil, err
	}

	codec := newByteCodec()
	vocab, err := loadVocabulary(opts.BPEPath, codec, opts.SpecialTokens)
	if err != nil {
		return nil, err
	}

	cache, err := lru.New[string, string](bpeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create bpe cache: %w", err)
	}
	for sym := range vocab.special {
		cache.Add(sym, sym)
	}

	tagger := opts.Tagger
	if tagger == nil {
		tagger = postag.NewRuleTagger()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	specials := make([]string, 0, 2+len(opts.SpecialTokens))
	specials = append(specials, StartOfText, EndOfText)
	specials = append(specials, opts.SpecialTokens...)

	return &Tokenizer{
		codec:      codec,
		vocab:      vocab,
		cleaner:    cleaner,
		segmenter:  text.NewSegmenter(specials),
		cache:      cache,
		contextLen: opts.ContextLength,
		reduction:  opts.Reduction,
		tagger:     tagger,
		rng:        rng,
	}, nil
}

// ContextLength returns the fixed packed-output length L.
func (t *Tokenizer) ContextLength() int {
	return t.contextLen
}

// VocabSize returns the total number of vocabulary symbols.
func (t *Tokenizer) VocabSize() int {
	return t.vocab.size()
}

// StartID and EndID return the reserved ids that wrap every packed row.
func (t *Tokenizer) StartID() int { return t.vocab.sot }
func (t *Tokenizer) EndID() int   { return t.vocab.eot }

// SymbolID looks up the vocabulary id of a symbol.
func (t *Tokenizer) SymbolID(sym string) (int, bool) {
	id, ok := t.vocab.encoder[sym]
	return id, ok
}

// Encode normalizes and segments input, byte-encodes each chunk, applies
// ranked merges and maps the resulting pieces to vocabulary ids. Pieces
// absent from the vocabulary are silently dropped.
func (t *Tokenizer) Encode(input string) []int {
	cleaned := t.cleaner.Clean(input)

	var ids []int
	for _, chunk := range t.segmenter.Split(cleaned) {
		// Special tokens are stored raw, not byte-encoded. Matching the
		// chunk before encoding keeps specials with bytes outside the
		// codec identity range (spaces, non-ASCII) atomic.
		if _, ok := t.vocab.special[chunk]; ok {
			ids = append(ids, t.vocab.encoder[chunk])
			continue
		}
		encoded := t.codec.encodeBytes([]byte(chunk))
		for _, piece := range strings.Split(t.applyBPE(encoded), " ") {
			if id, ok := t.vocab.encoder[piece]; ok {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Decode maps ids back to text. Unknown ids and symbols outside the byte
// codec are dropped, invalid UTF-8 is replaced, and the word-final marker
// becomes a literal space. Word-boundary information cannot survive the
// round trip, so Decode is lossy at chunk boundaries.
func (t *Tokenizer) Decode(ids []int) string {
	var sb strings.Builder
	for _, id := range ids {
		if sym, ok := t.vocab.decoder[id]; ok {
			sb.WriteString(sym)
		}
	}

	raw := t.codec.decodeRunes(sb.String())
	decoded := strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	return strings.ReplaceAll(decoded, wordEnd, " ")
}

// Tokenize encodes each input, applies the configured reduction strategy to
// oversized sequences, wraps each row with the start/end markers and packs
// the batch into a pre-zeroed int32 buffer of shape [len(texts), L]. Rows
// that still exceed L are truncated with the final slot forced to the
// end-of-text id.
func (t *Tokenizer) Tokenize(texts ...string) (*tensor.Tensor, error) {
	rows := make([][]int32, len(texts))
	for i, input := range texts {
		ids := t.reduce(t.Encode(input), input)

		row := make([]int32, 0, len(ids)+2)
		row = append(row, int32(t.vocab.sot))
		for _, id := range ids {
			row = append(row, int32(id))
		}
		row = append(row, int32(t.vocab.eot))

		if len(row) > t.contextLen {
			row = row[:t.contextLen]
			row[t.contextLen-1] = int32(t.vocab.eot)
		}
		rows[i] = row
	}

	packed, err := tensor.PackRows(rows, t.contextLen)
	if err != nil {
		return nil, fmt.Errorf("pack token rows: %w", err)
	}
	return packed, nil
}
