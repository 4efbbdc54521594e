package tokenizer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/example/go-cliptok/internal/postag"
)

// ReductionStrategy selects how oversized inputs are shortened before the
// start/end markers are added. The empty strategy disables reduction and
// leaves truncation to the packing step.
type ReductionStrategy string

const (
	ReduceNone    ReductionStrategy = ""
	ReduceSimple  ReductionStrategy = "simple"
	ReduceRandom  ReductionStrategy = "random"
	ReduceShuffle ReductionStrategy = "shuffle"
	ReduceSyntax  ReductionStrategy = "syntax"
)

// ErrUnknownReduction is returned at construction for strategy names
// outside the fixed set.
var ErrUnknownReduction = errors.New("unknown reduction strategy")

func validateReduction(r ReductionStrategy) error {
	switch r {
	case ReduceNone, ReduceSimple, ReduceRandom, ReduceShuffle, ReduceSyntax:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownReduction, r)
	}
}

// reduce shortens ids to at most contextLen-2 entries using the configured
// strategy. Sequences that already fit pass through untouched.
func (t *Tokenizer) reduce(ids []int, input string) []int {
	keep := t.contextLen - 2
	if t.reduction == ReduceNone || len(ids) <= keep {
		return ids
	}

	switch t.reduction {
	case ReduceSimple:
		// Uniformly random contiguous window, order preserved.
		start := t.rng.Intn(len(ids) - keep + 1)
		return ids[start : start+keep]
	case ReduceRandom:
		idx := t.rng.Perm(len(ids))[:keep]
		sort.Ints(idx)
		return pick(ids, idx)
	case ReduceShuffle:
		// Same draw as ReduceRandom, but the draw order is kept.
		return pick(ids, t.rng.Perm(len(ids))[:keep])
	case ReduceSyntax:
		return t.reduceSyntax(input, keep)
	}
	return ids
}

func pick(ids []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = ids[j]
	}
	return out
}

// syntaxPriority orders coarse grammatical classes: content words carry
// most of the signal for a text encoder, so nouns outrank adjectives,
// adjectives outrank verbs, and everything else comes last.
func syntaxPriority(tag postag.Tag) int {
	switch tag {
	case postag.Noun:
		return 3
	case postag.Adjective:
		return 2
	case postag.Verb:
		return 1
	default:
		return 0
	}
}

// reduceSyntax keeps the keep highest-priority words (ties broken by
// original order), restores original word order and re-encodes the reduced
// text.
func (t *Tokenizer) reduceSyntax(input string, keep int) []int {
	words := strings.Fields(t.cleaner.Clean(input))
	if len(words) > keep {
		tags := t.tagger.Tag(words)

		order := make([]int, len(words))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return syntaxPriority(tags[order[a]]) > syntaxPriority(tags[order[b]])
		})
		order = order[:keep]
		sort.Ints(order)

		reduced := make([]string, len(order))
		for i, j := range order {
			reduced[i] = words[j]
		}
		words = reduced
	}

	ids := t.Encode(strings.Join(words, " "))
	if len(ids) > keep {
		ids = ids[:keep]
	}
	return ids
}
