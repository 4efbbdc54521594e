package tokenizer

import "strings"

// applyBPE reduces a byte-encoded chunk to its fully merged symbol sequence,
// joined by single spaces. Results are memoized per chunk; special tokens
// bypass merging entirely.
func (t *Tokenizer) applyBPE(chunk string) string {
	if _, ok := t.vocab.special[chunk]; ok {
		return chunk
	}
	if cached, ok := t.cache.Get(chunk); ok {
		return cached
	}

	runes := []rune(chunk)
	if len(runes) == 1 {
		// No adjacent pairs to merge.
		merged := chunk + wordEnd
		t.cache.Add(chunk, merged)
		return merged
	}

	word := make([]string, len(runes))
	for i, r := range runes {
		word[i] = string(r)
	}
	word[len(word)-1] += wordEnd

	for len(word) > 1 {
		pair, ok := t.lowestRankPair(word)
		if !ok {
			break
		}
		word = mergeAdjacent(word, pair)
	}

	merged := strings.Join(word, " ")
	t.cache.Add(chunk, merged)
	return merged
}

// lowestRankPair scans adjacent symbol pairs left to right and returns the
// one with the lowest merge rank. Pairs absent from the merge table are
// ignored; strict less-than comparison keeps the leftmost occurrence when
// ranks repeat, matching the reference reduce order.
func (t *Tokenizer) lowestRankPair(word []string) (mergePair, bool) {
	var best mergePair
	bestRank := -1
	for i := 0; i+1 < len(word); i++ {
		p := mergePair{left: word[i], right: word[i+1]}
		rank, ok := t.vocab.ranks[p]
		if !ok {
			continue
		}
		if bestRank < 0 || rank < bestRank {
			best, bestRank = p, rank
		}
	}
	return best, bestRank >= 0
}

// mergeAdjacent rewrites word by combining every non-overlapping
// left-to-right occurrence of pair into a single symbol.
func mergeAdjacent(word []string, pair mergePair) []string {
	out := make([]string, 0, len(word))
	for i := 0; i < len(word); {
		if i+1 < len(word) && word[i] == pair.left && word[i+1] == pair.right {
			out = append(out, pair.left+pair.right)
			i += 2
			continue
		}
		out = append(out, word[i])
		i++
	}
	return out
}
