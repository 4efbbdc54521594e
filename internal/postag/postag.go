// Package postag defines the narrow part-of-speech tagging interface
// consumed by the syntax content-reduction strategy, plus a heuristic
// English tagger usable where no external tagger is wired in.
package postag

import "strings"

// Tag is a coarse grammatical class.
type Tag string

const (
	Noun      Tag = "NOUN"
	Verb      Tag = "VERB"
	Adjective Tag = "ADJ"
	Other     Tag = "OTHER"
)

// Tagger assigns one Tag per input word. Implementations must return a
// slice of exactly len(words) tags.
type Tagger interface {
	Tag(words []string) []Tag
}

// RuleTagger is a dependency-free English tagger built from a small
// closed-class lexicon and suffix heuristics. It is deliberately coarse:
// the syntax reduction strategy only needs a relative ordering of word
// classes, not linguistically accurate tags.
type RuleTagger struct{}

func NewRuleTagger() *RuleTagger {
	return &RuleTagger{}
}

// closedClass maps function words to their (non-content) class.
var closedClass = map[string]Tag{
	"a": Other, "an": Other, "the": Other,
	"and": Other, "or": Other, "but": Other, "nor": Other, "so": Other,
	"of": Other, "in": Other, "on": Other, "at": Other, "by": Other,
	"to": Other, "for": Other, "with": Other, "from": Other, "as": Other,
	"into": Other, "over": Other, "under": Other, "about": Other,
	"i": Other, "you": Other, "he": Other, "she": Other, "it": Other,
	"we": Other, "they": Other, "my": Other, "your": Other, "his": Other,
	"her": Other, "its": Other, "our": Other, "their": Other,
	"this": Other, "that": Other, "these": Other, "those": Other,
	"not": Other, "no": Other, "very": Other, "too": Other,
	"is": Verb, "are": Verb, "was": Verb, "were": Verb, "be": Verb,
	"been": Verb, "being": Verb, "am": Verb,
	"have": Verb, "has": Verb, "had": Verb,
	"do": Verb, "does": Verb, "did": Verb,
	"will": Verb, "would": Verb, "can": Verb, "could": Verb,
	"shall": Verb, "should": Verb, "may": Verb, "might": Verb, "must": Verb,
}

var adjectiveSuffixes = []string{"ous", "ful", "ive", "able", "ible", "less", "ish", "est"}
var verbSuffixes = []string{"ing", "ize", "ise", "ate"}
var nounSuffixes = []string{"tion", "sion", "ment", "ness", "ship", "ity", "ism", "ance", "ence"}

// Tag classifies each word. Lookup order: closed-class lexicon, then noun,
// adjective and verb suffixes, with bare nouns as the open-class default.
func (rt *RuleTagger) Tag(words []string) []Tag {
	tags := make([]Tag, len(words))
	for i, w := range words {
		tags[i] = classify(strings.ToLower(strings.Trim(w, ".,!?;:'\"")))
	}
	return tags
}

func classify(w string) Tag {
	if w == "" {
		return Other
	}
	if tag, ok := closedClass[w]; ok {
		return tag
	}
	for _, s := range nounSuffixes {
		if len(w) > len(s)+1 && strings.HasSuffix(w, s) {
			return Noun
		}
	}
	for _, s := range adjectiveSuffixes {
		if len(w) > len(s)+1 && strings.HasSuffix(w, s) {
			return Adjective
		}
	}
	for _, s := range verbSuffixes {
		if len(w) > len(s)+1 && strings.HasSuffix(w, s) {
			return Verb
		}
	}
	if strings.HasSuffix(w, "ed") && len(w) > 3 {
		return Verb
	}
	if strings.HasSuffix(w, "ly") && len(w) > 3 {
		return Other
	}
	return Noun
}
