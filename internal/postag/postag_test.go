package postag

import "testing"

func TestRuleTagger_ClosedClass(t *testing.T) {
	rt := NewRuleTagger()

	cases := []struct {
		word string
		want Tag
	}{
		{"the", Other},
		{"with", Other},
		{"is", Verb},
		{"would", Verb},
		{"The", Other}, // lookup is case-insensitive
	}
	for _, tc := range cases {
		got := rt.Tag([]string{tc.word})
		if got[0] != tc.want {
			t.Errorf("Tag(%q) = %q; want %q", tc.word, got[0], tc.want)
		}
	}
}

func TestRuleTagger_Suffixes(t *testing.T) {
	rt := NewRuleTagger()

	cases := []struct {
		word string
		want Tag
	}{
		{"happiness", Noun},
		{"creation", Noun},
		{"movement", Noun},
		{"beautiful", Adjective},
		{"famous", Adjective},
		{"running", Verb},
		{"organize", Verb},
		{"jumped", Verb},
		{"quickly", Other},
		{"cat", Noun},  // open-class default
		{"dog,", Noun}, // surrounding punctuation is trimmed
	}
	for _, tc := range cases {
		got := rt.Tag([]string{tc.word})
		if got[0] != tc.want {
			t.Errorf("Tag(%q) = %q; want %q", tc.word, got[0], tc.want)
		}
	}
}

func TestRuleTagger_OneTagPerWord(t *testing.T) {
	rt := NewRuleTagger()

	words := []string{"the", "quick", "fox", "jumped", ""}
	tags := rt.Tag(words)
	if len(tags) != len(words) {
		t.Fatalf("got %d tags for %d words", len(tags), len(words))
	}
	if tags[len(tags)-1] != Other {
		t.Errorf("empty word tagged %q; want %q", tags[len(tags)-1], Other)
	}
}
