package services

import (
	_ "embed"
	"log"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:embed data/stopwords_en.txt
var stopWordsRaw string

// Stop words, populated in init and read-only after.
var stopWords map[string]struct{}

const minKeywordLength = 3

var (
	// wordTokenRe matches word-like runs with an optional apostrophe suffix ("company's", "don't").
	wordTokenRe = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+(?:['’][\p{L}]+)?`)
	// fallbackTokenRe keeps alphabetic runs verbatim when no lemmatizer is loaded.
	fallbackTokenRe = regexp.MustCompile(`\p{L}{3,}`)
)

func init() {
	fields := strings.Fields(stopWordsRaw)
	stopWords = make(map[string]struct{}, len(fields))
	for _, w := range fields {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether the lowercased word is in the English stop-word list.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// KeywordSet is a deduplicated set of normalized keywords.
type KeywordSet map[string]struct{}

func NewKeywordSet(words ...string) KeywordSet {
	set := make(KeywordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func (s KeywordSet) Has(word string) bool {
	_, ok := s[word]
	return ok
}

func (s KeywordSet) Len() int {
	return len(s)
}

// Intersect returns the keywords present in both sets.
func (s KeywordSet) Intersect(other KeywordSet) KeywordSet {
	out := make(KeywordSet)
	for w := range s {
		if other.Has(w) {
			out[w] = struct{}{}
		}
	}
	return out
}

// Difference returns the keywords of s absent from other.
func (s KeywordSet) Difference(other KeywordSet) KeywordSet {
	out := make(KeywordSet)
	for w := range s {
		if !other.Has(w) {
			out[w] = struct{}{}
		}
	}
	return out
}

// Sorted returns the keywords in alphabetical order.
func (s KeywordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

type KeywordExtractor interface {
	ExtractKeywords(text string) KeywordSet
	UsesFallback() bool
}

type keywordExtractor struct {
	lemmatizer Lemmatizer
}

// NewKeywordExtractor builds an extractor around a loaded lemmatizer. A nil
// lemmatizer switches the extractor to the regex fallback.
func NewKeywordExtractor(lemmatizer Lemmatizer) KeywordExtractor {
	if lemmatizer == nil {
		log.Println("⚠️  No lemmatizer available, keyword extraction degraded to regex fallback")
	}
	return &keywordExtractor{lemmatizer: lemmatizer}
}

// UsesFallback implements KeywordExtractor.
func (k *keywordExtractor) UsesFallback() bool {
	return k.lemmatizer == nil
}

// ExtractKeywords implements KeywordExtractor.
func (k *keywordExtractor) ExtractKeywords(text string) KeywordSet {
	if strings.TrimSpace(text) == "" {
		return make(KeywordSet)
	}
	if k.lemmatizer == nil {
		return extractFallbackKeywords(text)
	}

	keywords := make(KeywordSet)
	for _, token := range wordTokenRe.FindAllString(text, -1) {
		token = strings.ToLower(trimPossessive(token))
		if !isKeywordCandidate(token) {
			continue
		}

		lemma := strings.ToLower(k.lemmatizer.Lemma(token))
		if !isKeywordCandidate(lemma) {
			continue
		}
		keywords[lemma] = struct{}{}
	}
	return keywords
}

func extractFallbackKeywords(text string) KeywordSet {
	keywords := make(KeywordSet)
	for _, token := range fallbackTokenRe.FindAllString(strings.ToLower(text), -1) {
		if IsStopWord(token) {
			continue
		}
		keywords[token] = struct{}{}
	}
	return keywords
}

func trimPossessive(token string) string {
	for _, suffix := range []string{"'s", "’s", "'S", "’S"} {
		if strings.HasSuffix(token, suffix) {
			return strings.TrimSuffix(token, suffix)
		}
	}
	return token
}

// isKeywordCandidate reports whether a lowercased word is alphabetic, long
// enough, and not a stop word.
func isKeywordCandidate(word string) bool {
	if utf8.RuneCountInString(word) < minKeywordLength {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			return false
		}
	}
	return !IsStopWord(word)
}
