package services

import (
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

type mapLemmatizer map[string]string

func (m mapLemmatizer) Lemma(word string) string {
	if lemma, ok := m[word]; ok {
		return lemma
	}
	return word
}

func testLemmatizer() Lemmatizer {
	return mapLemmatizer{
		"running":   "run",
		"engineers": "engineer",
		"tests":     "test",
		"went":      "go",
		"systems":   "system",
		"computing": "compute",
	}
}

func TestExtractKeywords_Lemmatized(t *testing.T) {
	extractor := NewKeywordExtractor(testLemmatizer())

	got := extractor.ExtractKeywords("The engineers were Running 3 tests, node.js & C++ résumé's python3 went")

	assert.Equal(t, []string{"engineer", "node", "run", "résumé", "test"}, got.Sorted())
	assert.False(t, extractor.UsesFallback())
}

func TestExtractKeywords_Fallback(t *testing.T) {
	extractor := NewKeywordExtractor(nil)

	got := extractor.ExtractKeywords("The engineers were Running 3 tests with python3!")

	assert.True(t, extractor.UsesFallback())
	assert.Equal(t, []string{"engineers", "python", "running", "tests"}, got.Sorted())
}

func TestExtractKeywords_EmptyInput(t *testing.T) {
	for _, extractor := range []KeywordExtractor{NewKeywordExtractor(testLemmatizer()), NewKeywordExtractor(nil)} {
		assert.Empty(t, extractor.ExtractKeywords(""))
		assert.Empty(t, extractor.ExtractKeywords("   \n\t "))
		assert.Empty(t, extractor.ExtractKeywords("• - , . 42 ab"))
	}
}

func TestExtractKeywords_OnlyLowercaseAlphabetic(t *testing.T) {
	inputs := []string{
		"Senior GOLANG Engineer — 5+ years; Kubernetes/Docker, CI/CD, AWS (EC2, S3).",
		"• Led   migration of 12 services\n• Reduced latency by 40%",
		"Ünïcödé ÉLAN naïve café résumé 東京 データ",
		"don't won't company's team’s",
	}

	extractors := []KeywordExtractor{NewKeywordExtractor(testLemmatizer()), NewKeywordExtractor(nil)}
	for _, extractor := range extractors {
		for _, input := range inputs {
			for kw := range extractor.ExtractKeywords(input) {
				assert.GreaterOrEqual(t, utf8.RuneCountInString(kw), 3, kw)
				for _, r := range kw {
					assert.True(t, unicode.IsLetter(r) || unicode.Is(unicode.Mn, r), kw)
					assert.False(t, unicode.IsUpper(r), kw)
				}
				assert.False(t, IsStopWord(kw), kw)
			}
		}
	}
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	extractor := NewKeywordExtractor(testLemmatizer())
	text := "Designed and implemented distributed systems for cloud computing workloads."

	first := extractor.ExtractKeywords(text)
	second := extractor.ExtractKeywords(text)

	assert.Equal(t, first, second)
}

func TestExtractKeywords_LemmaFiltered(t *testing.T) {
	extractor := NewKeywordExtractor(mapLemmatizer{"teams": "the", "went": "go"})

	got := extractor.ExtractKeywords("teams went")

	assert.Empty(t, got)
}

func TestKeywordSet_Operations(t *testing.T) {
	a := NewKeywordSet("go", "python", "rust")
	b := NewKeywordSet("python", "java")

	assert.Equal(t, []string{"python"}, a.Intersect(b).Sorted())
	assert.Equal(t, []string{"go", "rust"}, a.Difference(b).Sorted())
	assert.True(t, a.Has("rust"))
	assert.False(t, a.Has("java"))
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []string{}, NewKeywordSet().Sorted())
}
