package services

import (
	"strings"
	"unicode/utf8"
)

// ChunkText groups paragraphs into chunks of at most maxRunes runes. A
// paragraph that does not fit on its own is split on sentence boundaries, and
// a sentence longer than maxRunes is cut hard.
func ChunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = 1000
	}

	var (
		chunks  []string
		current strings.Builder
		size    int
	)

	flush := func() {
		if size > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
	}

	add := func(piece, sep string) {
		n := utf8.RuneCountInString(piece)
		if size > 0 && size+len(sep)+n > maxRunes {
			flush()
		}
		if size > 0 {
			current.WriteString(sep)
			size += len(sep)
		}
		current.WriteString(piece)
		size += n
	}

	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxRunes {
			add(para, "\n\n")
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			for _, piece := range splitRunes(sentence, maxRunes) {
				add(piece, " ")
			}
		}
	}
	flush()

	return chunks
}

// splitIntoSentences splits after '.', '!' or '?' and keeps the terminator.
func splitIntoSentences(text string) []string {
	var (
		sentences []string
		start     int
	)
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func splitRunes(text string, n int) []string {
	runes := []rune(text)
	if len(runes) <= n {
		return []string{text}
	}

	var parts []string
	for len(runes) > n {
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
