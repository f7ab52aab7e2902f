package services

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultChunkSize = 1000
	sentenceEnds     = ".!?"
)

// TextChunker splits long brochure text into overlapping pieces small
// enough to embed.
type TextChunker struct {
	MaxChunkSize int
	Overlap      int
}

func NewTextChunker(maxChunkSize, overlap int) *TextChunker {
	if maxChunkSize <= 0 {
		maxChunkSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}
	return &TextChunker{MaxChunkSize: maxChunkSize, Overlap: overlap}
}

// Chunk packs paragraphs into chunks of at most MaxChunkSize runes plus the
// overlap carried from the previous chunk. Paragraphs that are too long on
// their own are packed sentence by sentence.
func (c *TextChunker) Chunk(text string) []string {
	var (
		chunks  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() == 0 {
			return
		}
		prev := current.String()
		chunks = append(chunks, prev)
		current.Reset()
		current.WriteString(lastRunes(prev, c.Overlap))
	}

	add := func(piece, sep string) {
		if utf8.RuneCountInString(current.String())+utf8.RuneCountInString(piece)+len(sep) > c.MaxChunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(piece)
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= c.MaxChunkSize {
			add(para, "\n\n")
			continue
		}

		for _, sentence := range splitSentences(para) {
			add(sentence, " ")
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(sentenceEnds, r)
	})

	sentences := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// firstRunes keeps at most n runes from the start of text.
func firstRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}

	return string([]rune(text)[:n])
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
