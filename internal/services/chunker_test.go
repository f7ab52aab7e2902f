package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextChunker_ShortTextIsOneChunk(t *testing.T) {
	c := NewTextChunker(100, 10)
	chunks := c.Chunk("First paragraph.\n\nSecond paragraph.")

	assert.Equal(t, []string{"First paragraph.\n\nSecond paragraph."}, chunks)
}

func TestTextChunker_SplitsWithOverlap(t *testing.T) {
	c := NewTextChunker(30, 5)
	text := "aaaaaaaaaaaaaaaaaaaa\n\nbbbbbbbbbbbbbbbbbbbb\n\ncccccccccc"

	chunks := c.Chunk(text)
	require.Len(t, chunks, 3)
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaa", chunks[0])
	assert.Equal(t, "aaaaa\n\nbbbbbbbbbbbbbbbbbbbb", chunks[1])
	assert.Equal(t, "bbbbb\n\ncccccccccc", chunks[2])
}

func TestTextChunker_LongParagraphSplitBySentence(t *testing.T) {
	c := NewTextChunker(40, 0)
	para := "Craftlab trains students. Placements run for three months. Stipends are paid monthly. Apply before June."

	chunks := c.Chunk(para)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 40, chunk)
	}
	assert.Contains(t, strings.Join(chunks, " "), "Stipends are paid monthly")
}

func TestTextChunker_Defaults(t *testing.T) {
	c := NewTextChunker(0, -3)
	assert.Equal(t, defaultChunkSize, c.MaxChunkSize)
	assert.Zero(t, c.Overlap)

	c = NewTextChunker(100, 200)
	assert.Equal(t, 25, c.Overlap)

	assert.Empty(t, c.Chunk("  \n\n  "))
}

func TestFirstRunes_CutsOnRuneBoundary(t *testing.T) {
	text := "Stagiaire à São Paulo 日本語"

	got := firstRunes(text, 12)
	assert.Equal(t, "Stagiaire à ", got)
	assert.True(t, utf8.ValidString(got))

	got = firstRunes("日本語のインターン", 3)
	assert.Equal(t, "日本語", got)
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, text, firstRunes(text, 1000))
	assert.Empty(t, firstRunes(text, 0))
}

func TestFirstRunes_EmbeddingInputStaysValidUTF8(t *testing.T) {
	// every rune is three bytes, so a byte cut at maxEmbedChars lands mid-rune
	text := strings.Repeat("語", maxEmbedChars+1)

	got := firstRunes(text, maxEmbedChars)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, maxEmbedChars, utf8.RuneCountInString(got))
	assert.False(t, utf8.ValidString(text[:maxEmbedChars+1]))
}
