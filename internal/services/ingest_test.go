package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParser struct {
	content *PDFContent
	err     error
}

func (p stubParser) ExtractText(path string) (*PDFContent, error) {
	if p.err != nil {
		return nil, p.err
	}
	c := *p.content
	c.FilePath = path
	return &c, nil
}

func TestBrochureIngester_IngestFile(t *testing.T) {
	text := strings.Repeat("a", 40) + "\n\n" + strings.Repeat("b", 40)
	qdrant := newFakeQdrant()
	gemini := &stubGemini{}

	ingester := NewBrochureIngester(stubParser{content: &PDFContent{Text: text, PageCount: 2}}, NewTextChunker(50, 0), gemini, qdrant, nopLogger)

	stored, err := ingester.IngestFile(context.Background(), "/tmp/brochures/craftlab-2026.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, stored)

	doc, ok := qdrant.doc("brochure_craftlab-2026_chunk_1")
	require.True(t, ok)
	assert.Equal(t, DocTypeBrochure, doc.DocType)
	assert.Equal(t, strings.Repeat("b", 40), doc.Text)
	assert.Len(t, gemini.embedded, 2)
}

func TestBrochureIngester_Failures(t *testing.T) {
	ingester := NewBrochureIngester(stubParser{err: errors.New("not a pdf")}, NewTextChunker(50, 0), &stubGemini{}, newFakeQdrant(), nopLogger)
	_, err := ingester.IngestFile(context.Background(), "x.pdf")
	assert.ErrorContains(t, err, "failed to extract text")

	ingester = NewBrochureIngester(stubParser{content: &PDFContent{Text: "hello"}}, NewTextChunker(50, 0), &stubGemini{embedErr: errors.New("quota")}, newFakeQdrant(), nopLogger)
	_, err = ingester.IngestFile(context.Background(), "x.pdf")
	assert.ErrorContains(t, err, "no chunks stored")
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Craftlab Careers\nPlacements open", CleanText("  Craftlab Careers  \n\n   \n Placements open \n"))
}

func TestPDFParser_MissingFile(t *testing.T) {
	_, err := NewPDFParserService(nopLogger).ExtractText("/does/not/exist.pdf")
	assert.ErrorContains(t, err, "cannot read")
}
