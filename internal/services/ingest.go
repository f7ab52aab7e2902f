package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// BrochureIngester loads organization brochures into the vector store so
// match insight can quote them.
type BrochureIngester struct {
	parser  PDFParserService
	chunker *TextChunker
	gemini  GeminiService
	qdrant  QdrantService
	logger  *zap.Logger
}

func NewBrochureIngester(parser PDFParserService, chunker *TextChunker, gemini GeminiService, qdrant QdrantService, logger *zap.Logger) *BrochureIngester {
	return &BrochureIngester{
		parser:  parser,
		chunker: chunker,
		gemini:  gemini,
		qdrant:  qdrant,
		logger:  logger.Named("ingest"),
	}
}

// IngestFile extracts, chunks, embeds and stores one PDF. It returns the
// number of chunks stored; chunks that fail are logged and skipped, and an
// error is returned only when nothing could be stored.
func (b *BrochureIngester) IngestFile(ctx context.Context, path string) (int, error) {
	content, err := b.parser.ExtractText(path)
	if err != nil {
		return 0, fmt.Errorf("failed to extract text: %w", err)
	}

	chunks := b.chunker.Chunk(content.Text)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	log := b.logger.With(zap.String("file", path))
	log.Info("extracted brochure", zap.Int("pages", content.PageCount), zap.Int("chunks", len(chunks)))

	stored := 0
	var lastErr error
	for i, chunk := range chunks {
		embedding, err := b.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Warn("failed to embed chunk", zap.Int("chunk", i), zap.Error(err))
			lastErr = err
			continue
		}

		docID := fmt.Sprintf("%s_%s_chunk_%d", DocTypeBrochure, name, i)
		if err := b.qdrant.UpsertDocument(ctx, docID, DocTypeBrochure, chunk, embedding); err != nil {
			log.Warn("failed to store chunk", zap.Int("chunk", i), zap.Error(err))
			lastErr = err
			continue
		}
		stored++
	}

	if stored == 0 && lastErr != nil {
		return 0, fmt.Errorf("no chunks stored: %w", lastErr)
	}
	return stored, nil
}
