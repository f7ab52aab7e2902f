package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"craftlab/careers/internal/config"
	"craftlab/careers/internal/logger"
	"craftlab/careers/internal/services"
)

// Loads organization brochures (PDF) into the vector store used by match
// insight. Usage: go run ./scripts/ingest_opportunities.go [dir]
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	defer log.Sync()

	dir := "./brochures"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini, log)
	if err != nil {
		log.Fatal("failed to initialize gemini", zap.Error(err))
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant, log)
	if err != nil {
		log.Fatal("failed to initialize qdrant", zap.Error(err))
	}
	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatal("failed to initialize collection", zap.Error(err))
	}

	ingester := services.NewBrochureIngester(
		services.NewPDFParserService(log),
		services.NewTextChunker(1000, 200),
		geminiService,
		qdrantService,
		log,
	)

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatal("failed to read brochure directory", zap.String("dir", dir), zap.Error(err))
	}

	var succeeded, failed, chunks int
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		stored, err := ingester.IngestFile(ctx, path)
		if err != nil {
			log.Error("failed to ingest brochure", zap.String("file", path), zap.Error(err))
			failed++
			continue
		}

		chunks += stored
		succeeded++
	}

	log.Info("ingestion finished",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
		zap.Int("chunks", chunks),
	)

	if failed > 0 {
		os.Exit(1)
	}
}
