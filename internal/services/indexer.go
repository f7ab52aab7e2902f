package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"craftlab/careers/internal/models"
	"craftlab/careers/internal/repositories"
)

type IndexerService interface {
	IndexOpportunity(ctx context.Context, opportunityID uuid.UUID) error
}

type indexerService struct {
	opportunityRepo repositories.OpportunityRepository
	geminiService   GeminiService
	qdrantService   QdrantService
	logger          *zap.Logger
}

func NewIndexerService(
	opportunityRepo repositories.OpportunityRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	logger *zap.Logger,
) IndexerService {
	return &indexerService{
		opportunityRepo: opportunityRepo,
		geminiService:   geminiService,
		qdrantService:   qdrantService,
		logger:          logger.Named("indexer"),
	}
}

// IndexOpportunity embeds an open opportunity into the vector store, or
// removes a closed one from it.
func (s *indexerService) IndexOpportunity(ctx context.Context, opportunityID uuid.UUID) error {
	opp, err := s.opportunityRepo.FindByID(ctx, opportunityID)
	if err != nil {
		return fmt.Errorf("failed to load opportunity: %w", err)
	}

	docID := opp.ID.String()

	if opp.Status == models.OpportunityClosed {
		if err := s.qdrantService.DeleteDocument(ctx, docID); err != nil {
			return fmt.Errorf("failed to remove closed opportunity: %w", err)
		}
		return s.opportunityRepo.MarkIndexed(ctx, opp.ID)
	}

	text := opp.IndexText()
	embedding, err := s.geminiService.GenerateEmbedding(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed opportunity: %w", err)
	}

	if err := s.qdrantService.UpsertDocument(ctx, docID, DocTypeOpportunity, text, embedding); err != nil {
		return fmt.Errorf("failed to store opportunity embedding: %w", err)
	}

	if err := s.opportunityRepo.MarkIndexed(ctx, opp.ID); err != nil {
		return err
	}

	s.logger.Info("opportunity indexed", zap.String("opportunity_id", docID), zap.Int("dims", len(embedding)))
	return nil
}
