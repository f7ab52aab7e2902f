package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"craftlab/careers/internal/matcher"
	"craftlab/careers/internal/models"
	"craftlab/careers/internal/repositories"
)

type SearchService interface {
	Search(ctx context.Context, query string, profileID *uuid.UUID, limit int) ([]matcher.MatchResult, error)
}

type searchService struct {
	profileRepo     repositories.ProfileRepository
	opportunityRepo repositories.OpportunityRepository
	geminiService   GeminiService
	qdrantService   QdrantService
	matchService    MatchService
	logger          *zap.Logger
}

func NewSearchService(
	profileRepo repositories.ProfileRepository,
	opportunityRepo repositories.OpportunityRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	matchService MatchService,
	logger *zap.Logger,
) SearchService {
	return &searchService{
		profileRepo:     profileRepo,
		opportunityRepo: opportunityRepo,
		geminiService:   geminiService,
		qdrantService:   qdrantService,
		matchService:    matchService,
		logger:          logger.Named("search"),
	}
}

// Search finds opportunities semantically close to query. Without a
// profile the results keep similarity order and carry no match score;
// with one they are ranked by the scorer.
func (s *searchService) Search(ctx context.Context, query string, profileID *uuid.UUID, limit int) ([]matcher.MatchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	var profile *models.Profile
	if profileID != nil {
		p, err := s.profileRepo.FindByID(ctx, *profileID)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		profile = p
	}

	embedding, err := s.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := s.qdrantService.SearchSimilar(ctx, embedding, DocTypeOpportunity, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			s.logger.Warn("skipping search hit with invalid id", zap.String("doc_id", hit.ID))
			continue
		}
		ids = append(ids, id)
	}

	opps, err := s.opportunityRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	open := opps[:0]
	for _, o := range opps {
		if o.Status != models.OpportunityClosed {
			open = append(open, o)
		}
	}

	if profile != nil {
		return s.matchService.Rank(profile, open), nil
	}

	results := make([]matcher.MatchResult, len(open))
	for i := range open {
		results[i] = matcher.MatchResult{
			Opportunity:  open[i].Matchable(),
			MatchReasons: []string{},
		}
	}
	return results, nil
}
