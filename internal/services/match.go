package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"craftlab/careers/internal/matcher"
	"craftlab/careers/internal/metrics"
	"craftlab/careers/internal/models"
	"craftlab/careers/internal/repositories"
)

type MatchService interface {
	RankForProfile(ctx context.Context, profileID uuid.UUID, filter repositories.OpportunityFilter) ([]matcher.MatchResult, error)
	ScoreOne(ctx context.Context, profileID, opportunityID uuid.UUID) (*matcher.MatchResult, error)
	Rank(profile *models.Profile, opps []models.Opportunity) []matcher.MatchResult
}

type matchService struct {
	profileRepo     repositories.ProfileRepository
	opportunityRepo repositories.OpportunityRepository
	metrics         *metrics.Collector
	logger          *zap.Logger
}

func NewMatchService(
	profileRepo repositories.ProfileRepository,
	opportunityRepo repositories.OpportunityRepository,
	collector *metrics.Collector,
	logger *zap.Logger,
) MatchService {
	return &matchService{
		profileRepo:     profileRepo,
		opportunityRepo: opportunityRepo,
		metrics:         collector,
		logger:          logger.Named("match"),
	}
}

// RankForProfile ranks every open opportunity matching filter for the profile.
func (s *matchService) RankForProfile(ctx context.Context, profileID uuid.UUID, filter repositories.OpportunityFilter) (results []matcher.MatchResult, err error) {
	defer func() { s.metrics.ObserveRequest("rank", err) }()

	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	opps, err := s.opportunityRepo.FindOpen(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load opportunities: %w", err)
	}

	results = s.Rank(profile, opps)

	s.logger.Debug("ranked opportunities",
		zap.String("profile_id", profileID.String()),
		zap.Int("count", len(results)),
	)
	return results, nil
}

func (s *matchService) ScoreOne(ctx context.Context, profileID, opportunityID uuid.UUID) (result *matcher.MatchResult, err error) {
	defer func() { s.metrics.ObserveRequest("score", err) }()

	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	opp, err := s.opportunityRepo.FindByID(ctx, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load opportunity: %w", err)
	}

	scored := matcher.Score(profile.Candidate(), opp.Matchable())
	s.metrics.ObserveScore(scored.MatchScore)
	return &scored, nil
}

// Rank scores already loaded opportunities. It never fails.
func (s *matchService) Rank(profile *models.Profile, opps []models.Opportunity) []matcher.MatchResult {
	start := time.Now()

	candidates := make([]matcher.Opportunity, len(opps))
	for i := range opps {
		candidates[i] = opps[i].Matchable()
	}

	results := matcher.Rank(profile.Candidate(), candidates)

	scores := make([]int, len(results))
	for i, r := range results {
		scores[i] = r.MatchScore
	}
	s.metrics.ObserveRank(scores, time.Since(start))

	return results
}
