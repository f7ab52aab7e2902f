package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"craftlab/careers/internal/matcher"
	"craftlab/careers/internal/models"
	"craftlab/careers/internal/repositories"
)

const (
	insightTemperature   = 0.4
	insightContextChunks = 3
)

type InsightService interface {
	Explain(ctx context.Context, profileID, opportunityID uuid.UUID) (*models.InsightResponse, error)
}

type insightService struct {
	profileRepo     repositories.ProfileRepository
	opportunityRepo repositories.OpportunityRepository
	geminiService   GeminiService
	qdrantService   QdrantService
	promptBuilder   *PromptBuilder
	maxRetries      int
	logger          *zap.Logger
}

func NewInsightService(
	profileRepo repositories.ProfileRepository,
	opportunityRepo repositories.OpportunityRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	maxRetries int,
	logger *zap.Logger,
) InsightService {
	return &insightService{
		profileRepo:     profileRepo,
		opportunityRepo: opportunityRepo,
		geminiService:   geminiService,
		qdrantService:   qdrantService,
		promptBuilder:   NewPromptBuilder(),
		maxRetries:      maxRetries,
		logger:          logger.Named("insight"),
	}
}

type insightPayload struct {
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
}

// Explain scores the pair deterministically, then asks the model to put the
// result into words.
func (s *insightService) Explain(ctx context.Context, profileID, opportunityID uuid.UUID) (*models.InsightResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	opp, err := s.opportunityRepo.FindByID(ctx, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load opportunity: %w", err)
	}

	result := matcher.Score(profile.Candidate(), opp.Matchable())

	ragContext, err := s.retrieveContext(ctx, opp)
	if err != nil {
		s.logger.Warn("failed to retrieve organization context", zap.String("opportunity_id", opportunityID.String()), zap.Error(err))
		ragContext = FormatRAGContext(nil)
	}

	prompt := s.promptBuilder.BuildMatchInsightPrompt(profile, opp, result, ragContext)
	s.logger.Debug("insight prompt built", zap.Int("chars", len(prompt)))

	response, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, insightTemperature, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate insight: %w", err)
	}

	var payload insightPayload
	if err := json.Unmarshal([]byte(extractJSON(response)), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse insight response: %w", err)
	}

	return &models.InsightResponse{
		Match:     result,
		Summary:   strings.TrimSpace(payload.Summary),
		Strengths: nonNil(payload.Strengths),
		Gaps:      nonNil(payload.Gaps),
	}, nil
}

func (s *insightService) retrieveContext(ctx context.Context, opp *models.Opportunity) (string, error) {
	embedding, err := s.geminiService.GenerateEmbedding(ctx, opp.Organization+" "+opp.Title)
	if err != nil {
		return "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := s.qdrantService.SearchSimilar(ctx, embedding, DocTypeBrochure, insightContextChunks)
	if err != nil {
		return "", err
	}

	return FormatRAGContext(results), nil
}

// extractJSON pulls the JSON object out of a response that may be wrapped
// in markdown fences or prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return text
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
