package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"craftlab/careers/internal/config"
	"craftlab/careers/internal/matcher"
	"craftlab/careers/internal/models"
	"craftlab/careers/internal/repositories"
	"craftlab/careers/internal/services"
)

type MatchHandler struct {
	matchService   services.MatchService
	insightService services.InsightService
	limits         config.MatchConfig
	logger         *zap.Logger
}

// NewMatchHandler wires the match endpoints. insightService may be nil, in
// which case the insight endpoint answers 503.
func NewMatchHandler(
	matchService services.MatchService,
	insightService services.InsightService,
	limits config.MatchConfig,
	logger *zap.Logger,
) *MatchHandler {
	return &MatchHandler{
		matchService:   matchService,
		insightService: insightService,
		limits:         limits,
		logger:         logger.Named("matches"),
	}
}

// HandleMatches handles GET /profiles/:id/matches?limit=&type=&work_type=
func (h *MatchHandler) HandleMatches(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid profile ID format")
	}

	filter := repositories.OpportunityFilter{
		Type:     c.Query("type"),
		WorkType: c.Query("work_type"),
		Industry: c.Query("industry"),
	}

	results, err := h.matchService.RankForProfile(c.UserContext(), profileID, filter)
	if err != nil {
		return repositoryError(c, h.logger, err, "Profile not found", "Failed to compute matches")
	}

	total := len(results)
	if limit := h.limit(c); len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []matcher.MatchResult{}
	}

	return c.JSON(models.MatchesResponse{
		ProfileID: profileID.String(),
		Total:     total,
		Matches:   results,
	})
}

// HandleScore handles GET /profiles/:id/matches/:opportunityId
func (h *MatchHandler) HandleScore(c *fiber.Ctx) error {
	profileID, opportunityID, msg := pairParams(c)
	if msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	result, err := h.matchService.ScoreOne(c.UserContext(), profileID, opportunityID)
	if err != nil {
		return repositoryError(c, h.logger, err, "Profile or opportunity not found", "Failed to compute match")
	}

	return c.JSON(result)
}

// HandleInsight handles POST /profiles/:id/matches/:opportunityId/insight
func (h *MatchHandler) HandleInsight(c *fiber.Ctx) error {
	if h.insightService == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "Match insight is not configured")
	}

	profileID, opportunityID, msg := pairParams(c)
	if msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	insight, err := h.insightService.Explain(c.UserContext(), profileID, opportunityID)
	if err != nil {
		return repositoryError(c, h.logger, err, "Profile or opportunity not found", "Failed to generate match insight")
	}

	return c.JSON(insight)
}

// limit clamps the requested page size into [1, MaxLimit].
func (h *MatchHandler) limit(c *fiber.Ctx) int {
	limit := c.QueryInt("limit", h.limits.DefaultLimit)
	if limit <= 0 {
		limit = h.limits.DefaultLimit
	}
	if h.limits.MaxLimit > 0 && limit > h.limits.MaxLimit {
		limit = h.limits.MaxLimit
	}
	return limit
}

func pairParams(c *fiber.Ctx) (uuid.UUID, uuid.UUID, string) {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, "Invalid profile ID format"
	}

	opportunityID, err := uuid.Parse(c.Params("opportunityId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, "Invalid opportunity ID format"
	}

	return profileID, opportunityID, ""
}
