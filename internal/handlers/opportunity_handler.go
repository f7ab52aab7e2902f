package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"craftlab/careers/internal/config"
	"craftlab/careers/internal/matcher"
	"craftlab/careers/internal/models"
	"craftlab/careers/internal/repositories"
	"craftlab/careers/internal/services"
)

const (
	defaultListLimit   = 50
	defaultSearchLimit = 10
)

type OpportunityHandler struct {
	opportunityRepo repositories.OpportunityRepository
	worker          services.Worker
	searchService   services.SearchService
	maxSearchLimit  int
	logger          *zap.Logger
}

// NewOpportunityHandler wires the opportunity endpoints. worker and
// searchService may be nil when semantic search is not configured.
func NewOpportunityHandler(
	opportunityRepo repositories.OpportunityRepository,
	worker services.Worker,
	searchService services.SearchService,
	limits config.MatchConfig,
	logger *zap.Logger,
) *OpportunityHandler {
	return &OpportunityHandler{
		opportunityRepo: opportunityRepo,
		worker:          worker,
		searchService:   searchService,
		maxSearchLimit:  limits.MaxLimit,
		logger:          logger.Named("opportunities"),
	}
}

// HandleCreate handles POST /opportunities
func (h *OpportunityHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.OpportunityRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Organization = strings.TrimSpace(req.Organization)

	if req.Title == "" {
		return errorJSON(c, fiber.StatusBadRequest, "title is required")
	}
	if req.Organization == "" {
		return errorJSON(c, fiber.StatusBadRequest, "organization is required")
	}
	if !validOpportunityType(req.Type) {
		return errorJSON(c, fiber.StatusBadRequest, "type must be one of internship, attachment, apprenticeship, volunteer, full-time")
	}
	if !validWorkType(req.WorkType) {
		return errorJSON(c, fiber.StatusBadRequest, "work_type must be one of remote, onsite, hybrid")
	}

	now := time.Now()
	opp := &models.Opportunity{
		ID:             uuid.New(),
		Title:          req.Title,
		Organization:   req.Organization,
		Description:    req.Description,
		Type:           req.Type,
		Location:       strings.TrimSpace(req.Location),
		WorkType:       req.WorkType,
		Industry:       strings.TrimSpace(req.Industry),
		RequiredSkills: models.StringList(req.RequiredSkills),
		Status:         models.OpportunityOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if opp.RequiredSkills == nil {
		opp.RequiredSkills = models.StringList{}
	}

	if err := h.opportunityRepo.Create(c.UserContext(), opp); err != nil {
		return repositoryError(c, h.logger, err, "Opportunity not found", "Failed to create opportunity")
	}

	if h.worker != nil {
		h.worker.EnqueueJob(opp.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(opp)
}

// HandleList handles GET /opportunities?type=&work_type=&industry=&limit=
func (h *OpportunityHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.OpportunityFilter{
		Type:     c.Query("type"),
		WorkType: c.Query("work_type"),
		Industry: c.Query("industry"),
		Limit:    c.QueryInt("limit", defaultListLimit),
	}

	opps, err := h.opportunityRepo.FindOpen(c.UserContext(), filter)
	if err != nil {
		return repositoryError(c, h.logger, err, "Opportunity not found", "Failed to list opportunities")
	}
	if opps == nil {
		opps = []models.Opportunity{}
	}

	return c.JSON(opps)
}

// HandleGet handles GET /opportunities/:id
func (h *OpportunityHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid opportunity ID format")
	}

	opp, err := h.opportunityRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return repositoryError(c, h.logger, err, "Opportunity not found", "Failed to load opportunity")
	}

	return c.JSON(opp)
}

// HandleUpdateStatus handles PATCH /opportunities/:id to open or close a
// listing. The search index is refreshed in the background.
func (h *OpportunityHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid opportunity ID format")
	}

	var req models.OpportunityStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	status := models.OpportunityStatus(req.Status)
	if status != models.OpportunityOpen && status != models.OpportunityClosed {
		return errorJSON(c, fiber.StatusBadRequest, "status must be open or closed")
	}

	if err := h.opportunityRepo.UpdateStatus(c.UserContext(), id, status); err != nil {
		return repositoryError(c, h.logger, err, "Opportunity not found", "Failed to update opportunity")
	}

	if h.worker != nil {
		h.worker.EnqueueJob(id)
	}

	return c.JSON(fiber.Map{
		"id":     id.String(),
		"status": status,
	})
}

// HandleSearch handles GET /opportunities/search?q=&profile_id=&limit=
func (h *OpportunityHandler) HandleSearch(c *fiber.Ctx) error {
	if h.searchService == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "Semantic search is not configured")
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return errorJSON(c, fiber.StatusBadRequest, "q is required")
	}

	var profileID *uuid.UUID
	if raw := c.Query("profile_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid profile ID format")
		}
		profileID = &id
	}

	limit := c.QueryInt("limit", defaultSearchLimit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if h.maxSearchLimit > 0 && limit > h.maxSearchLimit {
		limit = h.maxSearchLimit
	}

	results, err := h.searchService.Search(c.UserContext(), query, profileID, limit)
	if err != nil {
		return repositoryError(c, h.logger, err, "Profile not found", "Search failed")
	}
	if results == nil {
		results = []matcher.MatchResult{}
	}

	return c.JSON(models.SearchResponse{
		Query:   query,
		Results: results,
	})
}
