package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"craftlab/careers/internal/models"
	"craftlab/careers/internal/repositories"
	"craftlab/careers/internal/services"
)

type ApplicationHandler struct {
	applicationRepo repositories.ApplicationRepository
	opportunityRepo repositories.OpportunityRepository
	matchService    services.MatchService
	logger          *zap.Logger
}

func NewApplicationHandler(
	applicationRepo repositories.ApplicationRepository,
	opportunityRepo repositories.OpportunityRepository,
	matchService services.MatchService,
	logger *zap.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		applicationRepo: applicationRepo,
		opportunityRepo: opportunityRepo,
		matchService:    matchService,
		logger:          logger.Named("applications"),
	}
}

// HandleCreate handles POST /applications. The match score at the time of
// applying is stored with the application. Closed opportunities answer 409.
func (h *ApplicationHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid profile_id format")
	}

	opportunityID, err := uuid.Parse(req.OpportunityID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid opportunity_id format")
	}

	opp, err := h.opportunityRepo.FindByID(c.UserContext(), opportunityID)
	if err != nil {
		return repositoryError(c, h.logger, err, "Opportunity not found", "Failed to create application")
	}
	if opp.Status == models.OpportunityClosed {
		return errorJSON(c, fiber.StatusConflict, "Opportunity is closed")
	}

	match, err := h.matchService.ScoreOne(c.UserContext(), profileID, opportunityID)
	if err != nil {
		return repositoryError(c, h.logger, err, "Profile or opportunity not found", "Failed to create application")
	}

	now := time.Now()
	app := &models.Application{
		ID:            uuid.New(),
		ProfileID:     profileID,
		OpportunityID: opportunityID,
		Status:        models.ApplicationPending,
		CoverLetter:   req.CoverLetter,
		MatchScore:    match.MatchScore,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.applicationRepo.Create(c.UserContext(), app); err != nil {
		return repositoryError(c, h.logger, err, "Application not found", "Failed to create application")
	}

	h.logger.Info("application submitted",
		zap.String("application_id", app.ID.String()),
		zap.Int("match_score", app.MatchScore),
	)

	return c.Status(fiber.StatusCreated).JSON(app)
}

// HandleListByProfile handles GET /profiles/:id/applications
func (h *ApplicationHandler) HandleListByProfile(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid profile ID format")
	}

	apps, err := h.applicationRepo.FindByProfile(c.UserContext(), profileID)
	if err != nil {
		return repositoryError(c, h.logger, err, "Profile not found", "Failed to list applications")
	}
	if apps == nil {
		apps = []models.Application{}
	}

	return c.JSON(apps)
}

// HandleUpdateStatus handles PATCH /applications/:id
func (h *ApplicationHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid application ID format")
	}

	var req models.ApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	status := models.ApplicationStatus(req.Status)
	if !status.Valid() {
		return errorJSON(c, fiber.StatusBadRequest, "status must be one of pending, reviewed, accepted, rejected")
	}

	if err := h.applicationRepo.UpdateStatus(c.UserContext(), id, status); err != nil {
		return repositoryError(c, h.logger, err, "Application not found", "Failed to update application")
	}

	app, err := h.applicationRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return repositoryError(c, h.logger, err, "Application not found", "Failed to load application")
	}

	return c.JSON(app)
}
