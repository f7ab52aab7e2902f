package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"craftlab/careers/internal/models"
	"craftlab/careers/internal/repositories"
)

type ProfileHandler struct {
	profileRepo repositories.ProfileRepository
	logger      *zap.Logger
}

func NewProfileHandler(profileRepo repositories.ProfileRepository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileRepo: profileRepo,
		logger:      logger.Named("profiles"),
	}
}

// HandleCreate handles POST /profiles
func (h *ProfileHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if msg := validateProfile(&req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	now := time.Now()
	profile := &models.Profile{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyProfile(profile, &req)

	if err := h.profileRepo.Create(c.UserContext(), profile); err != nil {
		return repositoryError(c, h.logger, err, "Profile not found", "Failed to create profile")
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

// HandleGet handles GET /profiles/:id
func (h *ProfileHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid profile ID format")
	}

	profile, err := h.profileRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return repositoryError(c, h.logger, err, "Profile not found", "Failed to load profile")
	}

	return c.JSON(profile)
}

// HandleUpdate handles PUT /profiles/:id. The request replaces every
// editable field.
func (h *ProfileHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid profile ID format")
	}

	var req models.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if msg := validateProfile(&req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	profile, err := h.profileRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return repositoryError(c, h.logger, err, "Profile not found", "Failed to load profile")
	}

	applyProfile(profile, &req)
	profile.UpdatedAt = time.Now()

	if err := h.profileRepo.Update(c.UserContext(), profile); err != nil {
		return repositoryError(c, h.logger, err, "Profile not found", "Failed to update profile")
	}

	return c.JSON(profile)
}

func validateProfile(req *models.ProfileRequest) string {
	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		return "full_name is required"
	}
	if !validUserType(req.UserType) {
		return "user_type must be one of attachee, intern, apprentice, volunteer"
	}
	if req.PreferredWorkType != "" && !validWorkType(req.PreferredWorkType) {
		return "preferred_work_type must be one of remote, onsite, hybrid"
	}
	return ""
}

func applyProfile(p *models.Profile, req *models.ProfileRequest) {
	p.FullName = req.FullName
	p.Email = strings.TrimSpace(req.Email)
	p.UserType = req.UserType
	p.Bio = req.Bio
	p.Location = strings.TrimSpace(req.Location)
	p.Skills = models.SkillSet(req.Skills)
	if p.Skills == nil {
		p.Skills = models.SkillSet{}
	}
	p.PreferredWorkType = req.PreferredWorkType
	p.PreferredIndustries = models.StringList(req.PreferredIndustries)
}
