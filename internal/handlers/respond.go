package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"craftlab/careers/internal/matcher"
	"craftlab/careers/internal/repositories"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// repositoryError renders a data access failure. Unknown errors are logged
// and hidden behind fallback.
func repositoryError(c *fiber.Ctx, log *zap.Logger, err error, notFound, fallback string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, notFound)
	case errors.Is(err, repositories.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, "Resource already exists")
	}

	log.Error(fallback, zap.String("path", c.Path()), zap.Error(err))
	return errorJSON(c, fiber.StatusInternalServerError, fallback)
}

func validUserType(s string) bool {
	switch matcher.UserType(s) {
	case matcher.UserTypeAttachee, matcher.UserTypeIntern, matcher.UserTypeApprentice, matcher.UserTypeVolunteer:
		return true
	}
	return false
}

func validOpportunityType(s string) bool {
	switch matcher.OpportunityType(s) {
	case matcher.OpportunityInternship, matcher.OpportunityAttachment, matcher.OpportunityApprenticeship,
		matcher.OpportunityVolunteer, matcher.OpportunityFullTime:
		return true
	}
	return false
}

func validWorkType(s string) bool {
	switch matcher.WorkType(s) {
	case matcher.WorkTypeRemote, matcher.WorkTypeOnsite, matcher.WorkTypeHybrid:
		return true
	}
	return false
}
