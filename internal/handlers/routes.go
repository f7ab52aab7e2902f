package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Profile     *ProfileHandler
	Opportunity *OpportunityHandler
	Match       *MatchHandler
	Application *ApplicationHandler
	Message     *MessageHandler
}

// Register mounts every API route on api, normally the /api/v1 group.
func (h *Handlers) Register(api fiber.Router) {
	api.Get("/health", HandleHealth)

	api.Post("/profiles", h.Profile.HandleCreate)
	api.Get("/profiles/:id", h.Profile.HandleGet)
	api.Put("/profiles/:id", h.Profile.HandleUpdate)

	api.Get("/profiles/:id/matches", h.Match.HandleMatches)
	api.Get("/profiles/:id/matches/:opportunityId", h.Match.HandleScore)
	api.Post("/profiles/:id/matches/:opportunityId/insight", h.Match.HandleInsight)
	api.Get("/profiles/:id/applications", h.Application.HandleListByProfile)

	// search must be registered ahead of /:id
	api.Get("/opportunities/search", h.Opportunity.HandleSearch)
	api.Post("/opportunities", h.Opportunity.HandleCreate)
	api.Get("/opportunities", h.Opportunity.HandleList)
	api.Get("/opportunities/:id", h.Opportunity.HandleGet)
	api.Patch("/opportunities/:id", h.Opportunity.HandleUpdateStatus)

	api.Post("/applications", h.Application.HandleCreate)
	api.Patch("/applications/:id", h.Application.HandleUpdateStatus)

	api.Post("/messages", h.Message.HandleSend)
	api.Get("/conversations/:id/messages", h.Message.HandleHistory)
	api.Get("/conversations/:id/stream", h.Message.HandleStream)
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}

// MetricsHandler serves the registry in the Prometheus text format.
func MetricsHandler(registry *prometheus.Registry) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
