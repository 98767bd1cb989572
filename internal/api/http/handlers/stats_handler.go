package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-planner/internal/observability"
	"github.com/spec-kit/shift-planner/internal/service"
)

// StatsHandler exposes allocation counters and the recent activity feed.
type StatsHandler struct {
	metrics       *observability.Metrics
	notifications *service.NotificationService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(metrics *observability.Metrics, notifications *service.NotificationService) *StatsHandler {
	return &StatsHandler{metrics: metrics, notifications: notifications}
}

// Generation handles GET /stats/generation.
func (h *StatsHandler) Generation(c *fiber.Ctx) error {
	runs, filled, unfilled := h.metrics.GenerationStats()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"runs":           runs,
		"slots_filled":   filled,
		"slots_unfilled": unfilled,
	}})
}

// Activity handles GET /stats/activity?limit=N.
func (h *StatsHandler) Activity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	entries, err := h.notifications.RecentActivity(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entries})
}
