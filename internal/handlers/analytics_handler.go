package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alshop/internal/services"
)

// AnalyticsHandler handles HTTP requests for the admin dashboard rollups.
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// RegisterAdminRoutes registers the analytics routes.
func (h *AnalyticsHandler) RegisterAdminRoutes(router fiber.Router) {
	stats := router.Group("/stats")
	stats.Get("/dashboard", h.HandleDashboard)
	stats.Get("/revenue", h.HandleRevenue)
	stats.Get("/orders", h.HandleOrderVolume)
}

// HandleDashboard returns the point-in-time headline counters.
func (h *AnalyticsHandler) HandleDashboard(c *fiber.Ctx) error {
	stats, err := h.service.DashboardSnapshot()
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Dashboard stats retrieved", stats)
}

// HandleRevenue returns the bucketed revenue series for ?type=day|week|
// month|year. Missing type defaults to year.
func (h *AnalyticsHandler) HandleRevenue(c *fiber.Ctx) error {
	points, err := h.service.RevenueByPeriod(services.Period(c.Query("type")))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Revenue stats retrieved", points)
}

// HandleOrderVolume returns the bucketed order-count series with the same
// windowing as HandleRevenue.
func (h *AnalyticsHandler) HandleOrderVolume(c *fiber.Ctx) error {
	points, err := h.service.OrderVolumeByPeriod(services.Period(c.Query("type")))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Order stats retrieved", points)
}
