package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/dto"
	"github.com/spec-kit/lead-service/internal/service"
)

// DashboardHandler serves the aggregate pipeline view.
type DashboardHandler struct {
	service *service.LeadService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(leadService *service.LeadService) *DashboardHandler {
	return &DashboardHandler{service: leadService}
}

// Stats GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, recent, err := h.service.DashboardStats(c.Context())
	if err != nil {
		return err
	}

	recentResp := make([]dto.LeadResponse, 0, len(recent))
	for i := range recent {
		recentResp = append(recentResp, dto.FromLead(&recent[i]))
	}
	return c.JSON(fiber.Map{"data": dto.DashboardStatsResponse{
		Total:          stats.Total,
		NewCount:       stats.NewCount,
		ContactedCount: stats.ContactedCount,
		ConvertedCount: stats.ConvertedCount,
		ConversionRate: stats.ConversionRate,
		RecentLeads:    recentResp,
	}})
}
