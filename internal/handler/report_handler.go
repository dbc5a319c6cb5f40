package handler

import (
	"go-uniform-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetDashboardStats returns the landing page counters
// GET /api/v1/reports/dashboard
func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute dashboard stats"})
	}
	return c.JSON(stats)
}

// GetSalesReport returns lifetime sales and purchase totals
// GET /api/v1/reports/sales
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	report, err := h.service.GetSalesReport()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute sales report"})
	}
	return c.JSON(report)
}

// GetSalesMovement returns per-day sales totals for the last N days
// GET /api/v1/reports/sales-movement?days=7
func (h *ReportHandler) GetSalesMovement(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 || days > 90 {
		return c.Status(400).JSON(fiber.Map{"error": "days must be between 1 and 90"})
	}

	movement, err := h.service.GetSalesMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute sales movement"})
	}
	return c.JSON(movement)
}
