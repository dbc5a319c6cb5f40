package handler

import (
	"errors"

	"go-uniform-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProcurementHandler struct {
	service service.ProcurementService
}

func NewProcurementHandler(s service.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{service: s}
}

// GetProcurements returns the purchase ledger, newest first
// GET /api/v1/procurements
func (h *ProcurementHandler) GetProcurements(c *fiber.Ctx) error {
	records, err := h.service.GetAllProcurements()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(records)
}

// GetProcurement returns a single procurement record
// GET /api/v1/procurements/:id
func (h *ProcurementHandler) GetProcurement(c *fiber.Ctx) error {
	recordID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid procurement ID"})
	}

	record, err := h.service.GetProcurementByID(recordID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Procurement record not found"})
	}
	return c.JSON(record)
}

// RecordProcurement books a stock-in and its ledger entry atomically
// POST /api/v1/procurements
func (h *ProcurementHandler) RecordProcurement(c *fiber.Ctx) error {
	var req service.RecordProcurementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	record, err := h.service.RecordProcurement(&req, getUserID(c), getUserName(c))
	if err != nil {
		if errors.Is(err, service.ErrUniformNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Procurement recorded", "data": record})
}

// DeleteProcurement removes a ledger record; stock is not reversed
// DELETE /api/v1/procurements/:id
func (h *ProcurementHandler) DeleteProcurement(c *fiber.Ctx) error {
	recordID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid procurement ID"})
	}

	if err := h.service.DeleteProcurement(recordID, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrProcurementNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Procurement record deleted"})
}
