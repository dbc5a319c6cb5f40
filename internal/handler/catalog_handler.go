package handler

import (
	"errors"

	"go-uniform-pos/internal/model"
	"go-uniform-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// Helper to pull user info from JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// GetUniforms returns the full catalog
// GET /api/v1/uniforms
func (h *CatalogHandler) GetUniforms(c *fiber.Ctx) error {
	uniforms, err := h.service.GetAllUniforms()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(uniforms)
}

// CreateUniform adds a catalog item
// POST /api/v1/uniforms
func (h *CatalogHandler) CreateUniform(c *fiber.Ctx) error {
	var uniform model.Uniform
	if err := c.BodyParser(&uniform); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateUniform(&uniform, getUserID(c), getUserName(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Uniform created", "data": uniform})
}

// UpdateUniform replaces a catalog item
// PUT /api/v1/uniforms/:id
func (h *CatalogHandler) UpdateUniform(c *fiber.Ctx) error {
	uniformID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid uniform ID"})
	}

	var uniform model.Uniform
	if err := c.BodyParser(&uniform); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateUniform(uniformID, &uniform, getUserID(c), getUserName(c))
	if err != nil {
		if errors.Is(err, service.ErrUniformNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Uniform updated", "data": updated})
}

// AdjustStock applies a signed stock delta
// PATCH /api/v1/uniforms/:id/stock
func (h *CatalogHandler) AdjustStock(c *fiber.Ctx) error {
	uniformID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid uniform ID"})
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	adjusted, err := h.service.AdjustStock(uniformID, req.Delta, getUserID(c), getUserName(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUniformNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrStockConflict):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Stock adjusted", "data": adjusted})
}

// DeleteUniform removes a catalog item; historical ledger rows keep their
// snapshots
// DELETE /api/v1/uniforms/:id
func (h *CatalogHandler) DeleteUniform(c *fiber.Ctx) error {
	uniformID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid uniform ID"})
	}

	if err := h.service.DeleteUniform(uniformID, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrUniformNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Uniform deleted"})
}
