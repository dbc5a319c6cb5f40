package handler

import (
	"go-uniform-pos/internal/model"
	"go-uniform-pos/internal/repository"
	"go-uniform-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type VendorHandler struct {
	vendorRepo repository.VendorRepository
}

func NewVendorHandler(vendorRepo repository.VendorRepository) *VendorHandler {
	return &VendorHandler{vendorRepo: vendorRepo}
}

// GetVendors returns all vendors, sorted by name
// GET /api/v1/vendors
func (h *VendorHandler) GetVendors(c *fiber.Ctx) error {
	vendors, err := h.vendorRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch vendors"})
	}
	return c.JSON(vendors)
}

// GetVendor returns a single vendor
// GET /api/v1/vendors/:id
func (h *VendorHandler) GetVendor(c *fiber.Ctx) error {
	vendorID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	vendor, err := h.vendorRepo.FindByID(vendorID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Vendor not found"})
	}
	return c.JSON(vendor)
}

// CreateVendor registers a vendor
// POST /api/v1/vendors
func (h *VendorHandler) CreateVendor(c *fiber.Ctx) error {
	var vendor model.Vendor
	if err := c.BodyParser(&vendor); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(vendor); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	vendor.CreatedBy = getUserID(c)
	if err := h.vendorRepo.Create(&vendor); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Vendor created", "data": vendor})
}

// UpdateVendor updates vendor details
// PUT /api/v1/vendors/:id
func (h *VendorHandler) UpdateVendor(c *fiber.Ctx) error {
	vendorID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	vendor, err := h.vendorRepo.FindByID(vendorID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Vendor not found"})
	}

	var req model.Vendor
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	vendor.Name = req.Name
	vendor.Contact = req.Contact
	vendor.Address = req.Address
	vendor.Type = req.Type
	vendor.UpdatedBy = getUserID(c)

	if err := h.vendorRepo.Update(vendor); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Vendor updated", "data": vendor})
}

// DeleteVendor removes a vendor; procurement records and purchase orders that
// reference it are left untouched
// DELETE /api/v1/vendors/:id
func (h *VendorHandler) DeleteVendor(c *fiber.Ctx) error {
	vendorID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	if _, err := h.vendorRepo.FindByID(vendorID); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Vendor not found"})
	}

	if err := h.vendorRepo.Delete(vendorID, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Vendor deleted"})
}
