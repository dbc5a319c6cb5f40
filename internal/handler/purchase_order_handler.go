package handler

import (
	"errors"

	"go-uniform-pos/internal/model"
	"go-uniform-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseOrderHandler struct {
	service service.PurchaseOrderService
}

func NewPurchaseOrderHandler(s service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: s}
}

// GetPurchaseOrders lists purchase orders, optionally filtered by status
// GET /api/v1/purchase-orders?status=PENDING
func (h *PurchaseOrderHandler) GetPurchaseOrders(c *fiber.Ctx) error {
	status := model.PurchaseOrderStatus(c.Query("status"))

	orders, err := h.service.GetAll(status)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

// GetPurchaseOrder returns a single purchase order
// GET /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) GetPurchaseOrder(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	order, err := h.service.GetByID(orderID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Purchase order not found"})
	}
	return c.JSON(order)
}

// CreatePurchaseOrder opens a new PENDING order
// POST /api/v1/purchase-orders
func (h *PurchaseOrderHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	var req service.CreatePurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.Create(&req, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Purchase order created", "data": order})
}

// AdvanceStatus moves an order one step forward (PENDING -> ORDERED -> RECEIVED)
// PATCH /api/v1/purchase-orders/:id/status
func (h *PurchaseOrderHandler) AdvanceStatus(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	order, err := h.service.AdvanceStatus(orderID, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPurchaseOrderNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, model.ErrPurchaseOrderReceived):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Purchase order status advanced", "data": order})
}

// DeletePurchaseOrder removes an order from the tracker
// DELETE /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) DeletePurchaseOrder(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	if err := h.service.Delete(orderID, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrPurchaseOrderNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Purchase order deleted"})
}
