package handler

import (
	"errors"

	"go-uniform-pos/internal/checkout"
	"go-uniform-pos/internal/model"
	"go-uniform-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	service service.CheckoutService
}

func NewCheckoutHandler(s service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: s}
}

// cashierID resolves the authenticated cashier from the JWT context.
func cashierID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(getUserID(c))
}

func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidPhase),
		errors.Is(err, checkout.ErrCheckoutFinished),
		errors.Is(err, checkout.ErrLineNotFound):
		return 400
	case errors.Is(err, checkout.ErrOutOfStock),
		errors.Is(err, service.ErrStockConflict):
		return 409
	case errors.Is(err, service.ErrUniformNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		return 404
	default:
		return 400
	}
}

// GetCart returns the cashier's current cart
// GET /api/v1/checkout/cart
func (h *CheckoutHandler) GetCart(c *fiber.Ctx) error {
	id, err := cashierID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(h.service.GetCart(id))
}

// AddToCart puts one unit of a uniform into the cart
// POST /api/v1/checkout/cart/items
func (h *CheckoutHandler) AddToCart(c *fiber.Ctx) error {
	id, err := cashierID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		UniformID string `json:"uniform_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	uniformID, err := parseUUID(req.UniformID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid uniform ID"})
	}

	cart, err := h.service.AddToCart(id, uniformID)
	if err != nil {
		return c.Status(checkoutStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cart)
}

// SetQuantity updates a cart line's quantity (clamped to stock)
// PUT /api/v1/checkout/cart/items/:index
func (h *CheckoutHandler) SetQuantity(c *fiber.Ctx) error {
	id, err := cashierID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid line index"})
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.service.SetQuantity(id, index, req.Quantity)
	if err != nil {
		return c.Status(checkoutStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cart)
}

// RemoveLine drops a cart line
// DELETE /api/v1/checkout/cart/items/:index
func (h *CheckoutHandler) RemoveLine(c *fiber.Ctx) error {
	id, err := cashierID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid line index"})
	}

	cart, err := h.service.RemoveLine(id, index)
	if err != nil {
		return c.Status(checkoutStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cart)
}

// Begin starts the checkout phase machine
// POST /api/v1/checkout/begin
func (h *CheckoutHandler) Begin(c *fiber.Ctx) error {
	id, err := cashierID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	cart, err := h.service.Begin(id)
	if err != nil {
		return c.Status(checkoutStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cart)
}

// SubmitShipping records customer info and moves on to payment
// POST /api/v1/checkout/shipping
func (h *CheckoutHandler) SubmitShipping(c *fiber.Ctx) error {
	id, err := cashierID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var info model.ShippingInfo
	if err := c.BodyParser(&info); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.service.SubmitShipping(id, info)
	if err != nil {
		return c.Status(checkoutStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cart)
}

// BackToShipping steps back from payment to the shipping form
// POST /api/v1/checkout/back
func (h *CheckoutHandler) BackToShipping(c *fiber.Ctx) error {
	id, err := cashierID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	cart, err := h.service.BackToShipping(id)
	if err != nil {
		return c.Status(checkoutStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cart)
}

// Cancel abandons checkout, keeping the cart contents
// POST /api/v1/checkout/cancel
func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	id, err := cashierID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	cart, err := h.service.Cancel(id)
	if err != nil {
		return c.Status(checkoutStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cart)
}

// Finalize commits the cart into a transaction and decrements stock
// POST /api/v1/checkout/finalize
func (h *CheckoutHandler) Finalize(c *fiber.Ctx) error {
	id, err := cashierID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		PaymentMethod model.PaymentMethod `json:"payment_method"`
		CustomerInfo  model.ShippingInfo  `json:"customer_info"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tx, err := h.service.Finalize(id, req.PaymentMethod, req.CustomerInfo, getUserName(c))
	if err != nil {
		return c.Status(checkoutStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})
}

// GetTransactions returns the sales ledger, newest first
// GET /api/v1/transactions
func (h *CheckoutHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.GetAllTransactions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transactions)
}

// GetTransaction returns a single transaction
// GET /api/v1/transactions/:id
func (h *CheckoutHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	tx, err := h.service.GetTransactionByID(txID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return c.JSON(tx)
}

// MarkPaid settles a pending TRANSFER transaction
// PATCH /api/v1/transactions/:id/status
func (h *CheckoutHandler) MarkPaid(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.service.MarkPaid(txID, getUserID(c)); err != nil {
		return c.Status(checkoutStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Transaction marked as paid"})
}

// UpdateCustomerInfo fills in customer detail after the sale
// PATCH /api/v1/transactions/:id/customer
func (h *CheckoutHandler) UpdateCustomerInfo(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var info model.ShippingInfo
	if err := c.BodyParser(&info); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.UpdateCustomerInfo(txID, info, getUserID(c)); err != nil {
		return c.Status(checkoutStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Customer info updated"})
}
