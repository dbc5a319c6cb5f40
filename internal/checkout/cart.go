// Package checkout implements the cart and checkout phase machine. The cart
// is pure in-memory state; committing it against the catalog is the
// CheckoutService's job so the whole finalize runs in one DB transaction.
package checkout

import (
	"errors"

	"github.com/google/uuid"

	"go-uniform-pos/internal/model"
)

type Phase string

const (
	PhaseIdle     Phase = "IDLE"
	PhaseShipping Phase = "SHIPPING"
	PhasePayment  Phase = "PAYMENT"
	PhaseSuccess  Phase = "SUCCESS"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrOutOfStock       = errors.New("item is out of stock")
	ErrLineNotFound     = errors.New("cart line not found")
	ErrInvalidPhase     = errors.New("invalid checkout phase transition")
	ErrCheckoutFinished = errors.New("checkout already completed")
)

// Line pairs a uniform snapshot with a chosen quantity.
// Invariant: 1 <= Quantity <= the snapshot's stock at the time of the last
// add/update. Stock is re-validated again at finalize because the catalog can
// change underneath between add and commit.
type Line struct {
	Item     model.Uniform `json:"item"`
	Quantity int           `json:"quantity"`
}

// Options configures the checkout flow. Two variants exist: one collects
// shipping info before payment, the other defers it to post-sale editing.
type Options struct {
	RequireShippingBeforePayment bool
}

// Cart accumulates lines for a single cashier session and walks the phase
// machine IDLE -> (SHIPPING) -> PAYMENT -> SUCCESS. Back-transitions to
// SHIPPING/PAYMENT and cancel-to-IDLE are allowed; SUCCESS is terminal for
// this cart instance.
type Cart struct {
	lines    []Line
	phase    Phase
	opts     Options
	shipping model.ShippingInfo
}

func NewCart(opts Options) *Cart {
	return &Cart{phase: PhaseIdle, opts: opts}
}

func (c *Cart) Phase() Phase { return c.phase }

// Lines returns a copy so callers cannot bypass the quantity clamps.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Shipping() model.ShippingInfo { return c.shipping }

// AddLine puts one unit of item into the cart. Out-of-stock items are
// rejected. If the item is already in the cart its quantity grows by one,
// silently capped at the item's stock ceiling.
func (c *Cart) AddLine(item model.Uniform) error {
	if c.phase == PhaseSuccess {
		return ErrCheckoutFinished
	}
	if item.Stock <= 0 {
		return ErrOutOfStock
	}
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			if c.lines[i].Quantity < item.Stock {
				c.lines[i].Quantity++
				c.lines[i].Item = item // refresh snapshot
			}
			return nil
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
	return nil
}

// SetQuantity clamps qty into [1, stock] for the given line.
func (c *Cart) SetQuantity(lineIndex, qty int) error {
	if c.phase == PhaseSuccess {
		return ErrCheckoutFinished
	}
	if lineIndex < 0 || lineIndex >= len(c.lines) {
		return ErrLineNotFound
	}
	line := &c.lines[lineIndex]
	if qty < 1 {
		qty = 1
	}
	if qty > line.Item.Stock {
		qty = line.Item.Stock
	}
	line.Quantity = qty
	return nil
}

func (c *Cart) RemoveLine(lineIndex int) error {
	if lineIndex < 0 || lineIndex >= len(c.lines) {
		return ErrLineNotFound
	}
	c.lines = append(c.lines[:lineIndex], c.lines[lineIndex+1:]...)
	return nil
}

// Subtotal is recomputed from the lines on every call, never cached.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Item.Price * int64(l.Quantity)
	}
	return total
}

// Begin starts checkout for a non-empty cart. The entry phase depends on
// whether the flow collects shipping info up front.
func (c *Cart) Begin() error {
	if c.phase != PhaseIdle {
		return ErrInvalidPhase
	}
	if len(c.lines) == 0 {
		return ErrEmptyCart
	}
	if c.opts.RequireShippingBeforePayment {
		c.phase = PhaseShipping
	} else {
		c.phase = PhasePayment
	}
	return nil
}

// SubmitShipping records the customer info and moves on to payment.
func (c *Cart) SubmitShipping(info model.ShippingInfo) error {
	if c.phase != PhaseShipping {
		return ErrInvalidPhase
	}
	if c.opts.RequireShippingBeforePayment && info.Empty() {
		return errors.New("shipping info is required")
	}
	c.shipping = info
	c.phase = PhasePayment
	return nil
}

// BackToShipping returns from payment to the shipping step.
func (c *Cart) BackToShipping() error {
	if c.phase != PhasePayment || !c.opts.RequireShippingBeforePayment {
		return ErrInvalidPhase
	}
	c.phase = PhaseShipping
	return nil
}

// Cancel abandons checkout and keeps the cart contents.
func (c *Cart) Cancel() error {
	if c.phase == PhaseSuccess {
		return ErrCheckoutFinished
	}
	c.phase = PhaseIdle
	return nil
}

// Complete clears the lines and marks the cart terminal. Called by the
// service once the finalize transaction has committed.
func (c *Cart) Complete() {
	c.lines = nil
	c.phase = PhaseSuccess
}

// BuildItems snapshots the cart lines into transaction items and the exact
// total. Quantities here are what finalize decrements from the catalog.
func (c *Cart) BuildItems(txID uuid.UUID) ([]model.TransactionItem, int64) {
	items := make([]model.TransactionItem, 0, len(c.lines))
	var total int64
	for _, l := range c.lines {
		items = append(items, model.TransactionItem{
			TransactionID: txID,
			UniformID:     l.Item.ID,
			Name:          l.Item.Name,
			Quantity:      l.Quantity,
			Price:         l.Item.Price,
		})
		total += l.Item.Price * int64(l.Quantity)
	}
	return items, total
}
