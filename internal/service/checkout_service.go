package service

import (
	"errors"
	"fmt"
	"sync"

	"go-uniform-pos/internal/checkout"
	"go-uniform-pos/internal/model"
	"go-uniform-pos/internal/repository"
	"go-uniform-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlreadyPaid         = errors.New("transaction already paid")
)

type CheckoutService interface {
	GetCart(cashierID uuid.UUID) *CartView
	AddToCart(cashierID, uniformID uuid.UUID) (*CartView, error)
	SetQuantity(cashierID uuid.UUID, lineIndex, qty int) (*CartView, error)
	RemoveLine(cashierID uuid.UUID, lineIndex int) (*CartView, error)
	Begin(cashierID uuid.UUID) (*CartView, error)
	SubmitShipping(cashierID uuid.UUID, info model.ShippingInfo) (*CartView, error)
	BackToShipping(cashierID uuid.UUID) (*CartView, error)
	Cancel(cashierID uuid.UUID) (*CartView, error)
	Finalize(cashierID uuid.UUID, method model.PaymentMethod, info model.ShippingInfo, userName string) (*model.Transaction, error)

	GetAllTransactions() ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
	MarkPaid(id uuid.UUID, userID string) error
	UpdateCustomerInfo(id uuid.UUID, info model.ShippingInfo, userID string) error
}

// CartView is the serializable snapshot handed back to the API after every
// cart mutation, so the front-end always re-renders from fresh state.
type CartView struct {
	Phase    checkout.Phase     `json:"phase"`
	Lines    []checkout.Line    `json:"lines"`
	Subtotal int64              `json:"subtotal"`
	Shipping model.ShippingInfo `json:"shipping"`
}

type checkoutService struct {
	uniformRepo repository.UniformRepository
	txRepo      repository.TransactionRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	opts        checkout.Options

	// One cart per cashier, mutex-guarded since many requests may touch the
	// same session.
	mu    sync.Mutex
	carts map[uuid.UUID]*checkout.Cart
}

func NewCheckoutService(uRepo repository.UniformRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub, opts checkout.Options) CheckoutService {
	return &checkoutService{
		uniformRepo: uRepo,
		txRepo:      tRepo,
		db:          db,
		wsHub:       hub,
		opts:        opts,
		carts:       make(map[uuid.UUID]*checkout.Cart),
	}
}

// cart returns the cashier's live cart, creating a fresh one if none exists
// or the previous one has completed. Callers must hold s.mu.
func (s *checkoutService) cart(cashierID uuid.UUID) *checkout.Cart {
	c, ok := s.carts[cashierID]
	if !ok || c.Phase() == checkout.PhaseSuccess {
		c = checkout.NewCart(s.opts)
		s.carts[cashierID] = c
	}
	return c
}

func (s *checkoutService) view(c *checkout.Cart) *CartView {
	return &CartView{
		Phase:    c.Phase(),
		Lines:    c.Lines(),
		Subtotal: c.Subtotal(),
		Shipping: c.Shipping(),
	}
}

func (s *checkoutService) GetCart(cashierID uuid.UUID) *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(s.cart(cashierID))
}

// AddToCart re-reads the catalog row so the quantity clamp always works
// against current stock, not a stale snapshot.
func (s *checkoutService) AddToCart(cashierID, uniformID uuid.UUID) (*CartView, error) {
	item, err := s.uniformRepo.FindByID(uniformID)
	if err != nil {
		return nil, ErrUniformNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(cashierID)
	if err := c.AddLine(*item); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *checkoutService) SetQuantity(cashierID uuid.UUID, lineIndex, qty int) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(cashierID)
	if err := c.SetQuantity(lineIndex, qty); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *checkoutService) RemoveLine(cashierID uuid.UUID, lineIndex int) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(cashierID)
	if err := c.RemoveLine(lineIndex); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *checkoutService) Begin(cashierID uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(cashierID)
	if err := c.Begin(); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *checkoutService) SubmitShipping(cashierID uuid.UUID, info model.ShippingInfo) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(cashierID)
	if err := c.SubmitShipping(info); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *checkoutService) BackToShipping(cashierID uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(cashierID)
	if err := c.BackToShipping(); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

func (s *checkoutService) Cancel(cashierID uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(cashierID)
	if err := c.Cancel(); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// Finalize commits the cart: inside one DB transaction every line's uniform
// is locked FOR UPDATE, stock re-validated against the committed quantity
// and decremented, then the transaction row plus item snapshots are created.
// Any stock conflict aborts the whole thing with no partial decrement. On
// success the cart empties and flips to SUCCESS carrying the receipt.
func (s *checkoutService) Finalize(cashierID uuid.UUID, method model.PaymentMethod, info model.ShippingInfo, userName string) (*model.Transaction, error) {
	if method != model.PaymentCash && method != model.PaymentTransfer {
		return nil, fmt.Errorf("unsupported payment method %q", method)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(cashierID)

	lines := c.Lines()
	if len(lines) == 0 {
		return nil, checkout.ErrEmptyCart
	}

	// Shipping collected up front wins over info passed at finalize.
	shipping := c.Shipping()
	if shipping.Empty() {
		shipping = info
	}

	status := model.TxPending
	if method == model.PaymentCash {
		status = model.TxPaid
	}

	record := &model.Transaction{
		CashierID:     cashierID,
		CustomerName:  shipping.CustomerName,
		CustomerPhone: shipping.PhoneNumber,
		CustomerAddr:  shipping.Address,
		PaymentMethod: method,
		Status:        status,
	}
	record.ID = uuid.New()
	record.CreatedBy = cashierID.String()
	record.UpdatedBy = cashierID.String()

	items, total := c.BuildItems(record.ID)
	record.Items = items
	record.TotalAmount = total

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Re-validate every line at commit time: stock may have moved
		// underneath since the lines were added.
		for _, line := range lines {
			current, err := s.uniformRepo.LockByID(tx, line.Item.ID)
			if err != nil {
				return ErrUniformNotFound
			}
			if current.Stock < line.Quantity {
				return ErrStockConflict
			}
			if err := s.uniformRepo.UpdateStock(tx, current.ID, current.Stock-line.Quantity, cashierID.String()); err != nil {
				return err
			}
		}
		return s.txRepo.Create(tx, record)
	})

	if err != nil {
		return nil, err
	}

	c.Complete()

	s.wsHub.BroadcastEvent(ws.Event{
		Type:   "stock_update",
		Action: "transaction_created",
		Data: map[string]interface{}{
			"transaction_id": record.ID,
			"total_amount":   record.TotalAmount,
			"status":         record.Status,
			"items":          len(record.Items),
		},
		User:    ws.EventUser{ID: cashierID.String(), Name: userName},
		Message: fmt.Sprintf("%s completed a sale of %d item(s)", userName, len(record.Items)),
	})

	return record, nil
}

func (s *checkoutService) GetAllTransactions() ([]model.Transaction, error) {
	return s.txRepo.FindAll()
}

func (s *checkoutService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	return s.txRepo.FindByID(id)
}

// MarkPaid settles a pending TRANSFER transaction. Status is one of the two
// fields editable after creation.
func (s *checkoutService) MarkPaid(id uuid.UUID, userID string) error {
	existing, err := s.txRepo.FindByID(id)
	if err != nil {
		return ErrTransactionNotFound
	}
	if existing.Status == model.TxPaid {
		return ErrAlreadyPaid
	}
	return s.txRepo.UpdateStatus(id, model.TxPaid, userID)
}

// UpdateCustomerInfo fills in customer detail after the sale, the other
// editable field (used by the deferred-shipping checkout variant).
func (s *checkoutService) UpdateCustomerInfo(id uuid.UUID, info model.ShippingInfo, userID string) error {
	if _, err := s.txRepo.FindByID(id); err != nil {
		return ErrTransactionNotFound
	}
	return s.txRepo.UpdateCustomerInfo(id, info, userID)
}
