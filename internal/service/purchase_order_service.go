package service

import (
	"errors"

	"go-uniform-pos/internal/model"
	"go-uniform-pos/internal/repository"

	"github.com/google/uuid"
)

var ErrPurchaseOrderNotFound = errors.New("purchase order not found")

type PurchaseOrderService interface {
	Create(req *CreatePurchaseOrderRequest, userID string) (*model.PurchaseOrder, error)
	AdvanceStatus(id uuid.UUID, userID string) (*model.PurchaseOrder, error)
	Delete(id uuid.UUID, userID string) error
	GetAll(status model.PurchaseOrderStatus) ([]model.PurchaseOrder, error)
	GetByID(id uuid.UUID) (*model.PurchaseOrder, error)
}

type CreatePurchaseOrderRequest struct {
	VendorID uuid.UUID                `json:"vendor_id" validate:"uuid_required"`
	Items    []PurchaseOrderItemInput `json:"items" validate:"required,min=1"`
}

// PurchaseOrderItemInput is free text on purpose: pre-orders often request
// stock-keeping units that do not exist in the catalog yet.
type PurchaseOrderItemInput struct {
	Name           string `json:"name" validate:"required"`
	Quantity       int    `json:"quantity" validate:"required,gt=0"`
	EstimatedPrice int64  `json:"estimated_price" validate:"gte=0"`
}

type purchaseOrderService struct {
	poRepo repository.PurchaseOrderRepository
}

func NewPurchaseOrderService(poRepo repository.PurchaseOrderRepository) PurchaseOrderService {
	return &purchaseOrderService{poRepo: poRepo}
}

func (s *purchaseOrderService) Create(req *CreatePurchaseOrderRequest, userID string) (*model.PurchaseOrder, error) {
	if req.VendorID == uuid.Nil {
		return nil, ErrVendorRequired
	}
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	po := &model.PurchaseOrder{
		VendorID: req.VendorID,
		Status:   model.POPending,
	}
	po.ID = uuid.New()
	po.CreatedBy = userID
	po.UpdatedBy = userID
	for _, item := range req.Items {
		po.Items = append(po.Items, model.PurchaseOrderItem{
			PurchaseOrderID: po.ID,
			Name:            item.Name,
			Quantity:        item.Quantity,
			EstimatedPrice:  item.EstimatedPrice,
		})
	}

	if err := s.poRepo.Create(po); err != nil {
		return nil, err
	}
	return po, nil
}

// AdvanceStatus moves the order one step along PENDING -> ORDERED ->
// RECEIVED. Advancing a RECEIVED order fails; no transition ever writes to
// the catalog.
func (s *purchaseOrderService) AdvanceStatus(id uuid.UUID, userID string) (*model.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(id)
	if err != nil {
		return nil, ErrPurchaseOrderNotFound
	}

	if err := po.Advance(); err != nil {
		return nil, err
	}

	if err := s.poRepo.UpdateStatus(po.ID, po.Status, userID); err != nil {
		return nil, err
	}
	return po, nil
}

func (s *purchaseOrderService) Delete(id uuid.UUID, userID string) error {
	if _, err := s.poRepo.FindByID(id); err != nil {
		return ErrPurchaseOrderNotFound
	}
	return s.poRepo.Delete(id, userID)
}

func (s *purchaseOrderService) GetAll(status model.PurchaseOrderStatus) ([]model.PurchaseOrder, error) {
	return s.poRepo.FindAll(status)
}

func (s *purchaseOrderService) GetByID(id uuid.UUID) (*model.PurchaseOrder, error) {
	return s.poRepo.FindByID(id)
}
