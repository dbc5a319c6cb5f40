package service

import (
	"errors"
	"fmt"
	"time"

	"go-uniform-pos/internal/model"
	"go-uniform-pos/internal/repository"
	"go-uniform-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNoItems             = errors.New("at least one item is required")
	ErrInvalidQuantity     = errors.New("item quantity must be greater than zero")
	ErrVendorRequired      = errors.New("vendor is required")
	ErrProcurementNotFound = errors.New("procurement record not found")
)

type ProcurementService interface {
	RecordProcurement(req *RecordProcurementRequest, userID, userName string) (*model.ProcurementRecord, error)
	GetAllProcurements() ([]model.ProcurementRecord, error)
	GetProcurementByID(id uuid.UUID) (*model.ProcurementRecord, error)
	DeleteProcurement(id uuid.UUID, userID string) error
}

type RecordProcurementRequest struct {
	VendorID uuid.UUID              `json:"vendor_id" validate:"uuid_required"`
	Items    []ProcurementItemInput `json:"items" validate:"required,min=1"`
}

type ProcurementItemInput struct {
	UniformID uuid.UUID `json:"uniform_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Cost      int64     `json:"cost" validate:"gte=0"`
}

type procurementService struct {
	procurementRepo repository.ProcurementRepository
	uniformRepo     repository.UniformRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewProcurementService(pRepo repository.ProcurementRepository, uRepo repository.UniformRepository, db *gorm.DB, hub *ws.Hub) ProcurementService {
	return &procurementService{
		procurementRepo: pRepo,
		uniformRepo:     uRepo,
		db:              db,
		wsHub:           hub,
	}
}

// RecordProcurement is the one path, besides manual catalog edit, that
// increases stock. It is intentionally decoupled from purchase order
// completion: receiving a PO is a tracking flag only, the actual stock-in is
// always entered here. Stock increments and the ledger row commit together
// or not at all.
func (s *procurementService) RecordProcurement(req *RecordProcurementRequest, userID, userName string) (*model.ProcurementRecord, error) {
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

	record := &model.ProcurementRecord{
		Date:     time.Now(),
		VendorID: req.VendorID,
	}
	record.ID = uuid.New()
	record.CreatedBy = userID
	record.UpdatedBy = userID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var totalCost int64
		for _, input := range req.Items {
			uniform, err := s.uniformRepo.LockByID(tx, input.UniformID)
			if err != nil {
				return ErrUniformNotFound
			}
			if err := s.uniformRepo.UpdateStock(tx, uniform.ID, uniform.Stock+input.Quantity, userID); err != nil {
				return err
			}
			record.Items = append(record.Items, model.ProcurementItem{
				ProcurementID: record.ID,
				UniformID:     uniform.ID,
				Name:          uniform.Name,
				Quantity:      input.Quantity,
				Cost:          input.Cost,
			})
			totalCost += input.Cost * int64(input.Quantity)
		}
		record.TotalCost = totalCost
		return s.procurementRepo.Create(tx, record)
	})

	if err != nil {
		return nil, err
	}

	s.wsHub.BroadcastEvent(ws.Event{
		Type:   "stock_update",
		Action: "procurement_recorded",
		Data: map[string]interface{}{
			"procurement_id": record.ID,
			"vendor_id":      record.VendorID,
			"total_cost":     record.TotalCost,
			"items":          len(record.Items),
		},
		User:    ws.EventUser{ID: userID, Name: userName},
		Message: fmt.Sprintf("%s recorded stock-in of %d item(s)", userName, len(record.Items)),
	})

	return record, nil
}

func (s *procurementService) GetAllProcurements() ([]model.ProcurementRecord, error) {
	return s.procurementRepo.FindAll()
}

func (s *procurementService) GetProcurementByID(id uuid.UUID) (*model.ProcurementRecord, error) {
	return s.procurementRepo.FindByID(id)
}

// DeleteProcurement removes the whole record. Received stock stays on the
// catalog; the ledger entry is history, not a reversible posting.
func (s *procurementService) DeleteProcurement(id uuid.UUID, userID string) error {
	if _, err := s.procurementRepo.FindByID(id); err != nil {
		return ErrProcurementNotFound
	}
	return s.procurementRepo.Delete(id, userID)
}
