package service

import (
	"errors"
	"fmt"
	"time"

	"go-uniform-pos/internal/model"
	"go-uniform-pos/internal/repository"
	"go-uniform-pos/internal/ws"
	"go-uniform-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCodeExists      = errors.New("uniform code already exists")
	ErrUniformNotFound = errors.New("uniform not found")
	// ErrStockConflict is the stock-conflict rejection: the requested
	// decrement would drive stock below zero at commit time.
	ErrStockConflict = errors.New("insufficient stock remaining")
)

type CatalogService interface {
	CreateUniform(req *model.Uniform, userID, userName string) error
	UpdateUniform(id uuid.UUID, req *model.Uniform, userID, userName string) (*model.Uniform, error)
	AdjustStock(id uuid.UUID, delta int, userID, userName string) (*model.Uniform, error)
	DeleteUniform(id uuid.UUID, userID string) error
	GetAllUniforms() ([]model.Uniform, error)
	GetUniformByID(id uuid.UUID) (*model.Uniform, error)
}

type catalogService struct {
	uniformRepo repository.UniformRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewCatalogService(uRepo repository.UniformRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		uniformRepo: uRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *catalogService) CreateUniform(req *model.Uniform, userID, userName string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// Duplicate code check (business validation)
	existing, _ := s.uniformRepo.FindByCode(req.Code)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrCodeExists
	}

	req.LastUpdated = time.Now()
	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID

	if err := s.uniformRepo.Create(req); err != nil {
		return err
	}

	s.broadcastStock("uniform_created", req, userID, userName,
		fmt.Sprintf("%s created uniform '%s'", userName, req.Name))
	return nil
}

func (s *catalogService) UpdateUniform(id uuid.UUID, req *model.Uniform, userID, userName string) (*model.Uniform, error) {
	var updated *model.Uniform

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.uniformRepo.LockByID(tx, id)
		if err != nil {
			return ErrUniformNotFound
		}

		if req.Stock < 0 {
			return ErrStockConflict
		}

		existing.Code = req.Code
		existing.Name = req.Name
		existing.Category = req.Category
		existing.Type = req.Type
		existing.Size = req.Size
		existing.Color = req.Color
		existing.Price = req.Price
		existing.Stock = req.Stock
		existing.LastUpdated = time.Now()
		existing.UpdatedBy = userID
		existing.UpdatedByUserID = &userID

		if err := tx.Save(existing).Error; err != nil {
			return err
		}

		updated = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.broadcastStock("uniform_updated", updated, userID, userName,
		fmt.Sprintf("%s updated uniform '%s'", userName, updated.Name))
	return updated, nil
}

// AdjustStock applies a signed delta to the stock count. A delta that would
// drive stock negative is rejected with ErrStockConflict, nothing clamped,
// nothing written.
func (s *catalogService) AdjustStock(id uuid.UUID, delta int, userID, userName string) (*model.Uniform, error) {
	var adjusted *model.Uniform

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.uniformRepo.LockByID(tx, id)
		if err != nil {
			return ErrUniformNotFound
		}

		newStock := existing.Stock + delta
		if newStock < 0 {
			return ErrStockConflict
		}

		if err := s.uniformRepo.UpdateStock(tx, existing.ID, newStock, userID); err != nil {
			return err
		}

		existing.Stock = newStock
		adjusted = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.broadcastStock("stock_adjusted", adjusted, userID, userName,
		fmt.Sprintf("%s adjusted stock of '%s' by %+d", userName, adjusted.Name, delta))
	return adjusted, nil
}

// DeleteUniform removes the item from the catalog. Historical transaction
// and procurement lines keep their snapshots and stay valid.
func (s *catalogService) DeleteUniform(id uuid.UUID, userID string) error {
	if _, err := s.uniformRepo.FindByID(id); err != nil {
		return ErrUniformNotFound
	}
	return s.uniformRepo.Delete(id, userID)
}

func (s *catalogService) GetAllUniforms() ([]model.Uniform, error) {
	return s.uniformRepo.FindAll()
}

func (s *catalogService) GetUniformByID(id uuid.UUID) (*model.Uniform, error) {
	return s.uniformRepo.FindByID(id)
}

func (s *catalogService) broadcastStock(action string, u *model.Uniform, userID, userName, message string) {
	s.wsHub.BroadcastEvent(ws.Event{
		Type:   "stock_update",
		Action: action,
		Data: map[string]interface{}{
			"id":    u.ID,
			"code":  u.Code,
			"name":  u.Name,
			"stock": u.Stock,
			"price": u.Price,
		},
		User:    ws.EventUser{ID: userID, Name: userName},
		Message: message,
	})
}
