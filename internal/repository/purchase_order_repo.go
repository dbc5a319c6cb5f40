package repository

import (
	"go-uniform-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	Create(po *model.PurchaseOrder) error
	FindAll(status model.PurchaseOrderStatus) ([]model.PurchaseOrder, error)
	FindByID(id uuid.UUID) (*model.PurchaseOrder, error)
	UpdateStatus(id uuid.UUID, status model.PurchaseOrderStatus, updatedBy string) error
	Delete(id uuid.UUID, deletedBy string) error
}

type purchaseOrderRepo struct {
	db *gorm.DB
}

func NewPurchaseOrderRepo(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db}
}

func (r *purchaseOrderRepo) Create(po *model.PurchaseOrder) error {
	return r.db.Create(po).Error
}

// FindAll lists orders, newest first. An empty status means no filter.
func (r *purchaseOrderRepo) FindAll(status model.PurchaseOrderStatus) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	query := r.db.Preload("Items").Preload("Vendor").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepo) FindByID(id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.Preload("Items").Preload("Vendor").First(&po, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepo) UpdateStatus(id uuid.UUID, status model.PurchaseOrderStatus, updatedBy string) error {
	return r.db.Model(&model.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *purchaseOrderRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.PurchaseOrder{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.PurchaseOrder{}, "id = ?", id).Error
}
