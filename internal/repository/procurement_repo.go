package repository

import (
	"go-uniform-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcurementRepository interface {
	Create(tx *gorm.DB, record *model.ProcurementRecord) error
	FindAll() ([]model.ProcurementRecord, error)
	FindByID(id uuid.UUID) (*model.ProcurementRecord, error)
	Delete(id uuid.UUID, deletedBy string) error
	TotalPurchases() (int64, error)
}

type procurementRepo struct {
	db *gorm.DB
}

func NewProcurementRepo(db *gorm.DB) ProcurementRepository {
	return &procurementRepo{db}
}

func (r *procurementRepo) Create(tx *gorm.DB, record *model.ProcurementRecord) error {
	return tx.Create(record).Error
}

func (r *procurementRepo) FindAll() ([]model.ProcurementRecord, error) {
	var records []model.ProcurementRecord
	err := r.db.Preload("Items").Preload("Vendor").Order("date DESC").Find(&records).Error
	return records, err
}

func (r *procurementRepo) FindByID(id uuid.UUID) (*model.ProcurementRecord, error) {
	var record model.ProcurementRecord
	err := r.db.Preload("Items").Preload("Vendor").First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes the record as a whole. Stock already received stays on the
// catalog; the record is history, not a reversible posting.
func (r *procurementRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.ProcurementRecord{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.ProcurementRecord{}, "id = ?", id).Error
}

func (r *procurementRepo) TotalPurchases() (int64, error) {
	var total int64
	err := r.db.Model(&model.ProcurementRecord{}).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&total).Error
	return total, err
}
