package repository

import (
	"go-uniform-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UniformRepository interface {
	Create(uniform *model.Uniform) error
	FindAll() ([]model.Uniform, error)
	FindByID(id uuid.UUID) (*model.Uniform, error)
	FindByCode(code string) (*model.Uniform, error)
	Update(uniform *model.Uniform) error
	Delete(id uuid.UUID, deletedBy string) error
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Uniform, error)
	Count() (int64, error)
	CountLowStock(threshold int) (int64, error)
}

type uniformRepo struct {
	db *gorm.DB
}

func NewUniformRepo(db *gorm.DB) UniformRepository {
	return &uniformRepo{db}
}

func (r *uniformRepo) Create(uniform *model.Uniform) error {
	return r.db.Create(uniform).Error
}

func (r *uniformRepo) FindAll() ([]model.Uniform, error) {
	var uniforms []model.Uniform
	err := r.db.Preload("CreatedByUser").Preload("UpdatedByUser").Order("code ASC").Find(&uniforms).Error
	return uniforms, err
}

func (r *uniformRepo) FindByID(id uuid.UUID) (*model.Uniform, error) {
	var uniform model.Uniform
	err := r.db.First(&uniform, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &uniform, nil
}

func (r *uniformRepo) FindByCode(code string) (*model.Uniform, error) {
	var uniform model.Uniform
	err := r.db.First(&uniform, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &uniform, nil
}

func (r *uniformRepo) Update(uniform *model.Uniform) error {
	return r.db.Save(uniform).Error
}

// Delete soft-deletes the catalog row. Ledger entries keep their own name
// and price snapshots, so nothing is cascaded.
func (r *uniformRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Uniform{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Uniform{}, "id = ?", id).Error
}

// UpdateStock runs on the caller's tx so stock writes stay inside the
// surrounding transaction.
func (r *uniformRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error {
	return tx.Model(&model.Uniform{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":        newStock,
			"last_updated": gorm.Expr("NOW()"),
			"updated_by":   updatedBy,
		}).Error
}

func (r *uniformRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Uniform{}).Count(&count).Error
	return count, err
}

// CountLowStock counts items at or below the threshold.
func (r *uniformRepo) CountLowStock(threshold int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Uniform{}).Where("stock <= ?", threshold).Count(&count).Error
	return count, err
}

// LockByID fetches the row FOR UPDATE inside tx (pessimistic locking).
func (r *uniformRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Uniform, error) {
	var uniform model.Uniform
	err := tx.Set("gorm:query_option", "FOR UPDATE").First(&uniform, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &uniform, nil
}
