package repository

import (
	"go-uniform-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorRepository interface {
	Create(vendor *model.Vendor) error
	FindAll() ([]model.Vendor, error)
	FindByID(id uuid.UUID) (*model.Vendor, error)
	Update(vendor *model.Vendor) error
	Delete(id uuid.UUID, deletedBy string) error
}

type vendorRepo struct {
	db *gorm.DB
}

func NewVendorRepo(db *gorm.DB) VendorRepository {
	return &vendorRepo{db}
}

func (r *vendorRepo) Create(vendor *model.Vendor) error {
	return r.db.Create(vendor).Error
}

func (r *vendorRepo) FindAll() ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := r.db.Order("name ASC").Find(&vendors).Error
	return vendors, err
}

func (r *vendorRepo) FindByID(id uuid.UUID) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.First(&vendor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepo) Update(vendor *model.Vendor) error {
	return r.db.Save(vendor).Error
}

// Delete never cascades: procurement records and purchase orders keep the
// vendor id as a weak reference and render "unknown vendor" on a miss.
func (r *vendorRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Vendor{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Vendor{}, "id = ?", id).Error
}
