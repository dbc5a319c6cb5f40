package model

import (
	"time"

	"github.com/google/uuid"
)

// ProcurementRecord is a stock-in event from a vendor. Creating one
// atomically increments catalog stock for every referenced uniform; the
// record itself is never mutated afterwards, only deletable as a whole.
type ProcurementRecord struct {
	BaseModel
	Date     time.Time `gorm:"not null" json:"date"`
	VendorID uuid.UUID `gorm:"type:uuid;not null;index" json:"vendor_id" validate:"uuid_required"`
	// Weak reference: the vendor may be deleted later, lookups then miss and
	// callers render "unknown vendor".
	Vendor *Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty" validate:"-"`

	Items []ProcurementItem `gorm:"foreignKey:ProcurementID" json:"items" validate:"-"`

	// Must equal the exact sum of item cost*quantity.
	TotalCost int64 `gorm:"not null" json:"total_cost"`
}

// ProcurementItem snapshots the received uniform's name alongside quantity
// and unit cost.
type ProcurementItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProcurementID uuid.UUID `gorm:"type:uuid;not null;index" json:"procurement_id"`
	UniformID     uuid.UUID `gorm:"type:uuid;not null" json:"uniform_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Cost          int64     `gorm:"not null" json:"cost"`
}
