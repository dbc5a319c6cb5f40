package model

import "time"

// Uniform is a sellable catalog item with a live stock count.
// Invariant: Stock never goes below zero; every write path that decrements
// stock must re-validate inside its transaction before committing.
type Uniform struct {
	BaseModel
	Code     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category string `gorm:"type:varchar(100)" json:"category"`
	Type     string `gorm:"type:varchar(100)" json:"type"`
	Size     string `gorm:"type:varchar(20)" json:"size"`
	Color    string `gorm:"type:varchar(50)" json:"color"`
	Price    int64  `gorm:"default:0" json:"price" validate:"gte=0"`
	Stock    int    `gorm:"default:0" json:"stock" validate:"gte=0"`

	// Stamped on every catalog mutation, separate from gorm's UpdatedAt so
	// the API contract survives ORM changes.
	LastUpdated time.Time `json:"last_updated"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *User   `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`
}
