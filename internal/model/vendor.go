package model

// Vendor is simple reference data. Procurement records and purchase orders
// keep its id as a weak reference; deleting a vendor never cascades.
type Vendor struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Contact string `gorm:"type:varchar(100)" json:"contact"`
	Address string `gorm:"type:text" json:"address"`
	Type    string `gorm:"type:varchar(100)" json:"type"`
}
