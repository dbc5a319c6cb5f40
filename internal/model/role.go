package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // ADMIN, GUDANG, KASIR
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleAdmin  = "ADMIN"
	RoleGudang = "GUDANG" // warehouse staff
	RoleKasir  = "KASIR"  // cashier
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Full system access with all privileges",
	},
	{
		Code:        RoleGudang,
		Name:        "Warehouse Staff",
		Description: "Catalog, procurement and purchase order management",
	},
	{
		Code:        RoleKasir,
		Name:        "Cashier",
		Description: "Checkout and transaction history access",
	},
}
