package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "uniform:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Uniform"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Catalog management
	{Code: "uniform:view", Name: "View Uniform"},
	{Code: "uniform:create", Name: "Create Uniform"},
	{Code: "uniform:update", Name: "Update Uniform"},
	{Code: "uniform:delete", Name: "Delete Uniform"},
	// Checkout and transaction history
	{Code: "checkout:create", Name: "Run Checkout"},
	{Code: "transaction:view", Name: "View Transaction"},
	{Code: "transaction:update", Name: "Update Transaction Status"},
	// Procurement (stock-in) ledger
	{Code: "procurement:view", Name: "View Procurement"},
	{Code: "procurement:create", Name: "Record Procurement"},
	{Code: "procurement:delete", Name: "Delete Procurement"},
	// Purchase orders (pre-orders to vendors)
	{Code: "purchase_order:view", Name: "View Purchase Order"},
	{Code: "purchase_order:create", Name: "Create Purchase Order"},
	{Code: "purchase_order:update", Name: "Advance Purchase Order"},
	{Code: "purchase_order:delete", Name: "Delete Purchase Order"},
	// Vendors
	{Code: "vendor:view", Name: "View Vendor"},
	{Code: "vendor:create", Name: "Create Vendor"},
	{Code: "vendor:update", Name: "Update Vendor"},
	{Code: "vendor:delete", Name: "Delete Vendor"},
	// Reporting
	{Code: "report:view", Name: "View Reports"},
}

// GudangPrivilegeCodes lists what warehouse staff can do: everything around
// physical stock, nothing around users or money collection.
var GudangPrivilegeCodes = []string{
	"uniform:view", "uniform:create", "uniform:update", "uniform:delete",
	"procurement:view", "procurement:create", "procurement:delete",
	"purchase_order:view", "purchase_order:create", "purchase_order:update", "purchase_order:delete",
	"vendor:view",
	"report:view",
}

// KasirPrivilegeCodes lists the cashier surface: sell, look things up and
// settle pending transfers.
var KasirPrivilegeCodes = []string{
	"uniform:view",
	"checkout:create",
	"transaction:view", "transaction:update",
	"report:view",
}
