package model

import "github.com/google/uuid"

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

type TransactionStatus string

const (
	TxPending TransactionStatus = "PENDING"
	TxPaid    TransactionStatus = "PAID"
)

// Transaction is a completed sale appended by checkout finalize. Items and
// TotalAmount are immutable after creation; only Status (TRANSFER settling)
// and the customer info may be edited later from history.
type Transaction struct {
	BaseModel
	CashierID uuid.UUID `gorm:"type:uuid;not null;index" json:"cashier_id" validate:"uuid_required"`
	Cashier   *User     `gorm:"foreignKey:CashierID" json:"cashier,omitempty" validate:"-"`

	// Optional shipping / customer info, may be empty for walk-in sales.
	CustomerName  string `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(30)" json:"customer_phone"`
	CustomerAddr  string `gorm:"type:text" json:"customer_address"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items" validate:"-"`

	// Must equal the exact sum of item price*quantity.
	TotalAmount   int64             `gorm:"not null" json:"total_amount"`
	PaymentMethod PaymentMethod     `gorm:"type:varchar(20);not null" json:"payment_method" validate:"required,oneof=CASH TRANSFER"`
	Status        TransactionStatus `gorm:"type:varchar(20);not null" json:"status"`
}

// TransactionItem snapshots the sold uniform's price and name at sale time,
// so later catalog edits or deletions never corrupt the ledger.
type TransactionItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	UniformID     uuid.UUID `gorm:"type:uuid;not null" json:"uniform_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Price         int64     `gorm:"not null" json:"price"`
}

// ShippingInfo is the customer detail collected by the shipping checkout
// variant, or filled in later from transaction history.
type ShippingInfo struct {
	CustomerName string `json:"customer_name"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
}

// Empty reports whether no customer detail was supplied.
func (s ShippingInfo) Empty() bool {
	return s.CustomerName == "" && s.PhoneNumber == "" && s.Address == ""
}
