package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type PurchaseOrderStatus string

const (
	POPending  PurchaseOrderStatus = "PENDING"
	POOrdered  PurchaseOrderStatus = "ORDERED"
	POReceived PurchaseOrderStatus = "RECEIVED"
)

var ErrPurchaseOrderReceived = errors.New("purchase order already received")

// PurchaseOrder is a pre-order to a vendor, tracked independently of the
// catalog: its items are free text (often future SKUs) and no status
// transition touches stock. Actual stock-in is always entered separately via
// procurement.
type PurchaseOrder struct {
	BaseModel
	VendorID uuid.UUID           `gorm:"type:uuid;not null;index" json:"vendor_id" validate:"uuid_required"`
	Vendor   *Vendor             `gorm:"foreignKey:VendorID" json:"vendor,omitempty" validate:"-"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items" validate:"-"`
	Status   PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
}

// PurchaseOrderItem is a free-text request line, not tied to catalog ids.
type PurchaseOrderItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	EstimatedPrice  int64     `gorm:"default:0" json:"estimated_price"`
}

// NextStatus returns the successor of a status in the forward-only chain
// PENDING -> ORDERED -> RECEIVED.
func NextStatus(s PurchaseOrderStatus) (PurchaseOrderStatus, error) {
	switch s {
	case POPending:
		return POOrdered, nil
	case POOrdered:
		return POReceived, nil
	case POReceived:
		return "", ErrPurchaseOrderReceived
	default:
		return "", fmt.Errorf("unknown purchase order status %q", s)
	}
}

// Advance moves the order one step forward. RECEIVED is terminal; advancing
// past it fails and leaves the order unchanged.
func (po *PurchaseOrder) Advance() error {
	next, err := NextStatus(po.Status)
	if err != nil {
		return err
	}
	po.Status = next
	return nil
}
