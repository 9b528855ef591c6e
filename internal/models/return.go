package models

import "time"

// ReturnStatus is the status of a return or exchange claim.
type ReturnStatus string

const (
	ReturnPending   ReturnStatus = "pending"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRejected  ReturnStatus = "rejected"
	ReturnCompleted ReturnStatus = "completed"
	ReturnCancelled ReturnStatus = "cancelled"
)

const (
	ReturnTypeReturn   = "return"
	ReturnTypeExchange = "exchange"
)

// Return is a customer claim against a single order item.
// SellerNotes carries both the rejection reason and the cancellation reason.
type Return struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID      string       `json:"order_id" gorm:"index;type:varchar(36);not null"`
	OrderItemID  string       `json:"order_item_id" gorm:"index;type:varchar(36);not null"`
	UserID       string       `json:"user_id" gorm:"index;type:varchar(36);not null"`
	VendorID     string       `json:"vendor_id" gorm:"index;type:varchar(36);not null"`
	ProductID    string       `json:"product_id" gorm:"type:varchar(36);not null"`
	VariantID    *string      `json:"variant_id,omitempty" gorm:"type:varchar(36)"`
	Reason       string       `json:"reason" gorm:"type:varchar(64);not null"`
	Description  string       `json:"description" gorm:"type:text"`
	ReturnType   string       `json:"return_type" gorm:"type:varchar(16);not null"`
	Quantity     int          `json:"quantity" gorm:"not null"`
	RefundAmount int64        `json:"refund_amount" gorm:"not null"`
	Images       StringList   `json:"images" gorm:"type:text"`
	Status       ReturnStatus `json:"status" gorm:"type:varchar(16);index;not null;default:'pending'"`
	SellerNotes  *string      `json:"seller_notes,omitempty" gorm:"type:text"`
	RequestedAt  time.Time    `json:"requested_at"`
	ApprovedAt   *time.Time   `json:"approved_at,omitempty"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	CancelledAt  *time.Time   `json:"cancelled_at,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
