package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Voucher is a discount code scoped to a vendor, or platform-wide when VendorID is nil.
// Code is stored upper-cased.
type Voucher struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VendorID        *string         `json:"vendor_id,omitempty" gorm:"uniqueIndex:idx_voucher_vendor_code;type:varchar(36)"`
	Code            string          `json:"code" gorm:"uniqueIndex:idx_voucher_vendor_code;index;type:varchar(64);not null"`
	DiscountType    string          `json:"discount_type" gorm:"type:varchar(16);not null"`
	DiscountValue   decimal.Decimal `json:"discount_value" gorm:"type:decimal(20,2);not null"`
	MaxDiscount     *int64          `json:"max_discount,omitempty"`
	MinOrderValue   int64           `json:"min_order_value" gorm:"not null;default:0"`
	MaxUsagePerUser int             `json:"max_usage_per_user" gorm:"not null"`
	TotalUsageLimit *int            `json:"total_usage_limit,omitempty"`
	UsageCount      int             `json:"usage_count" gorm:"not null;default:0"`
	StartDate       time.Time       `json:"start_date" gorm:"not null"`
	EndDate         time.Time       `json:"end_date" gorm:"not null"`
	Active          bool            `json:"active" gorm:"not null"`
	ApprovalStatus  string          `json:"approval_status" gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// VoucherUsage records one redemption of a voucher by a user.
type VoucherUsage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VoucherID string    `json:"voucher_id" gorm:"index:idx_voucher_user;type:varchar(36);not null"`
	UserID    string    `json:"user_id" gorm:"index:idx_voucher_user;type:varchar(36);not null"`
	OrderID   string    `json:"order_id" gorm:"type:varchar(36)"`
	UsedAt    time.Time `json:"used_at"`
}
