package engine

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lapak/internal/models"
)

var hundred = decimal.NewFromInt(100)

// NormalizeVoucherCode returns the stored form of a voucher code.
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// VoucherCheck is the context a voucher is validated against.
type VoucherCheck struct {
	Code string
	// VendorID targets a vendor's vouchers; nil targets platform-wide vouchers.
	VendorID   *string
	OrderValue int64
	// UserID is empty for anonymous checks, which skip the per-user cap.
	UserID     string
	PriorUsage int
	Now        time.Time
}

// VoucherDiscount is the outcome of a successful validation.
type VoucherDiscount struct {
	DiscountAmount int64           `json:"discount_amount"`
	VoucherID      string          `json:"voucher_id"`
	Code           string          `json:"code"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
}

func sameVendor(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ValidateVoucher decides whether v applies to the check and computes the
// discount. The first failing rule wins. It never mutates v.
func ValidateVoucher(v *models.Voucher, check VoucherCheck) (VoucherDiscount, error) {
	if v == nil ||
		!strings.EqualFold(strings.TrimSpace(check.Code), v.Code) ||
		!sameVendor(v.VendorID, check.VendorID) ||
		v.ApprovalStatus != models.ApprovalApproved {
		return VoucherDiscount{}, ErrNotFound
	}
	if check.Now.Before(v.StartDate) {
		return VoucherDiscount{}, ErrNotStarted
	}
	if check.Now.After(v.EndDate) {
		return VoucherDiscount{}, ErrExpired
	}
	if !v.Active {
		return VoucherDiscount{}, ErrInactive
	}
	if check.OrderValue < v.MinOrderValue {
		return VoucherDiscount{}, &BelowMinimumError{MinOrderValue: v.MinOrderValue}
	}
	if v.TotalUsageLimit != nil && v.UsageCount >= *v.TotalUsageLimit {
		return VoucherDiscount{}, ErrGloballyExhausted
	}
	if check.UserID != "" && v.MaxUsagePerUser > 0 && check.PriorUsage >= v.MaxUsagePerUser {
		return VoucherDiscount{}, ErrPerUserExhausted
	}

	return VoucherDiscount{
		DiscountAmount: VoucherDiscountAmount(v, check.OrderValue),
		VoucherID:      v.ID,
		Code:           v.Code,
		DiscountType:   v.DiscountType,
		DiscountValue:  v.DiscountValue,
	}, nil
}

// VoucherDiscountAmount computes the discount v grants on orderValue, capped
// by MaxDiscount and by the order value, rounded to whole units.
func VoucherDiscountAmount(v *models.Voucher, orderValue int64) int64 {
	value := decimal.NewFromInt(orderValue)

	var discount decimal.Decimal
	switch v.DiscountType {
	case models.DiscountPercentage:
		discount = value.Mul(v.DiscountValue).Div(hundred)
		if v.MaxDiscount != nil {
			discount = decimal.Min(discount, decimal.NewFromInt(*v.MaxDiscount))
		}
	case models.DiscountFixed:
		discount = v.DiscountValue
	default:
		return 0
	}

	discount = decimal.Min(discount, value)
	if discount.IsNegative() {
		return 0
	}
	return discount.Round(0).IntPart()
}
