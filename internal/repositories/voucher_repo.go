package repositories

import (
	"context"

	"lapak/internal/models"
)

// VoucherRepository defines read access to vouchers and their usage.
type VoucherRepository interface {
	// FindByCode looks up a voucher by normalized code within a vendor, or
	// among platform vouchers when vendorID is nil.
	FindByCode(ctx context.Context, code string, vendorID *string) (*models.Voucher, error)
	CountUsageByUser(ctx context.Context, voucherID, userID string) (int, error)
	Create(ctx context.Context, voucher *models.Voucher) error
}
