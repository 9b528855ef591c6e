package repositories

import (
	"context"
	"errors"
	"fmt"

	"lapak/internal/engine"
	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVoucherRepository is a GORM implementation of VoucherRepository.
type GORMVoucherRepository struct {
	db *gorm.DB
}

// NewGORMVoucherRepository creates a new instance of GORMVoucherRepository.
func NewGORMVoucherRepository(db *gorm.DB) *GORMVoucherRepository {
	return &GORMVoucherRepository{db: db}
}

// FindByCode retrieves a voucher by code within the given vendor scope.
func (r *GORMVoucherRepository) FindByCode(ctx context.Context, code string, vendorID *string) (*models.Voucher, error) {
	q := r.db.WithContext(ctx).Where("code = ?", engine.NormalizeVoucherCode(code))
	if vendorID != nil {
		q = q.Where("vendor_id = ?", *vendorID)
	} else {
		q = q.Where("vendor_id IS NULL")
	}

	var voucher models.Voucher
	if err := q.First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("voucher %s: %w", code, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get voucher %s: %w", code, err)
	}
	return &voucher, nil
}

// CountUsageByUser counts how many times userID redeemed voucherID.
func (r *GORMVoucherRepository) CountUsageByUser(ctx context.Context, voucherID, userID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VoucherUsage{}).
		Where("voucher_id = ? AND user_id = ?", voucherID, userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count usage of voucher %s: %w", voucherID, err)
	}
	return int(count), nil
}

// Create stores a new voucher with its code normalized.
func (r *GORMVoucherRepository) Create(ctx context.Context, voucher *models.Voucher) error {
	if voucher.ID == "" {
		voucher.ID = uuid.New().String()
	}
	voucher.Code = engine.NormalizeVoucherCode(voucher.Code)
	if err := r.db.WithContext(ctx).Create(voucher).Error; err != nil {
		return fmt.Errorf("failed to create voucher: %w", err)
	}
	return nil
}
