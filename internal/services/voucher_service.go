package services

import (
	"context"
	"errors"
	"time"

	"lapak/internal/engine"
	"lapak/internal/metrics"
	"lapak/internal/models"
	"lapak/internal/repositories"

	"go.uber.org/zap"
)

// VoucherValidation is a request to price a voucher against an order.
type VoucherValidation struct {
	Code string
	// VendorID selects a vendor's voucher; nil selects a platform voucher.
	VendorID   *string
	OrderValue int64
	// UserID enables the per-user usage cap when set.
	UserID string
}

// VoucherService validates voucher codes. It never records usage.
type VoucherService struct {
	voucherRepo repositories.VoucherRepository
	log         *zap.Logger
	now         func() time.Time
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(voucherRepo repositories.VoucherRepository, log *zap.Logger) *VoucherService {
	return &VoucherService{
		voucherRepo: voucherRepo,
		log:         nopIfNil(log),
		now:         time.Now,
	}
}

// WithClock replaces the time source.
func (s *VoucherService) WithClock(now func() time.Time) *VoucherService {
	s.now = now
	return s
}

// Validate checks a voucher code and returns the discount it grants.
func (s *VoucherService) Validate(ctx context.Context, in VoucherValidation) (engine.VoucherDiscount, error) {
	var voucher *models.Voucher
	v, err := s.voucherRepo.FindByCode(ctx, in.Code, in.VendorID)
	switch {
	case err == nil:
		voucher = v
	case !errors.Is(err, engine.ErrNotFound):
		return engine.VoucherDiscount{}, err
	}

	prior := 0
	if voucher != nil && in.UserID != "" {
		prior, err = s.voucherRepo.CountUsageByUser(ctx, voucher.ID, in.UserID)
		if err != nil {
			return engine.VoucherDiscount{}, err
		}
	}

	result, err := engine.ValidateVoucher(voucher, engine.VoucherCheck{
		Code:       in.Code,
		VendorID:   in.VendorID,
		OrderValue: in.OrderValue,
		UserID:     in.UserID,
		PriorUsage: prior,
		Now:        s.now(),
	})
	if err != nil {
		metrics.VouchersValidatedTotal.WithLabelValues(engine.Code(err)).Inc()
		recordRejection("validate_voucher", err)
		s.log.Debug("voucher rejected",
			zap.String("code", engine.NormalizeVoucherCode(in.Code)),
			zap.String("reason", engine.Code(err)))
		return engine.VoucherDiscount{}, err
	}

	metrics.VouchersValidatedTotal.WithLabelValues("valid").Inc()
	return result, nil
}
