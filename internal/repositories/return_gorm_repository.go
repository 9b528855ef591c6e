package repositories

import (
	"context"
	"errors"
	"fmt"

	"lapak/internal/engine"
	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMReturnRepository is a GORM implementation of ReturnRepository.
type GORMReturnRepository struct {
	db *gorm.DB
}

// NewGORMReturnRepository creates a new instance of GORMReturnRepository.
func NewGORMReturnRepository(db *gorm.DB) *GORMReturnRepository {
	return &GORMReturnRepository{db: db}
}

// GetByID retrieves a single return.
func (r *GORMReturnRepository) GetByID(ctx context.Context, id string) (*models.Return, error) {
	var ret models.Return
	if err := r.db.WithContext(ctx).First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("return with ID %s: %w", id, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get return %s: %w", id, err)
	}
	return &ret, nil
}

// ListByOrderItem retrieves every return ever recorded for an order item.
func (r *GORMReturnRepository) ListByOrderItem(ctx context.Context, orderItemID string) ([]models.Return, error) {
	var returns []models.Return
	if err := r.db.WithContext(ctx).Where("order_item_id = ?", orderItemID).Order("requested_at").Find(&returns).Error; err != nil {
		return nil, fmt.Errorf("failed to list returns for item %s: %w", orderItemID, err)
	}
	return returns, nil
}

// CreateGuarded locks the order item row (SELECT ... FOR UPDATE) for the
// duration of the read-build-insert transaction.
func (r *GORMReturnRepository) CreateGuarded(ctx context.Context, orderItemID string, build BuildReturnFunc) (*models.Return, error) {
	var created *models.Return
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, "id = ?", orderItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order item with ID %s: %w", orderItemID, engine.ErrNotFound)
			}
			return fmt.Errorf("failed to lock order item %s: %w", orderItemID, err)
		}

		var existing []models.Return
		if err := tx.Where("order_item_id = ?", orderItemID).Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to list returns for item %s: %w", orderItemID, err)
		}

		ret, err := build(existing)
		if err != nil {
			return err
		}
		if ret.ID == "" {
			ret.ID = uuid.New().String()
		}
		if err := tx.Create(ret).Error; err != nil {
			return fmt.Errorf("failed to create return: %w", err)
		}
		created = ret
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateIfStatus performs UPDATE ... WHERE id = ? AND status = ?.
func (r *GORMReturnRepository) UpdateIfStatus(ctx context.Context, ret *models.Return, expected models.ReturnStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Return{}).
		Where("id = ? AND status = ?", ret.ID, expected).
		Updates(map[string]interface{}{
			"status":       ret.Status,
			"seller_notes": ret.SellerNotes,
			"approved_at":  ret.ApprovedAt,
			"completed_at": ret.CompletedAt,
			"cancelled_at": ret.CancelledAt,
			"updated_at":   ret.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update return %s: %w", ret.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("return %s is no longer %s: %w", ret.ID, expected, ErrConflict)
	}
	return nil
}
