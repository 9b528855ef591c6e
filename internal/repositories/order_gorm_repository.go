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

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetByID retrieves an order and its items.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetItem retrieves a single order item.
func (r *GORMOrderRepository) GetItem(ctx context.Context, itemID string) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order item with ID %s: %w", itemID, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order item %s: %w", itemID, err)
	}
	return &item, nil
}

// Create stores an order together with its items.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpdateStatusIfCurrent performs UPDATE ... WHERE id = ? AND status = ?.
func (r *GORMOrderRepository) UpdateStatusIfCurrent(ctx context.Context, order *models.Order, expected models.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, expected).
		Updates(map[string]interface{}{
			"status":              order.Status,
			"cancellation_reason": order.CancellationReason,
			"delivered_at":        order.DeliveredAt,
			"updated_at":          order.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %s: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s is no longer %s: %w", order.ID, expected, ErrConflict)
	}
	return nil
}

// MarkPaidIfUnpaid performs UPDATE ... WHERE id = ? AND payment_status <> 'paid'.
func (r *GORMOrderRepository) MarkPaidIfUnpaid(ctx context.Context, order *models.Order) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND payment_status <> ?", order.ID, models.PaymentPaid).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentPaid,
			"paid_at":        order.PaidAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to confirm payment of order %s: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s already paid: %w", order.ID, ErrConflict)
	}
	return nil
}
