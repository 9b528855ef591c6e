package repositories

import (
	"context"

	"lapak/internal/models"
)

// OrderRepository defines the interface for order data access.
// Orders are never deleted.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetItem(ctx context.Context, itemID string) (*models.OrderItem, error)
	Create(ctx context.Context, order *models.Order) error
	// UpdateStatusIfCurrent writes order's status, cancellation reason,
	// DeliveredAt and UpdatedAt only if the stored status still equals expected.
	UpdateStatusIfCurrent(ctx context.Context, order *models.Order, expected models.OrderStatus) error
	// MarkPaidIfUnpaid writes the paid payment status and PaidAt only if the
	// stored order is not paid yet.
	MarkPaidIfUnpaid(ctx context.Context, order *models.Order) error
}
