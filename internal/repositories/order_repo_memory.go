package repositories

import (
	"context"
	"fmt"
	"sync"

	"lapak/internal/engine"
	"lapak/internal/models"

	"github.com/google/uuid"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
type MemoryOrderRepository struct {
	orders map[string]models.Order
	items  map[string]models.OrderItem
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]models.Order),
		items:  make(map[string]models.OrderItem),
	}
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, engine.ErrNotFound)
	}
	order.Items = append([]models.OrderItem(nil), order.Items...)
	return &order, nil
}

// GetItem returns an order item by its ID.
func (r *MemoryOrderRepository) GetItem(_ context.Context, itemID string) (*models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return nil, fmt.Errorf("order item with ID %s: %w", itemID, engine.ErrNotFound)
	}
	return &item, nil
}

// Create adds a new order and indexes its items.
func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
		r.items[order.Items[i].ID] = order.Items[i]
	}
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	r.orders[order.ID] = stored
	return nil
}

// UpdateStatusIfCurrent compares and swaps the status under the write lock.
func (r *MemoryOrderRepository) UpdateStatusIfCurrent(_ context.Context, order *models.Order, expected models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok {
		return fmt.Errorf("order with ID %s: %w", order.ID, engine.ErrNotFound)
	}
	if stored.Status != expected {
		return fmt.Errorf("order %s is no longer %s: %w", order.ID, expected, ErrConflict)
	}
	stored.Status = order.Status
	stored.CancellationReason = order.CancellationReason
	stored.DeliveredAt = order.DeliveredAt
	stored.UpdatedAt = order.UpdatedAt
	r.orders[order.ID] = stored
	return nil
}

// MarkPaidIfUnpaid flips the payment status under the write lock.
func (r *MemoryOrderRepository) MarkPaidIfUnpaid(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok {
		return fmt.Errorf("order with ID %s: %w", order.ID, engine.ErrNotFound)
	}
	if stored.PaymentStatus == models.PaymentPaid {
		return fmt.Errorf("order %s already paid: %w", order.ID, ErrConflict)
	}
	stored.PaymentStatus = models.PaymentPaid
	stored.PaidAt = order.PaidAt
	r.orders[order.ID] = stored
	return nil
}
