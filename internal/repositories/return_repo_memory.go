package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"lapak/internal/engine"
	"lapak/internal/models"

	"github.com/google/uuid"
)

// MemoryReturnRepository is an in-memory implementation of ReturnRepository.
type MemoryReturnRepository struct {
	returns map[string]models.Return
	mu      sync.RWMutex
}

// NewMemoryReturnRepository creates a new instance of MemoryReturnRepository.
func NewMemoryReturnRepository() *MemoryReturnRepository {
	return &MemoryReturnRepository{
		returns: make(map[string]models.Return),
	}
}

// GetByID returns a return by its ID.
func (r *MemoryReturnRepository) GetByID(_ context.Context, id string) (*models.Return, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ret, ok := r.returns[id]
	if !ok {
		return nil, fmt.Errorf("return with ID %s: %w", id, engine.ErrNotFound)
	}
	return &ret, nil
}

// ListByOrderItem returns every return for an order item, oldest first.
func (r *MemoryReturnRepository) ListByOrderItem(_ context.Context, orderItemID string) ([]models.Return, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked(orderItemID), nil
}

func (r *MemoryReturnRepository) listLocked(orderItemID string) []models.Return {
	var out []models.Return
	for _, ret := range r.returns {
		if ret.OrderItemID == orderItemID {
			out = append(out, ret)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out
}

// CreateGuarded holds the write lock across read, build and insert.
func (r *MemoryReturnRepository) CreateGuarded(_ context.Context, orderItemID string, build BuildReturnFunc) (*models.Return, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ret, err := build(r.listLocked(orderItemID))
	if err != nil {
		return nil, err
	}
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	r.returns[ret.ID] = *ret
	return ret, nil
}

// UpdateIfStatus compares and swaps a return under the write lock.
func (r *MemoryReturnRepository) UpdateIfStatus(_ context.Context, ret *models.Return, expected models.ReturnStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.returns[ret.ID]
	if !ok {
		return fmt.Errorf("return with ID %s: %w", ret.ID, engine.ErrNotFound)
	}
	if stored.Status != expected {
		return fmt.Errorf("return %s is no longer %s: %w", ret.ID, expected, ErrConflict)
	}
	r.returns[ret.ID] = *ret
	return nil
}
