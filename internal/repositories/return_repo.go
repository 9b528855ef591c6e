package repositories

import (
	"context"

	"lapak/internal/models"
)

// BuildReturnFunc builds a new return given the returns already recorded for
// the same order item.
type BuildReturnFunc func(existing []models.Return) (*models.Return, error)

// ReturnRepository defines the interface for return data access.
type ReturnRepository interface {
	GetByID(ctx context.Context, id string) (*models.Return, error)
	ListByOrderItem(ctx context.Context, orderItemID string) ([]models.Return, error)
	// CreateGuarded serializes return creation per order item: build sees
	// every return recorded for the item and its result is inserted before
	// any concurrent creation for the same item can read.
	CreateGuarded(ctx context.Context, orderItemID string, build BuildReturnFunc) (*models.Return, error)
	// UpdateIfStatus persists ret only if the stored status still equals expected.
	UpdateIfStatus(ctx context.Context, ret *models.Return, expected models.ReturnStatus) error
}
