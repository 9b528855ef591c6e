package repositories

import (
	"context"

	"lapak/internal/models"
)

// CampaignRepository defines the interface for campaign data access.
type CampaignRepository interface {
	GetAll(ctx context.Context) ([]models.Campaign, error)
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	Create(ctx context.Context, campaign *models.Campaign) error
}
