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

// GORMCampaignRepository is a GORM implementation of CampaignRepository.
type GORMCampaignRepository struct {
	db *gorm.DB
}

// NewGORMCampaignRepository creates a new instance of GORMCampaignRepository.
func NewGORMCampaignRepository(db *gorm.DB) *GORMCampaignRepository {
	return &GORMCampaignRepository{db: db}
}

// GetAll retrieves all campaigns ordered by start date.
func (r *GORMCampaignRepository) GetAll(ctx context.Context) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := r.db.WithContext(ctx).Order("start_date").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to get all campaigns: %w", err)
	}
	return campaigns, nil
}

// GetByID retrieves a single campaign by its ID.
func (r *GORMCampaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.WithContext(ctx).First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("campaign with ID %s: %w", id, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get campaign by ID %s: %w", id, err)
	}
	return &campaign, nil
}

// Create creates a new campaign.
func (r *GORMCampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	if campaign.ID == "" {
		campaign.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}
