package services

import (
	"context"
	"time"

	"lapak/internal/engine"
	"lapak/internal/models"
	"lapak/internal/repositories"
)

// CampaignView is a campaign annotated with its effective state.
type CampaignView struct {
	models.Campaign
	Active bool   `json:"active"`
	Phase  string `json:"phase"`
}

// CampaignService answers whether campaigns are live. Time-of-day windows
// are read in the store's location.
type CampaignService struct {
	campaignRepo repositories.CampaignRepository
	loc          *time.Location
	now          func() time.Time
}

// NewCampaignService creates a new CampaignService. A nil loc means UTC.
func NewCampaignService(campaignRepo repositories.CampaignRepository, loc *time.Location) *CampaignService {
	if loc == nil {
		loc = time.UTC
	}
	return &CampaignService{
		campaignRepo: campaignRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock replaces the time source.
func (s *CampaignService) WithClock(now func() time.Time) *CampaignService {
	s.now = now
	return s
}

func (s *CampaignService) view(c models.Campaign, now time.Time) CampaignView {
	return CampaignView{
		Campaign: c,
		Active:   engine.IsCampaignActive(&c, now),
		Phase:    engine.CampaignPhase(&c, now),
	}
}

// IsActive reports whether the campaign is live right now.
func (s *CampaignService) IsActive(ctx context.Context, id string) (CampaignView, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return CampaignView{}, err
	}
	return s.view(*c, s.now().In(s.loc)), nil
}

// List returns every campaign with its effective state.
func (s *CampaignService) List(ctx context.Context) ([]CampaignView, error) {
	campaigns, err := s.campaignRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.loc)
	views := make([]CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		views = append(views, s.view(c, now))
	}
	return views, nil
}

// ListActive returns only the campaigns that are live right now.
func (s *CampaignService) ListActive(ctx context.Context) ([]CampaignView, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]CampaignView, 0, len(all))
	for _, v := range all {
		if v.Active {
			active = append(active, v)
		}
	}
	return active, nil
}
