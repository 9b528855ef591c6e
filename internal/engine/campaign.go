package engine

import (
	"time"

	"lapak/internal/models"
)

// Effective campaign phases derived from the date range.
const (
	PhaseUpcoming = "upcoming"
	PhaseActive   = "active"
	PhaseEnded    = "ended"
)

// IsCampaignActive reports whether c is live at now. The declared Status is
// ignored.
//
// Flash sale windows are compared as "HH:MM" strings in now's location, so a
// window that wraps midnight ("22:00"-"02:00") is never active.
func IsCampaignActive(c *models.Campaign, now time.Time) bool {
	if c == nil {
		return false
	}
	if now.After(c.EndDate) {
		return false
	}
	if now.Before(c.StartDate) {
		return false
	}
	if c.CampaignType == models.CampaignFlashSale && c.FlashSaleStartTime != nil && c.FlashSaleEndTime != nil {
		clock := now.Format("15:04")
		return clock >= *c.FlashSaleStartTime && clock <= *c.FlashSaleEndTime
	}
	return true
}

// CampaignPhase returns where now falls relative to c's date range.
func CampaignPhase(c *models.Campaign, now time.Time) string {
	switch {
	case now.After(c.EndDate):
		return PhaseEnded
	case now.Before(c.StartDate):
		return PhaseUpcoming
	default:
		return PhaseActive
	}
}
