package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CampaignRegular   = "regular"
	CampaignFlashSale = "flash_sale"
)

// Declared campaign statuses. These are administrative only.
const (
	CampaignDraft    = "draft"
	CampaignUpcoming = "upcoming"
	CampaignActive   = "active"
	CampaignEnded    = "ended"
)

// Campaign is a promotional campaign. Flash sales additionally carry a daily
// "HH:MM" window.
type Campaign struct {
	ID                 string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name               string          `json:"name" gorm:"type:varchar(255);not null"`
	CampaignType       string          `json:"campaign_type" gorm:"type:varchar(16);not null;default:'regular'"`
	DiscountType       string          `json:"discount_type" gorm:"type:varchar(16);not null"`
	DiscountValue      decimal.Decimal `json:"discount_value" gorm:"type:decimal(20,2);not null"`
	StartDate          time.Time       `json:"start_date" gorm:"not null"`
	EndDate            time.Time       `json:"end_date" gorm:"not null"`
	FlashSaleStartTime *string         `json:"flash_sale_start_time,omitempty" gorm:"type:varchar(5)"`
	FlashSaleEndTime   *string         `json:"flash_sale_end_time,omitempty" gorm:"type:varchar(5)"`
	Status             string          `json:"status" gorm:"type:varchar(16);not null;default:'draft'"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
