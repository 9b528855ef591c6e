package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product holds the stored price fields of a listed product.
// All prices are tax-inclusive whole currency units.
type Product struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VendorID      string          `json:"vendor_id" gorm:"index;type:varchar(36);not null"`
	Name          string          `json:"name" gorm:"type:varchar(255);not null"`
	BasePrice     int64           `json:"base_price" gorm:"not null"`
	OriginalPrice *int64          `json:"original_price,omitempty"`
	SalePrice     *int64          `json:"sale_price,omitempty"`
	TaxRate       decimal.Decimal `json:"tax_rate" gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
