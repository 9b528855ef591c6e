package engine

import (
	"github.com/shopspring/decimal"
)

// PriceInput holds the stored, tax-inclusive price fields of a product.
type PriceInput struct {
	BasePrice     int64
	OriginalPrice *int64
	SalePrice     *int64
	TaxRate       decimal.Decimal // percent, e.g. 10 for 10%
}

// PriceBreakdown is the display view of a product price.
// The pre-tax figures are left unrounded so callers can chain further
// arithmetic without compounding rounding error.
type PriceBreakdown struct {
	DisplayPrice         int64           `json:"display_price"`
	DisplayOriginalPrice int64           `json:"display_original_price"`
	DiscountPercent      int64           `json:"discount_percent"`
	TaxAmount            int64           `json:"tax_amount"`
	PreTaxPrice          decimal.Decimal `json:"pre_tax_price"`
	PreTaxOriginalPrice  decimal.Decimal `json:"pre_tax_original_price"`
	CanonicalPreTaxPrice decimal.Decimal `json:"canonical_pre_tax_price"`
}

// ExcludeTax back-calculates the pre-tax amount of a tax-inclusive price.
func ExcludeTax(price int64, taxRate decimal.Decimal) decimal.Decimal {
	divisor := decimal.NewFromInt(1).Add(taxRate.Div(hundred))
	return decimal.NewFromInt(price).Div(divisor)
}

// ComputePrice derives display prices, discount percent and pre-tax
// equivalents. Stored prices already include tax, so display prices pass
// through unchanged.
func ComputePrice(in PriceInput) PriceBreakdown {
	display := in.BasePrice
	if in.SalePrice != nil {
		display = *in.SalePrice
	}
	original := in.BasePrice
	if in.OriginalPrice != nil {
		original = *in.OriginalPrice
	}

	out := PriceBreakdown{
		DisplayPrice:         display,
		DisplayOriginalPrice: original,
		PreTaxPrice:          ExcludeTax(display, in.TaxRate),
		PreTaxOriginalPrice:  ExcludeTax(original, in.TaxRate),
		CanonicalPreTaxPrice: ExcludeTax(in.BasePrice, in.TaxRate),
	}
	out.TaxAmount = decimal.NewFromInt(display).Sub(out.PreTaxPrice).Round(0).IntPart()

	if original > display && original > 0 {
		out.DiscountPercent = decimal.NewFromInt(original - display).
			Div(decimal.NewFromInt(original)).
			Mul(hundred).
			Round(0).
			IntPart()
	}
	return out
}
