package services

import (
	"context"

	"lapak/internal/engine"
	"lapak/internal/models"
	"lapak/internal/repositories"
)

// PriceQuote is a product's display price with its tax breakdown.
type PriceQuote struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	engine.PriceBreakdown
}

// ProductService handles product lookups and price quotes.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// CreateProduct stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.repo.Create(ctx, product)
}

// Quote computes the display and pre-tax prices of a product.
func (s *ProductService) Quote(ctx context.Context, id string) (*PriceQuote, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PriceQuote{
		ProductID: product.ID,
		Name:      product.Name,
		PriceBreakdown: engine.ComputePrice(engine.PriceInput{
			BasePrice:     product.BasePrice,
			OriginalPrice: product.OriginalPrice,
			SalePrice:     product.SalePrice,
			TaxRate:       product.TaxRate,
		}),
	}, nil
}
