package services_test

import (
	"context"
	"fmt"
	"testing"

	"lapak/internal/engine"
	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_Quote(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	original, sale := int64(220000), int64(110000)
	mockRepo.On("GetByID", ctx, "prod-1").Return(&models.Product{
		ID:            "prod-1",
		Name:          "Kemeja Batik",
		BasePrice:     110000,
		OriginalPrice: &original,
		SalePrice:     &sale,
		TaxRate:       decimal.NewFromInt(10),
	}, nil).Once()

	quote, err := service.Quote(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", quote.ProductID)
	assert.Equal(t, int64(110000), quote.DisplayPrice)
	assert.Equal(t, int64(220000), quote.DisplayOriginalPrice)
	assert.Equal(t, int64(50), quote.DiscountPercent)
	assert.True(t, decimal.NewFromInt(100000).Equal(quote.CanonicalPreTaxPrice))
	mockRepo.AssertExpectations(t)
}

func TestProductService_QuoteNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetByID", ctx, "99").Return(nil, fmt.Errorf("product with ID 99: %w", engine.ErrNotFound)).Once()

	quote, err := service.Quote(ctx, "99")
	assert.ErrorIs(t, err, engine.ErrNotFound)
	assert.Nil(t, quote)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	newProduct := &models.Product{Name: "New Product", BasePrice: 50000}

	mockRepo.On("Create", ctx, newProduct).Return(nil).Once()
	assert.NoError(t, service.CreateProduct(ctx, newProduct))

	mockRepo.On("Create", ctx, newProduct).Return(fmt.Errorf("database error")).Once()
	err := service.CreateProduct(ctx, newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}
