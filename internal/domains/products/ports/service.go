package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
)

// CreateProductInput carries the product registration payload.
type CreateProductInput struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Service exposes product use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	SetStock(ctx context.Context, adjustments []QuantityAdjustment) ([]*domain.Product, error)
}
