package ports

import (
	"context"

	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
)

// RegisterCustomerInput carries the registration payload.
type RegisterCustomerInput struct {
	Name  string
	Email string
}

// Service exposes customer use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterCustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}
