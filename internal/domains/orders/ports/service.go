package ports

import (
	"context"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
)

// CreateOrderInput is the order placement request.
type CreateOrderInput struct {
	CustomerID     string
	Items          []domain.Item
	IdempotencyKey string
}

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
}

// WorkflowOrchestrator runs order placement, durably or in process.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
}
