package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
)

var (
	ErrNotFound       = errors.New("customer not found")
	ErrDuplicateEmail = errors.New("customer email already registered")
)

// Repository persists customers.
type Repository interface {
	// Create assigns an id and timestamps; a taken email yields ErrDuplicateEmail.
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	// FindByEmail returns nil when no customer uses the address.
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
}
