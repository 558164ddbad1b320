package ports

import (
	"context"
	"errors"

	customerdomain "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	productdomain "github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	productports "github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. Create writes the header and every line as one
// unit and returns the order with generated ids and timestamps.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

// Transactor scopes a unit of work. Stores resolve the active transaction from
// the context they receive inside fn.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CustomerReader is the slice of the customer store order placement reads.
// Absence is reported with the customers ports.ErrNotFound.
type CustomerReader interface {
	GetByID(ctx context.Context, id string) (*customerdomain.Customer, error)
}

// ProductStock is the slice of the product store order placement needs.
type ProductStock interface {
	FindManyByID(ctx context.Context, ids []string) ([]*productdomain.Product, error)
	ReserveStock(ctx context.Context, reservations []productports.StockReservation) ([]*productdomain.Product, error)
}

// IdempotencyRecord binds a client key to the order it produced.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     string
}

// IdempotencyStore remembers which order a client key produced.
type IdempotencyStore interface {
	// Find returns nil when the key was never used.
	Find(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save stores record unless the key is already taken, and returns whichever
	// record owns the key afterwards.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
