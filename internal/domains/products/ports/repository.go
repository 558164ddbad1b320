package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrDuplicateName     = errors.New("product name already registered")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// QuantityAdjustment overwrites the quantity on hand of one product.
type QuantityAdjustment struct {
	ProductID string
	Quantity  int
}

// StockReservation takes Quantity units of one product out of stock.
type StockReservation struct {
	ProductID string
	Quantity  int
}

// MissingProductError names a product that disappeared between lookup and write.
type MissingProductError struct {
	ProductID string
}

func (e *MissingProductError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

func (e *MissingProductError) Is(target error) bool { return target == ErrNotFound }

// StockShortageError reports the first reservation the store could not honour.
type StockShortageError struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("product %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

func (e *StockShortageError) Is(target error) bool { return target == ErrInsufficientStock }

// Repository persists products and their stock.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByName returns nil when no product has the name.
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	// FindManyByID returns the products that exist, in no particular order.
	// Unknown ids are omitted rather than reported.
	FindManyByID(ctx context.Context, ids []string) ([]*domain.Product, error)
	// ApplyQuantities overwrites quantities in one batch and returns the updated records.
	ApplyQuantities(ctx context.Context, adjustments []QuantityAdjustment) ([]*domain.Product, error)
	// ReserveStock decrements every reservation only if all of them fit the stock on
	// hand at the moment of the write. On shortage it returns *StockShortageError and
	// leaves every quantity untouched.
	ReserveStock(ctx context.Context, reservations []StockReservation) ([]*domain.Product, error)
}
