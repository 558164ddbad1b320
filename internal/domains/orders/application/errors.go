package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	productdomain "github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrCustomerNotFound matches every *CustomerNotFoundError.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductsNotFound matches every *ProductsNotFoundError.
	ErrProductsNotFound = errors.New("products not found")
	// ErrInsufficientStock matches every *InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrPersistence matches every *PersistenceError.
	ErrPersistence = errors.New("persistence failure")
	// ErrOrderNotFound is returned by GetOrder.
	ErrOrderNotFound = errors.New("order not found")
	// ErrIdempotencyConflict signals a reused key with a different payload.
	ErrIdempotencyConflict = errors.New("idempotency key reused with a different request")
)

// CustomerNotFoundError carries the customer id that did not resolve.
type CustomerNotFoundError struct {
	CustomerID string
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer %s not found", e.CustomerID)
}

func (e *CustomerNotFoundError) Is(target error) bool { return target == ErrCustomerNotFound }

// ProductsNotFoundError lists every requested product id that did not resolve,
// in request order.
type ProductsNotFoundError struct {
	IDs []string
}

func (e *ProductsNotFoundError) Error() string {
	return fmt.Sprintf("products not found: %s", strings.Join(e.IDs, ", "))
}

func (e *ProductsNotFoundError) Is(target error) bool { return target == ErrProductsNotFound }

// InsufficientStockError identifies the first product whose stock could not
// cover the request. Product.Quantity is the stock observed at that moment.
type InsufficientStockError struct {
	Product   *productdomain.Product
	Requested int
}

func (e *InsufficientStockError) Error() string {
	if e.Product == nil {
		return "insufficient stock"
	}
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.Product.ID, e.Requested, e.Product.Quantity)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// PersistenceError wraps a storage fault. The unit of work it interrupted has
// been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrEmptyProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrEmptyCustomerID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// persistence wraps err unless it already belongs to the placement taxonomy.
func persistence(op string, err error) error {
	if err == nil || isClassified(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

func isClassified(err error) bool {
	for _, target := range []error{
		ErrInvalidInput,
		ErrCustomerNotFound,
		ErrProductsNotFound,
		ErrInsufficientStock,
		ErrPersistence,
		ErrIdempotencyConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
