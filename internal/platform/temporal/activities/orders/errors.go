package orders

import (
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	productdomain "github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
)

// Application error types carried across the Temporal boundary.
const (
	ErrTypeInvalidInput        = "InvalidInput"
	ErrTypeCustomerNotFound    = "CustomerNotFound"
	ErrTypeProductsNotFound    = "ProductsNotFound"
	ErrTypeInsufficientStock   = "InsufficientStock"
	ErrTypeIdempotencyConflict = "IdempotencyConflict"
	ErrTypePersistence         = "PersistenceFailure"
)

type insufficientStockDetails struct {
	Product   *productdomain.Product
	Requested int
}

// EncodeError converts a placement error into a Temporal application error.
// Only persistence faults stay retryable.
func EncodeError(err error) error {
	if err == nil {
		return nil
	}
	var (
		customer *application.CustomerNotFoundError
		products *application.ProductsNotFoundError
		stock    *application.InsufficientStockError
	)
	switch {
	case errors.As(err, &customer):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeCustomerNotFound, err, customer.CustomerID)
	case errors.As(err, &products):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeProductsNotFound, err, products.IDs)
	case errors.As(err, &stock):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInsufficientStock, err,
			insufficientStockDetails{Product: stock.Product, Requested: stock.Requested})
	case errors.Is(err, application.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
	case errors.Is(err, application.ErrIdempotencyConflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeIdempotencyConflict, err)
	default:
		return temporal.NewApplicationErrorWithCause(err.Error(), ErrTypePersistence, err)
	}
}

// DecodeError restores the typed placement error from a workflow or activity
// failure. Errors without a known application type are returned unchanged; a
// known type whose details cannot be read yields a decode error.
func DecodeError(err error) error {
	var appErr *temporal.ApplicationError
	if err == nil || !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case ErrTypeCustomerNotFound:
		var id string
		if derr := appErr.Details(&id); derr != nil {
			return detailsError(appErr, derr)
		}
		return &application.CustomerNotFoundError{CustomerID: id}
	case ErrTypeProductsNotFound:
		var ids []string
		if derr := appErr.Details(&ids); derr != nil {
			return detailsError(appErr, derr)
		}
		return &application.ProductsNotFoundError{IDs: ids}
	case ErrTypeInsufficientStock:
		var details insufficientStockDetails
		if derr := appErr.Details(&details); derr != nil {
			return detailsError(appErr, derr)
		}
		return &application.InsufficientStockError{Product: details.Product, Requested: details.Requested}
	case ErrTypeInvalidInput:
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Message())
	case ErrTypeIdempotencyConflict:
		return application.ErrIdempotencyConflict
	case ErrTypePersistence:
		return &application.PersistenceError{Op: "place order", Err: errors.New(appErr.Message())}
	default:
		return err
	}
}

// DetailsError reports a placement failure whose typed details were lost in
// transit. It maps to no client error.
type DetailsError struct {
	Type    string
	Message string
	Err     error
}

func (e *DetailsError) Error() string {
	return fmt.Sprintf("decode %s details (%s): %v", e.Type, e.Message, e.Err)
}

func (e *DetailsError) Unwrap() error { return e.Err }

func detailsError(appErr *temporal.ApplicationError, err error) error {
	return &DetailsError{Type: appErr.Type(), Message: appErr.Message(), Err: err}
}
