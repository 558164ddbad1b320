package ordersserver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	customersapp "github.com/Apurer/go-gin-orders-api/internal/domains/customers/application"
	customersports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	ordersapp "github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	productsapp "github.com/Apurer/go-gin-orders-api/internal/domains/products/application"
	productsports "github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
	apierrors "github.com/Apurer/go-gin-orders-api/internal/shared/errors"
)

// problems maps application errors of every bounded context to RFC 7807 responses.
var problems = apierrors.NewChainedResponder("",
	mapOrderError,
	mapCustomerError,
	mapProductError,
)

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	var (
		customer *ordersapp.CustomerNotFoundError
		products *ordersapp.ProductsNotFoundError
		stock    *ordersapp.InsufficientStockError
	)
	switch {
	case errors.As(err, &customer):
		return apierrors.ErrNotFound.
			WithDetail(customer.Error()).
			WithExtension("customerId", customer.CustomerID), true
	case errors.As(err, &products):
		return apierrors.ErrNotFound.
			WithDetail(products.Error()).
			WithExtension("missingProductIds", products.IDs), true
	case errors.As(err, &stock):
		problem := apierrors.ErrInsufficientStock.
			WithDetail(stock.Error()).
			WithExtension("requested", stock.Requested)
		if stock.Product != nil {
			problem = problem.
				WithExtension("productId", stock.Product.ID).
				WithExtension("productName", stock.Product.Name).
				WithExtension("available", stock.Product.Quantity)
		}
		return problem, true
	case errors.Is(err, ordersapp.ErrIdempotencyConflict):
		return apierrors.ErrIdempotencyConflict.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrOrderNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrPersistence):
		// Storage details stay in the logs.
		return apierrors.ErrPersistence.WithDetail("the order could not be stored; no changes were applied"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCustomerError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, customersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, customersapp.ErrEmailTaken):
		return apierrors.NewConflictProblem(err.Error()), true
	case errors.Is(err, customersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapProductError(err error) (apierrors.ProblemDetail, bool) {
	var missing *productsports.MissingProductError
	switch {
	case errors.As(err, &missing):
		return apierrors.NewNotFoundProblem("product", missing.ProductID), true
	case errors.Is(err, productsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, productsapp.ErrNameTaken):
		return apierrors.NewConflictProblem(err.Error()), true
	case errors.Is(err, productsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problems.RespondError(c, err)
}

// respondBindingError reports malformed or invalid request bodies as 400.
func respondBindingError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fieldPath(fe)] = fmt.Sprintf("failed on '%s'", fe.Tag())
		}
		apierrors.Respond(c, apierrors.NewValidationProblem(fields))
		return
	}
	apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// bindUUIDParam parses a uuid path parameter, answering 400 when it is malformed.
func bindUUIDParam(c *gin.Context, name string) (string, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.
			WithDetail(fmt.Sprintf("invalid format for parameter %s: %v", name, err)).
			WithExtension("parameter", name))
		return "", false
	}
	return id.String(), true
}
