package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

type stubService struct {
	order *domain.Order
	err   error
}

func (s stubService) CreateOrder(context.Context, ports.CreateOrderInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s stubService) GetOrder(context.Context, string) (*domain.Order, error) {
	return s.order, s.err
}

func TestRejectionReason(t *testing.T) {
	cases := map[string]error{
		"customer_not_found":   &application.CustomerNotFoundError{CustomerID: "c"},
		"products_not_found":   &application.ProductsNotFoundError{IDs: []string{"x"}},
		"insufficient_stock":   &application.InsufficientStockError{Requested: 2},
		"persistence":          &application.PersistenceError{Op: "create order", Err: errors.New("boom")},
		"idempotency_conflict": application.ErrIdempotencyConflict,
		"unknown":              errors.New("other"),
	}
	for want, err := range cases {
		assert.Equal(t, want, RejectionReason(err))
	}
}

func TestCreateOrder_LogsRejection(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	svc := New(stubService{err: &application.CustomerNotFoundError{CustomerID: "c-1"}}, WithLogger(logger))

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{CustomerID: "c-1"})
	require.ErrorIs(t, err, application.ErrCustomerNotFound)
	assert.Contains(t, buf.String(), `"reason":"customer_not_found"`)
	assert.Contains(t, buf.String(), `"customer.id":"c-1"`)
}

func TestCreateOrder_PassesThroughResult(t *testing.T) {
	want := &domain.Order{ID: "o-1"}
	svc := New(stubService{order: want})
	got, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{})
	require.NoError(t, err)
	assert.Same(t, want, got)
}
