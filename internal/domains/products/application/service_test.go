package application

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/memory"
	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
)

func TestCreate_Persists(t *testing.T) {
	svc := NewService(memory.NewRepository())

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name: "Lamp", Price: decimal.RequireFromString("19.90"), Quantity: 4,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	loaded, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, loaded.Price.Equal(decimal.RequireFromString("19.9")))
}

func TestCreate_NameTaken(t *testing.T) {
	svc := NewService(memory.NewRepository())
	in := ports.CreateProductInput{Name: "Lamp", Price: decimal.NewFromInt(1), Quantity: 1}
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), in)
	require.ErrorIs(t, err, ErrNameTaken)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.Create(context.Background(), ports.CreateProductInput{Name: "Lamp", Price: decimal.NewFromInt(-3)})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetStock(t *testing.T) {
	svc := NewService(memory.NewRepository())
	p, err := svc.Create(context.Background(), ports.CreateProductInput{Name: "Lamp", Price: decimal.NewFromInt(1), Quantity: 1})
	require.NoError(t, err)

	updated, err := svc.SetStock(context.Background(), []ports.QuantityAdjustment{{ProductID: p.ID, Quantity: 12}})
	require.NoError(t, err)
	require.Equal(t, 12, updated[0].Quantity)

	_, err = svc.SetStock(context.Background(), []ports.QuantityAdjustment{{ProductID: "nope", Quantity: 1}})
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = svc.SetStock(context.Background(), []ports.QuantityAdjustment{{ProductID: p.ID, Quantity: -1}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetStock(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetStock(context.Background(), []ports.QuantityAdjustment{{ProductID: p.ID, Quantity: domain.MaxQuantity + 1}})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetStock_CanonicalisesIDs(t *testing.T) {
	svc := NewService(memory.NewRepository())
	p, err := svc.Create(context.Background(), ports.CreateProductInput{Name: "Lamp", Price: decimal.NewFromInt(1), Quantity: 1})
	require.NoError(t, err)

	updated, err := svc.SetStock(context.Background(), []ports.QuantityAdjustment{{ProductID: strings.ToUpper(p.ID), Quantity: 9}})
	require.NoError(t, err)
	require.Equal(t, p.ID, updated[0].ID)
	require.Equal(t, 9, updated[0].Quantity)

	_, err = svc.SetStock(context.Background(), []ports.QuantityAdjustment{
		{ProductID: p.ID, Quantity: 1},
		{ProductID: "urn:uuid:" + p.ID, Quantity: 2},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	loaded, err := svc.GetByID(context.Background(), strings.ToUpper(p.ID))
	require.NoError(t, err)
	require.Equal(t, 9, loaded.Quantity)
}
