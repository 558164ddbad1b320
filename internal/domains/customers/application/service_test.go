package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/memory"
	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
)

func TestRegister_Persists(t *testing.T) {
	svc := NewService(memory.NewRepository())

	created, err := svc.Register(context.Background(), ports.RegisterCustomerInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.Metadata.CreatedAt.IsZero())

	loaded, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, loaded.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.Register(context.Background(), ports.RegisterCustomerInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), ports.RegisterCustomerInput{Name: "Ada L.", Email: "ADA@example.com"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.Register(context.Background(), ports.RegisterCustomerInput{Name: "", Email: "ada@example.com"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
