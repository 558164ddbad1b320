package application

import (
	"context"

	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-orders-api/internal/shared/identity"
)

// Service orchestrates customer use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a customer, refusing an email that is already in use.
func (s *Service) Register(ctx context.Context, input ports.RegisterCustomerInput) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(input.Name, input.Email)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.FindByEmail(ctx, customer.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, identity.Canonical(id))
}

var _ ports.Service = (*Service)(nil)
