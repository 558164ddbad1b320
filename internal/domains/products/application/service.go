package application

import (
	"context"
	"fmt"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
	"github.com/Apurer/go-gin-orders-api/internal/shared/identity"
)

// Service orchestrates product use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a product, refusing a name that is already taken.
func (s *Service) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(input.Name, input.Price, input.Quantity)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.FindByName(ctx, product.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameTaken
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, identity.Canonical(id))
}

// SetStock overwrites quantities on hand. Every product must exist.
func (s *Service) SetStock(ctx context.Context, adjustments []ports.QuantityAdjustment) ([]*domain.Product, error) {
	if len(adjustments) == 0 {
		return nil, fmt.Errorf("%w: no adjustments supplied", ErrInvalidInput)
	}
	ids := make([]string, 0, len(adjustments))
	canonical := make([]ports.QuantityAdjustment, 0, len(adjustments))
	seen := make(map[string]struct{}, len(adjustments))
	for _, adj := range adjustments {
		if adj.Quantity < 0 {
			return nil, mapError(domain.ErrNegativeQuantity)
		}
		if adj.Quantity > domain.MaxQuantity {
			return nil, mapError(domain.ErrQuantityTooLarge)
		}
		adj.ProductID = identity.Canonical(adj.ProductID)
		if _, dup := seen[adj.ProductID]; dup {
			return nil, fmt.Errorf("%w: product %s listed twice", ErrInvalidInput, adj.ProductID)
		}
		seen[adj.ProductID] = struct{}{}
		ids = append(ids, adj.ProductID)
		canonical = append(canonical, adj)
	}
	found, err := s.repo.FindManyByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, ports.ErrNotFound
	}
	return s.repo.ApplyQuantities(ctx, canonical)
}

var _ ports.Service = (*Service)(nil)
